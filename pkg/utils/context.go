package utils

import (
	"context"

	"github.com/google/uuid"
)

type authUserKey struct{}

// AuthUser is the caller the auth middleware resolved from a bearer token
type AuthUser struct {
	ID   uuid.UUID
	Role string
}

func AuthUserFromContext(ctx context.Context) (AuthUser, bool) {
	user, ok := ctx.Value(authUserKey{}).(AuthUser)
	if !ok || user.ID == uuid.Nil {
		return AuthUser{}, false
	}
	return user, true
}

func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	user, ok := AuthUserFromContext(ctx)
	return user.ID, ok
}

func GetRoleFromContext(ctx context.Context) (string, bool) {
	user, ok := AuthUserFromContext(ctx)
	return user.Role, ok
}

func SetUserContext(ctx context.Context, userID uuid.UUID, role string) context.Context {
	return context.WithValue(ctx, authUserKey{}, AuthUser{ID: userID, Role: role})
}
