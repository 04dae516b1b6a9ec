package usecase

import (
	"cinema-reservation/internal/data/entity"

	"github.com/google/uuid"
)

// Requester is the authenticated caller. Operations receive it explicitly;
// a nil *Requester is an anonymous caller.
type Requester struct {
	UserID uuid.UUID
	Role   entity.UserRole
}

func (r *Requester) IsAdmin() bool {
	return r != nil && r.Role == entity.RoleAdmin
}
