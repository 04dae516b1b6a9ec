package usecase

import (
	"context"
	"errors"

	"cinema-reservation/internal/data/entity"
	"cinema-reservation/internal/data/repository"
	"cinema-reservation/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UserService is the admin view of accounts
type UserService interface {
	ListUsers(ctx context.Context) ([]response.UserResponse, error)
	Promote(ctx context.Context, requester *Requester, userID uuid.UUID) (*response.UserResponse, error)
	Demote(ctx context.Context, requester *Requester, userID uuid.UUID) (*response.UserResponse, error)
}

type userService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewUserService(repo *repository.Repository, log *zap.Logger) UserService {
	return &userService{
		repo: repo,
		log:  log.With(zap.String("service", "user")),
	}
}

func (s *userService) ListUsers(ctx context.Context) ([]response.UserResponse, error) {
	users, err := s.repo.User.FindAll(ctx)
	if err != nil {
		return nil, internal("failed to load users", err)
	}

	result := make([]response.UserResponse, 0, len(users))
	for _, user := range users {
		result = append(result, response.UserToResponse(user))
	}
	return result, nil
}

func (s *userService) Promote(ctx context.Context, requester *Requester, userID uuid.UUID) (*response.UserResponse, error) {
	return s.setRole(ctx, requester, userID, entity.RoleAdmin)
}

// Demote never applies to the caller
func (s *userService) Demote(ctx context.Context, requester *Requester, userID uuid.UUID) (*response.UserResponse, error) {
	if requester != nil && requester.UserID == userID {
		return nil, invalidRequest("cannot demote yourself")
	}
	return s.setRole(ctx, requester, userID, entity.RoleUser)
}

func (s *userService) setRole(ctx context.Context, requester *Requester, userID uuid.UUID, role entity.UserRole) (*response.UserResponse, error) {
	if !requester.IsAdmin() {
		return nil, forbidden("admin access required")
	}

	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return nil, internal("failed to load user", err)
	}
	if user == nil {
		return nil, notFound("user not found")
	}

	if user.Role != role {
		err = s.repo.User.UpdateRole(ctx, userID, role)
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound("user not found")
		}
		if err != nil {
			return nil, internal("failed to update user role", err)
		}
		user.Role = role

		s.log.Info("User role changed",
			zap.String("user_id", userID.String()),
			zap.String("role", string(role)),
			zap.String("by", requester.UserID.String()),
		)
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}
