package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"cinema-reservation/internal/data/entity"
	"cinema-reservation/internal/data/repository"
	"cinema-reservation/internal/dto/request"
	"cinema-reservation/internal/dto/response"
	"cinema-reservation/pkg/utils"

	"go.uber.org/zap"
)

const adminName = "Administrator"

type AuthService interface {
	Signup(ctx context.Context, req *request.SignupRequest) (*response.AuthResponse, error)
	Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error)
	Me(ctx context.Context, requester *Requester) (*response.UserResponse, error)
	// SeedAdmin creates the admin account, or promotes an existing account
	// with the same email.
	SeedAdmin(ctx context.Context, email, password string) error
}

type authService struct {
	repo   *repository.Repository
	config *utils.Config
	log    *zap.Logger
}

func NewAuthService(
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:   repo,
		config: config,
		log:    log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Signup(ctx context.Context, req *request.SignupRequest) (*response.AuthResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Signup validation failed", zap.Any("errors", errs))
		return nil, invalidRequest(utils.FormatValidationErrors(errs))
	}

	email := normalizeEmail(req.Email)

	existing, err := s.repo.User.FindByEmail(ctx, email)
	if err != nil {
		return nil, internal("failed to check email", err)
	}
	if existing != nil {
		return nil, invalidRequest("email already registered")
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, internal("failed to hash password", err)
	}

	user := &entity.User{
		Base:         entity.NewBase(time.Now()),
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: hash,
		Role:         entity.RoleUser,
	}

	err = s.repo.User.Create(ctx, user)
	if errors.Is(err, repository.ErrEmailTaken) {
		return nil, invalidRequest("email already registered")
	}
	if err != nil {
		return nil, internal("failed to create user", err)
	}

	s.log.Info("User signed up", zap.String("user_id", user.ID.String()))

	return s.issueToken(user)
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, invalidRequest(utils.FormatValidationErrors(errs))
	}

	user, err := s.repo.User.FindByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		return nil, internal("failed to load user", err)
	}
	if user == nil || !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Login failed", zap.String("email", req.Email))
		return nil, unauthorized("invalid credentials")
	}

	s.log.Info("User logged in", zap.String("user_id", user.ID.String()))

	return s.issueToken(user)
}

func (s *authService) Me(ctx context.Context, requester *Requester) (*response.UserResponse, error) {
	if requester == nil {
		return nil, unauthorized("authentication required")
	}

	user, err := s.repo.User.FindByID(ctx, requester.UserID)
	if err != nil {
		return nil, internal("failed to load user", err)
	}
	if user == nil {
		return nil, notFound("user not found")
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *authService) SeedAdmin(ctx context.Context, email, password string) error {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil
	}

	existing, err := s.repo.User.FindByEmail(ctx, email)
	if err != nil {
		return internal("failed to check admin account", err)
	}

	if existing != nil {
		if existing.IsAdmin() {
			return nil
		}
		if err := s.repo.User.UpdateRole(ctx, existing.ID, entity.RoleAdmin); err != nil {
			return internal("failed to promote admin account", err)
		}
		s.log.Info("Existing user promoted to admin", zap.String("user_id", existing.ID.String()))
		return nil
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return internal("failed to hash admin password", err)
	}

	admin := &entity.User{
		Base:         entity.NewBase(time.Now()),
		Name:         adminName,
		Email:        email,
		PasswordHash: hash,
		Role:         entity.RoleAdmin,
	}
	if err := s.repo.User.Create(ctx, admin); err != nil {
		return internal("failed to create admin account", err)
	}

	s.log.Info("Admin account seeded", zap.String("user_id", admin.ID.String()))
	return nil
}

func (s *authService) issueToken(user *entity.User) (*response.AuthResponse, error) {
	ttl := time.Duration(s.config.JWT.ExpiryHours) * time.Hour
	token, expiresAt, err := utils.GenerateToken(s.config.JWT.Secret, user.ID, string(user.Role), user.Email, user.Name, ttl)
	if err != nil {
		return nil, internal("failed to issue token", err)
	}

	return &response.AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      response.UserToResponse(user),
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
