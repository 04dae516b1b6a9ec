package usecase

import (
	"context"
	"testing"

	"cinema-reservation/internal/data/entity"
	"cinema-reservation/internal/data/repository"
	"cinema-reservation/internal/dto/request"
	"cinema-reservation/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "test-secret"

func newAuthTestService() (AuthService, *MockUserRepository) {
	users := new(MockUserRepository)
	config := &utils.Config{JWT: utils.JWTConfig{Secret: testSecret, ExpiryHours: 24}}
	return NewAuthService(&repository.Repository{User: users}, config, zap.NewNop()), users
}

func TestSignup(t *testing.T) {
	ctx := context.Background()
	svc, users := newAuthTestService()

	users.On("FindByEmail", mock.Anything, "jane@example.com").Return(nil, nil)
	users.On("Create", mock.Anything, mock.MatchedBy(func(u *entity.User) bool {
		return u.Email == "jane@example.com" &&
			u.Role == entity.RoleUser &&
			utils.CheckPasswordHash("supersecret", u.PasswordHash)
	})).Return(nil)

	resp, err := svc.Signup(ctx, &request.SignupRequest{
		Name:     "Jane",
		Email:    "Jane@Example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	assert.Equal(t, "jane@example.com", resp.User.Email)
	assert.Equal(t, entity.RoleUser, resp.User.Role)

	claims, err := utils.ParseToken(testSecret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.Subject)
	assert.Equal(t, "USER", claims.Role)

	users.AssertExpectations(t)
}

func TestSignup_Rejects(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid payload", func(t *testing.T) {
		svc, users := newAuthTestService()
		_, err := svc.Signup(ctx, &request.SignupRequest{Name: "J", Email: "nope", Password: "short"})
		assert.ErrorIs(t, err, ErrInvalidRequest)
		users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("email registered", func(t *testing.T) {
		svc, users := newAuthTestService()
		users.On("FindByEmail", mock.Anything, "jane@example.com").Return(&entity.User{}, nil)

		_, err := svc.Signup(ctx, &request.SignupRequest{Name: "Jane", Email: "jane@example.com", Password: "supersecret"})
		assert.ErrorIs(t, err, ErrInvalidRequest)
		assert.Equal(t, "email already registered", MessageOf(err))
	})

	t.Run("email taken by concurrent signup", func(t *testing.T) {
		svc, users := newAuthTestService()
		users.On("FindByEmail", mock.Anything, "jane@example.com").Return(nil, nil)
		users.On("Create", mock.Anything, mock.Anything).Return(repository.ErrEmailTaken)

		_, err := svc.Signup(ctx, &request.SignupRequest{Name: "Jane", Email: "jane@example.com", Password: "supersecret"})
		assert.ErrorIs(t, err, ErrInvalidRequest)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	hash, err := utils.HashPassword("supersecret")
	require.NoError(t, err)
	user := &entity.User{
		Base:         entity.Base{ID: uuid.New()},
		Name:         "Jane",
		Email:        "jane@example.com",
		PasswordHash: hash,
		Role:         entity.RoleAdmin,
	}

	svc, users := newAuthTestService()
	users.On("FindByEmail", mock.Anything, "jane@example.com").Return(user, nil)
	users.On("FindByEmail", mock.Anything, mock.Anything).Return(nil, nil)

	resp, err := svc.Login(ctx, &request.LoginRequest{Email: "JANE@example.com", Password: "supersecret"})
	require.NoError(t, err)
	claims, err := utils.ParseToken(testSecret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "ADMIN", claims.Role)

	_, err = svc.Login(ctx, &request.LoginRequest{Email: "jane@example.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, "invalid credentials", MessageOf(err))

	_, err = svc.Login(ctx, &request.LoginRequest{Email: "nobody@example.com", Password: "supersecret"})
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, "invalid credentials", MessageOf(err))
}

func TestMe(t *testing.T) {
	ctx := context.Background()
	svc, users := newAuthTestService()

	id := uuid.New()
	users.On("FindByID", mock.Anything, id).Return(&entity.User{Base: entity.Base{ID: id}, Name: "Jane"}, nil)
	users.On("FindByID", mock.Anything, mock.Anything).Return(nil, nil)

	_, err := svc.Me(ctx, nil)
	assert.ErrorIs(t, err, ErrUnauthorized)

	me, err := svc.Me(ctx, &Requester{UserID: id})
	require.NoError(t, err)
	assert.Equal(t, "Jane", me.Name)

	_, err = svc.Me(ctx, &Requester{UserID: uuid.New()})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSeedAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("creates account", func(t *testing.T) {
		svc, users := newAuthTestService()
		users.On("FindByEmail", mock.Anything, "admin@example.com").Return(nil, nil)
		users.On("Create", mock.Anything, mock.MatchedBy(func(u *entity.User) bool {
			return u.Role == entity.RoleAdmin && u.Email == "admin@example.com"
		})).Return(nil)

		require.NoError(t, svc.SeedAdmin(ctx, "Admin@Example.com", "adminpass"))
		users.AssertExpectations(t)
	})

	t.Run("promotes existing user", func(t *testing.T) {
		svc, users := newAuthTestService()
		existing := &entity.User{Base: entity.Base{ID: uuid.New()}, Role: entity.RoleUser}
		users.On("FindByEmail", mock.Anything, "admin@example.com").Return(existing, nil)
		users.On("UpdateRole", mock.Anything, existing.ID, entity.RoleAdmin).Return(nil)

		require.NoError(t, svc.SeedAdmin(ctx, "admin@example.com", "adminpass"))
		users.AssertExpectations(t)
	})

	t.Run("already admin", func(t *testing.T) {
		svc, users := newAuthTestService()
		users.On("FindByEmail", mock.Anything, "admin@example.com").Return(&entity.User{Role: entity.RoleAdmin}, nil)

		require.NoError(t, svc.SeedAdmin(ctx, "admin@example.com", "adminpass"))
		users.AssertNotCalled(t, "UpdateRole", mock.Anything, mock.Anything, mock.Anything)
		users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("not configured", func(t *testing.T) {
		svc, users := newAuthTestService()
		require.NoError(t, svc.SeedAdmin(ctx, "", ""))
		users.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
	})
}
