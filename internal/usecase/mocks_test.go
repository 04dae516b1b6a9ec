package usecase

import (
	"context"

	"cinema-reservation/internal/data/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) FindAll(ctx context.Context) ([]*entity.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.User), args.Error(1)
}

func (m *MockUserRepository) UpdateRole(ctx context.Context, id uuid.UUID, role entity.UserRole) error {
	args := m.Called(ctx, id, role)
	return args.Error(0)
}

type MockMovieRepository struct {
	mock.Mock
}

func (m *MockMovieRepository) Create(ctx context.Context, movie *entity.Movie, genreIDs []uuid.UUID) error {
	args := m.Called(ctx, movie, genreIDs)
	return args.Error(0)
}

func (m *MockMovieRepository) Update(ctx context.Context, movie *entity.Movie, genreIDs []uuid.UUID) error {
	args := m.Called(ctx, movie, genreIDs)
	return args.Error(0)
}

func (m *MockMovieRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Movie, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Movie), args.Error(1)
}

func (m *MockMovieRepository) FindAll(ctx context.Context) ([]*entity.Movie, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Movie), args.Error(1)
}

func (m *MockMovieRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockGenreRepository struct {
	mock.Mock
}

func (m *MockGenreRepository) FindAll(ctx context.Context) ([]*entity.Genre, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Genre), args.Error(1)
}

func (m *MockGenreRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Genre, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Genre), args.Error(1)
}

func (m *MockGenreRepository) FindByMovieID(ctx context.Context, movieID uuid.UUID) ([]*entity.Genre, error) {
	args := m.Called(ctx, movieID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Genre), args.Error(1)
}

func (m *MockGenreRepository) FindByMovieIDs(ctx context.Context, movieIDs []uuid.UUID) (map[uuid.UUID][]*entity.Genre, error) {
	args := m.Called(ctx, movieIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID][]*entity.Genre), args.Error(1)
}

type MockAuditoriumRepository struct {
	mock.Mock
}

func (m *MockAuditoriumRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Auditorium, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Auditorium), args.Error(1)
}

func (m *MockAuditoriumRepository) FindAll(ctx context.Context) ([]*entity.Auditorium, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Auditorium), args.Error(1)
}
