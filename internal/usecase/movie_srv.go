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

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type MovieService interface {
	ListMovies(ctx context.Context) ([]response.MovieResponse, error)
	GetMovie(ctx context.Context, id uuid.UUID) (*response.MovieResponse, error)
	CreateMovie(ctx context.Context, req *request.MovieUpsertRequest) (*response.MovieResponse, error)
	UpdateMovie(ctx context.Context, id uuid.UUID, req *request.MovieUpsertRequest) (*response.MovieResponse, error)
	DeleteMovie(ctx context.Context, id uuid.UUID) error
	ListGenres(ctx context.Context) ([]response.GenreResponse, error)
}

type movieService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewMovieService(
	repo *repository.Repository,
	log *zap.Logger,
) MovieService {
	return &movieService{
		repo: repo,
		log:  log.With(zap.String("service", "movie")),
	}
}

func (s *movieService) ListMovies(ctx context.Context) ([]response.MovieResponse, error) {
	movies, err := s.repo.Movie.FindAll(ctx)
	if err != nil {
		return nil, internal("failed to load movies", err)
	}

	ids := make([]uuid.UUID, len(movies))
	for i, movie := range movies {
		ids[i] = movie.ID
	}

	genres, err := s.repo.Genre.FindByMovieIDs(ctx, ids)
	if err != nil {
		s.log.Warn("Failed to load genres for movies", zap.Error(err))
		genres = map[uuid.UUID][]*entity.Genre{}
	}

	result := make([]response.MovieResponse, len(movies))
	for i, movie := range movies {
		result[i] = response.MovieToResponse(movie, genres[movie.ID])
	}

	return result, nil
}

func (s *movieService) GetMovie(ctx context.Context, id uuid.UUID) (*response.MovieResponse, error) {
	movie, err := s.repo.Movie.FindByID(ctx, id)
	if err != nil {
		return nil, internal("failed to load movie", err)
	}
	if movie == nil {
		return nil, notFound("movie not found")
	}

	genres, err := s.repo.Genre.FindByMovieID(ctx, id)
	if err != nil {
		s.log.Warn("Failed to load genres for movie",
			zap.Error(err),
			zap.String("movie_id", id.String()),
		)
	}

	resp := response.MovieToResponse(movie, genres)
	return &resp, nil
}

func (s *movieService) CreateMovie(ctx context.Context, req *request.MovieUpsertRequest) (*response.MovieResponse, error) {
	genres, genreIDs, err := s.resolveGenres(ctx, req.GenreIDs)
	if err != nil {
		return nil, err
	}

	movie := &entity.Movie{
		BaseWithUpdate:  entity.NewBaseWithUpdate(time.Now()),
		Title:           strings.TrimSpace(req.Title),
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
	}

	if err := s.repo.Movie.Create(ctx, movie, genreIDs); err != nil {
		return nil, internal("failed to create movie", err)
	}

	s.log.Info("Movie created",
		zap.String("movie_id", movie.ID.String()),
		zap.String("title", movie.Title),
	)

	resp := response.MovieToResponse(movie, genres)
	return &resp, nil
}

func (s *movieService) UpdateMovie(ctx context.Context, id uuid.UUID, req *request.MovieUpsertRequest) (*response.MovieResponse, error) {
	movie, err := s.repo.Movie.FindByID(ctx, id)
	if err != nil {
		return nil, internal("failed to load movie", err)
	}
	if movie == nil {
		return nil, notFound("movie not found")
	}

	genres, genreIDs, err := s.resolveGenres(ctx, req.GenreIDs)
	if err != nil {
		return nil, err
	}

	movie.Title = strings.TrimSpace(req.Title)
	movie.Description = req.Description
	movie.DurationMinutes = req.DurationMinutes
	movie.UpdatedAt = time.Now().UTC()

	err = s.repo.Movie.Update(ctx, movie, genreIDs)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, notFound("movie not found")
	}
	if err != nil {
		return nil, internal("failed to update movie", err)
	}

	s.log.Info("Movie updated", zap.String("movie_id", id.String()))

	resp := response.MovieToResponse(movie, genres)
	return &resp, nil
}

func (s *movieService) DeleteMovie(ctx context.Context, id uuid.UUID) error {
	err := s.repo.Movie.Delete(ctx, id)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return notFound("movie not found")
	case errors.Is(err, repository.ErrInUse):
		return invalidRequest("movie has showtimes and cannot be deleted")
	case err != nil:
		return internal("failed to delete movie", err)
	}

	s.log.Info("Movie deleted", zap.String("movie_id", id.String()))
	return nil
}

func (s *movieService) ListGenres(ctx context.Context) ([]response.GenreResponse, error) {
	genres, err := s.repo.Genre.FindAll(ctx)
	if err != nil {
		return nil, internal("failed to load genres", err)
	}
	return response.GenresToResponse(genres), nil
}

// resolveGenres parses and deduplicates raw genre IDs and checks that every
// one of them exists.
func (s *movieService) resolveGenres(ctx context.Context, raw []string) ([]*entity.Genre, []uuid.UUID, error) {
	parsed := make([]uuid.UUID, 0, len(raw))
	for _, value := range raw {
		id, err := utils.ParseUUID(value, "genre_id")
		if err != nil {
			return nil, nil, invalidRequest(err.Error())
		}
		parsed = append(parsed, id)
	}

	ids := uniqueIDs(parsed)
	if len(ids) == 0 {
		return []*entity.Genre{}, ids, nil
	}

	genres, err := s.repo.Genre.FindByIDs(ctx, ids)
	if err != nil {
		return nil, nil, internal("failed to load genres", err)
	}
	if len(genres) != len(ids) {
		return nil, nil, invalidRequest("one or more genres not found")
	}

	return genres, ids, nil
}
