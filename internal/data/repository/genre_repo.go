package repository

import (
	"cinema-reservation/internal/data/entity"
	"cinema-reservation/pkg/database"
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type GenreRepository interface {
	FindAll(ctx context.Context) ([]*entity.Genre, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Genre, error)
	FindByMovieID(ctx context.Context, movieID uuid.UUID) ([]*entity.Genre, error)
	FindByMovieIDs(ctx context.Context, movieIDs []uuid.UUID) (map[uuid.UUID][]*entity.Genre, error)
}

type genreRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewGenreRepository(db database.PgxIface, log *zap.Logger) GenreRepository {
	return &genreRepository{
		db:  db,
		log: log.With(zap.String("repository", "genre")),
	}
}

func (r *genreRepository) FindAll(ctx context.Context) ([]*entity.Genre, error) {
	query := `SELECT id, name FROM genres ORDER BY name`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to list genres", zap.Error(err))
		return nil, fmt.Errorf("list genres: %w", err)
	}

	return r.scanGenres(rows)
}

func (r *genreRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Genre, error) {
	if len(ids) == 0 {
		return []*entity.Genre{}, nil
	}

	query := `SELECT id, name FROM genres WHERE id = ANY($1) ORDER BY name`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		r.log.Error("Failed to find genres by IDs",
			zap.Error(err),
			zap.Int("genre_count", len(ids)),
		)
		return nil, fmt.Errorf("find genres by ids: %w", err)
	}

	return r.scanGenres(rows)
}

func (r *genreRepository) FindByMovieID(ctx context.Context, movieID uuid.UUID) ([]*entity.Genre, error) {
	query := `
		SELECT g.id, g.name
		FROM genres g
		INNER JOIN movie_genres mg ON g.id = mg.genre_id
		WHERE mg.movie_id = $1
		ORDER BY g.name
	`

	rows, err := r.db.Query(ctx, query, movieID)
	if err != nil {
		r.log.Error("Failed to find genres by movie ID",
			zap.Error(err),
			zap.String("movie_id", movieID.String()),
		)
		return nil, fmt.Errorf("find genres by movie id: %w", err)
	}

	return r.scanGenres(rows)
}

// FindByMovieIDs loads genres for several movies in one query
func (r *genreRepository) FindByMovieIDs(ctx context.Context, movieIDs []uuid.UUID) (map[uuid.UUID][]*entity.Genre, error) {
	result := make(map[uuid.UUID][]*entity.Genre, len(movieIDs))
	if len(movieIDs) == 0 {
		return result, nil
	}

	query := `
		SELECT mg.movie_id, g.id, g.name
		FROM genres g
		INNER JOIN movie_genres mg ON g.id = mg.genre_id
		WHERE mg.movie_id = ANY($1)
		ORDER BY g.name
	`

	rows, err := r.db.Query(ctx, query, movieIDs)
	if err != nil {
		r.log.Error("Failed to find genres by movie IDs",
			zap.Error(err),
			zap.Int("movie_count", len(movieIDs)),
		)
		return nil, fmt.Errorf("find genres by movie ids: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var movieID uuid.UUID
		var genre entity.Genre
		if err := rows.Scan(&movieID, &genre.ID, &genre.Name); err != nil {
			r.log.Error("Failed to scan genre row", zap.Error(err))
			return nil, fmt.Errorf("scan genre row: %w", err)
		}
		result[movieID] = append(result[movieID], &genre)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate genre rows: %w", err)
	}

	return result, nil
}

func (r *genreRepository) scanGenres(rows pgx.Rows) ([]*entity.Genre, error) {
	defer rows.Close()

	genres := []*entity.Genre{}
	for rows.Next() {
		var genre entity.Genre
		if err := rows.Scan(&genre.ID, &genre.Name); err != nil {
			r.log.Error("Failed to scan genre row", zap.Error(err))
			return nil, fmt.Errorf("scan genre row: %w", err)
		}
		genres = append(genres, &genre)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate genre rows: %w", err)
	}

	return genres, nil
}
