package repository

import (
	"cinema-reservation/internal/data/entity"
	"cinema-reservation/pkg/database"
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type MovieRepository interface {
	// Create and Update write the movie row and replace its genre links in one transaction
	Create(ctx context.Context, movie *entity.Movie, genreIDs []uuid.UUID) error
	Update(ctx context.Context, movie *entity.Movie, genreIDs []uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Movie, error)
	FindAll(ctx context.Context) ([]*entity.Movie, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type movieRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewMovieRepository(db database.PgxIface, log *zap.Logger) MovieRepository {
	return &movieRepository{
		db:  db,
		log: log.With(zap.String("repository", "movie")),
	}
}

func (r *movieRepository) Create(ctx context.Context, movie *entity.Movie, genreIDs []uuid.UUID) error {
	query := `
		INSERT INTO movies (id, title, description, duration_minutes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, query,
			movie.ID,
			movie.Title,
			movie.Description,
			movie.DurationMinutes,
			movie.CreatedAt,
			movie.UpdatedAt,
		); err != nil {
			return fmt.Errorf("insert movie: %w", err)
		}
		return replaceMovieGenres(ctx, tx, movie.ID, genreIDs)
	})

	if err != nil {
		r.log.Error("Failed to create movie",
			zap.Error(err),
			zap.String("title", movie.Title),
		)
		return fmt.Errorf("failed to create movie: %w", err)
	}

	return nil
}

func (r *movieRepository) Update(ctx context.Context, movie *entity.Movie, genreIDs []uuid.UUID) error {
	query := `
		UPDATE movies
		SET title = $2, description = $3, duration_minutes = $4, updated_at = $5
		WHERE id = $1
	`

	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		result, err := tx.Exec(ctx, query,
			movie.ID,
			movie.Title,
			movie.Description,
			movie.DurationMinutes,
			movie.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("update movie: %w", err)
		}
		if result.RowsAffected() == 0 {
			return ErrNotFound
		}
		return replaceMovieGenres(ctx, tx, movie.ID, genreIDs)
	})

	if errors.Is(err, ErrNotFound) {
		return err
	}
	if err != nil {
		r.log.Error("Failed to update movie",
			zap.Error(err),
			zap.String("movie_id", movie.ID.String()),
		)
		return fmt.Errorf("failed to update movie: %w", err)
	}

	return nil
}

func replaceMovieGenres(ctx context.Context, tx pgx.Tx, movieID uuid.UUID, genreIDs []uuid.UUID) error {
	if _, err := tx.Exec(ctx, `DELETE FROM movie_genres WHERE movie_id = $1`, movieID); err != nil {
		return fmt.Errorf("delete movie genres: %w", err)
	}
	if len(genreIDs) == 0 {
		return nil
	}

	query := `INSERT INTO movie_genres (movie_id, genre_id) VALUES `
	args := make([]any, 0, len(genreIDs)*2)
	for i, genreID := range genreIDs {
		if i > 0 {
			query += ", "
		}
		query += fmt.Sprintf("($%d, $%d)", i*2+1, i*2+2)
		args = append(args, movieID, genreID)
	}
	query += ` ON CONFLICT DO NOTHING`

	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("insert movie genres: %w", err)
	}
	return nil
}

func (r *movieRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Movie, error) {
	query := `
		SELECT id, title, description, duration_minutes, created_at, updated_at
		FROM movies
		WHERE id = $1
	`

	var movie entity.Movie
	err := r.db.QueryRow(ctx, query, id).Scan(
		&movie.ID,
		&movie.Title,
		&movie.Description,
		&movie.DurationMinutes,
		&movie.CreatedAt,
		&movie.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find movie by ID",
			zap.Error(err),
			zap.String("movie_id", id.String()),
		)
		return nil, fmt.Errorf("failed to find movie: %w", err)
	}

	return &movie, nil
}

func (r *movieRepository) FindAll(ctx context.Context) ([]*entity.Movie, error) {
	query := `
		SELECT id, title, description, duration_minutes, created_at, updated_at
		FROM movies
		ORDER BY title, id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to list movies", zap.Error(err))
		return nil, fmt.Errorf("failed to list movies: %w", err)
	}
	defer rows.Close()

	movies := []*entity.Movie{}
	for rows.Next() {
		var movie entity.Movie
		err := rows.Scan(
			&movie.ID,
			&movie.Title,
			&movie.Description,
			&movie.DurationMinutes,
			&movie.CreatedAt,
			&movie.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan movie row", zap.Error(err))
			return nil, fmt.Errorf("failed to scan movie: %w", err)
		}
		movies = append(movies, &movie)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate movie rows: %w", err)
	}

	return movies, nil
}

// Delete removes the movie and its genre links. Movies with showtimes yield ErrInUse.
func (r *movieRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM movies WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if isForeignKeyViolation(err) {
		return ErrInUse
	}
	if err != nil {
		r.log.Error("Failed to delete movie",
			zap.Error(err),
			zap.String("movie_id", id.String()),
		)
		return fmt.Errorf("failed to delete movie: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	r.log.Info("Movie deleted", zap.String("movie_id", id.String()))
	return nil
}
