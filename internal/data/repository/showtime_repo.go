package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cinema-reservation/internal/data/entity"
	"cinema-reservation/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ShowtimeRepository interface {
	Create(ctx context.Context, showtime *entity.Showtime) error
	Update(ctx context.Context, showtime *entity.Showtime) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Showtime, error)
	FindDetailByID(ctx context.Context, id uuid.UUID) (*entity.ShowtimeDetail, error)
	FindDetails(ctx context.Context) ([]*entity.ShowtimeDetail, error)
	FindDetailsByMovieBetween(ctx context.Context, movieID uuid.UUID, from, to time.Time) ([]*entity.ShowtimeDetail, error)
	FindDetailsByStartBetween(ctx context.Context, from, to time.Time) ([]*entity.ShowtimeDetail, error)

	// ExistsAuditoriumConflict reports whether a showtime other than excludeID
	// in the auditorium overlaps [windowStart, windowEnd).
	ExistsAuditoriumConflict(ctx context.Context, auditoriumID, excludeID uuid.UUID, windowStart, windowEnd time.Time) (bool, error)
}

type showtimeRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewShowtimeRepository(db database.PgxIface, log *zap.Logger) ShowtimeRepository {
	return &showtimeRepository{
		db:  db,
		log: log.With(zap.String("repository", "showtime")),
	}
}

const showtimeDetailSelect = `
	SELECT s.id, s.movie_id, s.auditorium_id, s.start_time, s.end_time, s.price_cents, s.created_at,
	       m.title, a.name
	FROM showtimes s
	INNER JOIN movies m ON m.id = s.movie_id
	INNER JOIN auditoriums a ON a.id = s.auditorium_id
`

func (r *showtimeRepository) Create(ctx context.Context, showtime *entity.Showtime) error {
	query := `
		INSERT INTO showtimes (id, movie_id, auditorium_id, start_time, end_time, price_cents, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		showtime.ID,
		showtime.MovieID,
		showtime.AuditoriumID,
		showtime.StartTime,
		showtime.EndTime,
		showtime.PriceCents,
		showtime.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create showtime",
			zap.Error(err),
			zap.String("movie_id", showtime.MovieID.String()),
			zap.String("auditorium_id", showtime.AuditoriumID.String()),
		)
		return fmt.Errorf("create showtime: %w", err)
	}

	return nil
}

func (r *showtimeRepository) Update(ctx context.Context, showtime *entity.Showtime) error {
	query := `
		UPDATE showtimes
		SET movie_id = $2, auditorium_id = $3, start_time = $4, end_time = $5, price_cents = $6
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		showtime.ID,
		showtime.MovieID,
		showtime.AuditoriumID,
		showtime.StartTime,
		showtime.EndTime,
		showtime.PriceCents,
	)

	if err != nil {
		r.log.Error("Failed to update showtime",
			zap.Error(err),
			zap.String("showtime_id", showtime.ID.String()),
		)
		return fmt.Errorf("update showtime: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// Delete removes a showtime. Showtimes with reservations yield ErrInUse.
func (r *showtimeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM showtimes WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if isForeignKeyViolation(err) {
		return ErrInUse
	}
	if err != nil {
		r.log.Error("Failed to delete showtime",
			zap.Error(err),
			zap.String("showtime_id", id.String()),
		)
		return fmt.Errorf("delete showtime: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	r.log.Info("Showtime deleted", zap.String("showtime_id", id.String()))
	return nil
}

func (r *showtimeRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Showtime, error) {
	query := `
		SELECT id, movie_id, auditorium_id, start_time, end_time, price_cents, created_at
		FROM showtimes
		WHERE id = $1
	`

	var showtime entity.Showtime
	err := r.db.QueryRow(ctx, query, id).Scan(
		&showtime.ID,
		&showtime.MovieID,
		&showtime.AuditoriumID,
		&showtime.StartTime,
		&showtime.EndTime,
		&showtime.PriceCents,
		&showtime.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find showtime by ID",
			zap.Error(err),
			zap.String("showtime_id", id.String()),
		)
		return nil, fmt.Errorf("find showtime by id: %w", err)
	}

	return &showtime, nil
}

func (r *showtimeRepository) FindDetailByID(ctx context.Context, id uuid.UUID) (*entity.ShowtimeDetail, error) {
	query := showtimeDetailSelect + ` WHERE s.id = $1`

	detail, err := scanShowtimeDetail(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find showtime detail",
			zap.Error(err),
			zap.String("showtime_id", id.String()),
		)
		return nil, fmt.Errorf("find showtime detail: %w", err)
	}

	return detail, nil
}

func (r *showtimeRepository) FindDetails(ctx context.Context) ([]*entity.ShowtimeDetail, error) {
	query := showtimeDetailSelect + ` ORDER BY s.start_time, s.id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to list showtimes", zap.Error(err))
		return nil, fmt.Errorf("list showtimes: %w", err)
	}

	return r.scanDetails(rows)
}

func (r *showtimeRepository) FindDetailsByMovieBetween(ctx context.Context, movieID uuid.UUID, from, to time.Time) ([]*entity.ShowtimeDetail, error) {
	query := showtimeDetailSelect + `
		WHERE s.movie_id = $1 AND s.start_time >= $2 AND s.start_time < $3
		ORDER BY s.start_time, s.id
	`

	rows, err := r.db.Query(ctx, query, movieID, from, to)
	if err != nil {
		r.log.Error("Failed to list showtimes for movie",
			zap.Error(err),
			zap.String("movie_id", movieID.String()),
			zap.Time("from", from),
		)
		return nil, fmt.Errorf("list showtimes for movie: %w", err)
	}

	return r.scanDetails(rows)
}

func (r *showtimeRepository) FindDetailsByStartBetween(ctx context.Context, from, to time.Time) ([]*entity.ShowtimeDetail, error) {
	query := showtimeDetailSelect + `
		WHERE s.start_time >= $1 AND s.start_time < $2
		ORDER BY s.start_time, s.id
	`

	rows, err := r.db.Query(ctx, query, from, to)
	if err != nil {
		r.log.Error("Failed to list showtimes by start",
			zap.Error(err),
			zap.Time("from", from),
			zap.Time("to", to),
		)
		return nil, fmt.Errorf("list showtimes by start: %w", err)
	}

	return r.scanDetails(rows)
}

func (r *showtimeRepository) ExistsAuditoriumConflict(ctx context.Context, auditoriumID, excludeID uuid.UUID, windowStart, windowEnd time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM showtimes
			WHERE auditorium_id = $1
			  AND id <> $2
			  AND start_time < $4
			  AND end_time > $3
		)
	`

	var exists bool
	if err := r.db.QueryRow(ctx, query, auditoriumID, excludeID, windowStart, windowEnd).Scan(&exists); err != nil {
		r.log.Error("Failed to check auditorium conflict",
			zap.Error(err),
			zap.String("auditorium_id", auditoriumID.String()),
		)
		return false, fmt.Errorf("check auditorium conflict: %w", err)
	}

	return exists, nil
}

func scanShowtimeDetail(row pgx.Row) (*entity.ShowtimeDetail, error) {
	var d entity.ShowtimeDetail
	err := row.Scan(
		&d.ID,
		&d.MovieID,
		&d.AuditoriumID,
		&d.StartTime,
		&d.EndTime,
		&d.PriceCents,
		&d.CreatedAt,
		&d.MovieTitle,
		&d.AuditoriumName,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *showtimeRepository) scanDetails(rows pgx.Rows) ([]*entity.ShowtimeDetail, error) {
	defer rows.Close()

	details := []*entity.ShowtimeDetail{}
	for rows.Next() {
		detail, err := scanShowtimeDetail(rows)
		if err != nil {
			r.log.Error("Failed to scan showtime row", zap.Error(err))
			return nil, fmt.Errorf("scan showtime row: %w", err)
		}
		details = append(details, detail)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate showtime rows: %w", err)
	}

	return details, nil
}
