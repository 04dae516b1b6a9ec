package repository

import (
	"context"
	"fmt"

	"cinema-reservation/internal/data/entity"
	"cinema-reservation/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// SeatRepository reads the static seat catalog
type SeatRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Seat, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Seat, error)
	FindByAuditoriumID(ctx context.Context, auditoriumID uuid.UUID) ([]*entity.Seat, error)
	CountByAuditoriumID(ctx context.Context, auditoriumID uuid.UUID) (int, error)
}

type seatRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewSeatRepository(db database.PgxIface, log *zap.Logger) SeatRepository {
	return &seatRepository{
		db:  db,
		log: log.With(zap.String("repository", "seat")),
	}
}

func (r *seatRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Seat, error) {
	query := `
		SELECT id, auditorium_id, row_label, seat_number
		FROM seats
		WHERE id = $1
	`

	var seat entity.Seat
	err := r.db.QueryRow(ctx, query, id).Scan(
		&seat.ID,
		&seat.AuditoriumID,
		&seat.RowLabel,
		&seat.SeatNumber,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find seat by ID",
			zap.Error(err),
			zap.String("seat_id", id.String()),
		)
		return nil, fmt.Errorf("failed to find seat: %w", err)
	}

	return &seat, nil
}

// FindByIDs returns the seats that exist among ids, in any auditorium.
// Unknown IDs are silently absent from the result.
func (r *seatRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Seat, error) {
	if len(ids) == 0 {
		return []*entity.Seat{}, nil
	}

	query := `
		SELECT id, auditorium_id, row_label, seat_number
		FROM seats
		WHERE id = ANY($1)
		ORDER BY row_label, seat_number
	`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		r.log.Error("Failed to find seats by IDs",
			zap.Error(err),
			zap.Int("seat_count", len(ids)),
		)
		return nil, fmt.Errorf("failed to find seats: %w", err)
	}

	return r.scanSeats(rows)
}

func (r *seatRepository) FindByAuditoriumID(ctx context.Context, auditoriumID uuid.UUID) ([]*entity.Seat, error) {
	query := `
		SELECT id, auditorium_id, row_label, seat_number
		FROM seats
		WHERE auditorium_id = $1
		ORDER BY row_label, seat_number
	`

	rows, err := r.db.Query(ctx, query, auditoriumID)
	if err != nil {
		r.log.Error("Failed to find seats by auditorium ID",
			zap.Error(err),
			zap.String("auditorium_id", auditoriumID.String()),
		)
		return nil, fmt.Errorf("failed to find seats: %w", err)
	}

	return r.scanSeats(rows)
}

func (r *seatRepository) CountByAuditoriumID(ctx context.Context, auditoriumID uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM seats WHERE auditorium_id = $1`

	var count int
	if err := r.db.QueryRow(ctx, query, auditoriumID).Scan(&count); err != nil {
		r.log.Error("Failed to count seats",
			zap.Error(err),
			zap.String("auditorium_id", auditoriumID.String()),
		)
		return 0, fmt.Errorf("count seats: %w", err)
	}

	return count, nil
}

func (r *seatRepository) scanSeats(rows pgx.Rows) ([]*entity.Seat, error) {
	defer rows.Close()

	seats := []*entity.Seat{}
	for rows.Next() {
		var seat entity.Seat
		err := rows.Scan(
			&seat.ID,
			&seat.AuditoriumID,
			&seat.RowLabel,
			&seat.SeatNumber,
		)
		if err != nil {
			r.log.Error("Failed to scan seat row", zap.Error(err))
			return nil, fmt.Errorf("failed to scan seat: %w", err)
		}
		seats = append(seats, &seat)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate seat rows: %w", err)
	}

	return seats, nil
}
