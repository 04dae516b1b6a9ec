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

// ReservationRepository is the booking ledger. Seat exclusivity per showtime
// is enforced by the reservation_seats_active_uq partial unique index, never
// by reading first.
type ReservationRepository interface {
	// CreateWithSeats inserts the reservation and its seat links atomically.
	// It returns ErrSeatTaken when any seat is already actively held.
	CreateWithSeats(ctx context.Context, reservation *entity.Reservation, seats []entity.ReservationSeat) error
	// Cancel flips CONFIRMED to CANCELLED and releases the seat links.
	// It returns ErrAlreadyCancelled when the reservation is not CONFIRMED.
	Cancel(ctx context.Context, reservationID uuid.UUID) error

	FindByID(ctx context.Context, id uuid.UUID) (*entity.Reservation, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Reservation, error)
	FindByShowtimeStartBetween(ctx context.Context, from, to time.Time) ([]*entity.Reservation, error)
	FindSeatIDs(ctx context.Context, reservationID uuid.UUID) ([]uuid.UUID, error)
	FindSeatIDsByReservationIDs(ctx context.Context, reservationIDs []uuid.UUID) (map[uuid.UUID][]uuid.UUID, error)

	FindBookedSeatIDs(ctx context.Context, showtimeID uuid.UUID) ([]uuid.UUID, error)
	CountSeatsByStatus(ctx context.Context, showtimeID uuid.UUID, status entity.ReservationStatus) (int, error)
}

type reservationRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReservationRepository(db database.PgxIface, log *zap.Logger) ReservationRepository {
	return &reservationRepository{
		db:  db,
		log: log.With(zap.String("repository", "reservation")),
	}
}

func (r *reservationRepository) CreateWithSeats(ctx context.Context, reservation *entity.Reservation, seats []entity.ReservationSeat) error {
	if len(seats) == 0 {
		return fmt.Errorf("create reservation %s: no seats", reservation.ID)
	}

	insertReservation := `
		INSERT INTO reservations (id, user_id, showtime_id, status, total_amount_cents, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	insertSeats := `INSERT INTO reservation_seats (reservation_id, seat_id, showtime_id, active) VALUES `
	args := make([]any, 0, len(seats)*4)
	for i, seat := range seats {
		if i > 0 {
			insertSeats += ", "
		}
		insertSeats += fmt.Sprintf("($%d, $%d, $%d, $%d)", i*4+1, i*4+2, i*4+3, i*4+4)
		args = append(args, seat.ID.ReservationID, seat.ID.SeatID, seat.ShowtimeID, seat.Active)
	}

	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, insertReservation,
			reservation.ID,
			reservation.UserID,
			reservation.ShowtimeID,
			reservation.Status,
			reservation.TotalAmountCents,
			reservation.CreatedAt,
		); err != nil {
			return fmt.Errorf("insert reservation: %w", err)
		}

		if _, err := tx.Exec(ctx, insertSeats, args...); err != nil {
			if isUniqueViolation(err, reservationSeatsActiveUnique) {
				return ErrSeatTaken
			}
			return fmt.Errorf("insert reservation seats: %w", err)
		}

		return nil
	})

	if errors.Is(err, ErrSeatTaken) {
		r.log.Warn("Seat already taken",
			zap.String("reservation_id", reservation.ID.String()),
			zap.String("showtime_id", reservation.ShowtimeID.String()),
			zap.Int("seat_count", len(seats)),
		)
		return ErrSeatTaken
	}
	if err != nil {
		r.log.Error("Failed to create reservation",
			zap.Error(err),
			zap.String("reservation_id", reservation.ID.String()),
			zap.String("showtime_id", reservation.ShowtimeID.String()),
		)
		return fmt.Errorf("create reservation %s: %w", reservation.ID, err)
	}

	return nil
}

func (r *reservationRepository) Cancel(ctx context.Context, reservationID uuid.UUID) error {
	cancelReservation := `
		UPDATE reservations
		SET status = $2
		WHERE id = $1 AND status = $3
	`
	releaseSeats := `UPDATE reservation_seats SET active = FALSE WHERE reservation_id = $1`

	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		result, err := tx.Exec(ctx, cancelReservation,
			reservationID,
			entity.ReservationStatusCancelled,
			entity.ReservationStatusConfirmed,
		)
		if err != nil {
			return fmt.Errorf("update reservation status: %w", err)
		}
		if result.RowsAffected() == 0 {
			return ErrAlreadyCancelled
		}

		if _, err := tx.Exec(ctx, releaseSeats, reservationID); err != nil {
			return fmt.Errorf("release reservation seats: %w", err)
		}
		return nil
	})

	if errors.Is(err, ErrAlreadyCancelled) {
		return ErrAlreadyCancelled
	}
	if err != nil {
		r.log.Error("Failed to cancel reservation",
			zap.Error(err),
			zap.String("reservation_id", reservationID.String()),
		)
		return fmt.Errorf("cancel reservation %s: %w", reservationID, err)
	}

	return nil
}

func (r *reservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Reservation, error) {
	query := `
		SELECT id, user_id, showtime_id, status, total_amount_cents, created_at
		FROM reservations
		WHERE id = $1
	`

	reservation, err := scanReservation(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find reservation by ID",
			zap.Error(err),
			zap.String("reservation_id", id.String()),
		)
		return nil, fmt.Errorf("find reservation by id: %w", err)
	}

	return reservation, nil
}

// FindByUserID returns the user's reservations newest first
func (r *reservationRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Reservation, error) {
	query := `
		SELECT id, user_id, showtime_id, status, total_amount_cents, created_at
		FROM reservations
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to find reservations by user",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find reservations by user: %w", err)
	}

	return r.scanReservations(rows)
}

// FindByShowtimeStartBetween returns reservations of showtimes starting in [from, to)
func (r *reservationRepository) FindByShowtimeStartBetween(ctx context.Context, from, to time.Time) ([]*entity.Reservation, error) {
	query := `
		SELECT res.id, res.user_id, res.showtime_id, res.status, res.total_amount_cents, res.created_at
		FROM reservations res
		INNER JOIN showtimes s ON s.id = res.showtime_id
		WHERE s.start_time >= $1 AND s.start_time < $2
		ORDER BY res.created_at, res.id
	`

	rows, err := r.db.Query(ctx, query, from, to)
	if err != nil {
		r.log.Error("Failed to find reservations by showtime start",
			zap.Error(err),
			zap.Time("from", from),
			zap.Time("to", to),
		)
		return nil, fmt.Errorf("find reservations by showtime start: %w", err)
	}

	return r.scanReservations(rows)
}

// FindSeatIDs returns the reservation's seats in row and seat number order
func (r *reservationRepository) FindSeatIDs(ctx context.Context, reservationID uuid.UUID) ([]uuid.UUID, error) {
	query := `
		SELECT rs.seat_id
		FROM reservation_seats rs
		INNER JOIN seats st ON st.id = rs.seat_id
		WHERE rs.reservation_id = $1
		ORDER BY st.row_label, st.seat_number
	`

	rows, err := r.db.Query(ctx, query, reservationID)
	if err != nil {
		r.log.Error("Failed to find reservation seats",
			zap.Error(err),
			zap.String("reservation_id", reservationID.String()),
		)
		return nil, fmt.Errorf("find reservation seats: %w", err)
	}

	return collectIDs(rows)
}

func (r *reservationRepository) FindSeatIDsByReservationIDs(ctx context.Context, reservationIDs []uuid.UUID) (map[uuid.UUID][]uuid.UUID, error) {
	result := make(map[uuid.UUID][]uuid.UUID, len(reservationIDs))
	if len(reservationIDs) == 0 {
		return result, nil
	}

	query := `
		SELECT rs.reservation_id, rs.seat_id
		FROM reservation_seats rs
		INNER JOIN seats st ON st.id = rs.seat_id
		WHERE rs.reservation_id = ANY($1)
		ORDER BY rs.reservation_id, st.row_label, st.seat_number
	`

	rows, err := r.db.Query(ctx, query, reservationIDs)
	if err != nil {
		r.log.Error("Failed to find seats for reservations",
			zap.Error(err),
			zap.Int("reservation_count", len(reservationIDs)),
		)
		return nil, fmt.Errorf("find seats for reservations: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var reservationID, seatID uuid.UUID
		if err := rows.Scan(&reservationID, &seatID); err != nil {
			return nil, fmt.Errorf("scan reservation seat row: %w", err)
		}
		result[reservationID] = append(result[reservationID], seatID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reservation seat rows: %w", err)
	}

	return result, nil
}

// FindBookedSeatIDs returns seats held by active links for the showtime
func (r *reservationRepository) FindBookedSeatIDs(ctx context.Context, showtimeID uuid.UUID) ([]uuid.UUID, error) {
	query := `
		SELECT seat_id
		FROM reservation_seats
		WHERE showtime_id = $1 AND active
		ORDER BY seat_id
	`

	rows, err := r.db.Query(ctx, query, showtimeID)
	if err != nil {
		r.log.Error("Failed to find booked seats",
			zap.Error(err),
			zap.String("showtime_id", showtimeID.String()),
		)
		return nil, fmt.Errorf("find booked seats: %w", err)
	}

	return collectIDs(rows)
}

func (r *reservationRepository) CountSeatsByStatus(ctx context.Context, showtimeID uuid.UUID, status entity.ReservationStatus) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM reservation_seats rs
		INNER JOIN reservations res ON res.id = rs.reservation_id
		WHERE rs.showtime_id = $1 AND res.status = $2
	`

	var count int
	if err := r.db.QueryRow(ctx, query, showtimeID, status).Scan(&count); err != nil {
		r.log.Error("Failed to count seats by status",
			zap.Error(err),
			zap.String("showtime_id", showtimeID.String()),
			zap.String("status", string(status)),
		)
		return 0, fmt.Errorf("count seats by status: %w", err)
	}

	return count, nil
}

func scanReservation(row pgx.Row) (*entity.Reservation, error) {
	var res entity.Reservation
	err := row.Scan(
		&res.ID,
		&res.UserID,
		&res.ShowtimeID,
		&res.Status,
		&res.TotalAmountCents,
		&res.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *reservationRepository) scanReservations(rows pgx.Rows) ([]*entity.Reservation, error) {
	defer rows.Close()

	reservations := []*entity.Reservation{}
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			r.log.Error("Failed to scan reservation row", zap.Error(err))
			return nil, fmt.Errorf("scan reservation row: %w", err)
		}
		reservations = append(reservations, res)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate reservation rows: %w", err)
	}

	return reservations, nil
}

func collectIDs(rows pgx.Rows) ([]uuid.UUID, error) {
	defer rows.Close()

	ids := []uuid.UUID{}
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan id: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ids: %w", err)
	}

	return ids, nil
}
