package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation = "23505"

	reservationSeatsActiveUnique = "reservation_seats_active_uq"
	usersEmailUnique             = "users_email_key"
)

var (
	// ErrSeatTaken means another active reservation already holds one of the seats
	ErrSeatTaken = errors.New("seat already reserved for this showtime")
	// ErrAlreadyCancelled means the reservation was not in CONFIRMED state
	ErrAlreadyCancelled = errors.New("reservation already cancelled")
	ErrEmailTaken       = errors.New("email already registered")
	// ErrNotFound is returned by writes that matched no row
	ErrNotFound = errors.New("record not found")
	// ErrInUse is returned when a delete is blocked by referencing rows
	ErrInUse = errors.New("record is referenced by other records")
)

// isUniqueViolation reports whether err is a unique violation on the named
// constraint or index. An empty name matches any unique violation.
func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgUniqueViolation {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}
