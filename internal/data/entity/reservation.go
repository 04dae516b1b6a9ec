package entity

import (
	"math"

	"github.com/google/uuid"
)

type ReservationStatus string

const (
	ReservationStatusConfirmed ReservationStatus = "CONFIRMED"
	ReservationStatusCancelled ReservationStatus = "CANCELLED"
)

type Reservation struct {
	Base
	UserID           uuid.UUID         `db:"user_id"`
	ShowtimeID       uuid.UUID         `db:"showtime_id"`
	Status           ReservationStatus `db:"status"`
	TotalAmountCents int               `db:"total_amount_cents"`
}

func (r *Reservation) IsCancelled() bool {
	return r.Status == ReservationStatusCancelled
}

// MaxAmountCents is the largest total the total_amount_cents column holds
const MaxAmountCents = math.MaxInt32

// TotalAmount is the price of seatCount seats at priceCents each. ok is false
// when the total does not fit in MaxAmountCents.
func TotalAmount(priceCents, seatCount int) (total int, ok bool) {
	if priceCents < 0 || seatCount < 0 {
		return 0, false
	}
	if seatCount > 0 && priceCents > MaxAmountCents/seatCount {
		return 0, false
	}
	return priceCents * seatCount, true
}
