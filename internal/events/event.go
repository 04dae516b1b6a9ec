// Package events publishes reservation lifecycle events to the message broker.
package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	TypeReservationConfirmed = "reservation.confirmed"
	TypeReservationCancelled = "reservation.cancelled"
)

// ReservationEvent is the payload of both lifecycle events. Type doubles as
// the queue name.
type ReservationEvent struct {
	Type             string    `json:"type"`
	ReservationID    uuid.UUID `json:"reservation_id"`
	UserID           uuid.UUID `json:"user_id"`
	ShowtimeID       uuid.UUID `json:"showtime_id"`
	MovieTitle       string    `json:"movie_title"`
	AuditoriumName   string    `json:"auditorium_name"`
	StartTime        string    `json:"start_time"`
	SeatLabels       []string  `json:"seats"`
	TotalAmountCents int       `json:"total_amount_cents"`
	OccurredAt       time.Time `json:"occurred_at"`
}
