package entity

import "github.com/google/uuid"

type ReservationSeatID struct {
	ReservationID uuid.UUID `db:"reservation_id"`
	SeatID        uuid.UUID `db:"seat_id"`
}

// ReservationSeat links a seat to a reservation. ShowtimeID is copied from the
// parent reservation when the link is created and never changes. Active is
// true while the parent reservation is not cancelled.
type ReservationSeat struct {
	ID         ReservationSeatID
	ShowtimeID uuid.UUID `db:"showtime_id"`
	Active     bool      `db:"active"`
}

// NewReservationSeats builds one active link per seat for the reservation.
func NewReservationSeats(reservation *Reservation, seats []*Seat) []ReservationSeat {
	links := make([]ReservationSeat, len(seats))
	for i, seat := range seats {
		links[i] = ReservationSeat{
			ID: ReservationSeatID{
				ReservationID: reservation.ID,
				SeatID:        seat.ID,
			},
			ShowtimeID: reservation.ShowtimeID,
			Active:     true,
		}
	}
	return links
}
