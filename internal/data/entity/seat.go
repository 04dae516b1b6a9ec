package entity

import (
	"fmt"

	"github.com/google/uuid"
)

// Seat is a physical seat inside an auditorium. Seats are static once the
// auditorium is set up.
type Seat struct {
	ID           uuid.UUID `db:"id"`
	AuditoriumID uuid.UUID `db:"auditorium_id"`
	RowLabel     string    `db:"row_label"`   // A, B, C, etc.
	SeatNumber   int       `db:"seat_number"` // 1, 2, 3, etc.
}

// Label formats the seat as "<row>-<number>", e.g. "C-7".
func (s *Seat) Label() string {
	return fmt.Sprintf("%s-%d", s.RowLabel, s.SeatNumber)
}
