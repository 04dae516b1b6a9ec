package entity

import (
	"time"

	"github.com/google/uuid"
)

// AuditoriumBuffer is the gap kept around every showtime for cleaning and
// seating before another showtime may use the same auditorium.
const AuditoriumBuffer = 20 * time.Minute

type Showtime struct {
	Base
	MovieID      uuid.UUID `db:"movie_id"`
	AuditoriumID uuid.UUID `db:"auditorium_id"`
	StartTime    time.Time `db:"start_time"`
	EndTime      time.Time `db:"end_time"`
	PriceCents   int       `db:"price_cents"`
}

// ShowtimeDetail is a showtime with its movie title and auditorium name resolved.
type ShowtimeDetail struct {
	Showtime
	MovieTitle     string `db:"movie_title"`
	AuditoriumName string `db:"auditorium_name"`
}

// BufferedWindow returns [start-buffer, end+buffer).
func (s *Showtime) BufferedWindow() (time.Time, time.Time) {
	return s.StartTime.Add(-AuditoriumBuffer), s.EndTime.Add(AuditoriumBuffer)
}

// ConflictsWith reports whether other occupies the same auditorium inside the
// buffered window of s. A showtime never conflicts with itself.
func (s *Showtime) ConflictsWith(other *Showtime) bool {
	if other == nil || s.AuditoriumID != other.AuditoriumID || s.ID == other.ID {
		return false
	}
	windowStart, windowEnd := s.BufferedWindow()
	return other.StartTime.Before(windowEnd) && other.EndTime.After(windowStart)
}

// HasStartedAt reports whether the showtime start is at or before now.
func (s *Showtime) HasStartedAt(now time.Time) bool {
	return !s.StartTime.After(now)
}
