package response

import (
	"cinema-reservation/internal/data/entity"
	"time"
)

type ShowtimeResponse struct {
	ID             string `json:"id"`
	MovieID        string `json:"movie_id"`
	MovieTitle     string `json:"movie_title"`
	AuditoriumID   string `json:"auditorium_id"`
	AuditoriumName string `json:"auditorium_name"`
	StartTime      string `json:"start_time"`
	EndTime        string `json:"end_time"`
	PriceCents     int    `json:"price_cents"`
}

type SeatResponse struct {
	ID         string `json:"id"`
	RowLabel   string `json:"row_label"`
	SeatNumber int    `json:"seat_number"`
	Label      string `json:"label"`
}

type AvailabilityResponse struct {
	ShowtimeID    string   `json:"showtime_id"`
	BookedSeatIDs []string `json:"booked_seat_ids"`
}

func ShowtimeToResponse(s *entity.ShowtimeDetail) ShowtimeResponse {
	return ShowtimeResponse{
		ID:             s.ID.String(),
		MovieID:        s.MovieID.String(),
		MovieTitle:     s.MovieTitle,
		AuditoriumID:   s.AuditoriumID.String(),
		AuditoriumName: s.AuditoriumName,
		StartTime:      FormatTime(s.StartTime),
		EndTime:        FormatTime(s.EndTime),
		PriceCents:     s.PriceCents,
	}
}

func ShowtimesToResponse(details []*entity.ShowtimeDetail) []ShowtimeResponse {
	result := make([]ShowtimeResponse, len(details))
	for i, d := range details {
		result[i] = ShowtimeToResponse(d)
	}
	return result
}

func SeatsToResponse(seats []*entity.Seat) []SeatResponse {
	result := make([]SeatResponse, len(seats))
	for i, seat := range seats {
		result[i] = SeatResponse{
			ID:         seat.ID.String(),
			RowLabel:   seat.RowLabel,
			SeatNumber: seat.SeatNumber,
			Label:      seat.Label(),
		}
	}
	return result
}

// FormatTime renders an instant as RFC 3339 in UTC
func FormatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
