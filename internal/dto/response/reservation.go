package response

import (
	"cinema-reservation/internal/data/entity"
)

type ReservationResponse struct {
	ID                string                   `json:"id"`
	ShowtimeID        string                   `json:"showtime_id"`
	MovieTitle        string                   `json:"movie_title"`
	AuditoriumName    string                   `json:"auditorium_name"`
	ShowtimeStartTime string                   `json:"showtime_start_time"`
	ShowtimeEndTime   string                   `json:"showtime_end_time"`
	Status            entity.ReservationStatus `json:"status"`
	TotalAmountCents  int                      `json:"total_amount_cents"`
	CreatedAt         string                   `json:"created_at"`
	SeatIDs           []string                 `json:"seat_ids"`
	SeatLabels        []string                 `json:"seat_labels"`
}

// ReservationToResponse lists seats in the order given
func ReservationToResponse(res *entity.Reservation, showtime *entity.ShowtimeDetail, seats []*entity.Seat) ReservationResponse {
	resp := ReservationResponse{
		ID:               res.ID.String(),
		ShowtimeID:       res.ShowtimeID.String(),
		Status:           res.Status,
		TotalAmountCents: res.TotalAmountCents,
		CreatedAt:        FormatTime(res.CreatedAt),
		SeatIDs:          make([]string, len(seats)),
		SeatLabels:       make([]string, len(seats)),
	}

	if showtime != nil {
		resp.MovieTitle = showtime.MovieTitle
		resp.AuditoriumName = showtime.AuditoriumName
		resp.ShowtimeStartTime = FormatTime(showtime.StartTime)
		resp.ShowtimeEndTime = FormatTime(showtime.EndTime)
	}

	for i, seat := range seats {
		resp.SeatIDs[i] = seat.ID.String()
		resp.SeatLabels[i] = seat.Label()
	}

	return resp
}
