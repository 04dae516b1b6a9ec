package request

import "time"

type ShowtimeUpsertRequest struct {
	MovieID      string    `json:"movie_id" validate:"required,uuid"`
	AuditoriumID string    `json:"auditorium_id" validate:"required,uuid"`
	StartTime    time.Time `json:"start_time" validate:"required"`
	EndTime      time.Time `json:"end_time" validate:"required"`
	PriceCents   *int      `json:"price_cents" validate:"required"`
}
