package adaptor

import (
	"cinema-reservation/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Auth        *AuthHandler
	Movie       *MovieHandler
	Showtime    *ShowtimeHandler
	Reservation *ReservationHandler
	Report      *ReportHandler
	User        *UserHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:        NewAuthHandler(service.Auth, log),
		Movie:       NewMovieHandler(service.Movie, log),
		Showtime:    NewShowtimeHandler(service.Showtime, log),
		Reservation: NewReservationHandler(service.Reservation, log),
		Report:      NewReportHandler(service.Report, log),
		User:        NewUserHandler(service.User, log),
	}
}
