package usecase

import (
	"cinema-reservation/internal/data/repository"
	"cinema-reservation/internal/events"
	"cinema-reservation/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth        AuthService
	Movie       MovieService
	Showtime    ShowtimeService
	Reservation ReservationService
	Report      ReportService
	User        UserService
}

func NewService(repo *repository.Repository, publisher events.Publisher, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Auth:        NewAuthService(repo, config, log),
		Movie:       NewMovieService(repo, log),
		Showtime:    NewShowtimeService(repo, log),
		Reservation: NewReservationService(repo, publisher, log),
		Report:      NewReportService(repo, log),
		User:        NewUserService(repo, log),
	}
}
