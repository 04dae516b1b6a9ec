package repository

import (
	"cinema-reservation/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User        UserRepository
	Movie       MovieRepository
	Genre       GenreRepository
	Auditorium  AuditoriumRepository
	Seat        SeatRepository
	Showtime    ShowtimeRepository
	Reservation ReservationRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:        NewUserRepository(db, log),
		Movie:       NewMovieRepository(db, log),
		Genre:       NewGenreRepository(db, log),
		Auditorium:  NewAuditoriumRepository(db, log),
		Seat:        NewSeatRepository(db, log),
		Showtime:    NewShowtimeRepository(db, log),
		Reservation: NewReservationRepository(db, log),
	}
}
