package usecase

import (
	"context"
	"errors"
	"time"

	"cinema-reservation/internal/data/entity"
	"cinema-reservation/internal/data/repository"
	"cinema-reservation/internal/dto/request"
	"cinema-reservation/internal/dto/response"
	"cinema-reservation/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ShowtimeService interface {
	GetShowtime(ctx context.Context, id uuid.UUID) (*response.ShowtimeResponse, error)
	ListForMovieOnDate(ctx context.Context, movieID uuid.UUID, date time.Time) ([]response.ShowtimeResponse, error)
	ListAll(ctx context.Context) ([]response.ShowtimeResponse, error)
	Create(ctx context.Context, req *request.ShowtimeUpsertRequest) (*response.ShowtimeResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *request.ShowtimeUpsertRequest) (*response.ShowtimeResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type showtimeService struct {
	repo *repository.Repository
	log  *zap.Logger
	now  func() time.Time
}

func NewShowtimeService(repo *repository.Repository, log *zap.Logger) ShowtimeService {
	return &showtimeService{
		repo: repo,
		log:  log.With(zap.String("service", "showtime")),
		now:  time.Now,
	}
}

func (s *showtimeService) GetShowtime(ctx context.Context, id uuid.UUID) (*response.ShowtimeResponse, error) {
	showtime, err := s.repo.Showtime.FindDetailByID(ctx, id)
	if err != nil {
		return nil, internal("failed to load showtime", err)
	}
	if showtime == nil {
		return nil, notFound("showtime not found")
	}

	resp := response.ShowtimeToResponse(showtime)
	return &resp, nil
}

func (s *showtimeService) ListForMovieOnDate(ctx context.Context, movieID uuid.UUID, date time.Time) ([]response.ShowtimeResponse, error) {
	movie, err := s.repo.Movie.FindByID(ctx, movieID)
	if err != nil {
		return nil, internal("failed to load movie", err)
	}
	if movie == nil {
		return nil, notFound("movie not found")
	}

	from, to := utils.DayBounds(date)
	showtimes, err := s.repo.Showtime.FindDetailsByMovieBetween(ctx, movieID, from, to)
	if err != nil {
		return nil, internal("failed to load showtimes", err)
	}

	return response.ShowtimesToResponse(showtimes), nil
}

func (s *showtimeService) ListAll(ctx context.Context) ([]response.ShowtimeResponse, error) {
	showtimes, err := s.repo.Showtime.FindDetails(ctx)
	if err != nil {
		return nil, internal("failed to load showtimes", err)
	}
	return response.ShowtimesToResponse(showtimes), nil
}

func (s *showtimeService) Create(ctx context.Context, req *request.ShowtimeUpsertRequest) (*response.ShowtimeResponse, error) {
	showtime, err := s.buildShowtime(ctx, uuid.New(), req)
	if err != nil {
		return nil, err
	}
	showtime.CreatedAt = s.now().UTC()

	if err := s.repo.Showtime.Create(ctx, showtime); err != nil {
		return nil, internal("failed to create showtime", err)
	}

	s.log.Info("Showtime created",
		zap.String("showtime_id", showtime.ID.String()),
		zap.String("auditorium_id", showtime.AuditoriumID.String()),
		zap.Time("start_time", showtime.StartTime),
	)

	return s.GetShowtime(ctx, showtime.ID)
}

func (s *showtimeService) Update(ctx context.Context, id uuid.UUID, req *request.ShowtimeUpsertRequest) (*response.ShowtimeResponse, error) {
	existing, err := s.repo.Showtime.FindByID(ctx, id)
	if err != nil {
		return nil, internal("failed to load showtime", err)
	}
	if existing == nil {
		return nil, notFound("showtime not found")
	}

	showtime, err := s.buildShowtime(ctx, id, req)
	if err != nil {
		return nil, err
	}
	showtime.CreatedAt = existing.CreatedAt

	if showtime.AuditoriumID != existing.AuditoriumID {
		booked, err := s.bookedSeatCount(ctx, id)
		if err != nil {
			return nil, internal("failed to count reserved seats", err)
		}
		if booked > 0 {
			s.log.Warn("Auditorium change blocked by reservations",
				zap.String("showtime_id", id.String()),
				zap.Int("reserved_seats", booked),
			)
			return nil, invalidRequest("showtime has reservations and cannot change auditorium")
		}
	}

	err = s.repo.Showtime.Update(ctx, showtime)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, notFound("showtime not found")
	}
	if err != nil {
		return nil, internal("failed to update showtime", err)
	}

	s.log.Info("Showtime updated", zap.String("showtime_id", id.String()))

	return s.GetShowtime(ctx, id)
}

func (s *showtimeService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.repo.Showtime.Delete(ctx, id)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return notFound("showtime not found")
	case errors.Is(err, repository.ErrInUse):
		return invalidRequest("showtime has reservations and cannot be deleted")
	case err != nil:
		return internal("failed to delete showtime", err)
	}

	s.log.Info("Showtime deleted", zap.String("showtime_id", id.String()))
	return nil
}

// bookedSeatCount counts seat links of every reservation on the showtime.
// Cancelled ones count too since their seats still name the auditorium.
func (s *showtimeService) bookedSeatCount(ctx context.Context, id uuid.UUID) (int, error) {
	total := 0
	for _, status := range []entity.ReservationStatus{entity.ReservationStatusConfirmed, entity.ReservationStatusCancelled} {
		count, err := s.repo.Reservation.CountSeatsByStatus(ctx, id, status)
		if err != nil {
			return 0, err
		}
		total += count
	}
	return total, nil
}

// buildShowtime validates req and returns the showtime it describes under id.
// The auditorium conflict check excludes id so an update never collides with
// its own previous window.
func (s *showtimeService) buildShowtime(ctx context.Context, id uuid.UUID, req *request.ShowtimeUpsertRequest) (*entity.Showtime, error) {
	movieID, err := utils.ParseUUID(req.MovieID, "movie_id")
	if err != nil {
		return nil, invalidRequest(err.Error())
	}
	auditoriumID, err := utils.ParseUUID(req.AuditoriumID, "auditorium_id")
	if err != nil {
		return nil, invalidRequest(err.Error())
	}
	if req.PriceCents == nil || *req.PriceCents < 0 {
		return nil, invalidRequest("price_cents must be zero or greater")
	}

	showtime := &entity.Showtime{
		Base:         entity.Base{ID: id},
		MovieID:      movieID,
		AuditoriumID: auditoriumID,
		StartTime:    req.StartTime.UTC(),
		EndTime:      req.EndTime.UTC(),
		PriceCents:   *req.PriceCents,
	}
	if !showtime.EndTime.After(showtime.StartTime) {
		return nil, invalidRequest("end_time must be after start_time")
	}

	movie, err := s.repo.Movie.FindByID(ctx, movieID)
	if err != nil {
		return nil, internal("failed to load movie", err)
	}
	if movie == nil {
		return nil, notFound("movie not found")
	}

	auditorium, err := s.repo.Auditorium.FindByID(ctx, auditoriumID)
	if err != nil {
		return nil, internal("failed to load auditorium", err)
	}
	if auditorium == nil {
		return nil, notFound("auditorium not found")
	}

	windowStart, windowEnd := showtime.BufferedWindow()
	conflict, err := s.repo.Showtime.ExistsAuditoriumConflict(ctx, auditoriumID, id, windowStart, windowEnd)
	if err != nil {
		return nil, internal("failed to check auditorium schedule", err)
	}
	if conflict {
		s.log.Warn("Showtime overlaps auditorium schedule",
			zap.String("auditorium_id", auditoriumID.String()),
			zap.Time("start_time", showtime.StartTime),
			zap.Time("end_time", showtime.EndTime),
		)
		return nil, invalidRequest("auditorium is already booked within 20 minutes of this showtime")
	}

	return showtime, nil
}
