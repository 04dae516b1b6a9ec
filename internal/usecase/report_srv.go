package usecase

import (
	"context"
	"time"

	"cinema-reservation/internal/data/entity"
	"cinema-reservation/internal/data/repository"
	"cinema-reservation/internal/dto/response"
	"cinema-reservation/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReportService aggregates the reservations of showtimes that start on one
// UTC day.
type ReportService interface {
	Summary(ctx context.Context, date time.Time) (*response.ReportSummaryResponse, error)
	Showtimes(ctx context.Context, date time.Time) (*response.ReportShowtimesResponse, error)
}

type reportService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewReportService(repo *repository.Repository, log *zap.Logger) ReportService {
	return &reportService{
		repo: repo,
		log:  log.With(zap.String("service", "report")),
	}
}

func (s *reportService) Summary(ctx context.Context, date time.Time) (*response.ReportSummaryResponse, error) {
	from, to := utils.DayBounds(date)

	reservations, err := s.repo.Reservation.FindByShowtimeStartBetween(ctx, from, to)
	if err != nil {
		return nil, internal("failed to load reservations", err)
	}

	summary := &response.ReportSummaryResponse{
		Date:              from.Format(utils.DateLayout),
		TotalReservations: len(reservations),
	}
	for _, res := range reservations {
		switch res.Status {
		case entity.ReservationStatusConfirmed:
			summary.ConfirmedReservations++
			summary.TotalRevenueCents += int64(res.TotalAmountCents)
		case entity.ReservationStatusCancelled:
			summary.CancelledReservations++
		}
	}

	showtimes, err := s.repo.Showtime.FindDetailsByStartBetween(ctx, from, to)
	if err != nil {
		return nil, internal("failed to load showtimes", err)
	}

	capacities := newCapacityCache(s.repo.Seat)
	for _, showtime := range showtimes {
		capacity, err := capacities.get(ctx, showtime.AuditoriumID)
		if err != nil {
			return nil, internal("failed to count seats", err)
		}
		summary.TotalSeatsCapacity += capacity

		confirmed, err := s.repo.Reservation.CountSeatsByStatus(ctx, showtime.ID, entity.ReservationStatusConfirmed)
		if err != nil {
			return nil, internal("failed to count confirmed seats", err)
		}
		cancelled, err := s.repo.Reservation.CountSeatsByStatus(ctx, showtime.ID, entity.ReservationStatusCancelled)
		if err != nil {
			return nil, internal("failed to count cancelled seats", err)
		}
		summary.ConfirmedSeats += confirmed
		summary.CancelledSeats += cancelled
	}

	if summary.TotalSeatsCapacity > 0 {
		summary.OccupancyRate = float64(summary.ConfirmedSeats) / float64(summary.TotalSeatsCapacity)
	}

	s.log.Info("Summary report built",
		zap.String("date", summary.Date),
		zap.Int("showtimes", len(showtimes)),
		zap.Int("reservations", summary.TotalReservations),
	)

	return summary, nil
}

func (s *reportService) Showtimes(ctx context.Context, date time.Time) (*response.ReportShowtimesResponse, error) {
	from, to := utils.DayBounds(date)

	showtimes, err := s.repo.Showtime.FindDetailsByStartBetween(ctx, from, to)
	if err != nil {
		return nil, internal("failed to load showtimes", err)
	}

	reservations, err := s.repo.Reservation.FindByShowtimeStartBetween(ctx, from, to)
	if err != nil {
		return nil, internal("failed to load reservations", err)
	}

	revenue := make(map[uuid.UUID]int64)
	for _, res := range reservations {
		if res.Status == entity.ReservationStatusConfirmed {
			revenue[res.ShowtimeID] += int64(res.TotalAmountCents)
		}
	}

	capacities := newCapacityCache(s.repo.Seat)
	rows := make([]response.ReportShowtimeRow, 0, len(showtimes))
	for _, showtime := range showtimes {
		capacity, err := capacities.get(ctx, showtime.AuditoriumID)
		if err != nil {
			return nil, internal("failed to count seats", err)
		}

		booked, err := s.repo.Reservation.FindBookedSeatIDs(ctx, showtime.ID)
		if err != nil {
			return nil, internal("failed to load booked seats", err)
		}

		rows = append(rows, response.ReportShowtimeRow{
			ShowtimeID:     showtime.ID.String(),
			MovieID:        showtime.MovieID.String(),
			MovieTitle:     showtime.MovieTitle,
			AuditoriumID:   showtime.AuditoriumID.String(),
			AuditoriumName: showtime.AuditoriumName,
			StartTime:      response.FormatTime(showtime.StartTime),
			EndTime:        response.FormatTime(showtime.EndTime),
			PriceCents:     showtime.PriceCents,
			Capacity:       capacity,
			BookedSeats:    len(booked),
			RevenueCents:   revenue[showtime.ID],
		})
	}

	return &response.ReportShowtimesResponse{
		Date: from.Format(utils.DateLayout),
		Rows: rows,
	}, nil
}

// capacityCache counts each auditorium's seats once per report
type capacityCache struct {
	seats  repository.SeatRepository
	counts map[uuid.UUID]int
}

func newCapacityCache(seats repository.SeatRepository) *capacityCache {
	return &capacityCache{seats: seats, counts: make(map[uuid.UUID]int)}
}

func (c *capacityCache) get(ctx context.Context, auditoriumID uuid.UUID) (int, error) {
	if n, ok := c.counts[auditoriumID]; ok {
		return n, nil
	}
	n, err := c.seats.CountByAuditoriumID(ctx, auditoriumID)
	if err != nil {
		return 0, err
	}
	c.counts[auditoriumID] = n
	return n, nil
}
