package usecase

import (
	"context"
	"errors"
	"time"

	"cinema-reservation/internal/data/entity"
	"cinema-reservation/internal/data/repository"
	"cinema-reservation/internal/dto/response"
	"cinema-reservation/internal/events"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const publishTimeout = 3 * time.Second

// ReservationService books and releases seats. Seat exclusivity is decided
// by the ledger write alone; availability is never consulted before booking.
type ReservationService interface {
	Availability(ctx context.Context, showtimeID uuid.UUID) (*response.AvailabilityResponse, error)
	ShowtimeSeats(ctx context.Context, showtimeID uuid.UUID) ([]response.SeatResponse, error)
	Reserve(ctx context.Context, requester *Requester, showtimeID uuid.UUID, seatIDs []uuid.UUID) (*response.ReservationResponse, error)
	MyReservations(ctx context.Context, requester *Requester) ([]response.ReservationResponse, error)
	Cancel(ctx context.Context, requester *Requester, reservationID uuid.UUID) error
}

type reservationService struct {
	repo      *repository.Repository
	publisher events.Publisher
	log       *zap.Logger
	now       func() time.Time
}

func NewReservationService(repo *repository.Repository, publisher events.Publisher, log *zap.Logger) ReservationService {
	return newReservationService(repo, publisher, log)
}

func newReservationService(repo *repository.Repository, publisher events.Publisher, log *zap.Logger) *reservationService {
	return &reservationService{
		repo:      repo,
		publisher: publisher,
		log:       log.With(zap.String("service", "reservation")),
		now:       time.Now,
	}
}

func (s *reservationService) Availability(ctx context.Context, showtimeID uuid.UUID) (*response.AvailabilityResponse, error) {
	showtime, err := s.repo.Showtime.FindByID(ctx, showtimeID)
	if err != nil {
		return nil, internal("failed to load showtime", err)
	}
	if showtime == nil {
		return nil, notFound("showtime not found")
	}

	booked, err := s.repo.Reservation.FindBookedSeatIDs(ctx, showtimeID)
	if err != nil {
		return nil, internal("failed to load booked seats", err)
	}

	ids := make([]string, len(booked))
	for i, id := range booked {
		ids[i] = id.String()
	}

	return &response.AvailabilityResponse{
		ShowtimeID:    showtimeID.String(),
		BookedSeatIDs: ids,
	}, nil
}

func (s *reservationService) ShowtimeSeats(ctx context.Context, showtimeID uuid.UUID) ([]response.SeatResponse, error) {
	showtime, err := s.repo.Showtime.FindByID(ctx, showtimeID)
	if err != nil {
		return nil, internal("failed to load showtime", err)
	}
	if showtime == nil {
		return nil, notFound("showtime not found")
	}

	seats, err := s.repo.Seat.FindByAuditoriumID(ctx, showtime.AuditoriumID)
	if err != nil {
		return nil, internal("failed to load seats", err)
	}

	return response.SeatsToResponse(seats), nil
}

func (s *reservationService) Reserve(ctx context.Context, requester *Requester, showtimeID uuid.UUID, seatIDs []uuid.UUID) (*response.ReservationResponse, error) {
	if requester == nil {
		return nil, unauthorized("authentication required")
	}

	showtime, err := s.repo.Showtime.FindDetailByID(ctx, showtimeID)
	if err != nil {
		return nil, internal("failed to load showtime", err)
	}
	if showtime == nil {
		return nil, notFound("showtime not found")
	}

	unique := uniqueIDs(seatIDs)
	if len(unique) == 0 {
		return nil, invalidRequest("seat_ids must not be empty")
	}

	seats, err := s.repo.Seat.FindByIDs(ctx, unique)
	if err != nil {
		return nil, internal("failed to load seats", err)
	}
	if len(seats) < len(unique) {
		return nil, invalidRequest("one or more seats not found")
	}

	for _, seat := range seats {
		if seat.AuditoriumID != showtime.AuditoriumID {
			s.log.Warn("Seat from another auditorium",
				zap.String("seat_id", seat.ID.String()),
				zap.String("showtime_id", showtimeID.String()),
			)
			return nil, invalidRequest("seat does not belong to showtime auditorium")
		}
	}

	total, ok := entity.TotalAmount(showtime.PriceCents, len(seats))
	if !ok {
		return nil, invalidRequest("reservation total exceeds the maximum amount")
	}

	reservation := &entity.Reservation{
		Base:             entity.NewBase(s.now()),
		UserID:           requester.UserID,
		ShowtimeID:       showtime.ID,
		Status:           entity.ReservationStatusConfirmed,
		TotalAmountCents: total,
	}

	err = s.repo.Reservation.CreateWithSeats(ctx, reservation, entity.NewReservationSeats(reservation, seats))
	if errors.Is(err, repository.ErrSeatTaken) {
		return nil, seatConflict("one or more selected seats are already booked", err)
	}
	if err != nil {
		return nil, internal("failed to create reservation", err)
	}

	s.log.Info("Reservation confirmed",
		zap.String("reservation_id", reservation.ID.String()),
		zap.String("user_id", requester.UserID.String()),
		zap.String("showtime_id", showtimeID.String()),
		zap.Int("seat_count", len(seats)),
		zap.Int("total_amount_cents", reservation.TotalAmountCents),
	)

	s.publish(ctx, events.TypeReservationConfirmed, reservation, showtime, seats)

	resp := response.ReservationToResponse(reservation, showtime, seats)
	return &resp, nil
}

func (s *reservationService) MyReservations(ctx context.Context, requester *Requester) ([]response.ReservationResponse, error) {
	if requester == nil {
		return nil, unauthorized("authentication required")
	}

	reservations, err := s.repo.Reservation.FindByUserID(ctx, requester.UserID)
	if err != nil {
		return nil, internal("failed to load reservations", err)
	}
	if len(reservations) == 0 {
		return []response.ReservationResponse{}, nil
	}

	reservationIDs := make([]uuid.UUID, len(reservations))
	for i, res := range reservations {
		reservationIDs[i] = res.ID
	}

	seatIDsByReservation, err := s.repo.Reservation.FindSeatIDsByReservationIDs(ctx, reservationIDs)
	if err != nil {
		return nil, internal("failed to load reservation seats", err)
	}

	var allSeatIDs []uuid.UUID
	for _, ids := range seatIDsByReservation {
		allSeatIDs = append(allSeatIDs, ids...)
	}

	seats, err := s.repo.Seat.FindByIDs(ctx, uniqueIDs(allSeatIDs))
	if err != nil {
		return nil, internal("failed to load seats", err)
	}
	seatByID := make(map[uuid.UUID]*entity.Seat, len(seats))
	for _, seat := range seats {
		seatByID[seat.ID] = seat
	}

	showtimes := make(map[uuid.UUID]*entity.ShowtimeDetail)
	result := make([]response.ReservationResponse, 0, len(reservations))
	for _, res := range reservations {
		showtime, ok := showtimes[res.ShowtimeID]
		if !ok {
			showtime, err = s.repo.Showtime.FindDetailByID(ctx, res.ShowtimeID)
			if err != nil {
				return nil, internal("failed to load showtime", err)
			}
			showtimes[res.ShowtimeID] = showtime
		}

		resSeats := make([]*entity.Seat, 0, len(seatIDsByReservation[res.ID]))
		for _, id := range seatIDsByReservation[res.ID] {
			if seat, ok := seatByID[id]; ok {
				resSeats = append(resSeats, seat)
			}
		}

		result = append(result, response.ReservationToResponse(res, showtime, resSeats))
	}

	return result, nil
}

func (s *reservationService) Cancel(ctx context.Context, requester *Requester, reservationID uuid.UUID) error {
	if requester == nil {
		return unauthorized("authentication required")
	}

	reservation, err := s.repo.Reservation.FindByID(ctx, reservationID)
	if err != nil {
		return internal("failed to load reservation", err)
	}
	if reservation == nil {
		return notFound("reservation not found")
	}

	if reservation.UserID != requester.UserID {
		s.log.Warn("Cancel attempt by non-owner",
			zap.String("reservation_id", reservationID.String()),
			zap.String("user_id", requester.UserID.String()),
		)
		return forbidden("not allowed to cancel this reservation")
	}

	showtime, err := s.repo.Showtime.FindDetailByID(ctx, reservation.ShowtimeID)
	if err != nil {
		return internal("failed to load showtime", err)
	}
	if showtime == nil {
		return notFound("showtime not found")
	}

	if showtime.HasStartedAt(s.now()) {
		return invalidRequest("only upcoming reservations can be cancelled")
	}
	if reservation.IsCancelled() {
		return invalidRequest("reservation already cancelled")
	}

	err = s.repo.Reservation.Cancel(ctx, reservationID)
	if errors.Is(err, repository.ErrAlreadyCancelled) {
		return invalidRequest("reservation already cancelled")
	}
	if err != nil {
		return internal("failed to cancel reservation", err)
	}

	reservation.Status = entity.ReservationStatusCancelled

	s.log.Info("Reservation cancelled",
		zap.String("reservation_id", reservationID.String()),
		zap.String("user_id", requester.UserID.String()),
	)

	seatIDs, err := s.repo.Reservation.FindSeatIDs(ctx, reservationID)
	if err != nil {
		s.log.Warn("Failed to load seats for cancel event", zap.Error(err))
	}
	seats, err := s.repo.Seat.FindByIDs(ctx, seatIDs)
	if err != nil {
		s.log.Warn("Failed to load seat labels for cancel event", zap.Error(err))
	}
	s.publish(ctx, events.TypeReservationCancelled, reservation, showtime, seats)

	return nil
}

// publish never fails the caller; the booking outcome is already committed
func (s *reservationService) publish(ctx context.Context, eventType string, res *entity.Reservation, showtime *entity.ShowtimeDetail, seats []*entity.Seat) {
	if s.publisher == nil {
		return
	}

	labels := make([]string, len(seats))
	for i, seat := range seats {
		labels[i] = seat.Label()
	}

	event := events.ReservationEvent{
		Type:             eventType,
		ReservationID:    res.ID,
		UserID:           res.UserID,
		ShowtimeID:       res.ShowtimeID,
		MovieTitle:       showtime.MovieTitle,
		AuditoriumName:   showtime.AuditoriumName,
		StartTime:        response.FormatTime(showtime.StartTime),
		SeatLabels:       labels,
		TotalAmountCents: res.TotalAmountCents,
		OccurredAt:       s.now().UTC(),
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := s.publisher.Publish(ctx, event); err != nil {
		s.log.Error("Failed to publish reservation event",
			zap.Error(err),
			zap.String("type", eventType),
			zap.String("reservation_id", res.ID.String()),
		)
	}
}

// uniqueIDs drops duplicates and keeps first-seen order
func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	unique := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	return unique
}
