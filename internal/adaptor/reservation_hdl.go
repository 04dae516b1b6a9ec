package adaptor

import (
	"net/http"

	"cinema-reservation/internal/dto/request"
	"cinema-reservation/internal/usecase"
	"cinema-reservation/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ReservationHandler struct {
	service usecase.ReservationService
	log     *zap.Logger
}

func NewReservationHandler(service usecase.ReservationService, log *zap.Logger) *ReservationHandler {
	return &ReservationHandler{
		service: service,
		log:     log.With(zap.String("handler", "reservation")),
	}
}

// GetAvailability handles GET /api/showtimes/{id}/availability
func (h *ReservationHandler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	showtimeID, ok := pathID(w, r, "id", "showtime id")
	if !ok {
		return
	}

	availability, err := h.service.Availability(r.Context(), showtimeID)
	if err != nil {
		writeServiceError(w, h.log, err, "get availability")
		return
	}

	utils.ResponseSuccess(w, "Availability retrieved successfully", availability)
}

// GetSeats handles GET /api/showtimes/{id}/seats
func (h *ReservationHandler) GetSeats(w http.ResponseWriter, r *http.Request) {
	showtimeID, ok := pathID(w, r, "id", "showtime id")
	if !ok {
		return
	}

	seats, err := h.service.ShowtimeSeats(r.Context(), showtimeID)
	if err != nil {
		writeServiceError(w, h.log, err, "get seats")
		return
	}

	utils.ResponseSuccess(w, "Seats retrieved successfully", seats)
}

// Reserve handles POST /api/showtimes/{id}/reservations
func (h *ReservationHandler) Reserve(w http.ResponseWriter, r *http.Request) {
	showtimeID, ok := pathID(w, r, "id", "showtime id")
	if !ok {
		return
	}

	var req request.ReserveRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	seatIDs := make([]uuid.UUID, 0, len(req.SeatIDs))
	for _, raw := range req.SeatIDs {
		id, err := utils.ParseUUID(raw, "seat id")
		if err != nil {
			utils.ResponseBadRequest(w, err.Error(), nil)
			return
		}
		seatIDs = append(seatIDs, id)
	}

	reservation, err := h.service.Reserve(r.Context(), requesterFrom(r), showtimeID, seatIDs)
	if err != nil {
		writeServiceError(w, h.log, err, "reserve seats")
		return
	}

	utils.ResponseCreated(w, "Reservation confirmed", reservation)
}

// ListMine handles GET /api/reservations/mine
func (h *ReservationHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	reservations, err := h.service.MyReservations(r.Context(), requesterFrom(r))
	if err != nil {
		writeServiceError(w, h.log, err, "list reservations")
		return
	}

	utils.ResponseSuccess(w, "Reservations retrieved successfully", reservations)
}

// Cancel handles DELETE /api/reservations/{id}
func (h *ReservationHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	reservationID, ok := pathID(w, r, "id", "reservation id")
	if !ok {
		return
	}

	if err := h.service.Cancel(r.Context(), requesterFrom(r), reservationID); err != nil {
		writeServiceError(w, h.log, err, "cancel reservation")
		return
	}

	utils.ResponseNoContent(w)
}
