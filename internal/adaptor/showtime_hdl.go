package adaptor

import (
	"net/http"
	"time"

	"cinema-reservation/internal/dto/request"
	"cinema-reservation/internal/usecase"
	"cinema-reservation/pkg/utils"

	"go.uber.org/zap"
)

type ShowtimeHandler struct {
	service usecase.ShowtimeService
	log     *zap.Logger
	now     func() time.Time
}

func NewShowtimeHandler(service usecase.ShowtimeService, log *zap.Logger) *ShowtimeHandler {
	return &ShowtimeHandler{
		service: service,
		log:     log.With(zap.String("handler", "showtime")),
		now:     time.Now,
	}
}

// GetShowtime handles GET /api/showtimes/{id}
func (h *ShowtimeHandler) GetShowtime(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "showtime id")
	if !ok {
		return
	}

	showtime, err := h.service.GetShowtime(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.log, err, "get showtime")
		return
	}

	utils.ResponseSuccess(w, "Showtime retrieved successfully", showtime)
}

// ListForMovie handles GET /api/movies/{id}/showtimes?date=YYYY-MM-DD
func (h *ShowtimeHandler) ListForMovie(w http.ResponseWriter, r *http.Request) {
	movieID, ok := pathID(w, r, "id", "movie id")
	if !ok {
		return
	}
	date, ok := queryDate(w, r, h.now())
	if !ok {
		return
	}

	showtimes, err := h.service.ListForMovieOnDate(r.Context(), movieID, date)
	if err != nil {
		writeServiceError(w, h.log, err, "list showtimes for movie")
		return
	}

	utils.ResponseSuccess(w, "Showtimes retrieved successfully", showtimes)
}

// ListAll handles GET /api/admin/showtimes
func (h *ShowtimeHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	showtimes, err := h.service.ListAll(r.Context())
	if err != nil {
		writeServiceError(w, h.log, err, "list showtimes")
		return
	}

	utils.ResponseSuccess(w, "Showtimes retrieved successfully", showtimes)
}

// CreateShowtime handles POST /api/admin/showtimes
func (h *ShowtimeHandler) CreateShowtime(w http.ResponseWriter, r *http.Request) {
	var req request.ShowtimeUpsertRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	showtime, err := h.service.Create(r.Context(), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "create showtime")
		return
	}

	utils.ResponseCreated(w, "Showtime created successfully", showtime)
}

// UpdateShowtime handles PUT /api/admin/showtimes/{id}
func (h *ShowtimeHandler) UpdateShowtime(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "showtime id")
	if !ok {
		return
	}

	var req request.ShowtimeUpsertRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	showtime, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		writeServiceError(w, h.log, err, "update showtime")
		return
	}

	utils.ResponseSuccess(w, "Showtime updated successfully", showtime)
}

// DeleteShowtime handles DELETE /api/admin/showtimes/{id}
func (h *ShowtimeHandler) DeleteShowtime(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "showtime id")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeServiceError(w, h.log, err, "delete showtime")
		return
	}

	utils.ResponseNoContent(w)
}
