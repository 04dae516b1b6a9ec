package wire

import (
	"cinema-reservation/internal/adaptor"
	"cinema-reservation/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireShowtime(
	r chi.Router,
	showtimeHandler *adaptor.ShowtimeHandler,
	reservationHandler *adaptor.ReservationHandler,
	limiter *middleware.RateLimiter,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/showtimes/{id}", showtimeHandler.GetShowtime)
	r.Get("/api/showtimes/{id}/seats", reservationHandler.GetSeats)
	r.Get("/api/showtimes/{id}/availability", reservationHandler.GetAvailability)

	// ==================== PROTECTED ROUTES ====================
	r.With(middleware.RequireAuth, limiter.Handler).
		Post("/api/showtimes/{id}/reservations", reservationHandler.Reserve)

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/showtimes", func(r chi.Router) {
		r.Use(middleware.RequireAdmin(log))

		r.Get("/", showtimeHandler.ListAll)
		r.Post("/", showtimeHandler.CreateShowtime)
		r.Put("/{id}", showtimeHandler.UpdateShowtime)
		r.Delete("/{id}", showtimeHandler.DeleteShowtime)
	})
}
