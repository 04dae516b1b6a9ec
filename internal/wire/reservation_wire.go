package wire

import (
	"cinema-reservation/internal/adaptor"
	"cinema-reservation/pkg/middleware"

	"github.com/go-chi/chi/v5"
)

func wireReservation(r chi.Router, reservationHandler *adaptor.ReservationHandler) {
	r.Route("/api/reservations", func(r chi.Router) {
		r.Use(middleware.RequireAuth)

		r.Get("/mine", reservationHandler.ListMine)
		r.Delete("/{id}", reservationHandler.Cancel)
	})
}
