package wire

import (
	"cinema-reservation/internal/adaptor"
	"cinema-reservation/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireUser(r chi.Router, userHandler *adaptor.UserHandler, log *zap.Logger) {
	r.Route("/api/admin/users", func(r chi.Router) {
		r.Use(middleware.RequireAdmin(log))

		r.Get("/", userHandler.ListUsers)
		r.Post("/{id}/promote", userHandler.Promote)
		r.Post("/{id}/demote", userHandler.Demote)
	})
}
