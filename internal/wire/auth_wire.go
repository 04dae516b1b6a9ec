package wire

import (
	"cinema-reservation/internal/adaptor"
	"cinema-reservation/pkg/middleware"

	"github.com/go-chi/chi/v5"
)

func wireAuth(r chi.Router, authHandler *adaptor.AuthHandler) {
	// ==================== PUBLIC ROUTES ====================
	r.Post("/api/auth/signup", authHandler.Signup)
	r.Post("/api/auth/login", authHandler.Login)

	// ==================== PROTECTED ROUTES ====================
	r.With(middleware.RequireAuth).Get("/api/me", authHandler.Me)
}
