package wire

import (
	"cinema-reservation/internal/adaptor"
	"cinema-reservation/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireReport(r chi.Router, reportHandler *adaptor.ReportHandler, log *zap.Logger) {
	r.Route("/api/admin/reports", func(r chi.Router) {
		r.Use(middleware.RequireAdmin(log))

		r.Get("/summary", reportHandler.Summary)
		r.Get("/showtimes", reportHandler.Showtimes)
	})
}
