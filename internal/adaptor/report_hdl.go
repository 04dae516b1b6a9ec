package adaptor

import (
	"net/http"
	"time"

	"cinema-reservation/internal/usecase"
	"cinema-reservation/pkg/utils"

	"go.uber.org/zap"
)

type ReportHandler struct {
	service usecase.ReportService
	log     *zap.Logger
	now     func() time.Time
}

func NewReportHandler(service usecase.ReportService, log *zap.Logger) *ReportHandler {
	return &ReportHandler{
		service: service,
		log:     log.With(zap.String("handler", "report")),
		now:     time.Now,
	}
}

// Summary handles GET /api/admin/reports/summary?date=YYYY-MM-DD
func (h *ReportHandler) Summary(w http.ResponseWriter, r *http.Request) {
	date, ok := queryDate(w, r, h.now())
	if !ok {
		return
	}

	summary, err := h.service.Summary(r.Context(), date)
	if err != nil {
		writeServiceError(w, h.log, err, "build summary report")
		return
	}

	utils.ResponseSuccess(w, "Report generated successfully", summary)
}

// Showtimes handles GET /api/admin/reports/showtimes?date=YYYY-MM-DD
func (h *ReportHandler) Showtimes(w http.ResponseWriter, r *http.Request) {
	date, ok := queryDate(w, r, h.now())
	if !ok {
		return
	}

	report, err := h.service.Showtimes(r.Context(), date)
	if err != nil {
		writeServiceError(w, h.log, err, "build showtime report")
		return
	}

	utils.ResponseSuccess(w, "Report generated successfully", report)
}
