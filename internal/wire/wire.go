package wire

import (
	"net/http"

	"cinema-reservation/internal/adaptor"
	"cinema-reservation/internal/data/repository"
	"cinema-reservation/internal/events"
	"cinema-reservation/internal/usecase"
	"cinema-reservation/pkg/middleware"
	"cinema-reservation/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// App holds the wired router and the services behind it
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Wiring builds services, handlers and routes. rdb may be nil, which
// disables rate limiting.
func Wiring(
	repo *repository.Repository,
	publisher events.Publisher,
	rdb redis.Scripter,
	config *utils.Config,
	logger *zap.Logger,
) *App {
	service := usecase.NewService(repo, publisher, config, logger)
	handler := adaptor.NewHandler(service, logger)
	limiter := middleware.NewRateLimiter(rdb, config.RateLimit, logger)

	router := setupRouter(handler, limiter, config, logger)

	return &App{
		Router:  router,
		Service: service,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	limiter *middleware.RateLimiter,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.Authenticate(config.JWT.Secret, logger))

	wireAuth(r, handler.Auth)
	wireMovie(r, handler.Movie, handler.Showtime, logger)
	wireShowtime(r, handler.Showtime, handler.Reservation, limiter, logger)
	wireReservation(r, handler.Reservation)
	wireReport(r, handler.Report, logger)
	wireUser(r, handler.User, logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseSuccess(w, "OK", nil)
	})

	return r
}
