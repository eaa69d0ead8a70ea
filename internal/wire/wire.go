// internal/wire/wire.go
package wire

import (
	"net/http"

	"table-booking/internal/adaptor"
	"table-booking/internal/data/repository"
	"table-booking/internal/scheduler"
	"table-booking/internal/usecase"
	"table-booking/pkg/middleware"
	"table-booking/pkg/notify"
	"table-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the wired router and the background sweeper
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
	Sweeper *scheduler.Sweeper
}

// Wiring builds services, handlers and routes
func Wiring(
	repo *repository.Repository,
	config *utils.Config,
	notifier notify.Notifier,
	clock usecase.Clock,
	logger *zap.Logger,
) *App {
	service := usecase.NewService(repo, notifier, clock, logger)
	sweeper := scheduler.NewSweeper(
		service.Lifecycle,
		config.Scheduler.SweepInterval,
		config.Scheduler.SweepTimeout,
		logger,
	)
	handler := adaptor.NewHandler(service, sweeper, logger)

	router := setupRouter(handler, config, logger)

	return &App{
		Router:  router,
		Service: service,
		Sweeper: sweeper,
	}
}

// setupRouter konfigurasi Chi router
func setupRouter(handler *adaptor.Handler, config *utils.Config, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Identity(logger))

		wireCatalog(r, handler.Catalog)
		wireUser(r, handler.User)
		wireBooking(r, handler.Booking)
		wireAdmin(r, handler.Admin, config, logger)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
