package adaptor

import (
	"context"
	"net/http"

	"table-booking/internal/dto/response"
	"table-booking/internal/usecase"
	"table-booking/pkg/utils"

	"go.uber.org/zap"
)

// SweepRunner triggers one lifecycle sweep on demand
type SweepRunner interface {
	RunOnce(ctx context.Context) (int64, error)
}

type AdminHandler struct {
	stats   usecase.StatsService
	sweeper SweepRunner
	log     *zap.Logger
}

func NewAdminHandler(stats usecase.StatsService, sweeper SweepRunner, log *zap.Logger) *AdminHandler {
	return &AdminHandler{
		stats:   stats,
		sweeper: sweeper,
		log:     log.With(zap.String("handler", "admin")),
	}
}

// BookingStats handles GET /api/admin/stats/bookings
func (h *AdminHandler) BookingStats(w http.ResponseWriter, r *http.Request) {
	counts, err := h.stats.CountByStatus(r.Context())
	if err != nil {
		handleServiceError(h.log, w, err, "count bookings by status")
		return
	}

	utils.ResponseSuccess(w, "success", counts)
}

// UserStats handles GET /api/admin/stats/users
func (h *AdminHandler) UserStats(w http.ResponseWriter, r *http.Request) {
	users, err := h.stats.CountUsers(r.Context())
	if err != nil {
		handleServiceError(h.log, w, err, "count users")
		return
	}

	utils.ResponseSuccess(w, "success", response.UserStatsResponse{Users: users})
}

// Sweep handles POST /api/admin/sweep
func (h *AdminHandler) Sweep(w http.ResponseWriter, r *http.Request) {
	completed, err := h.sweeper.RunOnce(r.Context())
	if err != nil {
		handleServiceError(h.log, w, err, "sweep past bookings")
		return
	}

	utils.ResponseSuccess(w, "Sweep finished", response.SweepResponse{Completed: completed})
}
