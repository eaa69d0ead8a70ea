package wire

import (
	"table-booking/internal/adaptor"
	"table-booking/pkg/middleware"
	"table-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireAdmin mounts the routes reserved for ADMIN_IDS
func wireAdmin(r chi.Router, adminHandler *adaptor.AdminHandler, config *utils.Config, log *zap.Logger) {
	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.Admin(config.Admin, log))

		r.Get("/stats/bookings", adminHandler.BookingStats)
		r.Get("/stats/users", adminHandler.UserStats)
		r.Post("/sweep", adminHandler.Sweep)
	})
}
