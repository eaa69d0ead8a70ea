package wire

import (
	"table-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireBooking(r chi.Router, bookingHandler *adaptor.BookingHandler) {
	// GET /api/user/bookings - own bookings, ?details=true joins table and slot
	r.Get("/user/bookings", bookingHandler.GetUserBookings)

	r.Route("/bookings", func(r chi.Router) {
		r.Post("/", bookingHandler.CreateBooking)
		r.Put("/{id}/cancel", bookingHandler.CancelBooking)
		r.Delete("/{id}", bookingHandler.DeleteBooking)
	})
}
