package wire

import (
	"table-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

// wireUser registers the caller on first contact
func wireUser(r chi.Router, userHandler *adaptor.UserHandler) {
	r.Post("/users", userHandler.Register)
}
