package adaptor

import (
	"errors"
	"io"
	"net/http"

	"table-booking/internal/scheduler"
	"table-booking/internal/usecase"
	"table-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Handler struct {
	Catalog *CatalogHandler
	Booking *BookingHandler
	User    *UserHandler
	Admin   *AdminHandler
}

func NewHandler(service *usecase.Service, sweeper *scheduler.Sweeper, log *zap.Logger) *Handler {
	return &Handler{
		Catalog: NewCatalogHandler(service.Catalog, service.Availability, log),
		Booking: NewBookingHandler(service.Booking, log),
		User:    NewUserHandler(service.User, log),
		Admin:   NewAdminHandler(service.Stats, sweeper, log),
	}
}

func decodeJSON(r io.Reader, v any) error {
	return json.NewDecoder(r).Decode(v)
}

// pathID reads a positive integer chi URL parameter
func pathID(r *http.Request, name string) (int64, error) {
	return utils.ParseID(chi.URLParam(r, name))
}

func pathInt(r *http.Request, name string) (int, error) {
	id, err := pathID(r, name)
	if err != nil {
		return 0, err
	}
	return int(id), nil
}

// handleServiceError maps usecase errors to HTTP responses
func handleServiceError(log *zap.Logger, w http.ResponseWriter, err error, operation string) {
	switch {
	case errors.Is(err, usecase.ErrSlotUnavailable):
		log.Info(operation+" failed - slot unavailable",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseConflict(w, err.Error())

	case errors.Is(err, usecase.ErrNotFound):
		log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, usecase.ErrBookingInPast):
		log.Warn(operation+" failed - slot already passed",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, usecase.ErrInvalidInput):
		log.Warn("Invalid input for "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, err.Error(), nil)

	default:
		log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
