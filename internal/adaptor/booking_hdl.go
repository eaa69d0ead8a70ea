package adaptor

import (
	"net/http"

	"table-booking/internal/dto/request"
	"table-booking/internal/dto/response"
	"table-booking/internal/usecase"
	"table-booking/pkg/utils"

	"go.uber.org/zap"
)

type BookingHandler struct {
	service usecase.BookingService
	log     *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log.With(zap.String("handler", "booking")),
	}
}

// CreateBooking handles POST /api/bookings
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateBookingRequest
	if err := decodeJSON(r.Body, &req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	date, err := utils.ParseDate(req.Date)
	if err != nil {
		utils.ResponseBadRequest(w, err.Error(), nil)
		return
	}

	booking, err := h.service.Create(r.Context(), userID, req.TableID, date, req.TimeSlotID)
	if err != nil {
		handleServiceError(h.log, w, err, "create booking")
		return
	}

	utils.ResponseCreated(w, "Booking created", response.BookingToResponse(booking))
}

// GetUserBookings handles GET /api/user/bookings[?details=true]
func (h *BookingHandler) GetUserBookings(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	count, err := h.service.CountForUser(r.Context(), userID)
	if err != nil {
		handleServiceError(h.log, w, err, "count user bookings")
		return
	}

	if r.URL.Query().Get("details") == "true" {
		details, err := h.service.ListForUserWithDetails(r.Context(), userID)
		if err != nil {
			handleServiceError(h.log, w, err, "get user booking details")
			return
		}
		utils.ResponseSuccess(w, "success", response.UserBookingsResponse{
			Count:    count,
			Bookings: response.BookingDetailsToResponse(details),
		})
		return
	}

	bookings, err := h.service.ListForUser(r.Context(), userID)
	if err != nil {
		handleServiceError(h.log, w, err, "get user bookings")
		return
	}

	utils.ResponseSuccess(w, "success", response.UserBookingsResponse{
		Count:    count,
		Bookings: response.BookingsToResponse(bookings),
	})
}

// CancelBooking handles PUT /api/bookings/{id}/cancel
func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	bookingID, err := pathID(r, "id")
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid booking ID", nil)
		return
	}

	affected, err := h.service.Cancel(r.Context(), userID, bookingID)
	if err != nil {
		handleServiceError(h.log, w, err, "cancel booking")
		return
	}

	utils.ResponseSuccess(w, "success", response.CancelBookingResponse{Affected: affected})
}

// DeleteBooking handles DELETE /api/bookings/{id}
func (h *BookingHandler) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	bookingID, err := pathID(r, "id")
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid booking ID", nil)
		return
	}

	removed, err := h.service.Delete(r.Context(), userID, bookingID)
	if err != nil {
		handleServiceError(h.log, w, err, "delete booking")
		return
	}

	utils.ResponseSuccess(w, "success", response.DeleteBookingResponse{Removed: removed})
}
