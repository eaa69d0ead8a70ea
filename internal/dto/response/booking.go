package response

import (
	"time"

	"table-booking/internal/data/entity"
	"table-booking/pkg/utils"
)

type BookingResponse struct {
	ID         int64                `json:"id"`
	UserID     int64                `json:"user_id"`
	TableID    int                  `json:"table_id"`
	TimeSlotID int                  `json:"time_slot_id"`
	Date       string               `json:"date"`
	Status     entity.BookingStatus `json:"status"`
	CreatedAt  time.Time            `json:"created_at"`
	UpdatedAt  time.Time            `json:"updated_at"`
}

type BookingDetailResponse struct {
	BookingResponse
	Table    TableResponse    `json:"table"`
	TimeSlot TimeSlotResponse `json:"time_slot"`
}

type UserBookingsResponse struct {
	Count    int64 `json:"count"`
	Bookings any   `json:"bookings"`
}

type CancelBookingResponse struct {
	Affected int64 `json:"affected"`
}

type DeleteBookingResponse struct {
	Removed int64 `json:"removed"`
}

// Helper converters
func BookingToResponse(b *entity.Booking) BookingResponse {
	return BookingResponse{
		ID:         b.ID,
		UserID:     b.UserID,
		TableID:    b.TableID,
		TimeSlotID: b.TimeSlotID,
		Date:       b.Date.Format(utils.DateLayout),
		Status:     b.Status,
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
}

func BookingsToResponse(bookings []*entity.Booking) []BookingResponse {
	out := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		out[i] = BookingToResponse(b)
	}
	return out
}

func BookingDetailsToResponse(details []*entity.BookingDetail) []BookingDetailResponse {
	out := make([]BookingDetailResponse, len(details))
	for i, d := range details {
		out[i] = BookingDetailResponse{
			BookingResponse: BookingToResponse(&d.Booking),
			Table:           TableToResponse(&d.Table),
			TimeSlot:        TimeSlotToResponse(&d.TimeSlot),
		}
	}
	return out
}
