package request

type CreateBookingRequest struct {
	TableID    int    `json:"table_id" validate:"required,gt=0"`
	TimeSlotID int    `json:"time_slot_id" validate:"required,gt=0"`
	Date       string `json:"date" validate:"required,datetime=2006-01-02"`
}
