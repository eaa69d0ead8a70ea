package response

import (
	"table-booking/internal/data/entity"
)

type TableResponse struct {
	ID          int    `json:"id"`
	Capacity    int    `json:"capacity"`
	Description string `json:"description"`
}

type TimeSlotResponse struct {
	ID        int    `json:"id"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type FreeSlotsResponse struct {
	TableID int                `json:"table_id"`
	Date    string             `json:"date"`
	Slots   []TimeSlotResponse `json:"slots"`
}

type SlotAvailabilityResponse struct {
	TableID    int    `json:"table_id"`
	TimeSlotID int    `json:"time_slot_id"`
	Date       string `json:"date"`
	Free       bool   `json:"free"`
}

// Helper converters
func TableToResponse(table *entity.Table) TableResponse {
	return TableResponse{
		ID:          table.ID,
		Capacity:    table.Capacity,
		Description: table.Description,
	}
}

func TablesToResponse(tables []*entity.Table) []TableResponse {
	out := make([]TableResponse, len(tables))
	for i, t := range tables {
		out[i] = TableToResponse(t)
	}
	return out
}

func TimeSlotToResponse(slot *entity.TimeSlot) TimeSlotResponse {
	return TimeSlotResponse{
		ID:        slot.ID,
		StartTime: slot.StartTime.String(),
		EndTime:   slot.EndTime.String(),
	}
}

func TimeSlotsToResponse(slots []*entity.TimeSlot) []TimeSlotResponse {
	out := make([]TimeSlotResponse, len(slots))
	for i, s := range slots {
		out[i] = TimeSlotToResponse(s)
	}
	return out
}
