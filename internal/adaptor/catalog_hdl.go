package adaptor

import (
	"net/http"
	"strconv"

	"table-booking/internal/dto/response"
	"table-booking/internal/usecase"
	"table-booking/pkg/utils"

	"go.uber.org/zap"
)

type CatalogHandler struct {
	catalog      usecase.CatalogService
	availability usecase.AvailabilityService
	log          *zap.Logger
}

func NewCatalogHandler(catalog usecase.CatalogService, availability usecase.AvailabilityService, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalog:      catalog,
		availability: availability,
		log:          log.With(zap.String("handler", "catalog")),
	}
}

// ListTimeSlots handles GET /api/time-slots
func (h *CatalogHandler) ListTimeSlots(w http.ResponseWriter, r *http.Request) {
	slots, err := h.catalog.ListTimeSlots(r.Context())
	if err != nil {
		handleServiceError(h.log, w, err, "list time slots")
		return
	}

	utils.ResponseSuccess(w, "success", response.TimeSlotsToResponse(slots))
}

// ListTables handles GET /api/tables?capacity=N
func (h *CatalogHandler) ListTables(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("capacity")
	if raw == "" {
		tables, err := h.catalog.ListTables(r.Context())
		if err != nil {
			handleServiceError(h.log, w, err, "list tables")
			return
		}
		utils.ResponseSuccess(w, "success", response.TablesToResponse(tables))
		return
	}

	capacity, err := strconv.Atoi(raw)
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid capacity", map[string]string{"capacity": "Must be an integer"})
		return
	}

	tables, err := h.catalog.ListTablesByCapacity(r.Context(), capacity)
	if err != nil {
		handleServiceError(h.log, w, err, "list tables by capacity")
		return
	}

	utils.ResponseSuccess(w, "success", response.TablesToResponse(tables))
}

// GetTable handles GET /api/tables/{id}
func (h *CatalogHandler) GetTable(w http.ResponseWriter, r *http.Request) {
	tableID, err := pathInt(r, "id")
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid table ID", nil)
		return
	}

	table, err := h.catalog.GetTable(r.Context(), tableID)
	if err != nil {
		handleServiceError(h.log, w, err, "get table")
		return
	}

	utils.ResponseSuccess(w, "success", response.TableToResponse(table))
}

// FreeSlots handles GET /api/tables/{id}/free-slots?date=YYYY-MM-DD
func (h *CatalogHandler) FreeSlots(w http.ResponseWriter, r *http.Request) {
	tableID, err := pathInt(r, "id")
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid table ID", nil)
		return
	}

	date, err := utils.ParseDate(r.URL.Query().Get("date"))
	if err != nil {
		utils.ResponseBadRequest(w, err.Error(), nil)
		return
	}

	if _, err := h.catalog.GetTable(r.Context(), tableID); err != nil {
		handleServiceError(h.log, w, err, "get table")
		return
	}

	slots, err := h.availability.FreeSlots(r.Context(), tableID, date)
	if err != nil {
		handleServiceError(h.log, w, err, "resolve free slots")
		return
	}

	utils.ResponseSuccess(w, "success", response.FreeSlotsResponse{
		TableID: tableID,
		Date:    date.Format(utils.DateLayout),
		Slots:   response.TimeSlotsToResponse(slots),
	})
}

// SlotFree handles GET /api/tables/{id}/slots/{slotId}/free?date=YYYY-MM-DD
func (h *CatalogHandler) SlotFree(w http.ResponseWriter, r *http.Request) {
	tableID, err := pathInt(r, "id")
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid table ID", nil)
		return
	}

	slotID, err := pathInt(r, "slotId")
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid time slot ID", nil)
		return
	}

	date, err := utils.ParseDate(r.URL.Query().Get("date"))
	if err != nil {
		utils.ResponseBadRequest(w, err.Error(), nil)
		return
	}

	if _, err := h.catalog.GetTable(r.Context(), tableID); err != nil {
		handleServiceError(h.log, w, err, "get table")
		return
	}
	if _, err := h.catalog.GetTimeSlot(r.Context(), slotID); err != nil {
		handleServiceError(h.log, w, err, "get time slot")
		return
	}

	free, err := h.availability.IsSlotFree(r.Context(), tableID, date, slotID)
	if err != nil {
		handleServiceError(h.log, w, err, "check slot")
		return
	}

	utils.ResponseSuccess(w, "success", response.SlotAvailabilityResponse{
		TableID:    tableID,
		TimeSlotID: slotID,
		Date:       date.Format(utils.DateLayout),
		Free:       free,
	})
}
