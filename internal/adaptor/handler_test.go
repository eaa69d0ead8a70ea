package adaptor

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"table-booking/internal/data/entity"
	"table-booking/internal/usecase"
	"table-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type stubBookingService struct {
	usecase.BookingService
	createErr error
	created   struct {
		userID  int64
		tableID int
		date    time.Time
		slotID  int
	}
	cancelAffected int64
}

func (s *stubBookingService) Create(_ context.Context, userID int64, tableID int, date time.Time, slotID int) (*entity.Booking, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	s.created.userID, s.created.tableID, s.created.date, s.created.slotID = userID, tableID, date, slotID
	return &entity.Booking{ID: 7, UserID: userID, TableID: tableID, TimeSlotID: slotID, Date: date, Status: entity.BookingStatusBooked}, nil
}

func (s *stubBookingService) Cancel(context.Context, int64, int64) (int64, error) {
	return s.cancelAffected, nil
}

func (s *stubBookingService) Delete(context.Context, int64, int64) (int64, error) {
	return 0, nil
}

type stubCatalogService struct {
	usecase.CatalogService
}

func (stubCatalogService) GetTable(_ context.Context, id int) (*entity.Table, error) {
	if id != 1 {
		return nil, fmt.Errorf("table %d: %w", id, usecase.ErrNotFound)
	}
	return &entity.Table{ID: 1, Capacity: 2, Description: "window"}, nil
}

type stubAvailabilityService struct {
	usecase.AvailabilityService
}

func (stubAvailabilityService) FreeSlots(context.Context, int, time.Time) ([]*entity.TimeSlot, error) {
	return []*entity.TimeSlot{{ID: 2, StartTime: entity.NewClockTime(13, 0), EndTime: entity.NewClockTime(14, 0)}}, nil
}

func bookingRouter(t *testing.T, svc usecase.BookingService) http.Handler {
	log := zaptest.NewLogger(t)
	h := NewBookingHandler(svc, log)

	r := chi.NewRouter()
	r.Use(middleware.Identity(log))
	r.Post("/api/bookings", h.CreateBooking)
	r.Put("/api/bookings/{id}/cancel", h.CancelBooking)
	r.Delete("/api/bookings/{id}", h.DeleteBooking)
	return r
}

func do(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(middleware.UserIDHeader, "42")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestBookingHandler_CreateStatusMapping(t *testing.T) {
	tests := []struct {
		name string
		body string
		err  error
		want int
	}{
		{name: "created", body: `{"table_id":1,"time_slot_id":2,"date":"2026-10-20"}`, want: http.StatusCreated},
		{name: "slot taken", body: `{"table_id":1,"time_slot_id":2,"date":"2026-10-20"}`, err: fmt.Errorf("x: %w", usecase.ErrSlotUnavailable), want: http.StatusConflict},
		{name: "unknown table", body: `{"table_id":9,"time_slot_id":2,"date":"2026-10-20"}`, err: fmt.Errorf("x: %w", usecase.ErrNotFound), want: http.StatusNotFound},
		{name: "in the past", body: `{"table_id":1,"time_slot_id":2,"date":"2026-10-01"}`, err: fmt.Errorf("x: %w", usecase.ErrBookingInPast), want: http.StatusBadRequest},
		{name: "storage failure", body: `{"table_id":1,"time_slot_id":2,"date":"2026-10-20"}`, err: errors.New("db down"), want: http.StatusInternalServerError},
		{name: "bad date", body: `{"table_id":1,"time_slot_id":2,"date":"20-10-2026"}`, want: http.StatusBadRequest},
		{name: "missing table", body: `{"time_slot_id":2,"date":"2026-10-20"}`, want: http.StatusBadRequest},
		{name: "malformed json", body: `{`, want: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubBookingService{createErr: tt.err}
			rec := do(bookingRouter(t, svc), http.MethodPost, "/api/bookings", tt.body)
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
		})
	}
}

func TestBookingHandler_CreatePassesParsedRequest(t *testing.T) {
	svc := &stubBookingService{}
	rec := do(bookingRouter(t, svc), http.MethodPost, "/api/bookings", `{"table_id":3,"time_slot_id":5,"date":"2026-10-20"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	assert.Equal(t, int64(42), svc.created.userID)
	assert.Equal(t, 3, svc.created.tableID)
	assert.Equal(t, 5, svc.created.slotID)
	assert.Equal(t, "2026-10-20", svc.created.date.Format("2006-01-02"))
	assert.Contains(t, rec.Body.String(), `"date":"2026-10-20"`)
	assert.Contains(t, rec.Body.String(), `"status":"booked"`)
}

func TestBookingHandler_CancelAndDeleteReturnCounts(t *testing.T) {
	svc := &stubBookingService{cancelAffected: 1}
	router := bookingRouter(t, svc)

	rec := do(router, http.MethodPut, "/api/bookings/11/cancel", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"affected":1`)

	rec = do(router, http.MethodDelete, "/api/bookings/999", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"removed":0`)

	rec = do(router, http.MethodDelete, "/api/bookings/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCatalogHandler_FreeSlots(t *testing.T) {
	log := zaptest.NewLogger(t)
	h := NewCatalogHandler(stubCatalogService{}, stubAvailabilityService{}, log)
	r := chi.NewRouter()
	r.Get("/api/tables/{id}/free-slots", h.FreeSlots)

	rec := do(r, http.MethodGet, "/api/tables/1/free-slots?date=2026-10-20", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"start_time":"13:00"`)

	rec = do(r, http.MethodGet, "/api/tables/5/free-slots?date=2026-10-20", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(r, http.MethodGet, "/api/tables/1/free-slots", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
