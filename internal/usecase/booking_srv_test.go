package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"table-booking/internal/data/entity"
	"table-booking/pkg/notify"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingService_CreateThenConflict(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.svc.Booking.Create(ctx, 101, 1, today, 1)
	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusBooked, first.Status)
	assert.NotZero(t, first.ID)

	_, err = f.svc.Booking.Create(ctx, 102, 1, today, 1)
	assert.ErrorIs(t, err, ErrSlotUnavailable)

	second, err := f.svc.Booking.Create(ctx, 102, 1, today, 2)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	assert.Equal(t, []notify.Action{notify.ActionCreated, notify.ActionCreated}, f.notifier.actions())
}

func TestBookingService_CancelFreesTriple(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.svc.Booking.Create(ctx, 101, 1, today, 1)
	require.NoError(t, err)

	affected, err := f.svc.Booking.Cancel(ctx, 101, first.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	third, err := f.svc.Booking.Create(ctx, 103, 1, today, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(103), third.UserID)
	assert.Equal(t, entity.BookingStatusCanceled, f.store.status(first.ID))
}

func TestBookingService_DeleteUnknownIsNoop(t *testing.T) {
	f := newFixture(t)

	removed, err := f.svc.Booking.Delete(context.Background(), 101, 9999)
	require.NoError(t, err)
	assert.Zero(t, removed)
	assert.Empty(t, f.notifier.actions())
}

func TestBookingService_DeleteRemovesAnyStatus(t *testing.T) {
	f := newFixture(t)
	id := f.store.insert(entity.Booking{UserID: 101, TableID: 2, Date: today, TimeSlotID: 1, Status: entity.BookingStatusCompleted})

	removed, err := f.svc.Booking.Delete(context.Background(), 101, id)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)
	assert.Equal(t, []notify.Action{notify.ActionDeleted}, f.notifier.actions())
}

func TestBookingService_CancelIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.store.insert(entity.Booking{UserID: 101, TableID: 1, Date: today, TimeSlotID: 3, Status: entity.BookingStatusCompleted})

	for i := 0; i < 2; i++ {
		affected, err := f.svc.Booking.Cancel(ctx, 101, id)
		require.NoError(t, err)
		assert.Equal(t, int64(1), affected)
	}
	assert.Equal(t, entity.BookingStatusCanceled, f.store.status(id))

	affected, err := f.svc.Booking.Cancel(ctx, 101, 9999)
	require.NoError(t, err)
	assert.Zero(t, affected)
}

func TestBookingService_ConcurrentCreateAdmitsExactlyOne(t *testing.T) {
	f := newFixture(t)
	const n = 32

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(user int64) {
			defer wg.Done()
			_, err := f.svc.Booking.Create(context.Background(), user, 2, today, 3)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, ErrSlotUnavailable):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(int64(101 + i%3))
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, n-1, conflicts)
	assert.Equal(t, 1, f.store.countBooked(entity.Triple{TableID: 2, Date: today, TimeSlotID: 3}))
}

func TestBookingService_UniqueIndexConflictMapsToUnavailable(t *testing.T) {
	f := newFixture(t)
	f.store.insert(entity.Booking{UserID: 101, TableID: 1, Date: today, TimeSlotID: 2, Status: entity.BookingStatusBooked})
	f.store.hideActive = true

	_, err := f.svc.Booking.Create(context.Background(), 102, 1, today, 2)
	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestBookingService_CreateRejections(t *testing.T) {
	tests := []struct {
		name    string
		user    int64
		table   int
		slot    int
		hour    int
		wantErr error
	}{
		{name: "unknown table", user: 101, table: 99, slot: 1, hour: 9, wantErr: ErrNotFound},
		{name: "unknown slot", user: 101, table: 1, slot: 99, hour: 9, wantErr: ErrNotFound},
		{name: "unknown user", user: 999, table: 1, slot: 1, hour: 9, wantErr: ErrNotFound},
		{name: "slot already over", user: 101, table: 1, slot: 1, hour: 13, wantErr: ErrBookingInPast},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.clock.Set(at(tt.hour, 30))

			_, err := f.svc.Booking.Create(context.Background(), tt.user, tt.table, today, tt.slot)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, f.notifier.actions())
		})
	}
}

func TestBookingService_CreateRejectsPastDate(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Booking.Create(context.Background(), 101, 1, today.AddDate(0, 0, -1), 3)
	assert.ErrorIs(t, err, ErrBookingInPast)
}

func TestBookingService_StorageFailurePropagates(t *testing.T) {
	f := newFixture(t)
	f.store.failWith = errStorage

	_, err := f.svc.Booking.Create(context.Background(), 101, 1, today, 1)
	assert.ErrorIs(t, err, errStorage)
	assert.NotErrorIs(t, err, ErrSlotUnavailable)
}

func TestBookingService_NotifierFailureDoesNotFailCreate(t *testing.T) {
	f := newFixture(t)
	f.notifier.err = errors.New("broker down")

	booking, err := f.svc.Booking.Create(context.Background(), 101, 1, today, 1)
	require.NoError(t, err)
	assert.NotNil(t, booking)
}

func TestBookingService_ListForUserOrderedByDateThenSlot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	tomorrow := today.AddDate(0, 0, 1)

	_, err := f.svc.Booking.Create(ctx, 101, 1, tomorrow, 1)
	require.NoError(t, err)
	_, err = f.svc.Booking.Create(ctx, 101, 2, today, 3)
	require.NoError(t, err)
	_, err = f.svc.Booking.Create(ctx, 101, 3, today, 1)
	require.NoError(t, err)

	bookings, err := f.svc.Booking.ListForUser(ctx, 101)
	require.NoError(t, err)
	require.Len(t, bookings, 3)
	assert.Equal(t, []int{1, 3, 1}, []int{bookings[0].TimeSlotID, bookings[1].TimeSlotID, bookings[2].TimeSlotID})
	assert.True(t, bookings[2].Date.Equal(tomorrow))

	details, err := f.svc.Booking.ListForUserWithDetails(ctx, 101)
	require.NoError(t, err)
	require.Len(t, details, 3)
	assert.Equal(t, "terrace", details[0].Table.Description)
	assert.Equal(t, "12:00", details[0].TimeSlot.StartTime.String())

	count, err := f.svc.Booking.CountForUser(ctx, 101)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}
