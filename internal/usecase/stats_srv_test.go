package usecase

import (
	"context"
	"testing"

	"table-booking/internal/data/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsService_CountByStatusIsConsistent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.store.insert(entity.Booking{UserID: 101, TableID: 1, Date: today, TimeSlotID: 1, Status: entity.BookingStatusBooked})
	f.store.insert(entity.Booking{UserID: 101, TableID: 1, Date: today, TimeSlotID: 2, Status: entity.BookingStatusCompleted})
	f.store.insert(entity.Booking{UserID: 102, TableID: 2, Date: today, TimeSlotID: 2, Status: entity.BookingStatusCompleted})
	f.store.insert(entity.Booking{UserID: 103, TableID: 3, Date: today, TimeSlotID: 3, Status: entity.BookingStatusCanceled})

	counts, err := f.svc.Stats.CountByStatus(ctx)
	require.NoError(t, err)

	assert.Equal(t, map[string]int64{"booked": 1, "completed": 2, "canceled": 1, "total": 4}, counts)
	assert.Equal(t, counts["total"], counts["booked"]+counts["completed"]+counts["canceled"])

	users, err := f.svc.Stats.CountUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), users)
}

func TestStatsService_EmptyLedger(t *testing.T) {
	f := newFixture(t)

	counts, err := f.svc.Stats.CountByStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"booked": 0, "completed": 0, "canceled": 0, "total": 0}, counts)
}
