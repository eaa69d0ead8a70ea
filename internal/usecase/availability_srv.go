package usecase

import (
	"context"
	"fmt"
	"time"

	"table-booking/internal/data/entity"
	"table-booking/internal/data/repository"
	"table-booking/pkg/utils"

	"go.uber.org/zap"
)

type AvailabilityService interface {
	// IsSlotFree reports whether no booked row exists for the exact triple
	IsSlotFree(ctx context.Context, tableID int, date time.Time, slotID int) (bool, error)
	// FreeSlots returns the catalog slots with no booked row for the table on date
	FreeSlots(ctx context.Context, tableID int, date time.Time) ([]*entity.TimeSlot, error)
}

type availabilityService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewAvailabilityService(repo *repository.Repository, log *zap.Logger) AvailabilityService {
	return &availabilityService{
		repo: repo,
		log:  log.With(zap.String("service", "availability")),
	}
}

func (s *availabilityService) IsSlotFree(ctx context.Context, tableID int, date time.Time, slotID int) (bool, error) {
	triple := entity.Triple{TableID: tableID, Date: utils.DateOf(date), TimeSlotID: slotID}

	taken, err := s.repo.Booking.ExistsActive(ctx, triple)
	if err != nil {
		return false, fmt.Errorf("check slot %s: %w", triple.Key(), err)
	}
	return !taken, nil
}

func (s *availabilityService) FreeSlots(ctx context.Context, tableID int, date time.Time) ([]*entity.TimeSlot, error) {
	date = utils.DateOf(date)

	slots, err := s.repo.TimeSlot.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load time slots: %w", err)
	}

	bookedIDs, err := s.repo.Booking.FindBookedSlotIDs(ctx, tableID, date)
	if err != nil {
		return nil, fmt.Errorf("load booked slots for table %d: %w", tableID, err)
	}

	booked := make(map[int]struct{}, len(bookedIDs))
	for _, id := range bookedIDs {
		booked[id] = struct{}{}
	}

	free := make([]*entity.TimeSlot, 0, len(slots))
	for _, slot := range slots {
		if _, taken := booked[slot.ID]; !taken {
			free = append(free, slot)
		}
	}

	s.log.Debug("Free slots resolved",
		zap.Int("table_id", tableID),
		zap.String("date", date.Format(utils.DateLayout)),
		zap.Int("free", len(free)),
		zap.Int("catalog", len(slots)),
	)
	return free, nil
}
