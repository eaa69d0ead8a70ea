package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"table-booking/internal/data/entity"
	"table-booking/internal/data/repository"
	"table-booking/pkg/notify"
	"table-booking/pkg/tracing"
	"table-booking/pkg/utils"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type BookingService interface {
	Create(ctx context.Context, userID int64, tableID int, date time.Time, slotID int) (*entity.Booking, error)
	// Cancel marks the booking canceled whatever its status and returns the affected row count
	Cancel(ctx context.Context, actorID, bookingID int64) (int64, error)
	// Delete removes the booking row and returns the removed row count
	Delete(ctx context.Context, actorID, bookingID int64) (int64, error)

	ListForUser(ctx context.Context, userID int64) ([]*entity.Booking, error)
	ListForUserWithDetails(ctx context.Context, userID int64) ([]*entity.BookingDetail, error)
	CountForUser(ctx context.Context, userID int64) (int64, error)
}

type bookingService struct {
	repo         *repository.Repository
	availability AvailabilityService
	notifier     notify.Notifier
	clock        Clock
	locks        *tripleLock
	log          *zap.Logger
}

func NewBookingService(
	repo *repository.Repository,
	availability AvailabilityService,
	notifier notify.Notifier,
	clock Clock,
	log *zap.Logger,
) BookingService {
	return &bookingService{
		repo:         repo,
		availability: availability,
		notifier:     notifier,
		clock:        clock,
		locks:        newTripleLock(),
		log:          log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) Create(ctx context.Context, userID int64, tableID int, date time.Time, slotID int) (_ *entity.Booking, err error) {
	triple := entity.Triple{TableID: tableID, Date: utils.DateOf(date), TimeSlotID: slotID}

	ctx, span := tracing.Tracer().Start(ctx, "booking.create", trace.WithAttributes(
		attribute.Int64("user.id", userID),
		attribute.String("booking.triple", triple.Key()),
	))
	defer func() { tracing.End(span, err) }()

	table, err := s.repo.Table.FindByID(ctx, tableID)
	if err != nil {
		return nil, fmt.Errorf("find table %d: %w", tableID, err)
	}
	if table == nil {
		return nil, fmt.Errorf("table %d: %w", tableID, ErrNotFound)
	}

	slot, err := s.repo.TimeSlot.FindByID(ctx, slotID)
	if err != nil {
		return nil, fmt.Errorf("find time slot %d: %w", slotID, err)
	}
	if slot == nil {
		return nil, fmt.Errorf("time slot %d: %w", slotID, ErrNotFound)
	}

	if entity.SlotElapsed(triple.Date, *slot, s.clock()) {
		return nil, fmt.Errorf("booking %s: %w", triple.Key(), ErrBookingInPast)
	}

	unlock := s.locks.Lock(triple.Key())
	defer unlock()

	free, err := s.availability.IsSlotFree(ctx, triple.TableID, triple.Date, triple.TimeSlotID)
	if err != nil {
		return nil, err
	}
	if !free {
		s.log.Info("Slot already booked",
			zap.String("triple", triple.Key()),
			zap.Int64("user_id", userID),
		)
		return nil, fmt.Errorf("booking %s: %w", triple.Key(), ErrSlotUnavailable)
	}

	booking := &entity.Booking{
		UserID:     userID,
		TableID:    triple.TableID,
		TimeSlotID: triple.TimeSlotID,
		Date:       triple.Date,
		Status:     entity.BookingStatusBooked,
	}

	if err := s.repo.Booking.Create(ctx, booking); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateActiveBooking):
			return nil, fmt.Errorf("booking %s: %w", triple.Key(), ErrSlotUnavailable)
		case errors.Is(err, repository.ErrReferenceNotFound):
			return nil, fmt.Errorf("user %d: %w", userID, ErrNotFound)
		default:
			return nil, fmt.Errorf("create booking: %w", err)
		}
	}

	s.log.Info("Booking created",
		zap.Int64("booking_id", booking.ID),
		zap.Int64("user_id", userID),
		zap.String("triple", triple.Key()),
	)
	s.publish(ctx, notify.ActionCreated, booking.ID, userID)

	return booking, nil
}

func (s *bookingService) Cancel(ctx context.Context, actorID, bookingID int64) (_ int64, err error) {
	ctx, span := tracing.Tracer().Start(ctx, "booking.cancel", trace.WithAttributes(
		attribute.Int64("user.id", actorID),
		attribute.Int64("booking.id", bookingID),
	))
	defer func() { tracing.End(span, err) }()

	affected, err := s.repo.Booking.TransitionStatus(ctx, bookingID, entity.BookingStatusCanceled)
	if err != nil {
		return 0, fmt.Errorf("cancel booking %d: %w", bookingID, err)
	}

	if affected > 0 {
		s.log.Info("Booking canceled",
			zap.Int64("booking_id", bookingID),
			zap.Int64("actor_user_id", actorID),
		)
		s.publish(ctx, notify.ActionCanceled, bookingID, actorID)
	}

	return affected, nil
}

func (s *bookingService) Delete(ctx context.Context, actorID, bookingID int64) (_ int64, err error) {
	ctx, span := tracing.Tracer().Start(ctx, "booking.delete", trace.WithAttributes(
		attribute.Int64("user.id", actorID),
		attribute.Int64("booking.id", bookingID),
	))
	defer func() { tracing.End(span, err) }()

	removed, err := s.repo.Booking.Delete(ctx, bookingID)
	if err != nil {
		return 0, fmt.Errorf("delete booking %d: %w", bookingID, err)
	}

	if removed > 0 {
		s.publish(ctx, notify.ActionDeleted, bookingID, actorID)
	}

	return removed, nil
}

func (s *bookingService) ListForUser(ctx context.Context, userID int64) ([]*entity.Booking, error) {
	bookings, err := s.repo.Booking.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list bookings for user %d: %w", userID, err)
	}
	return bookings, nil
}

func (s *bookingService) ListForUserWithDetails(ctx context.Context, userID int64) ([]*entity.BookingDetail, error) {
	details, err := s.repo.Booking.FindDetailsByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list booking details for user %d: %w", userID, err)
	}
	return details, nil
}

func (s *bookingService) CountForUser(ctx context.Context, userID int64) (int64, error) {
	count, err := s.repo.Booking.CountByUserID(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("count bookings for user %d: %w", userID, err)
	}
	return count, nil
}

// publish sends a booking event. A failing sink never fails the booking operation.
func (s *bookingService) publish(ctx context.Context, action notify.Action, bookingID, actorID int64) {
	event := notify.NewEvent(action, bookingID, actorID, s.clock())
	if err := s.notifier.Notify(ctx, event); err != nil {
		s.log.Warn("Failed to publish booking event",
			zap.Error(err),
			zap.String("action", string(action)),
			zap.Int64("booking_id", bookingID),
		)
	}
}
