package usecase

import (
	"context"
	"fmt"

	"table-booking/internal/data/entity"
	"table-booking/internal/data/repository"
	"table-booking/pkg/tracing"
	"table-booking/pkg/utils"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

type LifecycleService interface {
	// CompletePastBookings completes every booked row whose slot has ended and
	// returns how many rows moved
	CompletePastBookings(ctx context.Context) (int64, error)
}

type lifecycleService struct {
	bookingRepo repository.BookingRepository
	clock       Clock
	log         *zap.Logger
}

func NewLifecycleService(bookingRepo repository.BookingRepository, clock Clock, log *zap.Logger) LifecycleService {
	return &lifecycleService{
		bookingRepo: bookingRepo,
		clock:       clock,
		log:         log.With(zap.String("service", "lifecycle")),
	}
}

func (s *lifecycleService) CompletePastBookings(ctx context.Context) (_ int64, err error) {
	ctx, span := tracing.Tracer().Start(ctx, "lifecycle.complete_past")
	defer func() { tracing.End(span, err) }()

	now := s.clock()
	today := utils.DateOf(now)

	completed, err := s.bookingRepo.CompletePast(ctx, today, entity.ClockTimeOf(now))
	if err != nil {
		return 0, fmt.Errorf("complete past bookings: %w", err)
	}
	span.SetAttributes(attribute.Int64("bookings.completed", completed))

	s.log.Info("Past bookings completed",
		zap.Int64("count", completed),
		zap.String("today", today.Format(utils.DateLayout)),
		zap.Stringer("now", entity.ClockTimeOf(now)),
	)
	return completed, nil
}
