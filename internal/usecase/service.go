package usecase

import (
	"time"

	"table-booking/internal/data/repository"
	"table-booking/pkg/notify"

	"go.uber.org/zap"
)

// Clock returns the current time in the application time zone
type Clock func() time.Time

func ClockIn(loc *time.Location) Clock {
	return func() time.Time {
		return time.Now().In(loc)
	}
}

type Service struct {
	Catalog      CatalogService
	Availability AvailabilityService
	Booking      BookingService
	Lifecycle    LifecycleService
	Stats        StatsService
	User         UserService
}

func NewService(repo *repository.Repository, notifier notify.Notifier, clock Clock, log *zap.Logger) *Service {
	availability := NewAvailabilityService(repo, log)

	return &Service{
		Catalog:      NewCatalogService(repo, log),
		Availability: availability,
		Booking:      NewBookingService(repo, availability, notifier, clock, log),
		Lifecycle:    NewLifecycleService(repo.Booking, clock, log),
		Stats:        NewStatsService(repo, log),
		User:         NewUserService(repo.User, log),
	}
}
