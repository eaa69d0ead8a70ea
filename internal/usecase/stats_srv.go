package usecase

import (
	"context"
	"fmt"

	"table-booking/internal/data/repository"

	"go.uber.org/zap"
)

type StatsService interface {
	// CountByStatus returns booked, completed, canceled and total counts from one snapshot
	CountByStatus(ctx context.Context) (map[string]int64, error)
	CountUsers(ctx context.Context) (int64, error)
}

type statsService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewStatsService(repo *repository.Repository, log *zap.Logger) StatsService {
	return &statsService{
		repo: repo,
		log:  log.With(zap.String("service", "stats")),
	}
}

func (s *statsService) CountByStatus(ctx context.Context) (map[string]int64, error) {
	stats, err := s.repo.Booking.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("count bookings by status: %w", err)
	}
	return stats.AsMap(), nil
}

func (s *statsService) CountUsers(ctx context.Context) (int64, error) {
	count, err := s.repo.User.CountAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return count, nil
}
