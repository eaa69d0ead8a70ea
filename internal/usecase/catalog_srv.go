package usecase

import (
	"context"
	"fmt"

	"table-booking/internal/data/entity"
	"table-booking/internal/data/repository"

	"go.uber.org/zap"
)

type CatalogService interface {
	ListTimeSlots(ctx context.Context) ([]*entity.TimeSlot, error)
	GetTimeSlot(ctx context.Context, id int) (*entity.TimeSlot, error)
	ListTables(ctx context.Context) ([]*entity.Table, error)
	ListTablesByCapacity(ctx context.Context, capacity int) ([]*entity.Table, error)
	GetTable(ctx context.Context, id int) (*entity.Table, error)
}

type catalogService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCatalogService(repo *repository.Repository, log *zap.Logger) CatalogService {
	return &catalogService{
		repo: repo,
		log:  log.With(zap.String("service", "catalog")),
	}
}

func (s *catalogService) ListTimeSlots(ctx context.Context) ([]*entity.TimeSlot, error) {
	slots, err := s.repo.TimeSlot.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list time slots: %w", err)
	}
	return slots, nil
}

func (s *catalogService) GetTimeSlot(ctx context.Context, id int) (*entity.TimeSlot, error) {
	slot, err := s.repo.TimeSlot.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get time slot %d: %w", id, err)
	}
	if slot == nil {
		return nil, fmt.Errorf("time slot %d: %w", id, ErrNotFound)
	}
	return slot, nil
}

func (s *catalogService) ListTables(ctx context.Context) ([]*entity.Table, error) {
	tables, err := s.repo.Table.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	return tables, nil
}

// ListTablesByCapacity returns the tables seating exactly capacity guests
func (s *catalogService) ListTablesByCapacity(ctx context.Context, capacity int) ([]*entity.Table, error) {
	if capacity < 1 {
		return nil, fmt.Errorf("capacity must be positive, got %d: %w", capacity, ErrInvalidInput)
	}

	tables, err := s.repo.Table.FindByCapacity(ctx, capacity)
	if err != nil {
		return nil, fmt.Errorf("list tables by capacity %d: %w", capacity, err)
	}

	s.log.Debug("Tables by capacity retrieved",
		zap.Int("capacity", capacity),
		zap.Int("count", len(tables)),
	)
	return tables, nil
}

func (s *catalogService) GetTable(ctx context.Context, id int) (*entity.Table, error) {
	table, err := s.repo.Table.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get table %d: %w", id, err)
	}
	if table == nil {
		return nil, fmt.Errorf("table %d: %w", id, ErrNotFound)
	}
	return table, nil
}
