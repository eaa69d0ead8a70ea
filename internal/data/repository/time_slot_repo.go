package repository

import (
	"context"
	"errors"
	"fmt"

	"table-booking/internal/data/entity"
	"table-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type TimeSlotRepository interface {
	FindAll(ctx context.Context) ([]*entity.TimeSlot, error)
	FindByID(ctx context.Context, id int) (*entity.TimeSlot, error)
}

type timeSlotRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTimeSlotRepository(db database.PgxIface, log *zap.Logger) TimeSlotRepository {
	return &timeSlotRepository{
		db:  db,
		log: log.With(zap.String("repository", "time_slot")),
	}
}

func (r *timeSlotRepository) FindAll(ctx context.Context) ([]*entity.TimeSlot, error) {
	query := `
		SELECT id, start_time, end_time
		FROM time_slots
		ORDER BY start_time, id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find time slots", zap.Error(err))
		return nil, fmt.Errorf("find time slots: %w", err)
	}
	defer rows.Close()

	var slots []*entity.TimeSlot
	for rows.Next() {
		var slot entity.TimeSlot
		if err := rows.Scan(&slot.ID, &slot.StartTime, &slot.EndTime); err != nil {
			r.log.Error("Failed to scan time slot row", zap.Error(err))
			return nil, fmt.Errorf("scan time slot row: %w", err)
		}
		slots = append(slots, &slot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate time slots: %w", err)
	}

	return slots, nil
}

func (r *timeSlotRepository) FindByID(ctx context.Context, id int) (*entity.TimeSlot, error) {
	query := `
		SELECT id, start_time, end_time
		FROM time_slots
		WHERE id = $1
	`

	var slot entity.TimeSlot
	err := r.db.QueryRow(ctx, query, id).Scan(&slot.ID, &slot.StartTime, &slot.EndTime)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find time slot by ID",
			zap.Error(err),
			zap.Int("time_slot_id", id),
		)
		return nil, fmt.Errorf("find time slot by ID %d: %w", id, err)
	}

	return &slot, nil
}
