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

type TableRepository interface {
	FindAll(ctx context.Context) ([]*entity.Table, error)
	FindByID(ctx context.Context, id int) (*entity.Table, error)
	FindByCapacity(ctx context.Context, capacity int) ([]*entity.Table, error)
}

type tableRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTableRepository(db database.PgxIface, log *zap.Logger) TableRepository {
	return &tableRepository{
		db:  db,
		log: log.With(zap.String("repository", "table")),
	}
}

func (r *tableRepository) FindAll(ctx context.Context) ([]*entity.Table, error) {
	query := `
		SELECT id, capacity, description
		FROM dining_tables
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find tables", zap.Error(err))
		return nil, fmt.Errorf("find tables: %w", err)
	}

	return r.scanTables(rows)
}

func (r *tableRepository) FindByCapacity(ctx context.Context, capacity int) ([]*entity.Table, error) {
	query := `
		SELECT id, capacity, description
		FROM dining_tables
		WHERE capacity = $1
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query, capacity)
	if err != nil {
		r.log.Error("Failed to find tables by capacity",
			zap.Error(err),
			zap.Int("capacity", capacity),
		)
		return nil, fmt.Errorf("find tables by capacity %d: %w", capacity, err)
	}

	return r.scanTables(rows)
}

func (r *tableRepository) FindByID(ctx context.Context, id int) (*entity.Table, error) {
	query := `
		SELECT id, capacity, description
		FROM dining_tables
		WHERE id = $1
	`

	var table entity.Table
	err := r.db.QueryRow(ctx, query, id).Scan(&table.ID, &table.Capacity, &table.Description)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find table by ID",
			zap.Error(err),
			zap.Int("table_id", id),
		)
		return nil, fmt.Errorf("find table by ID %d: %w", id, err)
	}

	return &table, nil
}

func (r *tableRepository) scanTables(rows pgx.Rows) ([]*entity.Table, error) {
	defer rows.Close()

	var tables []*entity.Table
	for rows.Next() {
		var table entity.Table
		if err := rows.Scan(&table.ID, &table.Capacity, &table.Description); err != nil {
			r.log.Error("Failed to scan table row", zap.Error(err))
			return nil, fmt.Errorf("scan table row: %w", err)
		}
		tables = append(tables, &table)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tables: %w", err)
	}

	return tables, nil
}
