package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"table-booking/internal/data/entity"
	"table-booking/pkg/database"

	"go.uber.org/zap"
)

// ActiveTripleIndex is the partial unique index that allows one booked row per triple
const ActiveTripleIndex = "bookings_active_triple_uidx"

var (
	// ErrDuplicateActiveBooking is returned by Create when the triple already has a booked row
	ErrDuplicateActiveBooking = errors.New("active booking already exists for table, date and slot")
	// ErrReferenceNotFound is returned by Create when the user, table or slot does not exist
	ErrReferenceNotFound = errors.New("referenced user, table or time slot does not exist")
)

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	Delete(ctx context.Context, id int64) (int64, error)
	FindByUserID(ctx context.Context, userID int64) ([]*entity.Booking, error)
	FindDetailsByUserID(ctx context.Context, userID int64) ([]*entity.BookingDetail, error)
	CountByUserID(ctx context.Context, userID int64) (int64, error)

	// Availability
	ExistsActive(ctx context.Context, triple entity.Triple) (bool, error)
	FindBookedSlotIDs(ctx context.Context, tableID int, date time.Time) ([]int, error)

	// Lifecycle
	TransitionStatus(ctx context.Context, id int64, to entity.BookingStatus) (int64, error)
	CompletePast(ctx context.Context, today time.Time, now entity.ClockTime) (int64, error)
	CountByStatus(ctx context.Context) (*entity.BookingStats, error)
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (user_id, table_id, time_slot_id, booking_date, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		booking.UserID,
		booking.TableID,
		booking.TimeSlotID,
		booking.Date,
		string(booking.Status),
	).Scan(&booking.ID, &booking.CreatedAt, &booking.UpdatedAt)

	switch {
	case err == nil:
		return nil
	case database.IsUniqueViolation(err, ActiveTripleIndex):
		r.log.Warn("Booking rejected by active triple index",
			zap.String("triple", booking.Triple().Key()),
			zap.Int64("user_id", booking.UserID),
		)
		return fmt.Errorf("create booking %s: %w", booking.Triple().Key(), ErrDuplicateActiveBooking)
	case database.IsForeignKeyViolation(err):
		r.log.Warn("Booking references unknown entity",
			zap.Error(err),
			zap.String("triple", booking.Triple().Key()),
			zap.Int64("user_id", booking.UserID),
		)
		return fmt.Errorf("create booking %s: %w", booking.Triple().Key(), ErrReferenceNotFound)
	default:
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("triple", booking.Triple().Key()),
			zap.Int64("user_id", booking.UserID),
		)
		return fmt.Errorf("create booking %s: %w", booking.Triple().Key(), err)
	}
}

func (r *bookingRepository) Delete(ctx context.Context, id int64) (int64, error) {
	query := `DELETE FROM bookings WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete booking",
			zap.Error(err),
			zap.Int64("booking_id", id),
		)
		return 0, fmt.Errorf("delete booking %d: %w", id, err)
	}

	r.log.Info("Booking deleted",
		zap.Int64("booking_id", id),
		zap.Int64("rows", result.RowsAffected()),
	)
	return result.RowsAffected(), nil
}

func (r *bookingRepository) FindByUserID(ctx context.Context, userID int64) ([]*entity.Booking, error) {
	query := `
		SELECT b.id, b.user_id, b.table_id, b.time_slot_id, b.booking_date, b.status, b.created_at, b.updated_at
		FROM bookings b
		INNER JOIN time_slots ts ON ts.id = b.time_slot_id
		WHERE b.user_id = $1
		ORDER BY b.booking_date, ts.start_time, b.id
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to find bookings by user ID",
			zap.Error(err),
			zap.Int64("user_id", userID),
		)
		return nil, fmt.Errorf("find bookings by user ID %d: %w", userID, err)
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		var booking entity.Booking
		err := rows.Scan(
			&booking.ID,
			&booking.UserID,
			&booking.TableID,
			&booking.TimeSlotID,
			&booking.Date,
			&booking.Status,
			&booking.CreatedAt,
			&booking.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, &booking)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bookings: %w", err)
	}

	return bookings, nil
}

// FindDetailsByUserID loads bookings with their table and slot in a single join
func (r *bookingRepository) FindDetailsByUserID(ctx context.Context, userID int64) ([]*entity.BookingDetail, error) {
	query := `
		SELECT b.id, b.user_id, b.table_id, b.time_slot_id, b.booking_date, b.status, b.created_at, b.updated_at,
		       t.id, t.capacity, t.description,
		       ts.id, ts.start_time, ts.end_time
		FROM bookings b
		INNER JOIN dining_tables t ON t.id = b.table_id
		INNER JOIN time_slots ts ON ts.id = b.time_slot_id
		WHERE b.user_id = $1
		ORDER BY b.booking_date, ts.start_time, b.id
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to find booking details by user ID",
			zap.Error(err),
			zap.Int64("user_id", userID),
		)
		return nil, fmt.Errorf("find booking details by user ID %d: %w", userID, err)
	}
	defer rows.Close()

	var details []*entity.BookingDetail
	for rows.Next() {
		var d entity.BookingDetail
		err := rows.Scan(
			&d.Booking.ID,
			&d.Booking.UserID,
			&d.Booking.TableID,
			&d.Booking.TimeSlotID,
			&d.Booking.Date,
			&d.Booking.Status,
			&d.Booking.CreatedAt,
			&d.Booking.UpdatedAt,
			&d.Table.ID,
			&d.Table.Capacity,
			&d.Table.Description,
			&d.TimeSlot.ID,
			&d.TimeSlot.StartTime,
			&d.TimeSlot.EndTime,
		)
		if err != nil {
			r.log.Error("Failed to scan booking detail row", zap.Error(err))
			return nil, fmt.Errorf("scan booking detail row: %w", err)
		}
		details = append(details, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate booking details: %w", err)
	}

	return details, nil
}

func (r *bookingRepository) CountByUserID(ctx context.Context, userID int64) (int64, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE user_id = $1`

	var count int64
	err := r.db.QueryRow(ctx, query, userID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count bookings by user ID",
			zap.Error(err),
			zap.Int64("user_id", userID),
		)
		return 0, fmt.Errorf("count bookings by user ID %d: %w", userID, err)
	}

	return count, nil
}

func (r *bookingRepository) ExistsActive(ctx context.Context, triple entity.Triple) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM bookings
			WHERE table_id = $1 AND booking_date = $2 AND time_slot_id = $3 AND status = $4
		)
	`

	var exists bool
	err := r.db.QueryRow(ctx, query,
		triple.TableID,
		triple.Date,
		triple.TimeSlotID,
		string(entity.BookingStatusBooked),
	).Scan(&exists)
	if err != nil {
		r.log.Error("Failed to check active booking",
			zap.Error(err),
			zap.String("triple", triple.Key()),
		)
		return false, fmt.Errorf("check active booking %s: %w", triple.Key(), err)
	}

	return exists, nil
}

func (r *bookingRepository) FindBookedSlotIDs(ctx context.Context, tableID int, date time.Time) ([]int, error) {
	query := `
		SELECT DISTINCT time_slot_id
		FROM bookings
		WHERE table_id = $1 AND booking_date = $2 AND status = $3
	`

	rows, err := r.db.Query(ctx, query, tableID, date, string(entity.BookingStatusBooked))
	if err != nil {
		r.log.Error("Failed to find booked slots",
			zap.Error(err),
			zap.Int("table_id", tableID),
			zap.Time("date", date),
		)
		return nil, fmt.Errorf("find booked slots for table %d date %s: %w",
			tableID, date.Format("2006-01-02"), err)
	}
	defer rows.Close()

	var slotIDs []int
	for rows.Next() {
		var slotID int
		if err := rows.Scan(&slotID); err != nil {
			r.log.Error("Failed to scan slot ID row", zap.Error(err))
			return nil, fmt.Errorf("scan slot ID row: %w", err)
		}
		slotIDs = append(slotIDs, slotID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate booked slots: %w", err)
	}

	return slotIDs, nil
}

// TransitionStatus moves a booking to status `to` if its current status allows it.
// The returned count is 0 when no row with that id exists.
func (r *bookingRepository) TransitionStatus(ctx context.Context, id int64, to entity.BookingStatus) (int64, error) {
	query := `
		UPDATE bookings
		SET status = $2, updated_at = NOW()
		WHERE id = $1 AND status = ANY($3)
	`

	result, err := r.db.Exec(ctx, query, id, string(to), statusStrings(entity.TransitionSources(to)))
	if err != nil {
		r.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.Int64("booking_id", id),
			zap.String("status", string(to)),
		)
		return 0, fmt.Errorf("update booking %d status to %s: %w", id, to, err)
	}

	return result.RowsAffected(), nil
}

// CompletePast completes every booked row whose date is before today,
// or is today with a slot that ended before now. One statement, so a
// concurrent cancel is never overwritten.
func (r *bookingRepository) CompletePast(ctx context.Context, today time.Time, now entity.ClockTime) (int64, error) {
	query := `
		UPDATE bookings b
		SET status = $1, updated_at = NOW()
		FROM time_slots ts
		WHERE ts.id = b.time_slot_id
		  AND b.status = ANY($2)
		  AND (b.booking_date < $3 OR (b.booking_date = $3 AND ts.end_time < $4))
	`

	result, err := r.db.Exec(ctx, query,
		string(entity.BookingStatusCompleted),
		statusStrings(entity.TransitionSources(entity.BookingStatusCompleted)),
		today,
		now,
	)
	if err != nil {
		r.log.Error("Failed to complete past bookings",
			zap.Error(err),
			zap.Time("today", today),
			zap.Stringer("now", now),
		)
		return 0, fmt.Errorf("complete past bookings: %w", err)
	}

	return result.RowsAffected(), nil
}

// CountByStatus counts every status and the total in one snapshot
func (r *bookingRepository) CountByStatus(ctx context.Context) (*entity.BookingStats, error) {
	query := `
		SELECT
			COUNT(*) FILTER (WHERE status = $1),
			COUNT(*) FILTER (WHERE status = $2),
			COUNT(*) FILTER (WHERE status = $3),
			COUNT(*)
		FROM bookings
	`

	var stats entity.BookingStats
	err := r.db.QueryRow(ctx, query,
		string(entity.BookingStatusBooked),
		string(entity.BookingStatusCompleted),
		string(entity.BookingStatusCanceled),
	).Scan(&stats.Booked, &stats.Completed, &stats.Canceled, &stats.Total)
	if err != nil {
		r.log.Error("Failed to count bookings by status", zap.Error(err))
		return nil, fmt.Errorf("count bookings by status: %w", err)
	}

	return &stats, nil
}

func statusStrings(statuses []entity.BookingStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
