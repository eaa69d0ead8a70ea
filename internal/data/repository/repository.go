package repository

import (
	"table-booking/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User     UserRepository
	Table    TableRepository
	TimeSlot TimeSlotRepository
	Booking  BookingRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:     NewUserRepository(db, log),
		Table:    NewTableRepository(db, log),
		TimeSlot: NewTimeSlotRepository(db, log),
		Booking:  NewBookingRepository(db, log),
	}
}
