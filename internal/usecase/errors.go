package usecase

import "errors"

var (
	// ErrSlotUnavailable means the (table, date, slot) triple already has a booked row
	ErrSlotUnavailable = errors.New("time slot is not available")
	ErrNotFound        = errors.New("not found")
	ErrBookingInPast   = errors.New("cannot book a time slot that has already passed")
	ErrInvalidInput    = errors.New("invalid input")
)
