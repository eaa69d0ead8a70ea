package entity

import (
	"fmt"
	"time"
)

type BookingStatus string

const (
	BookingStatusBooked    BookingStatus = "booked"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCanceled  BookingStatus = "canceled"
)

// BookingStatuses lists every known status in a stable order
var BookingStatuses = []BookingStatus{
	BookingStatusBooked,
	BookingStatusCompleted,
	BookingStatusCanceled,
}

// bookingTransitions is the status state machine. Nothing leads back to booked.
// Canceling is accepted from every state so that cancel stays idempotent.
// Removal (hard delete) is allowed from any state and is not modelled here.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusBooked:    {BookingStatusCompleted, BookingStatusCanceled},
	BookingStatusCompleted: {BookingStatusCanceled},
	BookingStatusCanceled:  {BookingStatusCanceled},
}

func (s BookingStatus) Valid() bool {
	_, ok := bookingTransitions[s]
	return ok
}

func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range bookingTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// OccupiesSlot reports whether a booking in this status holds its triple
func (s BookingStatus) OccupiesSlot() bool {
	return s == BookingStatusBooked
}

// TransitionSources returns the statuses from which next can be reached
func TransitionSources(next BookingStatus) []BookingStatus {
	var sources []BookingStatus
	for _, from := range BookingStatuses {
		if from.CanTransitionTo(next) {
			sources = append(sources, from)
		}
	}
	return sources
}

type Booking struct {
	Timestamps
	ID         int64         `db:"id"`
	UserID     int64         `db:"user_id"`
	TableID    int           `db:"table_id"`
	TimeSlotID int           `db:"time_slot_id"`
	Date       time.Time     `db:"booking_date"`
	Status     BookingStatus `db:"status"`
}

func (b *Booking) Triple() Triple {
	return Triple{TableID: b.TableID, Date: b.Date, TimeSlotID: b.TimeSlotID}
}

// Triple is the (table, date, slot) key the no-double-booking rule is enforced on
type Triple struct {
	TableID    int
	Date       time.Time
	TimeSlotID int
}

func (t Triple) Key() string {
	return fmt.Sprintf("%d/%s/%d", t.TableID, t.Date.Format("2006-01-02"), t.TimeSlotID)
}

// BookingDetail is a booking joined with its table and time slot
type BookingDetail struct {
	Booking  Booking
	Table    Table
	TimeSlot TimeSlot
}

// SlotElapsed reports whether a slot on date is over at now. The date is compared by
// calendar day and the slot end time against now's wall clock, both in now's location.
func SlotElapsed(date time.Time, slot TimeSlot, now time.Time) bool {
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	by, bm, bd := date.Date()
	bookingDay := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)

	if bookingDay.Before(today) {
		return true
	}
	return bookingDay.Equal(today) && slot.EndTime.Before(ClockTimeOf(now))
}
