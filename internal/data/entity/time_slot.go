package entity

type TimeSlot struct {
	ID        int       `db:"id"`
	StartTime ClockTime `db:"start_time"`
	EndTime   ClockTime `db:"end_time"`
}
