package entity

// TotalKey is the aggregate entry of BookingStats.AsMap
const TotalKey = "total"

type BookingStats struct {
	Booked    int64
	Completed int64
	Canceled  int64
	Total     int64
}

func (s BookingStats) AsMap() map[string]int64 {
	return map[string]int64{
		string(BookingStatusBooked):    s.Booked,
		string(BookingStatusCompleted): s.Completed,
		string(BookingStatusCanceled):  s.Canceled,
		TotalKey:                       s.Total,
	}
}
