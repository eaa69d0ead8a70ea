package entity

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// ClockTime is a wall-clock time of day without a date, stored as an offset from midnight.
// It maps to the Postgres TIME type.
type ClockTime time.Duration

const day = 24 * time.Hour

func NewClockTime(hour, minute int) ClockTime {
	return ClockTime(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

// ClockTimeOf returns the wall-clock part of t in t's location, truncated to microseconds.
func ClockTimeOf(t time.Time) ClockTime {
	h, m, s := t.Clock()
	d := time.Duration(h)*time.Hour + time.Duration(m)*time.Minute + time.Duration(s)*time.Second +
		time.Duration(t.Nanosecond()).Truncate(time.Microsecond)
	return ClockTime(d)
}

// ParseClockTime accepts "15:04" and "15:04:05".
func ParseClockTime(s string) (ClockTime, error) {
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return ClockTimeOf(t), nil
		}
	}
	return 0, fmt.Errorf("invalid clock time %q", s)
}

func (c ClockTime) Before(other ClockTime) bool {
	return c < other
}

func (c ClockTime) Duration() time.Duration {
	return time.Duration(c)
}

func (c ClockTime) String() string {
	d := time.Duration(c)
	h := d / time.Hour
	m := (d % time.Hour) / time.Minute
	s := (d % time.Minute) / time.Second
	if s == 0 {
		return fmt.Sprintf("%02d:%02d", h, m)
	}
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// ScanTime implements pgtype.TimeScanner
func (c *ClockTime) ScanTime(v pgtype.Time) error {
	if !v.Valid {
		return fmt.Errorf("cannot scan NULL into ClockTime")
	}
	d := time.Duration(v.Microseconds) * time.Microsecond
	if d < 0 || d > day {
		return fmt.Errorf("time of day out of range: %s", d)
	}
	*c = ClockTime(d)
	return nil
}

// TimeValue implements pgtype.TimeValuer
func (c ClockTime) TimeValue() (pgtype.Time, error) {
	return pgtype.Time{Microseconds: time.Duration(c).Microseconds(), Valid: true}, nil
}

func (c ClockTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *ClockTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseClockTime(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
