package entity

import "time"

// User is the external identity that owns bookings. ID is assigned by the caller.
type User struct {
	ID        int64     `db:"id"`
	FirstName string    `db:"first_name"`
	LastName  *string   `db:"last_name"`
	Username  *string   `db:"username"`
	CreatedAt time.Time `db:"created_at"`
}
