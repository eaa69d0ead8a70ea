package entity

type Table struct {
	ID          int    `db:"id"`
	Capacity    int    `db:"capacity"`
	Description string `db:"description"`
}
