package postgres

import "time"

type sportTableModel struct {
	ID        int64      `db:"id"`
	APIID     int64      `db:"api_id"`
	Name      string     `db:"name"`
	Slug      string     `db:"slug"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

type sportInsertModel struct {
	APIID int64  `db:"api_id"`
	Name  string `db:"name"`
	Slug  string `db:"slug"`
}
