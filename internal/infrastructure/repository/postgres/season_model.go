package postgres

import (
	"time"

	"github.com/scorefeed/scorefeed/internal/domain/season"
)

type seasonTableModel struct {
	ID        int64      `db:"id"`
	LeagueID  int64      `db:"league_id"`
	Year      int        `db:"year"`
	StartDate time.Time  `db:"start_date"`
	EndDate   time.Time  `db:"end_date"`
	IsCurrent bool       `db:"is_current"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

type seasonInsertModel struct {
	LeagueID  int64     `db:"league_id"`
	Year      int       `db:"year"`
	StartDate time.Time `db:"start_date"`
	EndDate   time.Time `db:"end_date"`
	IsCurrent bool      `db:"is_current"`
}

func seasonFromRow(row seasonTableModel) season.Season {
	return season.Season{
		ID:        row.ID,
		LeagueID:  row.LeagueID,
		Year:      row.Year,
		StartDate: row.StartDate,
		EndDate:   row.EndDate,
		IsCurrent: row.IsCurrent,
	}
}
