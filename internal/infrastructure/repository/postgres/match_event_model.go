package postgres

import (
	"database/sql"
	"time"

	"github.com/scorefeed/scorefeed/internal/domain/match"
)

type matchEventTableModel struct {
	ID          int64          `db:"id"`
	MatchID     int64          `db:"match_id"`
	TeamID      sql.NullInt64  `db:"team_id"`
	Minute      int            `db:"minute"`
	ExtraMinute *int           `db:"extra_minute"`
	Type        string         `db:"type"`
	Detail      sql.NullString `db:"detail"`
	Player      sql.NullString `db:"player"`
	Assist      sql.NullString `db:"assist"`
	Comments    sql.NullString `db:"comments"`
	CreatedAt   time.Time      `db:"created_at"`
	DeletedAt   *time.Time     `db:"deleted_at"`
}

type matchEventInsertModel struct {
	MatchID     int64   `db:"match_id"`
	TeamID      *int64  `db:"team_id"`
	Minute      int     `db:"minute"`
	ExtraMinute *int    `db:"extra_minute"`
	Type        string  `db:"type"`
	Detail      *string `db:"detail"`
	Player      *string `db:"player"`
	Assist      *string `db:"assist"`
	Comments    *string `db:"comments"`
}

func matchEventFromRow(row matchEventTableModel) match.Event {
	return match.Event{
		ID:          row.ID,
		MatchID:     row.MatchID,
		TeamID:      nullInt64ToInt64(row.TeamID),
		Minute:      row.Minute,
		ExtraMinute: row.ExtraMinute,
		Type:        row.Type,
		Detail:      nullStringToString(row.Detail),
		Player:      nullStringToString(row.Player),
		Assist:      nullStringToString(row.Assist),
		Comments:    nullStringToString(row.Comments),
	}
}
