package postgres

import (
	"database/sql"
	"time"

	"github.com/scorefeed/scorefeed/internal/domain/team"
)

type teamTableModel struct {
	ID        int64          `db:"id"`
	APIID     int64          `db:"api_id"`
	LeagueID  int64          `db:"league_id"`
	Name      string         `db:"name"`
	Slug      string         `db:"slug"`
	Code      sql.NullString `db:"code"`
	Country   sql.NullString `db:"country"`
	LogoURL   sql.NullString `db:"logo_url"`
	Founded   sql.NullInt64  `db:"founded"`
	Venue     sql.NullString `db:"venue"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
	DeletedAt *time.Time     `db:"deleted_at"`
}

type teamInsertModel struct {
	APIID    int64   `db:"api_id"`
	LeagueID int64   `db:"league_id"`
	Name     string  `db:"name"`
	Slug     string  `db:"slug"`
	Code     *string `db:"code"`
	Country  *string `db:"country"`
	LogoURL  *string `db:"logo_url"`
	Founded  *int    `db:"founded"`
	Venue    *string `db:"venue"`
}

func teamFromRow(row teamTableModel) team.Team {
	out := team.Team{
		ID:       row.ID,
		APIID:    row.APIID,
		LeagueID: row.LeagueID,
		Name:     row.Name,
		Slug:     row.Slug,
		Code:     nullStringToString(row.Code),
		Country:  nullStringToString(row.Country),
		LogoURL:  nullStringToString(row.LogoURL),
		Venue:    nullStringToString(row.Venue),
	}
	if row.Founded.Valid {
		founded := int(row.Founded.Int64)
		out.Founded = &founded
	}
	return out
}
