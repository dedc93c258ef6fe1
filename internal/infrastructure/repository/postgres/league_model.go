package postgres

import (
	"database/sql"
	"time"

	"github.com/scorefeed/scorefeed/internal/domain/league"
)

type leagueTableModel struct {
	ID        int64          `db:"id"`
	SportID   sql.NullInt64  `db:"sport_id"`
	APIID     int64          `db:"api_id"`
	Name      string         `db:"name"`
	Slug      string         `db:"slug"`
	Country   sql.NullString `db:"country"`
	LogoURL   sql.NullString `db:"logo_url"`
	SortOrder int            `db:"sort_order"`
	IsActive  bool           `db:"is_active"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
	DeletedAt *time.Time     `db:"deleted_at"`
}

type leagueInsertModel struct {
	SportID   *int64  `db:"sport_id"`
	APIID     int64   `db:"api_id"`
	Name      string  `db:"name"`
	Slug      string  `db:"slug"`
	Country   *string `db:"country"`
	LogoURL   *string `db:"logo_url"`
	SortOrder int     `db:"sort_order"`
	IsActive  bool    `db:"is_active"`
}

func leagueFromRow(row leagueTableModel) league.League {
	return league.League{
		ID:        row.ID,
		SportID:   nullInt64ToInt64(row.SportID),
		APIID:     row.APIID,
		Name:      row.Name,
		Slug:      row.Slug,
		Country:   nullStringToString(row.Country),
		LogoURL:   nullStringToString(row.LogoURL),
		SortOrder: row.SortOrder,
		IsActive:  row.IsActive,
	}
}
