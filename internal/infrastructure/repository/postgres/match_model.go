package postgres

import (
	"database/sql"
	"time"

	"github.com/scorefeed/scorefeed/internal/domain/match"
)

type matchTableModel struct {
	ID            int64          `db:"id"`
	APIID         int64          `db:"api_id"`
	LeagueID      int64          `db:"league_id"`
	SeasonID      int64          `db:"season_id"`
	HomeTeamID    int64          `db:"home_team_id"`
	AwayTeamID    int64          `db:"away_team_id"`
	KickoffAt     time.Time      `db:"kickoff_at"`
	Round         sql.NullString `db:"round"`
	Venue         sql.NullString `db:"venue"`
	Referee       sql.NullString `db:"referee"`
	Status        string         `db:"status"`
	IsLive        bool           `db:"is_live"`
	Minute        *int           `db:"minute"`
	HomeScore     *int           `db:"home_score"`
	AwayScore     *int           `db:"away_score"`
	HalftimeHome  *int           `db:"halftime_home"`
	HalftimeAway  *int           `db:"halftime_away"`
	ExtratimeHome *int           `db:"extratime_home"`
	ExtratimeAway *int           `db:"extratime_away"`
	PenaltyHome   *int           `db:"penalty_home"`
	PenaltyAway   *int           `db:"penalty_away"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
	DeletedAt     *time.Time     `db:"deleted_at"`
}

type matchInsertModel struct {
	APIID         int64     `db:"api_id"`
	LeagueID      int64     `db:"league_id"`
	SeasonID      int64     `db:"season_id"`
	HomeTeamID    int64     `db:"home_team_id"`
	AwayTeamID    int64     `db:"away_team_id"`
	KickoffAt     time.Time `db:"kickoff_at"`
	Round         *string   `db:"round"`
	Venue         *string   `db:"venue"`
	Referee       *string   `db:"referee"`
	Status        string    `db:"status"`
	IsLive        bool      `db:"is_live"`
	Minute        *int      `db:"minute"`
	HomeScore     *int      `db:"home_score"`
	AwayScore     *int      `db:"away_score"`
	HalftimeHome  *int      `db:"halftime_home"`
	HalftimeAway  *int      `db:"halftime_away"`
	ExtratimeHome *int      `db:"extratime_home"`
	ExtratimeAway *int      `db:"extratime_away"`
	PenaltyHome   *int      `db:"penalty_home"`
	PenaltyAway   *int      `db:"penalty_away"`
}

func matchFromRow(row matchTableModel) match.Match {
	return match.Match{
		ID:            row.ID,
		APIID:         row.APIID,
		LeagueID:      row.LeagueID,
		SeasonID:      row.SeasonID,
		HomeTeamID:    row.HomeTeamID,
		AwayTeamID:    row.AwayTeamID,
		KickoffAt:     row.KickoffAt,
		Round:         nullStringToString(row.Round),
		Venue:         nullStringToString(row.Venue),
		Referee:       nullStringToString(row.Referee),
		Status:        row.Status,
		IsLive:        row.IsLive,
		Minute:        row.Minute,
		HomeScore:     row.HomeScore,
		AwayScore:     row.AwayScore,
		HalftimeHome:  row.HalftimeHome,
		HalftimeAway:  row.HalftimeAway,
		ExtratimeHome: row.ExtratimeHome,
		ExtratimeAway: row.ExtratimeAway,
		PenaltyHome:   row.PenaltyHome,
		PenaltyAway:   row.PenaltyAway,
		UpdatedAt:     row.UpdatedAt,
	}
}
