package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/scorefeed/scorefeed/internal/domain/match"
	qb "github.com/scorefeed/scorefeed/internal/platform/querybuilder"
)

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) GetByID(ctx context.Context, id int64) (match.Match, bool, error) {
	return r.getOne(ctx, qb.Eq("id", id))
}

func (r *MatchRepository) GetByAPIID(ctx context.Context, apiID int64) (match.Match, bool, error) {
	return r.getOne(ctx, qb.Eq("api_id", apiID))
}

func (r *MatchRepository) getOne(ctx context.Context, cond qb.Condition) (match.Match, bool, error) {
	query, args, err := qb.Select("*").From("matches").
		Where(cond, qb.IsNull("deleted_at")).
		ToSQL()
	if err != nil {
		return match.Match{}, false, fmt.Errorf("build get match query: %w", err)
	}

	var row matchTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, fmt.Errorf("get match: %w", err)
	}

	return matchFromRow(row), true, nil
}

func (r *MatchRepository) Upsert(ctx context.Context, item match.Match) (match.Match, error) {
	insertModel := matchInsertModel{
		APIID:         item.APIID,
		LeagueID:      item.LeagueID,
		SeasonID:      item.SeasonID,
		HomeTeamID:    item.HomeTeamID,
		AwayTeamID:    item.AwayTeamID,
		KickoffAt:     item.KickoffAt,
		Round:         nullableString(item.Round),
		Venue:         nullableString(item.Venue),
		Referee:       nullableString(item.Referee),
		Status:        item.Status,
		IsLive:        item.IsLive,
		Minute:        item.Minute,
		HomeScore:     item.HomeScore,
		AwayScore:     item.AwayScore,
		HalftimeHome:  item.HalftimeHome,
		HalftimeAway:  item.HalftimeAway,
		ExtratimeHome: item.ExtratimeHome,
		ExtratimeAway: item.ExtratimeAway,
		PenaltyHome:   item.PenaltyHome,
		PenaltyAway:   item.PenaltyAway,
	}

	query, args, err := qb.InsertModel("matches", insertModel, `ON CONFLICT (api_id) WHERE deleted_at IS NULL
DO UPDATE SET
    league_id = EXCLUDED.league_id,
    season_id = EXCLUDED.season_id,
    home_team_id = EXCLUDED.home_team_id,
    away_team_id = EXCLUDED.away_team_id,
    kickoff_at = EXCLUDED.kickoff_at,
    round = EXCLUDED.round,
    venue = EXCLUDED.venue,
    referee = EXCLUDED.referee,
    status = EXCLUDED.status,
    is_live = EXCLUDED.is_live,
    minute = EXCLUDED.minute,
    home_score = EXCLUDED.home_score,
    away_score = EXCLUDED.away_score,
    halftime_home = EXCLUDED.halftime_home,
    halftime_away = EXCLUDED.halftime_away,
    extratime_home = EXCLUDED.extratime_home,
    extratime_away = EXCLUDED.extratime_away,
    penalty_home = EXCLUDED.penalty_home,
    penalty_away = EXCLUDED.penalty_away,
    updated_at = NOW(),
    deleted_at = NULL
RETURNING id, updated_at`)
	if err != nil {
		return match.Match{}, fmt.Errorf("build upsert match query: %w", err)
	}

	var returned struct {
		ID        int64     `db:"id"`
		UpdatedAt time.Time `db:"updated_at"`
	}
	if err := r.db.GetContext(ctx, &returned, query, args...); err != nil {
		return match.Match{}, fmt.Errorf("upsert match api_id=%d: %w", item.APIID, err)
	}
	item.ID = returned.ID
	item.UpdatedAt = returned.UpdatedAt

	return item, nil
}

func (r *MatchRepository) Find(ctx context.Context, filter match.Filter) ([]match.Match, int, error) {
	conditions := buildMatchConditions(filter)

	countQuery, countArgs, err := qb.Select("COUNT(*)").From("matches").
		Where(conditions...).
		ToSQL()
	if err != nil {
		return nil, 0, fmt.Errorf("build count matches query: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, countArgs...); err != nil {
		return nil, 0, fmt.Errorf("count matches: %w", err)
	}
	if total == 0 {
		return []match.Match{}, 0, nil
	}

	builder := qb.Select("*").From("matches").
		Where(conditions...).
		OrderBy("kickoff_at", "id")
	if filter.Limit > 0 {
		builder = builder.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		builder = builder.Offset(filter.Offset)
	}

	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, 0, fmt.Errorf("build select matches query: %w", err)
	}

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, 0, fmt.Errorf("select matches: %w", err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchFromRow(row))
	}

	return out, total, nil
}

func (r *MatchRepository) ListLive(ctx context.Context, limit int) ([]match.Match, error) {
	builder := qb.Select("*").From("matches").
		Where(
			qb.Eq("is_live", true),
			qb.IsNull("deleted_at"),
		).
		OrderBy("kickoff_at", "id")
	if limit > 0 {
		builder = builder.Limit(limit)
	}

	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select live matches query: %w", err)
	}

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select live matches: %w", err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchFromRow(row))
	}

	return out, nil
}

func (r *MatchRepository) ListStaleLive(ctx context.Context, cutoff time.Time) ([]match.Match, error) {
	query, args, err := qb.Select("*").From("matches").
		Where(
			qb.Eq("is_live", true),
			qb.Expr("kickoff_at < ?", cutoff),
			qb.IsNull("deleted_at"),
		).
		OrderBy("kickoff_at").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select stale live matches query: %w", err)
	}

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select stale live matches: %w", err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchFromRow(row))
	}

	return out, nil
}

func buildMatchConditions(filter match.Filter) []qb.Condition {
	conditions := []qb.Condition{qb.IsNull("deleted_at")}
	if filter.DateFrom != nil {
		conditions = append(conditions, qb.Expr("kickoff_at >= ?", *filter.DateFrom))
	}
	if filter.DateTo != nil {
		conditions = append(conditions, qb.Expr("kickoff_at <= ?", *filter.DateTo))
	}
	if filter.LeagueID != 0 {
		conditions = append(conditions, qb.Eq("league_id", filter.LeagueID))
	}
	if filter.SeasonID != 0 {
		conditions = append(conditions, qb.Eq("season_id", filter.SeasonID))
	}
	if filter.TeamID != 0 {
		conditions = append(conditions, qb.Expr("(home_team_id = ? OR away_team_id = ?)", filter.TeamID, filter.TeamID))
	}
	if filter.Status != "" {
		conditions = append(conditions, qb.Eq("status", filter.Status))
	}
	if filter.LiveOnly {
		conditions = append(conditions, qb.Eq("is_live", true))
	}
	return conditions
}
