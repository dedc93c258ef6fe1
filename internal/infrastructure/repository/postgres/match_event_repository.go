package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/scorefeed/scorefeed/internal/domain/match"
	qb "github.com/scorefeed/scorefeed/internal/platform/querybuilder"
)

type MatchEventRepository struct {
	db *sqlx.DB
}

func NewMatchEventRepository(db *sqlx.DB) *MatchEventRepository {
	return &MatchEventRepository{db: db}
}

func (r *MatchEventRepository) ListByMatch(ctx context.Context, matchID int64) ([]match.Event, error) {
	query, args, err := qb.Select("*").From("match_events").
		Where(
			qb.Eq("match_id", matchID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("minute", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select match events query: %w", err)
	}

	var rows []matchEventTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select match events: %w", err)
	}

	out := make([]match.Event, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchEventFromRow(row))
	}

	return out, nil
}

// InsertUnique appends the event unless its dedup key already exists.
// The conflict target mirrors the expression index on match_events.
func (r *MatchEventRepository) InsertUnique(ctx context.Context, item match.Event) (bool, error) {
	insertModel := matchEventInsertModel{
		MatchID:     item.MatchID,
		TeamID:      nullableInt64(item.TeamID),
		Minute:      item.Minute,
		ExtraMinute: item.ExtraMinute,
		Type:        item.Type,
		Detail:      nullableString(item.Detail),
		Player:      nullableString(item.Player),
		Assist:      nullableString(item.Assist),
		Comments:    nullableString(item.Comments),
	}

	query, args, err := qb.InsertModel("match_events", insertModel, `ON CONFLICT (match_id, COALESCE(team_id, 0), minute, type, COALESCE(player, ''))
DO NOTHING
RETURNING id`)
	if err != nil {
		return false, fmt.Errorf("build insert match event query: %w", err)
	}

	var id int64
	if err := r.db.GetContext(ctx, &id, query, args...); err != nil {
		if isNotFound(err) {
			// DO NOTHING returned no row: the event already exists.
			return false, nil
		}
		return false, fmt.Errorf("insert match event match_id=%d minute=%d: %w", item.MatchID, item.Minute, err)
	}

	return true, nil
}
