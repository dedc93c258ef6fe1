package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/scorefeed/scorefeed/internal/domain/season"
	qb "github.com/scorefeed/scorefeed/internal/platform/querybuilder"
)

type SeasonRepository struct {
	db *sqlx.DB
}

func NewSeasonRepository(db *sqlx.DB) *SeasonRepository {
	return &SeasonRepository{db: db}
}

func (r *SeasonRepository) ListByLeague(ctx context.Context, leagueID int64) ([]season.Season, error) {
	query, args, err := qb.Select("*").From("seasons").
		Where(
			qb.Eq("league_id", leagueID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("year").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select seasons query: %w", err)
	}

	var rows []seasonTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select seasons: %w", err)
	}

	out := make([]season.Season, 0, len(rows))
	for _, row := range rows {
		out = append(out, seasonFromRow(row))
	}

	return out, nil
}

func (r *SeasonRepository) GetByLeagueYear(ctx context.Context, leagueID int64, year int) (season.Season, bool, error) {
	query, args, err := qb.Select("*").From("seasons").
		Where(
			qb.Eq("league_id", leagueID),
			qb.Eq("year", year),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return season.Season{}, false, fmt.Errorf("build get season query: %w", err)
	}

	var row seasonTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return season.Season{}, false, nil
		}
		return season.Season{}, false, fmt.Errorf("get season: %w", err)
	}

	return seasonFromRow(row), true, nil
}

func (r *SeasonRepository) Upsert(ctx context.Context, item season.Season) (season.Season, error) {
	insertModel := seasonInsertModel{
		LeagueID:  item.LeagueID,
		Year:      item.Year,
		StartDate: item.StartDate,
		EndDate:   item.EndDate,
		IsCurrent: item.IsCurrent,
	}

	query, args, err := qb.InsertModel("seasons", insertModel, `ON CONFLICT (league_id, year) WHERE deleted_at IS NULL
DO UPDATE SET
    start_date = EXCLUDED.start_date,
    end_date = EXCLUDED.end_date,
    is_current = EXCLUDED.is_current,
    updated_at = NOW(),
    deleted_at = NULL
RETURNING id`)
	if err != nil {
		return season.Season{}, fmt.Errorf("build upsert season query: %w", err)
	}

	if err := r.db.GetContext(ctx, &item.ID, query, args...); err != nil {
		return season.Season{}, fmt.Errorf("upsert season league_id=%d year=%d: %w", item.LeagueID, item.Year, err)
	}

	return item, nil
}
