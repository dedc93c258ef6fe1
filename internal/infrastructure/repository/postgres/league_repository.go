package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/scorefeed/scorefeed/internal/domain/league"
	qb "github.com/scorefeed/scorefeed/internal/platform/querybuilder"
)

type LeagueRepository struct {
	db *sqlx.DB
}

func NewLeagueRepository(db *sqlx.DB) *LeagueRepository {
	return &LeagueRepository{db: db}
}

func (r *LeagueRepository) List(ctx context.Context, activeOnly bool) ([]league.League, error) {
	builder := qb.Select("*").From("leagues").
		Where(qb.IsNull("deleted_at")).
		OrderBy("sort_order", "id")
	if activeOnly {
		builder = builder.Where(qb.Eq("is_active", true))
	}

	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select leagues query: %w", err)
	}

	var rows []leagueTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select leagues: %w", err)
	}

	out := make([]league.League, 0, len(rows))
	for _, row := range rows {
		out = append(out, leagueFromRow(row))
	}

	return out, nil
}

func (r *LeagueRepository) GetByID(ctx context.Context, id int64) (league.League, bool, error) {
	return r.getOne(ctx, qb.Eq("id", id))
}

func (r *LeagueRepository) GetByAPIID(ctx context.Context, apiID int64) (league.League, bool, error) {
	return r.getOne(ctx, qb.Eq("api_id", apiID))
}

func (r *LeagueRepository) getOne(ctx context.Context, cond qb.Condition) (league.League, bool, error) {
	query, args, err := qb.Select("*").From("leagues").
		Where(cond, qb.IsNull("deleted_at")).
		ToSQL()
	if err != nil {
		return league.League{}, false, fmt.Errorf("build get league query: %w", err)
	}

	var row leagueTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return league.League{}, false, nil
		}
		return league.League{}, false, fmt.Errorf("get league: %w", err)
	}

	return leagueFromRow(row), true, nil
}

func (r *LeagueRepository) Upsert(ctx context.Context, item league.League) (league.League, error) {
	insertModel := leagueInsertModel{
		SportID:   nullableInt64(item.SportID),
		APIID:     item.APIID,
		Name:      item.Name,
		Slug:      item.Slug,
		Country:   nullableString(item.Country),
		LogoURL:   nullableString(item.LogoURL),
		SortOrder: item.SortOrder,
		IsActive:  item.IsActive,
	}

	// Slug, sort order, and active flag are owned locally and survive
	// the upsert.
	query, args, err := qb.InsertModel("leagues", insertModel, `ON CONFLICT (api_id) WHERE deleted_at IS NULL
DO UPDATE SET
    sport_id = COALESCE(EXCLUDED.sport_id, leagues.sport_id),
    name = EXCLUDED.name,
    country = EXCLUDED.country,
    logo_url = EXCLUDED.logo_url,
    updated_at = NOW(),
    deleted_at = NULL
RETURNING id`)
	if err != nil {
		return league.League{}, fmt.Errorf("build upsert league query: %w", err)
	}

	if err := r.db.GetContext(ctx, &item.ID, query, args...); err != nil {
		return league.League{}, fmt.Errorf("upsert league api_id=%d: %w", item.APIID, err)
	}

	return item, nil
}
