package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/scorefeed/scorefeed/internal/domain/sport"
	qb "github.com/scorefeed/scorefeed/internal/platform/querybuilder"
)

type SportRepository struct {
	db *sqlx.DB
}

func NewSportRepository(db *sqlx.DB) *SportRepository {
	return &SportRepository{db: db}
}

func (r *SportRepository) GetBySlug(ctx context.Context, slug string) (sport.Sport, bool, error) {
	query, args, err := qb.Select("*").From("sports").
		Where(
			qb.Eq("slug", slug),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return sport.Sport{}, false, fmt.Errorf("build get sport by slug query: %w", err)
	}

	var row sportTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return sport.Sport{}, false, nil
		}
		return sport.Sport{}, false, fmt.Errorf("get sport by slug: %w", err)
	}

	return sportFromRow(row), true, nil
}

func (r *SportRepository) Upsert(ctx context.Context, item sport.Sport) (sport.Sport, error) {
	insertModel := sportInsertModel{
		APIID: item.APIID,
		Name:  item.Name,
		Slug:  item.Slug,
	}

	query, args, err := qb.InsertModel("sports", insertModel, `ON CONFLICT (slug) WHERE deleted_at IS NULL
DO UPDATE SET
    api_id = EXCLUDED.api_id,
    name = EXCLUDED.name,
    updated_at = NOW(),
    deleted_at = NULL
RETURNING id`)
	if err != nil {
		return sport.Sport{}, fmt.Errorf("build upsert sport query: %w", err)
	}

	if err := r.db.GetContext(ctx, &item.ID, query, args...); err != nil {
		return sport.Sport{}, fmt.Errorf("upsert sport slug=%s: %w", item.Slug, err)
	}

	return item, nil
}

func sportFromRow(row sportTableModel) sport.Sport {
	return sport.Sport{
		ID:    row.ID,
		APIID: row.APIID,
		Name:  row.Name,
		Slug:  row.Slug,
	}
}
