package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/scorefeed/scorefeed/internal/domain/team"
	qb "github.com/scorefeed/scorefeed/internal/platform/querybuilder"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) GetByID(ctx context.Context, id int64) (team.Team, bool, error) {
	return r.getOne(ctx, qb.Eq("id", id))
}

func (r *TeamRepository) GetByAPIID(ctx context.Context, apiID int64) (team.Team, bool, error) {
	return r.getOne(ctx, qb.Eq("api_id", apiID))
}

func (r *TeamRepository) getOne(ctx context.Context, cond qb.Condition) (team.Team, bool, error) {
	query, args, err := qb.Select("*").From("teams").
		Where(cond, qb.IsNull("deleted_at")).
		ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build get team query: %w", err)
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("get team: %w", err)
	}

	return teamFromRow(row), true, nil
}

func (r *TeamRepository) Upsert(ctx context.Context, item team.Team) (team.Team, error) {
	insertModel := teamInsertModel{
		APIID:    item.APIID,
		LeagueID: item.LeagueID,
		Name:     item.Name,
		Slug:     item.Slug,
		Code:     nullableString(item.Code),
		Country:  nullableString(item.Country),
		LogoURL:  nullableString(item.LogoURL),
		Founded:  item.Founded,
		Venue:    nullableString(item.Venue),
	}

	// league_id stays out of the update set: it marks the league the
	// team was first created under, not the last one that synced it.
	query, args, err := qb.InsertModel("teams", insertModel, `ON CONFLICT (api_id) WHERE deleted_at IS NULL
DO UPDATE SET
    name = EXCLUDED.name,
    code = EXCLUDED.code,
    country = EXCLUDED.country,
    logo_url = EXCLUDED.logo_url,
    founded = EXCLUDED.founded,
    venue = EXCLUDED.venue,
    updated_at = NOW(),
    deleted_at = NULL
RETURNING id`)
	if err != nil {
		return team.Team{}, fmt.Errorf("build upsert team query: %w", err)
	}

	if err := r.db.GetContext(ctx, &item.ID, query, args...); err != nil {
		return team.Team{}, fmt.Errorf("upsert team api_id=%d: %w", item.APIID, err)
	}

	return item, nil
}
