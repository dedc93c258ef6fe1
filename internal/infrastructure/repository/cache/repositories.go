// Package cache wraps repositories with read-through caching backed by
// the shared in-process store. Writes invalidate the affected keys so
// sync passes never serve stale reference data to readers.
package cache

import (
	"context"
	"strconv"

	"github.com/scorefeed/scorefeed/internal/domain/league"
	"github.com/scorefeed/scorefeed/internal/domain/team"
	basecache "github.com/scorefeed/scorefeed/internal/platform/cache"
)

type LeagueRepository struct {
	next  league.Repository
	cache *basecache.Store
}

func NewLeagueRepository(next league.Repository, cache *basecache.Store) *LeagueRepository {
	return &LeagueRepository{next: next, cache: cache}
}

func (r *LeagueRepository) List(ctx context.Context, activeOnly bool) ([]league.League, error) {
	key := leagueListKey(activeOnly)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx, activeOnly)
		if err != nil {
			return nil, err
		}
		return append([]league.League(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]league.League)
	return append([]league.League(nil), items...), nil
}

func (r *LeagueRepository) GetByID(ctx context.Context, id int64) (league.League, bool, error) {
	key := leagueByIDPrefix + strconv.FormatInt(id, 10)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return cachedLeague{value: item, exists: exists}, nil
	})
	if err != nil {
		return league.League{}, false, err
	}

	cached, _ := v.(cachedLeague)
	return cached.value, cached.exists, nil
}

func (r *LeagueRepository) GetByAPIID(ctx context.Context, apiID int64) (league.League, bool, error) {
	key := leagueByAPIIDPrefix + strconv.FormatInt(apiID, 10)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByAPIID(ctx, apiID)
		if err != nil {
			return nil, err
		}
		return cachedLeague{value: item, exists: exists}, nil
	})
	if err != nil {
		return league.League{}, false, err
	}

	cached, _ := v.(cachedLeague)
	return cached.value, cached.exists, nil
}

func (r *LeagueRepository) Upsert(ctx context.Context, item league.League) (league.League, error) {
	saved, err := r.next.Upsert(ctx, item)
	if err != nil {
		return league.League{}, err
	}

	r.cache.DeletePrefix(ctx, leagueListPrefix)
	r.cache.Delete(ctx, leagueByIDPrefix+strconv.FormatInt(saved.ID, 10))
	r.cache.Delete(ctx, leagueByAPIIDPrefix+strconv.FormatInt(saved.APIID, 10))
	return saved, nil
}

type cachedLeague struct {
	value  league.League
	exists bool
}

type TeamRepository struct {
	next  team.Repository
	cache *basecache.Store
}

func NewTeamRepository(next team.Repository, cache *basecache.Store) *TeamRepository {
	return &TeamRepository{next: next, cache: cache}
}

func (r *TeamRepository) GetByID(ctx context.Context, id int64) (team.Team, bool, error) {
	key := teamByIDPrefix + strconv.FormatInt(id, 10)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return cachedTeam{value: item, exists: exists}, nil
	})
	if err != nil {
		return team.Team{}, false, err
	}

	cached, _ := v.(cachedTeam)
	return cached.value, cached.exists, nil
}

func (r *TeamRepository) GetByAPIID(ctx context.Context, apiID int64) (team.Team, bool, error) {
	key := teamByAPIIDPrefix + strconv.FormatInt(apiID, 10)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByAPIID(ctx, apiID)
		if err != nil {
			return nil, err
		}
		return cachedTeam{value: item, exists: exists}, nil
	})
	if err != nil {
		return team.Team{}, false, err
	}

	cached, _ := v.(cachedTeam)
	return cached.value, cached.exists, nil
}

func (r *TeamRepository) Upsert(ctx context.Context, item team.Team) (team.Team, error) {
	saved, err := r.next.Upsert(ctx, item)
	if err != nil {
		return team.Team{}, err
	}

	r.cache.Delete(ctx, teamByIDPrefix+strconv.FormatInt(saved.ID, 10))
	r.cache.Delete(ctx, teamByAPIIDPrefix+strconv.FormatInt(saved.APIID, 10))
	return saved, nil
}

type cachedTeam struct {
	value  team.Team
	exists bool
}

const (
	leagueListPrefix    = "league:list:"
	leagueByIDPrefix    = "league:id:"
	leagueByAPIIDPrefix = "league:api-id:"
	teamByIDPrefix      = "team:id:"
	teamByAPIIDPrefix   = "team:api-id:"
)

func leagueListKey(activeOnly bool) string {
	if activeOnly {
		return leagueListPrefix + "active"
	}
	return leagueListPrefix + "all"
}
