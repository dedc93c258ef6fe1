package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/scorefeed/scorefeed/internal/domain/league"
)

type LeagueRepository struct {
	mu     sync.RWMutex
	items  map[int64]league.League
	nextID int64
}

func NewLeagueRepository(leagues []league.League) *LeagueRepository {
	items := make(map[int64]league.League, len(leagues))
	var nextID int64 = 1

	for _, l := range leagues {
		items[l.ID] = l
		if l.ID >= nextID {
			nextID = l.ID + 1
		}
	}

	return &LeagueRepository{
		items:  items,
		nextID: nextID,
	}
}

func (r *LeagueRepository) List(_ context.Context, activeOnly bool) ([]league.League, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]league.League, 0, len(r.items))
	for _, l := range r.items {
		if activeOnly && !l.IsActive {
			continue
		}
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SortOrder != out[j].SortOrder {
			return out[i].SortOrder < out[j].SortOrder
		}
		return out[i].ID < out[j].ID
	})

	return out, nil
}

func (r *LeagueRepository) GetByID(_ context.Context, id int64) (league.League, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.items[id]
	if !ok {
		return league.League{}, false, nil
	}

	return l, true, nil
}

func (r *LeagueRepository) GetByAPIID(_ context.Context, apiID int64) (league.League, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, l := range r.items {
		if l.APIID == apiID {
			return l, true, nil
		}
	}

	return league.League{}, false, nil
}

func (r *LeagueRepository) Upsert(_ context.Context, item league.League) (league.League, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if item.ID == 0 {
		for _, l := range r.items {
			if l.APIID == item.APIID {
				item.ID = l.ID
				break
			}
		}
	}
	if item.ID == 0 {
		item.ID = r.nextID
		r.nextID++
	}
	r.items[item.ID] = item

	return item, nil
}
