package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/scorefeed/scorefeed/internal/domain/match"
)

type MatchRepository struct {
	mu     sync.RWMutex
	items  map[int64]match.Match
	nextID int64
}

func NewMatchRepository(matches []match.Match) *MatchRepository {
	items := make(map[int64]match.Match, len(matches))
	var nextID int64 = 1

	for _, m := range matches {
		items[m.ID] = m
		if m.ID >= nextID {
			nextID = m.ID + 1
		}
	}

	return &MatchRepository{
		items:  items,
		nextID: nextID,
	}
}

func (r *MatchRepository) GetByID(_ context.Context, id int64) (match.Match, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.items[id]
	if !ok {
		return match.Match{}, false, nil
	}

	return m, true, nil
}

func (r *MatchRepository) GetByAPIID(_ context.Context, apiID int64) (match.Match, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, m := range r.items {
		if m.APIID == apiID {
			return m, true, nil
		}
	}

	return match.Match{}, false, nil
}

func (r *MatchRepository) Upsert(_ context.Context, item match.Match) (match.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if item.ID == 0 {
		for _, m := range r.items {
			if m.APIID == item.APIID {
				item.ID = m.ID
				break
			}
		}
	}
	if item.ID == 0 {
		item.ID = r.nextID
		r.nextID++
	}
	if item.UpdatedAt.IsZero() {
		item.UpdatedAt = time.Now().UTC()
	}
	r.items[item.ID] = item

	return item, nil
}

func (r *MatchRepository) Find(_ context.Context, filter match.Filter) ([]match.Match, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]match.Match, 0)
	for _, m := range r.items {
		if !matchesFilter(m, filter) {
			continue
		}
		matched = append(matched, m)
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].KickoffAt.Equal(matched[j].KickoffAt) {
			return matched[i].KickoffAt.Before(matched[j].KickoffAt)
		}
		return matched[i].ID < matched[j].ID
	})

	total := len(matched)
	if filter.Offset > 0 {
		if filter.Offset >= len(matched) {
			matched = nil
		} else {
			matched = matched[filter.Offset:]
		}
	}
	if filter.Limit > 0 && len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}

	return matched, total, nil
}

func (r *MatchRepository) ListLive(_ context.Context, limit int) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]match.Match, 0)
	for _, m := range r.items {
		if m.IsLive {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}

	return out, nil
}

func (r *MatchRepository) ListStaleLive(_ context.Context, cutoff time.Time) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]match.Match, 0)
	for _, m := range r.items {
		if m.IsLive && m.KickoffAt.Before(cutoff) {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}

func matchesFilter(m match.Match, filter match.Filter) bool {
	if filter.DateFrom != nil && m.KickoffAt.Before(*filter.DateFrom) {
		return false
	}
	if filter.DateTo != nil && m.KickoffAt.After(*filter.DateTo) {
		return false
	}
	if filter.LeagueID != 0 && m.LeagueID != filter.LeagueID {
		return false
	}
	if filter.SeasonID != 0 && m.SeasonID != filter.SeasonID {
		return false
	}
	if filter.TeamID != 0 && m.HomeTeamID != filter.TeamID && m.AwayTeamID != filter.TeamID {
		return false
	}
	if filter.Status != "" && m.Status != filter.Status {
		return false
	}
	if filter.LiveOnly && !m.IsLive {
		return false
	}
	return true
}
