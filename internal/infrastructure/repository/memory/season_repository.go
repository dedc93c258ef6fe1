package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/scorefeed/scorefeed/internal/domain/season"
)

type SeasonRepository struct {
	mu     sync.RWMutex
	items  map[int64]season.Season
	nextID int64
}

func NewSeasonRepository(seasons []season.Season) *SeasonRepository {
	items := make(map[int64]season.Season, len(seasons))
	var nextID int64 = 1

	for _, s := range seasons {
		items[s.ID] = s
		if s.ID >= nextID {
			nextID = s.ID + 1
		}
	}

	return &SeasonRepository{
		items:  items,
		nextID: nextID,
	}
}

func (r *SeasonRepository) ListByLeague(_ context.Context, leagueID int64) ([]season.Season, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]season.Season, 0)
	for _, s := range r.items {
		if s.LeagueID == leagueID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })

	return out, nil
}

func (r *SeasonRepository) GetByLeagueYear(_ context.Context, leagueID int64, year int) (season.Season, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.items {
		if s.LeagueID == leagueID && s.Year == year {
			return s, true, nil
		}
	}

	return season.Season{}, false, nil
}

func (r *SeasonRepository) Upsert(_ context.Context, item season.Season) (season.Season, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if item.ID == 0 {
		for _, s := range r.items {
			if s.LeagueID == item.LeagueID && s.Year == item.Year {
				item.ID = s.ID
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
