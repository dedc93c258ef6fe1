package memory

import (
	"context"
	"sync"

	"github.com/scorefeed/scorefeed/internal/domain/team"
)

type TeamRepository struct {
	mu     sync.RWMutex
	items  map[int64]team.Team
	nextID int64
}

func NewTeamRepository(teams []team.Team) *TeamRepository {
	items := make(map[int64]team.Team, len(teams))
	var nextID int64 = 1

	for _, t := range teams {
		items[t.ID] = t
		if t.ID >= nextID {
			nextID = t.ID + 1
		}
	}

	return &TeamRepository{
		items:  items,
		nextID: nextID,
	}
}

func (r *TeamRepository) GetByID(_ context.Context, id int64) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.items[id]
	if !ok {
		return team.Team{}, false, nil
	}

	return t, true, nil
}

func (r *TeamRepository) GetByAPIID(_ context.Context, apiID int64) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, t := range r.items {
		if t.APIID == apiID {
			return t, true, nil
		}
	}

	return team.Team{}, false, nil
}

func (r *TeamRepository) Upsert(_ context.Context, item team.Team) (team.Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if item.ID == 0 {
		for _, t := range r.items {
			if t.APIID == item.APIID {
				item.ID = t.ID
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
