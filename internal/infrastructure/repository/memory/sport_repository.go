package memory

import (
	"context"
	"sync"

	"github.com/scorefeed/scorefeed/internal/domain/sport"
)

type SportRepository struct {
	mu     sync.RWMutex
	items  map[int64]sport.Sport
	nextID int64
}

func NewSportRepository(sports []sport.Sport) *SportRepository {
	items := make(map[int64]sport.Sport, len(sports))
	var nextID int64 = 1

	for _, s := range sports {
		items[s.ID] = s
		if s.ID >= nextID {
			nextID = s.ID + 1
		}
	}

	return &SportRepository{
		items:  items,
		nextID: nextID,
	}
}

func (r *SportRepository) GetBySlug(_ context.Context, slug string) (sport.Sport, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.items {
		if s.Slug == slug {
			return s, true, nil
		}
	}

	return sport.Sport{}, false, nil
}

func (r *SportRepository) Upsert(_ context.Context, item sport.Sport) (sport.Sport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if item.ID == 0 {
		for _, s := range r.items {
			if s.Slug == item.Slug {
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
