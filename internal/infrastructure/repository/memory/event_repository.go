package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/scorefeed/scorefeed/internal/domain/match"
)

type EventRepository struct {
	mu     sync.RWMutex
	items  map[int64]match.Event
	keys   map[string]struct{}
	nextID int64
}

func NewEventRepository() *EventRepository {
	return &EventRepository{
		items:  make(map[int64]match.Event),
		keys:   make(map[string]struct{}),
		nextID: 1,
	}
}

func (r *EventRepository) ListByMatch(_ context.Context, matchID int64) ([]match.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]match.Event, 0)
	for _, e := range r.items {
		if e.MatchID == matchID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Minute != out[j].Minute {
			return out[i].Minute < out[j].Minute
		}
		return out[i].ID < out[j].ID
	})

	return out, nil
}

func (r *EventRepository) InsertUnique(_ context.Context, item match.Event) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := item.DedupKey()
	if _, exists := r.keys[key]; exists {
		return false, nil
	}

	item.ID = r.nextID
	r.nextID++
	r.items[item.ID] = item
	r.keys[key] = struct{}{}

	return true, nil
}
