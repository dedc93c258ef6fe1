package memory

import (
	"context"
	"sync"

	"github.com/scorefeed/scorefeed/internal/domain/rawdata"
)

type RawDataRepository struct {
	mu    sync.RWMutex
	items map[string]rawdata.Payload
}

func NewRawDataRepository() *RawDataRepository {
	return &RawDataRepository{items: make(map[string]rawdata.Payload)}
}

func (r *RawDataRepository) UpsertMany(_ context.Context, items []rawdata.Payload) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range items {
		key := item.Source + "|" + item.EntityType + "|" + item.EntityKey
		r.items[key] = item
	}

	return nil
}

// Snapshot returns a copy of everything archived so far. Test helper.
func (r *RawDataRepository) Snapshot() []rawdata.Payload {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]rawdata.Payload, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item)
	}

	return out
}
