package scheduler

import (
	"sync"
	"time"
)

// BootstrapState tracks whether the initial reference pass has
// completed. Jobs that depend on reference data gate on it instead of
// consulting a package-level flag.
type BootstrapState struct {
	mu       sync.RWMutex
	done     bool
	doneAt   time.Time
	attempts int
	lastErr  error
}

func NewBootstrapState() *BootstrapState {
	return &BootstrapState{}
}

func (b *BootstrapState) MarkDone(at time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.done = true
	b.doneAt = at
	b.lastErr = nil
}

func (b *BootstrapState) MarkFailed(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.attempts++
	b.lastErr = err
}

func (b *BootstrapState) Done() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.done
}

func (b *BootstrapState) Attempts() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.attempts
}

func (b *BootstrapState) LastError() error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lastErr
}

// Gate blocks dependent jobs until bootstrap has finished.
func (b *BootstrapState) Gate() Gate {
	return func(time.Time) bool { return b.Done() }
}
