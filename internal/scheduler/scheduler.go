package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/scorefeed/scorefeed/internal/platform/logging"
)

// Gate decides whether a due job may run at the given instant.
type Gate func(now time.Time) bool

// Job is one recurring unit of sync work. Run receives the tick time so
// jobs stay testable with a fake clock.
type Job struct {
	Name  string
	Every time.Duration
	Gate  Gate
	Run   func(ctx context.Context) error
}

type jobState struct {
	job     Job
	lastRun time.Time
	running bool
}

// Scheduler drives registered jobs off a single ticker. Every job keeps
// its own cadence; a slow job never blocks the tick loop, and a job
// still running when its next tick arrives is skipped instead of being
// started twice.
type Scheduler struct {
	mu     sync.Mutex
	jobs   []*jobState
	logger *logging.Logger

	tick time.Duration
	now  func() time.Time
	wg   sync.WaitGroup
}

func New(logger *logging.Logger) *Scheduler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Scheduler{
		logger: logger,
		tick:   time.Second * 15,
		now:    time.Now,
	}
}

// Register adds a job to the registry. Jobs never start before Start is
// called, so registration order is wiring order, not run order.
func (s *Scheduler) Register(job Job) error {
	if job.Name == "" {
		return fmt.Errorf("scheduler job name is required")
	}
	if job.Every <= 0 {
		return fmt.Errorf("scheduler job %q needs a positive interval", job.Name)
	}
	if job.Run == nil {
		return fmt.Errorf("scheduler job %q has no run function", job.Name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.jobs {
		if existing.job.Name == job.Name {
			return fmt.Errorf("scheduler job %q registered twice", job.Name)
		}
	}
	s.jobs = append(s.jobs, &jobState{job: job})
	return nil
}

// JobNames lists the registry in registration order.
func (s *Scheduler) JobNames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]string, 0, len(s.jobs))
	for _, state := range s.jobs {
		names = append(names, state.job.Name)
	}
	return names
}

// Start runs the tick loop until ctx is cancelled, then waits for
// in-flight jobs to finish.
func (s *Scheduler) Start(ctx context.Context) {
	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()

	s.logger.InfoContext(ctx, "scheduler started", "jobs", len(s.jobs), "tick", s.tick.String())

	for {
		select {
		case <-ctx.Done():
			s.wg.Wait()
			s.logger.InfoContext(ctx, "scheduler stopped")
			return
		case now := <-ticker.C:
			s.RunDue(ctx, now.UTC())
		}
	}
}

// RunDue fires every job whose interval has elapsed and whose gate
// allows the instant. Exposed separately from Start so tests can drive
// the clock by hand.
func (s *Scheduler) RunDue(ctx context.Context, now time.Time) {
	s.mu.Lock()
	due := make([]*jobState, 0, len(s.jobs))
	for _, state := range s.jobs {
		if state.running {
			continue
		}
		if !state.lastRun.IsZero() && now.Sub(state.lastRun) < state.job.Every {
			continue
		}
		if state.job.Gate != nil && !state.job.Gate(now) {
			continue
		}
		state.running = true
		state.lastRun = now
		due = append(due, state)
	}
	s.mu.Unlock()

	for _, state := range due {
		state := state
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			defer func() {
				s.mu.Lock()
				state.running = false
				s.mu.Unlock()
			}()

			start := s.now()
			if err := state.job.Run(ctx); err != nil {
				s.logger.WarnContext(ctx, "scheduled job failed",
					"job", state.job.Name,
					"duration", s.now().Sub(start).String(),
					"error", err,
				)
				return
			}
			s.logger.InfoContext(ctx, "scheduled job finished",
				"job", state.job.Name,
				"duration", s.now().Sub(start).String(),
			)
		}()
	}
}

// Wait blocks until all in-flight jobs return. Test helper.
func (s *Scheduler) Wait() {
	s.wg.Wait()
}
