package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/scorefeed/scorefeed/internal/platform/logging"
)

const (
	defaultBackfillWorkers = 2
	maxBackfillWorkers     = 4
	maxBackfillDays        = 90
)

type BackfillInput struct {
	From       time.Time
	To         time.Time
	MaxWorkers int
}

type BackfillResult struct {
	DayCount     int                 `json:"day_count"`
	SuccessCount int                 `json:"success_count"`
	FailedCount  int                 `json:"failed_count"`
	WorkerCount  int                 `json:"worker_count"`
	Report       SyncReport          `json:"report"`
	Days         []BackfillDayResult `json:"days"`
}

type BackfillDayResult struct {
	Date       string `json:"date"`
	Status     string `json:"status"`
	Synced     int    `json:"synced"`
	Errors     int    `json:"errors"`
	DurationMs int64  `json:"duration_ms"`
	Message    string `json:"message,omitempty"`
}

const (
	backfillStatusSuccess = "success"
	backfillStatusFailed  = "failed"
)

// BackfillService replays historical fixture days through the regular
// sync path. The worker pool is kept deliberately small: the provider
// rate limit, not CPU, is the bottleneck.
type BackfillService struct {
	fixtureSync *FixtureSyncService
	logger      *logging.Logger
}

func NewBackfillService(fixtureSync *FixtureSyncService, logger *logging.Logger) *BackfillService {
	if logger == nil {
		logger = logging.Default()
	}
	return &BackfillService{
		fixtureSync: fixtureSync,
		logger:      logger,
	}
}

func (s *BackfillService) BackfillRange(ctx context.Context, input BackfillInput) (BackfillResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BackfillService.BackfillRange")
	defer span.End()

	if s.fixtureSync == nil {
		return BackfillResult{}, fmt.Errorf("%w: fixture sync is not configured", ErrDependencyUnavailable)
	}

	from := input.From.UTC().Truncate(24 * time.Hour)
	to := input.To.UTC().Truncate(24 * time.Hour)
	if from.IsZero() {
		return BackfillResult{}, fmt.Errorf("%w: backfill start date is required", ErrInvalidInput)
	}
	if to.Before(from) {
		to = from
	}

	days := make([]time.Time, 0, 8)
	for day := from; !day.After(to); day = day.Add(24 * time.Hour) {
		days = append(days, day)
	}
	if len(days) > maxBackfillDays {
		return BackfillResult{}, fmt.Errorf("%w: backfill range spans %d days, limit is %d", ErrInvalidInput, len(days), maxBackfillDays)
	}

	workerCount := normalizeBackfillWorkerCount(input.MaxWorkers, len(days))
	result := BackfillResult{
		DayCount:    len(days),
		WorkerCount: workerCount,
		Days:        make([]BackfillDayResult, 0, len(days)),
	}

	results := make(chan BackfillDayResult, len(days))
	var successCount atomic.Int32
	var failedCount atomic.Int32
	var reportMu sync.Mutex

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return BackfillResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for _, day := range days {
		day := day
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			start := time.Now()
			row := BackfillDayResult{Date: day.Format("2006-01-02")}

			report, err := s.fixtureSync.SyncMatchesForDate(ctx, day)
			row.Synced = report.Updated
			row.Errors = report.Errors
			row.DurationMs = time.Since(start).Milliseconds()
			if err != nil {
				row.Status = backfillStatusFailed
				row.Message = err.Error()
				failedCount.Add(1)
			} else {
				row.Status = backfillStatusSuccess
				successCount.Add(1)
				reportMu.Lock()
				result.Report.Merge(report)
				reportMu.Unlock()
			}

			results <- row
		}); err != nil {
			workers.Done()
			return BackfillResult{}, fmt.Errorf("submit backfill day to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(results)

	for row := range results {
		result.Days = append(result.Days, row)
	}
	sort.SliceStable(result.Days, func(i, j int) bool { return result.Days[i].Date < result.Days[j].Date })

	result.SuccessCount = int(successCount.Load())
	result.FailedCount = int(failedCount.Load())

	s.logger.InfoContext(ctx, "backfill finished",
		"from", from.Format("2006-01-02"),
		"to", to.Format("2006-01-02"),
		"days", result.DayCount,
		"failed", result.FailedCount,
	)
	return result, nil
}

func normalizeBackfillWorkerCount(requested, taskCount int) int {
	count := requested
	if count <= 0 {
		count = defaultBackfillWorkers
	}
	if count > maxBackfillWorkers {
		count = maxBackfillWorkers
	}
	if taskCount > 0 && count > taskCount {
		count = taskCount
	}
	if count < 1 {
		count = 1
	}
	return count
}
