package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/scorefeed/scorefeed/internal/domain/match"
	"github.com/scorefeed/scorefeed/internal/platform/logging"
)

const defaultMaxTrackedLive = 50

type LiveSyncConfig struct {
	// MaxTracked bounds the targeted refresh pass; one upstream call
	// per tracked match.
	MaxTracked int
	// StaleAfter demotes a live-flagged match whose kickoff is further
	// back than any real match runs. Measured from kickoff so a feed
	// that keeps echoing a live status still gets demoted.
	StaleAfter time.Duration
}

// LiveSyncService keeps in-play matches fresh. Every pass refreshes
// the matches the replica believes are live, then discovers live
// matches the replica missed, then demotes rows the upstream silently
// stopped reporting.
type LiveSyncService struct {
	provider    UpstreamProvider
	matchRepo   match.Repository
	fixtureSync *FixtureSyncService
	cfg         LiveSyncConfig
	logger      *logging.Logger

	now func() time.Time
}

func NewLiveSyncService(
	provider UpstreamProvider,
	matchRepo match.Repository,
	fixtureSync *FixtureSyncService,
	cfg LiveSyncConfig,
	logger *logging.Logger,
) *LiveSyncService {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.MaxTracked <= 0 {
		cfg.MaxTracked = defaultMaxTrackedLive
	}
	if cfg.StaleAfter <= 0 {
		cfg.StaleAfter = 3 * time.Hour
	}

	return &LiveSyncService{
		provider:    provider,
		matchRepo:   matchRepo,
		fixtureSync: fixtureSync,
		cfg:         cfg,
		logger:      logger,
		now:         time.Now,
	}
}

// RefreshLiveMatches runs one reconciliation pass. A failing match
// never blocks the rest of the pass.
func (s *LiveSyncService) RefreshLiveMatches(ctx context.Context) (SyncReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LiveSyncService.RefreshLiveMatches")
	defer span.End()

	var report SyncReport
	if s.provider == nil || s.matchRepo == nil || s.fixtureSync == nil {
		return report, fmt.Errorf("%w: live sync is not fully configured", ErrDependencyUnavailable)
	}

	tracked, err := s.matchRepo.ListLive(ctx, s.cfg.MaxTracked)
	if err != nil {
		return report, fmt.Errorf("list live matches: %w", err)
	}

	seen := make(map[int64]struct{}, len(tracked))
	for _, m := range tracked {
		seen[m.APIID] = struct{}{}
		item, ok := s.provider.FetchFixtureByID(ctx, m.APIID)
		if !ok {
			report.Skipped++
			continue
		}
		s.applyFixture(ctx, item, &report)
	}

	// Discovery: matches that went live without a prior local record,
	// or whose kickoff the daily pass never saw.
	for _, item := range s.provider.FetchLiveFixtures(ctx) {
		if _, already := seen[item.APIID]; already {
			continue
		}
		seen[item.APIID] = struct{}{}
		s.applyFixture(ctx, item, &report)
	}

	cleanup, err := s.CleanupStaleLive(ctx, s.cfg.StaleAfter)
	if err != nil {
		s.logger.WarnContext(ctx, "stale cleanup failed", "error", err)
		report.Errors++
	} else {
		report.Merge(cleanup)
	}

	s.logger.InfoContext(ctx, "live reconciliation finished",
		"tracked", len(tracked),
		"updated", report.Updated,
		"errors", report.Errors,
	)
	return report, nil
}

// CleanupStaleLive demotes matches still flagged live whose kickoff is
// older than the threshold. Stale rows move to FINISHED; rows already
// in a terminal status just lose the live flag.
func (s *LiveSyncService) CleanupStaleLive(ctx context.Context, olderThan time.Duration) (SyncReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LiveSyncService.CleanupStaleLive")
	defer span.End()

	var report SyncReport
	if s.matchRepo == nil {
		return report, fmt.Errorf("%w: match repository is not configured", ErrDependencyUnavailable)
	}
	if olderThan <= 0 {
		olderThan = s.cfg.StaleAfter
	}

	cutoff := s.now().UTC().Add(-olderThan)
	stale, err := s.matchRepo.ListStaleLive(ctx, cutoff)
	if err != nil {
		return report, fmt.Errorf("list stale live matches: %w", err)
	}

	for _, m := range stale {
		if !match.IsTerminalStatus(m.Status) {
			m.Status = match.StatusFinished
			m.Minute = nil
		}
		m.IsLive = false
		m.UpdatedAt = s.now().UTC()

		if _, err := s.matchRepo.Upsert(ctx, m); err != nil {
			report.Errors++
			s.logger.WarnContext(ctx, "stale live demotion failed", "match_api_id", m.APIID, "error", err)
			continue
		}
		report.Updated++
	}

	if report.Updated > 0 {
		s.logger.InfoContext(ctx, "stale live matches demoted", "count", report.Updated, "older_than", olderThan.String())
	}
	return report, nil
}

func (s *LiveSyncService) applyFixture(ctx context.Context, item UpstreamFixture, report *SyncReport) {
	persisted, err := s.fixtureSync.SyncMatch(ctx, item)
	if err != nil {
		report.Errors++
		s.logger.WarnContext(ctx, "live fixture sync failed", "fixture_api_id", item.APIID, "error", err)
		return
	}
	report.Updated++

	events := s.provider.FetchEvents(ctx, persisted.APIID)
	if len(events) == 0 {
		return
	}
	eventReport, err := s.fixtureSync.SyncMatchEvents(ctx, persisted.APIID, events)
	if err != nil {
		report.Errors++
		s.logger.WarnContext(ctx, "live event sync failed", "fixture_api_id", item.APIID, "error", err)
		return
	}
	report.Created += eventReport.Created
	report.Errors += eventReport.Errors
}
