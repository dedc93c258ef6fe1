package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/scorefeed/scorefeed/internal/domain/match"
	"github.com/scorefeed/scorefeed/internal/platform/logging"
)

func newLiveSyncService(h *fixtureSyncHarness, provider UpstreamProvider, cfg LiveSyncConfig) *LiveSyncService {
	return NewLiveSyncService(provider, h.matchRepo, h.svc, cfg, logging.NewNop())
}

func TestLiveSyncService_RefreshLiveMatches_UpdatesTrackedAndDiscovers(t *testing.T) {
	t.Parallel()

	tracked := sampleFixture()
	tracked.StatusCode = "2H"
	tracked.Minute = intPtr(68)
	tracked.HomeScore = intPtr(2)
	tracked.AwayScore = intPtr(1)

	discovered := sampleFixture()
	discovered.APIID = 777
	discovered.HomeTeamAPIID = 50
	discovered.HomeTeamName = "Manchester City"
	discovered.AwayTeamAPIID = 42
	discovered.AwayTeamName = "Arsenal"
	discovered.StatusCode = "1H"
	discovered.Minute = intPtr(12)

	provider := &stubProvider{
		fetchFixtureByID: func(_ context.Context, apiID int64) (UpstreamFixture, bool) {
			if apiID == tracked.APIID {
				return tracked, true
			}
			return UpstreamFixture{}, false
		},
		fetchLiveFixtures: func(_ context.Context) []UpstreamFixture {
			return []UpstreamFixture{tracked, discovered}
		},
	}

	h := newFixtureSyncHarness(provider)

	// Seed the tracked match in an earlier live state.
	seeded := sampleFixture()
	seeded.StatusCode = "1H"
	seeded.Minute = intPtr(23)
	seeded.HomeScore = intPtr(1)
	seeded.AwayScore = intPtr(0)
	if _, err := h.svc.SyncMatch(context.Background(), seeded); err != nil {
		t.Fatalf("seed SyncMatch error: %v", err)
	}

	svc := newLiveSyncService(h, provider, LiveSyncConfig{})
	// Pin the clock an hour after kickoff so the in-pass staleness
	// sweep leaves these matches alone.
	svc.now = func() time.Time { return tracked.KickoffAt.Add(time.Hour) }

	report, err := svc.RefreshLiveMatches(context.Background())
	if err != nil {
		t.Fatalf("RefreshLiveMatches error: %v", err)
	}
	// The tracked match refreshes once and the discovery pass adds the
	// unseen fixture without re-fetching the tracked one.
	if report.Updated != 2 {
		t.Fatalf("expected 2 updated matches, got=%d", report.Updated)
	}

	refreshed, ok, err := h.matchRepo.GetByAPIID(context.Background(), tracked.APIID)
	if err != nil || !ok {
		t.Fatalf("tracked match missing, ok=%v err=%v", ok, err)
	}
	if refreshed.Status != match.StatusLive || refreshed.Minute == nil || *refreshed.Minute != 68 {
		t.Fatalf("tracked match not refreshed: %+v", refreshed)
	}

	found, ok, err := h.matchRepo.GetByAPIID(context.Background(), discovered.APIID)
	if err != nil || !ok {
		t.Fatalf("discovered match missing, ok=%v err=%v", ok, err)
	}
	if !found.IsLive {
		t.Fatalf("discovered match not live: %+v", found)
	}
}

func TestLiveSyncService_CleanupStaleLive_DemotesByKickoff(t *testing.T) {
	t.Parallel()

	h := newFixtureSyncHarness(&stubProvider{})
	svc := newLiveSyncService(h, &stubProvider{}, LiveSyncConfig{})

	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	// The refresh loop rewrites updated_at every pass, so a feed stuck
	// echoing a live status keeps the row fresh-looking. Demotion keys
	// on kickoff: this one started four hours ago and must go down
	// even with a seconds-old update.
	stale := match.Match{
		APIID:     555,
		Status:    match.StatusLive,
		IsLive:    true,
		Minute:    intPtr(88),
		KickoffAt: now.Add(-4 * time.Hour),
		UpdatedAt: now.Add(-30 * time.Second),
	}
	fresh := match.Match{
		APIID:     666,
		Status:    match.StatusLive,
		IsLive:    true,
		Minute:    intPtr(30),
		KickoffAt: now.Add(-40 * time.Minute),
		UpdatedAt: now.Add(-10 * time.Minute),
	}
	for _, m := range []match.Match{stale, fresh} {
		if _, err := h.matchRepo.Upsert(context.Background(), m); err != nil {
			t.Fatalf("seed Upsert error: %v", err)
		}
	}

	report, err := svc.CleanupStaleLive(context.Background(), 3*time.Hour)
	if err != nil {
		t.Fatalf("CleanupStaleLive error: %v", err)
	}
	if report.Updated != 1 {
		t.Fatalf("expected 1 demoted match, got=%d", report.Updated)
	}

	demoted, ok, err := h.matchRepo.GetByAPIID(context.Background(), 555)
	if err != nil || !ok {
		t.Fatalf("stale match missing, ok=%v err=%v", ok, err)
	}
	if demoted.Status != match.StatusFinished || demoted.IsLive || demoted.Minute != nil {
		t.Fatalf("stale match not demoted: %+v", demoted)
	}

	untouched, ok, err := h.matchRepo.GetByAPIID(context.Background(), 666)
	if err != nil || !ok {
		t.Fatalf("fresh match missing, ok=%v err=%v", ok, err)
	}
	if !untouched.IsLive || untouched.Status != match.StatusLive {
		t.Fatalf("fresh match was demoted: %+v", untouched)
	}
}

func TestLiveSyncService_CleanupStaleLive_KeepsTerminalStatus(t *testing.T) {
	t.Parallel()

	h := newFixtureSyncHarness(&stubProvider{})
	svc := newLiveSyncService(h, &stubProvider{}, LiveSyncConfig{})

	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	abandoned := match.Match{
		APIID:     555,
		Status:    match.StatusAbandoned,
		IsLive:    true,
		KickoffAt: now.Add(-5 * time.Hour),
		UpdatedAt: now.Add(-5 * time.Hour),
	}
	if _, err := h.matchRepo.Upsert(context.Background(), abandoned); err != nil {
		t.Fatalf("seed Upsert error: %v", err)
	}

	if _, err := svc.CleanupStaleLive(context.Background(), 3*time.Hour); err != nil {
		t.Fatalf("CleanupStaleLive error: %v", err)
	}

	persisted, ok, err := h.matchRepo.GetByAPIID(context.Background(), 555)
	if err != nil || !ok {
		t.Fatalf("match missing, ok=%v err=%v", ok, err)
	}
	if persisted.Status != match.StatusAbandoned {
		t.Fatalf("terminal status rewritten to %s", persisted.Status)
	}
	if persisted.IsLive {
		t.Fatalf("live flag not cleared: %+v", persisted)
	}
}

func TestLiveSyncService_RefreshLiveMatches_SyncsEvents(t *testing.T) {
	t.Parallel()

	live := sampleFixture()
	live.StatusCode = "1H"
	live.Minute = intPtr(24)
	live.HomeScore = intPtr(1)
	live.AwayScore = intPtr(0)

	provider := &stubProvider{
		fetchLiveFixtures: func(_ context.Context) []UpstreamFixture {
			return []UpstreamFixture{live}
		},
		fetchEvents: func(_ context.Context, apiID int64) []UpstreamEvent {
			if apiID != live.APIID {
				return nil
			}
			return []UpstreamEvent{{
				FixtureAPIID: live.APIID,
				TeamAPIID:    33,
				Minute:       23,
				Type:         "Goal",
				Detail:       "Normal Goal",
				Player:       "B. Fernandes",
			}}
		},
	}

	h := newFixtureSyncHarness(provider)
	svc := newLiveSyncService(h, provider, LiveSyncConfig{})
	svc.now = func() time.Time { return live.KickoffAt.Add(time.Hour) }

	report, err := svc.RefreshLiveMatches(context.Background())
	if err != nil {
		t.Fatalf("RefreshLiveMatches error: %v", err)
	}
	if report.Created != 1 {
		t.Fatalf("expected 1 appended event, got=%d", report.Created)
	}

	persisted, _, err := h.matchRepo.GetByAPIID(context.Background(), live.APIID)
	if err != nil {
		t.Fatalf("GetByAPIID error: %v", err)
	}
	events, err := h.eventRepo.ListByMatch(context.Background(), persisted.ID)
	if err != nil {
		t.Fatalf("ListByMatch error: %v", err)
	}
	if len(events) != 1 || events[0].Player != "B. Fernandes" {
		t.Fatalf("unexpected event log: %+v", events)
	}
}
