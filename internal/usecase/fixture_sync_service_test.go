package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/scorefeed/scorefeed/internal/domain/match"
	"github.com/scorefeed/scorefeed/internal/infrastructure/repository/memory"
	"github.com/scorefeed/scorefeed/internal/platform/logging"
)

type fixtureSyncHarness struct {
	sportRepo  *memory.SportRepository
	leagueRepo *memory.LeagueRepository
	seasonRepo *memory.SeasonRepository
	teamRepo   *memory.TeamRepository
	matchRepo  *memory.MatchRepository
	eventRepo  *memory.EventRepository
	svc        *FixtureSyncService
}

func newFixtureSyncHarness(provider UpstreamProvider) *fixtureSyncHarness {
	h := &fixtureSyncHarness{
		sportRepo:  memory.NewSportRepository(nil),
		leagueRepo: memory.NewLeagueRepository(nil),
		seasonRepo: memory.NewSeasonRepository(nil),
		teamRepo:   memory.NewTeamRepository(nil),
		matchRepo:  memory.NewMatchRepository(nil),
		eventRepo:  memory.NewEventRepository(),
	}
	h.svc = NewFixtureSyncService(
		provider,
		h.sportRepo,
		h.leagueRepo,
		h.seasonRepo,
		h.teamRepo,
		h.matchRepo,
		h.eventRepo,
		logging.NewNop(),
	)
	return h
}

func intPtr(v int) *int { return &v }

func sampleFixture() UpstreamFixture {
	return UpstreamFixture{
		APIID:         555,
		LeagueAPIID:   39,
		LeagueName:    "Premier League",
		LeagueCountry: "England",
		SeasonYear:    2026,
		Round:         "Regular Season - 4",
		HomeTeamAPIID: 33,
		HomeTeamName:  "Manchester United",
		AwayTeamAPIID: 40,
		AwayTeamName:  "Liverpool",
		KickoffAt:     time.Date(2026, 8, 30, 15, 0, 0, 0, time.UTC),
		StatusCode:    "NS",
	}
}

func TestFixtureSyncService_SyncMatch_AutoCreatesReferences(t *testing.T) {
	t.Parallel()

	h := newFixtureSyncHarness(&stubProvider{})

	persisted, err := h.svc.SyncMatch(context.Background(), sampleFixture())
	if err != nil {
		t.Fatalf("SyncMatch error: %v", err)
	}

	if persisted.Status != match.StatusScheduled {
		t.Fatalf("expected status %s, got=%s", match.StatusScheduled, persisted.Status)
	}

	lg, ok, err := h.leagueRepo.GetByAPIID(context.Background(), 39)
	if err != nil || !ok {
		t.Fatalf("expected auto-created league, ok=%v err=%v", ok, err)
	}
	if lg.Name != "Premier League" {
		t.Fatalf("unexpected league name: %s", lg.Name)
	}

	ssn, ok, err := h.seasonRepo.GetByLeagueYear(context.Background(), lg.ID, 2026)
	if err != nil || !ok {
		t.Fatalf("expected auto-created season, ok=%v err=%v", ok, err)
	}
	wantStart := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	wantEnd := time.Date(2027, 6, 30, 0, 0, 0, 0, time.UTC)
	if !ssn.StartDate.Equal(wantStart) || !ssn.EndDate.Equal(wantEnd) {
		t.Fatalf("unexpected season window: %s..%s", ssn.StartDate, ssn.EndDate)
	}

	for _, teamAPIID := range []int64{33, 40} {
		tm, ok, err := h.teamRepo.GetByAPIID(context.Background(), teamAPIID)
		if err != nil || !ok {
			t.Fatalf("expected auto-created team api_id=%d, ok=%v err=%v", teamAPIID, ok, err)
		}
		if tm.LeagueID != lg.ID {
			t.Fatalf("auto-created team api_id=%d missing league context: %+v", teamAPIID, tm)
		}
	}

	if persisted.LeagueID != lg.ID || persisted.SeasonID != ssn.ID {
		t.Fatalf("match not linked to auto-created rows: %+v", persisted)
	}
}

func TestFixtureSyncService_SyncMatch_Idempotent(t *testing.T) {
	t.Parallel()

	h := newFixtureSyncHarness(&stubProvider{})

	first, err := h.svc.SyncMatch(context.Background(), sampleFixture())
	if err != nil {
		t.Fatalf("first SyncMatch error: %v", err)
	}
	second, err := h.svc.SyncMatch(context.Background(), sampleFixture())
	if err != nil {
		t.Fatalf("second SyncMatch error: %v", err)
	}

	if first.ID != second.ID {
		t.Fatalf("replay created a new row: first=%d second=%d", first.ID, second.ID)
	}

	items, total, err := h.matchRepo.Find(context.Background(), match.Filter{})
	if err != nil {
		t.Fatalf("Find error: %v", err)
	}
	if total != 1 || len(items) != 1 {
		t.Fatalf("expected exactly 1 match row, got total=%d len=%d", total, len(items))
	}
}

func TestFixtureSyncService_SyncMatch_LiveToFinalTransition(t *testing.T) {
	t.Parallel()

	h := newFixtureSyncHarness(&stubProvider{})

	live := sampleFixture()
	live.StatusCode = "1H"
	live.Minute = intPtr(23)
	live.HomeScore = intPtr(1)
	live.AwayScore = intPtr(0)

	first, err := h.svc.SyncMatch(context.Background(), live)
	if err != nil {
		t.Fatalf("live SyncMatch error: %v", err)
	}
	if first.Status != match.StatusLive || !first.IsLive {
		t.Fatalf("expected live match, got status=%s is_live=%v", first.Status, first.IsLive)
	}
	if first.HomeScore == nil || *first.HomeScore != 1 {
		t.Fatalf("unexpected live home score: %v", first.HomeScore)
	}

	final := sampleFixture()
	final.StatusCode = "FT"
	final.HomeScore = intPtr(2)
	final.AwayScore = intPtr(1)

	second, err := h.svc.SyncMatch(context.Background(), final)
	if err != nil {
		t.Fatalf("final SyncMatch error: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("final payload created a new row: first=%d second=%d", first.ID, second.ID)
	}
	if second.Status != match.StatusFinished || second.IsLive {
		t.Fatalf("expected finished match, got status=%s is_live=%v", second.Status, second.IsLive)
	}
	if second.HomeScore == nil || *second.HomeScore != 2 || second.AwayScore == nil || *second.AwayScore != 1 {
		t.Fatalf("unexpected final score: %v-%v", second.HomeScore, second.AwayScore)
	}
}

func TestFixtureSyncService_SyncMatch_RejectsIncompletePayload(t *testing.T) {
	t.Parallel()

	h := newFixtureSyncHarness(&stubProvider{})

	item := sampleFixture()
	item.AwayTeamAPIID = 0

	if _, err := h.svc.SyncMatch(context.Background(), item); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got=%v", err)
	}
}

func TestFixtureSyncService_SyncMatchEvents_Dedup(t *testing.T) {
	t.Parallel()

	h := newFixtureSyncHarness(&stubProvider{})
	if _, err := h.svc.SyncMatch(context.Background(), sampleFixture()); err != nil {
		t.Fatalf("SyncMatch error: %v", err)
	}

	goal := UpstreamEvent{
		FixtureAPIID: 555,
		TeamAPIID:    33,
		Minute:       23,
		Type:         "Goal",
		Detail:       "Normal Goal",
		Player:       "B. Fernandes",
	}
	events := []UpstreamEvent{goal, goal}

	report, err := h.svc.SyncMatchEvents(context.Background(), 555, events)
	if err != nil {
		t.Fatalf("SyncMatchEvents error: %v", err)
	}
	if report.Created != 1 || report.Skipped != 1 {
		t.Fatalf("expected 1 created 1 skipped, got created=%d skipped=%d", report.Created, report.Skipped)
	}

	// Replaying the full feed must not append anything.
	report, err = h.svc.SyncMatchEvents(context.Background(), 555, events)
	if err != nil {
		t.Fatalf("replay SyncMatchEvents error: %v", err)
	}
	if report.Created != 0 || report.Skipped != 2 {
		t.Fatalf("expected replay to skip all, got created=%d skipped=%d", report.Created, report.Skipped)
	}
}

func TestFixtureSyncService_SyncMatchEvents_UnknownMatch(t *testing.T) {
	t.Parallel()

	h := newFixtureSyncHarness(&stubProvider{})

	if _, err := h.svc.SyncMatchEvents(context.Background(), 999, nil); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got=%v", err)
	}
}

func TestFixtureSyncService_SyncMatchesForDate_PartialFailure(t *testing.T) {
	t.Parallel()

	items := make([]UpstreamFixture, 0, 10)
	for i := 0; i < 10; i++ {
		item := sampleFixture()
		item.APIID = int64(1000 + i)
		item.HomeTeamAPIID = int64(100 + i)
		item.AwayTeamAPIID = int64(200 + i)
		items = append(items, item)
	}
	// One malformed record in the middle of the day.
	items[4].HomeTeamAPIID = 0

	provider := &stubProvider{
		fetchFixtures: func(_ context.Context, _ FixtureQuery) []UpstreamFixture {
			return items
		},
	}
	h := newFixtureSyncHarness(provider)

	report, err := h.svc.SyncMatchesForDate(context.Background(), time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("SyncMatchesForDate error: %v", err)
	}
	if report.Updated != 9 || report.Errors != 1 {
		t.Fatalf("expected 9 synced 1 error, got synced=%d errors=%d", report.Updated, report.Errors)
	}

	_, total, err := h.matchRepo.Find(context.Background(), match.Filter{})
	if err != nil {
		t.Fatalf("Find error: %v", err)
	}
	if total != 9 {
		t.Fatalf("expected 9 persisted matches, got=%d", total)
	}
}
