package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/scorefeed/scorefeed/internal/domain/league"
	"github.com/scorefeed/scorefeed/internal/infrastructure/repository/memory"
	"github.com/scorefeed/scorefeed/internal/platform/logging"
)

func newReferenceSyncService(provider UpstreamProvider, leagueRepo *memory.LeagueRepository, cfg ReferenceSyncConfig) *ReferenceSyncService {
	if leagueRepo == nil {
		leagueRepo = memory.NewLeagueRepository(nil)
	}
	svc := NewReferenceSyncService(
		provider,
		memory.NewSportRepository(nil),
		leagueRepo,
		memory.NewSeasonRepository(nil),
		memory.NewTeamRepository(nil),
		cfg,
		logging.NewNop(),
	)
	return svc
}

func TestReferenceSyncService_SyncLeagues_PausesBetweenBatches(t *testing.T) {
	t.Parallel()

	items := make([]UpstreamLeague, 0, 120)
	for i := 0; i < 120; i++ {
		items = append(items, UpstreamLeague{
			APIID: int64(i + 1),
			Name:  fmt.Sprintf("League %d", i+1),
		})
	}
	provider := &stubProvider{
		fetchLeagues: func(_ context.Context, _ int) []UpstreamLeague {
			return items
		},
	}

	svc := newReferenceSyncService(provider, nil, ReferenceSyncConfig{SeasonYear: 2026})

	pauses := 0
	svc.pause = func(_ context.Context, d time.Duration) error {
		if d != defaultReferenceBatchPause {
			t.Fatalf("unexpected pause duration: %s", d)
		}
		pauses++
		return nil
	}

	report, err := svc.SyncLeagues(context.Background())
	if err != nil {
		t.Fatalf("SyncLeagues error: %v", err)
	}
	if report.Created != 120 {
		t.Fatalf("expected 120 created leagues, got=%d", report.Created)
	}
	// 120 records in batches of 50 is three batches with two gaps.
	if pauses != 2 {
		t.Fatalf("expected 2 inter-batch pauses, got=%d", pauses)
	}
}

func TestReferenceSyncService_SyncLeagues_PreservesLocalFields(t *testing.T) {
	t.Parallel()

	leagueRepo := memory.NewLeagueRepository([]league.League{{
		ID:        7,
		APIID:     39,
		Name:      "Premier League",
		Slug:      "epl",
		SortOrder: 3,
		IsActive:  true,
	}})
	provider := &stubProvider{
		fetchLeagues: func(_ context.Context, _ int) []UpstreamLeague {
			return []UpstreamLeague{{
				APIID:   39,
				Name:    "Premier League",
				Country: "England",
				LogoURL: "https://media.example/39.png",
			}}
		},
	}

	svc := newReferenceSyncService(provider, leagueRepo, ReferenceSyncConfig{SeasonYear: 2026})

	report, err := svc.SyncLeagues(context.Background())
	if err != nil {
		t.Fatalf("SyncLeagues error: %v", err)
	}
	if report.Updated != 1 || report.Created != 0 {
		t.Fatalf("expected 1 updated, got created=%d updated=%d", report.Created, report.Updated)
	}

	persisted, ok, err := leagueRepo.GetByAPIID(context.Background(), 39)
	if err != nil || !ok {
		t.Fatalf("league missing after sync, ok=%v err=%v", ok, err)
	}
	if persisted.Slug != "epl" || persisted.SortOrder != 3 {
		t.Fatalf("locally owned fields were overwritten: %+v", persisted)
	}
	if persisted.Country != "England" || persisted.LogoURL == "" {
		t.Fatalf("upstream fields not refreshed: %+v", persisted)
	}
}

func TestReferenceSyncService_SyncLeagues_SkipsIncompleteRecords(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{
		fetchLeagues: func(_ context.Context, _ int) []UpstreamLeague {
			return []UpstreamLeague{
				{APIID: 39, Name: "Premier League"},
				{APIID: 0, Name: "Ghost League"},
				{APIID: 140, Name: ""},
				{APIID: 140, Name: "La Liga"},
			}
		},
	}

	svc := newReferenceSyncService(provider, nil, ReferenceSyncConfig{SeasonYear: 2026})

	report, err := svc.SyncLeagues(context.Background())
	if err != nil {
		t.Fatalf("SyncLeagues error: %v", err)
	}
	if report.Created != 2 {
		t.Fatalf("expected 2 created, got=%d", report.Created)
	}
	if report.Skipped != 2 {
		t.Fatalf("expected 2 skipped, got=%d", report.Skipped)
	}
}

func TestReferenceSyncService_SyncTeams_ToleratesBadRecords(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{
		fetchTeams: func(_ context.Context, _ int64, _ int) []UpstreamTeam {
			return []UpstreamTeam{
				{APIID: 33, Name: "Manchester United"},
				{APIID: 0, Name: "Nameless FC"},
				{APIID: 40, Name: "Liverpool"},
			}
		},
	}

	leagueRepo := memory.NewLeagueRepository([]league.League{{
		ID:       7,
		APIID:    39,
		Name:     "Premier League",
		Slug:     "premier-league",
		IsActive: true,
	}})
	teamRepo := memory.NewTeamRepository(nil)
	svc := NewReferenceSyncService(
		provider,
		memory.NewSportRepository(nil),
		leagueRepo,
		memory.NewSeasonRepository(nil),
		teamRepo,
		ReferenceSyncConfig{SeasonYear: 2026},
		logging.NewNop(),
	)

	report, err := svc.SyncTeams(context.Background(), 39, 2026)
	if err != nil {
		t.Fatalf("SyncTeams error: %v", err)
	}
	if report.Created != 2 || report.Errors != 1 {
		t.Fatalf("expected 2 created 1 error, got created=%d errors=%d", report.Created, report.Errors)
	}

	// New teams record the league they were synced under.
	for _, apiID := range []int64{33, 40} {
		persisted, ok, err := teamRepo.GetByAPIID(context.Background(), apiID)
		if err != nil || !ok {
			t.Fatalf("team api_id=%d missing, ok=%v err=%v", apiID, ok, err)
		}
		if persisted.LeagueID != 7 {
			t.Fatalf("team api_id=%d missing league context: %+v", apiID, persisted)
		}
	}
}

func TestReferenceSyncService_SyncTeams_RequiresSyncedLeague(t *testing.T) {
	t.Parallel()

	svc := newReferenceSyncService(&stubProvider{}, nil, ReferenceSyncConfig{SeasonYear: 2026})

	if _, err := svc.SyncTeams(context.Background(), 39, 2026); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for an unknown league, got=%v", err)
	}
}

func TestReferenceSyncService_SyncTeams_KeepsCreationLeague(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{
		fetchTeams: func(_ context.Context, _ int64, _ int) []UpstreamTeam {
			return []UpstreamTeam{{APIID: 33, Name: "Manchester United"}}
		},
	}

	leagueRepo := memory.NewLeagueRepository([]league.League{
		{ID: 7, APIID: 39, Name: "Premier League", Slug: "premier-league", IsActive: true},
		{ID: 8, APIID: 2, Name: "Champions League", Slug: "champions-league", IsActive: true},
	})
	teamRepo := memory.NewTeamRepository(nil)
	svc := NewReferenceSyncService(
		provider,
		memory.NewSportRepository(nil),
		leagueRepo,
		memory.NewSeasonRepository(nil),
		teamRepo,
		ReferenceSyncConfig{SeasonYear: 2026},
		logging.NewNop(),
	)

	if _, err := svc.SyncTeams(context.Background(), 39, 2026); err != nil {
		t.Fatalf("SyncTeams error: %v", err)
	}
	// The club shows up again in a cup competition; its home league
	// must survive the second pass.
	if _, err := svc.SyncTeams(context.Background(), 2, 2026); err != nil {
		t.Fatalf("SyncTeams error: %v", err)
	}

	persisted, ok, err := teamRepo.GetByAPIID(context.Background(), 33)
	if err != nil || !ok {
		t.Fatalf("team missing, ok=%v err=%v", ok, err)
	}
	if persisted.LeagueID != 7 {
		t.Fatalf("creation league overwritten: %+v", persisted)
	}
}

func TestReferenceSyncService_SeedSports_SetsUpstreamID(t *testing.T) {
	t.Parallel()

	svc := newReferenceSyncService(&stubProvider{}, nil, ReferenceSyncConfig{})

	seeded, err := svc.SeedSports(context.Background())
	if err != nil {
		t.Fatalf("SeedSports error: %v", err)
	}
	if seeded.APIID != defaultSportAPIID || seeded.Slug != "football" {
		t.Fatalf("unexpected seeded sport: %+v", seeded)
	}

	again, err := svc.SeedSports(context.Background())
	if err != nil {
		t.Fatalf("SeedSports error: %v", err)
	}
	if again.ID != seeded.ID {
		t.Fatalf("seed is not idempotent: first=%+v second=%+v", seeded, again)
	}
}

func TestReferenceSyncService_TargetSeasonYear(t *testing.T) {
	t.Parallel()

	svc := newReferenceSyncService(&stubProvider{}, nil, ReferenceSyncConfig{})

	cases := []struct {
		now  time.Time
		want int
	}{
		{time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC), 2026},
		{time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC), 2026},
		{time.Date(2026, 6, 30, 23, 0, 0, 0, time.UTC), 2025},
		{time.Date(2027, 2, 1, 0, 0, 0, 0, time.UTC), 2026},
	}
	for _, tc := range cases {
		svc.now = func() time.Time { return tc.now }
		if got := svc.targetSeasonYear(); got != tc.want {
			t.Fatalf("targetSeasonYear at %s: expected %d, got=%d", tc.now, tc.want, got)
		}
	}

	svc.cfg.SeasonYear = 2024
	if got := svc.targetSeasonYear(); got != 2024 {
		t.Fatalf("pinned season year ignored, got=%d", got)
	}
}
