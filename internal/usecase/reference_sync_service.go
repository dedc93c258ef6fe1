package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/scorefeed/scorefeed/internal/domain/league"
	"github.com/scorefeed/scorefeed/internal/domain/season"
	"github.com/scorefeed/scorefeed/internal/domain/sport"
	"github.com/scorefeed/scorefeed/internal/domain/team"
	"github.com/scorefeed/scorefeed/internal/platform/logging"
	"github.com/scorefeed/scorefeed/internal/platform/slug"
)

const (
	defaultReferenceBatchSize  = 50
	defaultReferenceBatchPause = 1500 * time.Millisecond
	defaultSportName           = "Football"
	defaultSportAPIID          = 1
)

type ReferenceSyncConfig struct {
	// SeasonYear pins the reference pass to one season. Zero means
	// derive the running season from the clock.
	SeasonYear int
	BatchSize  int
	BatchPause time.Duration
}

// ReferenceSyncService replicates leagues, their seasons, and teams
// from the upstream feed. Records are processed in fixed batches with a
// pause in between so a full pass stays under the provider's rate
// ceiling; one bad record never aborts its batch.
type ReferenceSyncService struct {
	provider   UpstreamProvider
	sportRepo  sport.Repository
	leagueRepo league.Repository
	seasonRepo season.Repository
	teamRepo   team.Repository
	cfg        ReferenceSyncConfig
	logger     *logging.Logger

	now   func() time.Time
	pause func(ctx context.Context, d time.Duration) error
}

func NewReferenceSyncService(
	provider UpstreamProvider,
	sportRepo sport.Repository,
	leagueRepo league.Repository,
	seasonRepo season.Repository,
	teamRepo team.Repository,
	cfg ReferenceSyncConfig,
	logger *logging.Logger,
) *ReferenceSyncService {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = defaultReferenceBatchSize
	}
	if cfg.BatchPause <= 0 {
		cfg.BatchPause = defaultReferenceBatchPause
	}

	return &ReferenceSyncService{
		provider:   provider,
		sportRepo:  sportRepo,
		leagueRepo: leagueRepo,
		seasonRepo: seasonRepo,
		teamRepo:   teamRepo,
		cfg:        cfg,
		logger:     logger,
		now:        time.Now,
		pause:      sleepContext,
	}
}

// SeedSports makes sure the root sport row exists. Safe to call on
// every boot.
func (s *ReferenceSyncService) SeedSports(ctx context.Context) (sport.Sport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReferenceSyncService.SeedSports")
	defer span.End()

	if s.sportRepo == nil {
		return sport.Sport{}, fmt.Errorf("%w: sport repository is not configured", ErrDependencyUnavailable)
	}

	existing, ok, err := s.sportRepo.GetBySlug(ctx, slug.Normalize(defaultSportName))
	if err != nil {
		return sport.Sport{}, fmt.Errorf("get sport by slug: %w", err)
	}
	if ok {
		return existing, nil
	}

	created, err := s.sportRepo.Upsert(ctx, sport.Sport{
		APIID: defaultSportAPIID,
		Name:  defaultSportName,
		Slug:  slug.Normalize(defaultSportName),
	})
	if err != nil {
		return sport.Sport{}, fmt.Errorf("seed sport: %w", err)
	}
	return created, nil
}

// SyncLeagues pulls the league catalog for the configured season and
// upserts leagues plus their reported seasons batch by batch.
func (s *ReferenceSyncService) SyncLeagues(ctx context.Context) (SyncReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReferenceSyncService.SyncLeagues")
	defer span.End()

	var report SyncReport
	if s.provider == nil || s.leagueRepo == nil || s.seasonRepo == nil {
		return report, fmt.Errorf("%w: reference sync is not fully configured", ErrDependencyUnavailable)
	}

	rootSport, err := s.SeedSports(ctx)
	if err != nil {
		return report, err
	}

	seasonYear := s.targetSeasonYear()
	items := s.provider.FetchLeagues(ctx, seasonYear)
	if len(items) == 0 {
		s.logger.InfoContext(ctx, "league sync fetched nothing", "season_year", seasonYear)
		return report, nil
	}

	for start := 0; start < len(items); start += s.cfg.BatchSize {
		end := start + s.cfg.BatchSize
		if end > len(items) {
			end = len(items)
		}

		for _, item := range items[start:end] {
			outcome, err := s.syncLeague(ctx, rootSport.ID, item)
			if err != nil {
				report.Errors++
				s.logger.WarnContext(ctx, "league sync record failed", "league_api_id", item.APIID, "error", err)
				continue
			}
			report.Merge(outcome)
		}

		if end < len(items) {
			if err := s.pause(ctx, s.cfg.BatchPause); err != nil {
				return report, err
			}
		}
	}

	s.logger.InfoContext(ctx, "league sync finished",
		"season_year", seasonYear,
		"created", report.Created,
		"updated", report.Updated,
		"errors", report.Errors,
	)
	return report, nil
}

// SyncTeams replicates the team list of one league season.
func (s *ReferenceSyncService) SyncTeams(ctx context.Context, leagueAPIID int64, seasonYear int) (SyncReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReferenceSyncService.SyncTeams")
	defer span.End()

	var report SyncReport
	if s.provider == nil || s.teamRepo == nil || s.leagueRepo == nil {
		return report, fmt.Errorf("%w: reference sync is not fully configured", ErrDependencyUnavailable)
	}
	if leagueAPIID <= 0 {
		return report, fmt.Errorf("%w: league api id must be greater than zero", ErrInvalidInput)
	}
	if seasonYear <= 0 {
		seasonYear = s.targetSeasonYear()
	}

	lg, ok, err := s.leagueRepo.GetByAPIID(ctx, leagueAPIID)
	if err != nil {
		return report, fmt.Errorf("get league by api id: %w", err)
	}
	if !ok {
		return report, fmt.Errorf("%w: league api_id=%d is not synced yet", ErrNotFound, leagueAPIID)
	}

	items := s.provider.FetchTeams(ctx, leagueAPIID, seasonYear)
	for start := 0; start < len(items); start += s.cfg.BatchSize {
		end := start + s.cfg.BatchSize
		if end > len(items) {
			end = len(items)
		}

		for _, item := range items[start:end] {
			created, err := s.syncTeam(ctx, lg.ID, item)
			if err != nil {
				report.Errors++
				s.logger.WarnContext(ctx, "team sync record failed", "team_api_id", item.APIID, "error", err)
				continue
			}
			if created {
				report.Created++
			} else {
				report.Updated++
			}
		}

		if end < len(items) {
			if err := s.pause(ctx, s.cfg.BatchPause); err != nil {
				return report, err
			}
		}
	}

	s.logger.InfoContext(ctx, "team sync finished",
		"league_api_id", leagueAPIID,
		"season_year", seasonYear,
		"created", report.Created,
		"updated", report.Updated,
		"errors", report.Errors,
	)
	return report, nil
}

func (s *ReferenceSyncService) syncLeague(ctx context.Context, sportID int64, item UpstreamLeague) (SyncReport, error) {
	var report SyncReport
	if item.APIID <= 0 || item.Name == "" {
		report.Skipped++
		return report, nil
	}

	existing, ok, err := s.leagueRepo.GetByAPIID(ctx, item.APIID)
	if err != nil {
		return report, fmt.Errorf("get league by api id: %w", err)
	}

	target := existing
	if ok {
		// Slug, sort order, and active flag are owned locally.
		target.Name = item.Name
		target.Country = item.Country
		target.LogoURL = item.LogoURL
	} else {
		target = league.League{
			SportID:  sportID,
			APIID:    item.APIID,
			Name:     item.Name,
			Slug:     slug.Derive(item.Name, item.APIID),
			Country:  item.Country,
			LogoURL:  item.LogoURL,
			IsActive: true,
		}
	}

	persisted, err := s.leagueRepo.Upsert(ctx, target)
	if err != nil {
		return report, fmt.Errorf("upsert league api_id=%d: %w", item.APIID, err)
	}
	if ok {
		report.Updated++
	} else {
		report.Created++
	}

	for _, reported := range item.Seasons {
		if err := s.syncSeason(ctx, persisted.ID, reported); err != nil {
			report.Errors++
			s.logger.WarnContext(ctx, "season sync record failed",
				"league_api_id", item.APIID,
				"year", reported.Year,
				"error", err,
			)
		}
	}

	return report, nil
}

func (s *ReferenceSyncService) syncSeason(ctx context.Context, leagueID int64, item UpstreamSeason) error {
	if item.Year <= 0 {
		return nil
	}

	existing, ok, err := s.seasonRepo.GetByLeagueYear(ctx, leagueID, item.Year)
	if err != nil {
		return fmt.Errorf("get season by league and year: %w", err)
	}

	target := existing
	if !ok {
		target = season.Season{LeagueID: leagueID, Year: item.Year}
	}
	if item.StartDate != nil {
		target.StartDate = *item.StartDate
	}
	if item.EndDate != nil {
		target.EndDate = *item.EndDate
	}
	if target.StartDate.IsZero() || target.EndDate.IsZero() {
		target.StartDate, target.EndDate = season.SynthesizeWindow(item.Year)
	}
	target.IsCurrent = item.IsCurrent

	if _, err := s.seasonRepo.Upsert(ctx, target); err != nil {
		return fmt.Errorf("upsert season year=%d: %w", item.Year, err)
	}
	return nil
}

func (s *ReferenceSyncService) syncTeam(ctx context.Context, leagueID int64, item UpstreamTeam) (bool, error) {
	if item.APIID <= 0 || item.Name == "" {
		return false, fmt.Errorf("%w: team payload is incomplete", ErrInvalidInput)
	}

	existing, ok, err := s.teamRepo.GetByAPIID(ctx, item.APIID)
	if err != nil {
		return false, fmt.Errorf("get team by api id: %w", err)
	}

	target := existing
	if ok {
		// LeagueID keeps its creation-time value.
		target.Name = item.Name
		target.Code = item.Code
		target.Country = item.Country
		target.LogoURL = item.LogoURL
		target.Venue = item.Venue
		target.Founded = item.Founded
	} else {
		target = team.Team{
			APIID:    item.APIID,
			LeagueID: leagueID,
			Name:     item.Name,
			Slug:     slug.Derive(item.Name, item.APIID),
			Code:     item.Code,
			Country:  item.Country,
			LogoURL:  item.LogoURL,
			Venue:    item.Venue,
			Founded:  item.Founded,
		}
	}

	if _, err := s.teamRepo.Upsert(ctx, target); err != nil {
		return false, fmt.Errorf("upsert team api_id=%d: %w", item.APIID, err)
	}
	return !ok, nil
}

// targetSeasonYear resolves the season that is running right now:
// July onward belongs to the season starting that year.
func (s *ReferenceSyncService) targetSeasonYear() int {
	if s.cfg.SeasonYear > 0 {
		return s.cfg.SeasonYear
	}
	now := s.now().UTC()
	if now.Month() >= time.July {
		return now.Year()
	}
	return now.Year() - 1
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
