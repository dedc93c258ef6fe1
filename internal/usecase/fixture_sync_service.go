package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/scorefeed/scorefeed/internal/domain/league"
	"github.com/scorefeed/scorefeed/internal/domain/match"
	"github.com/scorefeed/scorefeed/internal/domain/season"
	"github.com/scorefeed/scorefeed/internal/domain/sport"
	"github.com/scorefeed/scorefeed/internal/domain/team"
	"github.com/scorefeed/scorefeed/internal/platform/logging"
	"github.com/scorefeed/scorefeed/internal/platform/slug"
)

// FixtureSyncService folds upstream fixture payloads into the local
// replica. SyncMatch is idempotent: replaying the same payload twice
// updates the same row, and any league, season, or team the payload
// references that is missing locally gets created on the spot from the
// payload's own fields.
type FixtureSyncService struct {
	provider   UpstreamProvider
	sportRepo  sport.Repository
	leagueRepo league.Repository
	seasonRepo season.Repository
	teamRepo   team.Repository
	matchRepo  match.Repository
	eventRepo  match.EventRepository
	logger     *logging.Logger

	now func() time.Time
}

func NewFixtureSyncService(
	provider UpstreamProvider,
	sportRepo sport.Repository,
	leagueRepo league.Repository,
	seasonRepo season.Repository,
	teamRepo team.Repository,
	matchRepo match.Repository,
	eventRepo match.EventRepository,
	logger *logging.Logger,
) *FixtureSyncService {
	if logger == nil {
		logger = logging.Default()
	}

	return &FixtureSyncService{
		provider:   provider,
		sportRepo:  sportRepo,
		leagueRepo: leagueRepo,
		seasonRepo: seasonRepo,
		teamRepo:   teamRepo,
		matchRepo:  matchRepo,
		eventRepo:  eventRepo,
		logger:     logger,
		now:        time.Now,
	}
}

// SyncMatch upserts one fixture keyed by its upstream id.
func (s *FixtureSyncService) SyncMatch(ctx context.Context, item UpstreamFixture) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureSyncService.SyncMatch")
	defer span.End()

	if item.APIID <= 0 {
		return match.Match{}, fmt.Errorf("%w: fixture api id is required", ErrInvalidInput)
	}
	if item.HomeTeamAPIID <= 0 || item.AwayTeamAPIID <= 0 {
		return match.Match{}, fmt.Errorf("%w: fixture api_id=%d is missing team ids", ErrInvalidInput, item.APIID)
	}

	lg, err := s.ensureLeague(ctx, item)
	if err != nil {
		return match.Match{}, err
	}
	ssn, err := s.ensureSeason(ctx, lg.ID, item.SeasonYear)
	if err != nil {
		return match.Match{}, err
	}
	home, err := s.ensureTeam(ctx, lg.ID, item.HomeTeamAPIID, item.HomeTeamName)
	if err != nil {
		return match.Match{}, err
	}
	away, err := s.ensureTeam(ctx, lg.ID, item.AwayTeamAPIID, item.AwayTeamName)
	if err != nil {
		return match.Match{}, err
	}

	status := match.MapUpstreamStatus(item.StatusCode)
	target := match.Match{
		APIID:         item.APIID,
		LeagueID:      lg.ID,
		SeasonID:      ssn.ID,
		HomeTeamID:    home.ID,
		AwayTeamID:    away.ID,
		KickoffAt:     item.KickoffAt,
		Round:         item.Round,
		Venue:         item.Venue,
		Referee:       item.Referee,
		Status:        status,
		IsLive:        match.IsLiveStatus(status),
		Minute:        item.Minute,
		HomeScore:     item.HomeScore,
		AwayScore:     item.AwayScore,
		HalftimeHome:  item.HalftimeHome,
		HalftimeAway:  item.HalftimeAway,
		ExtratimeHome: item.ExtratimeHome,
		ExtratimeAway: item.ExtratimeAway,
		PenaltyHome:   item.PenaltyHome,
		PenaltyAway:   item.PenaltyAway,
		UpdatedAt:     s.now().UTC(),
	}

	existing, ok, err := s.matchRepo.GetByAPIID(ctx, item.APIID)
	if err != nil {
		return match.Match{}, fmt.Errorf("get match by api id: %w", err)
	}
	if ok {
		target.ID = existing.ID
	}

	persisted, err := s.matchRepo.Upsert(ctx, target)
	if err != nil {
		return match.Match{}, fmt.Errorf("upsert match api_id=%d: %w", item.APIID, err)
	}
	return persisted, nil
}

// SyncMatchEvents appends new events for a synced match. Duplicate
// events (same team, minute, type, and player) are skipped, never
// updated: the event log is append-only.
func (s *FixtureSyncService) SyncMatchEvents(ctx context.Context, matchAPIID int64, items []UpstreamEvent) (SyncReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureSyncService.SyncMatchEvents")
	defer span.End()

	var report SyncReport
	if matchAPIID <= 0 {
		return report, fmt.Errorf("%w: match api id is required", ErrInvalidInput)
	}

	persisted, ok, err := s.matchRepo.GetByAPIID(ctx, matchAPIID)
	if err != nil {
		return report, fmt.Errorf("get match by api id: %w", err)
	}
	if !ok {
		return report, fmt.Errorf("%w: match api_id=%d is not synced yet", ErrNotFound, matchAPIID)
	}

	for _, item := range items {
		event := match.Event{
			MatchID:     persisted.ID,
			Minute:      item.Minute,
			ExtraMinute: item.ExtraMinute,
			Type:        item.Type,
			Detail:      item.Detail,
			Player:      item.Player,
			Assist:      item.Assist,
			Comments:    item.Comments,
		}
		if item.TeamAPIID > 0 {
			eventTeam, ok, err := s.teamRepo.GetByAPIID(ctx, item.TeamAPIID)
			if err != nil {
				report.Errors++
				s.logger.WarnContext(ctx, "event team lookup failed", "match_api_id", matchAPIID, "team_api_id", item.TeamAPIID, "error", err)
				continue
			}
			if ok {
				event.TeamID = eventTeam.ID
			}
		}
		if err := event.Validate(); err != nil {
			report.Skipped++
			continue
		}

		inserted, err := s.eventRepo.InsertUnique(ctx, event)
		if err != nil {
			report.Errors++
			s.logger.WarnContext(ctx, "event insert failed", "match_api_id", matchAPIID, "minute", item.Minute, "error", err)
			continue
		}
		if inserted {
			report.Created++
		} else {
			report.Skipped++
		}
	}

	return report, nil
}

// SyncMatchesForDate replicates every fixture the upstream lists for
// one calendar day. A failing fixture is logged and skipped.
func (s *FixtureSyncService) SyncMatchesForDate(ctx context.Context, date time.Time) (SyncReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureSyncService.SyncMatchesForDate")
	defer span.End()

	var report SyncReport
	if s.provider == nil {
		return report, fmt.Errorf("%w: upstream provider is not configured", ErrDependencyUnavailable)
	}

	day := date.UTC()
	items := s.provider.FetchFixtures(ctx, FixtureQuery{Date: &day})
	for _, item := range items {
		if _, err := s.SyncMatch(ctx, item); err != nil {
			report.Errors++
			s.logger.WarnContext(ctx, "fixture sync failed", "fixture_api_id", item.APIID, "error", err)
			continue
		}
		report.Updated++
	}

	s.logger.InfoContext(ctx, "date fixtures sync finished",
		"date", day.Format("2006-01-02"),
		"synced", report.Updated,
		"errors", report.Errors,
	)
	return report, nil
}

// SyncTodayMatches replicates the current UTC day.
func (s *FixtureSyncService) SyncTodayMatches(ctx context.Context) (SyncReport, error) {
	return s.SyncMatchesForDate(ctx, s.now().UTC())
}

func (s *FixtureSyncService) ensureLeague(ctx context.Context, item UpstreamFixture) (league.League, error) {
	if item.LeagueAPIID <= 0 {
		return league.League{}, fmt.Errorf("%w: fixture api_id=%d has no league id", ErrInvalidInput, item.APIID)
	}

	existing, ok, err := s.leagueRepo.GetByAPIID(ctx, item.LeagueAPIID)
	if err != nil {
		return league.League{}, fmt.Errorf("get league by api id: %w", err)
	}
	if ok {
		return existing, nil
	}

	name := item.LeagueName
	if name == "" {
		name = fmt.Sprintf("League %d", item.LeagueAPIID)
	}

	var sportID int64
	if s.sportRepo != nil {
		if rootSport, ok, err := s.sportRepo.GetBySlug(ctx, slug.Normalize(defaultSportName)); err == nil && ok {
			sportID = rootSport.ID
		}
	}

	created, err := s.leagueRepo.Upsert(ctx, league.League{
		SportID:  sportID,
		APIID:    item.LeagueAPIID,
		Name:     name,
		Slug:     slug.Derive(name, item.LeagueAPIID),
		Country:  item.LeagueCountry,
		IsActive: true,
	})
	if err != nil {
		return league.League{}, fmt.Errorf("auto-create league api_id=%d: %w", item.LeagueAPIID, err)
	}

	s.logger.InfoContext(ctx, "auto-created league from fixture payload", "league_api_id", item.LeagueAPIID, "name", name)
	return created, nil
}

func (s *FixtureSyncService) ensureSeason(ctx context.Context, leagueID int64, year int) (season.Season, error) {
	if year <= 0 {
		year = s.now().UTC().Year()
	}

	existing, ok, err := s.seasonRepo.GetByLeagueYear(ctx, leagueID, year)
	if err != nil {
		return season.Season{}, fmt.Errorf("get season by league and year: %w", err)
	}
	if ok {
		return existing, nil
	}

	start, end := season.SynthesizeWindow(year)
	created, err := s.seasonRepo.Upsert(ctx, season.Season{
		LeagueID:  leagueID,
		Year:      year,
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		return season.Season{}, fmt.Errorf("auto-create season year=%d: %w", year, err)
	}
	return created, nil
}

func (s *FixtureSyncService) ensureTeam(ctx context.Context, leagueID, apiID int64, name string) (team.Team, error) {
	existing, ok, err := s.teamRepo.GetByAPIID(ctx, apiID)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team by api id: %w", err)
	}
	if ok {
		return existing, nil
	}

	if name == "" {
		name = fmt.Sprintf("Team %d", apiID)
	}
	created, err := s.teamRepo.Upsert(ctx, team.Team{
		APIID:    apiID,
		LeagueID: leagueID,
		Name:     name,
		Slug:     slug.Derive(name, apiID),
	})
	if err != nil {
		return team.Team{}, fmt.Errorf("auto-create team api_id=%d: %w", apiID, err)
	}
	return created, nil
}
