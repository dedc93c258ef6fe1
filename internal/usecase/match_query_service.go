package usecase

import (
	"context"
	"fmt"

	"github.com/scorefeed/scorefeed/internal/domain/league"
	"github.com/scorefeed/scorefeed/internal/domain/match"
	"github.com/scorefeed/scorefeed/internal/domain/team"
	"github.com/scorefeed/scorefeed/internal/platform/cache"
	"github.com/scorefeed/scorefeed/internal/platform/logging"
)

const (
	defaultMatchPageSize = 50
	maxMatchPageSize     = 200
)

// MatchDetails bundles a match with its event log.
type MatchDetails struct {
	Match  match.Match
	Events []match.Event
}

// MatchQueryService is the read side. It never writes to the replica;
// anything live it cannot answer locally is proxied straight to the
// upstream feed.
type MatchQueryService struct {
	matchRepo  match.Repository
	eventRepo  match.EventRepository
	leagueRepo league.Repository
	teamRepo   team.Repository
	provider   UpstreamProvider
	cache      *cache.Store
	logger     *logging.Logger
}

func NewMatchQueryService(
	matchRepo match.Repository,
	eventRepo match.EventRepository,
	leagueRepo league.Repository,
	teamRepo team.Repository,
	provider UpstreamProvider,
	store *cache.Store,
	logger *logging.Logger,
) *MatchQueryService {
	if logger == nil {
		logger = logging.Default()
	}

	return &MatchQueryService{
		matchRepo:  matchRepo,
		eventRepo:  eventRepo,
		leagueRepo: leagueRepo,
		teamRepo:   teamRepo,
		provider:   provider,
		cache:      store,
		logger:     logger,
	}
}

func (s *MatchQueryService) FindMatches(ctx context.Context, filter match.Filter) ([]match.Match, int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchQueryService.FindMatches")
	defer span.End()

	if filter.Limit <= 0 {
		filter.Limit = defaultMatchPageSize
	}
	if filter.Limit > maxMatchPageSize {
		filter.Limit = maxMatchPageSize
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	if filter.DateFrom != nil && filter.DateTo != nil && filter.DateTo.Before(*filter.DateFrom) {
		return nil, 0, fmt.Errorf("%w: date range end precedes start", ErrInvalidInput)
	}

	items, total, err := s.matchRepo.Find(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("find matches: %w", err)
	}
	return items, total, nil
}

func (s *MatchQueryService) ListLive(ctx context.Context) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchQueryService.ListLive")
	defer span.End()

	items, err := s.matchRepo.ListLive(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("list live matches: %w", err)
	}
	return items, nil
}

func (s *MatchQueryService) GetMatchDetails(ctx context.Context, matchID int64) (MatchDetails, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchQueryService.GetMatchDetails")
	defer span.End()

	if matchID <= 0 {
		return MatchDetails{}, fmt.Errorf("%w: match id must be greater than zero", ErrInvalidInput)
	}

	item, ok, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return MatchDetails{}, fmt.Errorf("get match by id: %w", err)
	}
	if !ok {
		return MatchDetails{}, fmt.Errorf("%w: match id=%d", ErrNotFound, matchID)
	}

	events, err := s.eventRepo.ListByMatch(ctx, item.ID)
	if err != nil {
		return MatchDetails{}, fmt.Errorf("list match events: %w", err)
	}

	return MatchDetails{Match: item, Events: events}, nil
}

func (s *MatchQueryService) ListLeagues(ctx context.Context, activeOnly bool) ([]league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchQueryService.ListLeagues")
	defer span.End()

	key := "leagues:all"
	if activeOnly {
		key = "leagues:active"
	}
	loaded, err := s.cached(ctx, key, func(ctx context.Context) (any, error) {
		items, err := s.leagueRepo.List(ctx, activeOnly)
		if err != nil {
			return nil, fmt.Errorf("list leagues: %w", err)
		}
		return items, nil
	})
	if err != nil {
		return nil, err
	}

	items, ok := loaded.([]league.League)
	if !ok {
		return nil, fmt.Errorf("unexpected cached league payload type %T", loaded)
	}
	return items, nil
}

func (s *MatchQueryService) GetTeam(ctx context.Context, teamID int64) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchQueryService.GetTeam")
	defer span.End()

	if teamID <= 0 {
		return team.Team{}, fmt.Errorf("%w: team id must be greater than zero", ErrInvalidInput)
	}
	item, ok, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team by id: %w", err)
	}
	if !ok {
		return team.Team{}, fmt.Errorf("%w: team id=%d", ErrNotFound, teamID)
	}
	return item, nil
}

// HeadToHead proxies the historical meetings of two local teams from
// the upstream feed; the replica only carries seasons it was told to
// sync.
func (s *MatchQueryService) HeadToHead(ctx context.Context, teamID, otherTeamID int64) ([]UpstreamFixture, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchQueryService.HeadToHead")
	defer span.End()

	if s.provider == nil {
		return nil, fmt.Errorf("%w: upstream provider is not configured", ErrDependencyUnavailable)
	}

	first, err := s.GetTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}
	second, err := s.GetTeam(ctx, otherTeamID)
	if err != nil {
		return nil, err
	}

	return s.provider.FetchHeadToHead(ctx, first.APIID, second.APIID), nil
}

// MatchOdds is the one read that can fail on upstream trouble: odds
// errors propagate so callers can tell an empty market from an outage.
func (s *MatchQueryService) MatchOdds(ctx context.Context, matchID int64) ([]UpstreamOdds, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchQueryService.MatchOdds")
	defer span.End()

	if s.provider == nil {
		return nil, fmt.Errorf("%w: upstream provider is not configured", ErrDependencyUnavailable)
	}

	item, ok, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("get match by id: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: match id=%d", ErrNotFound, matchID)
	}

	odds, err := s.provider.FetchOddsBulk(ctx, []int64{item.APIID})
	if err != nil {
		return nil, fmt.Errorf("fetch odds match_id=%d: %w", matchID, err)
	}
	return odds, nil
}

func (s *MatchQueryService) MatchLineups(ctx context.Context, matchID int64) ([]UpstreamLineup, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchQueryService.MatchLineups")
	defer span.End()

	if s.provider == nil {
		return nil, fmt.Errorf("%w: upstream provider is not configured", ErrDependencyUnavailable)
	}

	item, ok, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("get match by id: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: match id=%d", ErrNotFound, matchID)
	}

	return s.provider.FetchLineups(ctx, item.APIID), nil
}

func (s *MatchQueryService) LeagueStandings(ctx context.Context, leagueID int64, seasonYear int) ([]UpstreamStandingRow, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchQueryService.LeagueStandings")
	defer span.End()

	if s.provider == nil {
		return nil, fmt.Errorf("%w: upstream provider is not configured", ErrDependencyUnavailable)
	}

	item, ok, err := s.leagueRepo.GetByID(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("get league by id: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: league id=%d", ErrNotFound, leagueID)
	}

	key := fmt.Sprintf("standings:%d:%d", item.APIID, seasonYear)
	loaded, err := s.cached(ctx, key, func(ctx context.Context) (any, error) {
		return s.provider.FetchStandings(ctx, item.APIID, seasonYear), nil
	})
	if err != nil {
		return nil, err
	}

	rows, ok := loaded.([]UpstreamStandingRow)
	if !ok {
		return nil, fmt.Errorf("unexpected cached standings payload type %T", loaded)
	}
	return rows, nil
}

func (s *MatchQueryService) LeagueInjuries(ctx context.Context, leagueID int64, seasonYear int) ([]UpstreamInjury, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchQueryService.LeagueInjuries")
	defer span.End()

	if s.provider == nil {
		return nil, fmt.Errorf("%w: upstream provider is not configured", ErrDependencyUnavailable)
	}

	item, ok, err := s.leagueRepo.GetByID(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("get league by id: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: league id=%d", ErrNotFound, leagueID)
	}

	return s.provider.FetchInjuries(ctx, item.APIID, seasonYear), nil
}

func (s *MatchQueryService) cached(ctx context.Context, key string, loader func(context.Context) (any, error)) (any, error) {
	if s.cache == nil {
		return loader(ctx)
	}
	return s.cache.GetOrLoad(ctx, key, loader)
}
