package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/scorefeed/scorefeed/internal/domain/league"
	"github.com/scorefeed/scorefeed/internal/domain/match"
	"github.com/scorefeed/scorefeed/internal/domain/team"
	"github.com/scorefeed/scorefeed/internal/platform/logging"
	"github.com/scorefeed/scorefeed/internal/usecase"
)

type Handler struct {
	queryService    *usecase.MatchQueryService
	referenceSync   *usecase.ReferenceSyncService
	fixtureSync     *usecase.FixtureSyncService
	liveSync        *usecase.LiveSyncService
	backfillService *usecase.BackfillService
	staleThreshold  time.Duration
	logger          *logging.Logger
	validator       *validator.Validate
}

func NewHandler(
	queryService *usecase.MatchQueryService,
	referenceSync *usecase.ReferenceSyncService,
	fixtureSync *usecase.FixtureSyncService,
	liveSync *usecase.LiveSyncService,
	backfillService *usecase.BackfillService,
	staleThreshold time.Duration,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		queryService:    queryService,
		referenceSync:   referenceSync,
		fixtureSync:     fixtureSync,
		liveSync:        liveSync,
		backfillService: backfillService,
		staleThreshold:  staleThreshold,
		logger:          logger,
		validator:       validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatches")
	defer span.End()

	filter, err := parseMatchFilter(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, total, err := h.queryService.FindMatches(ctx, filter)
	if err != nil {
		h.logger.WarnContext(ctx, "list matches failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]matchDTO, 0, len(items))
	for _, item := range items {
		out = append(out, matchToDTO(item))
	}

	writeSuccess(ctx, w, http.StatusOK, matchListDTO{Total: total, Items: out})
}

func (h *Handler) ListLiveMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLiveMatches")
	defer span.End()

	items, err := h.queryService.ListLive(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list live matches failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]matchDTO, 0, len(items))
	for _, item := range items {
		out = append(out, matchToDTO(item))
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatch")
	defer span.End()

	matchID, err := parsePathID(r, "matchID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	details, err := h.queryService.GetMatchDetails(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "get match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	events := make([]matchEventDTO, 0, len(details.Events))
	for _, event := range details.Events {
		events = append(events, eventToDTO(event))
	}

	writeSuccess(ctx, w, http.StatusOK, matchDetailsDTO{
		Match:  matchToDTO(details.Match),
		Events: events,
	})
}

func (h *Handler) GetMatchOdds(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatchOdds")
	defer span.End()

	matchID, err := parsePathID(r, "matchID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	odds, err := h.queryService.MatchOdds(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "get match odds failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]oddsDTO, 0, len(odds))
	for _, item := range odds {
		out = append(out, oddsDTO{
			Bookmaker: item.Bookmaker,
			HomeWin:   item.HomeWin,
			Draw:      item.Draw,
			AwayWin:   item.AwayWin,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetMatchLineups(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatchLineups")
	defer span.End()

	matchID, err := parsePathID(r, "matchID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	lineups, err := h.queryService.MatchLineups(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "get match lineups failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]lineupDTO, 0, len(lineups))
	for _, item := range lineups {
		out = append(out, lineupToDTO(item))
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) ListLeagues(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLeagues")
	defer span.End()

	activeOnly := strings.EqualFold(strings.TrimSpace(r.URL.Query().Get("active")), "true")
	leagues, err := h.queryService.ListLeagues(ctx, activeOnly)
	if err != nil {
		h.logger.WarnContext(ctx, "list leagues failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]leagueDTO, 0, len(leagues))
	for _, item := range leagues {
		out = append(out, leagueToDTO(item))
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetLeagueStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeagueStandings")
	defer span.End()

	leagueID, err := parsePathID(r, "leagueID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	seasonYear, err := parseOptionalIntQuery(r, "season")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	rows, err := h.queryService.LeagueStandings(ctx, leagueID, seasonYear)
	if err != nil {
		h.logger.WarnContext(ctx, "get league standings failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]standingRowDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, standingRowDTO{
			Position:     row.Position,
			TeamName:     row.TeamName,
			Played:       row.Played,
			Won:          row.Won,
			Draw:         row.Draw,
			Lost:         row.Lost,
			GoalsFor:     row.GoalsFor,
			GoalsAgainst: row.GoalsAgainst,
			Points:       row.Points,
			Form:         row.Form,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetLeagueInjuries(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeagueInjuries")
	defer span.End()

	leagueID, err := parsePathID(r, "leagueID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	seasonYear, err := parseOptionalIntQuery(r, "season")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	injuries, err := h.queryService.LeagueInjuries(ctx, leagueID, seasonYear)
	if err != nil {
		h.logger.WarnContext(ctx, "get league injuries failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]injuryDTO, 0, len(injuries))
	for _, item := range injuries {
		out = append(out, injuryDTO{
			PlayerName: item.PlayerName,
			Type:       item.Type,
			Reason:     item.Reason,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeam")
	defer span.End()

	teamID, err := parsePathID(r, "teamID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.queryService.GetTeam(ctx, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "get team failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamToDTO(item))
}

func (h *Handler) GetHeadToHead(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetHeadToHead")
	defer span.End()

	teamID, err := parsePathID(r, "teamID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	otherTeamID, err := parsePathID(r, "otherTeamID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	fixtures, err := h.queryService.HeadToHead(ctx, teamID, otherTeamID)
	if err != nil {
		h.logger.WarnContext(ctx, "head to head failed", "team_id", teamID, "other_team_id", otherTeamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]headToHeadDTO, 0, len(fixtures))
	for _, item := range fixtures {
		out = append(out, headToHeadDTO{
			APIID:      item.APIID,
			HomeTeam:   item.HomeTeamName,
			AwayTeam:   item.AwayTeamName,
			KickoffAt:  item.KickoffAt.UTC().Format(time.RFC3339),
			StatusCode: item.StatusCode,
			HomeScore:  item.HomeScore,
			AwayScore:  item.AwayScore,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func parsePathID(r *http.Request, name string) (int64, error) {
	raw := strings.TrimSpace(r.PathValue(name))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", usecase.ErrInvalidInput, name)
	}

	return id, nil
}

func parseOptionalIntQuery(r *http.Request, name string) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", usecase.ErrInvalidInput, name)
	}

	return value, nil
}

func parseOptionalInt64Query(r *http.Request, name string) (int64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, nil
	}

	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", usecase.ErrInvalidInput, name)
	}

	return value, nil
}

func parseOptionalDateQuery(r *http.Request, name string) (*time.Time, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, nil
	}

	value, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be formatted as YYYY-MM-DD", usecase.ErrInvalidInput, name)
	}

	return &value, nil
}

func parseMatchFilter(r *http.Request) (match.Filter, error) {
	dateFrom, err := parseOptionalDateQuery(r, "date_from")
	if err != nil {
		return match.Filter{}, err
	}
	dateTo, err := parseOptionalDateQuery(r, "date_to")
	if err != nil {
		return match.Filter{}, err
	}
	leagueID, err := parseOptionalInt64Query(r, "league_id")
	if err != nil {
		return match.Filter{}, err
	}
	seasonID, err := parseOptionalInt64Query(r, "season_id")
	if err != nil {
		return match.Filter{}, err
	}
	teamID, err := parseOptionalInt64Query(r, "team_id")
	if err != nil {
		return match.Filter{}, err
	}
	limit, err := parseOptionalIntQuery(r, "limit")
	if err != nil {
		return match.Filter{}, err
	}
	offset, err := parseOptionalIntQuery(r, "offset")
	if err != nil {
		return match.Filter{}, err
	}

	return match.Filter{
		DateFrom: dateFrom,
		DateTo:   dateTo,
		LeagueID: leagueID,
		SeasonID: seasonID,
		TeamID:   teamID,
		Status:   strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("status"))),
		LiveOnly: strings.EqualFold(strings.TrimSpace(r.URL.Query().Get("live")), "true"),
		Limit:    limit,
		Offset:   offset,
	}, nil
}

type matchListDTO struct {
	Total int        `json:"total"`
	Items []matchDTO `json:"items"`
}

type matchDTO struct {
	ID           int64  `json:"id"`
	APIID        int64  `json:"apiId"`
	LeagueID     int64  `json:"leagueId"`
	SeasonID     int64  `json:"seasonId"`
	HomeTeamID   int64  `json:"homeTeamId"`
	AwayTeamID   int64  `json:"awayTeamId"`
	KickoffAt    string `json:"kickoffAt"`
	Round        string `json:"round,omitempty"`
	Venue        string `json:"venue,omitempty"`
	Referee      string `json:"referee,omitempty"`
	Status       string `json:"status"`
	IsLive       bool   `json:"isLive"`
	Minute       *int   `json:"minute,omitempty"`
	HomeScore    *int   `json:"homeScore,omitempty"`
	AwayScore    *int   `json:"awayScore,omitempty"`
	HalftimeHome *int   `json:"halftimeHome,omitempty"`
	HalftimeAway *int   `json:"halftimeAway,omitempty"`
	PenaltyHome  *int   `json:"penaltyHome,omitempty"`
	PenaltyAway  *int   `json:"penaltyAway,omitempty"`
	UpdatedAt    string `json:"updatedAt"`
}

type matchDetailsDTO struct {
	Match  matchDTO        `json:"match"`
	Events []matchEventDTO `json:"events"`
}

type matchEventDTO struct {
	ID          int64  `json:"id"`
	TeamID      int64  `json:"teamId,omitempty"`
	Minute      int    `json:"minute"`
	ExtraMinute *int   `json:"extraMinute,omitempty"`
	Type        string `json:"type"`
	Detail      string `json:"detail,omitempty"`
	Player      string `json:"player,omitempty"`
	Assist      string `json:"assist,omitempty"`
	Comments    string `json:"comments,omitempty"`
}

type leagueDTO struct {
	ID        int64  `json:"id"`
	APIID     int64  `json:"apiId"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	Country   string `json:"country,omitempty"`
	LogoURL   string `json:"logoUrl,omitempty"`
	SortOrder int    `json:"sortOrder"`
	IsActive  bool   `json:"isActive"`
}

type teamDTO struct {
	ID       int64  `json:"id"`
	APIID    int64  `json:"apiId"`
	LeagueID int64  `json:"leagueId,omitempty"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	Code     string `json:"code,omitempty"`
	Country  string `json:"country,omitempty"`
	LogoURL  string `json:"logoUrl,omitempty"`
	Founded  *int   `json:"founded,omitempty"`
	Venue    string `json:"venue,omitempty"`
}

type oddsDTO struct {
	Bookmaker string  `json:"bookmaker"`
	HomeWin   float64 `json:"homeWin"`
	Draw      float64 `json:"draw"`
	AwayWin   float64 `json:"awayWin"`
}

type lineupDTO struct {
	TeamName    string            `json:"teamName"`
	Formation   string            `json:"formation"`
	Coach       string            `json:"coach,omitempty"`
	StartXI     []lineupPlayerDTO `json:"startXI"`
	Substitutes []lineupPlayerDTO `json:"substitutes"`
}

type lineupPlayerDTO struct {
	Name     string `json:"name"`
	Number   int    `json:"number"`
	Position string `json:"position,omitempty"`
}

type standingRowDTO struct {
	Position     int    `json:"position"`
	TeamName     string `json:"teamName"`
	Played       int    `json:"played"`
	Won          int    `json:"won"`
	Draw         int    `json:"draw"`
	Lost         int    `json:"lost"`
	GoalsFor     int    `json:"goalsFor"`
	GoalsAgainst int    `json:"goalsAgainst"`
	Points       int    `json:"points"`
	Form         string `json:"form,omitempty"`
}

type injuryDTO struct {
	PlayerName string `json:"playerName"`
	Type       string `json:"type,omitempty"`
	Reason     string `json:"reason,omitempty"`
}

type headToHeadDTO struct {
	APIID      int64  `json:"apiId"`
	HomeTeam   string `json:"homeTeam"`
	AwayTeam   string `json:"awayTeam"`
	KickoffAt  string `json:"kickoffAt"`
	StatusCode string `json:"statusCode"`
	HomeScore  *int   `json:"homeScore,omitempty"`
	AwayScore  *int   `json:"awayScore,omitempty"`
}

func matchToDTO(v match.Match) matchDTO {
	return matchDTO{
		ID:           v.ID,
		APIID:        v.APIID,
		LeagueID:     v.LeagueID,
		SeasonID:     v.SeasonID,
		HomeTeamID:   v.HomeTeamID,
		AwayTeamID:   v.AwayTeamID,
		KickoffAt:    v.KickoffAt.UTC().Format(time.RFC3339),
		Round:        v.Round,
		Venue:        v.Venue,
		Referee:      v.Referee,
		Status:       v.Status,
		IsLive:       v.IsLive,
		Minute:       v.Minute,
		HomeScore:    v.HomeScore,
		AwayScore:    v.AwayScore,
		HalftimeHome: v.HalftimeHome,
		HalftimeAway: v.HalftimeAway,
		PenaltyHome:  v.PenaltyHome,
		PenaltyAway:  v.PenaltyAway,
		UpdatedAt:    v.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func eventToDTO(v match.Event) matchEventDTO {
	return matchEventDTO{
		ID:          v.ID,
		TeamID:      v.TeamID,
		Minute:      v.Minute,
		ExtraMinute: v.ExtraMinute,
		Type:        v.Type,
		Detail:      v.Detail,
		Player:      v.Player,
		Assist:      v.Assist,
		Comments:    v.Comments,
	}
}

func leagueToDTO(v league.League) leagueDTO {
	return leagueDTO{
		ID:        v.ID,
		APIID:     v.APIID,
		Name:      v.Name,
		Slug:      v.Slug,
		Country:   v.Country,
		LogoURL:   v.LogoURL,
		SortOrder: v.SortOrder,
		IsActive:  v.IsActive,
	}
}

func teamToDTO(v team.Team) teamDTO {
	return teamDTO{
		ID:       v.ID,
		APIID:    v.APIID,
		LeagueID: v.LeagueID,
		Name:     v.Name,
		Slug:     v.Slug,
		Code:     v.Code,
		Country:  v.Country,
		LogoURL:  v.LogoURL,
		Founded:  v.Founded,
		Venue:    v.Venue,
	}
}

func lineupToDTO(v usecase.UpstreamLineup) lineupDTO {
	startXI := make([]lineupPlayerDTO, 0, len(v.StartXI))
	for _, p := range v.StartXI {
		startXI = append(startXI, lineupPlayerDTO{Name: p.Name, Number: p.Number, Position: p.Position})
	}
	subs := make([]lineupPlayerDTO, 0, len(v.Substitutes))
	for _, p := range v.Substitutes {
		subs = append(subs, lineupPlayerDTO{Name: p.Name, Number: p.Number, Position: p.Position})
	}

	return lineupDTO{
		TeamName:    v.TeamName,
		Formation:   v.Formation,
		Coach:       v.Coach,
		StartXI:     startXI,
		Substitutes: subs,
	}
}
