package apifootball

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/scorefeed/scorefeed/internal/domain/rawdata"
	"github.com/scorefeed/scorefeed/internal/platform/logging"
	"github.com/scorefeed/scorefeed/internal/platform/resilience"
	"github.com/scorefeed/scorefeed/internal/usecase"
)

const (
	defaultBaseURL   = "https://v3.football.api-sports.io"
	apiKeyHeader     = "x-apisports-key"
	maxResponseBytes = 6 << 20
	maxPages         = 10
	sourceName       = "apifootball"
)

var errAPIFootballTransient = crerr.New("apifootball transient failure")

// PayloadArchiver receives raw upstream responses for archival. The
// client never blocks a fetch on archival failures; implementations
// own their error handling.
type PayloadArchiver interface {
	ArchivePayloads(ctx context.Context, items []rawdata.Payload)
}

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	APIKey         string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
	Archiver       PayloadArchiver
}

// Client talks to the API-Football v3 feed. Every fetch except
// FetchOddsBulk swallows failures and returns empty results so callers
// degrade instead of aborting whole sync passes. An unconfigured
// client (empty API key) is a valid no-op gateway.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	apiKey         string
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
	archiver       PayloadArchiver

	unconfiguredWarn sync.Once
	now              func() time.Time
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 15 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		apiKey:         strings.TrimSpace(cfg.APIKey),
		maxRetries:     maxInt(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
		archiver:       cfg.Archiver,
		now:            time.Now,
	}
}

func (c *Client) Configured() bool {
	return c.apiKey != ""
}

func (c *Client) FetchLeagues(ctx context.Context, seasonYear int) []usecase.UpstreamLeague {
	query := map[string]string{}
	if seasonYear > 0 {
		query["season"] = strconv.Itoa(seasonYear)
	}

	items := fetchPaged[leagueItem](c, ctx, "/leagues", query)
	out := make([]usecase.UpstreamLeague, 0, len(items))
	for _, item := range items {
		if item.League.ID <= 0 {
			continue
		}
		out = append(out, mapLeagueItem(item))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].APIID < out[j].APIID })
	return out
}

func (c *Client) FetchTeams(ctx context.Context, leagueAPIID int64, seasonYear int) []usecase.UpstreamTeam {
	if leagueAPIID <= 0 || seasonYear <= 0 {
		return nil
	}
	query := map[string]string{
		"league": strconv.FormatInt(leagueAPIID, 10),
		"season": strconv.Itoa(seasonYear),
	}

	items := fetchPaged[teamItem](c, ctx, "/teams", query)
	out := make([]usecase.UpstreamTeam, 0, len(items))
	for _, item := range items {
		if item.Team.ID <= 0 {
			continue
		}
		out = append(out, mapTeamItem(item))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].APIID < out[j].APIID })
	return out
}

func (c *Client) FetchFixtures(ctx context.Context, q usecase.FixtureQuery) []usecase.UpstreamFixture {
	query := map[string]string{}
	if q.Date != nil {
		query["date"] = q.Date.UTC().Format("2006-01-02")
	}
	if q.LeagueAPIID > 0 {
		query["league"] = strconv.FormatInt(q.LeagueAPIID, 10)
	}
	if q.SeasonYear > 0 {
		query["season"] = strconv.Itoa(q.SeasonYear)
	}
	if q.Live {
		query["live"] = "all"
	}
	if len(query) == 0 {
		return nil
	}

	return c.fetchFixtureList(ctx, query)
}

func (c *Client) FetchFixtureByID(ctx context.Context, fixtureAPIID int64) (usecase.UpstreamFixture, bool) {
	if fixtureAPIID <= 0 {
		return usecase.UpstreamFixture{}, false
	}
	items := c.fetchFixtureList(ctx, map[string]string{
		"id": strconv.FormatInt(fixtureAPIID, 10),
	})
	if len(items) == 0 {
		return usecase.UpstreamFixture{}, false
	}
	return items[0], true
}

func (c *Client) FetchLiveFixtures(ctx context.Context) []usecase.UpstreamFixture {
	return c.fetchFixtureList(ctx, map[string]string{"live": "all"})
}

func (c *Client) FetchHeadToHead(ctx context.Context, teamAPIID, otherTeamAPIID int64) []usecase.UpstreamFixture {
	if teamAPIID <= 0 || otherTeamAPIID <= 0 {
		return nil
	}
	return c.fetchFixtureListAt(ctx, "/fixtures/headtohead", map[string]string{
		"h2h": fmt.Sprintf("%d-%d", teamAPIID, otherTeamAPIID),
	})
}

func (c *Client) FetchEvents(ctx context.Context, fixtureAPIID int64) []usecase.UpstreamEvent {
	if fixtureAPIID <= 0 {
		return nil
	}

	items := fetchSingle[eventItem](c, ctx, "/fixtures/events", map[string]string{
		"fixture": strconv.FormatInt(fixtureAPIID, 10),
	})
	out := make([]usecase.UpstreamEvent, 0, len(items))
	for _, item := range items {
		out = append(out, mapEventItem(fixtureAPIID, item))
	}
	return out
}

func (c *Client) FetchStandings(ctx context.Context, leagueAPIID int64, seasonYear int) []usecase.UpstreamStandingRow {
	if leagueAPIID <= 0 || seasonYear <= 0 {
		return nil
	}

	items := fetchSingle[standingsItem](c, ctx, "/standings", map[string]string{
		"league": strconv.FormatInt(leagueAPIID, 10),
		"season": strconv.Itoa(seasonYear),
	})
	out := make([]usecase.UpstreamStandingRow, 0, 20)
	for _, item := range items {
		out = append(out, mapStandingsItem(item)...)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out
}

func (c *Client) FetchLineups(ctx context.Context, fixtureAPIID int64) []usecase.UpstreamLineup {
	if fixtureAPIID <= 0 {
		return nil
	}

	items := fetchSingle[lineupItem](c, ctx, "/fixtures/lineups", map[string]string{
		"fixture": strconv.FormatInt(fixtureAPIID, 10),
	})
	out := make([]usecase.UpstreamLineup, 0, len(items))
	for _, item := range items {
		out = append(out, mapLineupItem(fixtureAPIID, item))
	}
	return out
}

func (c *Client) FetchInjuries(ctx context.Context, leagueAPIID int64, seasonYear int) []usecase.UpstreamInjury {
	if leagueAPIID <= 0 || seasonYear <= 0 {
		return nil
	}
	query := map[string]string{
		"league": strconv.FormatInt(leagueAPIID, 10),
		"season": strconv.Itoa(seasonYear),
	}

	items := fetchPaged[injuryItem](c, ctx, "/injuries", query)
	out := make([]usecase.UpstreamInjury, 0, len(items))
	for _, item := range items {
		out = append(out, mapInjuryItem(item))
	}
	return out
}

// FetchOddsBulk is the only fetch that propagates errors: odds
// consumers must be able to tell "no market" from "feed down".
func (c *Client) FetchOddsBulk(ctx context.Context, fixtureAPIIDs []int64) ([]usecase.UpstreamOdds, error) {
	if !c.Configured() {
		return nil, fmt.Errorf("%w: odds feed is not configured", usecase.ErrDependencyUnavailable)
	}
	if len(fixtureAPIIDs) == 0 {
		return nil, nil
	}

	out := make([]usecase.UpstreamOdds, 0, len(fixtureAPIIDs))
	for _, fixtureAPIID := range fixtureAPIIDs {
		if fixtureAPIID <= 0 {
			continue
		}
		env, _, err := c.doJSON(ctx, "/odds", map[string]string{
			"fixture": strconv.FormatInt(fixtureAPIID, 10),
		})
		if err != nil {
			return nil, fmt.Errorf("fetch odds fixture_api_id=%d: %w", fixtureAPIID, err)
		}
		if messages := envelopeErrors(env.Errors); len(messages) > 0 {
			return nil, fmt.Errorf("fetch odds fixture_api_id=%d: provider errors: %s", fixtureAPIID, strings.Join(messages, "; "))
		}

		var items []oddsItem
		if err := sonic.Unmarshal(env.Response, &items); err != nil {
			return nil, fmt.Errorf("decode odds fixture_api_id=%d: %w", fixtureAPIID, err)
		}
		for _, item := range items {
			if mapped, ok := mapOddsItem(item); ok {
				out = append(out, mapped)
			}
		}
	}

	return out, nil
}

func (c *Client) fetchFixtureList(ctx context.Context, query map[string]string) []usecase.UpstreamFixture {
	return c.fetchFixtureListAt(ctx, "/fixtures", query)
}

func (c *Client) fetchFixtureListAt(ctx context.Context, path string, query map[string]string) []usecase.UpstreamFixture {
	items := fetchSingle[fixtureItem](c, ctx, path, query)
	out := make([]usecase.UpstreamFixture, 0, len(items))
	for _, item := range items {
		if item.Fixture.ID <= 0 {
			continue
		}
		out = append(out, mapFixtureItem(item))
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].KickoffAt.Equal(out[j].KickoffAt) {
			return out[i].KickoffAt.Before(out[j].KickoffAt)
		}
		return out[i].APIID < out[j].APIID
	})
	return out
}

// fetchSingle runs one swallowing single-page fetch.
func fetchSingle[T any](c *Client, ctx context.Context, path string, query map[string]string) []T {
	if !c.Configured() {
		c.warnUnconfigured(ctx)
		return nil
	}

	env, _, err := c.doJSON(ctx, path, query)
	if err != nil {
		c.logger.WarnContext(ctx, "upstream fetch failed", "path", path, "error", err)
		return nil
	}
	if messages := envelopeErrors(env.Errors); len(messages) > 0 {
		c.logger.WarnContext(ctx, "upstream reported errors", "path", path, "errors", strings.Join(messages, "; "))
		return nil
	}

	var items []T
	if err := sonic.Unmarshal(env.Response, &items); err != nil {
		c.logger.WarnContext(ctx, "decode upstream payload failed", "path", path, "error", err)
		return nil
	}
	return items
}

// fetchPaged walks the provider's paging cursor until exhausted and
// returns everything collected so far even when a later page fails.
func fetchPaged[T any](c *Client, ctx context.Context, path string, query map[string]string) []T {
	if !c.Configured() {
		c.warnUnconfigured(ctx)
		return nil
	}

	out := make([]T, 0, 32)
	for page := 1; page <= maxPages; page++ {
		pageQuery := copyQuery(query)
		if page > 1 {
			pageQuery["page"] = strconv.Itoa(page)
		}

		env, _, err := c.doJSON(ctx, path, pageQuery)
		if err != nil {
			c.logger.WarnContext(ctx, "upstream fetch failed", "path", path, "page", page, "error", err)
			return out
		}
		if messages := envelopeErrors(env.Errors); len(messages) > 0 {
			c.logger.WarnContext(ctx, "upstream reported errors", "path", path, "errors", strings.Join(messages, "; "))
			return out
		}

		var items []T
		if err := sonic.Unmarshal(env.Response, &items); err != nil {
			c.logger.WarnContext(ctx, "decode upstream payload failed", "path", path, "page", page, "error", err)
			return out
		}
		out = append(out, items...)

		if env.Paging.Total <= page {
			break
		}
	}
	return out
}

func (c *Client) warnUnconfigured(ctx context.Context) {
	c.unconfiguredWarn.Do(func() {
		c.logger.WarnContext(ctx, "upstream client has no api key, operating as a no-op gateway")
	})
}

func (c *Client) doJSON(ctx context.Context, path string, query map[string]string) (apiEnvelope, []byte, error) {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "upstream circuit breaker rejected request", "state", c.breaker.State())
			return apiEnvelope{}, nil, fmt.Errorf("%w: football data feed is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	values := url.Values{}
	for key, value := range query {
		values.Set(key, value)
	}

	fullURL := c.baseURL + path
	if encoded := values.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	key := path + "?" + values.Encode()
	out, err, _ := c.flight.Do(key, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && isCircuitFailure(reqErr) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return apiEnvelope{}, nil, err
	}

	raw, ok := out.([]byte)
	if !ok {
		return apiEnvelope{}, nil, fmt.Errorf("unexpected response payload type %T", out)
	}

	var env apiEnvelope
	if err := sonic.Unmarshal(raw, &env); err != nil {
		return apiEnvelope{}, nil, fmt.Errorf("decode provider envelope: %w", err)
	}

	c.archive(ctx, key, raw)
	return env, raw, nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")
		req.Header.Set(apiKeyHeader, c.apiKey)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %s", errAPIFootballTransient, sanitizeSensitiveText(err.Error(), c.apiKey))
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
			_ = resp.Body.Close()
			if readErr != nil {
				lastErr = fmt.Errorf("%w: read response body: %v", errAPIFootballTransient, readErr)
			} else if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				return raw, nil
			} else if isRetryableStatus(resp.StatusCode) {
				lastErr = fmt.Errorf("%w: provider status=%d body=%s", errAPIFootballTransient, resp.StatusCode, abbreviateBody(raw))
			} else {
				return nil, fmt.Errorf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("provider request failed")
	}
	c.logger.WarnContext(ctx, "upstream request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func (c *Client) archive(ctx context.Context, entityKey string, raw []byte) {
	if c.archiver == nil || len(raw) == 0 {
		return
	}
	c.archiver.ArchivePayloads(ctx, []rawdata.Payload{{
		Source:      sourceName,
		EntityType:  "api_response",
		EntityKey:   entityKey,
		PayloadJSON: string(raw),
		FetchedAt:   c.now().UTC(),
	}})
}

// envelopeErrors normalizes the provider's errors field, which is an
// empty array when clean and an object keyed by error kind otherwise.
func envelopeErrors(raw any) []string {
	switch typed := raw.(type) {
	case nil:
		return nil
	case map[string]any:
		out := make([]string, 0, len(typed))
		keys := make([]string, 0, len(typed))
		for key := range typed {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			out = append(out, fmt.Sprintf("%s: %v", key, typed[key]))
		}
		return out
	case []any:
		out := make([]string, 0, len(typed))
		for _, item := range typed {
			out = append(out, fmt.Sprintf("%v", item))
		}
		return out
	case string:
		if strings.TrimSpace(typed) == "" {
			return nil
		}
		return []string{typed}
	default:
		return []string{fmt.Sprintf("%v", typed)}
	}
}

func isCircuitFailure(err error) bool {
	if err == nil {
		return false
	}
	if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
		return false
	}
	return stderrors.Is(err, errAPIFootballTransient)
}

func isRetryableStatus(code int) bool {
	if code == http.StatusTooManyRequests {
		return true
	}
	return code >= 500
}

func sanitizeSensitiveText(value, key string) string {
	value = strings.TrimSpace(value)
	if value == "" || key == "" {
		return value
	}
	return strings.ReplaceAll(value, key, "REDACTED")
}

func abbreviateBody(raw []byte) string {
	text := strings.TrimSpace(string(raw))
	if len(text) > 256 {
		return text[:256] + "..."
	}
	return text
}

func copyQuery(src map[string]string) map[string]string {
	out := make(map[string]string, len(src)+1)
	for key, value := range src {
		out[key] = value
	}
	return out
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
