package usecase

import (
	"context"
	"time"
)

// UpstreamProvider is the gateway to the external football data feed.
//
// Every fetch except FetchOddsBulk swallows transport and payload
// errors: failures are logged inside the implementation and surface
// here as empty results, so sync passes degrade to no-ops instead of
// failing outright. Odds are the exception because odds consumers must
// distinguish "no odds offered" from "feed unreachable".
type UpstreamProvider interface {
	Configured() bool

	FetchLeagues(ctx context.Context, seasonYear int) []UpstreamLeague
	FetchTeams(ctx context.Context, leagueAPIID int64, seasonYear int) []UpstreamTeam
	FetchFixtures(ctx context.Context, query FixtureQuery) []UpstreamFixture
	FetchFixtureByID(ctx context.Context, fixtureAPIID int64) (UpstreamFixture, bool)
	FetchLiveFixtures(ctx context.Context) []UpstreamFixture
	FetchEvents(ctx context.Context, fixtureAPIID int64) []UpstreamEvent
	FetchHeadToHead(ctx context.Context, teamAPIID, otherTeamAPIID int64) []UpstreamFixture
	FetchStandings(ctx context.Context, leagueAPIID int64, seasonYear int) []UpstreamStandingRow
	FetchLineups(ctx context.Context, fixtureAPIID int64) []UpstreamLineup
	FetchInjuries(ctx context.Context, leagueAPIID int64, seasonYear int) []UpstreamInjury

	FetchOddsBulk(ctx context.Context, fixtureAPIIDs []int64) ([]UpstreamOdds, error)
}

// FixtureQuery narrows a fixture listing. Zero-valued fields are
// omitted from the upstream request.
type FixtureQuery struct {
	Date        *time.Time
	LeagueAPIID int64
	SeasonYear  int
	Live        bool
}

type UpstreamLeague struct {
	APIID   int64
	Name    string
	Country string
	LogoURL string
	Seasons []UpstreamSeason
}

type UpstreamSeason struct {
	Year      int
	StartDate *time.Time
	EndDate   *time.Time
	IsCurrent bool
}

type UpstreamTeam struct {
	APIID   int64
	Name    string
	Code    string
	Country string
	LogoURL string
	Venue   string
	Founded *int
}

type UpstreamFixture struct {
	APIID         int64
	LeagueAPIID   int64
	LeagueName    string
	LeagueCountry string
	SeasonYear    int
	Round         string

	HomeTeamAPIID int64
	HomeTeamName  string
	AwayTeamAPIID int64
	AwayTeamName  string

	KickoffAt  time.Time
	StatusCode string
	Minute     *int
	Referee    string
	Venue      string

	HomeScore     *int
	AwayScore     *int
	HalftimeHome  *int
	HalftimeAway  *int
	ExtratimeHome *int
	ExtratimeAway *int
	PenaltyHome   *int
	PenaltyAway   *int
}

type UpstreamEvent struct {
	FixtureAPIID int64
	TeamAPIID    int64
	Minute       int
	ExtraMinute  *int
	Type         string
	Detail       string
	Player       string
	Assist       string
	Comments     string
}

type UpstreamStandingRow struct {
	LeagueAPIID  int64
	TeamAPIID    int64
	TeamName     string
	Position     int
	Played       int
	Won          int
	Draw         int
	Lost         int
	GoalsFor     int
	GoalsAgainst int
	Points       int
	Form         string
}

type UpstreamLineup struct {
	FixtureAPIID int64
	TeamAPIID    int64
	TeamName     string
	Formation    string
	Coach        string
	StartXI      []UpstreamLineupPlayer
	Substitutes  []UpstreamLineupPlayer
}

type UpstreamLineupPlayer struct {
	APIID    int64
	Name     string
	Number   int
	Position string
}

type UpstreamInjury struct {
	LeagueAPIID  int64
	FixtureAPIID int64
	TeamAPIID    int64
	PlayerName   string
	Type         string
	Reason       string
	Date         *time.Time
}

type UpstreamOdds struct {
	FixtureAPIID int64
	Bookmaker    string
	HomeWin      float64
	Draw         float64
	AwayWin      float64
}
