package apifootball

import "encoding/json"

// apiEnvelope is the fixed wrapper around every provider response.
// Errors is declared loose because the provider emits an empty array
// when there are none and an object keyed by error kind when there are.
type apiEnvelope struct {
	Get      string          `json:"get"`
	Errors   any             `json:"errors"`
	Results  int             `json:"results"`
	Paging   apiPaging       `json:"paging"`
	Response json.RawMessage `json:"response"`
}

type apiPaging struct {
	Current int `json:"current"`
	Total   int `json:"total"`
}

type leagueItem struct {
	League  leagueInfo   `json:"league"`
	Country countryInfo  `json:"country"`
	Seasons []seasonInfo `json:"seasons"`
}

type leagueInfo struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
	Logo string `json:"logo"`
}

type countryInfo struct {
	Name string `json:"name"`
	Code string `json:"code"`
	Flag string `json:"flag"`
}

type seasonInfo struct {
	Year    int    `json:"year"`
	Start   string `json:"start"`
	End     string `json:"end"`
	Current bool   `json:"current"`
}

type teamItem struct {
	Team  teamInfo  `json:"team"`
	Venue venueInfo `json:"venue"`
}

type teamInfo struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Code    string `json:"code"`
	Country string `json:"country"`
	Founded *int   `json:"founded"`
	Logo    string `json:"logo"`
}

type venueInfo struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	City string `json:"city"`
}

type fixtureItem struct {
	Fixture fixtureInfo       `json:"fixture"`
	League  fixtureLeagueInfo `json:"league"`
	Teams   fixtureTeams      `json:"teams"`
	Goals   scorePair         `json:"goals"`
	Score   fixtureScore      `json:"score"`
}

type fixtureInfo struct {
	ID       int64         `json:"id"`
	Referee  string        `json:"referee"`
	Timezone string        `json:"timezone"`
	Date     string        `json:"date"`
	Venue    venueInfo     `json:"venue"`
	Status   fixtureStatus `json:"status"`
}

type fixtureStatus struct {
	Long    string `json:"long"`
	Short   string `json:"short"`
	Elapsed *int   `json:"elapsed"`
}

type fixtureLeagueInfo struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country"`
	Logo    string `json:"logo"`
	Season  int    `json:"season"`
	Round   string `json:"round"`
}

type fixtureTeams struct {
	Home fixtureTeamRef `json:"home"`
	Away fixtureTeamRef `json:"away"`
}

type fixtureTeamRef struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Winner *bool  `json:"winner"`
}

type scorePair struct {
	Home *int `json:"home"`
	Away *int `json:"away"`
}

type fixtureScore struct {
	Halftime  scorePair `json:"halftime"`
	Fulltime  scorePair `json:"fulltime"`
	Extratime scorePair `json:"extratime"`
	Penalty   scorePair `json:"penalty"`
}

type eventItem struct {
	Time     eventTime      `json:"time"`
	Team     fixtureTeamRef `json:"team"`
	Player   personRef      `json:"player"`
	Assist   personRef      `json:"assist"`
	Type     string         `json:"type"`
	Detail   string         `json:"detail"`
	Comments string         `json:"comments"`
}

type eventTime struct {
	Elapsed int  `json:"elapsed"`
	Extra   *int `json:"extra"`
}

type personRef struct {
	ID   *int64 `json:"id"`
	Name string `json:"name"`
}

type standingsItem struct {
	League standingsLeague `json:"league"`
}

type standingsLeague struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Standings [][]standingRow `json:"standings"`
}

type standingRow struct {
	Rank      int            `json:"rank"`
	Team      fixtureTeamRef `json:"team"`
	Points    int            `json:"points"`
	GoalsDiff int            `json:"goalsDiff"`
	Form      string         `json:"form"`
	All       standingStats  `json:"all"`
}

type standingStats struct {
	Played int           `json:"played"`
	Win    int           `json:"win"`
	Draw   int           `json:"draw"`
	Lose   int           `json:"lose"`
	Goals  standingGoals `json:"goals"`
}

type standingGoals struct {
	For     int `json:"for"`
	Against int `json:"against"`
}

type lineupItem struct {
	Team        fixtureTeamRef `json:"team"`
	Formation   string         `json:"formation"`
	Coach       personRef      `json:"coach"`
	StartXI     []lineupSlot   `json:"startXI"`
	Substitutes []lineupSlot   `json:"substitutes"`
}

type lineupSlot struct {
	Player lineupPlayer `json:"player"`
}

type lineupPlayer struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Number int    `json:"number"`
	Pos    string `json:"pos"`
}

type injuryItem struct {
	Player  injuryPlayer      `json:"player"`
	Team    fixtureTeamRef    `json:"team"`
	Fixture injuryFixtureRef  `json:"fixture"`
	League  fixtureLeagueInfo `json:"league"`
}

type injuryPlayer struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Type   string `json:"type"`
	Reason string `json:"reason"`
}

type injuryFixtureRef struct {
	ID   int64  `json:"id"`
	Date string `json:"date"`
}

type oddsItem struct {
	Fixture    injuryFixtureRef `json:"fixture"`
	Bookmakers []bookmakerItem  `json:"bookmakers"`
}

type bookmakerItem struct {
	ID   int64     `json:"id"`
	Name string    `json:"name"`
	Bets []betItem `json:"bets"`
}

type betItem struct {
	ID     int64      `json:"id"`
	Name   string     `json:"name"`
	Values []betValue `json:"values"`
}

type betValue struct {
	Value string `json:"value"`
	Odd   string `json:"odd"`
}
