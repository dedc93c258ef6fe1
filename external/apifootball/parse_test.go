package apifootball

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/scorefeed/scorefeed/internal/usecase"
)

func TestMapFixtureItem(t *testing.T) {
	t.Parallel()

	minute := 67
	home := 2
	away := 1
	htHome := 1
	htAway := 0

	item := fixtureItem{
		Fixture: fixtureInfo{
			ID:      9001,
			Referee: " A. Taylor ",
			Date:    "2026-08-30T15:00:00+00:00",
			Venue:   venueInfo{Name: "Anfield"},
			Status:  fixtureStatus{Short: "2H", Elapsed: &minute},
		},
		League: fixtureLeagueInfo{
			ID:      39,
			Name:    "Premier League",
			Country: "England",
			Season:  2026,
			Round:   "Regular Season - 3",
		},
		Teams: fixtureTeams{
			Home: fixtureTeamRef{ID: 40, Name: "Liverpool"},
			Away: fixtureTeamRef{ID: 33, Name: "Manchester United"},
		},
		Goals: scorePair{Home: &home, Away: &away},
		Score: fixtureScore{
			Halftime: scorePair{Home: &htHome, Away: &htAway},
		},
	}

	got := mapFixtureItem(item)

	require.Equal(t, int64(9001), got.APIID)
	require.Equal(t, int64(39), got.LeagueAPIID)
	require.Equal(t, "Premier League", got.LeagueName)
	require.Equal(t, 2026, got.SeasonYear)
	require.Equal(t, int64(40), got.HomeTeamAPIID)
	require.Equal(t, int64(33), got.AwayTeamAPIID)
	require.Equal(t, "2H", got.StatusCode)
	require.Equal(t, "A. Taylor", got.Referee)
	require.Equal(t, time.Date(2026, 8, 30, 15, 0, 0, 0, time.UTC), got.KickoffAt)

	require.NotNil(t, got.Minute)
	require.Equal(t, 67, *got.Minute)
	require.NotNil(t, got.HomeScore)
	require.Equal(t, 2, *got.HomeScore)
	require.NotNil(t, got.HalftimeHome)
	require.Equal(t, 1, *got.HalftimeHome)
	require.Nil(t, got.ExtratimeHome)
	require.Nil(t, got.PenaltyHome)
}

func TestMapLeagueItem(t *testing.T) {
	t.Parallel()

	item := leagueItem{
		League:  leagueInfo{ID: 39, Name: " Premier League ", Logo: "https://cdn.example/39.png"},
		Country: countryInfo{Name: "England"},
		Seasons: []seasonInfo{
			{Year: 2025, Start: "2025-08-09", End: "2026-05-24", Current: false},
			{Year: 2026, Start: "2026-08-08", End: "2027-05-23", Current: true},
		},
	}

	got := mapLeagueItem(item)

	require.Equal(t, int64(39), got.APIID)
	require.Equal(t, "Premier League", got.Name)
	require.Equal(t, "England", got.Country)
	require.Len(t, got.Seasons, 2)
	require.True(t, got.Seasons[1].IsCurrent)
	require.NotNil(t, got.Seasons[1].StartDate)
	require.Equal(t, time.Date(2026, 8, 8, 0, 0, 0, 0, time.UTC), *got.Seasons[1].StartDate)
}

func TestMapStandingsItem_SkipsInvalidRows(t *testing.T) {
	t.Parallel()

	item := standingsItem{
		League: standingsLeague{
			ID: 39,
			Standings: [][]standingRow{
				{
					{Rank: 1, Team: fixtureTeamRef{ID: 40, Name: "Liverpool"}, Points: 9, Form: "WWW", All: standingStats{Played: 3, Win: 3, Goals: standingGoals{For: 8, Against: 2}}},
					{Rank: 0, Team: fixtureTeamRef{ID: 50}},
					{Rank: 3, Team: fixtureTeamRef{ID: 0}},
				},
			},
		},
	}

	got := mapStandingsItem(item)

	require.Len(t, got, 1)
	require.Equal(t, int64(40), got[0].TeamAPIID)
	require.Equal(t, 1, got[0].Position)
	require.Equal(t, 9, got[0].Points)
	require.Equal(t, 8, got[0].GoalsFor)
}

func TestMapOddsItem(t *testing.T) {
	t.Parallel()

	item := oddsItem{
		Fixture: injuryFixtureRef{ID: 9001},
		Bookmakers: []bookmakerItem{
			{
				Name: "Bookie A",
				Bets: []betItem{
					{Name: "Over/Under", Values: []betValue{{Value: "Over 2.5", Odd: "1.80"}}},
					{Name: "Match Winner", Values: []betValue{
						{Value: "Home", Odd: "1.95"},
						{Value: "Draw", Odd: "3.40"},
					}},
				},
			},
			{
				Name: "Bookie B",
				Bets: []betItem{
					{Name: "Match Winner", Values: []betValue{
						{Value: "Home", Odd: "2.00"},
						{Value: "Draw", Odd: "3.30"},
						{Value: "Away", Odd: "3.75"},
					}},
				},
			},
		},
	}

	got, ok := mapOddsItem(item)

	// Bookie A lacks the away price, so the complete market from
	// Bookie B wins.
	require.True(t, ok)
	require.Equal(t, usecase.UpstreamOdds{
		FixtureAPIID: 9001,
		Bookmaker:    "Bookie B",
		HomeWin:      2.00,
		Draw:         3.30,
		AwayWin:      3.75,
	}, got)
}

func TestMapOddsItem_NoCompleteMarket(t *testing.T) {
	t.Parallel()

	item := oddsItem{
		Fixture: injuryFixtureRef{ID: 9001},
		Bookmakers: []bookmakerItem{
			{Name: "Bookie A", Bets: []betItem{
				{Name: "Match Winner", Values: []betValue{{Value: "Home", Odd: "not-a-number"}}},
			}},
		},
	}

	_, ok := mapOddsItem(item)
	require.False(t, ok)
}

func TestParseAPIDateTime(t *testing.T) {
	t.Parallel()

	got := parseAPIDateTime("2026-08-30T17:00:00+02:00")
	require.NotNil(t, got)
	require.Equal(t, time.Date(2026, 8, 30, 15, 0, 0, 0, time.UTC), *got)

	require.Nil(t, parseAPIDateTime(""))
	require.Nil(t, parseAPIDateTime("garbage"))

	dateOnly := parseAPIDateTime("2026-08-30")
	require.NotNil(t, dateOnly)
	require.Equal(t, time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC), *dateOnly)
}
