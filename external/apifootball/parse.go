package apifootball

import (
	"strconv"
	"strings"
	"time"

	"github.com/scorefeed/scorefeed/internal/usecase"
)

func mapLeagueItem(item leagueItem) usecase.UpstreamLeague {
	seasons := make([]usecase.UpstreamSeason, 0, len(item.Seasons))
	for _, s := range item.Seasons {
		seasons = append(seasons, usecase.UpstreamSeason{
			Year:      s.Year,
			StartDate: parseAPIDate(s.Start),
			EndDate:   parseAPIDate(s.End),
			IsCurrent: s.Current,
		})
	}

	return usecase.UpstreamLeague{
		APIID:   item.League.ID,
		Name:    strings.TrimSpace(item.League.Name),
		Country: strings.TrimSpace(item.Country.Name),
		LogoURL: strings.TrimSpace(item.League.Logo),
		Seasons: seasons,
	}
}

func mapTeamItem(item teamItem) usecase.UpstreamTeam {
	return usecase.UpstreamTeam{
		APIID:   item.Team.ID,
		Name:    strings.TrimSpace(item.Team.Name),
		Code:    strings.TrimSpace(item.Team.Code),
		Country: strings.TrimSpace(item.Team.Country),
		LogoURL: strings.TrimSpace(item.Team.Logo),
		Venue:   strings.TrimSpace(item.Venue.Name),
		Founded: item.Team.Founded,
	}
}

func mapFixtureItem(item fixtureItem) usecase.UpstreamFixture {
	out := usecase.UpstreamFixture{
		APIID:         item.Fixture.ID,
		LeagueAPIID:   item.League.ID,
		LeagueName:    strings.TrimSpace(item.League.Name),
		LeagueCountry: strings.TrimSpace(item.League.Country),
		SeasonYear:    item.League.Season,
		Round:         strings.TrimSpace(item.League.Round),
		HomeTeamAPIID: item.Teams.Home.ID,
		HomeTeamName:  strings.TrimSpace(item.Teams.Home.Name),
		AwayTeamAPIID: item.Teams.Away.ID,
		AwayTeamName:  strings.TrimSpace(item.Teams.Away.Name),
		StatusCode:    strings.TrimSpace(item.Fixture.Status.Short),
		Minute:        item.Fixture.Status.Elapsed,
		Referee:       strings.TrimSpace(item.Fixture.Referee),
		Venue:         strings.TrimSpace(item.Fixture.Venue.Name),
		HomeScore:     item.Goals.Home,
		AwayScore:     item.Goals.Away,
		HalftimeHome:  item.Score.Halftime.Home,
		HalftimeAway:  item.Score.Halftime.Away,
		ExtratimeHome: item.Score.Extratime.Home,
		ExtratimeAway: item.Score.Extratime.Away,
		PenaltyHome:   item.Score.Penalty.Home,
		PenaltyAway:   item.Score.Penalty.Away,
	}
	if parsed := parseAPIDateTime(item.Fixture.Date); parsed != nil {
		out.KickoffAt = *parsed
	}
	return out
}

func mapEventItem(fixtureAPIID int64, item eventItem) usecase.UpstreamEvent {
	return usecase.UpstreamEvent{
		FixtureAPIID: fixtureAPIID,
		TeamAPIID:    item.Team.ID,
		Minute:       item.Time.Elapsed,
		ExtraMinute:  item.Time.Extra,
		Type:         strings.TrimSpace(item.Type),
		Detail:       strings.TrimSpace(item.Detail),
		Player:       strings.TrimSpace(item.Player.Name),
		Assist:       strings.TrimSpace(item.Assist.Name),
		Comments:     strings.TrimSpace(item.Comments),
	}
}

func mapStandingsItem(item standingsItem) []usecase.UpstreamStandingRow {
	out := make([]usecase.UpstreamStandingRow, 0, 20)
	for _, group := range item.League.Standings {
		for _, row := range group {
			if row.Team.ID <= 0 || row.Rank <= 0 {
				continue
			}
			out = append(out, usecase.UpstreamStandingRow{
				LeagueAPIID:  item.League.ID,
				TeamAPIID:    row.Team.ID,
				TeamName:     strings.TrimSpace(row.Team.Name),
				Position:     row.Rank,
				Played:       row.All.Played,
				Won:          row.All.Win,
				Draw:         row.All.Draw,
				Lost:         row.All.Lose,
				GoalsFor:     row.All.Goals.For,
				GoalsAgainst: row.All.Goals.Against,
				Points:       row.Points,
				Form:         strings.TrimSpace(row.Form),
			})
		}
	}
	return out
}

func mapLineupItem(fixtureAPIID int64, item lineupItem) usecase.UpstreamLineup {
	return usecase.UpstreamLineup{
		FixtureAPIID: fixtureAPIID,
		TeamAPIID:    item.Team.ID,
		TeamName:     strings.TrimSpace(item.Team.Name),
		Formation:    strings.TrimSpace(item.Formation),
		Coach:        strings.TrimSpace(item.Coach.Name),
		StartXI:      mapLineupSlots(item.StartXI),
		Substitutes:  mapLineupSlots(item.Substitutes),
	}
}

func mapLineupSlots(slots []lineupSlot) []usecase.UpstreamLineupPlayer {
	out := make([]usecase.UpstreamLineupPlayer, 0, len(slots))
	for _, slot := range slots {
		out = append(out, usecase.UpstreamLineupPlayer{
			APIID:    slot.Player.ID,
			Name:     strings.TrimSpace(slot.Player.Name),
			Number:   slot.Player.Number,
			Position: strings.TrimSpace(slot.Player.Pos),
		})
	}
	return out
}

func mapInjuryItem(item injuryItem) usecase.UpstreamInjury {
	return usecase.UpstreamInjury{
		LeagueAPIID:  item.League.ID,
		FixtureAPIID: item.Fixture.ID,
		TeamAPIID:    item.Team.ID,
		PlayerName:   strings.TrimSpace(item.Player.Name),
		Type:         strings.TrimSpace(item.Player.Type),
		Reason:       strings.TrimSpace(item.Player.Reason),
		Date:         parseAPIDateTime(item.Fixture.Date),
	}
}

// mapOddsItem flattens the bookmaker tree down to the first complete
// 1X2 market it finds.
func mapOddsItem(item oddsItem) (usecase.UpstreamOdds, bool) {
	for _, bookmaker := range item.Bookmakers {
		for _, bet := range bookmaker.Bets {
			if !strings.EqualFold(strings.TrimSpace(bet.Name), "Match Winner") {
				continue
			}
			out := usecase.UpstreamOdds{
				FixtureAPIID: item.Fixture.ID,
				Bookmaker:    strings.TrimSpace(bookmaker.Name),
			}
			for _, value := range bet.Values {
				odd, err := strconv.ParseFloat(strings.TrimSpace(value.Odd), 64)
				if err != nil || odd <= 0 {
					continue
				}
				switch strings.ToLower(strings.TrimSpace(value.Value)) {
				case "home", "1":
					out.HomeWin = odd
				case "draw", "x":
					out.Draw = odd
				case "away", "2":
					out.AwayWin = odd
				}
			}
			if out.HomeWin > 0 && out.Draw > 0 && out.AwayWin > 0 {
				return out, true
			}
		}
	}
	return usecase.UpstreamOdds{}, false
}

func parseAPIDateTime(raw string) *time.Time {
	value := strings.TrimSpace(raw)
	if value == "" {
		return nil
	}

	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04:05Z07:00",
		"2006-01-02 15:04:05",
	}
	for _, layout := range layouts {
		parsed, err := time.Parse(layout, value)
		if err == nil {
			v := parsed.UTC()
			return &v
		}
	}
	return parseAPIDate(value)
}

func parseAPIDate(raw string) *time.Time {
	value := strings.TrimSpace(raw)
	if value == "" {
		return nil
	}
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil
	}
	v := parsed.UTC()
	return &v
}
