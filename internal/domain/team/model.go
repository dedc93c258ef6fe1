package team

import "fmt"

// Team is a club replicated from the upstream feed, keyed by APIID.
// LeagueID is the league the team was first seen in. Clubs play in
// many competitions, so the field records creation context only and
// is never rewritten by later syncs.
type Team struct {
	ID       int64
	APIID    int64
	LeagueID int64
	Name     string
	Slug     string
	Code     string
	Country  string
	LogoURL  string
	Founded  *int
	Venue    string
}

func (t Team) Validate() error {
	if t.APIID <= 0 {
		return fmt.Errorf("team api id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}
	if t.Slug == "" {
		return fmt.Errorf("team slug is required")
	}

	return nil
}
