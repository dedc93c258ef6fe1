package match

import (
	"fmt"
	"strings"
	"time"
)

const (
	StatusScheduled = "SCHEDULED"
	StatusLive      = "LIVE"
	StatusHalftime  = "HALFTIME"
	StatusFinished  = "FINISHED"
	StatusPostponed = "POSTPONED"
	StatusCancelled = "CANCELLED"
	StatusAbandoned = "ABANDONED"
	StatusSuspended = "SUSPENDED"
)

// Match is one fixture replicated from the upstream feed, keyed by
// APIID. IsLive is maintained alongside Status so live listings never
// need to enumerate in-play statuses.
type Match struct {
	ID         int64
	APIID      int64
	LeagueID   int64
	SeasonID   int64
	HomeTeamID int64
	AwayTeamID int64
	KickoffAt  time.Time
	Round      string
	Venue      string
	Referee    string
	Status     string
	IsLive     bool
	Minute     *int

	HomeScore     *int
	AwayScore     *int
	HalftimeHome  *int
	HalftimeAway  *int
	ExtratimeHome *int
	ExtratimeAway *int
	PenaltyHome   *int
	PenaltyAway   *int

	UpdatedAt time.Time
}

func (m Match) Validate() error {
	if m.APIID <= 0 {
		return fmt.Errorf("match api id is required")
	}
	if m.LeagueID <= 0 {
		return fmt.Errorf("match league id is required")
	}
	if m.HomeTeamID <= 0 || m.AwayTeamID <= 0 {
		return fmt.Errorf("match team ids are required")
	}

	return nil
}

// MapUpstreamStatus folds the provider's short status codes into the
// local vocabulary. Unknown codes map to SCHEDULED rather than failing
// the sync; the next pass corrects the row once the code resolves.
func MapUpstreamStatus(code string) string {
	switch strings.ToUpper(strings.TrimSpace(code)) {
	case "NS":
		return StatusScheduled
	case "1H", "2H", "ET":
		return StatusLive
	case "HT":
		return StatusHalftime
	case "FT":
		return StatusFinished
	case "PST":
		return StatusPostponed
	case "CANC":
		return StatusCancelled
	case "ABD":
		return StatusAbandoned
	case "SUSP":
		return StatusSuspended
	default:
		return StatusScheduled
	}
}

// IsLiveStatus reports whether a status counts as in-play. Halftime is
// live: the match occupies a broadcast slot even while the clock stops.
func IsLiveStatus(status string) bool {
	switch status {
	case StatusLive, StatusHalftime:
		return true
	default:
		return false
	}
}

// IsTerminalStatus reports whether no further upstream change is
// expected for the match.
func IsTerminalStatus(status string) bool {
	switch status {
	case StatusFinished, StatusCancelled, StatusAbandoned:
		return true
	default:
		return false
	}
}
