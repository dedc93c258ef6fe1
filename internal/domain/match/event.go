package match

import (
	"fmt"
	"strconv"
	"strings"
)

// Event is one in-match occurrence (goal, card, substitution, VAR
// decision). Events are append-only; the upstream feed carries no event
// ids, so identity is the combination captured by DedupKey.
type Event struct {
	ID          int64
	MatchID     int64
	TeamID      int64
	Minute      int
	ExtraMinute *int
	Type        string
	Detail      string
	Player      string
	Assist      string
	Comments    string
}

func (e Event) Validate() error {
	if e.MatchID <= 0 {
		return fmt.Errorf("event match id is required")
	}
	if e.Type == "" {
		return fmt.Errorf("event type is required")
	}

	return nil
}

// DedupKey identifies an event for duplicate suppression. Two goals by
// the same player in the same minute collapse into one record; the
// feed gives nothing finer to tell them apart.
func (e Event) DedupKey() string {
	return strings.Join([]string{
		strconv.FormatInt(e.MatchID, 10),
		strconv.FormatInt(e.TeamID, 10),
		strconv.Itoa(e.Minute),
		e.Type,
		e.Player,
	}, "|")
}
