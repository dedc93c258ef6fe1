package season

import (
	"fmt"
	"time"
)

// Season is one year of a league. The upstream feed identifies seasons
// by (league, year) rather than a standalone id.
type Season struct {
	ID        int64
	LeagueID  int64
	Year      int
	StartDate time.Time
	EndDate   time.Time
	IsCurrent bool
}

func (s Season) Validate() error {
	if s.LeagueID <= 0 {
		return fmt.Errorf("season league id is required")
	}
	if s.Year < 1900 {
		return fmt.Errorf("season year %d is out of range", s.Year)
	}

	return nil
}

// SynthesizeWindow fills the start and end dates for a season the
// upstream reported without explicit boundaries. European club football
// runs July 1 through June 30 of the following year.
func SynthesizeWindow(year int) (time.Time, time.Time) {
	start := time.Date(year, time.July, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year+1, time.June, 30, 0, 0, 0, 0, time.UTC)
	return start, end
}
