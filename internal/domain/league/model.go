package league

import "fmt"

// League is one competition replicated from the upstream feed. APIID is
// the upstream identifier and the natural key for sync; Slug and
// SortOrder are owned locally and never overwritten by a sync pass.
type League struct {
	ID        int64
	SportID   int64
	APIID     int64
	Name      string
	Slug      string
	Country   string
	LogoURL   string
	SortOrder int
	IsActive  bool
}

func (l League) Validate() error {
	if l.APIID <= 0 {
		return fmt.Errorf("league api id is required")
	}
	if l.Name == "" {
		return fmt.Errorf("league name is required")
	}
	if l.Slug == "" {
		return fmt.Errorf("league slug is required")
	}

	return nil
}
