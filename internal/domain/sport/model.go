package sport

import "fmt"

// Sport is a top-level discipline. The engine currently replicates
// football only, but the hierarchy keeps the door open.
type Sport struct {
	ID    int64
	APIID int64
	Name  string
	Slug  string
}

func (s Sport) Validate() error {
	if s.APIID <= 0 {
		return fmt.Errorf("sport api id is required")
	}
	if s.Name == "" {
		return fmt.Errorf("sport name is required")
	}
	if s.Slug == "" {
		return fmt.Errorf("sport slug is required")
	}

	return nil
}
