package usecase

// SyncReport tallies the outcome of one sync pass. Passes are tolerant
// by design: a failing record increments Errors and the pass moves on.
type SyncReport struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
	Errors  int `json:"errors"`
}

func (r *SyncReport) Merge(other SyncReport) {
	r.Created += other.Created
	r.Updated += other.Updated
	r.Skipped += other.Skipped
	r.Errors += other.Errors
}

func (r SyncReport) Total() int {
	return r.Created + r.Updated + r.Skipped + r.Errors
}
