package rawdata

import "time"

// Payload is one archived upstream response blob. Archival is keyed by
// (source, entity_type, entity_key) so replaying a sync overwrites the
// previous capture instead of accumulating copies.
type Payload struct {
	Source      string
	EntityType  string
	EntityKey   string
	PayloadJSON string
	PayloadHash string
	FetchedAt   time.Time
}
