package match

import (
	"context"
	"time"
)

// Filter narrows match queries. Zero-valued fields are ignored.
type Filter struct {
	DateFrom *time.Time
	DateTo   *time.Time
	LeagueID int64
	SeasonID int64
	TeamID   int64
	Status   string
	LiveOnly bool
	Limit    int
	Offset   int
}

// Repository describes match persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, id int64) (Match, bool, error)
	GetByAPIID(ctx context.Context, apiID int64) (Match, bool, error)
	Upsert(ctx context.Context, item Match) (Match, error)
	Find(ctx context.Context, filter Filter) ([]Match, int, error)
	ListLive(ctx context.Context, limit int) ([]Match, error)
	// ListStaleLive returns matches still flagged live that kicked
	// off before the cutoff. Keyed on kickoff, not last update: a
	// feed that keeps echoing a live status would otherwise pin the
	// row live forever.
	ListStaleLive(ctx context.Context, cutoff time.Time) ([]Match, error)
}

// EventRepository describes match event persistence. Events are
// append-only: InsertUnique refuses duplicates instead of updating.
type EventRepository interface {
	ListByMatch(ctx context.Context, matchID int64) ([]Event, error)
	// InsertUnique stores the event unless one with the same dedup
	// key already exists. It reports whether a row was written.
	InsertUnique(ctx context.Context, item Event) (bool, error)
}
