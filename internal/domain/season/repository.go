package season

import "context"

// Repository describes season persistence needs from use cases.
type Repository interface {
	ListByLeague(ctx context.Context, leagueID int64) ([]Season, error)
	GetByLeagueYear(ctx context.Context, leagueID int64, year int) (Season, bool, error)
	Upsert(ctx context.Context, item Season) (Season, error)
}
