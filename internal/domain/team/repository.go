package team

import "context"

// Repository describes team persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, id int64) (Team, bool, error)
	GetByAPIID(ctx context.Context, apiID int64) (Team, bool, error)
	Upsert(ctx context.Context, item Team) (Team, error)
}
