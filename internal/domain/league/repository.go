package league

import "context"

// Repository describes league persistence needs from use cases.
type Repository interface {
	List(ctx context.Context, activeOnly bool) ([]League, error)
	GetByID(ctx context.Context, id int64) (League, bool, error)
	GetByAPIID(ctx context.Context, apiID int64) (League, bool, error)
	Upsert(ctx context.Context, item League) (League, error)
}
