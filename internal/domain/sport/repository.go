package sport

import "context"

// Repository describes sport persistence needs from use cases.
type Repository interface {
	GetBySlug(ctx context.Context, slug string) (Sport, bool, error)
	Upsert(ctx context.Context, item Sport) (Sport, error)
}
