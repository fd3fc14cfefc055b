package roster

import (
	"context"

	domain "cpgg/internal/domain/roster"
)

// Store persists the coordination roster.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Member, error)
	// Save is an upsert so undo can restore a member with its original ID.
	Save(ctx context.Context, value domain.Member) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.Member, error)
	Count(ctx context.Context) (int, error)
}
