package researcher

import (
	"context"

	domain "cpgg/internal/domain/researcher"
)

// Store persists Researcher profiles.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Researcher, error)
	Save(ctx context.Context, value domain.Researcher) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.Researcher, error)
}
