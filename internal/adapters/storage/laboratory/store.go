package laboratory

import (
	"context"

	domain "cpgg/internal/domain/laboratory"
)

// Store persists laboratory contact configuration.
type Store interface {
	GetByAcronym(ctx context.Context, acronym string) (domain.Laboratory, error)
	Save(ctx context.Context, value domain.Laboratory) error
	List(ctx context.Context) ([]domain.Laboratory, error)
	Count(ctx context.Context) (int, error)
}
