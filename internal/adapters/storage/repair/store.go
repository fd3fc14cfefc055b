package repair

import (
	"context"

	domain "cpgg/internal/domain/repair"
)

// Store persists repair requests.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Request, error)
	Save(ctx context.Context, value domain.Request) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.Request, error)
}
