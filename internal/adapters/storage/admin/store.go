package admin

import (
	"context"

	domain "cpgg/internal/domain/admin"
)

// Store persists admin role grants.
type Store interface {
	GetByAccountID(ctx context.Context, accountID string) (domain.Grant, error)
	GetEmailByRole(ctx context.Context, role string) (string, error)
	Save(ctx context.Context, value domain.Grant) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.Grant, error)
}
