package reservation

import (
	"context"

	domain "cpgg/internal/domain/reservation"
)

// Store persists Reservation state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Reservation, error)
	// Save is an upsert: undo re-inserts deleted rows with their original IDs.
	Save(ctx context.Context, value domain.Reservation) error
	Delete(ctx context.Context, ids []string) error
	ListAll(ctx context.Context) ([]domain.Reservation, error)
	ListByKinds(ctx context.Context, kinds []string) ([]domain.Reservation, error)
}
