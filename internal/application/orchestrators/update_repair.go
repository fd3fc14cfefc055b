package orchestrators

import (
	"context"
	"log/slog"

	"cpgg/internal/domain/repair"
)

// RepairStoreForUpdate defines the store surface needed by repair updates.
type RepairStoreForUpdate interface {
	GetByID(ctx context.Context, id string) (repair.Request, error)
	Save(ctx context.Context, r repair.Request) error
	Delete(ctx context.Context, id string) error
}

// UpdateRepairStatusInput marks a repair request resolved or pending again.
type UpdateRepairStatusInput struct {
	ID     string
	Status string
}

// UpdateRepairDeps holds dependencies for repair request management.
type UpdateRepairDeps struct {
	Repairs RepairStoreForUpdate
}

// ExecuteUpdateRepairStatus transitions a repair request's status.
// PRE: ID references an existing request; Status is a valid value
// POST: Request persisted with the new status
func ExecuteUpdateRepairStatus(ctx context.Context, input UpdateRepairStatusInput, deps UpdateRepairDeps) (repair.Request, error) {
	r, err := deps.Repairs.GetByID(ctx, input.ID)
	if err != nil {
		return repair.Request{}, err
	}
	r.Status = input.Status
	if err := r.Validate(); err != nil {
		return repair.Request{}, err
	}
	if err := deps.Repairs.Save(ctx, r); err != nil {
		return repair.Request{}, err
	}
	slog.Info("repair_event", "event", "repair_status_updated", "request_id", r.ID, "status", r.Status)
	return r, nil
}

// ExecuteDeleteRepair removes a repair request.
// PRE: id references an existing request
// POST: Request removed
func ExecuteDeleteRepair(ctx context.Context, id string, deps UpdateRepairDeps) error {
	if err := deps.Repairs.Delete(ctx, id); err != nil {
		return err
	}
	slog.Info("repair_event", "event", "repair_deleted", "request_id", id)
	return nil
}
