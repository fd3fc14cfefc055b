package orchestrators

import (
	"context"
	"errors"
	"log/slog"

	"cpgg/internal/application/undo"
	"cpgg/internal/domain/reservation"
)

// ReservationStoreForDelete defines the store surface needed by deletions.
type ReservationStoreForDelete interface {
	GetByID(ctx context.Context, id string) (reservation.Reservation, error)
	ListByKinds(ctx context.Context, kinds []string) ([]reservation.Reservation, error)
	Save(ctx context.Context, r reservation.Reservation) error
	Delete(ctx context.Context, ids []string) error
}

// DeleteReservationsInput selects rows by explicit IDs or by category.
// IDList wins when both are set.
type DeleteReservationsInput struct {
	IDList   []string // explicit reservation IDs
	Category string   // physical, laboratory, all, or a single kind
}

// DeleteReservationsDeps holds dependencies for DeleteReservations.
type DeleteReservationsDeps struct {
	Reservations ReservationStoreForDelete
	UndoBuffer   *undo.Buffer[reservation.Reservation]
}

var (
	ErrNothingSelected = errors.New("no reservations selected for deletion")
	ErrNothingToUndo   = errors.New("no recent deletion to undo")
)

// ExecuteDeleteReservations removes the selected rows and parks verbatim
// copies in the undo buffer. The buffer holds only the latest batch.
// PRE: IDList or Category selects at least one row
// POST: Rows removed from storage; buffer holds the removed rows
func ExecuteDeleteReservations(ctx context.Context, input DeleteReservationsInput, deps DeleteReservationsDeps) (int, error) {
	var doomed []reservation.Reservation

	switch {
	case len(input.IDList) > 0:
		for _, id := range input.IDList {
			r, err := deps.Reservations.GetByID(ctx, id)
			if err != nil {
				return 0, err
			}
			doomed = append(doomed, r)
		}
	case input.Category != "":
		kinds := reservation.KindsForCategory(input.Category)
		if kinds == nil {
			return 0, reservation.ErrInvalidKind
		}
		list, err := deps.Reservations.ListByKinds(ctx, kinds)
		if err != nil {
			return 0, err
		}
		doomed = list
	}
	if len(doomed) == 0 {
		return 0, ErrNothingSelected
	}

	ids := make([]string, len(doomed))
	for i, r := range doomed {
		ids[i] = r.ID
	}
	if err := deps.Reservations.Delete(ctx, ids); err != nil {
		return 0, err
	}

	deps.UndoBuffer.Push(doomed)
	slog.Info("reservation_event", "event", "reservations_deleted", "count", len(doomed))
	return len(doomed), nil
}

// ExecuteUndoDeleteReservations restores the most recent deletion batch.
// Rows are re-inserted verbatim: same IDs, same created_at, same status.
// PRE: a deletion happened within the undo window
// POST: Every row of the batch exists again; the buffer is empty
func ExecuteUndoDeleteReservations(ctx context.Context, deps DeleteReservationsDeps) (int, error) {
	batch, ok := deps.UndoBuffer.Take()
	if !ok {
		return 0, ErrNothingToUndo
	}

	for _, r := range batch {
		if err := deps.Reservations.Save(ctx, r); err != nil {
			// Push the rest back so a transient failure is itself undoable.
			deps.UndoBuffer.Push(batch)
			return 0, err
		}
	}

	slog.Info("reservation_event", "event", "reservations_restored", "count", len(batch))
	return len(batch), nil
}
