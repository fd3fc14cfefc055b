package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"cpgg/internal/domain/reservation"
)

// ReservationStoreForUpdate defines the store surface needed by updates.
type ReservationStoreForUpdate interface {
	GetByID(ctx context.Context, id string) (reservation.Reservation, error)
	Save(ctx context.Context, r reservation.Reservation) error
}

// UpdateReservationInput carries a partial reservation edit. Nil pointers
// leave the field untouched.
type UpdateReservationInput struct {
	ID        string
	FirstName *string
	LastName  *string
	Email     *string
	Purpose   *string
	Equipment *string
	StartTime *time.Time
	EndTime   *time.Time
	Status    *string
}

// UpdateReservationDeps holds dependencies for UpdateReservation.
type UpdateReservationDeps struct {
	Reservations ReservationStoreForUpdate
}

// ExecuteUpdateReservation applies a partial edit, revalidates, and saves.
// Kind and CreatedAt are immutable; status transitions go through SetStatus.
// PRE: ID references an existing reservation
// POST: Reservation persisted with the merged fields
func ExecuteUpdateReservation(ctx context.Context, input UpdateReservationInput, deps UpdateReservationDeps) (reservation.Reservation, error) {
	r, err := deps.Reservations.GetByID(ctx, input.ID)
	if err != nil {
		return reservation.Reservation{}, err
	}

	if input.FirstName != nil {
		r.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		r.LastName = *input.LastName
	}
	if input.Email != nil {
		r.Email = *input.Email
	}
	if input.Purpose != nil {
		r.Purpose = *input.Purpose
	}
	if input.Equipment != nil {
		r.Equipment = *input.Equipment
	}
	if input.StartTime != nil {
		r.StartTime = *input.StartTime
	}
	if input.EndTime != nil {
		r.EndTime = *input.EndTime
	}
	if input.Status != nil {
		if err := r.SetStatus(*input.Status); err != nil {
			return reservation.Reservation{}, err
		}
	}

	if err := r.Validate(); err != nil {
		return reservation.Reservation{}, err
	}
	if err := deps.Reservations.Save(ctx, r); err != nil {
		return reservation.Reservation{}, err
	}

	slog.Info("reservation_event", "event", "reservation_updated", "reservation_id", r.ID, "status", r.Status)
	return r, nil
}
