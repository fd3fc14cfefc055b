package orchestrators

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"time"

	emailAdapter "cpgg/internal/adapters/email"
	"cpgg/internal/domain/admin"
	"cpgg/internal/domain/reservation"
)

// ReservationStoreForSubmit defines the store surface needed by submissions.
type ReservationStoreForSubmit interface {
	Save(ctx context.Context, r reservation.Reservation) error
}

// SubmitReservationInput carries a public space reservation request.
type SubmitReservationInput struct {
	FirstName string
	LastName  string
	Email     string
	Purpose   string
	Kind      string
	StartTime time.Time
	EndTime   time.Time
}

// SubmitReservationResult reports persistence and delivery outcome.
type SubmitReservationResult struct {
	Reservation    reservation.Reservation
	EmailDelivered bool
}

// SubmitReservationDeps holds dependencies for SubmitReservation.
type SubmitReservationDeps struct {
	Reservations ReservationStoreForSubmit
	Admins       RecipientLookup
	Notify       NotifyDeps
	GenerateID   func() string
	Now          func() time.Time
	// FallbackRecipient receives notifications when no secretaria admin exists.
	FallbackRecipient string
	FromAddress       string
}

// ExecuteSubmitReservation persists a physical-space reservation as pendente
// and notifies the secretariat. The reservation is saved before any email
// attempt: a dead mail relay must never lose a request.
// PRE: input comes from the public form, captcha already verified upstream
// POST: Reservation persisted; a failed send is queued in the outbox for
// retry and reported as ErrEmailDelivery alongside the persisted row
func ExecuteSubmitReservation(ctx context.Context, input SubmitReservationInput, deps SubmitReservationDeps) (SubmitReservationResult, error) {
	r := reservation.Reservation{
		ID:        deps.GenerateID(),
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Purpose:   input.Purpose,
		Kind:      input.Kind,
		StartTime: input.StartTime,
		EndTime:   input.EndTime,
		Status:    reservation.StatusPendente,
		CreatedAt: deps.Now(),
	}
	if err := r.Validate(); err != nil {
		return SubmitReservationResult{}, err
	}
	if r.Category() != reservation.CategoryPhysical {
		return SubmitReservationResult{}, reservation.ErrInvalidKind
	}

	if err := deps.Reservations.Save(ctx, r); err != nil {
		return SubmitReservationResult{}, err
	}
	slog.Info("reservation_event", "event", "reservation_submitted", "reservation_id", r.ID, "kind", r.Kind)

	to := resolveRecipient(ctx, deps.Admins, admin.RoleSecretaria, deps.FallbackRecipient)
	if to == "" {
		slog.Warn("email_event", "event", "no_recipient", "reservation_id", r.ID)
		return SubmitReservationResult{Reservation: r}, nil
	}

	req := emailAdapter.SendRequest{
		To:      []string{to},
		From:    deps.FromAddress,
		Subject: fmt.Sprintf("Nova reserva: %s", reservation.KindLabel(r.Kind)),
		HTML:    reservationEmailHTML(r),
		ReplyTo: r.Email,
	}
	if err := sendOrEnqueue(ctx, deps.Notify, req); err != nil {
		return SubmitReservationResult{Reservation: r}, err
	}
	return SubmitReservationResult{Reservation: r, EmailDelivered: true}, nil
}

// reservationEmailHTML renders the secretariat notification body.
// User-supplied fields are escaped; the body is raw HTML to the provider.
func reservationEmailHTML(r reservation.Reservation) string {
	return fmt.Sprintf(`<h2>Nova solicitação de reserva</h2>
<p><strong>Espaço:</strong> %s</p>
<p><strong>Solicitante:</strong> %s</p>
<p><strong>Email:</strong> %s</p>
<p><strong>Finalidade:</strong> %s</p>
<p><strong>Início:</strong> %s</p>
<p><strong>Término:</strong> %s</p>
<p>Acesse a área administrativa para aprovar ou rejeitar a solicitação.</p>`,
		html.EscapeString(reservation.KindLabel(r.Kind)),
		html.EscapeString(r.RequesterName()),
		html.EscapeString(r.Email),
		html.EscapeString(r.Purpose),
		r.StartTime.Format("02/01/2006 15:04"),
		r.EndTime.Format("02/01/2006 15:04"))
}
