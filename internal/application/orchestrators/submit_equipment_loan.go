package orchestrators

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"time"

	emailAdapter "cpgg/internal/adapters/email"
	"cpgg/internal/domain/laboratory"
	"cpgg/internal/domain/reservation"
)

// LaboratoryLookup resolves laboratory contact configuration.
type LaboratoryLookup interface {
	GetByAcronym(ctx context.Context, acronym string) (laboratory.Laboratory, error)
}

// ReceiptRenderer renders the loan receipt attached to the notification.
type ReceiptRenderer interface {
	Build(r reservation.Reservation) ([]byte, error)
}

// SubmitEquipmentLoanInput carries a public laboratory reservation request.
type SubmitEquipmentLoanInput struct {
	FirstName string
	LastName  string
	Email     string
	Purpose   string
	Kind      string // laboratory kind: laiga_equipments, lagep, lamod
	Equipment string
	StartTime time.Time
	EndTime   time.Time
}

// SubmitEquipmentLoanResult reports persistence and delivery outcome.
type SubmitEquipmentLoanResult struct {
	Reservation    reservation.Reservation
	EmailDelivered bool
}

// SubmitEquipmentLoanDeps holds dependencies for SubmitEquipmentLoan.
type SubmitEquipmentLoanDeps struct {
	Reservations ReservationStoreForSubmit
	Laboratories LaboratoryLookup
	Receipts     ReceiptRenderer
	Notify       NotifyDeps
	GenerateID   func() string
	Now          func() time.Time
	// FallbackRecipient receives notifications when the laboratory has no
	// chief email configured.
	FallbackRecipient string
	FromAddress       string
}

// kindAcronyms maps laboratory reservation kinds to laboratory acronyms.
var kindAcronyms = map[string]string{
	reservation.KindLaigaEquipment: "LAIGA",
	reservation.KindLagep:          "LAGEP",
	reservation.KindLamod:          "LAMOD",
}

// ExecuteSubmitEquipmentLoan persists a laboratory reservation as pendente
// and notifies the laboratory chief. LAIGA loans carry a PDF receipt
// attachment; the other laboratories get a plain notification.
// PRE: input comes from the public form, captcha already verified upstream
// POST: Reservation persisted; a failed send is queued in the outbox and
// reported as ErrEmailDelivery alongside the persisted row
func ExecuteSubmitEquipmentLoan(ctx context.Context, input SubmitEquipmentLoanInput, deps SubmitEquipmentLoanDeps) (SubmitEquipmentLoanResult, error) {
	r := reservation.Reservation{
		ID:        deps.GenerateID(),
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Purpose:   input.Purpose,
		Kind:      input.Kind,
		Equipment: input.Equipment,
		StartTime: input.StartTime,
		EndTime:   input.EndTime,
		Status:    reservation.StatusPendente,
		CreatedAt: deps.Now(),
	}
	if err := r.Validate(); err != nil {
		return SubmitEquipmentLoanResult{}, err
	}
	acronym, ok := kindAcronyms[r.Kind]
	if !ok {
		return SubmitEquipmentLoanResult{}, reservation.ErrInvalidKind
	}

	if err := deps.Reservations.Save(ctx, r); err != nil {
		return SubmitEquipmentLoanResult{}, err
	}
	slog.Info("reservation_event", "event", "loan_submitted", "reservation_id", r.ID, "laboratory", acronym)

	to := deps.FallbackRecipient
	if lab, err := deps.Laboratories.GetByAcronym(ctx, acronym); err == nil && lab.ChiefEmail != "" {
		to = lab.ChiefEmail
	} else if err != nil {
		slog.Info("email_event", "event", "laboratory_lookup_failed", "acronym", acronym, "error", err)
	}
	if to == "" {
		slog.Warn("email_event", "event", "no_recipient", "reservation_id", r.ID)
		return SubmitEquipmentLoanResult{Reservation: r}, nil
	}

	req := emailAdapter.SendRequest{
		To:      []string{to},
		From:    deps.FromAddress,
		Subject: fmt.Sprintf("Novo empréstimo de equipamento: %s", acronym),
		HTML:    loanEmailHTML(r, acronym),
		ReplyTo: r.Email,
	}

	if r.Kind == reservation.KindLaigaEquipment && deps.Receipts != nil {
		receipt, err := deps.Receipts.Build(r)
		if err != nil {
			// A broken receipt must not block the notification itself.
			slog.Error("email_event", "event", "receipt_render_failed", "reservation_id", r.ID, "error", err)
		} else {
			req.Attachments = append(req.Attachments, emailAdapter.Attachment{
				Filename:    fmt.Sprintf("comprovante-%s.pdf", r.ID),
				Content:     receipt,
				ContentType: "application/pdf",
			})
		}
	}

	if err := sendOrEnqueue(ctx, deps.Notify, req); err != nil {
		return SubmitEquipmentLoanResult{Reservation: r}, err
	}
	return SubmitEquipmentLoanResult{Reservation: r, EmailDelivered: true}, nil
}

// loanEmailHTML renders the laboratory chief notification body.
func loanEmailHTML(r reservation.Reservation, acronym string) string {
	equipment := r.Equipment
	if equipment == "" {
		equipment = "-"
	}
	return fmt.Sprintf(`<h2>Nova solicitação de empréstimo</h2>
<p><strong>Laboratório:</strong> %s</p>
<p><strong>Solicitante:</strong> %s</p>
<p><strong>Email:</strong> %s</p>
<p><strong>Equipamento:</strong> %s</p>
<p><strong>Finalidade:</strong> %s</p>
<p><strong>Retirada:</strong> %s</p>
<p><strong>Devolução:</strong> %s</p>`,
		html.EscapeString(acronym),
		html.EscapeString(r.RequesterName()),
		html.EscapeString(r.Email),
		html.EscapeString(equipment),
		html.EscapeString(r.Purpose),
		r.StartTime.Format("02/01/2006 15:04"),
		r.EndTime.Format("02/01/2006 15:04"))
}
