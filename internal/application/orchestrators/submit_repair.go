package orchestrators

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"time"

	emailAdapter "cpgg/internal/adapters/email"
	"cpgg/internal/domain/admin"
	"cpgg/internal/domain/repair"
)

// RepairStoreForSubmit defines the store surface needed by repair submissions.
type RepairStoreForSubmit interface {
	Save(ctx context.Context, r repair.Request) error
}

// SubmitRepairInput carries a public repair request.
type SubmitRepairInput struct {
	FirstName   string
	LastName    string
	Email       string
	ProblemType string
	Description string
}

// SubmitRepairResult reports persistence and delivery outcome.
type SubmitRepairResult struct {
	Request        repair.Request
	EmailDelivered bool
}

// SubmitRepairDeps holds dependencies for SubmitRepair.
type SubmitRepairDeps struct {
	Repairs    RepairStoreForSubmit
	Admins     RecipientLookup
	Notify     NotifyDeps
	GenerateID func() string
	Now        func() time.Time
	// Fallbacks by problem type when no admin holds the target role.
	SecretariaFallback string
	TIFallback         string
	FromAddress        string
}

// ExecuteSubmitRepair persists a repair request and routes the notification:
// infrastructure problems go to the secretariat, everything else to IT.
// PRE: input comes from the public form, captcha already verified upstream
// POST: Request persisted; a failed send is queued in the outbox and
// reported as ErrEmailDelivery alongside the persisted row
func ExecuteSubmitRepair(ctx context.Context, input SubmitRepairInput, deps SubmitRepairDeps) (SubmitRepairResult, error) {
	r := repair.Request{
		ID:          deps.GenerateID(),
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		Email:       input.Email,
		ProblemType: input.ProblemType,
		Description: input.Description,
		Status:      repair.StatusPendente,
		CreatedAt:   deps.Now(),
	}
	if err := r.Validate(); err != nil {
		return SubmitRepairResult{}, err
	}

	if err := deps.Repairs.Save(ctx, r); err != nil {
		return SubmitRepairResult{}, err
	}
	slog.Info("repair_event", "event", "repair_submitted", "request_id", r.ID, "problem_type", r.ProblemType)

	role, fallback := admin.RoleTI, deps.TIFallback
	if r.ProblemType == repair.ProblemInfraestrutura {
		role, fallback = admin.RoleSecretaria, deps.SecretariaFallback
	}
	to := resolveRecipient(ctx, deps.Admins, role, fallback)
	if to == "" {
		slog.Warn("email_event", "event", "no_recipient", "request_id", r.ID)
		return SubmitRepairResult{Request: r}, nil
	}

	req := emailAdapter.SendRequest{
		To:      []string{to},
		From:    deps.FromAddress,
		Subject: fmt.Sprintf("Novo chamado de manutenção: %s", r.Department()),
		HTML:    repairEmailHTML(r),
		ReplyTo: r.Email,
	}
	if err := sendOrEnqueue(ctx, deps.Notify, req); err != nil {
		return SubmitRepairResult{Request: r}, err
	}
	return SubmitRepairResult{Request: r, EmailDelivered: true}, nil
}

// repairEmailHTML renders the department notification body.
func repairEmailHTML(r repair.Request) string {
	return fmt.Sprintf(`<h2>Novo chamado de manutenção</h2>
<p><strong>Departamento:</strong> %s</p>
<p><strong>Solicitante:</strong> %s</p>
<p><strong>Email:</strong> %s</p>
<p><strong>Descrição do problema:</strong></p>
<p>%s</p>`,
		html.EscapeString(r.Department()),
		html.EscapeString(r.FirstName+" "+r.LastName),
		html.EscapeString(r.Email),
		html.EscapeString(r.Description))
}
