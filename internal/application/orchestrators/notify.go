package orchestrators

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	emailAdapter "cpgg/internal/adapters/email"
	"cpgg/internal/domain/outbox"
)

// ErrEmailDelivery marks a notification that could not be handed to the
// email transport. The submitted record stays persisted; callers report
// the delivery failure instead of claiming success.
var ErrEmailDelivery = errors.New("notification email delivery failed")

// RecipientLookup resolves the notification recipient for a department role.
type RecipientLookup interface {
	GetEmailByRole(ctx context.Context, role string) (string, error)
}

// OutboxStoreForNotify defines the outbox surface needed by dispatchers.
type OutboxStoreForNotify interface {
	Save(ctx context.Context, e outbox.Entry) error
}

// NotifyDeps bundles the email dispatch dependencies shared by the
// submission orchestrators.
type NotifyDeps struct {
	Sender     emailAdapter.Sender
	Outbox     OutboxStoreForNotify
	GenerateID func() string
	Now        func() time.Time
}

// resolveRecipient returns the email of the first admin holding the role,
// falling back to the configured address when no admin does.
// POST: Returns the fallback when the lookup finds nothing; empty only if
// both lookup and fallback are empty
func resolveRecipient(ctx context.Context, lookup RecipientLookup, role, fallback string) string {
	addr, err := lookup.GetEmailByRole(ctx, role)
	if err != nil || addr == "" {
		if err != nil {
			slog.Info("email_event", "event", "recipient_fallback", "role", role, "fallback", fallback)
		}
		return fallback
	}
	return addr
}

// sendOrEnqueue attempts delivery and, on transport failure, records the
// request in the outbox for the background retry worker. The failure is
// returned as ErrEmailDelivery either way so the caller can report delivery
// status honestly.
// POST: On failure an outbox entry exists with the full request as payload
func sendOrEnqueue(ctx context.Context, deps NotifyDeps, req emailAdapter.SendRequest) error {
	_, sendErr := deps.Sender.Send(ctx, req)
	if sendErr == nil {
		return nil
	}
	deliveryErr := fmt.Errorf("%w: %v", ErrEmailDelivery, sendErr)

	payload, err := json.Marshal(req)
	if err != nil {
		slog.Error("email_event", "event", "outbox_marshal_failed", "error", err)
		return deliveryErr
	}

	entry := outbox.Entry{
		ID:         deps.GenerateID(),
		ActionType: outbox.ActionTypeEmail,
		Payload:    string(payload),
		Status:     outbox.StatusPending,
		CreatedAt:  deps.Now(),
	}
	if err := entry.Validate(); err != nil {
		slog.Error("email_event", "event", "outbox_entry_invalid", "error", err)
		return deliveryErr
	}
	if err := deps.Outbox.Save(ctx, entry); err != nil {
		slog.Error("email_event", "event", "outbox_save_failed", "entry_id", entry.ID, "error", err)
		return deliveryErr
	}

	slog.Warn("email_event", "event", "email_enqueued_for_retry", "entry_id", entry.ID, "to", req.To, "error", sendErr)
	return deliveryErr
}
