package orchestrators

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	emailAdapter "cpgg/internal/adapters/email"
	"cpgg/internal/adapters/storage/outbox"
	domainOutbox "cpgg/internal/domain/outbox"
)

// OutboxRetryDeps provides the dependencies for retrying outbox entries.
type OutboxRetryDeps struct {
	OutboxStore outbox.Store
	Sender      emailAdapter.Sender
	Now         func() time.Time
}

// ExecuteOutboxRetry processes pending and retryable failed outbox entries.
// It implements exponential backoff and respects max attempts.
// PRE: Deps are valid and store is connected
// POST: All eligible entries are processed, results logged
func ExecuteOutboxRetry(ctx context.Context, deps OutboxRetryDeps) error {
	entries, err := deps.OutboxStore.ListPending(ctx, 100)
	if err != nil {
		return fmt.Errorf("failed to list retryable outbox entries: %w", err)
	}

	if len(entries) == 0 {
		return nil
	}

	slog.Info("outbox_retry_start", "count", len(entries))

	var processed, succeeded, failed int
	baseDelay := 1 * time.Minute
	maxDelay := 1 * time.Hour
	now := deps.Now()

	for _, entry := range entries {
		processed++

		// Check if enough time has passed since last attempt
		if !entry.LastAttemptedAt.IsZero() {
			nextRetry := entry.LastAttemptedAt.Add(entry.NextRetryDelay(baseDelay, maxDelay))
			if now.Before(nextRetry) {
				slog.Debug("outbox_retry_skipped_backoff", "entry_id", entry.ID, "next_retry", nextRetry)
				continue
			}
		}

		entry.MarkAttempt(now)

		var err error
		switch entry.ActionType {
		case domainOutbox.ActionTypeEmail:
			err = retryEmail(ctx, entry, deps.Sender)
		default:
			err = fmt.Errorf("unknown action type: %s", entry.ActionType)
		}

		if err != nil {
			entry.MarkFailed(err)
			failed++
			slog.Error("outbox_retry_failed", "entry_id", entry.ID, "action", entry.ActionType, "attempt", entry.Attempts, "error", err)
		} else {
			entry.MarkSuccess()
			succeeded++
			slog.Info("outbox_retry_succeeded", "entry_id", entry.ID, "action", entry.ActionType, "attempt", entry.Attempts)
		}

		if saveErr := deps.OutboxStore.Save(ctx, entry); saveErr != nil {
			slog.Error("outbox_retry_save_failed", "entry_id", entry.ID, "error", saveErr)
		}
	}

	slog.Info("outbox_retry_complete", "processed", processed, "succeeded", succeeded, "failed", failed)
	return nil
}

// retryEmail replays a queued SendRequest through the configured sender.
// PRE: Entry payload is a marshalled email.SendRequest
// POST: Email delivered or error returned
func retryEmail(ctx context.Context, entry domainOutbox.Entry, sender emailAdapter.Sender) error {
	if sender == nil {
		return fmt.Errorf("no email sender configured")
	}

	var req emailAdapter.SendRequest
	if err := json.Unmarshal([]byte(entry.Payload), &req); err != nil {
		return fmt.Errorf("failed to unmarshal email payload: %w", err)
	}

	if _, err := sender.Send(ctx, req); err != nil {
		return err
	}
	return nil
}

// OutboxRetryConfig holds configuration for the retry scheduler.
type OutboxRetryConfig struct {
	Interval time.Duration // How often to run retries
	Enabled  bool
}

// DefaultOutboxRetryConfig returns sensible defaults.
func DefaultOutboxRetryConfig() OutboxRetryConfig {
	return OutboxRetryConfig{
		Interval: 5 * time.Minute,
		Enabled:  true,
	}
}

// StartOutboxRetryScheduler starts a background goroutine that periodically retries outbox entries.
// PRE: Context is valid, deps are initialized
// POST: Goroutine started, returns cancel function
func StartOutboxRetryScheduler(ctx context.Context, deps OutboxRetryDeps, cfg OutboxRetryConfig) func() {
	if !cfg.Enabled {
		return func() {}
	}

	ctx, cancel := context.WithCancel(ctx)

	go func() {
		ticker := time.NewTicker(cfg.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := ExecuteOutboxRetry(ctx, deps); err != nil {
					slog.Error("outbox_retry_scheduler_error", "error", err)
				}
			}
		}
	}()

	return cancel
}
