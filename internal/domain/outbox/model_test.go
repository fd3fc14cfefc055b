package outbox

import (
	"errors"
	"testing"
	"time"
)

func validEntry() Entry {
	return Entry{
		ID:          "ob-1",
		ActionType:  ActionTypeEmail,
		Payload:     `{"to":["sec@cpgg.ufba.br"],"subject":"x"}`,
		Status:      StatusPending,
		MaxAttempts: 5,
		CreatedAt:   time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC),
	}
}

func TestEntryValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Entry)
		wantErr error
	}{
		{"valid", func(e *Entry) {}, nil},
		{"empty action type", func(e *Entry) { e.ActionType = "" }, ErrEmptyActionType},
		{"empty payload", func(e *Entry) { e.Payload = "" }, ErrEmptyPayload},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := validEntry()
			tt.mutate(&e)
			if err := e.Validate(); err != tt.wantErr {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateDefaultsMaxAttempts(t *testing.T) {
	e := validEntry()
	e.MaxAttempts = 0
	if err := e.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
	if e.MaxAttempts != 5 {
		t.Errorf("MaxAttempts = %d, want 5", e.MaxAttempts)
	}
}

func TestRetryLifecycle(t *testing.T) {
	e := validEntry()
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	if !e.CanRetry() {
		t.Fatal("fresh pending entry should be retryable")
	}

	e.MarkAttempt(now)
	if e.Attempts != 1 || e.Status != StatusRetrying || !e.LastAttemptedAt.Equal(now) {
		t.Errorf("after MarkAttempt: attempts=%d status=%q at=%v", e.Attempts, e.Status, e.LastAttemptedAt)
	}

	e.MarkFailed(errors.New("smtp timeout"))
	if e.ErrorMessage != "smtp timeout" {
		t.Errorf("ErrorMessage = %q", e.ErrorMessage)
	}
	if e.IsTerminal() {
		t.Error("entry terminal after one failure of five allowed")
	}

	for e.CanRetry() {
		e.MarkAttempt(now)
	}
	e.MarkFailed(errors.New("smtp timeout"))
	if e.Status != StatusFailed || !e.IsTerminal() {
		t.Errorf("after exhausting attempts: status=%q terminal=%v", e.Status, e.IsTerminal())
	}
}

func TestMarkSuccessAndAbandon(t *testing.T) {
	e := validEntry()
	e.ErrorMessage = "old error"

	e.MarkSuccess()
	if e.Status != StatusDone || e.ErrorMessage != "" || !e.IsTerminal() {
		t.Errorf("after MarkSuccess: status=%q err=%q", e.Status, e.ErrorMessage)
	}

	e2 := validEntry()
	e2.MarkAbandoned()
	if e2.Status != StatusAbandoned || !e2.IsTerminal() || e2.CanRetry() {
		t.Errorf("after MarkAbandoned: status=%q", e2.Status)
	}
}

func TestNextRetryDelay(t *testing.T) {
	base := 30 * time.Second
	max := 10 * time.Minute

	tests := []struct {
		attempts int
		want     time.Duration
	}{
		{0, 30 * time.Second},
		{1, time.Minute},
		{3, 4 * time.Minute},
		{10, 10 * time.Minute},
	}

	for _, tt := range tests {
		e := Entry{Attempts: tt.attempts}
		if got := e.NextRetryDelay(base, max); got != tt.want {
			t.Errorf("NextRetryDelay(attempts=%d) = %v, want %v", tt.attempts, got, tt.want)
		}
	}
}
