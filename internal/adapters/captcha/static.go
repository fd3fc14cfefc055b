package captcha

import (
	"context"
	"log/slog"
)

// StaticVerifier accepts or rejects every token. Used in development when no
// reCAPTCHA secret is configured, and in tests.
type StaticVerifier struct {
	accept bool
}

// NewStaticVerifier creates a verifier with a fixed verdict.
func NewStaticVerifier(accept bool) *StaticVerifier {
	return &StaticVerifier{accept: accept}
}

// Verify returns the fixed verdict.
// POST: never returns an error
func (v *StaticVerifier) Verify(_ context.Context, _ string) (Result, error) {
	if !v.accept {
		return Result{Success: false, ErrorCodes: []string{"static-reject"}}, nil
	}
	slog.Debug("captcha_static_accept")
	return Result{Success: true}, nil
}
