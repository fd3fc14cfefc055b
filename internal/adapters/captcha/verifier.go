package captcha

import "context"

// Result is the outcome of a captcha token verification.
type Result struct {
	Success    bool
	ErrorCodes []string // provider error codes, for logging only
}

// Verifier checks that a captcha token was issued to a human.
// Implementations must fail closed: a transport error is an error, not a pass.
type Verifier interface {
	Verify(ctx context.Context, token string) (Result, error)
}
