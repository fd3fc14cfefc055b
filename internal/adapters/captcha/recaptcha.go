package captcha

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultSiteVerifyURL is Google's reCAPTCHA verification endpoint.
const DefaultSiteVerifyURL = "https://www.google.com/recaptcha/api/siteverify"

// RecaptchaVerifier verifies tokens against the reCAPTCHA siteverify API.
type RecaptchaVerifier struct {
	secret    string
	verifyURL string
	client    *http.Client
}

// NewRecaptchaVerifier creates a verifier with the given shared secret.
// PRE: secret is the site's reCAPTCHA secret key
// POST: Returns a ready-to-use verifier with a 10s HTTP timeout
func NewRecaptchaVerifier(secret string) *RecaptchaVerifier {
	return &RecaptchaVerifier{
		secret:    secret,
		verifyURL: DefaultSiteVerifyURL,
		client:    &http.Client{Timeout: 10 * time.Second},
	}
}

// NewRecaptchaVerifierURL creates a verifier against a custom endpoint.
// Used in tests to point at a local stub server.
func NewRecaptchaVerifierURL(secret, verifyURL string) *RecaptchaVerifier {
	v := NewRecaptchaVerifier(secret)
	v.verifyURL = verifyURL
	return v
}

// siteVerifyResponse mirrors the siteverify JSON body.
type siteVerifyResponse struct {
	Success    bool     `json:"success"`
	ErrorCodes []string `json:"error-codes"`
}

// Verify posts the token to siteverify and returns the provider's verdict.
// PRE: token came from the client form submission
// POST: Result.Success is true only if the provider confirmed the token;
// transport and decode failures return an error (fail closed)
func (v *RecaptchaVerifier) Verify(ctx context.Context, token string) (Result, error) {
	if token == "" {
		return Result{Success: false, ErrorCodes: []string{"missing-input-response"}}, nil
	}

	form := url.Values{}
	form.Set("secret", v.secret)
	form.Set("response", token)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.verifyURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return Result{}, fmt.Errorf("build siteverify request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.client.Do(req)
	if err != nil {
		slog.Error("captcha_verify_failed", "error", err)
		return Result{}, fmt.Errorf("siteverify request failed: %w", err)
	}
	defer resp.Body.Close()

	var body siteVerifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		slog.Error("captcha_verify_decode_failed", "error", err)
		return Result{}, fmt.Errorf("decode siteverify response: %w", err)
	}

	if !body.Success {
		slog.Info("captcha_rejected", "error_codes", body.ErrorCodes)
	}
	return Result{Success: body.Success, ErrorCodes: body.ErrorCodes}, nil
}
