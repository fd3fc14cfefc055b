package web

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"cpgg/internal/adapters/http/middleware"
	"cpgg/internal/domain/admin"
)

// timeNow is a variable for testability.
var timeNow = time.Now

// mdRenderer is a goldmark instance configured for safe HTML output.
// Raw HTML in markdown input is escaped (WithUnsafe is NOT set), preventing XSS.
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// renderMarkdown converts a markdown string to sanitized HTML.
func renderMarkdown(md string) string {
	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
		return ""
	}
	return buf.String()
}

// generateID creates a new UUID string.
func generateID() string {
	return uuid.New().String()
}

// internalError logs the real error and returns a generic message to the client.
// This prevents leaking internal details per OWASP A05.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// strictDecode decodes JSON from the request body, rejecting unknown fields.
func strictDecode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// writeJSON encodes v as the JSON response body.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// requireRole checks the session against an allowed role set and returns it.
// admin.RoleAny accepts every authenticated admin. Returns false if the
// request should not proceed.
func requireRole(w http.ResponseWriter, r *http.Request, roles ...string) (middleware.Session, bool) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		slog.Warn("auth_denied", "path", r.URL.Path, "reason", "no session")
		http.Error(w, "not authenticated", http.StatusUnauthorized)
		return middleware.Session{}, false
	}
	for _, role := range roles {
		if role == admin.RoleAny || role == sess.Role {
			return sess, true
		}
	}
	slog.Warn("auth_denied", "path", r.URL.Path, "account_id", sess.AccountID, "role", sess.Role, "required", roles)
	http.Error(w, "Forbidden", http.StatusForbidden)
	return middleware.Session{}, false
}

// verifyCaptcha checks a public submission token. Verification failures and
// verifier transport errors both deny the request.
func verifyCaptcha(ctx context.Context, token string) bool {
	if captchaVerifier == nil {
		return false
	}
	verdict, err := captchaVerifier.Verify(ctx, token)
	if err != nil {
		slog.Error("captcha_event", "event", "verify_error", "error", err)
		return false
	}
	return verdict.Success
}

// parseRFC3339 parses a timestamp from a JSON payload, tolerating empty input.
func parseRFC3339(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, true
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
