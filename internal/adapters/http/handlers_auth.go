package web

import (
	"errors"
	"net/http"

	"cpgg/internal/adapters/http/middleware"
	"cpgg/internal/application/orchestrators"
	"cpgg/internal/domain/admin"
)

// areaRoles maps an admin area name to the role set that may enter it.
// Unknown or empty areas accept any granted role.
var areaRoles = map[string][]string{
	"reservations": {admin.RoleCoordenacao, admin.RoleSecretaria},
	"roster":       {admin.RoleCoordenacao},
	"repairs":      {admin.RoleTI, admin.RoleSecretaria},
}

// handleAdminLogin handles POST /api/admin/login
func handleAdminLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var input struct {
		Email        string `json:"Email"`
		Password     string `json:"Password"`
		CaptchaToken string `json:"CaptchaToken"`
		Area         string `json:"Area"`
	}
	if err := strictDecode(r, &input); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	required := areaRoles[input.Area]
	if required == nil {
		required = []string{admin.RoleAny}
	}

	result, err := orchestrators.ExecuteAdminLogin(r.Context(), orchestrators.AdminLoginInput{
		Email:         input.Email,
		Password:      input.Password,
		CaptchaToken:  input.CaptchaToken,
		RequiredRoles: required,
	}, orchestrators.AdminLoginDeps{
		AccountStore: stores.AccountStore,
		GrantStore:   stores.AdminStore,
		Captcha:      captchaVerifier,
	})
	if err != nil {
		// A failed attempt never leaves a session behind: the cookie is
		// cleared and any token presented with the request is revoked
		// server-side, not just on the client.
		if token := middleware.SessionToken(r); token != "" {
			sessions.Delete(token)
		}
		middleware.ClearSessionCookie(w)
		switch {
		case errors.Is(err, orchestrators.ErrCaptchaRequired),
			errors.Is(err, orchestrators.ErrCaptchaRejected):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, orchestrators.ErrInvalidCredentials),
			errors.Is(err, orchestrators.ErrAccountLocked):
			http.Error(w, err.Error(), http.StatusUnauthorized)
		case errors.Is(err, orchestrators.ErrNotAdmin),
			errors.Is(err, orchestrators.ErrRoleDenied):
			http.Error(w, err.Error(), http.StatusForbidden)
		default:
			internalError(w, err)
		}
		return
	}

	token, err := sessions.Create(result.AccountID, result.Email, result.Role)
	if err != nil {
		internalError(w, err)
		return
	}
	middleware.SetSessionCookie(w, token)

	writeJSON(w, http.StatusOK, map[string]string{
		"ID":    result.AccountID,
		"Email": result.Email,
		"Role":  result.Role,
	})
}

// handleAdminLogout handles POST /api/admin/logout
func handleAdminLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	if token := middleware.SessionToken(r); token != "" {
		sessions.Delete(token)
	}
	middleware.ClearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

// handleAdminSession handles GET /api/admin/session
// Returns the current identity so the UI can gate its navigation.
func handleAdminSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		http.Error(w, "not authenticated", http.StatusUnauthorized)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"ID":    sess.AccountID,
		"Email": sess.Email,
		"Role":  sess.Role,
	})
}
