package orchestrators

import (
	"context"
	"errors"
	"log/slog"

	"cpgg/internal/adapters/captcha"
	"cpgg/internal/domain/account"
	"cpgg/internal/domain/admin"
)

// AccountStoreForLogin defines the store interface needed by AdminLogin.
type AccountStoreForLogin interface {
	GetByEmail(ctx context.Context, email string) (account.Account, error)
	Save(ctx context.Context, a account.Account) error
}

// GrantStoreForLogin defines the grant lookup needed by AdminLogin.
type GrantStoreForLogin interface {
	GetByAccountID(ctx context.Context, accountID string) (admin.Grant, error)
}

// AdminLoginInput carries input for the admin login orchestrator.
type AdminLoginInput struct {
	Email        string
	Password     string
	CaptchaToken string
	// RequiredRoles is the role set of the admin area being entered.
	// Empty or containing admin.RoleAny accepts every granted role.
	RequiredRoles []string
}

// AdminLoginResult carries the result of a successful admin login.
type AdminLoginResult struct {
	AccountID string
	Email     string
	Role      string
}

// AdminLoginDeps holds dependencies for AdminLogin.
type AdminLoginDeps struct {
	AccountStore AccountStoreForLogin
	GrantStore   GrantStoreForLogin
	Captcha      captcha.Verifier
}

var (
	ErrCaptchaRequired    = errors.New("captcha verification is required")
	ErrCaptchaRejected    = errors.New("captcha verification failed")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountLocked      = errors.New("account is locked due to too many failed attempts")
	ErrNotAdmin           = errors.New("account holds no administrative role")
	ErrRoleDenied         = errors.New("role does not grant access to this area")
)

// ExecuteAdminLogin runs the five-step admin sign-in: captcha, credentials,
// grant lookup, role check, result. Every denial leaves no session behind;
// session creation is the caller's job and happens only on success.
// PRE: input fields come straight from the login form
// POST: Returns account info on success; on failure returns a sentinel error
// INVARIANT: captcha is checked before credentials are ever compared
func ExecuteAdminLogin(ctx context.Context, input AdminLoginInput, deps AdminLoginDeps) (AdminLoginResult, error) {
	if input.CaptchaToken == "" {
		slog.Info("auth_event", "event", "login_blocked", "email", input.Email, "reason", "captcha_missing")
		return AdminLoginResult{}, ErrCaptchaRequired
	}
	verdict, err := deps.Captcha.Verify(ctx, input.CaptchaToken)
	if err != nil {
		slog.Error("auth_event", "event", "captcha_error", "email", input.Email, "error", err)
		return AdminLoginResult{}, ErrCaptchaRejected
	}
	if !verdict.Success {
		slog.Info("auth_event", "event", "login_blocked", "email", input.Email, "reason", "captcha_rejected", "error_codes", verdict.ErrorCodes)
		return AdminLoginResult{}, ErrCaptchaRejected
	}

	if input.Email == "" || input.Password == "" {
		return AdminLoginResult{}, ErrInvalidCredentials
	}

	acct, err := deps.AccountStore.GetByEmail(ctx, input.Email)
	if err != nil {
		slog.Info("auth_event", "event", "login_failed", "email", input.Email, "reason", "not_found")
		return AdminLoginResult{}, ErrInvalidCredentials
	}

	if acct.IsLocked() {
		slog.Info("auth_event", "event", "login_blocked", "email", input.Email, "reason", "locked")
		return AdminLoginResult{}, ErrAccountLocked
	}

	if err := acct.CheckPassword(input.Password); err != nil {
		acct.RecordFailedLogin()
		_ = deps.AccountStore.Save(ctx, acct)
		slog.Info("auth_event", "event", "login_failed", "email", input.Email, "reason", "wrong_password", "failed_logins", acct.FailedLogins)
		return AdminLoginResult{}, ErrInvalidCredentials
	}

	// Credentials are valid; authorization is a separate gate.
	grant, err := deps.GrantStore.GetByAccountID(ctx, acct.ID)
	if err != nil {
		slog.Info("auth_event", "event", "login_denied", "email", input.Email, "reason", "no_grant")
		return AdminLoginResult{}, ErrNotAdmin
	}

	if !grant.Satisfies(input.RequiredRoles) {
		slog.Info("auth_event", "event", "login_denied", "email", input.Email, "role", grant.Role, "required", input.RequiredRoles)
		return AdminLoginResult{}, ErrRoleDenied
	}

	acct.ResetFailedLogins()
	_ = deps.AccountStore.Save(ctx, acct)

	slog.Info("auth_event", "event", "login_success", "email", input.Email, "role", grant.Role)

	return AdminLoginResult{
		AccountID: acct.ID,
		Email:     acct.Email,
		Role:      grant.Role,
	}, nil
}
