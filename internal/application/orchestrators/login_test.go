package orchestrators

import (
	"context"
	"errors"
	"testing"

	accountDomain "cpgg/internal/domain/account"
	"cpgg/internal/domain/admin"
)

func seededAccount(t *testing.T, email, password string) accountDomain.Account {
	t.Helper()
	a := accountDomain.Account{ID: "acct-1", Email: email, CreatedAt: fixedNow()}
	if err := a.SetPassword(password); err != nil {
		t.Fatalf("SetPassword() = %v", err)
	}
	return a
}

func loginDeps(t *testing.T, role string, captchaOK bool) AdminLoginDeps {
	t.Helper()
	acct := seededAccount(t, "sec@cpgg.ufba.br", "senha-segura")
	accounts := &mockAccountStore{accounts: map[string]accountDomain.Account{acct.Email: acct}}
	grants := &mockGrantStore{grants: map[string]admin.Grant{}}
	if role != "" {
		grants.grants[acct.ID] = admin.Grant{ID: "g1", AccountID: acct.ID, Email: acct.Email, Role: role}
	}
	return AdminLoginDeps{
		AccountStore: accounts,
		GrantStore:   grants,
		Captcha:      &mockVerifier{success: captchaOK},
	}
}

func TestAdminLoginSuccess(t *testing.T) {
	deps := loginDeps(t, admin.RoleSecretaria, true)

	result, err := ExecuteAdminLogin(context.Background(), AdminLoginInput{
		Email:         "sec@cpgg.ufba.br",
		Password:      "senha-segura",
		CaptchaToken:  "tok",
		RequiredRoles: []string{admin.RoleSecretaria},
	}, deps)
	if err != nil {
		t.Fatalf("ExecuteAdminLogin() = %v", err)
	}
	if result.Role != admin.RoleSecretaria || result.Email != "sec@cpgg.ufba.br" {
		t.Errorf("result = %+v", result)
	}
}

func TestAdminLoginWildcardArea(t *testing.T) {
	deps := loginDeps(t, admin.RoleTI, true)

	if _, err := ExecuteAdminLogin(context.Background(), AdminLoginInput{
		Email:         "sec@cpgg.ufba.br",
		Password:      "senha-segura",
		CaptchaToken:  "tok",
		RequiredRoles: []string{admin.RoleAny},
	}, deps); err != nil {
		t.Errorf("wildcard area rejected granted role: %v", err)
	}
}

func TestAdminLoginDenials(t *testing.T) {
	tests := []struct {
		name    string
		role    string
		captcha bool
		input   AdminLoginInput
		wantErr error
	}{
		{
			"missing captcha token",
			admin.RoleSecretaria, true,
			AdminLoginInput{Email: "sec@cpgg.ufba.br", Password: "senha-segura"},
			ErrCaptchaRequired,
		},
		{
			"captcha rejected",
			admin.RoleSecretaria, false,
			AdminLoginInput{Email: "sec@cpgg.ufba.br", Password: "senha-segura", CaptchaToken: "tok"},
			ErrCaptchaRejected,
		},
		{
			"unknown email",
			admin.RoleSecretaria, true,
			AdminLoginInput{Email: "nobody@cpgg.ufba.br", Password: "senha-segura", CaptchaToken: "tok"},
			ErrInvalidCredentials,
		},
		{
			"wrong password",
			admin.RoleSecretaria, true,
			AdminLoginInput{Email: "sec@cpgg.ufba.br", Password: "errada", CaptchaToken: "tok"},
			ErrInvalidCredentials,
		},
		{
			"no grant",
			"", true,
			AdminLoginInput{Email: "sec@cpgg.ufba.br", Password: "senha-segura", CaptchaToken: "tok"},
			ErrNotAdmin,
		},
		{
			"role not in required set",
			admin.RoleTI, true,
			AdminLoginInput{
				Email: "sec@cpgg.ufba.br", Password: "senha-segura", CaptchaToken: "tok",
				RequiredRoles: []string{admin.RoleCoordenacao, admin.RoleSecretaria},
			},
			ErrRoleDenied,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps := loginDeps(t, tt.role, tt.captcha)
			result, err := ExecuteAdminLogin(context.Background(), tt.input, deps)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ExecuteAdminLogin() = %v, want %v", err, tt.wantErr)
			}
			if result != (AdminLoginResult{}) {
				t.Errorf("denied login leaked a result: %+v", result)
			}
		})
	}
}

func TestAdminLoginCaptchaTransportErrorFailsClosed(t *testing.T) {
	deps := loginDeps(t, admin.RoleSecretaria, true)
	deps.Captcha = &mockVerifier{err: errTransport}

	if _, err := ExecuteAdminLogin(context.Background(), AdminLoginInput{
		Email: "sec@cpgg.ufba.br", Password: "senha-segura", CaptchaToken: "tok",
	}, deps); !errors.Is(err, ErrCaptchaRejected) {
		t.Errorf("ExecuteAdminLogin() = %v, want ErrCaptchaRejected", err)
	}
}

func TestAdminLoginLockout(t *testing.T) {
	deps := loginDeps(t, admin.RoleSecretaria, true)

	for i := 0; i < 5; i++ {
		_, err := ExecuteAdminLogin(context.Background(), AdminLoginInput{
			Email: "sec@cpgg.ufba.br", Password: "errada", CaptchaToken: "tok",
		}, deps)
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("attempt %d: %v", i, err)
		}
	}

	// Correct password is now refused while the lock holds.
	_, err := ExecuteAdminLogin(context.Background(), AdminLoginInput{
		Email: "sec@cpgg.ufba.br", Password: "senha-segura", CaptchaToken: "tok",
	}, deps)
	if !errors.Is(err, ErrAccountLocked) {
		t.Errorf("ExecuteAdminLogin() after lockout = %v, want ErrAccountLocked", err)
	}
}
