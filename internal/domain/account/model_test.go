package account

import (
	"testing"
	"time"
)

func TestAccountValidate(t *testing.T) {
	tests := []struct {
		name    string
		account Account
		wantErr error
	}{
		{"valid", Account{ID: "a1", Email: "sec@cpgg.ufba.br"}, nil},
		{"empty email", Account{ID: "a1", Email: "   "}, ErrEmptyEmail},
		{"email without at sign", Account{ID: "a1", Email: "sec.cpgg.ufba.br"}, ErrInvalidEmail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.account.Validate(); err != tt.wantErr {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSetAndCheckPassword(t *testing.T) {
	a := Account{ID: "a1", Email: "sec@cpgg.ufba.br"}

	if err := a.SetPassword(""); err != ErrEmptyPassword {
		t.Errorf("SetPassword(empty) = %v, want ErrEmptyPassword", err)
	}
	if err := a.SetPassword("abc"); err != ErrPasswordTooShort {
		t.Errorf("SetPassword(short) = %v, want ErrPasswordTooShort", err)
	}

	if err := a.SetPassword("correct-horse"); err != nil {
		t.Fatalf("SetPassword() = %v, want nil", err)
	}
	if a.PasswordHash == "" || a.PasswordHash == "correct-horse" {
		t.Fatalf("PasswordHash not hashed: %q", a.PasswordHash)
	}

	if err := a.CheckPassword("correct-horse"); err != nil {
		t.Errorf("CheckPassword(correct) = %v, want nil", err)
	}
	if err := a.CheckPassword("wrong"); err != ErrWrongPassword {
		t.Errorf("CheckPassword(wrong) = %v, want ErrWrongPassword", err)
	}
}

func TestCheckPasswordWithoutHash(t *testing.T) {
	a := Account{ID: "a1", Email: "sec@cpgg.ufba.br"}
	if err := a.CheckPassword("anything"); err != ErrWrongPassword {
		t.Errorf("CheckPassword() on empty hash = %v, want ErrWrongPassword", err)
	}
}

func TestLockout(t *testing.T) {
	a := Account{ID: "a1", Email: "sec@cpgg.ufba.br"}

	for i := 0; i < 4; i++ {
		a.RecordFailedLogin()
	}
	if a.IsLocked() {
		t.Fatal("locked after 4 failures, want unlocked")
	}

	a.RecordFailedLogin()
	if !a.IsLocked() {
		t.Fatal("not locked after 5 failures")
	}

	a.ResetFailedLogins()
	if a.IsLocked() || a.FailedLogins != 0 {
		t.Errorf("after reset: locked=%v failures=%d", a.IsLocked(), a.FailedLogins)
	}
}

func TestIsLockedExpired(t *testing.T) {
	a := Account{LockedUntil: time.Now().Add(-time.Minute)}
	if a.IsLocked() {
		t.Error("expired lock still reported as locked")
	}
}
