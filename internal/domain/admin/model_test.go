package admin

import "testing"

func TestGrantValidate(t *testing.T) {
	tests := []struct {
		name    string
		grant   Grant
		wantErr error
	}{
		{"valid", Grant{ID: "g1", AccountID: "a1", Email: "sec@cpgg.ufba.br", Role: RoleSecretaria}, nil},
		{"missing account", Grant{ID: "g1", Email: "sec@cpgg.ufba.br", Role: RoleSecretaria}, ErrEmptyAccountID},
		{"missing email", Grant{ID: "g1", AccountID: "a1", Role: RoleSecretaria}, ErrEmptyEmail},
		{"unknown role", Grant{ID: "g1", AccountID: "a1", Email: "x@y.z", Role: "gerente"}, ErrInvalidRole},
		{"wildcard is not storable", Grant{ID: "g1", AccountID: "a1", Email: "x@y.z", Role: RoleAny}, ErrInvalidRole},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.grant.Validate(); err != tt.wantErr {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestGrantSatisfies(t *testing.T) {
	g := Grant{Role: RoleSecretaria}

	tests := []struct {
		name     string
		required []string
		want     bool
	}{
		{"empty requirement accepts all", nil, true},
		{"wildcard accepts all", []string{RoleAny}, true},
		{"exact match", []string{RoleSecretaria}, true},
		{"match within set", []string{RoleCoordenacao, RoleSecretaria}, true},
		{"no match", []string{RoleCoordenacao}, false},
		{"no match within set", []string{RoleCoordenacao, RoleTI}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.Satisfies(tt.required); got != tt.want {
				t.Errorf("Satisfies(%v) = %v, want %v", tt.required, got, tt.want)
			}
		})
	}
}
