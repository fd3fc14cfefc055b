package orchestrators

import (
	"context"
	"testing"

	"cpgg/internal/domain/admin"
	"cpgg/internal/domain/laboratory"
	"cpgg/internal/domain/roster"
)

func TestParseSeedAdmins(t *testing.T) {
	seeds := ParseSeedAdmins("a@x.y:senha1:coordenacao, b@x.y:senha2:ti, malformed, c@x.y:senha3")
	if len(seeds) != 2 {
		t.Fatalf("parsed %d seeds, want 2", len(seeds))
	}
	if seeds[0].Email != "a@x.y" || seeds[0].Role != admin.RoleCoordenacao {
		t.Errorf("seeds[0] = %+v", seeds[0])
	}
}

func TestSeedAdminsIdempotent(t *testing.T) {
	accounts := &mockAccountStore{}
	grants := &mockGrantStore{}
	deps := SeedAdminsDeps{
		Accounts: accounts, Grants: grants,
		GenerateID: newIDGen(), Now: fixedNow,
	}
	seeds := []SeedAdmin{{Email: "sec@cpgg.ufba.br", Password: "senha-segura", Role: admin.RoleSecretaria}}

	if err := ExecuteSeedAdmins(context.Background(), seeds, deps); err != nil {
		t.Fatalf("first seed: %v", err)
	}
	if err := ExecuteSeedAdmins(context.Background(), seeds, deps); err != nil {
		t.Fatalf("second seed: %v", err)
	}

	if len(accounts.accounts) != 1 {
		t.Errorf("accounts = %d, want 1", len(accounts.accounts))
	}
	if len(grants.saved) != 1 {
		t.Errorf("grants saved %d times, want 1", len(grants.saved))
	}
	acct := accounts.accounts["sec@cpgg.ufba.br"]
	if acct.PasswordHash == "" || acct.PasswordHash == "senha-segura" {
		t.Error("password not hashed")
	}
}

func TestSeedAdminsSkipsInvalidRole(t *testing.T) {
	accounts := &mockAccountStore{}
	deps := SeedAdminsDeps{
		Accounts: accounts, Grants: &mockGrantStore{},
		GenerateID: newIDGen(), Now: fixedNow,
	}
	seeds := []SeedAdmin{{Email: "x@y.z", Password: "senha", Role: "gerente"}}

	if err := ExecuteSeedAdmins(context.Background(), seeds, deps); err != nil {
		t.Fatalf("ExecuteSeedAdmins() = %v", err)
	}
	if len(accounts.accounts) != 0 {
		t.Error("account created for invalid role")
	}
}

type mockRosterSeedStore struct {
	members []roster.Member
}

func (m *mockRosterSeedStore) Save(_ context.Context, member roster.Member) error {
	m.members = append(m.members, member)
	return nil
}

func (m *mockRosterSeedStore) Count(_ context.Context) (int, error) {
	return len(m.members), nil
}

type mockLabSeedStore struct {
	labs []laboratory.Laboratory
}

func (m *mockLabSeedStore) Save(_ context.Context, l laboratory.Laboratory) error {
	m.labs = append(m.labs, l)
	return nil
}

func (m *mockLabSeedStore) Count(_ context.Context) (int, error) {
	return len(m.labs), nil
}

func TestSeedReferenceDataOnlyWhenEmpty(t *testing.T) {
	rosterStore := &mockRosterSeedStore{}
	labStore := &mockLabSeedStore{}
	deps := SeedReferenceDeps{
		Roster: rosterStore, Laboratories: labStore, GenerateID: newIDGen(),
	}

	if err := ExecuteSeedReferenceData(context.Background(), deps); err != nil {
		t.Fatalf("ExecuteSeedReferenceData() = %v", err)
	}
	if len(rosterStore.members) != len(roster.DefaultMembers()) {
		t.Errorf("seeded %d members, want %d", len(rosterStore.members), len(roster.DefaultMembers()))
	}
	if len(labStore.labs) != 3 {
		t.Errorf("seeded %d laboratories, want 3", len(labStore.labs))
	}
	if rosterStore.members[0].Position != 1 {
		t.Errorf("first member position = %d, want 1", rosterStore.members[0].Position)
	}

	// Second run is a no-op: tables are non-empty.
	before := len(rosterStore.members)
	if err := ExecuteSeedReferenceData(context.Background(), deps); err != nil {
		t.Fatalf("second run: %v", err)
	}
	if len(rosterStore.members) != before {
		t.Error("non-empty roster reseeded")
	}
}
