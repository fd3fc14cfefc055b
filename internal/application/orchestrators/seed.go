package orchestrators

import (
	"context"
	"log/slog"
	"strings"
	"time"

	accountDomain "cpgg/internal/domain/account"
	"cpgg/internal/domain/admin"
	"cpgg/internal/domain/laboratory"
	"cpgg/internal/domain/roster"
)

// AccountStoreForSeed defines the account surface needed by seeding.
type AccountStoreForSeed interface {
	GetByEmail(ctx context.Context, email string) (accountDomain.Account, error)
	Save(ctx context.Context, a accountDomain.Account) error
}

// GrantStoreForSeed defines the grant surface needed by seeding.
type GrantStoreForSeed interface {
	GetByAccountID(ctx context.Context, accountID string) (admin.Grant, error)
	Save(ctx context.Context, g admin.Grant) error
}

// SeedAdmin describes one admin account to provision at startup.
// Parsed from configuration as "email:password:role".
type SeedAdmin struct {
	Email    string
	Password string
	Role     string
}

// ParseSeedAdmins parses a comma-separated "email:password:role" list.
// Malformed entries are skipped with a warning rather than aborting startup.
func ParseSeedAdmins(raw string) []SeedAdmin {
	var out []SeedAdmin
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, ":", 3)
		if len(parts) != 3 {
			slog.Warn("seed_admin_malformed", "entry", entry)
			continue
		}
		out = append(out, SeedAdmin{Email: parts[0], Password: parts[1], Role: parts[2]})
	}
	return out
}

// SeedAdminsDeps holds dependencies for SeedAdmins.
type SeedAdminsDeps struct {
	Accounts   AccountStoreForSeed
	Grants     GrantStoreForSeed
	GenerateID func() string
	Now        func() time.Time
}

// ExecuteSeedAdmins provisions the configured admin accounts and grants.
// Existing accounts are left untouched; only missing ones are created.
// PRE: seeds parsed from configuration
// POST: Every seed has an account with credentials and a role grant
func ExecuteSeedAdmins(ctx context.Context, seeds []SeedAdmin, deps SeedAdminsDeps) error {
	for _, seed := range seeds {
		if !admin.IsValidRole(seed.Role) {
			slog.Warn("seed_admin_invalid_role", "email", seed.Email, "role", seed.Role)
			continue
		}

		acct, err := deps.Accounts.GetByEmail(ctx, seed.Email)
		if err != nil {
			acct = accountDomain.Account{
				ID:        deps.GenerateID(),
				Email:     seed.Email,
				CreatedAt: deps.Now(),
			}
			if err := acct.Validate(); err != nil {
				slog.Warn("seed_admin_invalid", "email", seed.Email, "error", err)
				continue
			}
			if err := acct.SetPassword(seed.Password); err != nil {
				slog.Warn("seed_admin_bad_password", "email", seed.Email, "error", err)
				continue
			}
			if err := deps.Accounts.Save(ctx, acct); err != nil {
				return err
			}
			slog.Info("auth_event", "event", "account_seeded", "email", seed.Email)
		}

		if _, err := deps.Grants.GetByAccountID(ctx, acct.ID); err == nil {
			continue
		}
		grant := admin.Grant{
			ID:        deps.GenerateID(),
			AccountID: acct.ID,
			Email:     acct.Email,
			Role:      seed.Role,
		}
		if err := grant.Validate(); err != nil {
			slog.Warn("seed_admin_invalid_grant", "email", seed.Email, "error", err)
			continue
		}
		if err := deps.Grants.Save(ctx, grant); err != nil {
			return err
		}
		slog.Info("auth_event", "event", "grant_seeded", "email", seed.Email, "role", seed.Role)
	}
	return nil
}

// RosterStoreForSeed defines the roster surface needed by seeding.
type RosterStoreForSeed interface {
	Save(ctx context.Context, m roster.Member) error
	Count(ctx context.Context) (int, error)
}

// LaboratoryStoreForSeed defines the laboratory surface needed by seeding.
type LaboratoryStoreForSeed interface {
	Save(ctx context.Context, l laboratory.Laboratory) error
	Count(ctx context.Context) (int, error)
}

// SeedReferenceDeps holds dependencies for SeedReferenceData.
type SeedReferenceDeps struct {
	Roster       RosterStoreForSeed
	Laboratories LaboratoryStoreForSeed
	GenerateID   func() string
}

// ExecuteSeedReferenceData fills empty roster and laboratory tables with
// their defaults. Non-empty tables are never touched: the secretariat's
// edits win over the shipped defaults.
// PRE: schema migrated
// POST: Roster and laboratory tables are non-empty
func ExecuteSeedReferenceData(ctx context.Context, deps SeedReferenceDeps) error {
	n, err := deps.Roster.Count(ctx)
	if err != nil {
		return err
	}
	if n == 0 {
		for i, m := range roster.DefaultMembers() {
			m.ID = deps.GenerateID()
			m.Position = i + 1
			if err := deps.Roster.Save(ctx, m); err != nil {
				return err
			}
		}
		slog.Info("seed_event", "event", "roster_seeded", "count", len(roster.DefaultMembers()))
	}

	n, err = deps.Laboratories.Count(ctx)
	if err != nil {
		return err
	}
	if n == 0 {
		for _, l := range laboratory.DefaultLaboratories() {
			l.ID = deps.GenerateID()
			if err := deps.Laboratories.Save(ctx, l); err != nil {
				return err
			}
		}
		slog.Info("seed_event", "event", "laboratories_seeded", "count", len(laboratory.DefaultLaboratories()))
	}
	return nil
}
