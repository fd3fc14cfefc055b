package admin

import "errors"

// Role constants. Roles are coarse permission labels matching the three
// administrative areas of the center.
const (
	RoleCoordenacao = "coordenacao"
	RoleSecretaria  = "secretaria"
	RoleTI          = "ti"
)

// RoleAny is the wildcard used by areas that accept any admin role.
const RoleAny = "any"

// ValidRoles contains all valid role values.
var ValidRoles = []string{RoleCoordenacao, RoleSecretaria, RoleTI}

// Domain errors
var (
	ErrEmptyAccountID = errors.New("account_id is required")
	ErrEmptyEmail     = errors.New("email is required")
	ErrInvalidRole    = errors.New("role must be one of: coordenacao, secretaria, ti")
)

// Grant links an account to an administrative role. An account without a
// grant can authenticate but is denied access to every admin area.
type Grant struct {
	ID        string
	AccountID string
	Email     string
	Role      string
}

// Validate checks that the Grant has valid data.
// PRE: Grant struct is populated
// POST: Returns nil if valid, error otherwise
func (g *Grant) Validate() error {
	if g.AccountID == "" {
		return ErrEmptyAccountID
	}
	if g.Email == "" {
		return ErrEmptyEmail
	}
	if !IsValidRole(g.Role) {
		return ErrInvalidRole
	}
	return nil
}

// Satisfies reports whether the grant's role meets a role requirement.
// A requirement is a set of acceptable roles; an empty set or a set
// containing RoleAny accepts every valid role.
// INVARIANT: Grant fields are not mutated
func (g *Grant) Satisfies(required []string) bool {
	if len(required) == 0 {
		return true
	}
	for _, r := range required {
		if r == RoleAny || r == g.Role {
			return true
		}
	}
	return false
}

// IsValidRole reports whether role is a known admin role.
func IsValidRole(role string) bool {
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}
