package researcher

import (
	"errors"
	"strings"
	"time"
)

// Max length constants for user-editable fields.
const (
	MaxNameLength = 200
	MaxBioLength  = 20000
)

// Domain errors
var (
	ErrEmptyName   = errors.New("researcher name is required")
	ErrNameTooLong = errors.New("researcher name cannot exceed 200 characters")
	ErrBioTooLong  = errors.New("biography cannot exceed 20000 characters")
)

// Researcher is a public profile on the researchers directory. Bio is
// markdown; rendering happens at the HTTP layer.
type Researcher struct {
	ID        string
	Name      string
	Title     string
	Email     string
	Areas     string // comma-separated research areas
	Bio       string
	PhotoURL  string
	LattesURL string
	UpdatedAt time.Time
}

// Validate checks that the Researcher has valid data.
// PRE: Researcher struct is populated
// POST: Returns nil if valid, error otherwise
func (r *Researcher) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrEmptyName
	}
	if len(r.Name) > MaxNameLength {
		return ErrNameTooLong
	}
	if len(r.Bio) > MaxBioLength {
		return ErrBioTooLong
	}
	return nil
}
