package laboratory

import (
	"errors"
	"strings"
)

// Domain errors
var (
	ErrEmptyAcronym = errors.New("laboratory acronym is required")
	ErrEmptyName    = errors.New("laboratory name is required")
)

// Laboratory holds the contact configuration of a research laboratory.
// ChiefEmail is the recipient for equipment loan notifications; when empty,
// dispatch falls back to the globally configured address.
type Laboratory struct {
	ID         string
	Acronym    string
	Name       string
	ChiefName  string
	ChiefEmail string
}

// Validate checks that the Laboratory has valid data.
// PRE: Laboratory struct is populated
// POST: Returns nil if valid, error otherwise
func (l *Laboratory) Validate() error {
	if strings.TrimSpace(l.Acronym) == "" {
		return ErrEmptyAcronym
	}
	if strings.TrimSpace(l.Name) == "" {
		return ErrEmptyName
	}
	return nil
}

// DefaultLaboratories returns the laboratories the database is seeded with
// when empty. Chief contacts are left blank; they are configuration, filled
// in by the secretariat.
func DefaultLaboratories() []Laboratory {
	return []Laboratory{
		{Acronym: "LAIGA", Name: "Laboratório Integrado de Geofísica Aplicada"},
		{Acronym: "LAGEP", Name: "Laboratório de Geofísica de Exploração de Petróleo"},
		{Acronym: "LAMOD", Name: "Laboratório de Modelagem"},
	}
}
