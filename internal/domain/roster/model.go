package roster

import (
	"errors"
	"strings"
)

// Section constants for the three governance bodies listed on the
// coordination page.
const (
	SectionCoordination = "coordination"
	SectionScientific   = "scientific"
	SectionDeliberative = "deliberative"
)

// ValidSections contains all valid section values.
var ValidSections = []string{SectionCoordination, SectionScientific, SectionDeliberative}

// Domain errors
var (
	ErrEmptyName      = errors.New("member name is required")
	ErrInvalidSection = errors.New("section must be one of: coordination, scientific, deliberative")
)

// Member is one entry of the coordination roster. Title is optional and only
// shown for coordination-section members. Position orders members within a
// section; the page does not sort alphabetically.
type Member struct {
	ID       string
	Name     string
	Title    string
	Section  string
	Position int
}

// Validate checks that the Member has valid data.
// PRE: Member struct is populated
// POST: Returns nil if valid, error otherwise
func (m *Member) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return ErrEmptyName
	}
	if !isValidSection(m.Section) {
		return ErrInvalidSection
	}
	return nil
}

func isValidSection(section string) bool {
	for _, s := range ValidSections {
		if s == section {
			return true
		}
	}
	return false
}

// DefaultMembers returns the roster the database is seeded with when empty.
// IDs and positions are assigned by the seeding orchestrator.
func DefaultMembers() []Member {
	return []Member{
		{Name: "Marcos Alberto Rodrigues Vasconcelos", Title: "Coordenador", Section: SectionCoordination},
		{Name: "Simone Cerqueira Pereira Cruz", Title: "Coordenadora Adjunta", Section: SectionCoordination},
		{Name: "Camila Brasil da Silveira", Section: SectionScientific},
		{Name: "Edson Starteri Sampaio", Section: SectionScientific},
		{Name: "José Maria Landin Dominguez", Section: SectionScientific},
		{Name: "Luiz César Gomes Corrêa (rep. dos pesquisadores)", Section: SectionScientific},
		{Name: "Marcos Alberto Rodrigues Vasconcelos", Section: SectionScientific},
		{Name: "Milton José Porsani", Section: SectionScientific},
		{Name: "Simone Cerqueira Pereira Cruz", Section: SectionScientific},
		{Name: "Reynam da Cruz Pestana (rep. pesquisadores sêniores)", Section: SectionScientific},
		{Name: "Cristóvão de Cássio da Trindade de Brito (presidente)", Section: SectionDeliberative},
		{Name: "Frederico Vasconcelos Prudente", Section: SectionDeliberative},
		{Name: "Luiz Rogério Bastos Leal (rep. dos pesquisadores)", Section: SectionDeliberative},
		{Name: "Marcos Alberto Rodrigues Vasconcelos", Section: SectionDeliberative},
		{Name: "Simone Cerqueira Pereira Cruz", Section: SectionDeliberative},
		{Name: "Onofre H. D. J. das Flores (rep. estudantil)", Section: SectionDeliberative},
		{Name: "Leonardo Moreira Batista (suplente estudantil)", Section: SectionDeliberative},
	}
}
