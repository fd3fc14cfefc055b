package report

import (
	"regexp"
	"strings"
	"time"

	"cpgg/internal/domain/reservation"
)

// Section constants. Each report section has a fixed title, filename and
// column schema.
const (
	SectionPhysical   = "physical"
	SectionLaboratory = "laboratory"
)

// timeLayout is the display format for reservation times in reports.
const timeLayout = "02/01/2006 15:04"

// labelArtifacts match the "[LAIGA]"-style tags users paste into the name
// fields. They are stripped for presentation only; stored data is untouched.
var labelArtifacts = []*regexp.Regexp{
	regexp.MustCompile(`(?i)LAIGA\s*-\s*`),
	regexp.MustCompile(`(?i)-\s*LAIGA`),
	regexp.MustCompile(`(?i)LAIGA\s*:`),
	regexp.MustCompile(`(?i):\s*LAIGA`),
	regexp.MustCompile(`(?i)\[?LAIGA\]?`),
}

var collapseSpaces = regexp.MustCompile(`\s+`)

// Title returns the document title for a section.
func Title(section string) string {
	if section == SectionPhysical {
		return "Relatório de Reservas - Espaços Físicos - CPGG"
	}
	return "Relatório de Reservas - Laboratórios - CPGG"
}

// Filename returns the fixed download filename for a section.
func Filename(section string) string {
	if section == SectionPhysical {
		return "relatorio-espacos-fisicos.pdf"
	}
	return "relatorio-laboratorios.pdf"
}

// Columns returns the fixed column headers for a section.
func Columns(section string) []string {
	if section == SectionPhysical {
		return []string{"Nome", "Email", "Espaço", "Uso", "Início", "Término", "Status", "Solicitação"}
	}
	return []string{"Nome", "Email", "Laboratório", "Uso", "Início", "Término", "Status", "Solicitação", "Equipamento"}
}

// IsValidSection reports whether section names a known report section.
func IsValidSection(section string) bool {
	return section == SectionPhysical || section == SectionLaboratory
}

// SanitizeDisplayName strips label artifacts from a requester name and
// collapses whitespace. Presentation cleanup, not data mutation.
func SanitizeDisplayName(name string) string {
	for _, re := range labelArtifacts {
		name = re.ReplaceAllString(name, " ")
	}
	return strings.TrimSpace(collapseSpaces.ReplaceAllString(name, " "))
}

// Rows converts reservations to table rows in the section's column order.
// PRE: every reservation belongs to the section's category
// POST: returns exactly one row per reservation, in input order
func Rows(section string, reservations []reservation.Reservation) [][]string {
	rows := make([][]string, 0, len(reservations))
	for _, r := range reservations {
		row := []string{
			SanitizeDisplayName(r.RequesterName()),
			r.Email,
			reservation.KindLabel(r.Kind),
			r.Purpose,
			formatTime(r.StartTime),
			formatTime(r.EndTime),
			r.Status,
			formatTime(r.CreatedAt),
		}
		if section == SectionLaboratory {
			equipment := r.Equipment
			if equipment == "" {
				equipment = "-"
			}
			row = append(row, equipment)
		}
		rows = append(rows, row)
	}
	return rows
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(timeLayout)
}
