package report

import (
	"testing"
	"time"

	"cpgg/internal/domain/reservation"
)

func TestSanitizeDisplayName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"clean name untouched", "Ana Souza", "Ana Souza"},
		{"bracket tag", "[LAIGA] Ana Souza", "Ana Souza"},
		{"lowercase tag", "[laiga] Ana Souza", "Ana Souza"},
		{"dash prefix", "LAIGA - Ana Souza", "Ana Souza"},
		{"dash suffix", "Ana Souza - LAIGA", "Ana Souza"},
		{"colon prefix", "LAIGA: Ana Souza", "Ana Souza"},
		{"collapses whitespace", "Ana   Souza", "Ana Souza"},
		{"tag in the middle", "Ana [LAIGA] Souza", "Ana Souza"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeDisplayName(tt.in); got != tt.want {
				t.Errorf("SanitizeDisplayName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestTitlesAndFilenames(t *testing.T) {
	if got := Title(SectionPhysical); got != "Relatório de Reservas - Espaços Físicos - CPGG" {
		t.Errorf("Title(physical) = %q", got)
	}
	if got := Title(SectionLaboratory); got != "Relatório de Reservas - Laboratórios - CPGG" {
		t.Errorf("Title(laboratory) = %q", got)
	}
	if got := Filename(SectionPhysical); got != "relatorio-espacos-fisicos.pdf" {
		t.Errorf("Filename(physical) = %q", got)
	}
	if got := Filename(SectionLaboratory); got != "relatorio-laboratorios.pdf" {
		t.Errorf("Filename(laboratory) = %q", got)
	}
}

func TestRowsMatchColumnSchema(t *testing.T) {
	reservations := []reservation.Reservation{
		{
			FirstName: "Ana", LastName: "Souza", Email: "ana@example.com",
			Purpose: "Ensaios", Kind: reservation.KindLaigaEquipment,
			Equipment: "Sismógrafo",
			StartTime: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
			EndTime:   time.Date(2026, 3, 12, 18, 0, 0, 0, time.UTC),
			Status:    reservation.StatusAprovada,
			CreatedAt: time.Date(2026, 3, 1, 8, 30, 0, 0, time.UTC),
		},
		{
			FirstName: "[LAIGA] Bruno", Email: "bruno@example.com",
			Purpose: "Campo", Kind: reservation.KindLagep,
			StartTime: time.Date(2026, 4, 2, 8, 0, 0, 0, time.UTC),
			EndTime:   time.Date(2026, 4, 2, 17, 0, 0, 0, time.UTC),
			Status:    reservation.StatusPendente,
			CreatedAt: time.Date(2026, 3, 20, 10, 0, 0, 0, time.UTC),
		},
	}

	for _, section := range []string{SectionPhysical, SectionLaboratory} {
		t.Run(section, func(t *testing.T) {
			cols := Columns(section)
			rows := Rows(section, reservations)
			if len(rows) != len(reservations) {
				t.Fatalf("got %d rows, want %d", len(rows), len(reservations))
			}
			for i, row := range rows {
				if len(row) != len(cols) {
					t.Errorf("row %d has %d cells, want %d", i, len(row), len(cols))
				}
				for j, cell := range row {
					if cell == "" {
						t.Errorf("row %d column %q is empty", i, cols[j])
					}
				}
			}
		})
	}
}

func TestRowsSanitizesNames(t *testing.T) {
	rows := Rows(SectionLaboratory, []reservation.Reservation{{
		FirstName: "[LAIGA] Bruno", Email: "b@x.y", Purpose: "p",
		Kind:      reservation.KindLaigaEquipment,
		StartTime: time.Now(), EndTime: time.Now(),
		Status: reservation.StatusPendente, CreatedAt: time.Now(),
	}})
	if rows[0][0] != "Bruno" {
		t.Errorf("name cell = %q, want %q", rows[0][0], "Bruno")
	}
}

func TestRowsBlankEquipmentPlaceholder(t *testing.T) {
	rows := Rows(SectionLaboratory, []reservation.Reservation{{
		FirstName: "Ana", Email: "a@x.y", Purpose: "p",
		Kind:      reservation.KindLamod,
		StartTime: time.Now(), EndTime: time.Now(),
		Status: reservation.StatusPendente, CreatedAt: time.Now(),
	}})
	if got := rows[0][len(rows[0])-1]; got != "-" {
		t.Errorf("equipment cell = %q, want %q", got, "-")
	}
}
