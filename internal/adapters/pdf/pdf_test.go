package pdf

import (
	"bytes"
	"testing"
	"time"

	"cpgg/internal/domain/report"
	"cpgg/internal/domain/reservation"
)

func sampleRows(n int) [][]string {
	rows := make([][]string, n)
	for i := range rows {
		rows[i] = []string{
			"Ana Souza", "ana@example.com", "Auditório", "Defesa",
			"10/03/2026 09:00", "10/03/2026 12:00", "pendente", "01/03/2026 08:00",
		}
	}
	return rows
}

func TestReportBuild(t *testing.T) {
	b := NewReportBuilder()

	out, err := b.Build(ReportInput{
		Section:     report.SectionPhysical,
		Rows:        sampleRows(3),
		GeneratedAt: time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("Build() = %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Errorf("output does not start with %%PDF header")
	}
}

func TestReportBuildManyRowsPaginates(t *testing.T) {
	b := NewReportBuilder()

	small, err := b.Build(ReportInput{Section: report.SectionPhysical, Rows: sampleRows(2)})
	if err != nil {
		t.Fatalf("Build(small) = %v", err)
	}
	large, err := b.Build(ReportInput{Section: report.SectionPhysical, Rows: sampleRows(200)})
	if err != nil {
		t.Fatalf("Build(large) = %v", err)
	}
	if len(large) <= len(small) {
		t.Errorf("200-row report (%d bytes) not larger than 2-row report (%d bytes)", len(large), len(small))
	}
}

func TestReportBuildRejectsUnknownSection(t *testing.T) {
	b := NewReportBuilder()
	if _, err := b.Build(ReportInput{Section: "finance"}); err == nil {
		t.Error("Build() accepted unknown section")
	}
}

func TestReceiptBuild(t *testing.T) {
	b := NewReceiptBuilder()

	out, err := b.Build(reservation.Reservation{
		ID:        "res-42",
		FirstName: "Ana",
		LastName:  "Souza",
		Email:     "ana@example.com",
		Purpose:   "Levantamento de campo",
		Kind:      reservation.KindLaigaEquipment,
		Equipment: "Sismógrafo Geode",
		StartTime: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 3, 12, 18, 0, 0, 0, time.UTC),
		Status:    reservation.StatusAprovada,
		CreatedAt: time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("Build() = %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Errorf("output does not start with %%PDF header")
	}
}
