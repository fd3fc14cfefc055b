package orchestrators

import (
	"context"
	"testing"

	"cpgg/internal/adapters/pdf"
	"cpgg/internal/domain/reservation"
)

type mockRenderer struct {
	lastInput pdf.ReportInput
}

func (m *mockRenderer) Build(in pdf.ReportInput) ([]byte, error) {
	m.lastInput = in
	return []byte("%PDF-fake"), nil
}

func TestExportReportSelectsSectionKinds(t *testing.T) {
	store := newMockReservationStore()
	store.byID["p1"] = storedReservation("p1", reservation.KindAuditorio)
	store.byID["l1"] = storedReservation("l1", reservation.KindLaigaEquipment)
	store.byID["l2"] = storedReservation("l2", reservation.KindLamod)

	renderer := &mockRenderer{}
	deps := ExportReportDeps{Reservations: store, Renderer: renderer, Now: fixedNow}

	result, err := ExecuteExportReport(context.Background(), ExportReportInput{Section: "laboratory"}, deps)
	if err != nil {
		t.Fatalf("ExecuteExportReport() = %v", err)
	}
	if result.Filename != "relatorio-laboratorios.pdf" {
		t.Errorf("filename = %q", result.Filename)
	}
	if len(renderer.lastInput.Rows) != 2 {
		t.Errorf("rendered %d rows, want 2 laboratory reservations", len(renderer.lastInput.Rows))
	}
}

func TestExportReportPassesChart(t *testing.T) {
	renderer := &mockRenderer{}
	deps := ExportReportDeps{Reservations: newMockReservationStore(), Renderer: renderer, Now: fixedNow}

	chart := []byte{0x89, 'P', 'N', 'G'}
	if _, err := ExecuteExportReport(context.Background(), ExportReportInput{
		Section: "physical", ChartPNG: chart,
	}, deps); err != nil {
		t.Fatalf("ExecuteExportReport() = %v", err)
	}
	if len(renderer.lastInput.ChartPNG) != len(chart) {
		t.Error("chart snapshot not forwarded to renderer")
	}
}

func TestExportReportRejectsUnknownSection(t *testing.T) {
	deps := ExportReportDeps{Reservations: newMockReservationStore(), Renderer: &mockRenderer{}, Now: fixedNow}
	if _, err := ExecuteExportReport(context.Background(), ExportReportInput{Section: "finance"}, deps); err == nil {
		t.Error("unknown section accepted")
	}
}
