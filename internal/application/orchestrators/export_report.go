package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"cpgg/internal/adapters/pdf"
	"cpgg/internal/domain/report"
	"cpgg/internal/domain/reservation"
)

// ReservationStoreForExport defines the store surface needed by the export.
type ReservationStoreForExport interface {
	ListByKinds(ctx context.Context, kinds []string) ([]reservation.Reservation, error)
}

// ReportRenderer renders a report input into PDF bytes.
type ReportRenderer interface {
	Build(in pdf.ReportInput) ([]byte, error)
}

// ExportReportInput selects the report section and carries the optional
// chart snapshot uploaded by the dashboard.
type ExportReportInput struct {
	Section  string
	ChartPNG []byte
}

// ExportReportResult carries the rendered document.
type ExportReportResult struct {
	Filename string
	PDF      []byte
}

// ExportReportDeps holds dependencies for ExportReport.
type ExportReportDeps struct {
	Reservations ReservationStoreForExport
	Renderer     ReportRenderer
	Now          func() time.Time
}

// ExecuteExportReport renders the reservation report for one section.
// PRE: Section is physical or laboratory
// POST: Returns the PDF and its fixed download filename
// INVARIANT: every reservation of the section appears as exactly one row
func ExecuteExportReport(ctx context.Context, input ExportReportInput, deps ExportReportDeps) (ExportReportResult, error) {
	if !report.IsValidSection(input.Section) {
		return ExportReportResult{}, reservation.ErrInvalidKind
	}

	kinds := reservation.PhysicalKinds
	if input.Section == report.SectionLaboratory {
		kinds = reservation.LaboratoryKinds
	}

	list, err := deps.Reservations.ListByKinds(ctx, kinds)
	if err != nil {
		return ExportReportResult{}, err
	}

	out, err := deps.Renderer.Build(pdf.ReportInput{
		Section:     input.Section,
		Rows:        report.Rows(input.Section, list),
		ChartPNG:    input.ChartPNG,
		GeneratedAt: deps.Now(),
	})
	if err != nil {
		return ExportReportResult{}, err
	}

	slog.Info("report_event", "event", "report_exported", "section", input.Section, "rows", len(list), "bytes", len(out))
	return ExportReportResult{
		Filename: report.Filename(input.Section),
		PDF:      out,
	}, nil
}
