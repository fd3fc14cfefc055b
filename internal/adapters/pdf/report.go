package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"cpgg/internal/domain/report"
)

// Page geometry for A4 landscape, in millimeters.
const (
	pageWidth  = 297.0
	pageHeight = 210.0
	margin     = 10.0
	rowHeight  = 7.0
)

// ReportInput carries everything needed to render one report document.
type ReportInput struct {
	Section     string
	Rows        [][]string
	ChartPNG    []byte // optional dashboard chart snapshot
	GeneratedAt time.Time
}

// ReportBuilder renders reservation reports as PDF documents.
type ReportBuilder struct{}

// NewReportBuilder creates a ReportBuilder.
func NewReportBuilder() *ReportBuilder {
	return &ReportBuilder{}
}

// columnWeights returns relative widths matching the section's column schema.
func columnWeights(section string) []float64 {
	if section == report.SectionPhysical {
		return []float64{1.3, 1.5, 0.9, 1.5, 0.9, 0.9, 0.7, 0.9}
	}
	return []float64{1.2, 1.4, 0.8, 1.3, 0.8, 0.8, 0.6, 0.8, 0.9}
}

// Build renders the report: a title page (with the chart snapshot when
// provided) followed by a paginated table with repeated headers.
// PRE: in.Section is a valid report section; rows match the section's schema
// POST: Returns the PDF bytes
func (b *ReportBuilder) Build(in ReportInput) ([]byte, error) {
	if !report.IsValidSection(in.Section) {
		return nil, fmt.Errorf("unknown report section %q", in.Section)
	}

	doc := fpdf.New("L", "mm", "A4", "")
	tr := doc.UnicodeTranslatorFromDescriptor("")
	doc.SetMargins(margin, margin, margin)
	doc.SetAutoPageBreak(false, margin)
	doc.AliasNbPages("")

	generated := in.GeneratedAt
	if generated.IsZero() {
		generated = time.Now()
	}
	doc.SetFooterFunc(func() {
		doc.SetY(pageHeight - margin)
		doc.SetFont("Helvetica", "", 8)
		doc.SetTextColor(120, 120, 120)
		doc.CellFormat(0, 5, tr(fmt.Sprintf("Gerado em %s", generated.Format("02/01/2006 15:04"))),
			"", 0, "L", false, 0, "")
		doc.SetX(-40)
		doc.CellFormat(30, 5, tr(fmt.Sprintf("Página %d de {nb}", doc.PageNo())),
			"", 0, "R", false, 0, "")
	})

	b.titlePage(doc, tr, in)
	b.tablePages(doc, tr, in)

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render report pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// titlePage renders the document title and, when present, the chart snapshot
// scaled to fit the content width and at most 60% of the page height.
func (b *ReportBuilder) titlePage(doc *fpdf.Fpdf, tr func(string) string, in ReportInput) {
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 18)
	doc.SetTextColor(20, 20, 20)
	doc.SetY(margin + 10)
	doc.CellFormat(0, 10, tr(report.Title(in.Section)), "", 1, "C", false, 0, "")

	doc.SetFont("Helvetica", "", 11)
	doc.SetTextColor(80, 80, 80)
	doc.CellFormat(0, 7, tr(fmt.Sprintf("%d reservas", len(in.Rows))), "", 1, "C", false, 0, "")

	if len(in.ChartPNG) == 0 {
		b.statusChart(doc, tr, in.Rows)
		return
	}

	name := "chart-" + in.Section
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	info := doc.RegisterImageOptionsReader(name, opts, bytes.NewReader(in.ChartPNG))
	if info == nil || info.Width() <= 0 || info.Height() <= 0 {
		return
	}

	maxW := pageWidth - 2*margin
	maxH := (pageHeight - 2*margin) * 0.6
	w := maxW
	h := w * info.Height() / info.Width()
	if h > maxH {
		h = maxH
		w = h * info.Width() / info.Height()
	}
	x := (pageWidth - w) / 2
	doc.ImageOptions(name, x, doc.GetY()+8, w, h, false, opts, 0, "")
}

// statusColumn is the index of the Status cell in both section schemas.
const statusColumn = 6

// statusChart draws a bar chart of reservations per status. Fallback for
// exports submitted without a dashboard snapshot.
func (b *ReportBuilder) statusChart(doc *fpdf.Fpdf, tr func(string) string, rows [][]string) {
	if len(rows) == 0 {
		return
	}

	statuses := []string{"pendente", "aprovada", "rejeitada"}
	colors := [][3]int{{234, 179, 8}, {34, 197, 94}, {239, 68, 68}}
	counts := make([]int, len(statuses))
	max := 1
	for _, row := range rows {
		for i, s := range statuses {
			if len(row) > statusColumn && row[statusColumn] == s {
				counts[i]++
				if counts[i] > max {
					max = counts[i]
				}
			}
		}
	}

	const (
		barWidth = 40.0
		gap      = 20.0
		chartH   = 80.0
		labelH   = 6.0
	)
	totalW := float64(len(statuses))*barWidth + float64(len(statuses)-1)*gap
	x0 := (pageWidth - totalW) / 2
	baseY := doc.GetY() + 18 + chartH

	doc.SetDrawColor(180, 180, 180)
	doc.Line(x0-5, baseY, x0+totalW+5, baseY)

	for i, s := range statuses {
		h := chartH * float64(counts[i]) / float64(max)
		x := x0 + float64(i)*(barWidth+gap)
		doc.SetFillColor(colors[i][0], colors[i][1], colors[i][2])
		doc.Rect(x, baseY-h, barWidth, h, "F")

		doc.SetFont("Helvetica", "B", 10)
		doc.SetTextColor(30, 30, 30)
		doc.SetXY(x, baseY-h-labelH)
		doc.CellFormat(barWidth, labelH, fmt.Sprintf("%d", counts[i]), "", 0, "C", false, 0, "")

		doc.SetFont("Helvetica", "", 9)
		doc.SetTextColor(80, 80, 80)
		doc.SetXY(x, baseY+2)
		doc.CellFormat(barWidth, labelH, tr(s), "", 0, "C", false, 0, "")
	}
}

// tablePages renders the reservation grid, repeating the header row on every
// page break.
func (b *ReportBuilder) tablePages(doc *fpdf.Fpdf, tr func(string) string, in ReportInput) {
	columns := report.Columns(in.Section)
	widths := scaledWidths(columnWeights(in.Section))

	doc.AddPage()
	writeHeader(doc, tr, columns, widths)

	for _, row := range in.Rows {
		if doc.GetY()+rowHeight > pageHeight-margin-8 {
			doc.AddPage()
			writeHeader(doc, tr, columns, widths)
		}
		doc.SetFont("Helvetica", "", 8)
		doc.SetTextColor(30, 30, 30)
		for i, cell := range row {
			doc.CellFormat(widths[i], rowHeight, tr(fitCell(doc, cell, widths[i])),
				"1", 0, "L", false, 0, "")
		}
		doc.Ln(rowHeight)
	}
}

// writeHeader renders the bold header row.
func writeHeader(doc *fpdf.Fpdf, tr func(string) string, columns []string, widths []float64) {
	doc.SetFont("Helvetica", "B", 8)
	doc.SetFillColor(230, 230, 230)
	doc.SetTextColor(20, 20, 20)
	for i, col := range columns {
		doc.CellFormat(widths[i], rowHeight, tr(col), "1", 0, "C", true, 0, "")
	}
	doc.Ln(rowHeight)
}

// scaledWidths converts relative weights into absolute column widths that
// exactly fill the usable page width.
func scaledWidths(weights []float64) []float64 {
	var total float64
	for _, w := range weights {
		total += w
	}
	usable := pageWidth - 2*margin
	widths := make([]float64, len(weights))
	for i, w := range weights {
		widths[i] = usable * w / total
	}
	return widths
}

// fitCell truncates text so it fits the cell width, appending an ellipsis.
func fitCell(doc *fpdf.Fpdf, text string, width float64) string {
	limit := width - 2 // cell padding
	if doc.GetStringWidth(text) <= limit {
		return text
	}
	runes := []rune(text)
	for len(runes) > 0 && doc.GetStringWidth(string(runes)+"...") > limit {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}
