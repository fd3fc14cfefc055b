package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"cpgg/internal/domain/reservation"
)

// ReceiptBuilder renders LAIGA equipment loan receipts. The receipt is
// attached to the notification email sent to the laboratory chief.
type ReceiptBuilder struct{}

// NewReceiptBuilder creates a ReceiptBuilder.
func NewReceiptBuilder() *ReceiptBuilder {
	return &ReceiptBuilder{}
}

// Build renders a one-page portrait A4 receipt for an equipment loan.
// PRE: r is a validated laboratory-kind reservation
// POST: Returns the PDF bytes
func (b *ReceiptBuilder) Build(r reservation.Reservation) ([]byte, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	tr := doc.UnicodeTranslatorFromDescriptor("")
	doc.SetMargins(20, 20, 20)
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 16)
	doc.CellFormat(0, 10, tr("Comprovante de Empréstimo de Equipamento"), "", 1, "C", false, 0, "")
	doc.SetFont("Helvetica", "", 11)
	doc.CellFormat(0, 7, tr("Centro de Pesquisa em Geofísica e Geologia - UFBA"), "", 1, "C", false, 0, "")
	doc.Ln(8)

	field := func(label, value string) {
		doc.SetFont("Helvetica", "B", 10)
		doc.CellFormat(50, 8, tr(label), "", 0, "L", false, 0, "")
		doc.SetFont("Helvetica", "", 10)
		doc.MultiCell(0, 8, tr(value), "", "L", false)
	}

	equipment := r.Equipment
	if equipment == "" {
		equipment = "-"
	}

	field("Protocolo:", r.ID)
	field("Solicitante:", r.RequesterName())
	field("Email:", r.Email)
	field("Laboratório:", reservation.KindLabel(r.Kind))
	field("Equipamento:", equipment)
	field("Finalidade:", r.Purpose)
	field("Retirada:", r.StartTime.Format("02/01/2006 15:04"))
	field("Devolução:", r.EndTime.Format("02/01/2006 15:04"))
	field("Solicitado em:", r.CreatedAt.Format("02/01/2006 15:04"))

	doc.Ln(25)
	doc.SetFont("Helvetica", "", 10)
	doc.CellFormat(80, 8, "_________________________________", "", 0, "C", false, 0, "")
	doc.CellFormat(10, 8, "", "", 0, "C", false, 0, "")
	doc.CellFormat(80, 8, "_________________________________", "", 1, "C", false, 0, "")
	doc.CellFormat(80, 6, tr("Solicitante"), "", 0, "C", false, 0, "")
	doc.CellFormat(10, 6, "", "", 0, "C", false, 0, "")
	doc.CellFormat(80, 6, tr("Responsável pelo laboratório"), "", 1, "C", false, 0, "")

	doc.Ln(10)
	doc.SetFont("Helvetica", "I", 8)
	doc.SetTextColor(120, 120, 120)
	doc.CellFormat(0, 5, tr(fmt.Sprintf("Emitido em %s", time.Now().Format("02/01/2006 15:04"))),
		"", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render receipt pdf: %w", err)
	}
	return buf.Bytes(), nil
}
