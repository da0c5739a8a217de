package feeding

import (
	"io"
	"strconv"

	"github.com/go-pdf/fpdf"
)

var (
	pdfHeaders = []string{"Kennel Number", "Feeding Date", "Fed (Morning)", "Fed (Noon)"}
	pdfWidths  = []float64{40, 50, 45, 45}
)

// ExportPDF escribe una tabla con título, header oscuro y filas alternadas.
func ExportPDF(w io.Writer, title string, logs []Log) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, true)
	pdf.SetMargins(14, 15, 14)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, title, "", 1, "L", false, 0, "")
	pdf.Ln(4)

	// header: fondo negro, texto blanco
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(0, 0, 0)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetDrawColor(200, 200, 200)
	for i, h := range pdfHeaders {
		pdf.CellFormat(pdfWidths[i], 8, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(0, 0, 0)
	for i, l := range logs {
		striped := i%2 == 1
		if striped {
			pdf.SetFillColor(245, 245, 245)
		}
		cells := []string{
			strconv.Itoa(l.KennelNumber),
			l.Date.Format(dateLayout),
			yesNo(l.MorningFed),
			yesNo(l.NoonFed),
		}
		for j, c := range cells {
			pdf.CellFormat(pdfWidths[j], 7, c, "1", 0, "C", striped, 0, "")
		}
		pdf.Ln(-1)
	}

	return pdf.Output(w)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
