package export

import (
	"io"
	"time"

	"github.com/go-pdf/fpdf"

	"worktime/internal/domain"
	"worktime/internal/i18n"
)

const (
	pdfMarginLeft = 14.0
	pdfRowHeight  = 7.0
)

// column widths in mm; sums to the A4 printable width with 14mm margins
var pdfColumns = []float64{22, 16, 16, 22, 30, 46, 30}

// WritePDF renders an A4 report with a title, the export date and one table
// whose footer holds the total worked hours.
func WritePDF(w io.Writer, entries []domain.TimeEntry, labels i18n.Labels, now time.Time) error {
	if len(entries) == 0 {
		return ErrNothingToExport
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMarginLeft, 14, pdfMarginLeft)
	pdf.SetAutoPageBreak(true, 14)
	pdf.SetCreationDate(now)
	pdf.SetTitle(labels.PDFTitle, true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()

	pdf.SetFont("Helvetica", "", 18)
	pdf.Text(pdfMarginLeft, 20, tr(labels.PDFTitle))
	pdf.SetFont("Helvetica", "", 10)
	pdf.Text(pdfMarginLeft, 30, tr(labels.GeneratedOn+" "+now.Format(dateLayout)))

	pdf.SetY(40)
	writeHeader := func() {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(66, 66, 66)
		pdf.SetTextColor(255, 255, 255)
		for i, h := range labels.PDFHeader {
			pdf.CellFormat(pdfColumns[i], pdfRowHeight, tr(h), "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(0, 0, 0)
	}
	pdf.SetHeaderFunc(func() {
		if pdf.PageNo() > 1 {
			writeHeader()
		}
	})
	writeHeader()

	for _, e := range entries {
		r := FormatRow(e)
		cells := r.Fields()
		cells[6] = r.WorkedHours + " " + labels.HoursSuffix
		for i, c := range cells {
			pdf.CellFormat(pdfColumns[i], pdfRowHeight, tr(fit(pdf, c, pdfColumns[i])), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(220, 220, 220)
	footer := make([]string, len(pdfColumns))
	footer[5] = labels.TotalLabel
	footer[6] = FormatHours(totalHours(entries)) + " " + labels.HoursSuffix
	for i, c := range footer {
		pdf.CellFormat(pdfColumns[i], pdfRowHeight, tr(c), "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	return pdf.Output(w)
}

// fit truncates s so it fits into a cell of width mm
func fit(pdf *fpdf.Fpdf, s string, width float64) string {
	limit := width - 2*pdf.GetCellMargin()
	if pdf.GetStringWidth(s) <= limit {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && pdf.GetStringWidth(string(runes)+"...") > limit {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}
