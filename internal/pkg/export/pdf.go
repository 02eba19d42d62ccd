package export

import (
	"fmt"
	"io"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/report"
	"github.com/jung-kurt/gofpdf"
)

// Column widths in mm, in report.Headers order. They fit the printable width
// of a landscape A4 page with 10mm margins.
var pdfColumnWidths = []float64{24, 36, 28, 20, 16, 16, 14, 18, 22, 20, 14, 20, 19}

// WritePDF renders a landscape A4 table with a summary line above it.
func WritePDF(w io.Writer, rpt report.AttendanceReport) error {
	pdf := buildPDF(rpt)
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render pdf: %w", err)
	}
	return nil
}

func buildPDF(rpt report.AttendanceReport) *gofpdf.Fpdf {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.SetAutoPageBreak(true, 10)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, fmt.Sprintf("Attendance Report %s", rpt.Summary.Month))
	pdf.Ln(10)

	s := rpt.Summary
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Records: %d   Present: %d   Absent: %d   On leave: %d   Late: %d   Avg hours: %.2f",
		s.TotalRecords, s.TotalPresent, s.TotalAbsent, s.TotalOnLeave, s.TotalLate, s.AvgWorkHours))
	pdf.Ln(10)

	header := func() {
		pdf.SetFont("Helvetica", "B", 8)
		pdf.SetFillColor(68, 114, 196)
		pdf.SetTextColor(255, 255, 255)
		for i, h := range report.Headers {
			pdf.CellFormat(pdfColumnWidths[i], 7, h, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 8)
		pdf.SetTextColor(0, 0, 0)
	}
	header()

	_, pageHeight := pdf.GetPageSize()
	for _, row := range rpt.Records {
		if pdf.GetY()+6 > pageHeight-10 {
			pdf.AddPage()
			header()
		}
		for i, cell := range row.Record() {
			pdf.CellFormat(pdfColumnWidths[i], 6, cell, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	if len(rpt.Records) == 0 {
		pdf.Ln(4)
		pdf.Cell(0, 6, "No attendance records for this period.")
	}

	return pdf
}
