package export

import (
	"fmt"
	"io"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/report"
	"github.com/xuri/excelize/v2"
)

const (
	attendanceSheet = "Attendance"
	summarySheet    = "Summary"
)

// WriteXLSX writes a workbook with the attendance rows on one sheet and the
// summary counts on another.
func WriteXLSX(w io.Writer, rpt report.AttendanceReport) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", attendanceSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	if err := f.SetSheetRow(attendanceSheet, "A1", &report.Headers); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	lastCol, _ := excelize.ColumnNumberToName(len(report.Headers))
	if err := f.SetCellStyle(attendanceSheet, "A1", lastCol+"1", headerStyle); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	for i, row := range rpt.Records {
		values := []interface{}{
			row.EmployeeCode,
			row.EmployeeName,
			row.Department,
			row.Date,
			row.ClockIn,
			row.ClockOut,
			row.TotalWorkHours,
			row.BreakMinutes,
			row.OvertimeMinutes,
			row.Status,
			row.IsLate,
			row.LateByMinutes,
			row.IsApproved,
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(attendanceSheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}
	f.SetColWidth(attendanceSheet, "A", "A", 16)
	f.SetColWidth(attendanceSheet, "B", "C", 24)
	f.SetColWidth(attendanceSheet, "D", lastCol, 14)

	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}
	s := rpt.Summary
	summary := [][]interface{}{
		{"Metric", "Value"},
		{"Month", s.Month},
		{"Total Records", s.TotalRecords},
		{"Total Present", s.TotalPresent},
		{"Total Absent", s.TotalAbsent},
		{"Total On Leave", s.TotalOnLeave},
		{"Total Late", s.TotalLate},
		{"Average Work Hours", s.AvgWorkHours},
	}
	for i, line := range summary {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(summarySheet, cell, &line); err != nil {
			return fmt.Errorf("failed to write summary: %w", err)
		}
	}
	f.SetCellStyle(summarySheet, "A1", "B1", headerStyle)
	f.SetColWidth(summarySheet, "A", "A", 22)
	f.SetColWidth(summarySheet, "B", "B", 14)

	f.SetActiveSheet(0)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
