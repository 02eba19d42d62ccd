package report

import (
	"strings"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/validator"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatPDF  Format = "pdf"
	FormatXLSX Format = "xlsx"
)

var ValidFormats = []string{string(FormatJSON), string(FormatCSV), string(FormatPDF), string(FormatXLSX)}

// ========================================
// MONTHLY ATTENDANCE REPORT
// ========================================

type AttendanceReportRequest struct {
	Month        string  `json:"month"` // YYYY-MM, defaults to the current month
	EmployeeCode *string `json:"employee_code,omitempty"`
	Department   *string `json:"department,omitempty"`
	Format       string  `json:"format"`
}

func (r *AttendanceReportRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Month != "" {
		if _, ok := validator.IsValidMonth(r.Month); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "month",
				Message: "month must be in YYYY-MM format",
			})
		}
	}

	if r.EmployeeCode != nil && strings.TrimSpace(*r.EmployeeCode) == "" {
		r.EmployeeCode = nil
	}
	if r.EmployeeCode != nil {
		code := strings.ToUpper(strings.TrimSpace(*r.EmployeeCode))
		if !validator.IsValidEmployeeCode(code) {
			errs = append(errs, validator.ValidationError{
				Field:   "employee_code",
				Message: "employee_code must look like EMP01001",
			})
		}
		r.EmployeeCode = &code
	}
	if r.Department != nil && strings.TrimSpace(*r.Department) == "" {
		r.Department = nil
	}

	if r.Format == "" {
		r.Format = string(FormatJSON)
	}
	r.Format = strings.ToLower(r.Format)
	if !validator.IsInSlice(r.Format, ValidFormats) {
		errs = append(errs, validator.ValidationError{
			Field:   "format",
			Message: "format must be one of: " + strings.Join(ValidFormats, ", "),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// AttendanceRow is one timesheet flattened for reporting and export.
type AttendanceRow struct {
	EmployeeCode    string  `json:"employee_code"`
	EmployeeName    string  `json:"employee_name"`
	Department      string  `json:"department"`
	Date            string  `json:"date"`
	ClockIn         string  `json:"clock_in"`
	ClockOut        string  `json:"clock_out"`
	TotalWorkHours  float64 `json:"total_work_hours"`
	BreakMinutes    int     `json:"break_minutes"`
	OvertimeMinutes int     `json:"overtime_minutes"`
	Status          string  `json:"status"`
	IsLate          string  `json:"is_late"`
	LateByMinutes   int     `json:"late_by_minutes"`
	IsApproved      string  `json:"is_approved"`
}

type AttendanceSummary struct {
	Month        string  `json:"month"`
	TotalRecords int     `json:"total_records"`
	TotalPresent int     `json:"total_present"`
	TotalAbsent  int     `json:"total_absent"`
	TotalOnLeave int     `json:"total_on_leave"`
	TotalLate    int     `json:"total_late"`
	AvgWorkHours float64 `json:"avg_work_hours"`
}

type AttendanceReport struct {
	Summary AttendanceSummary `json:"summary"`
	Records []AttendanceRow   `json:"records"`
}

// ========================================
// DASHBOARD SUMMARY
// ========================================

type TodaySummary struct {
	Date           string `json:"date"`
	TotalEmployees int64  `json:"total_employees"`
	PresentToday   int64  `json:"present_today"`
	AbsentToday    int64  `json:"absent_today"`
	ActiveToday    int64  `json:"active_today"`
	PendingLeaves  int64  `json:"pending_leaves"`
}

type MonthSummary struct {
	AvgWorkHours       float64 `json:"avg_work_hours"`
	TotalOvertimeHours float64 `json:"total_overtime_hours"`
	LateCount          int     `json:"late_count"`
}

type DepartmentStat struct {
	Department string `json:"department"`
	Present    int    `json:"present"`
	Count      int    `json:"count"`
}

type DashboardSummary struct {
	Today           TodaySummary     `json:"today"`
	Month           MonthSummary     `json:"month"`
	DepartmentStats []DepartmentStat `json:"department_stats"`
}
