package timesheet

import (
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/validator"
)

// ========================================
// CLOCK DTOs
// ========================================

type ClockInRequest struct {
	EmployeeID string `json:"-"`
	IPAddress  string `json:"-"`
}

type ClockOutRequest struct {
	EmployeeID string  `json:"-"`
	Notes      *string `json:"notes,omitempty"`
}

func (r *ClockOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Notes != nil && !validator.MaxLength(*r.Notes, 500) {
		errs = append(errs, validator.ValidationError{
			Field:   "notes",
			Message: "notes must not exceed 500 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ApproveRequest struct {
	ID         string `json:"-"`
	ApproverID string `json:"-"`
}

func (r *ApproveRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "invalid timesheet id",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========================================
// RESPONSE DTOs
// ========================================

type BreakResponse struct {
	Start           string  `json:"start"`
	End             *string `json:"end,omitempty"`
	DurationMinutes int     `json:"duration"`
}

type TimesheetResponse struct {
	ID                string          `json:"id"`
	EmployeeID        string          `json:"employee_id"`
	EmployeeCode      *string         `json:"employee_code,omitempty"`
	EmployeeName      *string         `json:"employee_name,omitempty"`
	Department        *string         `json:"department,omitempty"`
	Date              string          `json:"date"`
	ClockIn           *string         `json:"clock_in,omitempty"`
	ClockOut          *string         `json:"clock_out,omitempty"`
	Breaks            []BreakResponse `json:"breaks"`
	TotalBreakMinutes int             `json:"total_break_minutes"`
	TotalWorkMinutes  int             `json:"total_work_minutes"`
	TotalWorkHours    float64         `json:"total_work_hours"`
	OvertimeMinutes   int             `json:"overtime_minutes"`
	Status            string          `json:"status"`
	IsLate            bool            `json:"is_late"`
	LateByMinutes     int             `json:"late_by_minutes"`
	IsOnBreak         bool            `json:"is_on_break"`
	IsApproved        bool            `json:"is_approved"`
	ApprovedBy        *string         `json:"approved_by,omitempty"`
	ApprovedByName    *string         `json:"approved_by_name,omitempty"`
	Notes             *string         `json:"notes,omitempty"`
	IPAddress         *string         `json:"ip_address,omitempty"`
	CreatedAt         string          `json:"created_at"`
	UpdatedAt         string          `json:"updated_at"`
}

func ToResponse(t Timesheet) TimesheetResponse {
	resp := TimesheetResponse{
		ID:                t.ID,
		EmployeeID:        t.EmployeeID,
		EmployeeCode:      t.EmployeeCode,
		EmployeeName:      t.EmployeeName,
		Department:        t.Department,
		Date:              t.WorkDate.Format("2006-01-02"),
		ClockIn:           formatTime(t.ClockIn),
		ClockOut:          formatTime(t.ClockOut),
		Breaks:            make([]BreakResponse, 0, len(t.Breaks)),
		TotalBreakMinutes: t.TotalBreakMinutes,
		TotalWorkMinutes:  t.TotalWorkMinutes,
		TotalWorkHours:    t.TotalWorkHours,
		OvertimeMinutes:   t.OvertimeMinutes,
		Status:            string(t.Status),
		IsLate:            t.IsLate,
		LateByMinutes:     t.LateByMinutes,
		IsOnBreak:         t.IsOnBreak,
		IsApproved:        t.IsApproved,
		ApprovedBy:        t.ApprovedBy,
		ApprovedByName:    t.ApprovedByName,
		Notes:             t.Notes,
		IPAddress:         t.IPAddress,
		CreatedAt:         t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         t.UpdatedAt.Format(time.RFC3339),
	}
	for _, b := range t.Breaks {
		resp.Breaks = append(resp.Breaks, BreakResponse{
			Start:           b.Start.Format(time.RFC3339),
			End:             formatTime(b.End),
			DurationMinutes: b.DurationMinutes,
		})
	}
	return resp
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}

// ClockInMessage describes a clock-in outcome.
func ClockInMessage(t TimesheetResponse) string {
	if t.IsLate {
		return fmt.Sprintf("Clocked in (%d minutes late)", t.LateByMinutes)
	}
	return "Clocked in successfully"
}

// BreakEndedMessage describes the break that was just closed.
func BreakEndedMessage(t TimesheetResponse) string {
	duration := 0
	if n := len(t.Breaks); n > 0 {
		duration = t.Breaks[n-1].DurationMinutes
	}
	return fmt.Sprintf("Break ended (%d minutes)", duration)
}

type TodayResponse struct {
	Date   string             `json:"date"`
	Record *TimesheetResponse `json:"record"`
}

// ========================================
// LIST DTOs
// ========================================

type MyTimesheetFilter struct {
	EmployeeID string `json:"-"`
	Month      string `json:"month"` // YYYY-MM, defaults to the current month
	Page       int    `json:"page"`
	Limit      int    `json:"limit"`
}

func (f *MyTimesheetFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Month != "" {
		if _, ok := validator.IsValidMonth(f.Month); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "month",
				Message: "month must be in YYYY-MM format",
			})
		}
	}

	errs = append(errs, validatePaging(&f.Page, &f.Limit, 31)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type Stats struct {
	TotalWorkHours  float64 `json:"total_work_hours"`
	OvertimeMinutes int     `json:"overtime_minutes"`
	PresentDays     int     `json:"present_days"`
	AbsentDays      int     `json:"absent_days"`
	LeaveDays       int     `json:"leave_days"`
	LateDays        int     `json:"late_days"`
}

// ComputeStats tallies attendance counters across records.
func ComputeStats(records []Timesheet) Stats {
	var s Stats
	for _, r := range records {
		s.TotalWorkHours += r.TotalWorkHours
		s.OvertimeMinutes += r.OvertimeMinutes
		switch {
		case r.Status.IsPresent():
			s.PresentDays++
		case r.Status == StatusAbsent:
			s.AbsentDays++
		case r.Status == StatusOnLeave:
			s.LeaveDays++
		}
		if r.IsLate {
			s.LateDays++
		}
	}
	s.TotalWorkHours = Round2(s.TotalWorkHours)
	return s
}

type MyTimesheetResponse struct {
	Month      string              `json:"month"`
	TotalCount int64               `json:"total_count"`
	Page       int                 `json:"page"`
	Limit      int                 `json:"limit"`
	TotalPages int                 `json:"total_pages"`
	Showing    string              `json:"showing"`
	Stats      Stats               `json:"stats"`
	Records    []TimesheetResponse `json:"records"`
}

type TimesheetFilter struct {
	Date         *string `json:"date,omitempty"`  // YYYY-MM-DD
	Month        *string `json:"month,omitempty"` // YYYY-MM
	EmployeeCode *string `json:"employee_code,omitempty"`
	Department   *string `json:"department,omitempty"`
	Status       *string `json:"status,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`

	// Resolved by the service
	DateFrom *time.Time `json:"-"`
	DateTo   *time.Time `json:"-"`
}

func (f *TimesheetFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Date != nil && *f.Date != "" {
		date, ok := validator.IsValidDate(*f.Date)
		if !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		} else {
			f.DateFrom, f.DateTo = &date, &date
		}
	}

	if f.Month != nil && *f.Month != "" {
		month, ok := validator.IsValidMonth(*f.Month)
		if !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "month",
				Message: "month must be in YYYY-MM format",
			})
		} else {
			from, to := MonthRange(month)
			f.DateFrom, f.DateTo = &from, &to
		}
	}

	if f.EmployeeCode != nil && *f.EmployeeCode != "" {
		code := strings.ToUpper(strings.TrimSpace(*f.EmployeeCode))
		if !validator.IsValidEmployeeCode(code) {
			errs = append(errs, validator.ValidationError{
				Field:   "employee_code",
				Message: "employee_code must look like EMP01001",
			})
		}
		f.EmployeeCode = &code
	}

	if f.Status != nil && *f.Status != "" && !validator.IsInSlice(*f.Status, ValidStatuses) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "invalid status",
		})
	}

	errs = append(errs, validatePaging(&f.Page, &f.Limit, 50)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListTimesheetResponse struct {
	TotalCount int64               `json:"total_count"`
	Page       int                 `json:"page"`
	Limit      int                 `json:"limit"`
	TotalPages int                 `json:"total_pages"`
	Showing    string              `json:"showing"`
	Records    []TimesheetResponse `json:"records"`
}

// MonthRange returns the first and last calendar day of month's month, as UTC dates.
func MonthRange(month time.Time) (time.Time, time.Time) {
	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	return first, first.AddDate(0, 1, -1)
}

func validatePaging(page, limit *int, defaultLimit int) validator.ValidationErrors {
	var errs validator.ValidationErrors

	if *page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if *page == 0 {
		*page = 1
	}

	if *limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if *limit == 0 {
		*limit = defaultLimit
	}
	if *limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}

	return errs
}
