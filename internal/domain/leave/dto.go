package leave

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/validator"
)

// ========================================
// APPLY / REVIEW / CANCEL
// ========================================

type ApplyLeaveRequest struct {
	EmployeeID  string  `json:"-"`
	LeaveType   string  `json:"leave_type"`
	StartDate   string  `json:"start_date"` // YYYY-MM-DD
	EndDate     string  `json:"end_date"`   // YYYY-MM-DD
	IsHalfDay   bool    `json:"is_half_day"`
	HalfDayType *string `json:"half_day_type,omitempty"`
	Reason      string  `json:"reason"`

	// Parsed by Validate
	Start time.Time `json:"-"`
	End   time.Time `json:"-"`
}

func (r *ApplyLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.LeaveType) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type",
			Message: "leave_type is required",
		})
	} else if !validator.IsInSlice(r.LeaveType, ValidLeaveTypes) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type",
			Message: "leave_type must be one of: " + strings.Join(ValidLeaveTypes, ", "),
		})
	}

	if start, ok := validator.IsValidDate(r.StartDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	} else {
		r.Start = start
	}

	if end, ok := validator.IsValidDate(r.EndDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	} else {
		r.End = end
	}

	if r.HalfDayType != nil && *r.HalfDayType != "" {
		if !validator.IsInSlice(*r.HalfDayType, []string{string(HalfDayMorning), string(HalfDayAfternoon)}) {
			errs = append(errs, validator.ValidationError{
				Field:   "half_day_type",
				Message: "half_day_type must be one of: morning, afternoon",
			})
		}
	} else {
		r.HalfDayType = nil
	}

	r.Reason = strings.TrimSpace(r.Reason)
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	} else if !validator.MaxLength(r.Reason, 1000) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason must not exceed 1000 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ReviewLeaveRequest struct {
	ID         string  `json:"-"`
	ReviewerID string  `json:"-"`
	Status     string  `json:"status"`
	ReviewNote *string `json:"review_note,omitempty"`
}

func (r *ReviewLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "invalid leave id",
		})
	}

	if !validator.IsInSlice(r.Status, []string{string(StatusApproved), string(StatusRejected)}) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be approved or rejected",
		})
	}

	if r.ReviewNote != nil {
		note := strings.TrimSpace(*r.ReviewNote)
		r.ReviewNote = &note
		if !validator.MaxLength(note, 500) {
			errs = append(errs, validator.ValidationError{
				Field:   "review_note",
				Message: "review_note must not exceed 500 characters",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CancelLeaveRequest struct {
	ID         string `json:"-"`
	EmployeeID string `json:"-"`
}

func (r *CancelLeaveRequest) Validate() error {
	if !validator.IsValidUUID(r.ID) {
		return validator.ValidationErrors{{Field: "id", Message: "invalid leave id"}}
	}
	return nil
}

// ========================================
// RESPONSES
// ========================================

type LeaveResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeCode *string `json:"employee_code,omitempty"`
	EmployeeName *string `json:"employee_name,omitempty"`
	Department   *string `json:"department,omitempty"`
	LeaveType    string  `json:"leave_type"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
	TotalDays    float64 `json:"total_days"`
	IsHalfDay    bool    `json:"is_half_day"`
	HalfDayType  *string `json:"half_day_type,omitempty"`
	Reason       string  `json:"reason"`
	Status       string  `json:"status"`
	ReviewedBy   *string `json:"reviewed_by,omitempty"`
	ReviewerName *string `json:"reviewer_name,omitempty"`
	ReviewedAt   *string `json:"reviewed_at,omitempty"`
	ReviewNote   *string `json:"review_note,omitempty"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

func ToResponse(l Leave) LeaveResponse {
	resp := LeaveResponse{
		ID:           l.ID,
		EmployeeID:   l.EmployeeID,
		EmployeeCode: l.EmployeeCode,
		EmployeeName: l.EmployeeName,
		Department:   l.Department,
		LeaveType:    string(l.LeaveType),
		StartDate:    l.StartDate.Format("2006-01-02"),
		EndDate:      l.EndDate.Format("2006-01-02"),
		TotalDays:    l.TotalDays,
		IsHalfDay:    l.IsHalfDay,
		Reason:       l.Reason,
		Status:       string(l.Status),
		ReviewedBy:   l.ReviewedBy,
		ReviewerName: l.ReviewerName,
		ReviewNote:   l.ReviewNote,
		CreatedAt:    l.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    l.UpdatedAt.Format(time.RFC3339),
	}
	if l.HalfDayType != nil {
		h := string(*l.HalfDayType)
		resp.HalfDayType = &h
	}
	if l.ReviewedAt != nil {
		s := l.ReviewedAt.Format(time.RFC3339)
		resp.ReviewedAt = &s
	}
	return resp
}

// ========================================
// LISTS
// ========================================

type MyLeaveFilter struct {
	EmployeeID string  `json:"-"`
	Status     *string `json:"status,omitempty"`
	Year       *int    `json:"year,omitempty"`
}

func (f *MyLeaveFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Status != nil && *f.Status != "" && !validator.IsInSlice(*f.Status, ValidStatuses) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: " + strings.Join(ValidStatuses, ", "),
		})
	}
	if f.Year != nil && (*f.Year < 1970 || *f.Year > 9999) {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "invalid year",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type MyLeaveResponse struct {
	Leaves       []LeaveResponse   `json:"leaves"`
	LeaveBalance user.LeaveBalance `json:"leave_balance"`
}

type LeaveFilter struct {
	Status     *string `json:"status,omitempty"`
	Department *string `json:"department,omitempty"`
	LeaveType  *string `json:"leave_type,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *LeaveFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Status != nil && *f.Status != "" && !validator.IsInSlice(*f.Status, ValidStatuses) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: " + strings.Join(ValidStatuses, ", "),
		})
	}
	if f.LeaveType != nil && *f.LeaveType != "" && !validator.IsInSlice(*f.LeaveType, ValidLeaveTypes) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type",
			Message: "leave_type must be one of: " + strings.Join(ValidLeaveTypes, ", "),
		})
	}

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1
	}
	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListLeaveResponse struct {
	TotalCount int64           `json:"total_count"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
	Showing    string          `json:"showing"`
	Leaves     []LeaveResponse `json:"leaves"`
}
