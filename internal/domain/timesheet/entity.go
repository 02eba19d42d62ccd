package timesheet

import (
	"time"
)

type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
	StatusHalfDay Status = "half-day"
	StatusLate    Status = "late"
	StatusOnLeave Status = "on-leave"
	StatusHoliday Status = "holiday"
	StatusWeekend Status = "weekend"
)

var ValidStatuses = []string{
	string(StatusPresent),
	string(StatusAbsent),
	string(StatusHalfDay),
	string(StatusLate),
	string(StatusOnLeave),
	string(StatusHoliday),
	string(StatusWeekend),
}

// IsPresent reports whether the status counts towards attendance.
func (s Status) IsPresent() bool {
	return s == StatusPresent || s == StatusLate
}

// Break is one interval within a working day. End is nil while the break is open.
type Break struct {
	Start           time.Time  `json:"start"`
	End             *time.Time `json:"end,omitempty"`
	DurationMinutes int        `json:"duration"`
}

type Timesheet struct {
	ID                string
	EmployeeID        string
	WorkDate          time.Time
	ClockIn           *time.Time
	ClockOut          *time.Time
	Breaks            []Break
	TotalBreakMinutes int
	TotalWorkMinutes  int
	TotalWorkHours    float64
	OvertimeMinutes   int
	Status            Status
	IsLate            bool
	LateByMinutes     int
	IsOnBreak         bool
	IsApproved        bool
	ApprovedBy        *string
	Notes             *string
	IPAddress         *string
	CreatedAt         time.Time
	UpdatedAt         time.Time

	// DTO
	EmployeeCode   *string
	EmployeeName   *string
	Department     *string
	ApprovedByName *string
}
