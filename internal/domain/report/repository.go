package report

import (
	"context"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/timesheet"
)

// AttendanceQuery selects timesheets in [From, To]. EmployeeIDs, when non-nil,
// restricts results to those employees; an empty non-nil slice matches nothing.
type AttendanceQuery struct {
	From         time.Time
	To           time.Time
	EmployeeCode *string
	EmployeeIDs  []string
}

// ReportRepository defines the interface for report data access
type ReportRepository interface {
	// ListAttendance returns matching timesheets joined with employee identity, ordered by date.
	ListAttendance(ctx context.Context, query AttendanceQuery) ([]timesheet.Timesheet, error)

	CountPendingLeaves(ctx context.Context) (int64, error)
}
