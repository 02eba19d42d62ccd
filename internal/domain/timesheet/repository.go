package timesheet

import (
	"context"
	"time"
)

// ClockInParams is the state written by an atomic clock-in.
type ClockInParams struct {
	EmployeeID    string
	WorkDate      time.Time
	ClockIn       time.Time
	Status        Status
	IsLate        bool
	LateByMinutes int
	IPAddress     *string
}

type TimesheetRepository interface {
	// ClockIn creates or fills today's record in one statement. It returns
	// ErrAlreadyClockedIn when the record already has a clock-in.
	ClockIn(ctx context.Context, params ClockInParams) (Timesheet, error)

	GetByID(ctx context.Context, id string) (Timesheet, error)
	GetByEmployeeAndDate(ctx context.Context, employeeID string, workDate time.Time) (Timesheet, error)

	// GetByEmployeeAndDateForUpdate locks the row until the surrounding transaction ends.
	GetByEmployeeAndDateForUpdate(ctx context.Context, employeeID string, workDate time.Time) (Timesheet, error)

	// Update writes the mutable fields: clock-out, breaks, derived totals, flags and notes.
	Update(ctx context.Context, t Timesheet) (Timesheet, error)

	Approve(ctx context.Context, id string, approverID string) (Timesheet, error)

	ListByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]Timesheet, error)
	List(ctx context.Context, filter TimesheetFilter) ([]Timesheet, int64, error)
}
