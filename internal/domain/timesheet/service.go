package timesheet

import "context"

// TimesheetService runs the daily clock-in, break and clock-out workflow.
type TimesheetService interface {
	ClockIn(ctx context.Context, req ClockInRequest) (TimesheetResponse, error)
	StartBreak(ctx context.Context, employeeID string) (TimesheetResponse, error)
	EndBreak(ctx context.Context, employeeID string) (TimesheetResponse, error)
	ClockOut(ctx context.Context, req ClockOutRequest) (TimesheetResponse, error)

	GetToday(ctx context.Context, employeeID string) (TodayResponse, error)
	GetMyTimesheets(ctx context.Context, filter MyTimesheetFilter) (MyTimesheetResponse, error)
	ListTimesheets(ctx context.Context, filter TimesheetFilter) (ListTimesheetResponse, error)

	Approve(ctx context.Context, req ApproveRequest) (TimesheetResponse, error)
}
