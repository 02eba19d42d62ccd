package http

import (
	"context"
	"errors"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/timesheet"
)

type stubTimesheetService struct {
	clockInReq  timesheet.ClockInRequest
	clockOutReq timesheet.ClockOutRequest
	approveReq  timesheet.ApproveRequest
	listFilter  timesheet.TimesheetFilter
	result      timesheet.TimesheetResponse
	err         error
}

func (s *stubTimesheetService) ClockIn(ctx context.Context, req timesheet.ClockInRequest) (timesheet.TimesheetResponse, error) {
	s.clockInReq = req
	return s.result, s.err
}

func (s *stubTimesheetService) StartBreak(ctx context.Context, employeeID string) (timesheet.TimesheetResponse, error) {
	return s.result, s.err
}

func (s *stubTimesheetService) EndBreak(ctx context.Context, employeeID string) (timesheet.TimesheetResponse, error) {
	return s.result, s.err
}

func (s *stubTimesheetService) ClockOut(ctx context.Context, req timesheet.ClockOutRequest) (timesheet.TimesheetResponse, error) {
	s.clockOutReq = req
	return s.result, s.err
}

func (s *stubTimesheetService) GetToday(ctx context.Context, employeeID string) (timesheet.TodayResponse, error) {
	return timesheet.TodayResponse{Date: "2025-03-10"}, s.err
}

func (s *stubTimesheetService) GetMyTimesheets(ctx context.Context, filter timesheet.MyTimesheetFilter) (timesheet.MyTimesheetResponse, error) {
	return timesheet.MyTimesheetResponse{Month: filter.Month, Page: filter.Page}, s.err
}

func (s *stubTimesheetService) ListTimesheets(ctx context.Context, filter timesheet.TimesheetFilter) (timesheet.ListTimesheetResponse, error) {
	s.listFilter = filter
	return timesheet.ListTimesheetResponse{Records: []timesheet.TimesheetResponse{}}, s.err
}

func (s *stubTimesheetService) Approve(ctx context.Context, req timesheet.ApproveRequest) (timesheet.TimesheetResponse, error) {
	s.approveReq = req
	return s.result, s.err
}

type stubLeaveService struct {
	applyReq  leave.ApplyLeaveRequest
	reviewReq leave.ReviewLeaveRequest
	cancelReq leave.CancelLeaveRequest
	myFilter  leave.MyLeaveFilter
	result    leave.LeaveResponse
	err       error
}

func (s *stubLeaveService) Apply(ctx context.Context, req leave.ApplyLeaveRequest) (leave.LeaveResponse, error) {
	s.applyReq = req
	return s.result, s.err
}

func (s *stubLeaveService) Review(ctx context.Context, req leave.ReviewLeaveRequest) (leave.LeaveResponse, error) {
	s.reviewReq = req
	return s.result, s.err
}

func (s *stubLeaveService) Cancel(ctx context.Context, req leave.CancelLeaveRequest) (leave.LeaveResponse, error) {
	s.cancelReq = req
	return s.result, s.err
}

func (s *stubLeaveService) GetMyLeaves(ctx context.Context, filter leave.MyLeaveFilter) (leave.MyLeaveResponse, error) {
	s.myFilter = filter
	return leave.MyLeaveResponse{Leaves: []leave.LeaveResponse{}}, s.err
}

func (s *stubLeaveService) ListLeaves(ctx context.Context, filter leave.LeaveFilter) (leave.ListLeaveResponse, error) {
	return leave.ListLeaveResponse{Leaves: []leave.LeaveResponse{}}, s.err
}

type stubReportService struct {
	lastReq report.AttendanceReportRequest
	report  report.AttendanceReport
	err     error
}

func (s *stubReportService) MonthlyAttendance(ctx context.Context, req report.AttendanceReportRequest) (report.AttendanceReport, error) {
	if err := req.Validate(); err != nil {
		return report.AttendanceReport{}, err
	}
	s.lastReq = req
	return s.report, s.err
}

func (s *stubReportService) DashboardSummary(ctx context.Context) (report.DashboardSummary, error) {
	return report.DashboardSummary{Today: report.TodaySummary{Date: "2025-03-10", TotalEmployees: 3}}, s.err
}

type stubPinger struct {
	err error
}

func (p stubPinger) Ping(ctx context.Context) error {
	return p.err
}

var errDown = errors.New("connection refused")
