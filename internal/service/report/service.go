package report

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/validator"
)

type ReportServiceImpl struct {
	report.ReportRepository
	user.UserRepository
	loc *time.Location
	now func() time.Time
}

func NewReportService(reportRepository report.ReportRepository, userRepository user.UserRepository, loc *time.Location) report.ReportService {
	if loc == nil {
		loc = time.UTC
	}
	return &ReportServiceImpl{
		ReportRepository: reportRepository,
		UserRepository:   userRepository,
		loc:              loc,
		now:              time.Now,
	}
}

// MonthlyAttendance implements report.ReportService.
func (s *ReportServiceImpl) MonthlyAttendance(ctx context.Context, req report.AttendanceReportRequest) (report.AttendanceReport, error) {
	if err := req.Validate(); err != nil {
		return report.AttendanceReport{}, err
	}

	month := s.now().In(s.loc)
	if req.Month != "" {
		month, _ = validator.IsValidMonth(req.Month)
	}
	from, to := timesheet.MonthRange(month)

	query := report.AttendanceQuery{From: from, To: to}
	switch {
	case req.EmployeeCode != nil:
		query.EmployeeCode = req.EmployeeCode
	case req.Department != nil:
		ids, err := s.UserRepository.ListActiveIDsByDepartment(ctx, *req.Department)
		if err != nil {
			return report.AttendanceReport{}, fmt.Errorf("failed to resolve department: %w", err)
		}
		if ids == nil {
			ids = []string{}
		}
		query.EmployeeIDs = ids
	}

	records, err := s.ReportRepository.ListAttendance(ctx, query)
	if err != nil {
		return report.AttendanceReport{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	rows := report.BuildRows(records, s.loc)
	return report.AttendanceReport{
		Summary: report.Summarize(from.Format("2006-01"), rows),
		Records: rows,
	}, nil
}

// DashboardSummary implements report.ReportService.
func (s *ReportServiceImpl) DashboardSummary(ctx context.Context) (report.DashboardSummary, error) {
	now := s.now()
	today := timesheet.DateOf(now, s.loc)

	totalEmployees, err := s.UserRepository.CountActiveNonAdmin(ctx)
	if err != nil {
		return report.DashboardSummary{}, fmt.Errorf("failed to count employees: %w", err)
	}

	todayRecords, err := s.ReportRepository.ListAttendance(ctx, report.AttendanceQuery{From: today, To: today})
	if err != nil {
		return report.DashboardSummary{}, fmt.Errorf("failed to list today's attendance: %w", err)
	}
	present, active, departments := report.SummarizeToday(todayRecords)

	pendingLeaves, err := s.ReportRepository.CountPendingLeaves(ctx)
	if err != nil {
		return report.DashboardSummary{}, fmt.Errorf("failed to count pending leaves: %w", err)
	}

	from, to := timesheet.MonthRange(today)
	monthRecords, err := s.ReportRepository.ListAttendance(ctx, report.AttendanceQuery{From: from, To: to})
	if err != nil {
		return report.DashboardSummary{}, fmt.Errorf("failed to list month attendance: %w", err)
	}

	return report.DashboardSummary{
		Today: report.TodaySummary{
			Date:           today.Format("2006-01-02"),
			TotalEmployees: totalEmployees,
			PresentToday:   present,
			AbsentToday:    max(0, totalEmployees-present),
			ActiveToday:    active,
			PendingLeaves:  pendingLeaves,
		},
		Month:           report.SummarizeMonth(monthRecords),
		DepartmentStats: departments,
	}, nil
}
