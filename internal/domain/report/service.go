package report

import "context"

// ReportService defines the interface for report generation
type ReportService interface {
	MonthlyAttendance(ctx context.Context, req AttendanceReportRequest) (AttendanceReport, error)
	DashboardSummary(ctx context.Context) (DashboardSummary, error)
}
