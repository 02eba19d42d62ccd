package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/database"
)

type reportRepositoryImpl struct {
	db *database.DB
}

func NewReportRepository(db *database.DB) report.ReportRepository {
	return &reportRepositoryImpl{db: db}
}

// ListAttendance implements report.ReportRepository.
func (r *reportRepositoryImpl) ListAttendance(ctx context.Context, query report.AttendanceQuery) ([]timesheet.Timesheet, error) {
	if query.EmployeeIDs != nil && len(query.EmployeeIDs) == 0 {
		return []timesheet.Timesheet{}, nil
	}

	q := GetQuerier(ctx, r.db)

	where := " WHERE t.work_date BETWEEN $1 AND $2"
	args := []interface{}{query.From, query.To}
	argIdx := 3

	if query.EmployeeCode != nil {
		where += fmt.Sprintf(" AND u.employee_code = UPPER($%d)", argIdx)
		args = append(args, *query.EmployeeCode)
		argIdx++
	}
	if query.EmployeeIDs != nil {
		where += fmt.Sprintf(" AND t.employee_id = ANY($%d)", argIdx)
		args = append(args, query.EmployeeIDs)
	}

	rows, err := q.Query(ctx, timesheetSelect+where+" ORDER BY t.work_date ASC, u.employee_code ASC", args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance report: %w", err)
	}
	defer rows.Close()

	return collectTimesheets(rows)
}

// CountPendingLeaves implements report.ReportRepository.
func (r *reportRepositoryImpl) CountPendingLeaves(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM leaves WHERE status = 'pending'`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count pending leaves: %w", err)
	}
	return count, nil
}
