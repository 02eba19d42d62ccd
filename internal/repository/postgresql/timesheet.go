package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const timesheetSelect = `
	SELECT
		t.id, t.employee_id, t.work_date, t.clock_in, t.clock_out, t.breaks,
		t.total_break_minutes, t.total_work_minutes, t.total_work_hours, t.overtime_minutes,
		t.status, t.is_late, t.late_by_minutes, t.is_on_break, t.is_approved, t.approved_by,
		t.notes, t.ip_address, t.created_at, t.updated_at,
		u.employee_code, u.first_name || ' ' || u.last_name, u.department,
		CASE WHEN a.id IS NULL THEN NULL ELSE a.first_name || ' ' || a.last_name END
	FROM timesheets t
	JOIN users u ON u.id = t.employee_id
	LEFT JOIN users a ON a.id = t.approved_by`

type timesheetRepositoryImpl struct {
	db *database.DB
}

func NewTimesheetRepository(db *database.DB) timesheet.TimesheetRepository {
	return &timesheetRepositoryImpl{db: db}
}

func scanTimesheet(row rowScanner) (timesheet.Timesheet, error) {
	var (
		t         timesheet.Timesheet
		rawBreaks []byte
	)
	err := row.Scan(
		&t.ID, &t.EmployeeID, &t.WorkDate, &t.ClockIn, &t.ClockOut, &rawBreaks,
		&t.TotalBreakMinutes, &t.TotalWorkMinutes, &t.TotalWorkHours, &t.OvertimeMinutes,
		&t.Status, &t.IsLate, &t.LateByMinutes, &t.IsOnBreak, &t.IsApproved, &t.ApprovedBy,
		&t.Notes, &t.IPAddress, &t.CreatedAt, &t.UpdatedAt,
		&t.EmployeeCode, &t.EmployeeName, &t.Department, &t.ApprovedByName,
	)
	if err != nil {
		return timesheet.Timesheet{}, err
	}

	if len(rawBreaks) > 0 {
		if err := json.Unmarshal(rawBreaks, &t.Breaks); err != nil {
			return timesheet.Timesheet{}, fmt.Errorf("failed to decode breaks: %w", err)
		}
	}
	if t.Breaks == nil {
		t.Breaks = []timesheet.Break{}
	}
	return t, nil
}

func (r *timesheetRepositoryImpl) getOne(ctx context.Context, where string, args ...interface{}) (timesheet.Timesheet, error) {
	q := GetQuerier(ctx, r.db)

	t, err := scanTimesheet(q.QueryRow(ctx, timesheetSelect+" WHERE "+where, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timesheet.Timesheet{}, timesheet.ErrRecordNotFound
		}
		return timesheet.Timesheet{}, fmt.Errorf("failed to get timesheet: %w", err)
	}
	return t, nil
}

// ClockIn implements timesheet.TimesheetRepository.
func (r *timesheetRepositoryImpl) ClockIn(ctx context.Context, params timesheet.ClockInParams) (timesheet.Timesheet, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return timesheet.Timesheet{}, fmt.Errorf("failed to generate timesheet id: %w", err)
	}

	// A pre-created row (absent, on-leave) is filled in; a row that already
	// has a clock-in is left alone and nothing is returned.
	query := `
		INSERT INTO timesheets (id, employee_id, work_date, clock_in, status, is_late, late_by_minutes, ip_address)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (employee_id, work_date) DO UPDATE SET
			clock_in = EXCLUDED.clock_in,
			status = EXCLUDED.status,
			is_late = EXCLUDED.is_late,
			late_by_minutes = EXCLUDED.late_by_minutes,
			ip_address = EXCLUDED.ip_address,
			updated_at = NOW()
		WHERE timesheets.clock_in IS NULL
		RETURNING id
	`

	var recordID string
	err = q.QueryRow(ctx, query,
		id.String(),
		params.EmployeeID,
		params.WorkDate,
		params.ClockIn,
		params.Status,
		params.IsLate,
		params.LateByMinutes,
		params.IPAddress,
	).Scan(&recordID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timesheet.Timesheet{}, timesheet.ErrAlreadyClockedIn
		}
		return timesheet.Timesheet{}, fmt.Errorf("failed to clock in: %w", err)
	}

	return r.getOne(ctx, "t.id = $1", recordID)
}

// GetByID implements timesheet.TimesheetRepository.
func (r *timesheetRepositoryImpl) GetByID(ctx context.Context, id string) (timesheet.Timesheet, error) {
	return r.getOne(ctx, "t.id = $1", id)
}

// GetByEmployeeAndDate implements timesheet.TimesheetRepository.
func (r *timesheetRepositoryImpl) GetByEmployeeAndDate(ctx context.Context, employeeID string, workDate time.Time) (timesheet.Timesheet, error) {
	return r.getOne(ctx, "t.employee_id = $1 AND t.work_date = $2", employeeID, workDate)
}

// GetByEmployeeAndDateForUpdate implements timesheet.TimesheetRepository.
func (r *timesheetRepositoryImpl) GetByEmployeeAndDateForUpdate(ctx context.Context, employeeID string, workDate time.Time) (timesheet.Timesheet, error) {
	return r.getOne(ctx, "t.employee_id = $1 AND t.work_date = $2 FOR UPDATE OF t", employeeID, workDate)
}

// Update implements timesheet.TimesheetRepository.
func (r *timesheetRepositoryImpl) Update(ctx context.Context, t timesheet.Timesheet) (timesheet.Timesheet, error) {
	q := GetQuerier(ctx, r.db)

	breaks := t.Breaks
	if breaks == nil {
		breaks = []timesheet.Break{}
	}
	rawBreaks, err := json.Marshal(breaks)
	if err != nil {
		return timesheet.Timesheet{}, fmt.Errorf("failed to encode breaks: %w", err)
	}

	query := `
		UPDATE timesheets SET
			clock_out = $2,
			breaks = $3,
			total_break_minutes = $4,
			total_work_minutes = $5,
			total_work_hours = $6,
			overtime_minutes = $7,
			status = $8,
			is_on_break = $9,
			notes = $10,
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		t.ID,
		t.ClockOut,
		rawBreaks,
		t.TotalBreakMinutes,
		t.TotalWorkMinutes,
		t.TotalWorkHours,
		t.OvertimeMinutes,
		t.Status,
		t.IsOnBreak,
		t.Notes,
	)
	if err != nil {
		return timesheet.Timesheet{}, fmt.Errorf("failed to update timesheet: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return timesheet.Timesheet{}, timesheet.ErrRecordNotFound
	}

	return r.getOne(ctx, "t.id = $1", t.ID)
}

// Approve implements timesheet.TimesheetRepository.
func (r *timesheetRepositoryImpl) Approve(ctx context.Context, id string, approverID string) (timesheet.Timesheet, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE timesheets SET is_approved = TRUE, approved_by = $2, updated_at = NOW()
		WHERE id = $1
	`, id, approverID)
	if err != nil {
		return timesheet.Timesheet{}, fmt.Errorf("failed to approve timesheet: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return timesheet.Timesheet{}, timesheet.ErrRecordNotFound
	}

	return r.getOne(ctx, "t.id = $1", id)
}

// ListByEmployee implements timesheet.TimesheetRepository.
func (r *timesheetRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]timesheet.Timesheet, error) {
	q := GetQuerier(ctx, r.db)

	query := timesheetSelect + `
		WHERE t.employee_id = $1 AND t.work_date BETWEEN $2 AND $3
		ORDER BY t.work_date DESC
	`
	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query timesheets: %w", err)
	}
	defer rows.Close()

	return collectTimesheets(rows)
}

// List implements timesheet.TimesheetRepository.
func (r *timesheetRepositoryImpl) List(ctx context.Context, filter timesheet.TimesheetFilter) ([]timesheet.Timesheet, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := " WHERE 1 = 1"
	args := []interface{}{}
	argIdx := 1

	if filter.DateFrom != nil {
		baseWhere += fmt.Sprintf(" AND t.work_date >= $%d", argIdx)
		args = append(args, *filter.DateFrom)
		argIdx++
	}
	if filter.DateTo != nil {
		baseWhere += fmt.Sprintf(" AND t.work_date <= $%d", argIdx)
		args = append(args, *filter.DateTo)
		argIdx++
	}
	if filter.EmployeeCode != nil && *filter.EmployeeCode != "" {
		baseWhere += fmt.Sprintf(" AND u.employee_code = UPPER($%d)", argIdx)
		args = append(args, *filter.EmployeeCode)
		argIdx++
	}
	if filter.Department != nil && *filter.Department != "" {
		baseWhere += fmt.Sprintf(" AND u.department = $%d", argIdx)
		args = append(args, *filter.Department)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND t.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	countQuery := `
		SELECT COUNT(*)
		FROM timesheets t
		JOIN users u ON u.id = t.employee_id` + baseWhere

	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count timesheets: %w", err)
	}

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)
	query := timesheetSelect + baseWhere + fmt.Sprintf(`
		ORDER BY t.work_date DESC, t.clock_in DESC NULLS LAST
		LIMIT $%d OFFSET $%d
	`, argIdx, argIdx+1)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query timesheets: %w", err)
	}
	defer rows.Close()

	records, err := collectTimesheets(rows)
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

func collectTimesheets(rows pgx.Rows) ([]timesheet.Timesheet, error) {
	records := []timesheet.Timesheet{}
	for rows.Next() {
		t, err := scanTimesheet(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan timesheet: %w", err)
		}
		records = append(records, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate timesheets: %w", err)
	}
	return records, nil
}
