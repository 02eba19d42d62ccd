package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const leaveSelect = `
	SELECT
		l.id, l.employee_id, l.leave_type, l.start_date, l.end_date, l.total_days,
		l.is_half_day, l.half_day_type, l.reason, l.status, l.reviewed_by, l.reviewed_at,
		l.review_note, l.created_at, l.updated_at,
		u.employee_code, u.first_name || ' ' || u.last_name, u.department,
		CASE WHEN rv.id IS NULL THEN NULL ELSE rv.first_name || ' ' || rv.last_name END
	FROM leaves l
	JOIN users u ON u.id = l.employee_id
	LEFT JOIN users rv ON rv.id = l.reviewed_by`

type leaveRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRepository(db *database.DB) leave.LeaveRepository {
	return &leaveRepositoryImpl{db: db}
}

func scanLeave(row rowScanner) (leave.Leave, error) {
	var l leave.Leave
	err := row.Scan(
		&l.ID, &l.EmployeeID, &l.LeaveType, &l.StartDate, &l.EndDate, &l.TotalDays,
		&l.IsHalfDay, &l.HalfDayType, &l.Reason, &l.Status, &l.ReviewedBy, &l.ReviewedAt,
		&l.ReviewNote, &l.CreatedAt, &l.UpdatedAt,
		&l.EmployeeCode, &l.EmployeeName, &l.Department, &l.ReviewerName,
	)
	return l, err
}

func (r *leaveRepositoryImpl) getOne(ctx context.Context, where string, args ...interface{}) (leave.Leave, error) {
	q := GetQuerier(ctx, r.db)

	l, err := scanLeave(q.QueryRow(ctx, leaveSelect+" WHERE "+where, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Leave{}, leave.ErrLeaveNotFound
		}
		return leave.Leave{}, fmt.Errorf("failed to get leave: %w", err)
	}
	return l, nil
}

// Create implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) Create(ctx context.Context, l leave.Leave) (leave.Leave, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return leave.Leave{}, fmt.Errorf("failed to generate leave id: %w", err)
	}

	query := `
		INSERT INTO leaves (id, employee_id, leave_type, start_date, end_date, total_days, is_half_day, half_day_type, reason, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err = q.Exec(ctx, query,
		id.String(),
		l.EmployeeID,
		l.LeaveType,
		l.StartDate,
		l.EndDate,
		l.TotalDays,
		l.IsHalfDay,
		l.HalfDayType,
		l.Reason,
		leave.StatusPending,
	)
	if err != nil {
		return leave.Leave{}, fmt.Errorf("failed to create leave: %w", err)
	}

	return r.getOne(ctx, "l.id = $1", id.String())
}

// GetByID implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) GetByID(ctx context.Context, id string) (leave.Leave, error) {
	return r.getOne(ctx, "l.id = $1", id)
}

// GetByIDAndEmployee implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) GetByIDAndEmployee(ctx context.Context, id string, employeeID string) (leave.Leave, error) {
	return r.getOne(ctx, "l.id = $1 AND l.employee_id = $2", id, employeeID)
}

// Review implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) Review(ctx context.Context, id string, status leave.Status, reviewerID string, note *string, at time.Time) (leave.Leave, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE leaves SET status = $2, reviewed_by = $3, review_note = $4, reviewed_at = $5, updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
	`, id, status, reviewerID, note, at)
	if err != nil {
		return leave.Leave{}, fmt.Errorf("failed to review leave: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.Leave{}, leave.ErrAlreadyReviewed
	}

	return r.getOne(ctx, "l.id = $1", id)
}

// Cancel implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) Cancel(ctx context.Context, id string, employeeID string) (leave.Leave, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE leaves SET status = 'cancelled', updated_at = NOW()
		WHERE id = $1 AND employee_id = $2 AND status IN ('pending', 'rejected')
	`, id, employeeID)
	if err != nil {
		return leave.Leave{}, fmt.Errorf("failed to cancel leave: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.Leave{}, leave.ErrCannotCancelApproved
	}

	return r.getOne(ctx, "l.id = $1", id)
}

// ListByEmployee implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) ListByEmployee(ctx context.Context, filter leave.MyLeaveFilter) ([]leave.Leave, error) {
	q := GetQuerier(ctx, r.db)

	where := " WHERE l.employee_id = $1"
	args := []interface{}{filter.EmployeeID}
	argIdx := 2

	if filter.Status != nil && *filter.Status != "" {
		where += fmt.Sprintf(" AND l.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.Year != nil {
		where += fmt.Sprintf(" AND EXTRACT(YEAR FROM l.start_date) = $%d", argIdx)
		args = append(args, *filter.Year)
	}

	rows, err := q.Query(ctx, leaveSelect+where+" ORDER BY l.created_at DESC", args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaves: %w", err)
	}
	defer rows.Close()

	return collectLeaves(rows)
}

// List implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) List(ctx context.Context, filter leave.LeaveFilter) ([]leave.Leave, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := " WHERE 1 = 1"
	args := []interface{}{}
	argIdx := 1

	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND l.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.LeaveType != nil && *filter.LeaveType != "" {
		baseWhere += fmt.Sprintf(" AND l.leave_type = $%d", argIdx)
		args = append(args, *filter.LeaveType)
		argIdx++
	}
	if filter.Department != nil && *filter.Department != "" {
		baseWhere += fmt.Sprintf(" AND u.department = $%d", argIdx)
		args = append(args, *filter.Department)
		argIdx++
	}

	countQuery := `
		SELECT COUNT(*)
		FROM leaves l
		JOIN users u ON u.id = l.employee_id` + baseWhere

	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count leaves: %w", err)
	}

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)
	query := leaveSelect + baseWhere + fmt.Sprintf(`
		ORDER BY l.created_at DESC
		LIMIT $%d OFFSET $%d
	`, argIdx, argIdx+1)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query leaves: %w", err)
	}
	defer rows.Close()

	leaves, err := collectLeaves(rows)
	if err != nil {
		return nil, 0, err
	}
	return leaves, total, nil
}

func collectLeaves(rows pgx.Rows) ([]leave.Leave, error) {
	leaves := []leave.Leave{}
	for rows.Next() {
		l, err := scanLeave(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave: %w", err)
		}
		leaves = append(leaves, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate leaves: %w", err)
	}
	return leaves, nil
}
