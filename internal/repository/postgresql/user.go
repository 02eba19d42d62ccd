package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const userColumns = `
	id, employee_code, first_name, last_name, email, password_hash, role,
	department, designation, phone, avatar_url, joining_date, is_active,
	work_start, work_end, work_days,
	leave_balance_annual, leave_balance_sick, leave_balance_casual, leave_balance_unpaid,
	last_login_at, created_at, updated_at`

// balanceColumns maps a tracked leave type to its balance column.
var balanceColumns = map[string]string{
	"annual": "leave_balance_annual",
	"sick":   "leave_balance_sick",
	"casual": "leave_balance_casual",
	"unpaid": "leave_balance_unpaid",
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

type userRepositoryImpl struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepositoryImpl{db: db}
}

func scanUser(row rowScanner) (user.User, error) {
	var u user.User
	err := row.Scan(
		&u.ID, &u.EmployeeCode, &u.FirstName, &u.LastName, &u.Email, &u.PasswordHash, &u.Role,
		&u.Department, &u.Designation, &u.Phone, &u.AvatarURL, &u.JoiningDate, &u.IsActive,
		&u.WorkSchedule.StartTime, &u.WorkSchedule.EndTime, &u.WorkSchedule.WorkDays,
		&u.LeaveBalance.Annual, &u.LeaveBalance.Sick, &u.LeaveBalance.Casual, &u.LeaveBalance.Unpaid,
		&u.LastLoginAt, &u.CreatedAt, &u.UpdatedAt,
	)
	return u, err
}

// Create implements user.UserRepository.
func (r *userRepositoryImpl) Create(ctx context.Context, newUser user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return user.User{}, fmt.Errorf("failed to generate user id: %w", err)
	}

	query := `
		INSERT INTO users (
			id, employee_code, first_name, last_name, email, password_hash, role,
			department, designation, phone, avatar_url, joining_date, is_active,
			work_start, work_end, work_days,
			leave_balance_annual, leave_balance_sick, leave_balance_casual, leave_balance_unpaid
		)
		VALUES (
			$1, 'EMP' || LPAD(nextval('employee_code_seq')::text, 5, '0'), $2, $3, $4, $5, $6,
			$7, $8, $9, $10, $11, $12,
			$13, $14, $15,
			$16, $17, $18, $19
		)
		RETURNING ` + userColumns

	created, err := scanUser(q.QueryRow(ctx, query,
		id.String(),
		newUser.FirstName,
		newUser.LastName,
		newUser.Email,
		newUser.PasswordHash,
		newUser.Role,
		newUser.Department,
		newUser.Designation,
		newUser.Phone,
		newUser.AvatarURL,
		newUser.JoiningDate,
		newUser.IsActive,
		newUser.WorkSchedule.StartTime,
		newUser.WorkSchedule.EndTime,
		newUser.WorkSchedule.WorkDays,
		newUser.LeaveBalance.Annual,
		newUser.LeaveBalance.Sick,
		newUser.LeaveBalance.Casual,
		newUser.LeaveBalance.Unpaid,
	))
	if err != nil {
		if isUniqueViolation(err, "users_email_key") {
			return user.User{}, user.ErrUserEmailExists
		}
		if isUniqueViolation(err, "users_employee_code_key") {
			return user.User{}, user.ErrEmployeeCodeExists
		}
		return user.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return created, nil
}

func (r *userRepositoryImpl) getOne(ctx context.Context, where string, arg interface{}) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := "SELECT " + userColumns + " FROM users WHERE " + where
	u, err := scanUser(q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}

// GetByID implements user.UserRepository.
func (r *userRepositoryImpl) GetByID(ctx context.Context, id string) (user.User, error) {
	return r.getOne(ctx, "id = $1", id)
}

// GetByEmail implements user.UserRepository.
func (r *userRepositoryImpl) GetByEmail(ctx context.Context, email string) (user.User, error) {
	return r.getOne(ctx, "email = LOWER($1)", email)
}

// GetByEmployeeCode implements user.UserRepository.
func (r *userRepositoryImpl) GetByEmployeeCode(ctx context.Context, code string) (user.User, error) {
	return r.getOne(ctx, "employee_code = UPPER($1)", code)
}

// Update implements user.UserRepository.
func (r *userRepositoryImpl) Update(ctx context.Context, u user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE users SET
			first_name = $2, last_name = $3, role = $4, department = $5, designation = $6,
			phone = $7, avatar_url = $8, is_active = $9,
			work_start = $10, work_end = $11, work_days = $12,
			leave_balance_annual = $13, leave_balance_sick = $14,
			leave_balance_casual = $15, leave_balance_unpaid = $16,
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + userColumns

	updated, err := scanUser(q.QueryRow(ctx, query,
		u.ID,
		u.FirstName,
		u.LastName,
		u.Role,
		u.Department,
		u.Designation,
		u.Phone,
		u.AvatarURL,
		u.IsActive,
		u.WorkSchedule.StartTime,
		u.WorkSchedule.EndTime,
		u.WorkSchedule.WorkDays,
		u.LeaveBalance.Annual,
		u.LeaveBalance.Sick,
		u.LeaveBalance.Casual,
		u.LeaveBalance.Unpaid,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to update user: %w", err)
	}
	return updated, nil
}

// UpdatePassword implements user.UserRepository.
func (r *userRepositoryImpl) UpdatePassword(ctx context.Context, id string, passwordHash string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE users SET password_hash = $1, updated_at = NOW() WHERE id = $2`, passwordHash, id)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

// UpdateLastLogin implements user.UserRepository.
func (r *userRepositoryImpl) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `UPDATE users SET last_login_at = $1 WHERE id = $2`, at, id); err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}
	return nil
}

// List implements user.UserRepository.
func (r *userRepositoryImpl) List(ctx context.Context, filter user.ListFilter) ([]user.User, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "1 = 1"
	args := []interface{}{}
	argIdx := 1

	if filter.IsActive != nil {
		baseWhere += fmt.Sprintf(" AND is_active = $%d", argIdx)
		args = append(args, *filter.IsActive)
		argIdx++
	}
	if filter.Department != nil && *filter.Department != "" {
		baseWhere += fmt.Sprintf(" AND department = $%d", argIdx)
		args = append(args, *filter.Department)
		argIdx++
	}
	if filter.Role != nil {
		baseWhere += fmt.Sprintf(" AND role = $%d", argIdx)
		args = append(args, string(*filter.Role))
		argIdx++
	}
	if filter.Search != nil && *filter.Search != "" {
		baseWhere += fmt.Sprintf(
			" AND (first_name ILIKE $%[1]d OR last_name ILIKE $%[1]d OR email ILIKE $%[1]d OR employee_code ILIKE $%[1]d)",
			argIdx,
		)
		args = append(args, "%"+*filter.Search+"%")
		argIdx++
	}

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM users WHERE "+baseWhere, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	page := max(filter.Page, 1)
	args = append(args, limit, (page-1)*limit)

	query := fmt.Sprintf(`
		SELECT %s
		FROM users
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, userColumns, baseWhere, argIdx, argIdx+1)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []user.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate users: %w", err)
	}

	return users, total, nil
}

// ListActiveIDsByDepartment implements user.UserRepository.
func (r *userRepositoryImpl) ListActiveIDsByDepartment(ctx context.Context, department string) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT id FROM users WHERE department = $1 AND is_active`, department)
	if err != nil {
		return nil, fmt.Errorf("failed to query department members: %w", err)
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to collect department members: %w", err)
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

// CountActiveNonAdmin implements user.UserRepository.
func (r *userRepositoryImpl) CountActiveNonAdmin(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE is_active AND role <> 'admin'`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count employees: %w", err)
	}
	return count, nil
}

// ListDepartments implements user.UserRepository.
func (r *userRepositoryImpl) ListDepartments(ctx context.Context) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT DISTINCT department FROM users WHERE is_active ORDER BY department`)
	if err != nil {
		return nil, fmt.Errorf("failed to query departments: %w", err)
	}

	departments, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to collect departments: %w", err)
	}
	return departments, nil
}

// DebitLeaveBalance implements user.UserRepository.
func (r *userRepositoryImpl) DebitLeaveBalance(ctx context.Context, id string, balanceType string, days float64) error {
	column, ok := balanceColumns[balanceType]
	if !ok {
		return user.ErrUnknownLeaveBalance
	}

	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`UPDATE users SET %[1]s = %[1]s - $1, updated_at = NOW() WHERE id = $2`, column)
	tag, err := q.Exec(ctx, query, days, id)
	if err != nil {
		return fmt.Errorf("failed to debit leave balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}
