package fixtures

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/database"
	"golang.org/x/crypto/bcrypt"
)

// SeedResult reports what Run inserted.
type SeedResult struct {
	Users      []SeedUser
	Timesheets int
}

// Seeder loads the demo data set through the regular repositories.
type Seeder struct {
	db         database.Transactor
	users      user.UserRepository
	timesheets timesheet.TimesheetRepository
	loc        *time.Location
	bcryptCost int
	now        func() time.Time
}

func NewSeeder(db database.Transactor, users user.UserRepository, timesheets timesheet.TimesheetRepository, loc *time.Location) *Seeder {
	if loc == nil {
		loc = time.UTC
	}
	return &Seeder{
		db:         db,
		users:      users,
		timesheets: timesheets,
		loc:        loc,
		bcryptCost: auth.PasswordHashCost,
		now:        time.Now,
	}
}

// Run inserts the default accounts and a week of approved attendance for
// everyone except the admin. All writes share one transaction.
func (s *Seeder) Run(ctx context.Context) (SeedResult, error) {
	var result SeedResult

	err := s.db.WithinTx(ctx, func(ctx context.Context) error {
		var approverID string
		for i, seed := range GetDefaultUsers() {
			hash, err := bcrypt.GenerateFromPassword([]byte(seed.Password), s.bcryptCost)
			if err != nil {
				return fmt.Errorf("failed to hash password for %s: %w", seed.User.Email, err)
			}

			u := seed.User
			u.PasswordHash = string(hash)
			u.JoiningDate = timesheet.DateOf(s.now(), s.loc)

			created, err := s.users.Create(ctx, u)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", u.Email, err)
			}
			result.Users = append(result.Users, SeedUser{User: created, Password: seed.Password})

			if created.Role == user.RoleAdmin {
				approverID = created.ID
				continue
			}

			n, err := s.seedWeek(ctx, created, i, approverID)
			if err != nil {
				return err
			}
			result.Timesheets += n
		}
		return nil
	})
	if err != nil {
		return SeedResult{}, err
	}

	slog.Info("seed completed", "users", len(result.Users), "timesheets", result.Timesheets)
	return result, nil
}

func (s *Seeder) seedWeek(ctx context.Context, employee user.User, index int, approverID string) (int, error) {
	shifts := GetDemoWeek(s.now(), s.loc, index)
	for _, shift := range shifts {
		params, err := shift.ToClockIn(employee.ID, employee.WorkSchedule)
		if err != nil {
			return 0, err
		}

		record, err := s.timesheets.ClockIn(ctx, params)
		if err != nil {
			return 0, fmt.Errorf("failed to clock in %s on %s: %w", employee.EmployeeCode, shift.WorkDate.Format("2006-01-02"), err)
		}

		if err := record.ClockOutAt(shift.ClockOut, nil); err != nil {
			return 0, err
		}
		if _, err := s.timesheets.Update(ctx, record); err != nil {
			return 0, fmt.Errorf("failed to clock out %s: %w", employee.EmployeeCode, err)
		}

		if approverID != "" {
			if _, err := s.timesheets.Approve(ctx, record.ID, approverID); err != nil {
				return 0, fmt.Errorf("failed to approve timesheet %s: %w", record.ID, err)
			}
		}
	}
	return len(shifts), nil
}

// Reset empties the attendance tables and restarts employee codes at 1001.
func Reset(ctx context.Context, db database.Querier) error {
	statements := []string{
		"TRUNCATE TABLE leaves, timesheets, users CASCADE",
		"ALTER SEQUENCE employee_code_seq RESTART WITH 1001",
	}
	for _, stmt := range statements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to reset data: %w", err)
		}
	}
	return nil
}
