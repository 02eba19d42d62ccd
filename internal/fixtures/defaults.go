package fixtures

import (
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/user"
)

// ==========================================
// DEFAULT ACCOUNTS
// ==========================================

// SeedUser is a demo account together with its plain-text password.
type SeedUser struct {
	User     user.User
	Password string
}

func newSeedUser(first, last, email, password string, role user.Role, department, designation string) SeedUser {
	return SeedUser{
		User: user.User{
			FirstName:    first,
			LastName:     last,
			Email:        email,
			Role:         role,
			Department:   department,
			Designation:  designation,
			IsActive:     true,
			WorkSchedule: user.DefaultWorkSchedule(),
			LeaveBalance: user.DefaultLeaveBalance(),
		},
		Password: password,
	}
}

// GetDefaultUsers returns the demo admin, manager and employees, in creation order.
func GetDefaultUsers() []SeedUser {
	return []SeedUser{
		newSeedUser("System", "Admin", "admin@company.com", "Admin@123", user.RoleAdmin, "IT", "System Administrator"),
		newSeedUser("Sarah", "Johnson", "manager@company.com", "Manager@123", user.RoleManager, "Engineering", "Engineering Manager"),
		newSeedUser("John", "Doe", "john.doe@company.com", "Emp@1234", user.RoleEmployee, "Engineering", "Software Engineer"),
		newSeedUser("Jane", "Smith", "jane.smith@company.com", "Emp@1234", user.RoleEmployee, "Engineering", "Frontend Developer"),
		newSeedUser("Mike", "Wilson", "mike.wilson@company.com", "Emp@1234", user.RoleEmployee, "HR", "HR Executive"),
		newSeedUser("Emily", "Chen", "emily.chen@company.com", "Emp@1234", user.RoleEmployee, "Finance", "Financial Analyst"),
	}
}

// ==========================================
// DEMO ATTENDANCE
// ==========================================

// DemoShift is one seeded working day for one employee.
type DemoShift struct {
	WorkDate time.Time
	ClockIn  time.Time
	ClockOut time.Time
}

// GetDemoWeek returns shifts for the weekdays among the seven days ending on
// today. Start and end minutes vary per employee so some arrivals are late.
func GetDemoWeek(today time.Time, loc *time.Location, employeeIndex int) []DemoShift {
	shifts := []DemoShift{}
	for offset := 6; offset >= 0; offset-- {
		day := today.In(loc).AddDate(0, 0, -offset)
		if wd := day.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}

		y, m, d := day.Date()
		inMinute := (offset*7 + employeeIndex*5) % 20
		outMinute := (offset*11 + employeeIndex*3) % 30
		shifts = append(shifts, DemoShift{
			WorkDate: timesheet.DateOf(day, loc),
			ClockIn:  time.Date(y, m, d, 9, inMinute, 0, 0, loc),
			ClockOut: time.Date(y, m, d, 18, outMinute, 0, 0, loc),
		})
	}
	return shifts
}

// ToClockIn turns a shift into the clock-in write, applying the lateness rule
// against schedule.
func (s DemoShift) ToClockIn(employeeID string, schedule user.WorkSchedule) (timesheet.ClockInParams, error) {
	start, err := schedule.StartOn(s.ClockIn)
	if err != nil {
		return timesheet.ClockInParams{}, err
	}

	late, lateBy := timesheet.EvaluateLateness(s.ClockIn, start)
	status := timesheet.StatusPresent
	if late {
		status = timesheet.StatusLate
	}

	return timesheet.ClockInParams{
		EmployeeID:    employeeID,
		WorkDate:      s.WorkDate,
		ClockIn:       s.ClockIn,
		Status:        status,
		IsLate:        late,
		LateByMinutes: lateBy,
	}, nil
}
