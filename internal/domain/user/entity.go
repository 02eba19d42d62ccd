package user

import (
	"fmt"
	"time"
)

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleManager  Role = "manager"
	RoleEmployee Role = "employee"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleEmployee:
		return true
	}
	return false
}

const (
	DefaultDepartment  = "General"
	DefaultDesignation = "Employee"
	DefaultWorkStart   = "09:00"
	DefaultWorkEnd     = "18:00"
)

// WorkSchedule is the scheduled working window. WorkDays holds weekday numbers
// with 0 = Sunday.
type WorkSchedule struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	WorkDays  []int  `json:"work_days"`
}

func DefaultWorkSchedule() WorkSchedule {
	return WorkSchedule{
		StartTime: DefaultWorkStart,
		EndTime:   DefaultWorkEnd,
		WorkDays:  []int{1, 2, 3, 4, 5},
	}
}

// StartOn returns the scheduled start on the calendar day of day, in day's location.
func (s WorkSchedule) StartOn(day time.Time) (time.Time, error) {
	start := s.StartTime
	if start == "" {
		start = DefaultWorkStart
	}
	clock, err := time.Parse("15:04", start)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid work schedule start %q: %w", start, err)
	}
	y, m, d := day.Date()
	return time.Date(y, m, d, clock.Hour(), clock.Minute(), 0, 0, day.Location()), nil
}

// LeaveBalance holds remaining days per balance-tracked leave type.
type LeaveBalance struct {
	Annual float64 `json:"annual"`
	Sick   float64 `json:"sick"`
	Casual float64 `json:"casual"`
	Unpaid float64 `json:"unpaid"`
}

func DefaultLeaveBalance() LeaveBalance {
	return LeaveBalance{Annual: 21, Sick: 10, Casual: 7, Unpaid: 0}
}

type User struct {
	ID           string
	EmployeeCode string
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	Role         Role
	Department   string
	Designation  string
	Phone        *string
	AvatarURL    *string
	JoiningDate  time.Time
	IsActive     bool
	WorkSchedule WorkSchedule
	LeaveBalance LeaveBalance
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u User) IsManager() bool {
	return u.Role == RoleManager || u.Role == RoleAdmin
}
