package employee

import (
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/validator"
)

var validRoles = []string{string(user.RoleAdmin), string(user.RoleManager), string(user.RoleEmployee)}

type CreateEmployeeRequest struct {
	FirstName    string             `json:"first_name"`
	LastName     string             `json:"last_name"`
	Email        string             `json:"email"`
	Password     string             `json:"password"`
	Role         string             `json:"role"`
	Department   string             `json:"department"`
	Designation  string             `json:"designation"`
	Phone        *string            `json:"phone,omitempty"`
	JoiningDate  *string            `json:"joining_date,omitempty"` // YYYY-MM-DD
	WorkSchedule *user.WorkSchedule `json:"work_schedule,omitempty"`
	LeaveBalance *user.LeaveBalance `json:"leave_balance,omitempty"`

	// Parsed by Validate
	Joining *time.Time `json:"-"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))

	if validator.IsEmpty(r.FirstName) {
		errs = append(errs, validator.ValidationError{Field: "first_name", Message: "first_name is required"})
	}
	if validator.IsEmpty(r.LastName) {
		errs = append(errs, validator.ValidationError{Field: "last_name", Message: "last_name is required"})
	}
	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "email is required"})
	} else if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "email must be a valid email address"})
	}
	if len(r.Password) < 6 {
		errs = append(errs, validator.ValidationError{Field: "password", Message: "password must be at least 6 characters long"})
	}

	if r.Role == "" {
		r.Role = string(user.RoleEmployee)
	}
	if !validator.IsInSlice(r.Role, validRoles) {
		errs = append(errs, validator.ValidationError{Field: "role", Message: "role must be one of: admin, manager, employee"})
	}

	if r.Phone != nil && *r.Phone != "" && !validator.IsValidPhoneNumber(*r.Phone) {
		errs = append(errs, validator.ValidationError{Field: "phone", Message: "invalid phone number format"})
	}

	if r.JoiningDate != nil && *r.JoiningDate != "" {
		joining, ok := validator.IsValidDate(*r.JoiningDate)
		if !ok {
			errs = append(errs, validator.ValidationError{Field: "joining_date", Message: "joining_date must be in YYYY-MM-DD format"})
		} else {
			r.Joining = &joining
		}
	}

	if r.WorkSchedule != nil {
		errs = append(errs, validateWorkSchedule(*r.WorkSchedule)...)
	}
	if r.LeaveBalance != nil {
		errs = append(errs, validateLeaveBalance(*r.LeaveBalance)...)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ToUser builds the entity with defaults for every omitted attribute.
func (r CreateEmployeeRequest) ToUser(passwordHash string, now time.Time) user.User {
	u := user.User{
		FirstName:    r.FirstName,
		LastName:     r.LastName,
		Email:        r.Email,
		PasswordHash: passwordHash,
		Role:         user.Role(r.Role),
		Department:   strings.TrimSpace(r.Department),
		Designation:  strings.TrimSpace(r.Designation),
		Phone:        r.Phone,
		JoiningDate:  now,
		IsActive:     true,
		WorkSchedule: user.DefaultWorkSchedule(),
		LeaveBalance: user.DefaultLeaveBalance(),
	}
	if u.Department == "" {
		u.Department = user.DefaultDepartment
	}
	if u.Designation == "" {
		u.Designation = user.DefaultDesignation
	}
	if r.Joining != nil {
		u.JoiningDate = *r.Joining
	}
	if r.WorkSchedule != nil {
		u.WorkSchedule = *r.WorkSchedule
	}
	if r.LeaveBalance != nil {
		u.LeaveBalance = *r.LeaveBalance
	}
	return u
}

// UpdateEmployeeRequest carries admin edits. Nil fields are left unchanged.
type UpdateEmployeeRequest struct {
	ID           string             `json:"-"`
	FirstName    *string            `json:"first_name,omitempty"`
	LastName     *string            `json:"last_name,omitempty"`
	Phone        *string            `json:"phone,omitempty"`
	Department   *string            `json:"department,omitempty"`
	Designation  *string            `json:"designation,omitempty"`
	Role         *string            `json:"role,omitempty"`
	IsActive     *bool              `json:"is_active,omitempty"`
	WorkSchedule *user.WorkSchedule `json:"work_schedule,omitempty"`
	LeaveBalance *user.LeaveBalance `json:"leave_balance,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "invalid employee id"})
	}
	if r.FirstName != nil && validator.IsEmpty(*r.FirstName) {
		errs = append(errs, validator.ValidationError{Field: "first_name", Message: "first_name cannot be empty"})
	}
	if r.LastName != nil && validator.IsEmpty(*r.LastName) {
		errs = append(errs, validator.ValidationError{Field: "last_name", Message: "last_name cannot be empty"})
	}
	if r.Phone != nil && *r.Phone != "" && !validator.IsValidPhoneNumber(*r.Phone) {
		errs = append(errs, validator.ValidationError{Field: "phone", Message: "invalid phone number format"})
	}
	if r.Department != nil && validator.IsEmpty(*r.Department) {
		errs = append(errs, validator.ValidationError{Field: "department", Message: "department cannot be empty"})
	}
	if r.Designation != nil && validator.IsEmpty(*r.Designation) {
		errs = append(errs, validator.ValidationError{Field: "designation", Message: "designation cannot be empty"})
	}
	if r.Role != nil && !validator.IsInSlice(*r.Role, validRoles) {
		errs = append(errs, validator.ValidationError{Field: "role", Message: "role must be one of: admin, manager, employee"})
	}
	if r.WorkSchedule != nil {
		errs = append(errs, validateWorkSchedule(*r.WorkSchedule)...)
	}
	if r.LeaveBalance != nil {
		errs = append(errs, validateLeaveBalance(*r.LeaveBalance)...)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Apply copies the non-nil fields onto u.
func (r UpdateEmployeeRequest) Apply(u *user.User) {
	if r.FirstName != nil {
		u.FirstName = strings.TrimSpace(*r.FirstName)
	}
	if r.LastName != nil {
		u.LastName = strings.TrimSpace(*r.LastName)
	}
	if r.Phone != nil {
		u.Phone = r.Phone
	}
	if r.Department != nil {
		u.Department = strings.TrimSpace(*r.Department)
	}
	if r.Designation != nil {
		u.Designation = strings.TrimSpace(*r.Designation)
	}
	if r.Role != nil {
		u.Role = user.Role(*r.Role)
	}
	if r.IsActive != nil {
		u.IsActive = *r.IsActive
	}
	if r.WorkSchedule != nil {
		u.WorkSchedule = *r.WorkSchedule
	}
	if r.LeaveBalance != nil {
		u.LeaveBalance = *r.LeaveBalance
	}
}

type ResetPasswordRequest struct {
	ID          string `json:"-"`
	NewPassword string `json:"new_password"`
}

func (r *ResetPasswordRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "invalid employee id"})
	}
	if len(r.NewPassword) < 6 {
		errs = append(errs, validator.ValidationError{Field: "new_password", Message: "new_password must be at least 6 characters long"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeFilter struct {
	Department *string `json:"department,omitempty"`
	Role       *string `json:"role,omitempty"`
	IsActive   *bool   `json:"is_active,omitempty"` // defaults to true
	Search     *string `json:"search,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *EmployeeFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Role != nil && *f.Role != "" && !validator.IsInSlice(*f.Role, validRoles) {
		errs = append(errs, validator.ValidationError{Field: "role", Message: "role must be one of: admin, manager, employee"})
	}
	if f.IsActive == nil {
		active := true
		f.IsActive = &active
	}

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{Field: "page", Message: "page must be a positive number"})
	}
	if f.Page == 0 {
		f.Page = 1
	}
	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{Field: "limit", Message: "limit must be a positive number"})
	}
	if f.Limit == 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{Field: "limit", Message: "limit must not exceed 100"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ToListFilter converts the validated request filter for the repository.
func (f EmployeeFilter) ToListFilter() user.ListFilter {
	lf := user.ListFilter{
		Department: f.Department,
		IsActive:   f.IsActive,
		Search:     f.Search,
		Page:       f.Page,
		Limit:      f.Limit,
	}
	if f.Role != nil && *f.Role != "" {
		role := user.Role(*f.Role)
		lf.Role = &role
	}
	return lf
}

type ListEmployeeResponse struct {
	TotalCount int64               `json:"total_count"`
	Page       int                 `json:"page"`
	Limit      int                 `json:"limit"`
	TotalPages int                 `json:"total_pages"`
	Showing    string              `json:"showing"`
	Employees  []user.UserResponse `json:"employees"`
}

func validateWorkSchedule(ws user.WorkSchedule) validator.ValidationErrors {
	var errs validator.ValidationErrors

	if !validator.IsValidClock(ws.StartTime) {
		errs = append(errs, validator.ValidationError{Field: "work_schedule.start_time", Message: "start_time must be in HH:MM format"})
	}
	if !validator.IsValidClock(ws.EndTime) {
		errs = append(errs, validator.ValidationError{Field: "work_schedule.end_time", Message: "end_time must be in HH:MM format"})
	}
	for _, d := range ws.WorkDays {
		if d < 0 || d > 6 {
			errs = append(errs, validator.ValidationError{
				Field:   "work_schedule.work_days",
				Message: fmt.Sprintf("invalid weekday %d: must be between 0 (Sunday) and 6 (Saturday)", d),
			})
			break
		}
	}
	return errs
}

func validateLeaveBalance(b user.LeaveBalance) validator.ValidationErrors {
	if b.Annual < 0 || b.Sick < 0 || b.Casual < 0 || b.Unpaid < 0 {
		return validator.ValidationErrors{{Field: "leave_balance", Message: "leave balances must not be negative"}}
	}
	return nil
}
