package user

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/validator"
)

// UserResponse represents user data in API responses
type UserResponse struct {
	ID           string       `json:"id"`
	EmployeeCode string       `json:"employee_code"`
	FirstName    string       `json:"first_name"`
	LastName     string       `json:"last_name"`
	FullName     string       `json:"full_name"`
	Email        string       `json:"email"`
	Role         string       `json:"role"`
	Department   string       `json:"department"`
	Designation  string       `json:"designation"`
	Phone        *string      `json:"phone,omitempty"`
	AvatarURL    *string      `json:"avatar_url,omitempty"`
	JoiningDate  string       `json:"joining_date"`
	IsActive     bool         `json:"is_active"`
	WorkSchedule WorkSchedule `json:"work_schedule"`
	LeaveBalance LeaveBalance `json:"leave_balance"`
	LastLoginAt  *string      `json:"last_login_at,omitempty"`
	CreatedAt    string       `json:"created_at"`
	UpdatedAt    string       `json:"updated_at"`
}

func ToResponse(u User) UserResponse {
	resp := UserResponse{
		ID:           u.ID,
		EmployeeCode: u.EmployeeCode,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		FullName:     u.FullName(),
		Email:        u.Email,
		Role:         string(u.Role),
		Department:   u.Department,
		Designation:  u.Designation,
		Phone:        u.Phone,
		AvatarURL:    u.AvatarURL,
		JoiningDate:  u.JoiningDate.Format("2006-01-02"),
		IsActive:     u.IsActive,
		WorkSchedule: u.WorkSchedule,
		LeaveBalance: u.LeaveBalance,
		CreatedAt:    u.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    u.UpdatedAt.Format(time.RFC3339),
	}
	if u.LastLoginAt != nil {
		s := u.LastLoginAt.Format(time.RFC3339)
		resp.LastLoginAt = &s
	}
	return resp
}

// UpdateProfileRequest is the self-service profile edit. Nil fields are left unchanged.
type UpdateProfileRequest struct {
	UserID    string  `json:"-"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}

func (r *UpdateProfileRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.FirstName != nil {
		*r.FirstName = strings.TrimSpace(*r.FirstName)
		if validator.IsEmpty(*r.FirstName) {
			errs = append(errs, validator.ValidationError{
				Field:   "first_name",
				Message: "first_name cannot be empty",
			})
		}
	}
	if r.LastName != nil {
		*r.LastName = strings.TrimSpace(*r.LastName)
		if validator.IsEmpty(*r.LastName) {
			errs = append(errs, validator.ValidationError{
				Field:   "last_name",
				Message: "last_name cannot be empty",
			})
		}
	}
	if r.Phone != nil && *r.Phone != "" && !validator.IsValidPhoneNumber(*r.Phone) {
		errs = append(errs, validator.ValidationError{
			Field:   "phone",
			Message: "invalid phone number format",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Apply copies the non-nil fields onto u.
func (r UpdateProfileRequest) Apply(u *User) {
	if r.FirstName != nil {
		u.FirstName = *r.FirstName
	}
	if r.LastName != nil {
		u.LastName = *r.LastName
	}
	if r.Phone != nil {
		u.Phone = r.Phone
	}
	if r.AvatarURL != nil {
		u.AvatarURL = r.AvatarURL
	}
}
