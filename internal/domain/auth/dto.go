package auth

import (
	"strings"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/validator"
)

const MinPasswordLength = 6

// PasswordHashCost is the bcrypt cost for stored password hashes.
const PasswordHashCost = 12

type RegisterRequest struct {
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	Email       string  `json:"email"`
	Password    string  `json:"password"`
	Department  string  `json:"department"`
	Designation string  `json:"designation"`
	Phone       *string `json:"phone,omitempty"`
}

func (r *RegisterRequest) Validate() error {
	var errs validator.ValidationErrors

	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Department = strings.TrimSpace(r.Department)
	r.Designation = strings.TrimSpace(r.Designation)

	if validator.IsEmpty(r.FirstName) {
		errs = append(errs, validator.ValidationError{
			Field:   "first_name",
			Message: "first_name is required",
		})
	}
	if validator.IsEmpty(r.LastName) {
		errs = append(errs, validator.ValidationError{
			Field:   "last_name",
			Message: "last_name is required",
		})
	}

	errs = append(errs, validateEmail(r.Email)...)
	errs = append(errs, validatePassword("password", r.Password)...)

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

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	errs = append(errs, validateEmail(r.Email)...)

	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ChangePasswordRequest struct {
	UserID          string `json:"-"`
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (r *ChangePasswordRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.CurrentPassword) {
		errs = append(errs, validator.ValidationError{
			Field:   "current_password",
			Message: "current_password is required",
		})
	}
	errs = append(errs, validatePassword("new_password", r.NewPassword)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type TokenResponse struct {
	AccessToken          string            `json:"access_token"`
	AccessTokenExpiresIn int64             `json:"access_token_expires_in"`
	User                 user.UserResponse `json:"user"`
}

func validateEmail(email string) validator.ValidationErrors {
	if validator.IsEmpty(email) {
		return validator.ValidationErrors{{Field: "email", Message: "email is required"}}
	}
	if len(email) > 254 {
		return validator.ValidationErrors{{Field: "email", Message: "email must not exceed 254 characters"}}
	}
	if !validator.IsValidEmail(email) {
		return validator.ValidationErrors{{Field: "email", Message: "email must be a valid email address"}}
	}
	return nil
}

// ValidatePassword checks a new password against the length policy.
func ValidatePassword(field, password string) error {
	if errs := validatePassword(field, password); len(errs) > 0 {
		return errs
	}
	return nil
}

func validatePassword(field, password string) validator.ValidationErrors {
	if validator.IsEmpty(password) {
		return validator.ValidationErrors{{Field: field, Message: field + " is required"}}
	}
	if len(password) < MinPasswordLength {
		return validator.ValidationErrors{{Field: field, Message: field + " must be at least 6 characters long"}}
	}
	if len(password) > 72 {
		return validator.ValidationErrors{{Field: field, Message: field + " must not exceed 72 characters"}}
	}
	return nil
}
