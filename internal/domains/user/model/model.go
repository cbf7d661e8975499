package model

import (
	"strings"
	"time"

	"cheapticket/shared/constant"
	"cheapticket/shared/model"
)

const (
	TableName  = "users"
	EntityName = "user"

	FieldID                    = "id"
	FieldEmail                 = "email"
	FieldPassword              = "password"
	FieldFirstName             = "first_name"
	FieldLastName              = "last_name"
	FieldPhoneNumber           = "phone_number"
	FieldAddress               = "address"
	FieldOTP                   = "otp"
	FieldOTPCreatedAt          = "otp_created_at"
	FieldIsEmailVerified       = "is_email_verified"
	FieldIsOnboardingCompleted = "is_onboarding_completed"
	FieldIsAuthRequired        = "is_auth_required"
	FieldIsActive              = "is_active"
	FieldIsStaff               = "is_staff"
	FieldIsSuperuser           = "is_superuser"
	FieldLastLogin             = "last_login"
	FieldDateJoined            = "date_joined"
)

const anonymousName = "Anonymous"

// User is the single account table. Customer and staff views are projections of it.
type User struct {
	ID                    string     `db:"id"`
	Email                 string     `db:"email"`
	Password              string     `db:"password"`
	FirstName             string     `db:"first_name"`
	LastName              string     `db:"last_name"`
	PhoneNumber           *string    `db:"phone_number"`
	Address               *string    `db:"address"`
	OTP                   *string    `db:"otp"`
	OTPCreatedAt          *time.Time `db:"otp_created_at"`
	IsEmailVerified       bool       `db:"is_email_verified"`
	IsOnboardingCompleted bool       `db:"is_onboarding_completed"`
	IsAuthRequired        bool       `db:"is_auth_required"`
	IsActive              bool       `db:"is_active"`
	IsStaff               bool       `db:"is_staff"`
	IsSuperuser           bool       `db:"is_superuser"`
	LastLogin             *time.Time `db:"last_login"`
	DateJoined            time.Time  `db:"date_joined"`
	model.Metadata
}

// Role derives the access role from the permission flags.
func (u User) Role() string {
	switch {
	case u.IsSuperuser:
		return constant.RoleSuperuser
	case u.IsStaff:
		return constant.RoleStaff
	default:
		return constant.RoleCustomer
	}
}

// FullName joins first and last name, skipping blanks.
func (u User) FullName() string {
	return strings.TrimSpace(strings.Join([]string{u.FirstName, u.LastName}, " "))
}

// DisplayName prefers the first name, then the email.
func (u User) DisplayName() string {
	return DisplayName(u.FirstName, u.Email)
}

// DisplayName is shared with booking rows, which only carry the joined owner columns.
func DisplayName(firstName, email string) string {
	if firstName != "" {
		return firstName
	}

	if email != "" {
		return email
	}

	return anonymousName
}

// NormalizeEmail trims and lowercases an address so lookups and the unique
// index agree.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (u User) Phone() string {
	if u.PhoneNumber == nil {
		return ""
	}

	return *u.PhoneNumber
}
