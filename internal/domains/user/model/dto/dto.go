package dto

import (
	"net/http"
	"time"

	"cheapticket/internal/domains/user/model"
	"cheapticket/shared"
	"cheapticket/shared/constant"
	gDto "cheapticket/shared/dto"
	"cheapticket/shared/timezone"
)

// UserDetails is the profile echoed back to the account owner.
type UserDetails struct {
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	PhoneNumber *string `json:"phone_number"`
	Address     *string `json:"address"`
	Email       string  `json:"email"`
}

func (r *UserDetails) FromModel(user model.User) {
	r.FirstName = user.FirstName
	r.LastName = user.LastName
	r.PhoneNumber = user.PhoneNumber
	r.Address = user.Address
	r.Email = user.Email
}

// UserResponse is the staff-facing account view.
type UserResponse struct {
	ID              string  `json:"id"`
	Email           string  `json:"email"`
	FirstName       string  `json:"first_name"`
	LastName        string  `json:"last_name"`
	PhoneNumber     *string `json:"phone_number"`
	Role            string  `json:"role"`
	IsActive        bool    `json:"is_active"`
	IsStaff         bool    `json:"is_staff"`
	IsSuperuser     bool    `json:"is_superuser"`
	IsEmailVerified bool    `json:"is_email_verified"`
	LastLogin       *string `json:"last_login"`
	DateJoined      string  `json:"date_joined"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(user model.User) {
	r.ID = user.ID
	r.Email = user.Email
	r.FirstName = user.FirstName
	r.LastName = user.LastName
	r.PhoneNumber = user.PhoneNumber
	r.Role = user.Role()
	r.IsActive = user.IsActive
	r.IsStaff = user.IsStaff
	r.IsSuperuser = user.IsSuperuser
	r.IsEmailVerified = user.IsEmailVerified
	r.LastLogin = formatTime(user.LastLogin)
	r.DateJoined = timezone.Format(user.DateJoined, constant.DateFormat)
	r.Metadata.FromModel(user.Metadata)
}

// CustomerResponse is the onboarding-focused view of a non-staff account.
type CustomerResponse struct {
	ID                    string  `json:"id"`
	Email                 string  `json:"email"`
	FirstName             string  `json:"first_name"`
	LastName              string  `json:"last_name"`
	PhoneNumber           *string `json:"phone_number"`
	Address               *string `json:"address"`
	IsOnboardingCompleted bool    `json:"is_onboarding_completed"`
	IsAuthRequired        bool    `json:"is_auth_required"`
	IsEmailVerified       bool    `json:"is_email_verified"`
	IsActive              bool    `json:"is_active"`
	DateJoined            string  `json:"date_joined"`
}

func (r *CustomerResponse) FromModel(user model.User) {
	r.ID = user.ID
	r.Email = user.Email
	r.FirstName = user.FirstName
	r.LastName = user.LastName
	r.PhoneNumber = user.PhoneNumber
	r.Address = user.Address
	r.IsOnboardingCompleted = user.IsOnboardingCompleted
	r.IsAuthRequired = user.IsAuthRequired
	r.IsEmailVerified = user.IsEmailVerified
	r.IsActive = user.IsActive
	r.DateJoined = timezone.Format(user.DateJoined, constant.DateFormat)
}

type GetUsersResponse struct {
	Users     []UserResponse `json:"users"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetUsersResponse) FromModels(models []model.User, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Users = make([]UserResponse, len(models))
	for i, mod := range models {
		r.Users[i].FromModel(mod)
	}
}

type GetCustomersResponse struct {
	Customers []CustomerResponse `json:"customers"`
	TotalPage int                `json:"total_page"`
	TotalData int                `json:"total_data"`
}

func (r *GetCustomersResponse) FromModels(models []model.User, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Customers = make([]CustomerResponse, len(models))
	for i, mod := range models {
		r.Customers[i].FromModel(mod)
	}
}

// MessageStaffChangeForbidden rejects a staff flag edit by a non-superuser.
const MessageStaffChangeForbidden = "Only superusers can change staff status."

// UpdateUserRequest is the staff edit form. Nil fields are left untouched.
// IsStaff may only be set by a superuser.
type UpdateUserRequest struct {
	FirstName             *string `json:"first_name,omitempty"              db:"first_name"              validate:"omitempty,max=50"`
	LastName              *string `json:"last_name,omitempty"               db:"last_name"               validate:"omitempty,max=50"`
	PhoneNumber           *string `json:"phone_number,omitempty"            db:"phone_number"            validate:"omitempty,digits,min=10,max=15"`
	Address               *string `json:"address,omitempty"                 db:"address"`
	IsActive              *bool   `json:"is_active,omitempty"               db:"is_active"`
	IsStaff               *bool   `json:"is_staff,omitempty"                db:"is_staff"`
	IsOnboardingCompleted *bool   `json:"is_onboarding_completed,omitempty" db:"is_onboarding_completed"`
	IsAuthRequired        *bool   `json:"is_auth_required,omitempty"        db:"is_auth_required"`
}

func (UpdateUserRequest) Messages() map[string]string {
	return map[string]string{
		"phone_number.digits": "Phone number must contain only digits.",
		"phone_number.min":    "Phone number must be between 10 and 15 digits.",
		"phone_number.max":    "Phone number must be between 10 and 15 digits.",
	}
}

// ListFilter narrows the staff account listings.
type ListFilter struct {
	IsStaff               *bool
	IsActive              *bool
	IsOnboardingCompleted *bool
	IsAuthRequired        *bool
	Search                string
}

// FromRequest reads the optional boolean flags from the query string.
func (f *ListFilter) FromRequest(r *http.Request, search string) {
	query := r.URL.Query()

	f.IsStaff = shared.ConvertStringToBool(query.Get(model.FieldIsStaff))
	f.IsActive = shared.ConvertStringToBool(query.Get(model.FieldIsActive))
	f.IsOnboardingCompleted = shared.ConvertStringToBool(query.Get(model.FieldIsOnboardingCompleted))
	f.IsAuthRequired = shared.ConvertStringToBool(query.Get(model.FieldIsAuthRequired))
	f.Search = search
}

// ToFilterGroup ANDs the set flags with a search over email, names and phone.
func (f ListFilter) ToFilterGroup() gDto.FilterGroup {
	group := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	flags := []struct {
		field string
		value *bool
	}{
		{model.FieldIsStaff, f.IsStaff},
		{model.FieldIsActive, f.IsActive},
		{model.FieldIsOnboardingCompleted, f.IsOnboardingCompleted},
		{model.FieldIsAuthRequired, f.IsAuthRequired},
	}

	for _, flag := range flags {
		if flag.value == nil {
			continue
		}

		group.Add(gDto.Filter{
			Field:    flag.field,
			Value:    *flag.value,
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		})
	}

	group.Add(gDto.SearchFilter(f.Search,
		model.TableName+"."+model.FieldEmail,
		model.TableName+"."+model.FieldFirstName,
		model.TableName+"."+model.FieldLastName,
		model.TableName+"."+model.FieldPhoneNumber,
	))

	return group
}

// SortableFields are the columns staff listings may order by.
var SortableFields = []string{
	model.FieldEmail,
	model.FieldFirstName,
	model.FieldLastName,
	model.FieldDateJoined,
	model.FieldLastLogin,
	constant.FieldCreatedAt,
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}

	formatted := timezone.Format(*t, constant.DateFormat)

	return &formatted
}
