package validator_test

import (
	"net/http"
	"strings"
	"testing"

	"cheapticket/shared/failure"
	"cheapticket/shared/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type contactPayload struct {
	Name  string `json:"name"  validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"omitempty,digits,min=10,max=15"`
}

func (contactPayload) Messages() map[string]string {
	return map[string]string{
		"name.required": "Please provide your name.",
		"email.email":   "Please enter a valid email address (e.g., user@example.com).",
		"phone.digits":  "Phone number must contain only digits.",
	}
}

type guestsPayload struct {
	Adults   int `json:"adults"    validate:"gte=0,lte=9"`
	Children int `json:"childrens" validate:"gte=0"`
}

func (p guestsPayload) Validate() error {
	if p.Adults+p.Children < 1 {
		return failure.FieldError(failure.FieldNonField, "Either adults or children must be at least 1.")
	}

	return nil
}

type leg struct {
	From string `json:"from_location" validate:"notblank"`
}

type tripPayload struct {
	Class string `json:"class" validate:"oneof=economy business first"`
	Legs  []leg  `json:"legs"  validate:"required,min=1,dive"`
}

func fieldsOf(t *testing.T, err error) map[string][]string {
	t.Helper()

	var fail *failure.Failure
	require.ErrorAs(t, err, &fail)
	assert.Equal(t, http.StatusBadRequest, fail.Code)

	return fail.Fields
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name       string
		payload    contactPayload
		wantFields map[string][]string
	}{
		{
			name:    "valid",
			payload: contactPayload{Name: "Jane", Email: "jane@example.com", Phone: "081234567890"},
		},
		{
			name:    "payload messages override defaults",
			payload: contactPayload{Email: "nope", Phone: "12ab"},
			wantFields: map[string][]string{
				"name":  {"Please provide your name."},
				"email": {"Please enter a valid email address (e.g., user@example.com)."},
				"phone": {"Phone number must contain only digits."},
			},
		},
		{
			name:    "default message with param",
			payload: contactPayload{Name: "Jane", Email: "jane@example.com", Phone: "0812"},
			wantFields: map[string][]string{
				"phone": {"phone must be at least 10 characters"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&tt.payload)

			if tt.wantFields == nil {
				assert.NoError(t, err)

				return
			}

			assert.Equal(t, tt.wantFields, fieldsOf(t, err))
		})
	}
}

func TestValidateStruct_NestedKeys(t *testing.T) {
	err := validator.ValidateStruct(&tripPayload{Class: "premium", Legs: []leg{{From: "CGK"}, {From: "  "}}})

	assert.Equal(t, map[string][]string{
		"class":                 {"class must be one of economy business first"},
		"legs[1].from_location": {"from_location may not be blank"},
	}, fieldsOf(t, err))
}

func TestValidateStruct_Checker(t *testing.T) {
	err := validator.ValidateStruct(&guestsPayload{})
	assert.EqualError(t, err, "Either adults or children must be at least 1.")

	assert.NoError(t, validator.ValidateStruct(&guestsPayload{Children: 1}))

	err = validator.ValidateStruct(&guestsPayload{Adults: 12})
	assert.Equal(t, map[string][]string{"adults": {"adults must be less than or equal to 9"}}, fieldsOf(t, err))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{name: "valid body", body: `{"name":"Jane","email":"jane@example.com"}`},
		{name: "empty body", body: "", wantErr: "request body is required"},
		{name: "malformed json", body: `{"name":`, wantErr: "failed to decode request body"},
		{name: "rules still apply", body: `{"email":"jane@example.com"}`, wantErr: "Please provide your name."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var data contactPayload

			err := validator.Validate(strings.NewReader(tt.body), &data)

			if tt.wantErr == "" {
				assert.NoError(t, err)
				assert.Equal(t, "Jane", data.Name)

				return
			}

			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateVar(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		tag     string
		wantMsg string
	}{
		{name: "uuid", value: "7b1f4c1e-3f55-4a8e-9d4c-2c9e5f0a6b11", tag: "required,uuid"},
		{name: "not a uuid", value: "42", tag: "required,uuid", wantMsg: "id must be a valid UUID"},
		{name: "missing", value: "", tag: "required,uuid", wantMsg: "id is required"},
		{name: "digits", value: "0812345678", tag: "digits"},
		{name: "plus sign is not a digit", value: "+62812345678", tag: "digits", wantMsg: "id must contain only digits"},
		{name: "blank", value: "   ", tag: "notblank", wantMsg: "id may not be blank"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateVar("id", tt.value, tt.tag)

			if tt.wantMsg == "" {
				assert.NoError(t, err)

				return
			}

			assert.Equal(t, map[string][]string{"id": {tt.wantMsg}}, fieldsOf(t, err))
		})
	}
}
