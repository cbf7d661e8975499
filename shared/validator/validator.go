package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"unicode"

	"cheapticket/shared/failure"

	val "github.com/go-playground/validator/v10"
)

var validate *val.Validate

// Checker is implemented by request payloads with rules spanning more than
// one field. It runs only after the tag rules pass.
type Checker interface {
	Validate() error
}

// Messenger lets a payload override tag messages. Keys are "<json field>.<tag>".
type Messenger interface {
	Messages() map[string]string
}

func jsonTagName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}

	if name == "" {
		return field.Name
	}

	return name
}

func digitsValidation(fl val.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return false
	}

	for _, r := range value {
		if !unicode.IsDigit(r) {
			return false
		}
	}

	return true
}

func notBlankValidation(fl val.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func init() {
	validate = val.New(val.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(jsonTagName)

	err := validate.RegisterValidation("digits", digitsValidation)
	if err != nil {
		panic(err)
	}

	err = validate.RegisterValidation("notblank", notBlankValidation)
	if err != nil {
		panic(err)
	}
}

// Validate decodes one JSON document from r into data and validates it.
// An empty body and malformed JSON are both bad requests.
func Validate[T any](r io.Reader, data *T) error {
	decoder := json.NewDecoder(r)
	err := decoder.Decode(data)

	if err != nil {
		if errors.Is(err, io.EOF) {
			return failure.BadRequestFromString("request body is required")
		}

		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return ValidateStruct(data)
}

// ValidateStruct runs the tag rules and then the payload's own Validate, if any.
func ValidateStruct[T any](data *T) error {
	err := validate.Struct(data)
	if err != nil {
		var overrides map[string]string
		if messenger, ok := any(data).(Messenger); ok {
			overrides = messenger.Messages()
		}

		return failure.Validation(fieldMessages(err, overrides)) //nolint:wrapcheck
	}

	if checker, ok := any(data).(Checker); ok {
		return checker.Validate() //nolint:wrapcheck
	}

	return nil
}

// ValidateVar checks a single value, such as a path parameter. name stands in
// for the field in the rendered message.
func ValidateVar(name string, value any, tag string) error {
	if err := validate.Var(value, tag); err != nil {
		return failure.FieldError(name, message(err, name)) //nolint:wrapcheck
	}

	return nil
}
