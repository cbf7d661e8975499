package validator

import (
	"errors"
	"strings"

	"cheapticket/shared/failure"

	val "github.com/go-playground/validator/v10"
)

var (
	messages = map[string]string{
		"required": "{field} is required",
		"gte":      "{field} must be greater than or equal to {param}",
		"lte":      "{field} must be less than or equal to {param}",
		"oneof":    "{field} must be one of {param}",
		"max":      "{field} must be at most {param} characters",
		"min":      "{field} must be at least {param} characters",
		"email":    "{field} must be a valid email address",
		"len":      "{field} must be exactly {param} characters",
		"datetime": "{field} must match the format {param}",
		"digits":   "{field} must contain only digits",
		"notblank": "{field} may not be blank",
		"uuid":     "{field} must be a valid UUID",
		"dive":     "{field} is invalid",
	}
)

func render(fieldErr val.FieldError, overrides map[string]string, fallbackName string) string {
	field := fieldErr.Field()
	if field == "" {
		field = fallbackName
	}

	if msg, ok := overrides[field+"."+fieldErr.Tag()]; ok {
		return msg
	}

	errStr := messages[fieldErr.Tag()]
	if errStr == "" {
		return fieldErr.Error()
	}

	errStr = strings.ReplaceAll(errStr, "{field}", field)
	errStr = strings.ReplaceAll(errStr, "{param}", fieldErr.Param())

	return errStr
}

// fieldKey strips the root struct from the namespace so nested fields read
// as "legs[0].from_location".
func fieldKey(fieldErr val.FieldError) string {
	namespace := fieldErr.Namespace()
	if _, rest, found := strings.Cut(namespace, "."); found {
		return rest
	}

	return fieldErr.Field()
}

func fieldMessages(err error, overrides map[string]string) map[string][]string {
	var valErrors val.ValidationErrors

	if !errors.As(err, &valErrors) {
		return map[string][]string{failure.FieldNonField: {err.Error()}}
	}

	fields := map[string][]string{}

	for _, fieldErr := range valErrors {
		key := fieldKey(fieldErr)
		fields[key] = append(fields[key], render(fieldErr, overrides, ""))
	}

	return fields
}

// message renders the first failed rule of a single-value check.
func message(err error, name string) string {
	var valErrors val.ValidationErrors

	if errors.As(err, &valErrors) && len(valErrors) > 0 {
		return render(valErrors[0], nil, name)
	}

	return err.Error()
}
