package validate

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

var v = validator.New(validator.WithRequiredStructEnabled())

// Struct checks the `validate` tags on a request DTO and returns per-field
// error messages, or nil when the struct is valid.
func Struct(req interface{}) map[string]string {
	err := v.Struct(req)
	if err == nil {
		return nil
	}

	details := make(map[string]string)
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			details[fe.Field()] = fe.Error()
		}
	} else {
		details["request"] = err.Error()
	}
	return details
}
