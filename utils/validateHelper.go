package utils

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateStruct runs validator tags over a document input and converts the
// first failure into a ValidationError so callers get the typed taxonomy
// instead of validator internals.
func ValidateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
		fe := errs[0]
		return NewValidationError(fe.Field(), "failed on rule '"+fe.Tag()+"'")
	}
	return err
}
