package validation

import (
	"errors"

	"gamelibrary/backend/internal/errs"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Struct checks the `validate` tags on s and returns an *errs.ValidationError
// listing every failed field, or nil.
func Struct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	verr := &errs.ValidationError{}
	for _, fe := range fieldErrs {
		verr.Errors = append(verr.Errors, errs.FieldError{
			Field: fe.Field(),
			Error: formatFieldError(fe),
		})
	}
	return verr
}

func formatFieldError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "max":
		return e.Field() + " must be at most " + e.Param() + " characters"
	case "min":
		return e.Field() + " must be at least " + e.Param() + " characters"
	default:
		return e.Field() + " is invalid"
	}
}
