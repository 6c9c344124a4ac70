package validation

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	// validate is a singleton validator instance
	validate *validator.Validate

	// busPattern accepts "name" and "name.1[.2...]": no whitespace, numeric node suffixes.
	busPattern = regexp.MustCompile(`^[^.\s]+(\.[0-9]+)*$`)
	// elementPattern accepts engine element names (no dots, no whitespace).
	elementPattern = regexp.MustCompile(`^[^.\s]+$`)
)

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	// Tags used by snapshot decoding. Registration only fails on programmer error.
	mustRegister("busid", func(fl validator.FieldLevel) bool {
		return busPattern.MatchString(fl.Field().String())
	})
	mustRegister("element", func(fl validator.FieldLevel) bool {
		return elementPattern.MatchString(fl.Field().String())
	})
}

func mustRegister(tag string, fn validator.Func) {
	if err := validate.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("validation: register %q: %v", tag, err))
	}
}

// Struct validates v against its `validate` struct tags and returns the first
// failure in a readable form.
func Struct(v any) error {
	if v == nil {
		return errors.New("value cannot be nil")
	}
	if err := validate.Struct(v); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// BusIdentifier reports whether s is a well-formed bus identifier.
func BusIdentifier(s string) error {
	if !busPattern.MatchString(s) {
		return fmt.Errorf("bus identifier %q is malformed (want name or name.<node>[.<node>...])", s)
	}
	return nil
}

// formatValidationError converts validator errors to a more user-friendly format
func formatValidationError(err error) error {
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	// Return the first validation error in a user-friendly format
	for _, e := range validationErrs {
		field := e.Namespace()
		param := e.Param()

		switch e.Tag() {
		case "required":
			return fmt.Errorf("%s: field is required", field)
		case "min", "gte":
			return fmt.Errorf("%s: must be at least %s", field, param)
		case "max", "lte":
			return fmt.Errorf("%s: must not exceed %s", field, param)
		case "gt":
			return fmt.Errorf("%s: must be greater than %s", field, param)
		case "lt":
			return fmt.Errorf("%s: must be less than %s", field, param)
		case "oneof":
			return fmt.Errorf("%s: must be one of [%s]", field, param)
		case "busid":
			return fmt.Errorf("%s: %q is not a valid bus identifier", field, e.Value())
		case "element":
			return fmt.Errorf("%s: %q is not a valid element name", field, e.Value())
		case "dive":
			return fmt.Errorf("%s: invalid element in array", field)
		default:
			return fmt.Errorf("%s: validation failed (%s)", field, e.Tag())
		}
	}

	return err
}
