// Package validation checks command structs against their validate tags and
// reports every failing field at once.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/hashicorp/go-multierror"
	"github.com/samber/lo"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// notblank rejects whitespace-only text without altering the value.
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}

	// Report fields by their JSON names so messages match request bodies.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})

	return v
}

// FieldError describes a single failed constraint.
type FieldError struct {
	Field string
	Tag   string
	Param string
}

func (e *FieldError) Error() string {
	switch e.Tag {
	case "required", "notblank":
		return fmt.Sprintf("%s is required", e.Field)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", e.Field, e.Param)
	case "hexcolor":
		return fmt.Sprintf("%s must be a hex color", e.Field)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", e.Field, e.Param)
	default:
		return fmt.Sprintf("%s is invalid", e.Field)
	}
}

// Struct validates s. On failure it returns a *multierror.Error holding one
// *FieldError per failing field, formatted as "a is required; b is invalid".
func Struct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	result := &multierror.Error{ErrorFormat: listFormat}
	for _, fe := range verrs {
		result = multierror.Append(result, &FieldError{
			Field: fe.Field(),
			Tag:   fe.Tag(),
			Param: fe.Param(),
		})
	}

	return result.ErrorOrNil()
}

// Fields returns the names of the fields that failed validation in err.
func Fields(err error) []string {
	var merr *multierror.Error
	if !errors.As(err, &merr) {
		return nil
	}

	return lo.FilterMap(merr.Errors, func(e error, _ int) (string, bool) {
		var fe *FieldError
		if errors.As(e, &fe) {
			return fe.Field, true
		}
		return "", false
	})
}

// HasField reports whether field is among the failures in err.
func HasField(err error, field string) bool {
	return lo.Contains(Fields(err), field)
}

func listFormat(es []error) string {
	return strings.Join(lo.Map(es, func(e error, _ int) string {
		return e.Error()
	}), "; ")
}
