package types

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is shared: a *validator.Validate caches struct metadata, so one
// instance for the whole process is cheaper than validator.New() per call.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON name ("student_id") rather than the Go
	// field name ("StudentID"), matching what users see in the data file.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks all validate:"..." tags on v.
// On failure the returned error is a validator.ValidationErrors.
func Validate(v any) error {
	return validate.Struct(v)
}
