package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// FieldErrors maps a JSON field name to its first failing rule message.
type FieldErrors map[string]string

// Add records msg for field unless the field already has an error.
func (f FieldErrors) Add(field, msg string) {
	if _, exists := f[field]; !exists {
		f[field] = msg
	}
}

// Merge copies every entry of other that f does not already hold.
func (f FieldErrors) Merge(other FieldErrors) {
	for field, msg := range other {
		f.Add(field, msg)
	}
}

// Empty reports whether no field failed.
func (f FieldErrors) Empty() bool {
	return len(f) == 0
}

// New builds a validator that reports JSON field names and compares decimal
// values numerically in min/max rules.
func New() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" || tag == "-" {
			return f.Name
		}
		return tag
	})
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	return v
}

// Collect converts a validator error into FieldErrors. Non-validation errors
// are reported under the "_" key.
func Collect(err error) FieldErrors {
	out := FieldErrors{}
	if err == nil {
		return out
	}
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		out.Add("_", err.Error())
		return out
	}
	for _, fe := range errs {
		out.Add(fe.Field(), Message(fe.Field(), fe.Tag(), fe.Param(), fe.Kind()))
	}
	return out
}

// Message renders the human readable text for a failed rule.
func Message(field, tag, param string, kind reflect.Kind) string {
	label := strings.ReplaceAll(field, "_", " ")
	switch tag {
	case "required":
		return fmt.Sprintf("The %s field is required.", label)
	case "max":
		if kind == reflect.String {
			return fmt.Sprintf("The %s may not be greater than %s characters.", label, param)
		}
		return fmt.Sprintf("The %s may not be greater than %s.", label, param)
	case "min":
		if kind == reflect.String {
			return fmt.Sprintf("The %s must be at least %s characters.", label, param)
		}
		return fmt.Sprintf("The %s must be at least %s.", label, param)
	case "email":
		return fmt.Sprintf("The %s must be a valid email address.", label)
	case "integer":
		return fmt.Sprintf("The %s must be an integer.", label)
	case "numeric":
		return fmt.Sprintf("The %s must be a number.", label)
	case "string":
		return fmt.Sprintf("The %s must be a string.", label)
	case "unique":
		return fmt.Sprintf("The %s has already been taken.", label)
	}
	return fmt.Sprintf("The %s is invalid.", label)
}
