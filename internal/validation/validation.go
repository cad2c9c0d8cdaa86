// Package validation owns the shared validator instance and the date key
// rules used across the API.
package validation

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	dateKeyPattern  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	monthKeyPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)
)

func IsDateKey(s string) bool {
	return dateKeyPattern.MatchString(s)
}

func IsMonthKey(s string) bool {
	return monthKeyPattern.MatchString(s)
}

// DateKeyValidator accepts strings shaped like YYYY-MM-DD. Only the shape is
// checked; range bounds such as 2024-02-31 are legal keys.
var DateKeyValidator = func(fl validator.FieldLevel) bool {
	return IsDateKey(fl.Field().String())
}

var MonthKeyValidator = func(fl validator.FieldLevel) bool {
	return IsMonthKey(fl.Field().String())
}

// New returns a validator with the datekey and monthkey rules registered and
// JSON field names used in error output.
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("datekey", DateKeyValidator)
	_ = v.RegisterValidation("monthkey", MonthKeyValidator)
	v.RegisterTagNameFunc(jsonFieldName)
	return v
}
