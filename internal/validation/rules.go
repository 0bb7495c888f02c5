// Package validation provides the field validation rules for checkout forms.
//
// Rules evaluate the raw (unformatted) text of a field and combine with AND
// semantics: a field is valid iff every rule accepts it. Validity is always
// a value, never a panic or a thrown condition.
package validation

import (
	"regexp"
	"strings"
	"time"

	validation "github.com/jellydator/validation"

	apperrors "github.com/yoomoney/checkout/internal/errors"
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput
// so handlers can map them to HTTP status codes consistently.
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

var (
	// emailRegex is a basic email validation pattern
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

// Email validates email format using regex.
var Email = validation.NewStringRuleWithError(
	func(s string) bool {
		return emailRegex.MatchString(s)
	},
	validation.NewError("validation_email_format", "must be a valid email address"),
)

// NotBlank validates that a string is not empty after trimming whitespace.
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)

// DateRange validates that raw date digits parse under the given layout and,
// if bounds are set, fall within [Min, Max] inclusive.
type DateRange struct {
	// Layout is the time.Parse reference layout of the raw digits,
	// e.g. "02012006" for a DDMMYYYY field.
	Layout string
	Min    *time.Time
	Max    *time.Time
}

// Validate checks if the value is a parseable date within the configured bounds.
func (d DateRange) Validate(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_date_type", "date must be a string")
	}
	if s == "" {
		// Emptiness is the NotBlank rule's concern.
		return nil
	}

	parsed, err := time.Parse(d.Layout, s)
	if err != nil {
		return validation.NewError("validation_date_format", "must be a valid date")
	}

	if d.Min != nil && parsed.Before(*d.Min) {
		return validation.NewError("validation_date_min", "date is too early")
	}
	if d.Max != nil && parsed.After(*d.Max) {
		return validation.NewError("validation_date_max", "date is too late")
	}

	return nil
}
