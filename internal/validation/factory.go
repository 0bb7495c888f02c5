package validation

import (
	"regexp"
	"time"

	validation "github.com/jellydator/validation"

	apperrors "github.com/yoomoney/checkout/internal/errors"
)

// Date layouts of the raw digits accepted by date fields.
const (
	DateLayout  = "02012006" // DDMMYYYY
	MonthLayout = "012006"   // MMYYYY
)

// FieldKind enumerates the validated field kinds.
type FieldKind int

const (
	// FieldText is a free-text field with optional pattern and length bounds.
	FieldText FieldKind = iota
	// FieldEmail is validated against a fixed RFC-like pattern.
	FieldEmail
	// FieldPhone delegates length checks to the phone formatter; only the
	// non-empty rule applies when required.
	FieldPhone
	// FieldDate is a DD.MM.YYYY date with optional inclusive bounds.
	FieldDate
	// FieldMonth is a MM.YYYY date with optional inclusive bounds.
	FieldMonth
)

// FieldSpec describes a field's validation policy. Specs are built once per
// field at screen-build time and are immutable afterwards.
type FieldSpec struct {
	Kind     FieldKind
	Required bool

	// Pattern is an optional regular expression for FieldText.
	Pattern string
	// MinLength and MaxLength bound the raw character count for FieldText.
	// A zero MaxLength means unbounded.
	MinLength int
	MaxLength int

	// MinDate and MaxDate bound FieldDate and FieldMonth values, inclusive.
	MinDate *time.Time
	MaxDate *time.Time
}

// Rules builds the ordered rule set for a field spec. Returns an error only
// for a malformed Pattern.
func Rules(spec FieldSpec) ([]validation.Rule, error) {
	var rules []validation.Rule

	switch spec.Kind {
	case FieldText:
		if spec.Pattern != "" {
			re, err := regexp.Compile(spec.Pattern)
			if err != nil {
				return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "invalid field pattern")
			}
			rules = append(rules, validation.Match(re))
		}
		if spec.MaxLength > 0 {
			rules = append(rules, validation.RuneLength(spec.MinLength, spec.MaxLength))
		}

	case FieldEmail:
		rules = append(rules, Email)

	case FieldPhone:
		// Validity is owned by the phone formatter.

	case FieldDate:
		rules = append(rules, DateRange{Layout: DateLayout, Min: spec.MinDate, Max: spec.MaxDate})

	case FieldMonth:
		rules = append(rules, DateRange{Layout: MonthLayout, Min: spec.MinDate, Max: spec.MaxDate})
	}

	if spec.Required {
		rules = append(rules, validation.Required, NotBlank)
	}

	return rules, nil
}

// ValidateField evaluates every rule of the spec over the raw text and
// returns the first failure, or nil when the field is valid.
func ValidateField(text string, spec FieldSpec) error {
	rules, err := Rules(spec)
	if err != nil {
		return err
	}
	return validation.Validate(text, rules...)
}

// IsValid reports whether the raw text passes every rule of the spec.
func IsValid(text string, spec FieldSpec) bool {
	return ValidateField(text, spec) == nil
}
