// Package input implements text-field formatting for the checkout forms.
//
// A Style confines the length of a field's raw content and converts between
// the raw value (semantic characters only) and the display value (with
// user-facing separators). Styles are stateless; the Field editor recomputes
// the display value and cursor offset on every edit.
package input

import "strings"

// Style defines the formatting of a single text field kind.
type Style interface {
	// RemoveFormatting strips every character outside the field's semantic
	// alphabet. It may be invoked on any substring of the display value.
	RemoveFormatting(s string) string

	// AppendFormatting inserts the field's separators into a raw value.
	// It may be invoked on a prefix of the raw value and truncates input
	// beyond MaximalLength instead of rejecting it.
	AppendFormatting(s string) string

	// MaximalLength is the maximum length of the raw value.
	MaximalLength() int
}

// digitsOnly strips every non-digit character.
func digitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// truncate limits s to at most n runes.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
