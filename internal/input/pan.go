package input

import "strings"

// panMaxLength is the maximum PAN length defined by ISO/IEC 7812.
const panMaxLength = 19

// PANStyle formats bank card numbers in blocks of 4 digits separated by a
// single space, truncated to 19 raw digits.
type PANStyle struct{}

// RemoveFormatting strips everything but digits.
func (PANStyle) RemoveFormatting(s string) string {
	return digitsOnly(s)
}

// AppendFormatting groups digits in blocks of 4 separated by spaces.
func (PANStyle) AppendFormatting(s string) string {
	s = truncate(digitsOnly(s), panMaxLength)

	var b strings.Builder
	for i, r := range s {
		if i > 0 && i%4 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// MaximalLength returns the maximum raw digit count.
func (PANStyle) MaximalLength() int {
	return panMaxLength
}

// CSCStyle formats card security codes: digits only, no separators.
type CSCStyle struct{}

// RemoveFormatting strips everything but digits.
func (CSCStyle) RemoveFormatting(s string) string {
	return digitsOnly(s)
}

// AppendFormatting truncates to the maximum CSC length without inserting separators.
func (c CSCStyle) AppendFormatting(s string) string {
	return truncate(digitsOnly(s), c.MaximalLength())
}

// MaximalLength returns the maximum raw digit count.
func (CSCStyle) MaximalLength() int {
	return 4
}
