package input

import "strings"

const (
	// phoneNationalLength is the number of national digits after the country code.
	phoneNationalLength = 10

	// phoneMask is the display mask for the national part. 'X' marks a digit slot.
	phoneMask = " (XXX) XXX-XX-XX"

	countryCode       = "7"
	trunkPrefix       = "8"
	maskDigitSlot     = 'X'
	countryCodePrefix = "+" + countryCode
)

// PhoneStyle formats phone numbers for the supported locale under the mask
// "+7 (XXX) XXX-XX-XX". The canonical raw value includes the country code
// digit; a leading national trunk prefix "8" is rewritten to "7" before
// formatting.
type PhoneStyle struct{}

// RemoveFormatting strips everything but digits.
func (PhoneStyle) RemoveFormatting(s string) string {
	return digitsOnly(s)
}

// AppendFormatting rewrites the trunk prefix, strips the country code digit
// and fills the national mask with the remaining digits. Partial input keeps
// only the separators that fit.
func (p PhoneStyle) AppendFormatting(s string) string {
	s = digitsOnly(s)
	if s == "" {
		return ""
	}

	// National trunk prefix rewrite: a leading "8" means the same number
	// dialed domestically.
	if strings.HasPrefix(s, trunkPrefix) {
		s = countryCode + s[1:]
	}
	if strings.HasPrefix(s, countryCode) {
		s = s[1:]
	}
	s = truncate(s, phoneNationalLength)

	var b strings.Builder
	b.WriteString(countryCodePrefix)
	i := 0
	for _, m := range phoneMask {
		if i == len(s) {
			break
		}
		if m == maskDigitSlot {
			b.WriteByte(s[i])
			i++
		} else {
			b.WriteRune(m)
		}
	}
	return b.String()
}

// MaximalLength returns the country code digit plus the national number length.
func (PhoneStyle) MaximalLength() int {
	return len(countryCode) + phoneNationalLength
}
