package input

import "strings"

// DateStyle formats full dates as "DD.MM.YYYY" from 8 raw digits.
type DateStyle struct{}

// RemoveFormatting strips everything but digits.
func (DateStyle) RemoveFormatting(s string) string {
	return digitsOnly(s)
}

// AppendFormatting inserts dots after the day and month groups. Partial
// input keeps only the separators that fit.
func (d DateStyle) AppendFormatting(s string) string {
	s = truncate(digitsOnly(s), d.MaximalLength())
	return groupWithSeparator(s, []int{2, 2, 4}, ".")
}

// MaximalLength returns the raw digit count of "DDMMYYYY".
func (DateStyle) MaximalLength() int {
	return 8
}

// MonthStyle formats month-only dates as "MM.YYYY" from 6 raw digits.
type MonthStyle struct{}

// RemoveFormatting strips everything but digits.
func (MonthStyle) RemoveFormatting(s string) string {
	return digitsOnly(s)
}

// AppendFormatting inserts a dot after the month group.
func (m MonthStyle) AppendFormatting(s string) string {
	s = truncate(digitsOnly(s), m.MaximalLength())
	return groupWithSeparator(s, []int{2, 4}, ".")
}

// MaximalLength returns the raw digit count of "MMYYYY".
func (MonthStyle) MaximalLength() int {
	return 6
}

// groupWithSeparator splits s into consecutive groups of the given sizes,
// joined by sep. Trailing empty groups are omitted so that partial input
// formats without dangling separators.
func groupWithSeparator(s string, sizes []int, sep string) string {
	var groups []string
	for _, size := range sizes {
		if s == "" {
			break
		}
		if size > len(s) {
			size = len(s)
		}
		groups = append(groups, s[:size])
		s = s[size:]
	}
	return strings.Join(groups, sep)
}
