package input

// FormattedField is the outcome of applying a Style to a field's content.
// Invariant: style.RemoveFormatting(Display) == Raw.
type FormattedField struct {
	// Raw is the canonical unformatted content (semantic characters only).
	Raw string
	// Display is the same content with separators inserted.
	Display string
	// CursorOffset is the caret position inside Display, in runes.
	CursorOffset int
}

// Field recomputes a FormattedField on every edit. It owns no view state;
// the hosting screen feeds it edits and renders the returned value.
type Field struct {
	style Style
	value FormattedField
}

// NewField creates an empty field formatted by the given style.
func NewField(style Style) *Field {
	return &Field{style: style}
}

// Style returns the field's formatting style.
func (f *Field) Style() Style {
	return f.style
}

// Value returns the current formatted state.
func (f *Field) Value() FormattedField {
	return f.value
}

// SetText replaces the whole content, formatting and truncating as needed.
// The cursor lands at the end of the display value.
func (f *Field) SetText(s string) FormattedField {
	display := []rune(f.value.Display)
	return f.ReplaceRange(0, len(display), s)
}

// ReplaceRange applies a single edit: the display-value range [start,
// start+length) is replaced with the given text, mirroring a text view's
// shouldChangeCharacters callback. Out-of-range edits are clamped. A
// zero-length deletion (backspace with no selection) removes the character
// before start. The replacement is trimmed, never rejected, so the raw
// value stays within the style's maximal length.
func (f *Field) ReplaceRange(start, length int, replacement string) FormattedField {
	display := []rune(f.value.Display)

	if start < 0 {
		start = 0
	}
	if start > len(display) {
		start = len(display)
	}
	if length < 0 || start+length > len(display) {
		length = len(display) - start
	}

	replacement = f.style.RemoveFormatting(replacement)

	// Backspace with an empty selection deletes the preceding character.
	if replacement == "" && length == 0 && start > 0 {
		start--
		length = 1
	}

	prefix := f.style.RemoveFormatting(string(display[:start]))
	suffix := f.style.RemoveFormatting(string(display[start+length:]))

	// Trim the replacement so the raw value never exceeds the limit.
	safe := len([]rune(prefix)) + len([]rune(suffix))
	limit := f.style.MaximalLength()
	if safe >= limit {
		replacement = ""
	} else if safe+len([]rune(replacement)) > limit {
		replacement = truncate(replacement, limit-safe)
	}

	raw := prefix + replacement + suffix
	f.value = FormattedField{
		Raw:          f.style.RemoveFormatting(f.style.AppendFormatting(raw)),
		Display:      f.style.AppendFormatting(raw),
		CursorOffset: len([]rune(f.style.AppendFormatting(prefix + replacement))),
	}
	return f.value
}
