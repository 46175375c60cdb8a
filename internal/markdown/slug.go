package markdown

import (
	"strings"
	"unicode"
)

// Slugify converts heading text to a URL-friendly anchor id. Letters and
// digits are kept (lowercased), whitespace and hyphens become separators,
// everything else is dropped, and separator runs collapse to one hyphen.
func Slugify(title string) string {
	s := strings.ToLower(title)

	var buf strings.Builder
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			buf.WriteRune(r)
		case unicode.IsSpace(r) || r == '-':
			buf.WriteRune('-')
		}
	}

	parts := strings.FieldsFunc(buf.String(), func(r rune) bool { return r == '-' })
	return strings.Join(parts, "-")
}

// HeadingLevel reports the level of an ATX heading line: 1-6 '#' characters
// followed by whitespace. Leading whitespace is ignored.
func HeadingLevel(line string) (int, bool) {
	level, ok := markerRun(line)
	if !ok || level > 6 {
		return 0, false
	}
	return level, true
}

// markerRun counts the leading '#' run of line and reports whether it is
// non-empty and directly followed by whitespace. The run is not capped.
func markerRun(line string) (int, bool) {
	trimmed := strings.TrimLeftFunc(line, unicode.IsSpace)
	level := 0
	for _, r := range trimmed {
		switch {
		case r == '#':
			level++
		case unicode.IsSpace(r):
			return level, level > 0
		default:
			return 0, false
		}
	}
	return 0, false
}

// StripInline removes inline emphasis, code and strikethrough markers.
// Heading text from the tokenizer has these removed already; this makes raw
// source comparable with it.
func StripInline(text string) string {
	r := strings.NewReplacer("**", "", "*", "", "`", "", "~~", "")
	return r.Replace(text)
}
