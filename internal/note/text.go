package note

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// DefaultTimestampLayout renders as "15 October 2026 09:30".
const DefaultTimestampLayout = "02 January 2006 15:04"

// DefaultPreviewChars is the rune budget for list previews.
const DefaultPreviewChars = 80

// whitespaceRegex matches one or more whitespace characters
var whitespaceRegex = regexp.MustCompile(`\s+`)

// Clean trims leading and trailing whitespace and replaces invalid UTF-8
// with U+FFFD, so stored text survives a JSON round trip unchanged.
// Internal whitespace, including newlines, is preserved.
func Clean(s string) string {
	return strings.TrimSpace(strings.ToValidUTF8(s, "\uFFFD"))
}

// IsBlank reports whether s is empty or whitespace-only.
func IsBlank(s string) bool {
	return Clean(s) == ""
}

// CountChars returns the character count as runes (not bytes).
func CountChars(text string) int {
	return utf8.RuneCountInString(text)
}

// Preview collapses whitespace to single spaces and truncates to max runes,
// appending "…" when text was cut.
func Preview(text string, max int) string {
	s := whitespaceRegex.ReplaceAllString(strings.TrimSpace(text), " ")
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return strings.TrimRight(string(runes[:max]), " ") + "…"
}

// FormatTimestamp formats t with layout, falling back to DefaultTimestampLayout.
func FormatTimestamp(t time.Time, layout string) string {
	if layout == "" {
		layout = DefaultTimestampLayout
	}
	return t.Format(layout)
}
