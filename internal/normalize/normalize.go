// internal/normalize/normalize.go

// Package normalize strips filler academic boilerplate from free-text field
// descriptions before any domain inference or similarity comparison.
package normalize

import (
	"regexp"
	"strings"
)

// fillerPattern matches standalone degree-level words that carry no subject
// information ("Bachelors in Physics" and "Physics" must compare equal).
var fillerPattern = regexp.MustCompile(`(?i)\b(bachelors?|masters?|degree|bsc|ba|bba|engg|in)\b`)

// Clean removes word-boundary, case-insensitive occurrences of the filler
// vocabulary and returns the trimmed remainder. Empty input yields "".
// Pure: same input always yields the same output.
func Clean(text string) string {
	if text == "" {
		return ""
	}
	cleaned := fillerPattern.ReplaceAllString(text, "")
	return strings.TrimSpace(cleaned)
}
