package models

import (
	"strings"
	"unicode/utf8"
)

const ellipsis = "..."

// GetPreview returns s unchanged when it has at most maxLength characters,
// otherwise its first maxLength characters followed by "...".
func GetPreview(s string, maxLength int) string {
	if maxLength < 0 {
		maxLength = 0
	}
	if utf8.RuneCountInString(s) <= maxLength {
		return s
	}
	return truncate(s, maxLength) + ellipsis
}

// HasContent reports whether s contains anything besides whitespace.
func HasContent(s string) bool {
	return strings.TrimSpace(s) != ""
}

// truncate keeps the first n runes of s.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
