package validators

import (
	"strings"
	"unicode"
)

// SanitizeString turns control characters in free-text query input into
// spaces and trims it, then cuts the result to at most maxLen runes.
// maxLen <= 0 means no limit.
func SanitizeString(input string, maxLen int) string {
	cleaned := strings.TrimSpace(strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, input))
	if maxLen <= 0 {
		return cleaned
	}
	runes := []rune(cleaned)
	if len(runes) <= maxLen {
		return cleaned
	}
	return strings.TrimSpace(string(runes[:maxLen]))
}
