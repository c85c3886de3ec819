package strcase

import (
	"strings"
	"unicode"
)

// ToLowerSnake converts a mixed-case identifier to snake_case. Acronyms keep
// a single boundary, so "HTTPServer" becomes "http_server" and "userID"
// becomes "user_id".
func ToLowerSnake(s string) string {
	if s == "" {
		return ""
	}

	runes := []rune(s)

	var b strings.Builder
	b.Grow(len(s) + 4)

	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])

			switch {
			case unicode.IsLower(prev) || unicode.IsDigit(prev):
				b.WriteRune('_')
			case unicode.IsUpper(prev) && nextLower:
				b.WriteRune('_')
			}
		}

		b.WriteRune(unicode.ToLower(r))
	}

	return b.String()
}
