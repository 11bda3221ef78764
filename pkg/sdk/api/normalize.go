package api

import (
	"strings"
	"unicode"
)

// NormalizeKeys rewrites the top-level keys of a decoded response from the
// platform's camelCase to snake_case. Values are carried over untouched and
// nested objects are left alone; only the endpoints that return such
// payloads run their response through this.
func NormalizeKeys(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[snakeCase(k)] = v
	}
	return out
}

// snakeCase inserts an underscore before every upper-case rune that is not
// at the start of the key, then lower-cases the whole thing. "pnlAbsolute"
// becomes "pnl_absolute".
func snakeCase(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 4)
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}
