package sanitize

import (
	"strings"
	"unicode"

	"go.uber.org/zap"
)

// maxLoggedLength caps untrusted values before they reach a log line
const maxLoggedLength = 128

// String returns a zap field with all control characters of the untrusted value
// removed, avoiding log injection / CWE-117
func String(key string, value string) zap.Field {
	return zap.String(key, Clean(value))
}

// Clean drops control characters (line breaks included) and truncates the value
func Clean(value string) string {
	esc := strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, value)
	if len(esc) > maxLoggedLength {
		esc = esc[:maxLoggedLength] + "..."
	}
	return esc
}
