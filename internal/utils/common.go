// Package utils holds small string helpers shared by the task and cmd packages.
package utils

import (
	"strconv"
	"strings"
)

// SplitAndTrim splits s by sep and trims each part. Empty parts are dropped.
func SplitAndTrim(s, sep string) []string {
	var result []string
	for _, part := range strings.Split(s, sep) {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// JSONPointerToPath turns a JSON Pointer (RFC 6901), as reported by schema
// validation, into the path notation used in task file errors:
// "/0/priority" becomes "[0].priority". The root pointer yields "".
func JSONPointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(strings.TrimPrefix(ptr, "#"), "/")

	var b strings.Builder
	for _, token := range strings.Split(ptr, "/") {
		if token == "" {
			continue
		}
		// ~1 must be decoded before ~0 so "~01" stays "~1".
		token = strings.ReplaceAll(token, "~1", "/")
		token = strings.ReplaceAll(token, "~0", "~")
		if idx, err := strconv.Atoi(token); err == nil && idx >= 0 {
			b.WriteString("[" + strconv.Itoa(idx) + "]")
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(token)
	}
	return b.String()
}
