// Package textutil holds the small string helpers shared by the pipelines.
package textutil

import "strings"

// Truncate returns at most n characters of s, counting runes so multi-byte
// text is never cut mid-character.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if len(s) <= n {
		return s
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

// FirstHeading returns the text of the first Markdown heading in s with the
// leading hashes removed, or "" if s has none.
func FirstHeading(s string) string {
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "#") {
			return strings.TrimSpace(strings.TrimLeft(line, "#"))
		}
	}
	return ""
}
