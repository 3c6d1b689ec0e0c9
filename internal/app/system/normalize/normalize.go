// internal/app/system/normalize/normalize.go
package normalize

import "strings"

// Username trims surrounding whitespace. Case is preserved: usernames are
// case-sensitive identifiers and the uniqueness index treats them as such.
func Username(s string) string {
	return strings.TrimSpace(s)
}

// Email lowercases and trims an email address.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name collapses interior runs of whitespace and trims the ends.
func Name(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
