// Package sanitize strips markup from user-supplied free text before it is
// persisted. The API serves JSON, but stored values end up rendered by
// arbitrary downstream clients, so descriptions and names are stored plain.
package sanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var policy = bluemonday.StrictPolicy()

// Text strips all HTML from s and trims surrounding whitespace.
func Text(s string) string {
	return strings.TrimSpace(policy.Sanitize(s))
}

// Slice returns a copy of ss with Text applied to each element.
// Empty results are kept so list positions are preserved.
func Slice(ss []string) []string {
	if ss == nil {
		return nil
	}
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = Text(s)
	}
	return out
}
