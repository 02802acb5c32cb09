// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/kavirubc
// Created: 2026-02-13
// Last Modified: 2026-10-18

package text

import (
	"fmt"
	"strings"
)

const (
	markerPrefix = "<!-- repobot:"
	markerSuffix = " -->"
)

// Marker returns the hidden HTML marker identifying comments posted by a rule.
func Marker(name string) string {
	return markerPrefix + name + markerSuffix
}

// BuildComment appends the hidden marker for name to body.
// Whitespace around body is trimmed; an empty body yields "".
func BuildComment(name, body string) string {
	b := strings.TrimSpace(body)
	if b == "" {
		return ""
	}
	if name == "" {
		return b
	}

	var sb strings.Builder
	sb.WriteString(b)
	fmt.Fprintf(&sb, "\n\n%s", Marker(name))
	return sb.String()
}
