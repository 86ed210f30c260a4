package engine

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// NormalizeToken prepares one input line for matching: leading whitespace is
// removed, each interior run of whitespace is reduced to its first
// character, and trailing whitespace is removed. A blank line yields "".
// Bytes that are not valid UTF-8 are copied through unchanged.
func NormalizeToken(s string) string {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	if s == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(s))
	prevSpace := false
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		sp := unicode.IsSpace(r)
		if !(sp && prevSpace) {
			b.WriteString(s[i : i+size])
		}
		prevSpace = sp
		i += size
	}
	return strings.TrimRightFunc(b.String(), unicode.IsSpace)
}
