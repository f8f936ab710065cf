package rewrite

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var escaper = strings.NewReplacer(`\`, `\\`, `[`, `\[`, `]`, `\]`)

// Escape backslash-escapes the characters that are significant in relation
// input strings, so that they are read as ordinary characters.
func Escape(s string) string {
	return escaper.Replace(s)
}

// Compile turns an input string into the plain text a relation is applied to.
// Escaped characters are unescaped, the result is put in NFC form, and any
// unescaped bracket is rejected.
func Compile(s string) (string, error) {
	var b strings.Builder
	b.Grow(len(s))

	escaped := false
	for i, r := range s {
		switch {
		case escaped:
			b.WriteRune(r)
			escaped = false
		case r == '\\':
			escaped = true
		case r == '[' || r == ']':
			return "", fmt.Errorf("%w: %q at byte %d", ErrUnescapedBracket, r, i)
		default:
			b.WriteRune(r)
		}
	}
	if escaped {
		return "", ErrTrailingEscape
	}
	return norm.NFC.String(b.String()), nil
}
