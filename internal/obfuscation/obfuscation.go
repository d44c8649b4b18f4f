package obfuscation

import (
	"strings"
	"unicode/utf8"
)

const (
	carriageReturn = '\r'
	lineFeed       = '\n'
)

// Rewrite replaces every rune of s whose index is at or after from with
// maskChar. Carriage returns and line feeds are copied as is, whatever their
// position. A from larger than the rune count leaves s unchanged.
func Rewrite(s string, from int, maskChar string) string {
	var builder strings.Builder
	builder.Grow(len(s) + utf8.RuneCountInString(s)*len(maskChar))

	current := 0
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case r == carriageReturn, r == lineFeed:
			builder.WriteRune(r)
		case current >= from:
			builder.WriteString(maskChar)
		default:
			// keep the original bytes, invalid UTF-8 included
			builder.WriteString(s[i : i+size])
		}
		i += size
		current++
	}

	return builder.String()
}

// Len returns the number of characters Rewrite walks over in s.
func Len(s string) int {
	return utf8.RuneCountInString(s)
}
