// Package mask obscures text with one of four strategies: a trailing
// percentage, a regular expression group, everything after a prefix, or the
// whole text.
//
// Every strategy replaces one character with one copy of the mask string and
// copies carriage returns and line feeds through untouched, so the output has
// as many characters as the input. Masking never fails: whenever a request
// cannot be honoured precisely the whole text is masked.
package mask

import (
	"math"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/hakastein/masktext/internal/obfuscation"
	"github.com/hakastein/masktext/pattern"
)

// Kind is a masking request. It is implemented by Percentage, Regex, Prefix
// and All only.
type Kind interface {
	// Mask returns the masked text.
	Mask() string
	kind()
}

// Percentage masks the trailing Percentage percent of Text. Texts of at most
// MinChars characters are masked entirely.
type Percentage struct {
	Text       string
	Percentage uint8
	MinChars   int
	MaskChar   string
}

// Regex masks the text captured by group Group in the first match of Pattern.
// Group 0 is the whole match. Without a match, or when the group did not
// take part in it, the whole text is masked.
//
// The masked group is put back by replacing the first occurrence of the
// captured text, not the matched position. If the same text appears earlier
// in Text, that earlier occurrence is the one masked.
type Regex struct {
	Text     string
	Pattern  pattern.Pattern
	Group    int
	MaskChar string
}

// Prefix keeps the first Until characters and masks the rest. An Until
// outside the text masks everything.
type Prefix struct {
	Text     string
	Until    int
	MaskChar string
}

// All masks every character of Text.
type All struct {
	Text     string
	MaskChar string
}

func (Percentage) kind() {}
func (Regex) kind()      {}
func (Prefix) kind()     {}
func (All) kind()        {}

func (p Percentage) Mask() string {
	return withPercentage(p.Text, p.Percentage, p.MinChars, p.MaskChar)
}

func (r Regex) Mask() string {
	return withRegex(r.Text, r.Pattern, r.Group, r.MaskChar)
}

func (p Prefix) Mask() string {
	return withPrefix(p.Text, p.Until, p.MaskChar)
}

func (a All) Mask() string {
	return all(a.Text, a.MaskChar)
}

// Apply masks the text carried by k with the strategy k selects.
// A nil request yields an empty string.
func Apply(k Kind) string {
	switch k := k.(type) {
	case Percentage:
		return withPercentage(k.Text, k.Percentage, k.MinChars, k.MaskChar)
	case Regex:
		return withRegex(k.Text, k.Pattern, k.Group, k.MaskChar)
	case Prefix:
		return withPrefix(k.Text, k.Until, k.MaskChar)
	case All:
		return all(k.Text, k.MaskChar)
	case nil:
		return ""
	default:
		// *Percentage, *Regex, *Prefix and *All
		return k.Mask()
	}
}

// percentageBoundary returns the index of the first masked character.
// Percentages above 100 are treated as 100.
func percentageBoundary(length int, percentage uint8, minChars int) int {
	if length <= minChars {
		return 0
	}

	if percentage > 100 {
		percentage = 100
	}

	masked := int(math.Floor(float64(percentage) * float64(length) / 100))

	return length - masked
}

func withPercentage(text string, percentage uint8, minChars int, maskChar string) string {
	from := percentageBoundary(obfuscation.Len(text), percentage, minChars)
	return obfuscation.Rewrite(text, from, maskChar)
}

func withRegex(text string, p pattern.Pattern, group int, maskChar string) string {
	target, ok := "", false
	if p != nil {
		target, ok = p.Group(text, group)
	}
	if !ok {
		log.Trace().
			Stringer("pattern", p).
			Int("group", group).
			Msg("pattern group not matched, masking whole text")
		target = text
	}

	return strings.Replace(text, target, all(target, maskChar), 1)
}

func prefixBoundary(length, until int) int {
	if until >= length || until < 0 {
		return 0
	}
	return until
}

func withPrefix(text string, until int, maskChar string) string {
	from := prefixBoundary(obfuscation.Len(text), until)
	return obfuscation.Rewrite(text, from, maskChar)
}

func all(text, maskChar string) string {
	return obfuscation.Rewrite(text, 0, maskChar)
}
