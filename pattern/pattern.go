// Package pattern puts the regular expression dialects used by the masker
// behind a single "first match, group N" lookup.
package pattern

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/dlclark/regexp2"
)

// Dialect selects the regular expression engine.
type Dialect int

const (
	// DialectRE2 is the standard library engine.
	DialectRE2 Dialect = iota
	// DialectExtended supports lookaround and backreferences (regexp2).
	DialectExtended
)

var ErrUnknownDialect = errors.New("unknown pattern dialect")

func (d Dialect) String() string {
	switch d {
	case DialectRE2:
		return "re2"
	case DialectExtended:
		return "extended"
	default:
		return fmt.Sprintf("dialect(%d)", int(d))
	}
}

// ParseDialect maps "re2" (or "") and "extended" to a Dialect.
func ParseDialect(s string) (Dialect, error) {
	switch s {
	case "", "re2":
		return DialectRE2, nil
	case "extended":
		return DialectExtended, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnknownDialect, s)
	}
}

// Pattern finds capture groups in the first match of a string.
type Pattern interface {
	// Group returns the text captured by group n in the first match of s.
	// The second result is false when there is no match, n is out of range,
	// or the group did not participate in the match.
	Group(s string, n int) (string, bool)
	String() string
}

type stdPattern struct {
	re *regexp.Regexp
}

// Std wraps a standard library regexp.
func Std(re *regexp.Regexp) Pattern {
	return stdPattern{re: re}
}

func (p stdPattern) Group(s string, n int) (string, bool) {
	if p.re == nil || n < 0 {
		return "", false
	}

	loc := p.re.FindStringSubmatchIndex(s)
	if loc == nil || 2*n+1 >= len(loc) || loc[2*n] < 0 {
		return "", false
	}

	return s[loc[2*n]:loc[2*n+1]], true
}

func (p stdPattern) String() string {
	if p.re == nil {
		return ""
	}
	return p.re.String()
}

type extendedPattern struct {
	re *regexp2.Regexp
}

// Extended wraps a regexp2 expression. A match that hits the expression's
// MatchTimeout counts as no match.
func Extended(re *regexp2.Regexp) Pattern {
	return extendedPattern{re: re}
}

func (p extendedPattern) Group(s string, n int) (string, bool) {
	if p.re == nil || n < 0 {
		return "", false
	}

	m, err := p.re.FindStringMatch(s)
	if err != nil || m == nil {
		return "", false
	}

	g := m.GroupByNumber(n)
	if g == nil || len(g.Captures) == 0 {
		return "", false
	}

	return g.String(), true
}

func (p extendedPattern) String() string {
	if p.re == nil {
		return ""
	}
	return p.re.String()
}

// Compile parses expr with the engine selected by d.
func Compile(expr string, d Dialect) (Pattern, error) {
	switch d {
	case DialectRE2:
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("compile pattern %q: %w", expr, err)
		}
		return Std(re), nil
	case DialectExtended:
		re, err := regexp2.Compile(expr, regexp2.None)
		if err != nil {
			return nil, fmt.Errorf("compile pattern %q: %w", expr, err)
		}
		return Extended(re), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownDialect, d)
	}
}

// MustCompile is like Compile but panics on error.
func MustCompile(expr string, d Dialect) Pattern {
	p, err := Compile(expr, d)
	if err != nil {
		panic(err)
	}
	return p
}
