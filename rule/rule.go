// Package rule picks a masking strategy for named values, such as struct
// fields or column names, from a list of glob rules.
package rule

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/hakastein/masktext/mask"
	"github.com/hakastein/masktext/pattern"
)

// Method names a masking strategy.
type Method string

const (
	MethodPercentage Method = "percentage"
	MethodRegex      Method = "regex"
	MethodPrefix     Method = "prefix"
	MethodAll        Method = "all"
)

var (
	ErrInvalidRule   = errors.New("invalid mask rule")
	ErrUnknownMethod = errors.New("unknown mask method")
)

// Rule masks the values of every field matched by Fields.
// Only the parameters of the selected Method are used.
type Rule struct {
	Name       string `json:"name"`
	Fields     string `json:"fields" validate:"required"`
	Method     Method `json:"method" validate:"required"`
	Percentage uint8  `json:"percentage" validate:"max=100"`
	MinChars   int    `json:"min_chars" validate:"min=0"`
	Until      int    `json:"until" validate:"min=0"`
	Pattern    string `json:"pattern" validate:"required_if=Method regex"`
	Dialect    string `json:"dialect" validate:"omitempty,oneof=re2 extended"`
	Group      int    `json:"group" validate:"min=0"`
	MaskChar   string `json:"mask_char"`
}

var structValidator = validator.New()

func (r Rule) validate() error {
	switch r.Method {
	case MethodPercentage, MethodRegex, MethodPrefix, MethodAll:
	default:
		return fmt.Errorf("%w %q in rule %s", ErrUnknownMethod, r.Method, r.Name)
	}

	if err := structValidator.Struct(r); err != nil {
		return fmt.Errorf("%w %s: %w", ErrInvalidRule, r.Name, err)
	}

	if hasWildcard(r.Fields) && !validPattern(r.Fields) {
		return fmt.Errorf("%w %s: bad fields pattern %s", ErrInvalidRule, r.Name, r.Fields)
	}

	return nil
}

// compiled is a validated rule with its pattern ready for use.
type compiled struct {
	Rule
	pattern pattern.Pattern
}

func (c compiled) kind(value string) mask.Kind {
	switch c.Method {
	case MethodPercentage:
		return mask.Percentage{Text: value, Percentage: c.Percentage, MinChars: c.MinChars, MaskChar: c.MaskChar}
	case MethodRegex:
		return mask.Regex{Text: value, Pattern: c.pattern, Group: c.Group, MaskChar: c.MaskChar}
	case MethodPrefix:
		return mask.Prefix{Text: value, Until: c.Until, MaskChar: c.MaskChar}
	default:
		return mask.All{Text: value, MaskChar: c.MaskChar}
	}
}
