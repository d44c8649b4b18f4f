package rule

import (
	"fmt"
	"strconv"
	"strings"
)

// Parse reads rules written as fields=method[:args]:
//
//	password=all
//	card_number=prefix:4
//	token=percentage:80:3
//	*.email=regex:1:^([^@]+)@
//
// The percentage minimum is optional. A regex expression is everything after
// the group number and may itself contain colons.
func Parse(inputs []string) ([]Rule, error) {
	rules := make([]Rule, 0, len(inputs))

	for _, input := range inputs {
		idx := strings.Index(input, "=")
		if idx <= 0 {
			return nil, fmt.Errorf("%w: unexpected format %s, expected fields=method", ErrInvalidRule, input)
		}

		fields := input[:idx]
		args := strings.SplitN(input[idx+1:], ":", 3)

		r := Rule{
			Name:   fields,
			Fields: fields,
			Method: Method(args[0]),
		}

		var err error
		switch r.Method {
		case MethodAll:
			err = expectArgs(input, args, 1, 1)
		case MethodPrefix:
			if err = expectArgs(input, args, 2, 2); err == nil {
				r.Until, err = parseInt(input, args[1])
			}
		case MethodPercentage:
			if err = expectArgs(input, args, 2, 3); err == nil {
				r.Percentage, err = parsePercentage(input, args[1])
			}
			if err == nil && len(args) == 3 {
				r.MinChars, err = parseInt(input, args[2])
			}
		case MethodRegex:
			if err = expectArgs(input, args, 3, 3); err == nil {
				r.Group, err = parseInt(input, args[1])
				r.Pattern = args[2]
			}
		default:
			err = fmt.Errorf("%w %q in %s", ErrUnknownMethod, args[0], input)
		}
		if err != nil {
			return nil, err
		}

		if err := r.validate(); err != nil {
			return nil, err
		}

		rules = append(rules, r)
	}

	return rules, nil
}

func expectArgs(input string, args []string, minArgs, maxArgs int) error {
	if len(args) < minArgs || len(args) > maxArgs {
		return fmt.Errorf("%w: wrong number of arguments in %s", ErrInvalidRule, input)
	}
	return nil
}

func parseInt(input, arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: invalid number %q in %s", ErrInvalidRule, arg, input)
	}
	return n, nil
}

func parsePercentage(input, arg string) (uint8, error) {
	n, err := strconv.ParseUint(arg, 10, 8)
	if err != nil || n > 100 {
		return 0, fmt.Errorf("%w: invalid percentage %q in %s", ErrInvalidRule, arg, input)
	}
	return uint8(n), nil
}
