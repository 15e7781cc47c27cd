package phantom

import (
	"fmt"
	"strings"
)

// ParseMakeOption parses a single KEY=VALUE pair, splitting on the first
// '='. The key must be non-empty.
func ParseMakeOption(pair string) (MakeOption, error) {
	key, value, found := strings.Cut(pair, "=")
	if !found || key == "" {
		return MakeOption{}, fmt.Errorf("invalid make option %q: want KEY=VALUE", pair)
	}
	return MakeOption{Key: key, Value: value}, nil
}

// ParseMakeOptions parses a comma-separated KEY=VALUE list, e.g.
// "ISOTHERMAL=yes,DUST=yes". All whitespace is stripped before parsing, so
// "A=1, B=2" and "A=1,B=2" are equivalent. Order is preserved.
func ParseMakeOptions(s string) ([]MakeOption, error) {
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return nil, nil
	}

	var opts []MakeOption
	for _, pair := range strings.Split(s, ",") {
		opt, err := ParseMakeOption(pair)
		if err != nil {
			return nil, err
		}
		opts = append(opts, opt)
	}
	return opts, nil
}
