package pages

import (
	"fmt"
	"strconv"
	"strings"
)

// ParsePrice reads the last dollar amount in s, so "Tax: $2.40" and
// "$2.40" both give 240 cents.
func ParsePrice(s string) (int64, error) {
	i := strings.LastIndex(s, "$")
	if i < 0 {
		return 0, fmt.Errorf("no price in %q", s)
	}
	amount := strings.TrimSpace(s[i+1:])
	dollars, cents, found := strings.Cut(amount, ".")
	if !found || len(cents) != 2 {
		return 0, fmt.Errorf("malformed price %q", s)
	}
	d, err := strconv.ParseInt(strings.ReplaceAll(dollars, ",", ""), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed price %q: %w", s, err)
	}
	c, err := strconv.ParseInt(cents, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed price %q: %w", s, err)
	}
	return d*100 + c, nil
}

func parsePrices(texts []string) ([]int64, error) {
	out := make([]int64, len(texts))
	for i, t := range texts {
		p, err := ParsePrice(t)
		if err != nil {
			return nil, err
		}
		out[i] = p
	}
	return out, nil
}
