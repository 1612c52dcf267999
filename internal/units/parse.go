package units

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var quantityPattern = regexp.MustCompile(`^\s*([-+]?(?:\d+\.?\d*|\.\d+)(?:[eE][-+]?\d+)?)\s*(.*?)\s*$`)

// Parse reads a magnitude with an optional unit, such as "10ft", "150 kN" or
// "345". A bare number is taken in def. The result must have the dimension of
// def.
func Parse(s string, def Unit) (Quantity, error) {
	m := quantityPattern.FindStringSubmatch(s)
	if m == nil {
		return Quantity{}, fmt.Errorf("invalid quantity %q", s)
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return Quantity{}, fmt.Errorf("invalid quantity %q: %w", s, err)
	}
	u := def
	if sym := strings.TrimSpace(m[2]); sym != "" {
		u, err = Lookup(sym)
		if err != nil {
			return Quantity{}, err
		}
	}
	if u.Dim != def.Dim {
		return Quantity{}, fmt.Errorf("%w: %q is %s, expected %s", ErrDimensionMismatch, s, u.Dim, def.Dim)
	}
	return New(v, u), nil
}
