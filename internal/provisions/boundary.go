package provisions

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidBoundaryCondition is returned for an end condition pair with no
// tabulated effective length factor.
var ErrInvalidBoundaryCondition = errors.New("invalid boundary condition")

// EndCondition is the restraint at one end of a member.
type EndCondition string

const (
	Fixed  EndCondition = "fixed"
	Pinned EndCondition = "pinned"
	Rolled EndCondition = "rolled" // rotation fixed, translation free
	Free   EndCondition = "free"
)

// ParseEndCondition accepts the condition names case-insensitively, plus
// "pin" and "roller".
func ParseEndCondition(s string) (EndCondition, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fixed":
		return Fixed, nil
	case "pinned", "pin":
		return Pinned, nil
	case "rolled", "roller":
		return Rolled, nil
	case "free":
		return Free, nil
	}
	return "", fmt.Errorf("%w: unknown end condition %q", ErrInvalidBoundaryCondition, s)
}

type endPair struct{ a, b EndCondition }

func pair(a, b EndCondition) endPair {
	if a > b {
		a, b = b, a
	}
	return endPair{a, b}
}

// recommended design values, AISC Commentary Table C-A-7.1
var kTable = map[endPair]float64{
	pair(Fixed, Fixed):   0.65,
	pair(Fixed, Pinned):  0.80,
	pair(Fixed, Rolled):  1.20,
	pair(Pinned, Pinned): 1.00,
	pair(Fixed, Free):    2.10,
	pair(Pinned, Rolled): 2.00,
}

// EffectiveLengthFactor returns K for an unordered pair of end conditions.
func EffectiveLengthFactor(top, bottom EndCondition) (float64, error) {
	k, ok := kTable[pair(top, bottom)]
	if !ok {
		return 0, fmt.Errorf("%w: %s-%s", ErrInvalidBoundaryCondition, top, bottom)
	}
	return k, nil
}
