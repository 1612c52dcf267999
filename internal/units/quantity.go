// Package units provides dimensioned quantities stored in SI base units.
//
// Products and quotients derive a new dimension and never fail. Sums,
// differences and comparisons require equal dimensions and report
// ErrDimensionMismatch otherwise; Calc chains them with a sticky error.
package units

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// ErrDimensionMismatch is returned when an operation combines or converts
// quantities of incompatible dimensions.
var ErrDimensionMismatch = errors.New("dimension mismatch")

// Quantity is an immutable magnitude with a dimension. The magnitude is held
// in SI base units.
type Quantity struct {
	v   float64
	dim Dimension
}

// New builds a quantity of v expressed in u.
func New(v float64, u Unit) Quantity {
	return Quantity{v: v * u.Factor, dim: u.Dim}
}

// Scalar builds a dimensionless quantity.
func Scalar(v float64) Quantity {
	return Quantity{v: v}
}

// Dim returns the dimension of q.
func (q Quantity) Dim() Dimension { return q.dim }

// SI returns the magnitude in SI base units.
func (q Quantity) SI() float64 { return q.v }

// In converts q to u.
func (q Quantity) In(u Unit) (float64, error) {
	if q.dim != u.Dim {
		return 0, fmt.Errorf("%w: cannot express %s in %s (%s)", ErrDimensionMismatch, q.dim, u.Symbol, u.Dim)
	}
	return q.v / u.Factor, nil
}

// MustIn is like In but panics on a dimension mismatch. It is meant for
// values whose dimension is fixed by construction.
func (q Quantity) MustIn(u Unit) float64 {
	v, err := q.In(u)
	if err != nil {
		panic(err)
	}
	return v
}

// Mul returns q*o.
func (q Quantity) Mul(o Quantity) Quantity {
	return Quantity{v: q.v * o.v, dim: q.dim.Mul(o.dim)}
}

// Div returns q/o. Division by a zero magnitude yields ±Inf or NaN.
func (q Quantity) Div(o Quantity) Quantity {
	return Quantity{v: q.v / o.v, dim: q.dim.Div(o.dim)}
}

// Scale multiplies q by a pure number.
func (q Quantity) Scale(k float64) Quantity {
	return Quantity{v: q.v * k, dim: q.dim}
}

// Add returns q+o.
func (q Quantity) Add(o Quantity) (Quantity, error) {
	if err := q.same(o, "add"); err != nil {
		return Quantity{}, err
	}
	return Quantity{v: q.v + o.v, dim: q.dim}, nil
}

// Sub returns q-o.
func (q Quantity) Sub(o Quantity) (Quantity, error) {
	if err := q.same(o, "subtract"); err != nil {
		return Quantity{}, err
	}
	return Quantity{v: q.v - o.v, dim: q.dim}, nil
}

// Cmp compares q with o and returns -1, 0 or +1.
func (q Quantity) Cmp(o Quantity) (int, error) {
	if err := q.same(o, "compare"); err != nil {
		return 0, err
	}
	switch {
	case q.v < o.v:
		return -1, nil
	case q.v > o.v:
		return 1, nil
	}
	return 0, nil
}

// Sqrt returns the square root of q. Every exponent of q must be even.
func (q Quantity) Sqrt() (Quantity, error) {
	if q.dim.L%2 != 0 || q.dim.M%2 != 0 || q.dim.T%2 != 0 {
		return Quantity{}, fmt.Errorf("%w: square root of %s", ErrDimensionMismatch, q.dim)
	}
	return Quantity{
		v:   math.Sqrt(q.v),
		dim: Dimension{L: q.dim.L / 2, M: q.dim.M / 2, T: q.dim.T / 2},
	}, nil
}

// Float returns the magnitude of a dimensionless quantity.
func (q Quantity) Float() (float64, error) {
	if q.dim != Dimensionless {
		return 0, fmt.Errorf("%w: %s is not dimensionless", ErrDimensionMismatch, q.dim)
	}
	return q.v, nil
}

// IsZero reports whether the magnitude is exactly zero.
func (q Quantity) IsZero() bool { return q.v == 0 }

// Positive reports whether the magnitude is strictly positive and finite.
func (q Quantity) Positive() bool { return q.v > 0 && !math.IsInf(q.v, 1) }

// Abs returns |q|.
func (q Quantity) Abs() Quantity { return Quantity{v: math.Abs(q.v), dim: q.dim} }

// Max returns the larger of a and b.
func Max(a, b Quantity) (Quantity, error) {
	c, err := a.Cmp(b)
	if err != nil {
		return Quantity{}, err
	}
	if c < 0 {
		return b, nil
	}
	return a, nil
}

// Min returns the smaller of a and b.
func Min(a, b Quantity) (Quantity, error) {
	c, err := a.Cmp(b)
	if err != nil {
		return Quantity{}, err
	}
	if c > 0 {
		return b, nil
	}
	return a, nil
}

func (q Quantity) same(o Quantity, op string) error {
	if q.dim != o.dim {
		return fmt.Errorf("%w: cannot %s %s and %s", ErrDimensionMismatch, op, q.dim, o.dim)
	}
	return nil
}

// Format renders q in u with prec decimals. A mismatched unit falls back to
// the display unit of q.
func (q Quantity) Format(u Unit, prec int) string {
	v, err := q.In(u)
	if err != nil {
		u = DisplayUnit(q.dim)
		v = q.v / u.Factor
	}
	s := strconv.FormatFloat(v, 'f', prec, 64)
	if u.Symbol == "" {
		return s
	}
	return s + " " + u.Symbol
}

// String renders q in the display unit of its dimension.
func (q Quantity) String() string {
	u := DisplayUnit(q.dim)
	s := strconv.FormatFloat(q.v/u.Factor, 'g', 6, 64)
	if u.Symbol == "" {
		return s
	}
	return s + " " + u.Symbol
}
