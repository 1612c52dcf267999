package units

import (
	"fmt"
	"strings"
)

// Dimension is the exponent vector of a quantity over length, mass and time.
type Dimension struct {
	L int8 // length
	M int8 // mass
	T int8 // time
}

// Dimensions used by the engines.
var (
	Dimensionless  = Dimension{}
	Length         = Dimension{L: 1}
	Area           = Dimension{L: 2}
	SectionModulus = Dimension{L: 3}
	Inertia        = Dimension{L: 4}
	Warping        = Dimension{L: 6}
	Mass           = Dimension{M: 1}
	Force          = Dimension{L: 1, M: 1, T: -2}
	Stress         = Dimension{L: -1, M: 1, T: -2}
	Moment         = Dimension{L: 2, M: 1, T: -2}
	LinearDensity  = Dimension{L: -1, M: 1}
	Density        = Dimension{L: -3, M: 1}
)

var dimensionNames = map[Dimension]string{
	Dimensionless:  "dimensionless",
	Length:         "length",
	Area:           "area",
	SectionModulus: "section modulus",
	Inertia:        "moment of inertia",
	Warping:        "warping constant",
	Mass:           "mass",
	Force:          "force",
	Stress:         "stress",
	Moment:         "moment",
	LinearDensity:  "linear density",
	Density:        "density",
}

// Mul returns the dimension of a product.
func (d Dimension) Mul(o Dimension) Dimension {
	return Dimension{L: d.L + o.L, M: d.M + o.M, T: d.T + o.T}
}

// Div returns the dimension of a quotient.
func (d Dimension) Div(o Dimension) Dimension {
	return Dimension{L: d.L - o.L, M: d.M - o.M, T: d.T - o.T}
}

func (d Dimension) String() string {
	if name, ok := dimensionNames[d]; ok {
		return name
	}
	var parts []string
	for _, e := range []struct {
		sym string
		exp int8
	}{{"L", d.L}, {"M", d.M}, {"T", d.T}} {
		if e.exp != 0 {
			parts = append(parts, fmt.Sprintf("%s^%d", e.sym, e.exp))
		}
	}
	return strings.Join(parts, " ")
}
