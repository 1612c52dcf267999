package units

import (
	"fmt"
	"strings"
)

// Unit is a named scale factor to SI base units for one dimension.
type Unit struct {
	Symbol string
	Dim    Dimension
	Factor float64 // SI base value of one unit
}

const (
	inch   = 0.0254
	foot   = 0.3048
	poundF = 4.4482216152605
	pound  = 0.45359237
)

// Length units.
var (
	MM = Unit{"mm", Length, 1e-3}
	CM = Unit{"cm", Length, 1e-2}
	M  = Unit{"m", Length, 1}
	IN = Unit{"in", Length, inch}
	FT = Unit{"ft", Length, foot}
)

// Area and section property units.
var (
	MM2 = Unit{"mm²", Area, 1e-6}
	M2  = Unit{"m²", Area, 1}
	IN2 = Unit{"in²", Area, inch * inch}
	MM3 = Unit{"mm³", SectionModulus, 1e-9}
	IN3 = Unit{"in³", SectionModulus, inch * inch * inch}
	MM4 = Unit{"mm⁴", Inertia, 1e-12}
	IN4 = Unit{"in⁴", Inertia, inch * inch * inch * inch}
	MM6 = Unit{"mm⁶", Warping, 1e-18}
	IN6 = Unit{"in⁶", Warping, inch * inch * inch * inch * inch * inch}
)

// Force, stress and moment units.
var (
	N     = Unit{"N", Force, 1}
	KN    = Unit{"kN", Force, 1e3}
	Kip   = Unit{"kip", Force, 1e3 * poundF}
	LBF   = Unit{"lbf", Force, poundF}
	Pa    = Unit{"Pa", Stress, 1}
	KPa   = Unit{"kPa", Stress, 1e3}
	MPa   = Unit{"MPa", Stress, 1e6}
	GPa   = Unit{"GPa", Stress, 1e9}
	PSI   = Unit{"psi", Stress, poundF / (inch * inch)}
	KSI   = Unit{"ksi", Stress, 1e3 * poundF / (inch * inch)}
	NMM   = Unit{"N·mm", Moment, 1e-3}
	NM    = Unit{"N·m", Moment, 1}
	KNM   = Unit{"kN·m", Moment, 1e3}
	KipIn = Unit{"kip·in", Moment, 1e3 * poundF * inch}
	KipFt = Unit{"kip·ft", Moment, 1e3 * poundF * foot}
)

// Mass and density units.
var (
	KG      = Unit{"kg", Mass, 1}
	KgPerM  = Unit{"kg/m", LinearDensity, 1}
	LbPerFt = Unit{"lb/ft", LinearDensity, pound / foot}
	KgPerM3 = Unit{"kg/m³", Density, 1}
	One     = Unit{"", Dimensionless, 1}
)

// display is the unit each dimension is rendered in.
var display = map[Dimension]Unit{
	Dimensionless:  One,
	Length:         MM,
	Area:           MM2,
	SectionModulus: MM3,
	Inertia:        MM4,
	Warping:        MM6,
	Mass:           KG,
	Force:          KN,
	Stress:         MPa,
	Moment:         KNM,
	LinearDensity:  KgPerM,
	Density:        KgPerM3,
}

// DisplayUnit returns the unit a dimension is rendered in, falling back to the
// SI base unit for derived dimensions without a preferred symbol.
func DisplayUnit(d Dimension) Unit {
	if u, ok := display[d]; ok {
		return u
	}
	return Unit{Symbol: "[" + d.String() + "]", Dim: d, Factor: 1}
}

var symbols = map[string]Unit{}

func register(u Unit, aliases ...string) {
	symbols[strings.ToLower(u.Symbol)] = u
	for _, a := range aliases {
		symbols[strings.ToLower(a)] = u
	}
}

func init() {
	register(MM)
	register(CM)
	register(M)
	register(IN, "inch", "inches", `"`)
	register(FT, "feet", "foot", "'")
	register(MM2, "mm2", "mm^2")
	register(M2, "m2", "m^2")
	register(IN2, "in2", "in^2")
	register(MM3, "mm3", "mm^3")
	register(IN3, "in3", "in^3")
	register(MM4, "mm4", "mm^4")
	register(IN4, "in4", "in^4")
	register(MM6, "mm6", "mm^6")
	register(IN6, "in6", "in^6")
	register(N)
	register(KN)
	register(Kip, "kips", "k")
	register(LBF, "lb")
	register(Pa)
	register(KPa)
	register(MPa, "n/mm2", "n/mm²")
	register(GPa)
	register(PSI)
	register(KSI)
	register(NMM, "nmm", "n-mm", "n*mm")
	register(NM, "n-m", "n*m", "n.m")
	register(KNM, "knm", "kn-m", "kn*m", "kn.m")
	register(KipIn, "kipin", "kip-in", "kip*in", "k-in")
	register(KipFt, "kipft", "kip-ft", "kip*ft", "k-ft")
	register(KG)
	register(KgPerM, "kg/m")
	register(LbPerFt, "plf", "lb/ft")
	register(KgPerM3, "kg/m3", "kg/m^3")
}

// Lookup resolves a unit symbol case-insensitively.
func Lookup(symbol string) (Unit, error) {
	s := strings.ToLower(strings.TrimSpace(symbol))
	if s == "" {
		return One, nil
	}
	u, ok := symbols[s]
	if !ok {
		return Unit{}, fmt.Errorf("unknown unit %q", symbol)
	}
	return u, nil
}

func (u Unit) String() string {
	return u.Symbol
}
