package section

import (
	"errors"
	"fmt"

	"github.com/alexiusacademia/gosteel/internal/units"
)

// ErrMissingProperty is returned by Require when a record lacks a property.
var ErrMissingProperty = errors.New("missing section property")

// scale is the unit a stored database value is expressed in.
type scale struct {
	unit   units.Unit
	factor float64
}

var (
	inertiaScale  = scale{units.MM4, 1e6}
	torsionScale  = scale{units.MM4, 1e3}
	modulusScale  = scale{units.MM3, 1e3}
	warpingScale  = scale{units.MM6, 1e9}
	areaScale     = scale{units.MM2, 1}
	lengthScale   = scale{units.MM, 1}
	densityScale  = scale{units.KgPerM, 1}
	unscaledValue = scale{units.One, 1}
)

// scalingGroups maps each property of the AISC metric database to the unit
// its stored number is expressed in. Anything not listed is dimensionless.
var scalingGroups = map[string]scale{}

func group(s scale, names ...string) {
	for _, n := range names {
		scalingGroups[n] = s
	}
}

func init() {
	group(inertiaScale, "Ix", "Iy", "Iz", "Iw", "Sw1", "Sw2", "Sw3")
	group(torsionScale, "J")
	group(modulusScale, "Zx", "Sx", "Zy", "Sy", "Sz", "Qf", "Qw", "C",
		"SwA", "SwB", "SwC", "SzA", "SzB", "SzC")
	group(warpingScale, "Cw")
	group(areaScale, "A", "Wno")
	group(lengthScale, "d", "bf", "tf", "tw", "h", "OD", "ID", "Ht", "B", "b", "t",
		"kdes", "kdet", "k1", "x", "y", "eo", "xp", "yp", "rx", "ry", "rz", "ro",
		"rts", "ho", "T", "WGi", "WGo", "ddet", "bfdet", "twdet", "twdet_2",
		"tfdet", "tnom", "tdes", "zA", "zB", "zC", "wA", "wB", "wC",
		"PA", "PA2", "PB", "PC", "PD")
	group(densityScale, "W")
}

// UnitOf returns the unit a stored property value is read in.
func UnitOf(name string) (units.Unit, float64) {
	s, ok := scalingGroups[name]
	if !ok {
		s = unscaledValue
	}
	return s.unit, s.factor
}

// Model exposes a record's properties as dimensioned quantities.
type Model struct {
	rec *Record
}

// NewModel wraps a record.
func NewModel(r *Record) *Model {
	return &Model{rec: r}
}

// Record returns the underlying raw record.
func (m *Model) Record() *Record { return m.rec }

// Name returns the imperial designation.
func (m *Model) Name() string { return m.rec.name }

// Type returns the shape family.
func (m *Model) Type() ShapeType { return m.rec.typ }

// Get returns the named property with its unit applied. The boolean is false
// when the record does not carry the property.
func (m *Model) Get(name string) (units.Quantity, bool) {
	raw, ok := m.rec.props[name]
	if !ok {
		return units.Quantity{}, false
	}
	u, factor := UnitOf(name)
	return units.New(raw*factor, u), true
}

// Require reports ErrMissingProperty for the first absent name.
func (m *Model) Require(names ...string) error {
	for _, n := range names {
		if _, ok := m.rec.props[n]; !ok {
			return fmt.Errorf("%w: %s has no %s", ErrMissingProperty, m.rec.name, n)
		}
	}
	return nil
}

func (m *Model) String() string {
	if m.rec.metric != "" {
		return fmt.Sprintf("%s (%s)", m.rec.name, m.rec.metric)
	}
	return m.rec.name
}
