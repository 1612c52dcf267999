// Package material holds structural steel, concrete and bolt grades and a
// read-only registry to resolve them by name.
package material

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/alexiusacademia/gosteel/internal/units"
)

// ErrMaterialNotFound is returned when a grade name matches nothing.
var ErrMaterialNotFound = errors.New("material not found")

// Steel is a structural metal grade.
type Steel struct {
	Name    string
	Fy      units.Quantity // yield strength
	Fu      units.Quantity // ultimate strength
	E       units.Quantity // elastic modulus
	Density units.Quantity
}

// Concrete is a concrete strength class with its bearing resistance factor.
type Concrete struct {
	Name string
	Fc   units.Quantity // specified compressive strength f'c
	Phi  float64
}

// Bolt is a fastener property class (ISO 898-1 or ASTM).
type Bolt struct {
	Name  string
	Proof units.Quantity // Sp
	Fy    units.Quantity // Sy
	Fu    units.Quantity // Sut
}

// SteelSpec is a steel grade in catalogue units.
type SteelSpec struct {
	Name    string  `toml:"name" json:"name"`
	Fy      float64 `toml:"fy" json:"fy"`           // MPa
	Fu      float64 `toml:"fu" json:"fu"`           // MPa
	E       float64 `toml:"e" json:"e"`             // GPa
	Density float64 `toml:"density" json:"density"` // kg/m³
}

// BoltSpec is a bolt property class in catalogue units (MPa).
type BoltSpec struct {
	Name  string  `toml:"name" json:"name"`
	Proof float64 `toml:"proof" json:"proof"`
	Fy    float64 `toml:"fy" json:"fy"`
	Fu    float64 `toml:"fu" json:"fu"`
}

// ConcretePhi is the resistance factor applied to concrete bearing.
const ConcretePhi = 0.65

var defaultSteel = []SteelSpec{
	{"ASTM A36", 250, 400, 200, 7850},
	{"ASTM A992", 345, 450, 200, 7850},
	{"CSA G40.21 350W", 350, 450, 200, 7850},
	{"CSA G40.21 300W", 300, 450, 200, 7850},
	{"SS 304", 215, 505, 193, 8000},
	{"6061-T6", 276, 310, 68.9, 2700},
}

var defaultBolts = []BoltSpec{
	{"8.8", 600, 640, 800},
	{"10.9", 830, 900, 1040},
	{"12.9", 970, 1100, 1220},
	{"A325", 600, 635, 825},
	{"A325M", 600, 635, 825},
	{"F3125", 600, 635, 825},
	{"A490", 830, 895, 1035},
}

func (s SteelSpec) build() (Steel, error) {
	if s.Name == "" || s.Fy <= 0 || s.Fu <= 0 || s.E <= 0 {
		return Steel{}, fmt.Errorf("invalid steel grade %q: fy, fu and e must be positive", s.Name)
	}
	density := s.Density
	if density <= 0 {
		density = 7850
	}
	return Steel{
		Name:    s.Name,
		Fy:      units.New(s.Fy, units.MPa),
		Fu:      units.New(s.Fu, units.MPa),
		E:       units.New(s.E, units.GPa),
		Density: units.New(density, units.KgPerM3),
	}, nil
}

func (b BoltSpec) build() (Bolt, error) {
	if b.Name == "" || b.Fu <= 0 {
		return Bolt{}, fmt.Errorf("invalid bolt grade %q: fu must be positive", b.Name)
	}
	return Bolt{
		Name:  b.Name,
		Proof: units.New(b.Proof, units.MPa),
		Fy:    units.New(b.Fy, units.MPa),
		Fu:    units.New(b.Fu, units.MPa),
	}, nil
}

// Registry resolves material grades. It is immutable after construction and
// safe for concurrent reads.
type Registry struct {
	steel map[string]Steel
	bolts map[string]Bolt
}

// NewRegistry builds a registry from catalogue specs.
func NewRegistry(steel []SteelSpec, bolts []BoltSpec) (*Registry, error) {
	r := &Registry{steel: map[string]Steel{}, bolts: map[string]Bolt{}}
	return r.with(steel, bolts)
}

// DefaultRegistry holds the built-in grades.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(defaultSteel, defaultBolts)
	if err != nil {
		panic(err)
	}
	return r
}

// With returns a copy of r extended with extra grades. Extra grades replace
// built-in grades of the same name.
func (r *Registry) With(steel []SteelSpec, bolts []BoltSpec) (*Registry, error) {
	c := &Registry{
		steel: make(map[string]Steel, len(r.steel)+len(steel)),
		bolts: make(map[string]Bolt, len(r.bolts)+len(bolts)),
	}
	for k, v := range r.steel {
		c.steel[k] = v
	}
	for k, v := range r.bolts {
		c.bolts[k] = v
	}
	return c.with(steel, bolts)
}

func (r *Registry) with(steel []SteelSpec, bolts []BoltSpec) (*Registry, error) {
	for _, s := range steel {
		m, err := s.build()
		if err != nil {
			return nil, err
		}
		r.steel[steelKey(s.Name)] = m
	}
	for _, b := range bolts {
		m, err := b.build()
		if err != nil {
			return nil, err
		}
		r.bolts[boltKey(b.Name)] = m
	}
	return r, nil
}

func steelKey(name string) string {
	return strings.Join(strings.Fields(strings.ToUpper(name)), " ")
}

// boltKey drops the ASTM, Grade and Class qualifiers so "ASTM A325",
// "Grade 8.8" and "Class 10.9" resolve.
func boltKey(name string) string {
	var kept []string
	for _, f := range strings.Fields(strings.ToUpper(name)) {
		switch f {
		case "ASTM", "GRADE", "CLASS":
			continue
		}
		kept = append(kept, f)
	}
	return strings.Join(kept, " ")
}

// Steel resolves a steel grade. A bare designation such as "A992" or "350W"
// matches when it identifies exactly one grade.
func (r *Registry) Steel(name string) (Steel, error) {
	key := steelKey(name)
	if m, ok := r.steel[key]; ok {
		return m, nil
	}
	var match []Steel
	for k, m := range r.steel {
		if key != "" && strings.HasSuffix(k, " "+key) {
			match = append(match, m)
		}
	}
	if len(match) == 1 {
		return match[0], nil
	}
	return Steel{}, fmt.Errorf("%w: steel %q", ErrMaterialNotFound, name)
}

// Bolt resolves a bolt property class.
func (r *Registry) Bolt(grade string) (Bolt, error) {
	if m, ok := r.bolts[boltKey(grade)]; ok {
		return m, nil
	}
	return Bolt{}, fmt.Errorf("%w: bolt grade %q", ErrMaterialNotFound, grade)
}

// Concrete builds a concrete class of strength fc.
func (r *Registry) Concrete(fc units.Quantity) (Concrete, error) {
	mpa, err := fc.In(units.MPa)
	if err != nil {
		return Concrete{}, err
	}
	if mpa <= 0 {
		return Concrete{}, fmt.Errorf("%w: concrete strength must be positive", ErrMaterialNotFound)
	}
	return Concrete{
		Name: fmt.Sprintf("Concrete %gMPa", mpa),
		Fc:   fc,
		Phi:  ConcretePhi,
	}, nil
}

// SteelGrades lists steel grades by name.
func (r *Registry) SteelGrades() []Steel {
	out := make([]Steel, 0, len(r.steel))
	for _, m := range r.steel {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// BoltGrades lists bolt grades by name.
func (r *Registry) BoltGrades() []Bolt {
	out := make([]Bolt, 0, len(r.bolts))
	for _, m := range r.bolts {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
