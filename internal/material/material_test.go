package material

import (
	"errors"
	"math"
	"testing"

	"github.com/alexiusacademia/gosteel/internal/units"
)

func TestSteelLookup(t *testing.T) {
	reg := DefaultRegistry()
	tests := []struct {
		name   string
		want   string
		fy, fu float64
		eGPa   float64
	}{
		{"ASTM A992", "ASTM A992", 345, 450, 200},
		{"a992", "ASTM A992", 345, 450, 200},
		{"350W", "CSA G40.21 350W", 350, 450, 200},
		{"6061-T6", "6061-T6", 276, 310, 68.9},
		{"SS 304", "SS 304", 215, 505, 193},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := reg.Steel(tt.name)
			if err != nil {
				t.Fatal(err)
			}
			if m.Name != tt.want {
				t.Errorf("name = %s", m.Name)
			}
			if got := m.Fy.MustIn(units.MPa); got != tt.fy {
				t.Errorf("Fy = %v", got)
			}
			if got := m.Fu.MustIn(units.MPa); got != tt.fu {
				t.Errorf("Fu = %v", got)
			}
			if got := m.E.MustIn(units.GPa); math.Abs(got-tt.eGPa) > 1e-9 {
				t.Errorf("E = %v", got)
			}
		})
	}
}

func TestSteelNotFound(t *testing.T) {
	reg := DefaultRegistry()
	for _, name := range []string{"ASTM A1085", "", "W"} {
		if _, err := reg.Steel(name); !errors.Is(err, ErrMaterialNotFound) {
			t.Errorf("Steel(%q) err = %v", name, err)
		}
	}
}

func TestBoltGradeNormalization(t *testing.T) {
	reg := DefaultRegistry()
	tests := []struct {
		grade string
		fu    float64
	}{
		{"8.8", 800},
		{"Grade 8.8", 800},
		{"Class 10.9", 1040},
		{"ASTM A325", 825},
		{"a490", 1035},
		{"F3125", 825},
	}
	for _, tt := range tests {
		b, err := reg.Bolt(tt.grade)
		if err != nil {
			t.Errorf("Bolt(%q): %v", tt.grade, err)
			continue
		}
		if got := b.Fu.MustIn(units.MPa); got != tt.fu {
			t.Errorf("Bolt(%q).Fu = %v, want %v", tt.grade, got, tt.fu)
		}
	}
	if _, err := reg.Bolt("4.6"); !errors.Is(err, ErrMaterialNotFound) {
		t.Errorf("unknown grade: %v", err)
	}
}

func TestRegistryWith(t *testing.T) {
	base := DefaultRegistry()
	ext, err := base.With([]SteelSpec{{Name: "ASTM A572 Gr 50", Fy: 345, Fu: 450, E: 200}}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ext.Steel("ASTM A572 Gr 50"); err != nil {
		t.Errorf("extended registry: %v", err)
	}
	if _, err := base.Steel("ASTM A572 Gr 50"); err == nil {
		t.Error("base registry must not change")
	}
	if _, err := base.With([]SteelSpec{{Name: "bad"}}, nil); err == nil {
		t.Error("invalid spec should fail")
	}
}

func TestConcrete(t *testing.T) {
	c, err := DefaultRegistry().Concrete(units.New(25, units.MPa))
	if err != nil {
		t.Fatal(err)
	}
	if c.Name != "Concrete 25MPa" || c.Phi != 0.65 {
		t.Errorf("got %+v", c)
	}
	if _, err := DefaultRegistry().Concrete(units.New(25, units.MM)); !errors.Is(err, units.ErrDimensionMismatch) {
		t.Errorf("length as strength: %v", err)
	}
}

func TestNextThickness(t *testing.T) {
	s := DefaultStock()
	tests := []struct {
		name    string
		req     units.Quantity
		cat     Category
		sys     System
		want    float64
		unit    units.Unit
		inRange bool
	}{
		{"plate", units.New(4.36, units.MM), Plate, Metric, 5, units.MM, true},
		{"plate exact", units.New(20, units.MM), Plate, Metric, 20, units.MM, true},
		{"sheet", units.New(1.3, units.MM), Sheet, Metric, 1.5, units.MM, true},
		{"imperial", units.New(10, units.MM), Plate, Imperial, 0.4375, units.IN, true},
		{"too thick", units.New(150, units.MM), Plate, Metric, 100, units.MM, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok, err := s.NextThickness(tt.req, tt.cat, tt.sys)
			if err != nil {
				t.Fatal(err)
			}
			if ok != tt.inRange {
				t.Errorf("ok = %v", ok)
			}
			if v := got.MustIn(tt.unit); math.Abs(v-tt.want) > 1e-9 {
				t.Errorf("thickness = %v, want %v", v, tt.want)
			}
		})
	}
	if !s.Available("astm a36", Plate) || s.Available("AR500", Sheet) {
		t.Error("Available mismatch")
	}
}
