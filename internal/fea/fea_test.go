package fea

import (
	"math"
	"strings"
	"testing"

	"github.com/alexiusacademia/gosteel/internal/section"
	"github.com/alexiusacademia/gosteel/internal/units"
)

func TestMapSectionSwapsAxes(t *testing.T) {
	db, err := section.Default()
	if err != nil {
		t.Fatal(err)
	}
	m, err := db.Lookup("W18X50")
	if err != nil {
		t.Fatal(err)
	}
	fs, err := MapSection(m)
	if err != nil {
		t.Fatal(err)
	}
	ix, _ := m.Get("Ix")
	iy, _ := m.Get("Iy")
	if fs.Iz != ix.SI() || fs.Iy != iy.SI() {
		t.Errorf("Iz = %v, Iy = %v; want Ix %v, Iy %v", fs.Iz, fs.Iy, ix.SI(), iy.SI())
	}
	if fs.Iz <= fs.Iy {
		t.Error("strong axis should map to Iz")
	}
	if math.Abs(fs.Area-9480e-6) > 1e-12 {
		t.Errorf("area = %v", fs.Area)
	}
	if math.Abs(fs.Depth-0.457) > 1e-12 {
		t.Errorf("depth = %v", fs.Depth)
	}
}

func TestMapSectionMissing(t *testing.T) {
	rec, err := section.NewRecord("PLATE", "", section.TypeBuiltUp, map[string]float64{"A": 100})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := MapSection(section.NewModel(rec)); err == nil {
		t.Error("expected missing property error")
	}
}

func TestEnvelopeDemand(t *testing.T) {
	env, err := ReadEnvelope(strings.NewReader(`{
		"max_moment_z": 120000, "min_moment_z": -185000,
		"max_shear_y": 90000, "min_shear_y": -40000,
		"max_axial": 5000, "min_axial": -250000
	}`))
	if err != nil {
		t.Fatal(err)
	}
	d := env.Demand()
	tests := []struct {
		name string
		got  units.Quantity
		unit units.Unit
		want float64
	}{
		{"moment", d.Moment, units.KNM, 185},
		{"shear", d.Shear, units.KN, 90},
		{"axial", d.Axial, units.KN, 250},
	}
	for _, tt := range tests {
		if got := tt.got.MustIn(tt.unit); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("%s = %v, want %v", tt.name, got, tt.want)
		}
	}

	if _, err := ReadEnvelope(strings.NewReader(`{"moment": 1}`)); err == nil {
		t.Error("unknown field should fail")
	}
}
