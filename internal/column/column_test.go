package column

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/alexiusacademia/gosteel/internal/limitstate"
	"github.com/alexiusacademia/gosteel/internal/material"
	"github.com/alexiusacademia/gosteel/internal/provisions"
	"github.com/alexiusacademia/gosteel/internal/section"
	"github.com/alexiusacademia/gosteel/internal/units"
)

func approx(t *testing.T, name string, got, want, rel float64) {
	t.Helper()
	if math.Abs(got-want) > rel*math.Abs(want) {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func shape(t *testing.T, name string) *section.Model {
	t.Helper()
	db, err := section.Default()
	if err != nil {
		t.Fatal(err)
	}
	m, err := db.Lookup(name)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func steel(t *testing.T, name string) material.Steel {
	t.Helper()
	m, err := material.DefaultRegistry().Steel(name)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestW8X31Pinned(t *testing.T) {
	r, err := EvaluateCompression(Input{
		Section:  shape(t, "W8X31"),
		Material: steel(t, "ASTM A992"),
		Length:   units.New(3, units.M),
		Top:      provisions.Pinned,
		Bottom:   provisions.Pinned,
	})
	if err != nil {
		t.Fatal(err)
	}

	if r.Axis != string(AxisY) {
		t.Errorf("axis = %s", r.Axis)
	}
	if r.Regime != limitstate.InelasticBuckling {
		t.Errorf("regime = %s", r.Regime)
	}
	klr, _ := r.Value("KL/r")
	slender, _ := klr.Float()
	approx(t, "KL/r", slender, 58.48, 1e-3)

	fe, _ := r.Value("Fe")
	approx(t, "Fe", fe.MustIn(units.MPa), 577.2, 1e-3)
	fcr, _ := r.Value("Fcr")
	approx(t, "Fcr", fcr.MustIn(units.MPa), 268.6, 1e-3)
	approx(t, "Pn", r.Nominal.MustIn(units.KN), 1582, 1e-3)
	approx(t, "φPn", r.Design.MustIn(units.KN), 1424, 1e-3)

	if len(r.Warnings()) != 0 {
		t.Errorf("unexpected warnings: %v", r.Warnings())
	}
}

func TestSlendernessIsMaxOfAxes(t *testing.T) {
	for _, name := range []string{"W8X31", "W14X90", "W18X50", "HSS6X6X3/8", "L4X4X1/2"} {
		t.Run(name, func(t *testing.T) {
			m := shape(t, name)
			r, err := EvaluateCompression(Input{
				Section:  m,
				Material: steel(t, "ASTM A992"),
				Length:   units.New(4, units.M),
				Top:      provisions.Fixed,
				Bottom:   provisions.Pinned,
			})
			if err != nil {
				t.Fatal(err)
			}
			x, _ := r.Value("KL/rx")
			y, _ := r.Value("KL/ry")
			g, _ := r.Value("KL/r")
			xv, _ := x.Float()
			yv, _ := y.Float()
			gv, _ := g.Float()
			if gv != math.Max(xv, yv) {
				t.Errorf("KL/r = %v, max = %v", gv, math.Max(xv, yv))
			}
			wantAxis := AxisX
			if yv > xv {
				wantAxis = AxisY
			}
			if r.Axis != string(wantAxis) {
				t.Errorf("axis = %s, want %s", r.Axis, wantAxis)
			}
			approx(t, "φPn/Pn", r.Design.SI()/r.Nominal.SI(), 0.90, 1e-12)
		})
	}
}

func TestSlenderWarning(t *testing.T) {
	r, err := EvaluateCompression(Input{
		Section:  shape(t, "L4X4X1/2"),
		Material: steel(t, "ASTM A36"),
		Length:   units.New(6, units.M),
		Top:      provisions.Fixed,
		Bottom:   provisions.Free,
	})
	if err != nil {
		t.Fatal(err)
	}
	if r.Regime != limitstate.ElasticBuckling {
		t.Errorf("regime = %s", r.Regime)
	}
	if len(r.Warnings()) != 1 {
		t.Fatalf("warnings = %d", len(r.Warnings()))
	}
	fe, _ := r.Value("Fe")
	fcr, _ := r.Value("Fcr")
	approx(t, "Fcr", fcr.SI(), 0.877*fe.SI(), 1e-12)
}

func TestKOverride(t *testing.T) {
	r, err := EvaluateCompression(Input{
		Section:  shape(t, "W14X90"),
		Material: steel(t, "ASTM A992"),
		Length:   units.New(5, units.M),
		K:        1.5,
	})
	if err != nil {
		t.Fatal(err)
	}
	k, _ := r.Value("K")
	if v, _ := k.Float(); v != 1.5 {
		t.Errorf("K = %v", v)
	}
}

func TestRegimeBoundary(t *testing.T) {
	if Classify(113.4, 113.4) != limitstate.InelasticBuckling {
		t.Error("ratio equal to the limit must be inelastic")
	}
	if Classify(113.41, 113.4) != limitstate.ElasticBuckling {
		t.Error("ratio above the limit must be elastic")
	}

	for _, grade := range []string{"ASTM A36", "ASTM A992", "CSA G40.21 350W", "6061-T6"} {
		m := steel(t, grade)
		limit, err := SlendernessLimit(m.E, m.Fy)
		if err != nil {
			t.Fatal(err)
		}
		fe := EulerStress(m.E, limit)
		inelastic, err := InelasticStress(m.Fy, fe)
		if err != nil {
			t.Fatal(err)
		}
		elastic := ElasticStress(fe)
		approx(t, grade+" continuity", inelastic.SI(), elastic.SI(), 1e-3)
	}
}

func TestInelasticPnIncreasesWithFy(t *testing.T) {
	var prev float64
	for _, fy := range []float64{250, 345, 450} {
		m := material.Steel{
			Name: fmt.Sprintf("Fy %.0f", fy),
			Fy:   units.New(fy, units.MPa),
			Fu:   units.New(fy*1.3, units.MPa),
			E:    units.New(200, units.GPa),
		}
		r, err := EvaluateCompression(Input{
			Section:  shape(t, "W14X90"),
			Material: m,
			Length:   units.New(3, units.M),
			K:        1,
		})
		if err != nil {
			t.Fatal(err)
		}
		if r.Regime != limitstate.InelasticBuckling {
			t.Fatalf("%s: regime = %s", m.Name, r.Regime)
		}
		pn := r.Nominal.SI()
		if pn < prev {
			t.Errorf("%s: Pn = %v, below %v at lower Fy", m.Name, pn, prev)
		}
		prev = pn
	}
}

func TestErrors(t *testing.T) {
	base := Input{
		Section:  shape(t, "W8X31"),
		Material: steel(t, "ASTM A992"),
		Length:   units.New(3, units.M),
		Top:      provisions.Free,
		Bottom:   provisions.Free,
	}
	if _, err := EvaluateCompression(base); !errors.Is(err, provisions.ErrInvalidBoundaryCondition) {
		t.Errorf("free-free: %v", err)
	}

	base.Top, base.Bottom = provisions.Pinned, provisions.Pinned
	zero := base
	zero.Length = units.New(0, units.M)
	if _, err := EvaluateCompression(zero); !errors.Is(err, limitstate.ErrInvalidInput) {
		t.Errorf("zero length: %v", err)
	}

	rec, err := section.NewRecord("X", "", section.TypeW, map[string]float64{"A": 1000, "rx": 50})
	if err != nil {
		t.Fatal(err)
	}
	missing := base
	missing.Section = section.NewModel(rec)
	if _, err := EvaluateCompression(missing); !errors.Is(err, section.ErrMissingProperty) {
		t.Errorf("missing ry: %v", err)
	}

	bare := base
	bare.Material = material.Steel{Name: "unset"}
	if _, err := EvaluateCompression(bare); !errors.Is(err, limitstate.ErrInvalidInput) {
		t.Errorf("zero material: %v", err)
	}
}

func TestDeterministicTrace(t *testing.T) {
	in := Input{
		Section:  shape(t, "W8X31"),
		Material: steel(t, "ASTM A992"),
		Length:   units.New(3, units.M),
		Top:      provisions.Pinned,
		Bottom:   provisions.Pinned,
	}
	a, _ := EvaluateCompression(in)
	b, _ := EvaluateCompression(in)
	if a.Trace.Fingerprint() != b.Trace.Fingerprint() {
		t.Error("same input must give the same trace")
	}
}
