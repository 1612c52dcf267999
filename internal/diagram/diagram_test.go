package diagram

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alexiusacademia/gosteel/internal/column"
	"github.com/alexiusacademia/gosteel/internal/material"
	"github.com/alexiusacademia/gosteel/internal/provisions"
	"github.com/alexiusacademia/gosteel/internal/section"
	"github.com/alexiusacademia/gosteel/internal/units"
)

func fixtures(t *testing.T) (*section.Model, material.Steel) {
	t.Helper()
	db, err := section.Default()
	if err != nil {
		t.Fatal(err)
	}
	m, err := db.Lookup("W18X50")
	if err != nil {
		t.Fatal(err)
	}
	s, err := material.DefaultRegistry().Steel("A992")
	if err != nil {
		t.Fatal(err)
	}
	return m, s
}

func TestBeamCurve(t *testing.T) {
	m, s := fixtures(t)
	c, err := BeamCurve(m, s, 1, units.New(10, units.M), 41)
	if err != nil {
		t.Fatal(err)
	}
	if len(c.Points) != 41 {
		t.Fatalf("points = %d", len(c.Points))
	}
	if c.Points[0].X != 0 || c.Points[40].X != 10 {
		t.Errorf("range = %v..%v", c.Points[0].X, c.Points[40].X)
	}
	for i := 1; i < len(c.Points); i++ {
		if c.Points[i].Y > c.Points[i-1].Y+1e-9 {
			t.Fatalf("φMn increases at Lb = %v", c.Points[i].X)
		}
	}
	if len(c.Markers) != 2 || c.Markers[0].Label != "Lp" || c.Markers[1].Label != "Lr" {
		t.Errorf("markers = %+v", c.Markers)
	}
}

func TestColumnCurve(t *testing.T) {
	m, s := fixtures(t)
	c, err := ColumnCurve(m, s, provisions.Pinned, provisions.Pinned, 0, units.New(12, units.M), 24)
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i < len(c.Points); i++ {
		if c.Points[i].Y >= c.Points[i-1].Y {
			t.Fatalf("φPn does not decrease at L = %v", c.Points[i].X)
		}
	}
	if len(c.Markers) != 1 {
		t.Errorf("markers = %+v", c.Markers)
	}
}

func TestColumnCurveKOverride(t *testing.T) {
	m, s := fixtures(t)
	c, err := ColumnCurve(m, s, provisions.Pinned, provisions.Pinned, 0.65, units.New(12, units.M), 24)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(c.Title, "K = 0.65") {
		t.Errorf("title = %q", c.Title)
	}
	// sample 6 lies at L = 3 m
	r, err := column.EvaluateCompression(column.Input{
		Section:  m,
		Material: s,
		Length:   units.New(3, units.M),
		K:        0.65,
	})
	if err != nil {
		t.Fatal(err)
	}
	p := c.Points[5]
	if p.X != 3 {
		t.Fatalf("sample 6 at L = %v", p.X)
	}
	if want := r.Design.MustIn(units.KN); p.Y != want {
		t.Errorf("φPn at 3 m = %v, want %v", p.Y, want)
	}
}

func TestCurveArguments(t *testing.T) {
	m, s := fixtures(t)
	if _, err := BeamCurve(m, s, 1, units.New(10, units.M), 1); err == nil {
		t.Error("one sample should fail")
	}
	if _, err := BeamCurve(m, s, 1, units.New(10, units.KN), 10); err == nil {
		t.Error("force range should fail")
	}
}

func TestASCII(t *testing.T) {
	m, s := fixtures(t)
	c, err := BeamCurve(m, s, 1, units.New(10, units.M), 30)
	if err != nil {
		t.Fatal(err)
	}
	out := ASCII(c, 10, 40)
	for _, want := range []string{c.Title, "Lp = ", "Lr = ", "φMn"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if ASCII(Curve{}, 10, 40) != "" {
		t.Error("empty curve should render nothing")
	}
}

func TestSummaryBox(t *testing.T) {
	out := SummaryBox("W18X50", []string{"φMn = 441.0 kN·m", "PASS"})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 6 {
		t.Fatalf("lines = %d", len(lines))
	}
	width := len([]rune(lines[0]))
	for _, l := range lines {
		if len([]rune(l)) != width {
			t.Errorf("ragged line %q", l)
		}
	}
}

func TestExport(t *testing.T) {
	m, s := fixtures(t)
	c, err := BeamCurve(m, s, 1, units.New(10, units.M), 30)
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	for _, name := range []string{"beam.png", "out/beam.svg"} {
		path := filepath.Join(dir, name)
		if err := Export(c, path); err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if fi, err := os.Stat(path); err != nil || fi.Size() == 0 {
			t.Errorf("%s not written: %v", name, err)
		}
	}
	if err := Export(c, filepath.Join(dir, "beam.bmp")); err == nil {
		t.Error("bmp should be rejected")
	}
}

func TestExportOutline(t *testing.T) {
	o := &section.Outline{Name: "plate", Vertices: []section.Point{
		{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 200}, {X: 0, Y: 200},
	}}
	path := filepath.Join(t.TempDir(), "plate.png")
	if err := ExportOutline(o, path); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Error(err)
	}
}
