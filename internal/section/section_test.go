package section

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/alexiusacademia/gosteel/internal/units"
	"github.com/xuri/excelize/v2"
)

func within(got, want, rel float64) bool {
	return math.Abs(got-want) <= rel*math.Abs(want)
}

func defaultDB(t *testing.T) *Database {
	t.Helper()
	db, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	return db
}

func TestScalingGroups(t *testing.T) {
	db := defaultDB(t)
	m, err := db.Lookup("W18X50")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		prop string
		unit units.Unit
		want float64
	}{
		{"Ix", units.MM4, 333e6},
		{"J", units.MM4, 516e3},
		{"Zx", units.MM3, 1660e3},
		{"Cw", units.MM6, 816e9},
		{"A", units.MM2, 9480},
		{"rts", units.MM, 50.3},
		{"W", units.KgPerM, 74.4},
		{"bf_2tf", units.One, 6.57},
	}
	for _, tt := range tests {
		t.Run(tt.prop, func(t *testing.T) {
			q, ok := m.Get(tt.prop)
			if !ok {
				t.Fatalf("%s missing", tt.prop)
			}
			got, err := q.In(tt.unit)
			if err != nil {
				t.Fatal(err)
			}
			if !within(got, tt.want, 1e-12) {
				t.Errorf("%s = %v, want %v", tt.prop, got, tt.want)
			}
		})
	}
}

func TestGetAbsent(t *testing.T) {
	m, err := defaultDB(t).Lookup("HSS6X6X3/8")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := m.Get("rts"); ok {
		t.Error("HSS should not carry rts")
	}
	if err := m.Require("A", "rts"); !errors.Is(err, ErrMissingProperty) {
		t.Errorf("Require: %v", err)
	}
}

func TestLookup(t *testing.T) {
	db := defaultDB(t)
	tests := []struct {
		callout string
		want    string
	}{
		{"W18X50", "W18X50"},
		{"  w18x50 ", "W18X50"},
		{"W460X74", "W18X50"},
		{"w460x74", "W18X50"},
		{"W18 × 50", "W18X50"},
		{"W 200 X 46.1", "W8X31"},
	}
	for _, tt := range tests {
		t.Run(tt.callout, func(t *testing.T) {
			m, err := db.Lookup(tt.callout)
			if err != nil {
				t.Fatal(err)
			}
			if m.Name() != tt.want {
				t.Errorf("got %s, want %s", m.Name(), tt.want)
			}
		})
	}

	if _, err := db.Lookup("W99X999"); !errors.Is(err, ErrShapeNotFound) {
		t.Errorf("unknown shape: %v", err)
	}
}

func TestQueries(t *testing.T) {
	db := defaultDB(t)

	byWeight := db.ByType(TypeW, "W")
	want := []string{"W12X26", "W8X31", "W18X50", "W14X90"}
	if strings.Join(byWeight, ",") != strings.Join(want, ",") {
		t.Errorf("ByType = %v, want %v", byWeight, want)
	}

	deep := db.InRange(TypeW, "d", 300, math.Inf(1), "W")
	if strings.Join(deep, ",") != "W12X26,W18X50,W14X90" {
		t.Errorf("InRange = %v", deep)
	}

	name, ok := db.Lightest(TypeW, "Zx", 1000)
	if !ok || name != "W18X50" {
		t.Errorf("Lightest = %q, %v", name, ok)
	}
	if _, ok := db.Lightest(TypeW, "Zx", 1e6); ok {
		t.Error("Lightest should find nothing")
	}

	if got := db.Search("W1", "", 2); len(got) != 2 {
		t.Errorf("Search limit: %v", got)
	}
	if got := db.Search("X", TypeC, 0); len(got) != 1 || got[0] != "C8X11.5" {
		t.Errorf("Search type filter: %v", got)
	}

	types := db.Types()
	if len(types) != 4 {
		t.Errorf("Types = %v", types)
	}
}

func TestLoadJSONSkipsText(t *testing.T) {
	src := `{"X1": {"name_metric": "X1M", "type": "w", "A": 100, "T_F": "F", "d": 50}}`
	db, err := LoadJSON(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	m, err := db.Lookup("x1m")
	if err != nil {
		t.Fatal(err)
	}
	if m.Type() != TypeW {
		t.Errorf("type = %s", m.Type())
	}
	if _, ok := m.Record().Raw("T_F"); ok {
		t.Error("text property should be dropped")
	}
}

func TestLoadJSONRejectsUnknownType(t *testing.T) {
	_, err := LoadJSON(strings.NewReader(`{"Q1": {"type": "ZZ", "A": 1}}`))
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestLoadXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := "Database v16.0"
	if _, err := f.NewSheet(sheet); err != nil {
		t.Fatal(err)
	}
	header := []any{"Type", "EDI_Std_Nomenclature", "AISC_Manual_Label", "W", "A", "d", "T_F", "tan(α)",
		"EDI_Std_Nomenclature", "W", "A", "d"}
	rows := [][]any{
		header,
		{"W", "W18X50", "W18X50", "50", "14.7", "18", "F", "–", "W460X74", "74.4", "9480", "457"},
		{"WT", "WT9X25", "WT9X25", "25", "7.33", "8.97", "F", "–", "WT230X37", "37.2", "4730", "228"},
		{"Z", "Z1", "Z1", "1", "1", "1", "F", "–", "Z1M", "1", "1", "1"},
	}
	for i, row := range rows {
		axis, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(sheet, axis, &row); err != nil {
			t.Fatal(err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatal(err)
	}

	db, err := LoadXLSX(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if db.Len() != 2 {
		t.Fatalf("Len = %d, want 2", db.Len())
	}
	m, err := db.Lookup("W460X74")
	if err != nil {
		t.Fatal(err)
	}
	if a, _ := m.Record().Raw("A"); a != 9480 {
		t.Errorf("metric A = %v", a)
	}
	if a, _ := m.Record().Raw("A_imp"); a != 14.7 {
		t.Errorf("imperial A = %v", a)
	}
	if _, ok := m.Record().Raw("tanalpha"); ok {
		t.Error("dash cell should be skipped")
	}
}

func TestOutlineRectangle(t *testing.T) {
	o := &Outline{Name: "PL200X100", Vertices: []Point{{0, 0}, {100, 0}, {100, 200}, {0, 200}}}
	p := o.CalculateProperties()

	checks := []struct {
		name      string
		got, want float64
	}{
		{"A", p.Area, 20000},
		{"Ix", p.Ix, 100 * 200 * 200 * 200 / 12.0},
		{"Iy", p.Iy, 200 * 100 * 100 * 100 / 12.0},
		{"Sx", p.Sx, 100 * 200 * 200 / 6.0},
		{"Zx", p.Zx, 100 * 200 * 200 / 4.0},
		{"Zy", p.Zy, 200 * 100 * 100 / 4.0},
		{"rx", p.Rx, 200 / math.Sqrt(12)},
	}
	for _, c := range checks {
		if !within(c.got, c.want, 1e-6) {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}
}

func TestOutlineBuiltUpI(t *testing.T) {
	o := &Outline{Name: "BU300X200", Vertices: []Point{
		{0, 0}, {200, 0}, {200, 20}, {105, 20}, {105, 280}, {200, 280},
		{200, 300}, {0, 300}, {0, 280}, {95, 280}, {95, 20}, {0, 20},
	}}
	rec, err := o.Record()
	if err != nil {
		t.Fatal(err)
	}
	m := NewModel(rec)
	if m.Type() != TypeBuiltUp {
		t.Errorf("type = %s", m.Type())
	}

	a, _ := m.Get("A")
	ix, _ := m.Get("Ix")
	zx, _ := m.Get("Zx")
	if got := a.MustIn(units.MM2); !within(got, 10600, 1e-9) {
		t.Errorf("A = %v", got)
	}
	if got := ix.MustIn(units.MM4); !within(got, 171713333.3, 1e-6) {
		t.Errorf("Ix = %v", got)
	}
	if got := zx.MustIn(units.MM3); !within(got, 1289000, 1e-3) {
		t.Errorf("Zx = %v", got)
	}
	if _, ok := m.Get("rts"); ok {
		t.Error("built-up outline should not carry rts")
	}
}

func TestOutlineValidate(t *testing.T) {
	o := &Outline{Name: "LINE", Vertices: []Point{{0, 0}, {1, 1}, {2, 2}}}
	if err := o.Validate(); err == nil {
		t.Error("degenerate outline should fail validation")
	}
}
