package units

import (
	"errors"
	"math"
	"testing"
)

func near(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol*math.Max(1, math.Abs(b))
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		v    float64
		from Unit
		to   Unit
		want float64
	}{
		{"feet to mm", 10, FT, MM, 3048},
		{"in4 to mm4", 1, IN4, MM4, 416231.4256},
		{"ksi to MPa", 50, KSI, MPa, 344.7379},
		{"kip-ft to kN-m", 1, KipFt, KNM, 1.3558179},
		{"GPa to MPa", 200, GPa, MPa, 200000},
		{"lb/ft to kg/m", 50, LbPerFt, KgPerM, 74.408197},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := New(tt.v, tt.from)
			got, err := q.In(tt.to)
			if err != nil {
				t.Fatalf("In: %v", err)
			}
			if !near(got, tt.want, 1e-6) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
			back, err := New(got, tt.to).In(tt.from)
			if err != nil {
				t.Fatalf("In: %v", err)
			}
			if !near(back, tt.v, 1e-12) {
				t.Errorf("round trip %v -> %v", tt.v, back)
			}
		})
	}
}

func TestConvertMismatch(t *testing.T) {
	_, err := New(3, M).In(MPa)
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Fatalf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestArithmetic(t *testing.T) {
	stress := New(345, MPa)
	area := New(9480, MM2)

	force := stress.Mul(area)
	if force.Dim() != Force {
		t.Fatalf("stress*area dim = %v", force.Dim())
	}
	if got := force.MustIn(KN); !near(got, 3270.6, 1e-9) {
		t.Errorf("force = %v kN", got)
	}

	if _, err := stress.Add(area); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("adding stress and area: %v", err)
	}
	if _, err := stress.Cmp(area); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("comparing stress and area: %v", err)
	}

	ratio := New(3, M).Div(New(51.3, MM))
	v, err := ratio.Float()
	if err != nil {
		t.Fatal(err)
	}
	if !near(v, 58.4795, 1e-5) {
		t.Errorf("ratio = %v", v)
	}

	r, err := New(200000, MPa).Div(New(345, MPa)).Sqrt()
	if err != nil {
		t.Fatal(err)
	}
	if got, _ := r.Float(); !near(got, 24.0772, 1e-5) {
		t.Errorf("sqrt = %v", got)
	}
	if _, err := New(1, M).Sqrt(); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("sqrt of length: %v", err)
	}
}

func TestCalcStickyError(t *testing.T) {
	var c Calc
	a := c.Add(New(1, M), New(2, MM))
	if got := a.MustIn(MM); !near(got, 1002, 1e-12) {
		t.Errorf("a = %v", got)
	}
	_ = c.Sub(New(1, M), New(1, KN))
	if c.Err() == nil {
		t.Fatal("expected error")
	}
	if c.Le(New(1, M), New(2, M)) {
		t.Error("comparison after error should be false")
	}
	if !errors.Is(c.Err(), ErrDimensionMismatch) {
		t.Errorf("err = %v", c.Err())
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		def     Unit
		want    float64
		wantErr bool
	}{
		{"10ft", MM, 3048, false},
		{"3 m", MM, 3000, false},
		{"3048", MM, 3048, false},
		{"150kN", KN, 150, false},
		{"33.72 kip", KN, 150.0, false},
		{"345 MPa", KN, 0, true},
		{"abc", MM, 0, true},
		{"10 furlongs", MM, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			q, err := Parse(tt.in, tt.def)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %v", q)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got := q.MustIn(tt.def); !near(got, tt.want, 1e-3) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestString(t *testing.T) {
	if got := New(1.5, KN).Mul(New(2, M)).String(); got != "3 kN·m" {
		t.Errorf("String() = %q", got)
	}
	if got := New(9480, MM2).Format(IN2, 2); got != "14.69 in²" {
		t.Errorf("Format() = %q", got)
	}
}
