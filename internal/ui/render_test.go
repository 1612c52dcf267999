package ui

import (
	"strings"
	"testing"

	"github.com/alexiusacademia/gosteel/internal/limitstate"
	"github.com/alexiusacademia/gosteel/internal/trace"
	"github.com/alexiusacademia/gosteel/internal/units"
)

func TestBadge(t *testing.T) {
	if got := Badge(limitstate.Pass); !strings.Contains(got, "[PASS]") {
		t.Errorf("Badge(Pass) = %q", got)
	}
	if got := Badge(limitstate.Fail); !strings.Contains(got, "[FAIL]") {
		t.Errorf("Badge(Fail) = %q", got)
	}
}

func TestUtilization(t *testing.T) {
	tests := []struct {
		u    float64
		want string
	}{
		{0.5, "0.500"},
		{0.95, "0.950"},
		{1.2, "1.200"},
	}
	for _, tt := range tests {
		if got := Utilization(tt.u); !strings.Contains(got, tt.want) {
			t.Errorf("Utilization(%v) = %q, want %q", tt.u, got, tt.want)
		}
	}
}

func TestHeader(t *testing.T) {
	got := Header("COLUMN")
	lines := strings.Split(got, "\n")
	if len(lines) != 2 {
		t.Fatalf("Header lines = %d, want 2", len(lines))
	}
	if !strings.Contains(lines[1], strings.Repeat("─", 6)) {
		t.Errorf("rule = %q", lines[1])
	}
}

func TestTrace(t *testing.T) {
	tr := &trace.Trace{}
	tr.Add(trace.Step{
		Description: "Plastic moment",
		Reference:   "AISC F2-1",
		Formula:     "Mp = Fy·Zx",
		Result:      "776.5 kN·m",
	})
	tr.Warn(trace.Step{Description: "torsional properties missing"})
	tr.Add(trace.Step{
		Description: "Parameters",
		Variables:   map[string]string{"Lb": "3048 mm", "Cb": "1.00"},
	})

	got := Trace(tr)
	for _, want := range []string{
		"1. Plastic moment",
		"(AISC F2-1)",
		"Mp = Fy·Zx",
		"= 776.5 kN·m",
		"[WARNING] torsional properties missing",
		"2. Parameters",
		"Cb = 1.00",
		"Lb = 3048 mm",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Trace output missing %q:\n%s", want, got)
		}
	}
	if strings.Index(got, "Cb = 1.00") > strings.Index(got, "Lb = 3048 mm") {
		t.Error("variables should render in sorted order")
	}
}

func TestTraceEmpty(t *testing.T) {
	if got := Trace(nil); !strings.Contains(got, "no derivation steps") {
		t.Errorf("Trace(nil) = %q", got)
	}
}

func TestChecks(t *testing.T) {
	a, err := limitstate.NewCheck(limitstate.BoltShear, "", units.New(100, units.KN), units.New(200, units.KN), nil)
	if err != nil {
		t.Fatal(err)
	}
	b, err := limitstate.NewCheck(limitstate.BlockShear, "", units.New(100, units.KN), units.New(80, units.KN), nil)
	if err != nil {
		t.Fatal(err)
	}
	g, err := limitstate.Aggregate([]limitstate.CheckResult{a, b})
	if err != nil {
		t.Fatal(err)
	}

	got := Checks(g)
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("Checks lines = %d, want 2", len(lines))
	}
	if !strings.Contains(lines[0], "0.500") || !strings.Contains(lines[0], "[PASS]") {
		t.Errorf("bolt shear line = %q", lines[0])
	}
	if !strings.Contains(lines[1], "▶") || !strings.Contains(lines[1], "1.250") || !strings.Contains(lines[1], "[FAIL]") {
		t.Errorf("block shear line = %q", lines[1])
	}
}
