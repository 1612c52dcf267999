package limitstate

import (
	"errors"
	"testing"

	"github.com/alexiusacademia/gosteel/internal/trace"
	"github.com/alexiusacademia/gosteel/internal/units"
)

func check(t *testing.T, label string, demand, capacity float64) CheckResult {
	t.Helper()
	var tr trace.Trace
	tr.Add(trace.Step{Description: label})
	c, err := NewCheck(Mode(label), label, units.New(demand, units.KN), units.New(capacity, units.KN), &tr)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestAggregate(t *testing.T) {
	tests := []struct {
		name       string
		demands    []float64
		wantIndex  int
		wantUtil   float64
		wantStatus Status
	}{
		{"second governs", []float64{40, 90, 60}, 1, 0.9, Pass},
		{"overloaded", []float64{40, 120, 60}, 1, 1.2, Fail},
		{"exactly one passes", []float64{100, 50}, 0, 1.0, Pass},
		{"tie keeps first", []float64{70, 70, 10}, 0, 0.7, Pass},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var checks []CheckResult
			for i, d := range tt.demands {
				checks = append(checks, check(t, string(rune('a'+i)), d, 100))
			}
			g, err := Aggregate(checks)
			if err != nil {
				t.Fatal(err)
			}
			if g.Governing.Label != checks[tt.wantIndex].Label {
				t.Errorf("governing = %s", g.Governing.Label)
			}
			if diff := g.Utilization - tt.wantUtil; diff > 1e-12 || diff < -1e-12 {
				t.Errorf("utilization = %v", g.Utilization)
			}
			if g.Status != tt.wantStatus {
				t.Errorf("status = %s", g.Status)
			}
			// each check trace then the aggregation step
			if g.Trace.Len() != len(checks)+1 {
				t.Errorf("trace len = %d", g.Trace.Len())
			}
			steps := g.Trace.Steps()
			if steps[len(steps)-1].Description != "Governing limit state" {
				t.Errorf("last step = %s", steps[len(steps)-1].Description)
			}
		})
	}
}

func TestAggregateEmpty(t *testing.T) {
	if _, err := Aggregate(nil); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("err = %v", err)
	}
}

func TestNewCheckValidation(t *testing.T) {
	if _, err := NewCheck(BoltShear, "", units.New(1, units.KN), units.New(0, units.KN), nil); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("zero capacity: %v", err)
	}
	if _, err := NewCheck(BoltShear, "", units.New(1, units.KNM), units.New(1, units.KN), nil); !errors.Is(err, units.ErrDimensionMismatch) {
		t.Errorf("moment vs force: %v", err)
	}
}

func TestCheckCapacityResult(t *testing.T) {
	var tr trace.Trace
	tr.Add(trace.Step{Description: "φPn"})
	r := &CapacityResult{
		Nominal: units.New(1000, units.KN),
		Design:  units.New(900, units.KN),
		Regime:  InelasticBuckling,
		Trace:   &tr,
	}
	c, err := Check(Compression, units.New(-450, units.KN), r)
	if err != nil {
		t.Fatal(err)
	}
	if c.Utilization != 0.5 || c.Status != Pass {
		t.Errorf("got %v %s", c.Utilization, c.Status)
	}
	if c.Trace.Len() != 2 || r.Trace.Len() != 1 {
		t.Errorf("trace lengths %d, %d", c.Trace.Len(), r.Trace.Len())
	}
}
