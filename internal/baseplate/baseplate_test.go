package baseplate

import (
	"errors"
	"math"
	"testing"

	"github.com/alexiusacademia/gosteel/internal/limitstate"
	"github.com/alexiusacademia/gosteel/internal/material"
	"github.com/alexiusacademia/gosteel/internal/section"
	"github.com/alexiusacademia/gosteel/internal/units"
)

func approx(t *testing.T, name string, got, want, rel float64) {
	t.Helper()
	if math.Abs(got-want) > rel*math.Abs(want) {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func input(t *testing.T, load float64) Input {
	t.Helper()
	db, err := section.Default()
	if err != nil {
		t.Fatal(err)
	}
	col, err := db.Lookup("W8X31")
	if err != nil {
		t.Fatal(err)
	}
	reg := material.DefaultRegistry()
	a36, err := reg.Steel("A36")
	if err != nil {
		t.Fatal(err)
	}
	conc, err := reg.Concrete(units.New(25, units.MPa))
	if err != nil {
		t.Fatal(err)
	}
	return Input{
		Column:   col,
		Load:     units.New(load, units.KN),
		Steel:    a36,
		Concrete: conc,
	}
}

func TestDesignW8X31(t *testing.T) {
	r, err := Design(input(t, 1000))
	if err != nil {
		t.Fatal(err)
	}
	approx(t, "B", r.Width.MustIn(units.MM), 303, 1e-9)
	approx(t, "N", r.Length.MustIn(units.MM), 303, 1e-9)
	approx(t, "bearing utilization", r.Bearing.Utilization, 0.78857, 1e-4)
	approx(t, "m", r.CantileverM.MustIn(units.MM), 55.075, 1e-9)
	approx(t, "n", r.CantileverN.MustIn(units.MM), 70.3, 1e-9)
	approx(t, "t_req", r.Required.MustIn(units.MM), 21.874, 1e-4)
	approx(t, "t_std", r.Standard.MustIn(units.MM), 22, 1e-9)
	if !r.Stocked || r.Status != limitstate.Pass {
		t.Errorf("stocked = %v, status = %s", r.Stocked, r.Status)
	}
	if len(r.Trace.Warnings()) != 0 {
		t.Errorf("warnings = %v", r.Trace.Warnings())
	}
}

func TestBearingFailure(t *testing.T) {
	r, err := Design(input(t, 1500))
	if err != nil {
		t.Fatal(err)
	}
	if r.Status != limitstate.Fail {
		t.Errorf("status = %s, utilization %.3f", r.Status, r.Bearing.Utilization)
	}
}

func TestGivenPlateSize(t *testing.T) {
	in := input(t, 1000)
	in.Width = units.New(400, units.MM)
	in.Length = units.New(400, units.MM)
	r, err := Design(in)
	if err != nil {
		t.Fatal(err)
	}
	approx(t, "A1", r.Area.MustIn(units.MM2), 160000, 1e-9)
	approx(t, "l", r.Cantilever.MustIn(units.MM), (400-0.8*203)/2, 1e-9)
}

func TestUnstockedSteel(t *testing.T) {
	in := input(t, 1000)
	in.Steel.Name = "Custom 420"
	r, err := Design(in)
	if err != nil {
		t.Fatal(err)
	}
	if r.Stocked {
		t.Error("custom steel should not be stocked")
	}
	if r.Standard.SI() != r.Required.SI() {
		t.Errorf("t_std = %v, want t_req %v", r.Standard, r.Required)
	}
	if len(r.Trace.Warnings()) != 1 {
		t.Errorf("warnings = %d", len(r.Trace.Warnings()))
	}
}

func TestInvalidInput(t *testing.T) {
	in := input(t, 0)
	if _, err := Design(in); !errors.Is(err, limitstate.ErrInvalidInput) {
		t.Errorf("zero load: %v", err)
	}
	in = input(t, 100)
	in.Column = nil
	if _, err := Design(in); !errors.Is(err, limitstate.ErrInvalidInput) {
		t.Errorf("no column: %v", err)
	}
}
