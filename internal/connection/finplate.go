package connection

import (
	"fmt"

	"github.com/alexiusacademia/gosteel/internal/limitstate"
	"github.com/alexiusacademia/gosteel/internal/material"
	"github.com/alexiusacademia/gosteel/internal/provisions"
	"github.com/alexiusacademia/gosteel/internal/section"
	"github.com/alexiusacademia/gosteel/internal/trace"
	"github.com/alexiusacademia/gosteel/internal/units"
)

// Fin plate defaults.
var (
	DefaultRows     = 3
	DefaultSpacing  = units.New(75, units.MM)
	DefaultEdge     = units.New(35, units.MM)
	DefaultDiameter = units.New(19.05, units.MM) // 3/4 in
)

// FinPlate is a single-sided shear tab bolted to a beam web. Zero values take
// the package defaults.
type FinPlate struct {
	Beam         *section.Model
	BeamMaterial material.Steel
	Plate        material.Steel
	Thickness    units.Quantity // plate thickness
	Rows         int
	Cols         int
	Spacing      units.Quantity // vertical bolt pitch s
	EdgeV        units.Quantity // vertical edge distance
	EdgeH        units.Quantity // horizontal edge distance
	BoltDiameter units.Quantity
	BoltGrade    material.Bolt
}

// Geometry is the derived layout of a fin plate.
type Geometry struct {
	Bolts int
	Hole  units.Quantity
	Web   units.Quantity // tw
	Lgv   units.Quantity
	Agv   units.Quantity
	Anv   units.Quantity
	Ant   units.Quantity
}

func (f FinPlate) withDefaults() FinPlate {
	if f.Rows <= 0 {
		f.Rows = DefaultRows
	}
	if f.Cols <= 0 {
		f.Cols = 1
	}
	if f.Spacing.IsZero() {
		f.Spacing = DefaultSpacing
	}
	if f.EdgeV.IsZero() {
		f.EdgeV = DefaultEdge
	}
	if f.EdgeH.IsZero() {
		f.EdgeH = DefaultEdge
	}
	if f.BoltDiameter.IsZero() {
		f.BoltDiameter = DefaultDiameter
	}
	return f
}

// Geometry computes the bolt count and the beam web block shear areas.
func (f FinPlate) Geometry() (Geometry, error) {
	f = f.withDefaults()
	if f.Beam == nil {
		return Geometry{}, fmt.Errorf("%w: fin plate needs a beam section", limitstate.ErrInvalidInput)
	}
	tw, ok := f.Beam.Get("tw")
	if !ok {
		return Geometry{}, fmt.Errorf("%w: %s has no tw", section.ErrMissingProperty, f.Beam.Name())
	}

	hole, err := f.BoltDiameter.Add(units.New(provisions.HoleClearance, units.MM))
	if err != nil {
		return Geometry{}, err
	}
	var c units.Calc
	lgv := c.Add(f.Spacing.Scale(float64(f.Rows-1)), f.EdgeV)
	netV := c.Sub(lgv, hole.Scale(float64(f.Rows)-0.5))
	netH := c.Sub(f.EdgeH, hole.Scale(0.5))
	if err := c.Err(); err != nil {
		return Geometry{}, err
	}
	return Geometry{
		Bolts: f.Rows * f.Cols,
		Hole:  hole,
		Web:   tw,
		Lgv:   lgv,
		Agv:   lgv.Mul(tw),
		Anv:   netV.Mul(tw),
		Ant:   netH.Mul(tw),
	}, nil
}

// Input assembles the connection checks of the fin plate for a shear Vf.
func (f FinPlate) Input(vf units.Quantity) (Input, Geometry, error) {
	f = f.withDefaults()
	g, err := f.Geometry()
	if err != nil {
		return Input{}, Geometry{}, err
	}
	return Input{
		Demand: vf,
		Bolts: BoltGroup{
			Count:    g.Bolts,
			Diameter: f.BoltDiameter,
			Grade:    f.BoltGrade,
		},
		Layers: []Layer{
			{Name: "fin plate", Thickness: f.Thickness, Material: f.Plate},
			{Name: "beam web", Thickness: g.Web, Material: f.BeamMaterial},
		},
		BlockShear: &BlockShearPath{
			Agv:      g.Agv,
			Anv:      g.Anv,
			Ant:      g.Ant,
			Ubs:      provisions.DefaultUbs,
			Material: f.BeamMaterial,
		},
	}, g, nil
}

// Evaluate checks bolt shear, bearing on the plate and beam web, and block
// shear of the beam web.
func (f FinPlate) Evaluate(vf units.Quantity) (*limitstate.GoverningResult, error) {
	f = f.withDefaults()
	in, g, err := f.Input(vf)
	if err != nil {
		return nil, err
	}
	res, err := Evaluate(in)
	if err != nil {
		return nil, err
	}

	tr := &trace.Trace{}
	tr.Add(trace.Step{
		Description: "Fin plate layout",
		Variables: map[string]string{
			"rows": fmt.Sprint(f.Rows),
			"cols": fmt.Sprint(f.Cols),
			"n":    fmt.Sprint(g.Bolts),
			"s":    mm(f.Spacing),
			"ev":   mm(f.EdgeV),
			"eh":   mm(f.EdgeH),
			"dh":   mm(g.Hole),
			"tw":   mm(g.Web),
		},
		Conclusion: fmt.Sprintf("%s web, %s plate.", f.Beam.Name(), mm(f.Thickness)),
	})
	tr.Add(trace.Step{
		Description: "Block shear areas (beam web)",
		Formula:     "Lgv = (rows−1)s + ev; Anv = (Lgv − (rows−0.5)dh)·tw; Ant = (eh − 0.5dh)·tw",
		Substitution: fmt.Sprintf("Lgv = (%d−1)(%s) + %s = %s",
			f.Rows, mm(f.Spacing), mm(f.EdgeV), mm(g.Lgv)),
		Result: fmt.Sprintf("Agv = %s, Anv = %s, Ant = %s", mm2(g.Agv), mm2(g.Anv), mm2(g.Ant)),
	})
	tr.Append(res.Trace)
	res.Trace = tr
	return res, nil
}
