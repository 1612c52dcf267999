// Package baseplate sizes column base plates under axial compression using
// the uniform bearing method of AISC Design Guide 1.
package baseplate

import (
	"fmt"
	"math"

	"github.com/alexiusacademia/gosteel/internal/limitstate"
	"github.com/alexiusacademia/gosteel/internal/material"
	"github.com/alexiusacademia/gosteel/internal/provisions"
	"github.com/alexiusacademia/gosteel/internal/section"
	"github.com/alexiusacademia/gosteel/internal/trace"
	"github.com/alexiusacademia/gosteel/internal/units"
)

// Padding is added to the column depth and flange width on every side when
// the plate size is not given.
var Padding = units.New(50, units.MM)

// Input describes a concentrically loaded column base. Zero Width or Length
// defaults to the column footprint plus Padding on each side.
type Input struct {
	Column   *section.Model
	Load     units.Quantity // factored axial compression Pu
	Steel    material.Steel
	Concrete material.Concrete
	Width    units.Quantity // B, perpendicular to the web
	Length   units.Quantity // N, parallel to the web
	Stock    *material.Stock
	System   material.System
}

// Result is a base plate design with its derivation.
type Result struct {
	Width       units.Quantity
	Length      units.Quantity
	Area        units.Quantity // A1
	CantileverM units.Quantity
	CantileverN units.Quantity
	Cantilever  units.Quantity // governing l
	Required    units.Quantity // t_req
	Standard    units.Quantity // next stock thickness
	Stocked     bool
	Bearing     limitstate.CheckResult
	Status      limitstate.Status
	Trace       *trace.Trace
}

func mm(q units.Quantity) string { return q.Format(units.MM, 1) }

// Design checks concrete bearing and computes the required plate thickness.
func Design(in Input) (*Result, error) {
	if in.Column == nil {
		return nil, fmt.Errorf("%w: no column section", limitstate.ErrInvalidInput)
	}
	if err := in.Column.Require("d", "bf"); err != nil {
		return nil, err
	}
	if in.Load.Dim() != units.Force || !in.Load.Positive() {
		return nil, fmt.Errorf("%w: axial load must be a positive force", limitstate.ErrInvalidInput)
	}
	d, _ := in.Column.Get("d")
	bf, _ := in.Column.Get("bf")

	var c units.Calc
	b, n := in.Width, in.Length
	if b.IsZero() {
		b = c.Add(bf, Padding.Scale(2))
	}
	if n.IsZero() {
		n = c.Add(d, Padding.Scale(2))
	}
	if err := c.Err(); err != nil {
		return nil, err
	}
	if b.Dim() != units.Length || n.Dim() != units.Length || !b.Positive() || !n.Positive() {
		return nil, fmt.Errorf("%w: plate dimensions must be positive lengths", limitstate.ErrInvalidInput)
	}
	a1 := b.Mul(n)

	tr := &trace.Trace{}
	tr.Add(trace.Step{
		Description:  "Plate geometry",
		Formula:      "A1 = B·N",
		Substitution: fmt.Sprintf("A1 = %s × %s", mm(b), mm(n)),
		Result:       a1.Format(units.MM2, 0),
		Conclusion:   fmt.Sprintf("Column %s, Pu = %s.", in.Column.Name(), in.Load.Format(units.KN, 2)),
	})

	q := in.Load.Div(a1)
	allow := in.Concrete.Fc.Scale(provisions.ConcreteBearingMax * in.Concrete.Phi)
	tr.Add(trace.Step{
		Description:  "Concrete bearing",
		Reference:    "CSA S16 / ACI 318 22.8",
		Formula:      "q = Pu/A1 ≤ 0.85·φc·f'c",
		Substitution: fmt.Sprintf("q = %s, 0.85(%.2f)(%s)", q.Format(units.MPa, 2), in.Concrete.Phi, in.Concrete.Fc.Format(units.MPa, 1)),
		Result:       fmt.Sprintf("%s ≤ %s", q.Format(units.MPa, 2), allow.Format(units.MPa, 2)),
	})
	bearing, err := limitstate.NewCheck(limitstate.ConcreteBearing, "concrete bearing", q, allow, nil)
	if err != nil {
		return nil, err
	}
	bearing.Trace.Add(trace.Step{
		Description: "Concrete bearing utilization",
		Formula:     "q / (0.85·φc·f'c) ≤ 1.0",
		Result:      fmt.Sprintf("%.3f", bearing.Utilization),
		Conclusion:  string(bearing.Status),
	})
	tr.Append(bearing.Trace)

	cm := c.Sub(n, d.Scale(0.95)).Scale(0.5)
	cn := c.Sub(b, bf.Scale(0.8)).Scale(0.5)
	l := c.Max(c.Max(cm, cn), units.New(0, units.MM))
	ratio := c.Float(in.Load.Scale(2).Div(in.Steel.Fy.Mul(a1).Scale(provisions.PhiPlate)))
	if err := c.Err(); err != nil {
		return nil, err
	}
	req := l.Scale(math.Sqrt(ratio))
	tr.Add(trace.Step{
		Description:  "Cantilever lengths",
		Formula:      "m = (N − 0.95d)/2, n = (B − 0.8bf)/2, l = max(m, n)",
		Substitution: fmt.Sprintf("m = %s, n = %s", mm(cm), mm(cn)),
		Result:       mm(l),
	})
	tr.Add(trace.Step{
		Description:  "Required plate thickness",
		Reference:    "AISC Design Guide 1",
		Formula:      "t = l·√(2Pu / (0.9·Fy·A1))",
		Substitution: fmt.Sprintf("t = %s·√(2 × %s / (0.9 × %s × %s))", mm(l), in.Load.Format(units.KN, 2), in.Steel.Fy.Format(units.MPa, 0), a1.Format(units.MM2, 0)),
		Result:       mm(req),
	})

	stock := in.Stock
	if stock == nil {
		stock = material.DefaultStock()
	}
	sys := in.System
	if sys == "" {
		sys = material.Metric
	}
	std, stocked := req, stock.Available(in.Steel.Name, material.Plate)
	if !stocked {
		tr.Warn(trace.Step{
			Description: "Plate stock",
			Conclusion:  fmt.Sprintf("%s is not stocked as plate; using the calculated thickness.", in.Steel.Name),
		})
	} else {
		next, ok, err := stock.NextThickness(req, material.Plate, sys)
		if err != nil {
			return nil, err
		}
		if ok {
			std = next
			tr.Add(trace.Step{
				Description: "Standard plate thickness",
				Result:      mm(std),
				Conclusion:  fmt.Sprintf("Use %s × %s × %s plate.", mm(b), mm(n), mm(std)),
			})
		} else {
			stocked = false
			tr.Warn(trace.Step{
				Description: "Plate stock",
				Conclusion:  fmt.Sprintf("Required thickness exceeds the largest stock plate (%s).", mm(next)),
			})
		}
	}

	return &Result{
		Width:       b,
		Length:      n,
		Area:        a1,
		CantileverM: cm,
		CantileverN: cn,
		Cantilever:  l,
		Required:    req,
		Standard:    std,
		Stocked:     stocked,
		Bearing:     bearing,
		Status:      bearing.Status,
		Trace:       tr,
	}, nil
}
