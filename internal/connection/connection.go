// Package connection checks bolted shear connections: bolt shear, bearing on
// each clamped layer and block shear rupture, and reports the governing mode.
package connection

import (
	"fmt"
	"math"

	"github.com/alexiusacademia/gosteel/internal/limitstate"
	"github.com/alexiusacademia/gosteel/internal/material"
	"github.com/alexiusacademia/gosteel/internal/provisions"
	"github.com/alexiusacademia/gosteel/internal/trace"
	"github.com/alexiusacademia/gosteel/internal/units"
)

// BoltGroup is a set of identical bolts loaded in shear.
type BoltGroup struct {
	Count       int
	Diameter    units.Quantity // nominal diameter d
	ShearPlanes int            // m, defaults to 1
	Grade       material.Bolt
}

func (b BoltGroup) validate() error {
	if b.Count <= 0 {
		return fmt.Errorf("%w: bolt count must be positive, got %d", limitstate.ErrInvalidInput, b.Count)
	}
	if b.Diameter.Dim() != units.Length || !b.Diameter.Positive() {
		return fmt.Errorf("%w: bolt diameter must be a positive length", limitstate.ErrInvalidInput)
	}
	if b.ShearPlanes < 0 {
		return fmt.Errorf("%w: shear planes must not be negative", limitstate.ErrInvalidInput)
	}
	return nil
}

func (b BoltGroup) planes() int {
	if b.ShearPlanes == 0 {
		return 1
	}
	return b.ShearPlanes
}

// Area returns the nominal shank area π·d²/4.
func (b BoltGroup) Area() units.Quantity {
	return b.Diameter.Mul(b.Diameter).Scale(math.Pi / 4)
}

// Layer is one clamped plate or member element bearing on the bolts.
type Layer struct {
	Name      string
	Thickness units.Quantity
	Material  material.Steel
}

// BlockShearPath holds the failure path areas of a block shear check.
type BlockShearPath struct {
	Agv      units.Quantity // gross shear area
	Anv      units.Quantity // net shear area
	Ant      units.Quantity // net tension area
	Ubs      float64        // defaults to 1.0
	Material material.Steel
}

// Input describes a connection evaluation. An empty Checks list runs every
// check for which geometry is given.
type Input struct {
	Checks     []limitstate.Mode
	Demand     units.Quantity // factored shear
	Bolts      BoltGroup
	Layers     []Layer
	BlockShear *BlockShearPath
}

var checkOrder = []limitstate.Mode{limitstate.BoltShear, limitstate.Bearing, limitstate.BlockShear}

// Evaluate runs the requested checks and aggregates them.
func Evaluate(in Input) (*limitstate.GoverningResult, error) {
	if in.Demand.Dim() != units.Force {
		return nil, fmt.Errorf("%w: demand must be a force, got %s", units.ErrDimensionMismatch, in.Demand.Dim())
	}

	requested := make(map[limitstate.Mode]bool)
	for _, m := range in.Checks {
		switch m {
		case limitstate.BoltShear, limitstate.Bearing, limitstate.BlockShear:
			requested[m] = true
		default:
			return nil, fmt.Errorf("%w: %q is not a connection check", limitstate.ErrInvalidInput, m)
		}
	}
	if len(requested) == 0 {
		requested[limitstate.BoltShear] = true
		requested[limitstate.Bearing] = len(in.Layers) > 0
		requested[limitstate.BlockShear] = in.BlockShear != nil
	}

	var checks []limitstate.CheckResult
	for _, m := range checkOrder {
		if !requested[m] {
			continue
		}
		var (
			c   limitstate.CheckResult
			err error
		)
		switch m {
		case limitstate.BoltShear:
			c, err = CheckBoltShear(in.Demand, in.Bolts)
		case limitstate.Bearing:
			c, err = CheckBearing(in.Demand, in.Bolts, in.Layers)
		case limitstate.BlockShear:
			if in.BlockShear == nil {
				err = fmt.Errorf("%w: block shear requested without a failure path", limitstate.ErrInvalidInput)
				break
			}
			c, err = CheckBlockShear(in.Demand, *in.BlockShear)
		}
		if err != nil {
			return nil, err
		}
		checks = append(checks, c)
	}
	return limitstate.Aggregate(checks)
}

func kn(q units.Quantity) string { return q.Format(units.KN, 2) }
func mm(q units.Quantity) string { return q.Format(units.MM, 2) }
func mm2(q units.Quantity) string { return q.Format(units.MM2, 0) }
func mpa(q units.Quantity) string { return q.Format(units.MPa, 0) }
func ratio(u float64) string { return fmt.Sprintf("%.3f", u) }

func utilizationStep(c limitstate.CheckResult, demandSym, capSym string) trace.Step {
	return trace.Step{
		Description:  "Check utilization",
		Formula:      fmt.Sprintf("%s / %s ≤ 1.0", demandSym, capSym),
		Substitution: fmt.Sprintf("%s / %s", kn(c.Demand), kn(c.Capacity)),
		Result:       ratio(c.Utilization),
		Conclusion:   fmt.Sprintf("%s: %s", c.Label, c.Status),
	}
}

// BoltShearResistance returns the per-bolt and total factored shear
// resistance, threads excluded from the shear plane.
func BoltShearResistance(b BoltGroup) (perBolt, total units.Quantity, err error) {
	if err := b.validate(); err != nil {
		return units.Quantity{}, units.Quantity{}, err
	}
	perBolt = b.Area().Mul(b.Grade.Fu).Scale(provisions.BoltShearCoeff * provisions.PhiBoltShear * float64(b.planes()))
	return perBolt, perBolt.Scale(float64(b.Count)), nil
}

// CheckBoltShear checks the bolt group against the total shear demand.
func CheckBoltShear(demand units.Quantity, b BoltGroup) (limitstate.CheckResult, error) {
	vr, total, err := BoltShearResistance(b)
	if err != nil {
		return limitstate.CheckResult{}, err
	}

	tr := &trace.Trace{}
	tr.Add(trace.Step{
		Description: "Bolt parameters",
		Variables: map[string]string{
			"d":     mm(b.Diameter),
			"Fu":    mpa(b.Grade.Fu),
			"n":     fmt.Sprint(b.Count),
			"m":     fmt.Sprint(b.planes()),
			"Vf":    kn(demand),
			"grade": b.Grade.Name,
		},
	})
	tr.Add(trace.Step{
		Description:  "Bolt area",
		Formula:      "Ab = π·d²/4",
		Substitution: fmt.Sprintf("Ab = π(%s)²/4", mm(b.Diameter)),
		Result:       b.Area().Format(units.MM2, 1),
	})
	tr.Add(trace.Step{
		Description: "Factored shear resistance per bolt",
		Reference:   "CSA S16 13.11.2",
		Formula:     "Vr = 0.60·φb·Ab·Fu·m",
		Substitution: fmt.Sprintf("Vr = 0.60(%.2f)(%s)(%s)(%d)",
			provisions.PhiBoltShear, b.Area().Format(units.MM2, 1), mpa(b.Grade.Fu), b.planes()),
		Result: kn(vr),
	})
	tr.Add(trace.Step{
		Description:  "Total shear resistance",
		Formula:      "Vr,total = n·Vr",
		Substitution: fmt.Sprintf("Vr,total = %d × %s", b.Count, kn(vr)),
		Result:       kn(total),
	})

	c, err := limitstate.NewCheck(limitstate.BoltShear, "bolt shear", demand, total, tr)
	if err != nil {
		return limitstate.CheckResult{}, err
	}
	tr.Add(utilizationStep(c, "Vf", "Vr,total"))
	return c, nil
}

// BearingResistance returns the factored bearing resistance of one bolt on a
// layer.
func BearingResistance(d units.Quantity, l Layer) (units.Quantity, error) {
	if l.Thickness.Dim() != units.Length || !l.Thickness.Positive() {
		return units.Quantity{}, fmt.Errorf("%w: %s thickness must be a positive length", limitstate.ErrInvalidInput, l.Name)
	}
	return l.Thickness.Mul(d).Mul(l.Material.Fu).Scale(provisions.BearingCoeff * provisions.PhiBearing), nil
}

// CheckBearing checks every layer with the per-bolt demand V/n and reports
// the layer with the highest utilization. Every layer is kept in the trace.
func CheckBearing(demand units.Quantity, b BoltGroup, layers []Layer) (limitstate.CheckResult, error) {
	if err := b.validate(); err != nil {
		return limitstate.CheckResult{}, err
	}
	if len(layers) == 0 {
		return limitstate.CheckResult{}, fmt.Errorf("%w: bearing needs at least one layer", limitstate.ErrInvalidInput)
	}
	perBolt := demand.Scale(1 / float64(b.Count))

	tr := &trace.Trace{}
	var gov limitstate.CheckResult
	for i, l := range layers {
		name := l.Name
		if name == "" {
			name = fmt.Sprintf("layer %d", i+1)
		}
		br, err := BearingResistance(b.Diameter, l)
		if err != nil {
			return limitstate.CheckResult{}, err
		}
		tr.Add(trace.Step{
			Description: fmt.Sprintf("Bearing parameters (%s)", name),
			Variables: map[string]string{
				"t":  mm(l.Thickness),
				"d":  mm(b.Diameter),
				"Fu": mpa(l.Material.Fu),
				"Vf": kn(perBolt),
			},
			Conclusion: fmt.Sprintf("Material %s.", l.Material.Name),
		})
		tr.Add(trace.Step{
			Description: fmt.Sprintf("Factored bearing resistance (%s)", name),
			Reference:   "CSA S16 13.12.1.2",
			Formula:     "Br = 3·φbr·t·d·Fu",
			Substitution: fmt.Sprintf("Br = 3(%.2f)(%s)(%s)(%s)",
				provisions.PhiBearing, mm(l.Thickness), mm(b.Diameter), mpa(l.Material.Fu)),
			Result: kn(br),
		})
		c, err := limitstate.NewCheck(limitstate.Bearing, "bearing ("+name+")", perBolt, br, nil)
		if err != nil {
			return limitstate.CheckResult{}, err
		}
		tr.Add(utilizationStep(c, "Vf/n", "Br"))
		if i == 0 || c.Utilization > gov.Utilization {
			gov = c
		}
	}
	tr.Add(trace.Step{
		Description: "Governing bearing layer",
		Result:      ratio(gov.Utilization),
		Conclusion:  fmt.Sprintf("%s is reported.", gov.Label),
	})
	gov.Trace = tr
	return gov, nil
}

// BlockShearResistance returns φu·Rn and the nominal Rn of a failure path.
func BlockShearResistance(p BlockShearPath) (vr, rn units.Quantity, err error) {
	for _, a := range []struct {
		name string
		q    units.Quantity
	}{{"Agv", p.Agv}, {"Anv", p.Anv}, {"Ant", p.Ant}} {
		if a.q.Dim() != units.Area || !a.q.Positive() {
			return units.Quantity{}, units.Quantity{}, fmt.Errorf("%w: %s must be a positive area", limitstate.ErrInvalidInput, a.name)
		}
	}
	ubs := p.ubs()
	tension := p.Material.Fu.Mul(p.Ant).Scale(ubs)
	var c units.Calc
	rupture := c.Add(p.Material.Fu.Mul(p.Anv).Scale(provisions.BlockShearCoeff), tension)
	yield := c.Add(p.Material.Fy.Mul(p.Agv).Scale(provisions.BlockShearCoeff), tension)
	rn = c.Min(rupture, yield)
	if err := c.Err(); err != nil {
		return units.Quantity{}, units.Quantity{}, err
	}
	return rn.Scale(provisions.PhiRupture), rn, nil
}

func (p BlockShearPath) ubs() float64 {
	if p.Ubs <= 0 {
		return provisions.DefaultUbs
	}
	return p.Ubs
}

// CheckBlockShear checks a block shear failure path against the demand.
func CheckBlockShear(demand units.Quantity, p BlockShearPath) (limitstate.CheckResult, error) {
	vr, rn, err := BlockShearResistance(p)
	if err != nil {
		return limitstate.CheckResult{}, err
	}
	fu, fy := p.Material.Fu, p.Material.Fy

	tr := &trace.Trace{}
	tr.Add(trace.Step{
		Description: "Block shear geometry",
		Variables: map[string]string{
			"Agv": mm2(p.Agv),
			"Anv": mm2(p.Anv),
			"Ant": mm2(p.Ant),
			"Ubs": fmt.Sprintf("%.2f", p.ubs()),
			"Fy":  mpa(fy),
			"Fu":  mpa(fu),
		},
		Conclusion: fmt.Sprintf("Material %s.", p.Material.Name),
	})
	tr.Add(trace.Step{
		Description: "Nominal block shear strength",
		Reference:   "AISC J4.3",
		Formula:     "Rn = min(0.6·Fu·Anv + Ubs·Fu·Ant, 0.6·Fy·Agv + Ubs·Fu·Ant)",
		Substitution: fmt.Sprintf("Rn = min(0.6(%s)(%s) + %.2f(%s)(%s), 0.6(%s)(%s) + %.2f(%s)(%s))",
			mpa(fu), mm2(p.Anv), p.ubs(), mpa(fu), mm2(p.Ant),
			mpa(fy), mm2(p.Agv), p.ubs(), mpa(fu), mm2(p.Ant)),
		Result: kn(rn),
	})
	tr.Add(trace.Step{
		Description:  "Factored block shear resistance",
		Reference:    "CSA S16 13.11",
		Formula:      "Vr = φu·Rn",
		Substitution: fmt.Sprintf("Vr = %.2f × %s", provisions.PhiRupture, kn(rn)),
		Result:       kn(vr),
	})

	c, err := limitstate.NewCheck(limitstate.BlockShear, "block shear", demand, vr, tr)
	if err != nil {
		return limitstate.CheckResult{}, err
	}
	tr.Add(utilizationStep(c, "Vf", "Vr"))
	return c, nil
}
