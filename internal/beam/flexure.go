// Package beam evaluates the flexural capacity of steel members including
// lateral-torsional buckling (AISC 360 Chapter F).
package beam

import (
	"errors"
	"fmt"
	"math"

	"github.com/alexiusacademia/gosteel/internal/limitstate"
	"github.com/alexiusacademia/gosteel/internal/material"
	"github.com/alexiusacademia/gosteel/internal/provisions"
	"github.com/alexiusacademia/gosteel/internal/section"
	"github.com/alexiusacademia/gosteel/internal/trace"
	"github.com/alexiusacademia/gosteel/internal/units"
)

// ErrMissingTorsionalProperty marks a section without rts, ho or J. It is
// recorded as a trace warning; elastic LTB is then not evaluated.
var ErrMissingTorsionalProperty = errors.New("missing torsional property")

// noLTBLimit stands in for Lr when torsional properties are unavailable.
var noLTBLimit = units.New(1e6, units.M)

// Axis is the bending axis.
type Axis string

const (
	Strong Axis = "strong"
	Weak   Axis = "weak"
)

// ParseAxis accepts "strong"/"x" and "weak"/"y".
func ParseAxis(s string) (Axis, error) {
	switch s {
	case "strong", "x", "X", "major":
		return Strong, nil
	case "weak", "y", "Y", "minor":
		return Weak, nil
	}
	return "", fmt.Errorf("%w: unknown bending axis %q", limitstate.ErrInvalidInput, s)
}

var flexuralTypes = map[section.ShapeType]bool{
	section.TypeW: true, section.TypeM: true, section.TypeS: true,
	section.TypeHP: true, section.TypeC: true, section.TypeMC: true,
}

// Supported reports whether the engine covers a shape family.
func Supported(t section.ShapeType) bool { return flexuralTypes[t] }

// Input describes a beam to evaluate.
type Input struct {
	Section        *section.Model
	Material       material.Steel
	UnbracedLength units.Quantity // Lb
	Axis           Axis           // defaults to Strong
	Cb             float64        // defaults to 1.0
}

// Limits are the strong-axis LTB parameters of a section and material.
type Limits struct {
	Mp units.Quantity
	My units.Quantity // 0.7·Fy·Sx
	Lp units.Quantity
	Lr units.Quantity
	G  float64 // J·c / (Sx·ho)
	S  float64 // 0.7·Fy / E

	// Torsional is false when rts, ho or J is missing; Lr is then a
	// sentinel and elastic LTB is not evaluated.
	Torsional bool
	Rts       units.Quantity
	Sx        units.Quantity
	E         units.Quantity
}

// ComputeLimits returns Mp, Lp and Lr for strong-axis bending.
func ComputeLimits(sec *section.Model, m material.Steel) (Limits, error) {
	if err := sec.Require("Zx", "Sx", "ry"); err != nil {
		return Limits{}, err
	}
	zx, _ := sec.Get("Zx")
	sx, _ := sec.Get("Sx")
	ry, _ := sec.Get("ry")

	var c units.Calc
	root := math.Sqrt(c.Float(m.E.Div(m.Fy)))
	l := Limits{
		Mp: m.Fy.Mul(zx),
		My: m.Fy.Mul(sx).Scale(provisions.LrStressRatio),
		Lp: ry.Scale(provisions.LpCoeff * root),
		S:  c.Float(m.Fy.Scale(provisions.LrStressRatio).Div(m.E)),
		Sx: sx,
		E:  m.E,
		Lr: noLTBLimit,
	}

	rts, okR := sec.Get("rts")
	ho, okH := sec.Get("ho")
	j, okJ := sec.Get("J")
	if okR && okH && okJ {
		l.Torsional = true
		l.Rts = rts
		l.G = c.Float(j.Scale(provisions.DoublySymmetricC).Div(sx.Mul(ho)))
		inner := math.Sqrt(l.G*l.G + provisions.LrRootCoeff*l.S*l.S)
		l.Lr = rts.Scale(provisions.LrCoeff / l.S * math.Sqrt(l.G+inner))
	}
	return l, c.Err()
}

// ClassifyLTB returns the zone of an unbraced length. A length equal to a
// boundary belongs to the lower zone.
func ClassifyLTB(lb, lp, lr units.Quantity) (limitstate.Regime, error) {
	var c units.Calc
	switch {
	case c.Le(lb, lp):
		return limitstate.PlasticYielding, nil
	case c.Le(lb, lr):
		return limitstate.InelasticLTB, nil
	}
	if err := c.Err(); err != nil {
		return "", err
	}
	return limitstate.ElasticLTB, nil
}

// InelasticMoment returns the zone 2 nominal moment (AISC F2-2), capped at Mp.
func InelasticMoment(l Limits, lb units.Quantity, cb float64) units.Quantity {
	frac := (lb.SI() - l.Lp.SI()) / (l.Lr.SI() - l.Lp.SI())
	k := cb * (1 - (1-l.My.SI()/l.Mp.SI())*frac)
	if k > 1 {
		k = 1
	}
	return l.Mp.Scale(k)
}

// ElasticCriticalStress returns Fcr of AISC F2-4 for an unbraced length.
func ElasticCriticalStress(l Limits, lb units.Quantity, cb float64) units.Quantity {
	lambda := lb.SI() / l.Rts.SI()
	return l.E.Scale(cb * math.Pi * math.Pi / (lambda * lambda) *
		math.Sqrt(1+provisions.ElasticLTBCoeff*l.G*lambda*lambda))
}

func mm(q units.Quantity) string  { return q.Format(units.MM, 1) }
func mpa(q units.Quantity) string { return q.Format(units.MPa, 1) }
func knm(q units.Quantity) string { return q.Format(units.KNM, 2) }

// EvaluateFlexure computes the nominal and design moment capacity of a beam
// and records the derivation.
func EvaluateFlexure(in Input) (*limitstate.CapacityResult, error) {
	if in.Section == nil {
		return nil, fmt.Errorf("%w: no section", limitstate.ErrInvalidInput)
	}
	if !Supported(in.Section.Type()) {
		return nil, fmt.Errorf("%w: %s (%s) is not covered by flexure of I-shapes and channels",
			limitstate.ErrUnsupportedShapeType, in.Section.Name(), in.Section.Type())
	}
	lb := in.UnbracedLength
	if lb.Dim() != units.Length || lb.SI() < 0 {
		return nil, fmt.Errorf("%w: unbraced length must be a non-negative length", limitstate.ErrInvalidInput)
	}
	if !in.Material.Fy.Positive() || !in.Material.E.Positive() {
		return nil, fmt.Errorf("%w: material %q needs positive Fy and E", limitstate.ErrInvalidInput, in.Material.Name)
	}
	cb := in.Cb
	if cb <= 0 {
		cb = 1.0
	}
	if in.Axis == Weak {
		return weakAxis(in)
	}

	l, err := ComputeLimits(in.Section, in.Material)
	if err != nil {
		return nil, err
	}
	fy, e := in.Material.Fy, in.Material.E
	zx, _ := in.Section.Get("Zx")
	ry, _ := in.Section.Get("ry")

	tr := &trace.Trace{}
	tr.Add(trace.Step{
		Description: "Section and material parameters",
		Variables: map[string]string{
			"Section": in.Section.String(),
			"Zx":      zx.Format(units.MM3, 0),
			"Sx":      l.Sx.Format(units.MM3, 0),
			"ry":      mm(ry),
			"Lb":      mm(lb),
			"Cb":      fmt.Sprintf("%.2f", cb),
			"Fy":      mpa(fy),
			"E":       mpa(e),
		},
		Conclusion: fmt.Sprintf("Material %s, strong-axis bending.", in.Material.Name),
	})
	tr.Add(trace.Step{
		Description:  "Plastic moment",
		Reference:    "AISC F2-1",
		Formula:      "Mp = Fy·Zx",
		Substitution: fmt.Sprintf("Mp = %s × %s", mpa(fy), zx.Format(units.MM3, 0)),
		Result:       knm(l.Mp),
	})
	tr.Add(trace.Step{
		Description:  "Limiting length for yielding",
		Reference:    "AISC F2-5",
		Formula:      "Lp = 1.76·ry·√(E/Fy)",
		Substitution: fmt.Sprintf("Lp = 1.76(%s)√(%s/%s)", mm(ry), mpa(e), mpa(fy)),
		Result:       mm(l.Lp),
	})

	if l.Torsional {
		tr.Add(trace.Step{
			Description: "Limiting length for inelastic LTB",
			Reference:   "AISC F2-6",
			Formula:     "Lr = 1.95·rts·(E/0.7Fy)·√(g + √(g² + 6.76·s²)), g = Jc/(Sx·ho), s = 0.7Fy/E",
			Substitution: fmt.Sprintf("g = %.4e, s = %.4e, rts = %s",
				l.G, l.S, mm(l.Rts)),
			Result: mm(l.Lr),
		})
	} else {
		tr.Warn(trace.Step{
			Description: "Torsional properties unavailable",
			Reference:   "AISC F2",
			Result:      fmt.Sprintf("Lr = %s", l.Lr.Format(units.M, 0)),
			Conclusion: fmt.Sprintf("%v: %s lacks rts, ho or J; elastic LTB not evaluated.",
				ErrMissingTorsionalProperty, in.Section.Name()),
		})
	}

	regime, err := ClassifyLTB(lb, l.Lp, l.Lr)
	if err != nil {
		return nil, err
	}

	var mn units.Quantity
	inter := map[string]units.Quantity{
		"Mp": l.Mp,
		"Lp": l.Lp,
		"Lr": l.Lr,
		"Lb": lb,
		"Cb": units.Scalar(cb),
	}

	switch regime {
	case limitstate.PlasticYielding:
		mn = l.Mp
		tr.Add(trace.Step{
			Description: "LTB classification",
			Formula:     "Lb ≤ Lp",
			Result:      fmt.Sprintf("%s ≤ %s", mm(lb), mm(l.Lp)),
			Conclusion:  "Zone 1: the beam reaches its plastic moment; LTB does not apply.",
		})
		tr.Add(trace.Step{
			Description: "Nominal flexural strength",
			Reference:   "AISC F2-1",
			Formula:     "Mn = Mp",
			Result:      knm(mn),
		})

	case limitstate.InelasticLTB:
		mn = InelasticMoment(l, lb, cb)
		tr.Add(trace.Step{
			Description: "LTB classification",
			Formula:     "Lp < Lb ≤ Lr",
			Result:      fmt.Sprintf("%s < %s ≤ %s", mm(l.Lp), mm(lb), mm(l.Lr)),
			Conclusion:  "Zone 2: inelastic lateral-torsional buckling.",
		})
		tr.Add(trace.Step{
			Description: "Nominal flexural strength",
			Reference:   "AISC F2-2",
			Formula:     "Mn = Cb[Mp − (Mp − 0.7Fy·Sx)(Lb − Lp)/(Lr − Lp)] ≤ Mp",
			Substitution: fmt.Sprintf("Mn = %.2f[%s − (%s − %s)(%s − %s)/(%s − %s)]",
				cb, knm(l.Mp), knm(l.Mp), knm(l.My), mm(lb), mm(l.Lp), mm(l.Lr), mm(l.Lp)),
			Result: knm(mn),
		})

	case limitstate.ElasticLTB:
		fcr := ElasticCriticalStress(l, lb, cb)
		mn = fcr.Mul(l.Sx)
		if mn.SI() > l.Mp.SI() {
			mn = l.Mp
		}
		inter["Fcr"] = fcr
		tr.Add(trace.Step{
			Description: "LTB classification",
			Formula:     "Lb > Lr",
			Result:      fmt.Sprintf("%s > %s", mm(lb), mm(l.Lr)),
			Conclusion:  "Zone 3: elastic lateral-torsional buckling.",
		})
		tr.Add(trace.Step{
			Description: "Critical buckling stress",
			Reference:   "AISC F2-4",
			Formula:     "Fcr = Cb·π²E/(Lb/rts)²·√(1 + 0.078·g·(Lb/rts)²)",
			Substitution: fmt.Sprintf("Lb/rts = %s/%s = %.2f",
				mm(lb), mm(l.Rts), lb.SI()/l.Rts.SI()),
			Result: mpa(fcr),
		})
		tr.Add(trace.Step{
			Description:  "Nominal flexural strength",
			Reference:    "AISC F2-3",
			Formula:      "Mn = Fcr·Sx ≤ Mp",
			Substitution: fmt.Sprintf("Mn = %s × %s", mpa(fcr), l.Sx.Format(units.MM3, 0)),
			Result:       knm(mn),
		})
	}

	return finish(tr, mn, regime, string(Strong), inter), nil
}

func weakAxis(in Input) (*limitstate.CapacityResult, error) {
	if err := in.Section.Require("Zy", "Sy"); err != nil {
		return nil, err
	}
	zy, _ := in.Section.Get("Zy")
	sy, _ := in.Section.Get("Sy")
	fy := in.Material.Fy

	plastic := fy.Mul(zy)
	capped := fy.Mul(sy).Scale(provisions.WeakAxisShapeCap)
	var c units.Calc
	mn := c.Min(plastic, capped)
	if err := c.Err(); err != nil {
		return nil, err
	}

	tr := &trace.Trace{}
	tr.Add(trace.Step{
		Description: "Section and material parameters",
		Variables: map[string]string{
			"Section": in.Section.String(),
			"Zy":      zy.Format(units.MM3, 0),
			"Sy":      sy.Format(units.MM3, 0),
			"Fy":      mpa(fy),
		},
		Conclusion: fmt.Sprintf("Material %s, weak-axis bending; LTB does not apply.", in.Material.Name),
	})
	tr.Add(trace.Step{
		Description: "Nominal flexural strength",
		Reference:   "AISC F6-1",
		Formula:     "Mn = min(Fy·Zy, 1.6·Fy·Sy)",
		Substitution: fmt.Sprintf("Mn = min(%s × %s, 1.6 × %s × %s) = min(%s, %s)",
			mpa(fy), zy.Format(units.MM3, 0), mpa(fy), sy.Format(units.MM3, 0), knm(plastic), knm(capped)),
		Result: knm(mn),
	})

	return finish(tr, mn, limitstate.WeakAxisYielding, string(Weak), map[string]units.Quantity{
		"FyZy":    plastic,
		"1.6FySy": capped,
	}), nil
}

func finish(tr *trace.Trace, mn units.Quantity, regime limitstate.Regime, axis string, inter map[string]units.Quantity) *limitstate.CapacityResult {
	design := mn.Scale(provisions.PhiFlexure)
	inter["Mn"] = mn
	inter["φMn"] = design
	tr.Add(trace.Step{
		Description:  "Design flexural strength",
		Reference:    "AISC F1",
		Formula:      "φMn = 0.90·Mn",
		Substitution: fmt.Sprintf("φMn = 0.90 × %s", knm(mn)),
		Result:       knm(design),
		Conclusion:   fmt.Sprintf("Design capacity %s (%s).", knm(design), regime),
	})
	return &limitstate.CapacityResult{
		Nominal:      mn,
		Design:       design,
		Regime:       regime,
		Axis:         axis,
		Intermediate: inter,
		Trace:        tr,
	}
}
