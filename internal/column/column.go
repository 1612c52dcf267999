// Package column evaluates the axial compression capacity of steel members
// by flexural buckling (AISC 360 Chapter E).
package column

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

// Input describes a column to evaluate.
type Input struct {
	Section  *section.Model
	Material material.Steel
	Length   units.Quantity // unbraced length L
	Top      provisions.EndCondition
	Bottom   provisions.EndCondition
	// K overrides the end-condition table when positive.
	K float64
}

// Axis identifies a principal buckling axis.
type Axis string

const (
	AxisX Axis = "X-X"
	AxisY Axis = "Y-Y"
)

// Classify returns the buckling regime for a slenderness ratio. A ratio equal
// to the limit is inelastic.
func Classify(slenderness, limit float64) limitstate.Regime {
	if slenderness <= limit {
		return limitstate.InelasticBuckling
	}
	return limitstate.ElasticBuckling
}

// SlendernessLimit returns 4.71·√(E/Fy).
func SlendernessLimit(e, fy units.Quantity) (float64, error) {
	r, err := e.Div(fy).Float()
	if err != nil {
		return 0, err
	}
	return provisions.InelasticLimitCoeff * math.Sqrt(r), nil
}

// EulerStress returns Fe = π²E / (KL/r)².
func EulerStress(e units.Quantity, slenderness float64) units.Quantity {
	return e.Scale(math.Pi * math.Pi / (slenderness * slenderness))
}

// InelasticStress returns Fcr = 0.658^(Fy/Fe)·Fy (AISC E3-2).
func InelasticStress(fy, fe units.Quantity) (units.Quantity, error) {
	r, err := fy.Div(fe).Float()
	if err != nil {
		return units.Quantity{}, err
	}
	return fy.Scale(math.Pow(provisions.InelasticBase, r)), nil
}

// ElasticStress returns Fcr = 0.877·Fe (AISC E3-3).
func ElasticStress(fe units.Quantity) units.Quantity {
	return fe.Scale(provisions.ElasticReductionCoeff)
}

func mm(q units.Quantity) string  { return q.Format(units.MM, 1) }
func mpa(q units.Quantity) string { return q.Format(units.MPa, 1) }
func kn(q units.Quantity) string  { return q.Format(units.KN, 1) }

// EvaluateCompression computes the nominal and design axial capacity of a
// column and records the derivation.
func EvaluateCompression(in Input) (*limitstate.CapacityResult, error) {
	if in.Section == nil {
		return nil, fmt.Errorf("%w: no section", limitstate.ErrInvalidInput)
	}
	if in.Length.Dim() != units.Length || !in.Length.Positive() {
		return nil, fmt.Errorf("%w: length must be a positive length", limitstate.ErrInvalidInput)
	}
	if !in.Material.Fy.Positive() || !in.Material.E.Positive() {
		return nil, fmt.Errorf("%w: material %q needs positive Fy and E", limitstate.ErrInvalidInput, in.Material.Name)
	}
	if err := in.Section.Require("A", "rx", "ry"); err != nil {
		return nil, err
	}
	ag, _ := in.Section.Get("A")
	rx, _ := in.Section.Get("rx")
	ry, _ := in.Section.Get("ry")
	fy, e := in.Material.Fy, in.Material.E

	tr := &trace.Trace{}
	tr.Add(trace.Step{
		Description: "Section and material parameters",
		Variables: map[string]string{
			"Section": in.Section.String(),
			"Ag":      ag.Format(units.MM2, 0),
			"rx":      mm(rx),
			"ry":      mm(ry),
			"L":       mm(in.Length),
			"Fy":      mpa(fy),
			"E":       mpa(e),
		},
		Conclusion: fmt.Sprintf("Material %s.", in.Material.Name),
	})

	k := in.K
	if k > 0 {
		tr.Add(trace.Step{
			Description: "Effective length factor",
			Result:      fmt.Sprintf("K = %.2f", k),
			Conclusion:  "K specified directly.",
		})
	} else {
		var err error
		k, err = provisions.EffectiveLengthFactor(in.Top, in.Bottom)
		if err != nil {
			return nil, err
		}
		tr.Add(trace.Step{
			Description: "Effective length factor",
			Reference:   "AISC Commentary Table C-A-7.1",
			Result:      fmt.Sprintf("K = %.2f", k),
			Conclusion:  fmt.Sprintf("Ends %s-%s.", in.Top, in.Bottom),
		})
	}

	var c units.Calc
	kl := in.Length.Scale(k)
	srx := c.Float(kl.Div(rx))
	sry := c.Float(kl.Div(ry))
	if err := c.Err(); err != nil {
		return nil, err
	}
	axis, slenderness := AxisX, srx
	if sry > srx {
		axis, slenderness = AxisY, sry
	}
	tr.Add(trace.Step{
		Description: "Slenderness ratio",
		Reference:   "AISC E2",
		Formula:     "KL/r = max(KL/rx, KL/ry)",
		Substitution: fmt.Sprintf("KL/rx = %.2f(%s)/%s = %.2f; KL/ry = %.2f(%s)/%s = %.2f",
			k, mm(in.Length), mm(rx), srx, k, mm(in.Length), mm(ry), sry),
		Result:     fmt.Sprintf("%.2f", slenderness),
		Conclusion: fmt.Sprintf("Buckling about the %s axis governs.", axis),
	})
	if slenderness > provisions.SlendernessLimit {
		tr.Warn(trace.Step{
			Description: "Slenderness exceeds recommended limit",
			Reference:   "AISC E2 User Note",
			Formula:     "KL/r ≤ 200",
			Result:      fmt.Sprintf("%.1f > %.0f", slenderness, provisions.SlendernessLimit),
			Conclusion:  "Member is very slender; evaluation continues.",
		})
	}

	fe := EulerStress(e, slenderness)
	tr.Add(trace.Step{
		Description:  "Elastic buckling stress",
		Reference:    "AISC E3-4",
		Formula:      "Fe = π²E / (KL/r)²",
		Substitution: fmt.Sprintf("Fe = π²(%s) / (%.2f)²", mpa(e), slenderness),
		Result:       mpa(fe),
	})

	limit, err := SlendernessLimit(e, fy)
	if err != nil {
		return nil, err
	}
	regime := Classify(slenderness, limit)
	relation := "≤"
	if regime == limitstate.ElasticBuckling {
		relation = ">"
	}
	tr.Add(trace.Step{
		Description:  "Buckling regime",
		Reference:    "AISC E3",
		Formula:      "KL/r ≤ 4.71√(E/Fy) → inelastic",
		Substitution: fmt.Sprintf("4.71√(%s/%s) = %.2f", mpa(e), mpa(fy), limit),
		Result:       fmt.Sprintf("%.2f %s %.2f", slenderness, relation, limit),
		Conclusion:   fmt.Sprintf("Column fails by %s.", regime),
	})

	var fcr units.Quantity
	if regime == limitstate.InelasticBuckling {
		fcr, err = InelasticStress(fy, fe)
		if err != nil {
			return nil, err
		}
		tr.Add(trace.Step{
			Description:  "Critical stress",
			Reference:    "AISC E3-2",
			Formula:      "Fcr = 0.658^(Fy/Fe)·Fy",
			Substitution: fmt.Sprintf("Fcr = 0.658^(%s/%s)(%s)", mpa(fy), mpa(fe), mpa(fy)),
			Result:       mpa(fcr),
		})
	} else {
		fcr = ElasticStress(fe)
		tr.Add(trace.Step{
			Description:  "Critical stress",
			Reference:    "AISC E3-3",
			Formula:      "Fcr = 0.877·Fe",
			Substitution: fmt.Sprintf("Fcr = 0.877(%s)", mpa(fe)),
			Result:       mpa(fcr),
		})
	}

	pn := fcr.Mul(ag)
	design := pn.Scale(provisions.PhiCompression)
	tr.Add(trace.Step{
		Description:  "Nominal compressive strength",
		Reference:    "AISC E3-1",
		Formula:      "Pn = Fcr·Ag",
		Substitution: fmt.Sprintf("Pn = %s × %s", mpa(fcr), ag.Format(units.MM2, 0)),
		Result:       kn(pn),
	})
	tr.Add(trace.Step{
		Description:  "Design compressive strength",
		Reference:    "AISC E1",
		Formula:      "φPn = 0.90·Pn",
		Substitution: fmt.Sprintf("φPn = 0.90 × %s", kn(pn)),
		Result:       kn(design),
		Conclusion:   fmt.Sprintf("Design capacity %s (%s).", kn(design), regime),
	})

	return &limitstate.CapacityResult{
		Nominal: pn,
		Design:  design,
		Regime:  regime,
		Intermediate: map[string]units.Quantity{
			"K":     units.Scalar(k),
			"KL":    kl,
			"KL/rx": units.Scalar(srx),
			"KL/ry": units.Scalar(sry),
			"KL/r":  units.Scalar(slenderness),
			"Fe":    fe,
			"limit": units.Scalar(limit),
			"Fcr":   fcr,
			"Pn":    pn,
			"φPn":   design,
		},
		Axis:  string(axis),
		Trace: tr,
	}, nil
}
