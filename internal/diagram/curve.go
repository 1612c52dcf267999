package diagram

import (
	"fmt"

	"github.com/alexiusacademia/gosteel/internal/beam"
	"github.com/alexiusacademia/gosteel/internal/column"
	"github.com/alexiusacademia/gosteel/internal/limitstate"
	"github.com/alexiusacademia/gosteel/internal/material"
	"github.com/alexiusacademia/gosteel/internal/provisions"
	"github.com/alexiusacademia/gosteel/internal/section"
	"github.com/alexiusacademia/gosteel/internal/units"
)

// Point is one sample of a curve.
type Point struct {
	X float64
	Y float64
}

// Marker is a labelled vertical line at X.
type Marker struct {
	Label string
	X     float64
}

// Curve is a sampled capacity curve ready to draw.
type Curve struct {
	Title   string
	XLabel  string
	YLabel  string
	Points  []Point
	Markers []Marker
}

// Y returns the ordinates of the curve.
func (c Curve) Y() []float64 {
	ys := make([]float64, len(c.Points))
	for i, p := range c.Points {
		ys[i] = p.Y
	}
	return ys
}

func checkSamples(max units.Quantity, n int) error {
	if max.Dim() != units.Length || !max.Positive() {
		return fmt.Errorf("curve range must be a positive length")
	}
	if n < 2 {
		return fmt.Errorf("curve needs at least 2 samples, got %d", n)
	}
	return nil
}

// BeamCurve samples φMn (kN·m) against unbraced length (m) from zero to
// maxLb, marking Lp and Lr.
func BeamCurve(sec *section.Model, steel material.Steel, cb float64, maxLb units.Quantity, samples int) (Curve, error) {
	if err := checkSamples(maxLb, samples); err != nil {
		return Curve{}, err
	}
	limits, err := beam.ComputeLimits(sec, steel)
	if err != nil {
		return Curve{}, err
	}
	c := Curve{
		Title:  fmt.Sprintf("%s %s flexure, Cb = %.2f", sec.Name(), steel.Name, cb),
		XLabel: "Unbraced length Lb (m)",
		YLabel: "φMn (kN·m)",
	}
	span := maxLb.SI()
	for i := 0; i < samples; i++ {
		lb := units.New(span*float64(i)/float64(samples-1), units.M)
		r, err := beam.EvaluateFlexure(beam.Input{
			Section:        sec,
			Material:       steel,
			UnbracedLength: lb,
			Axis:           beam.Strong,
			Cb:             cb,
		})
		if err != nil {
			return Curve{}, err
		}
		c.Points = append(c.Points, Point{lb.SI(), r.Design.MustIn(units.KNM)})
	}
	for _, m := range []Marker{{"Lp", limits.Lp.SI()}, {"Lr", limits.Lr.SI()}} {
		if m.X <= span {
			c.Markers = append(c.Markers, m)
		}
	}
	return c, nil
}

// ColumnCurve samples φPn (kN) against member length (m) up to maxL. A
// positive k overrides the end-condition table as in column.Input.
func ColumnCurve(sec *section.Model, steel material.Steel, top, bottom provisions.EndCondition, k float64, maxL units.Quantity, samples int) (Curve, error) {
	if err := checkSamples(maxL, samples); err != nil {
		return Curve{}, err
	}
	ends := fmt.Sprintf("%s-%s", top, bottom)
	if k > 0 {
		ends = fmt.Sprintf("K = %.2f", k)
	}
	c := Curve{
		Title:  fmt.Sprintf("%s %s compression, %s", sec.Name(), steel.Name, ends),
		XLabel: "Length L (m)",
		YLabel: "φPn (kN)",
	}
	span := maxL.SI()
	var transition float64
	for i := 1; i <= samples; i++ {
		l := units.New(span*float64(i)/float64(samples), units.M)
		r, err := column.EvaluateCompression(column.Input{
			Section:  sec,
			Material: steel,
			Length:   l,
			Top:      top,
			Bottom:   bottom,
			K:        k,
		})
		if err != nil {
			return Curve{}, err
		}
		if transition == 0 && r.Regime == limitstate.ElasticBuckling {
			transition = l.SI()
		}
		c.Points = append(c.Points, Point{l.SI(), r.Design.MustIn(units.KN)})
	}
	if transition > 0 {
		c.Markers = append(c.Markers, Marker{"elastic", transition})
	}
	return c, nil
}
