package provisions

import (
	"errors"

	"github.com/alexiusacademia/gosteel/internal/units"
)

// LoadCombination represents a strength design load combination
type LoadCombination struct {
	ID          string
	Description string
	// Load factors for each load type
	Dead       float64 // D - Dead load
	Live       float64 // L - Live load
	Roof       float64 // Lr - Roof live load
	Snow       float64 // S - Snow load
	Wind       float64 // W - Wind load
	Earthquake float64 // E - Earthquake load
}

// ASCE7 holds the ASCE 7-16 Section 2.3.1 LRFD combinations used with AISC 360.
// Alternatives joined by "or" are applied together.
var ASCE7 = []LoadCombination{
	{ID: "1", Description: "1.4D", Dead: 1.4},
	{ID: "2", Description: "1.2D + 1.6L + 0.5(Lr or S)", Dead: 1.2, Live: 1.6, Roof: 0.5, Snow: 0.5},
	{ID: "3", Description: "1.2D + 1.6(Lr or S) + (L or 0.5W)", Dead: 1.2, Live: 1.0, Roof: 1.6, Snow: 1.6, Wind: 0.5},
	{ID: "4", Description: "1.2D + 1.0W + L + 0.5(Lr or S)", Dead: 1.2, Live: 1.0, Wind: 1.0, Roof: 0.5, Snow: 0.5},
	{ID: "5", Description: "1.2D + 1.0E + L + 0.2S", Dead: 1.2, Live: 1.0, Earthquake: 1.0, Snow: 0.2},
	{ID: "6", Description: "0.9D + 1.0W", Dead: 0.9, Wind: 1.0},
	{ID: "7", Description: "0.9D + 1.0E", Dead: 0.9, Earthquake: 1.0},
}

// NBCC holds the NBCC 2020 Table 4.1.3.2.-A principal combinations used with CSA S16.
var NBCC = []LoadCombination{
	{ID: "1", Description: "1.4D", Dead: 1.4},
	{ID: "2", Description: "1.25D + 1.5L + (1.0S or 0.4W)", Dead: 1.25, Live: 1.5, Snow: 1.0, Wind: 0.4},
	{ID: "3", Description: "1.25D + 1.5S + (1.0L or 0.4W)", Dead: 1.25, Snow: 1.5, Live: 1.0, Wind: 0.4},
	{ID: "4", Description: "1.25D + 1.4W + (0.5L or 0.5S)", Dead: 1.25, Wind: 1.4, Live: 0.5, Snow: 0.5},
	{ID: "5", Description: "1.0D + 1.0E + 0.5L + 0.25S", Dead: 1.0, Earthquake: 1.0, Live: 0.5, Snow: 0.25},
}

// GravityCombinations for common beam and column design scenarios
var GravityCombinations = []LoadCombination{
	{ID: "1", Description: "1.4D", Dead: 1.4},
	{ID: "2", Description: "1.2D + 1.6L", Dead: 1.2, Live: 1.6},
}

// LoadEffects holds unfactored effects (moment, shear or axial force) from
// each load type. Zero values mean the load type is absent; every non-zero
// effect must share one dimension.
type LoadEffects struct {
	Dead       units.Quantity
	Live       units.Quantity
	Roof       units.Quantity
	Snow       units.Quantity
	Wind       units.Quantity
	Earthquake units.Quantity
}

func (e LoadEffects) dimension() (units.Dimension, error) {
	var dim units.Dimension
	found := false
	for _, q := range []units.Quantity{e.Dead, e.Live, e.Roof, e.Snow, e.Wind, e.Earthquake} {
		if q.IsZero() {
			continue
		}
		if found && q.Dim() != dim {
			return dim, units.ErrDimensionMismatch
		}
		dim, found = q.Dim(), true
	}
	if !found {
		return dim, errors.New("no load effects given")
	}
	return dim, nil
}

// Factored calculates the factored effect for a given load combination
func (lc LoadCombination) Factored(e LoadEffects) (units.Quantity, error) {
	dim, err := e.dimension()
	if err != nil {
		return units.Quantity{}, err
	}
	var si float64
	for _, t := range []struct {
		factor float64
		q      units.Quantity
	}{
		{lc.Dead, e.Dead}, {lc.Live, e.Live}, {lc.Roof, e.Roof},
		{lc.Snow, e.Snow}, {lc.Wind, e.Wind}, {lc.Earthquake, e.Earthquake},
	} {
		si += t.factor * t.q.SI()
	}
	return units.New(si, units.Unit{Dim: dim, Factor: 1}), nil
}

// GoverningEffect finds the maximum factored effect from all combinations
func GoverningEffect(e LoadEffects, combinations []LoadCombination) (units.Quantity, LoadCombination, error) {
	var governing LoadCombination
	var max units.Quantity
	for i, combo := range combinations {
		u, err := combo.Factored(e)
		if err != nil {
			return units.Quantity{}, LoadCombination{}, err
		}
		if i == 0 || u.SI() > max.SI() {
			max = u
			governing = combo
		}
	}
	if len(combinations) == 0 {
		return units.Quantity{}, governing, errors.New("no load combinations given")
	}
	return max, governing, nil
}

// Combinations returns a named combination set: "asce7", "nbcc" or "gravity".
func Combinations(name string) ([]LoadCombination, bool) {
	switch name {
	case "asce7", "aisc", "lrfd":
		return ASCE7, true
	case "nbcc", "csa":
		return NBCC, true
	case "gravity":
		return GravityCombinations, true
	}
	return nil, false
}
