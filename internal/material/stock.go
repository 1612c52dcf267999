package material

import (
	"fmt"
	"sort"

	"github.com/alexiusacademia/gosteel/internal/units"
)

// Category is a stock product form.
type Category string

const (
	Plate Category = "plate"
	Sheet Category = "sheet"
)

// System selects metric or imperial stock sizes.
type System string

const (
	Metric   System = "metric"
	Imperial System = "imperial"
)

type stockList struct {
	metric    []float64 // mm
	imperial  []float64 // in
	materials []string
}

// Stock lists the standard thicknesses carried for plate and sheet.
type Stock struct {
	lists map[Category]stockList
}

// DefaultStock returns the standard plate and sheet sizes.
func DefaultStock() *Stock {
	return &Stock{lists: map[Category]stockList{
		Plate: {
			metric: []float64{5, 6, 8, 10, 12, 15, 16, 20, 22, 25, 28, 30, 32, 35, 38, 40,
				45, 50, 55, 60, 65, 70, 75, 80, 90, 100},
			imperial: []float64{0.1875, 0.25, 0.3125, 0.375, 0.4375, 0.5, 0.625, 0.75, 0.875,
				1, 1.125, 1.25, 1.375, 1.5, 1.75, 2, 2.25, 2.5, 3, 3.5, 4},
			materials: []string{"ASTM A36", "ASTM A992", "ASTM A572 Gr 50",
				"CSA G40.21 300W", "CSA G40.21 350W", "SS 304", "6061-T6"},
		},
		Sheet: {
			metric:    []float64{0.5, 0.6, 0.8, 1, 1.2, 1.5, 2, 2.5, 3, 4, 5},
			imperial:  []float64{0.0179, 0.0239, 0.0299, 0.0359, 0.0478, 0.0598, 0.0747, 0.1046, 0.1345, 0.1793},
			materials: []string{"ASTM A36", "SS 304", "6061-T6"},
		},
	}}
}

// NextThickness returns the smallest standard thickness at least required.
// When required exceeds every standard size the largest is returned with
// ok false.
func (s *Stock) NextThickness(required units.Quantity, c Category, sys System) (t units.Quantity, ok bool, err error) {
	list, found := s.lists[c]
	if !found {
		return units.Quantity{}, false, fmt.Errorf("unknown stock category %q", c)
	}
	sizes, unit := list.metric, units.MM
	switch sys {
	case Metric:
	case Imperial:
		sizes, unit = list.imperial, units.IN
	default:
		return units.Quantity{}, false, fmt.Errorf("unknown unit system %q", sys)
	}
	req, err := required.In(unit)
	if err != nil {
		return units.Quantity{}, false, err
	}

	sorted := append([]float64(nil), sizes...)
	sort.Float64s(sorted)
	for _, v := range sorted {
		if v >= req {
			return units.New(v, unit), true, nil
		}
	}
	return units.New(sorted[len(sorted)-1], unit), false, nil
}

// Available reports whether a material is stocked in a category.
func (s *Stock) Available(material string, c Category) bool {
	list, ok := s.lists[c]
	if !ok {
		return false
	}
	key := steelKey(material)
	for _, m := range list.materials {
		if steelKey(m) == key {
			return true
		}
	}
	return false
}

// Thicknesses lists the standard sizes of a category.
func (s *Stock) Thicknesses(c Category, sys System) []units.Quantity {
	list := s.lists[c]
	sizes, unit := list.metric, units.MM
	if sys == Imperial {
		sizes, unit = list.imperial, units.IN
	}
	out := make([]units.Quantity, len(sizes))
	for i, v := range sizes {
		out[i] = units.New(v, unit)
	}
	return out
}
