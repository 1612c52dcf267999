// Package fastener describes ISO metric coarse threads, hex heads and bolts
// assembled from a thread and a property class.
package fastener

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/alexiusacademia/gosteel/internal/material"
	"github.com/alexiusacademia/gosteel/internal/units"
)

// minorDiameterFactor gives d3 = d - 1.226869 P (ISO 724).
const minorDiameterFactor = 1.226869

// isoCoarse holds pitch, tensile stress area, width across flats and head
// height in mm (ISO 261 / ISO 4014).
var isoCoarse = map[string][4]float64{
	"M5":  {0.8, 14.2, 8, 3.5},
	"M6":  {1.0, 20.1, 10, 4.0},
	"M8":  {1.25, 36.6, 13, 5.3},
	"M10": {1.5, 58.0, 16, 6.4},
	"M12": {1.75, 84.3, 18, 7.5},
	"M14": {2.0, 115, 21, 8.8},
	"M16": {2.0, 157, 24, 10},
	"M20": {2.5, 245, 30, 12.5},
	"M22": {2.5, 303, 34, 14},
	"M24": {3.0, 353, 36, 15},
	"M27": {3.0, 459, 41, 17},
	"M30": {3.5, 561, 46, 18.7},
	"M36": {4.0, 817, 55, 22.5},
	"M42": {4.5, 1120, 65, 26},
	"M48": {5.0, 1470, 75, 30},
	"M56": {5.5, 2030, 85, 35},
	"M64": {6.0, 2680, 95, 40},
}

// Thread is a metric coarse thread profile.
type Thread struct {
	Name       string
	Diameter   units.Quantity // nominal d
	Pitch      units.Quantity
	StressArea units.Quantity // As
}

// HexHead holds hex head dimensions.
type HexHead struct {
	WidthFlats units.Quantity // s
	Height     units.Quantity // k
}

// MinorDiameter returns d3.
func (t Thread) MinorDiameter() units.Quantity {
	return units.New(t.Diameter.MustIn(units.MM)-minorDiameterFactor*t.Pitch.MustIn(units.MM), units.MM)
}

// NominalArea returns π d²/4.
func (t Thread) NominalArea() units.Quantity {
	return t.Diameter.Mul(t.Diameter).Scale(math.Pi / 4)
}

func cleanSize(size string) string {
	s := strings.ToUpper(strings.TrimSpace(size))
	if i := strings.IndexAny(s, "X×"); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

// MetricThread resolves a size such as "M20", "m20" or "M20x2.5".
func MetricThread(size string) (Thread, error) {
	name := cleanSize(size)
	row, ok := isoCoarse[name]
	if !ok {
		return Thread{}, fmt.Errorf("thread %q not in ISO coarse series (available: %s)", size, strings.Join(Sizes(), ", "))
	}
	d, err := strconv.ParseFloat(name[1:], 64)
	if err != nil {
		return Thread{}, fmt.Errorf("thread %q: %w", size, err)
	}
	return Thread{
		Name:       name,
		Diameter:   units.New(d, units.MM),
		Pitch:      units.New(row[0], units.MM),
		StressArea: units.New(row[1], units.MM2),
	}, nil
}

// Head resolves the hex head of a size.
func Head(size string) (HexHead, error) {
	row, ok := isoCoarse[cleanSize(size)]
	if !ok {
		return HexHead{}, fmt.Errorf("head dimensions for %q not found", size)
	}
	return HexHead{
		WidthFlats: units.New(row[2], units.MM),
		Height:     units.New(row[3], units.MM),
	}, nil
}

// Sizes lists the thread sizes in ascending diameter.
func Sizes() []string {
	out := make([]string, 0, len(isoCoarse))
	for k := range isoCoarse {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool {
		a, _ := strconv.Atoi(out[i][1:])
		b, _ := strconv.Atoi(out[j][1:])
		return a < b
	})
	return out
}

// Bolt is a thread, head and property class.
type Bolt struct {
	Thread   Thread
	Head     HexHead
	Material material.Bolt
}

// NewBolt assembles a standard bolt, e.g. NewBolt(reg, "M20", "8.8").
func NewBolt(reg *material.Registry, size, grade string) (Bolt, error) {
	th, err := MetricThread(size)
	if err != nil {
		return Bolt{}, err
	}
	hd, err := Head(size)
	if err != nil {
		return Bolt{}, err
	}
	m, err := reg.Bolt(grade)
	if err != nil {
		return Bolt{}, err
	}
	return Bolt{Thread: th, Head: hd, Material: m}, nil
}

// ProofLoad returns As·Sp.
func (b Bolt) ProofLoad() units.Quantity {
	return b.Thread.StressArea.Mul(b.Material.Proof)
}

// ShearYield approximates shear yield by distortion energy, 0.577·Sy·As.
func (b Bolt) ShearYield() units.Quantity {
	return b.Material.Fy.Mul(b.Thread.StressArea).Scale(0.577)
}

func (b Bolt) String() string {
	return fmt.Sprintf("%s %s", b.Thread.Name, b.Material.Name)
}
