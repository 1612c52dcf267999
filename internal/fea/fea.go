// Package fea is the boundary to an external frame solver. It maps section
// properties into the solver's axis convention and reduces result envelopes
// to design demands.
package fea

import (
	"encoding/json"
	"fmt"
	"io"
	"math"

	"github.com/alexiusacademia/gosteel/internal/section"
	"github.com/alexiusacademia/gosteel/internal/units"
)

// FrameSection is a member section in solver coordinates (SI units). The
// solver's local z axis is the strong bending axis.
type FrameSection struct {
	Name  string  `json:"name"`
	Area  float64 `json:"area"`
	Iz    float64 `json:"Iz"`
	Iy    float64 `json:"Iy"`
	J     float64 `json:"J"`
	Depth float64 `json:"depth,omitempty"`
	Width float64 `json:"width,omitempty"`
}

// MapSection converts a catalogue section to solver axes: the catalogue
// strong-axis Ix becomes Iz and the weak-axis Iy stays Iy.
func MapSection(m *section.Model) (FrameSection, error) {
	if err := m.Require("A", "Ix", "Iy", "J"); err != nil {
		return FrameSection{}, err
	}
	a, _ := m.Get("A")
	ix, _ := m.Get("Ix")
	iy, _ := m.Get("Iy")
	j, _ := m.Get("J")
	fs := FrameSection{
		Name: m.Name(),
		Area: a.SI(),
		Iz:   ix.SI(),
		Iy:   iy.SI(),
		J:    j.SI(),
	}
	if d, ok := m.Get("d"); ok {
		fs.Depth = d.SI()
	}
	if bf, ok := m.Get("bf"); ok {
		fs.Width = bf.SI()
	}
	return fs, nil
}

// Envelope is the extreme member forces returned by the solver, in N·m and N.
type Envelope struct {
	MaxMomentZ float64 `json:"max_moment_z"`
	MinMomentZ float64 `json:"min_moment_z"`
	MaxShearY  float64 `json:"max_shear_y"`
	MinShearY  float64 `json:"min_shear_y"`
	MaxAxial   float64 `json:"max_axial"`
	MinAxial   float64 `json:"min_axial"`
}

// Demand is the design demand taken from an envelope.
type Demand struct {
	Moment units.Quantity
	Shear  units.Quantity
	Axial  units.Quantity
}

func absMax(a, b float64) float64 { return math.Max(math.Abs(a), math.Abs(b)) }

// Demand returns the absolute maxima of the envelope.
func (e Envelope) Demand() Demand {
	return Demand{
		Moment: units.New(absMax(e.MaxMomentZ, e.MinMomentZ)/1e3, units.KNM),
		Shear:  units.New(absMax(e.MaxShearY, e.MinShearY), units.N),
		Axial:  units.New(absMax(e.MaxAxial, e.MinAxial), units.N),
	}
}

// ReadEnvelope decodes a JSON envelope.
func ReadEnvelope(r io.Reader) (Envelope, error) {
	var e Envelope
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&e); err != nil {
		return Envelope{}, fmt.Errorf("decode envelope: %w", err)
	}
	return e, nil
}
