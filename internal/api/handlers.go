package api

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/alexiusacademia/gosteel/internal/baseplate"
	"github.com/alexiusacademia/gosteel/internal/beam"
	"github.com/alexiusacademia/gosteel/internal/column"
	"github.com/alexiusacademia/gosteel/internal/connection"
	"github.com/alexiusacademia/gosteel/internal/limitstate"
	"github.com/alexiusacademia/gosteel/internal/material"
	"github.com/alexiusacademia/gosteel/internal/provisions"
	"github.com/alexiusacademia/gosteel/internal/section"
	"github.com/alexiusacademia/gosteel/internal/trace"
	"github.com/alexiusacademia/gosteel/internal/units"
)

// Quantity is a magnitude in the display unit of its dimension.
type Quantity struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

func quantity(q units.Quantity) Quantity {
	u := units.DisplayUnit(q.Dim())
	return Quantity{Value: q.SI() / u.Factor, Unit: u.Symbol}
}

// Step is one derivation step of a trace.
type Step struct {
	Level        string            `json:"level"`
	Description  string            `json:"description"`
	Reference    string            `json:"reference,omitempty"`
	Formula      string            `json:"formula,omitempty"`
	Substitution string            `json:"substitution,omitempty"`
	Result       string            `json:"result,omitempty"`
	Conclusion   string            `json:"conclusion,omitempty"`
	Variables    map[string]string `json:"variables,omitempty"`
}

func steps(tr *trace.Trace) []Step {
	if tr == nil {
		return nil
	}
	out := make([]Step, 0, tr.Len())
	for _, s := range tr.Steps() {
		out = append(out, Step{
			Level:        s.Level.String(),
			Description:  s.Description,
			Reference:    s.Reference,
			Formula:      s.Formula,
			Substitution: s.Substitution,
			Result:       s.Result,
			Conclusion:   s.Conclusion,
			Variables:    s.Variables,
		})
	}
	return out
}

// Check is one limit-state check with its utilization.
type Check struct {
	Mode        string   `json:"mode"`
	Label       string   `json:"label"`
	Demand      Quantity `json:"demand"`
	Capacity    Quantity `json:"capacity"`
	Utilization float64  `json:"utilization"`
	Status      string   `json:"status"`
}

func check(c limitstate.CheckResult) Check {
	return Check{
		Mode:        string(c.Mode),
		Label:       c.Label,
		Demand:      quantity(c.Demand),
		Capacity:    quantity(c.Capacity),
		Utilization: c.Utilization,
		Status:      string(c.Status),
	}
}

// CapacityResponse is returned by the member endpoints.
type CapacityResponse struct {
	Section      string              `json:"section"`
	Material     string              `json:"material"`
	Nominal      Quantity            `json:"nominal"`
	Design       Quantity            `json:"design"`
	Regime       string              `json:"regime"`
	Axis         string              `json:"axis"`
	Intermediate map[string]Quantity `json:"intermediate"`
	Check        *Check              `json:"check,omitempty"`
	Trace        []Step              `json:"trace"`
	Fingerprint  string              `json:"fingerprint"`
}

func capacityResponse(sec *section.Model, steel material.Steel, r *limitstate.CapacityResult) CapacityResponse {
	inter := make(map[string]Quantity, len(r.Intermediate))
	for k, v := range r.Intermediate {
		inter[k] = quantity(v)
	}
	return CapacityResponse{
		Section:      sec.Name(),
		Material:     steel.Name,
		Nominal:      quantity(r.Nominal),
		Design:       quantity(r.Design),
		Regime:       string(r.Regime),
		Axis:         r.Axis,
		Intermediate: inter,
		Trace:        steps(r.Trace),
		Fingerprint:  r.Trace.Fingerprint().String(),
	}
}

// GoverningResponse is returned by the connection endpoint.
type GoverningResponse struct {
	Governing   Check   `json:"governing"`
	Checks      []Check `json:"checks"`
	Utilization float64 `json:"utilization"`
	Status      string  `json:"status"`
	Trace       []Step  `json:"trace"`
	Fingerprint string  `json:"fingerprint"`
}

// ColumnRequest evaluates a column. Quantities are strings with units,
// e.g. "3.5m" or "10ft"; bare numbers are mm and kN.
type ColumnRequest struct {
	Section string  `json:"section"`
	Steel   string  `json:"steel"`
	Length  string  `json:"length"`
	Top     string  `json:"top"`
	Bottom  string  `json:"bottom"`
	K       float64 `json:"k"`
	Load    string  `json:"load"`
}

// BeamRequest evaluates a beam in flexure; bare numbers are mm and kN·m.
type BeamRequest struct {
	Section string  `json:"section"`
	Steel   string  `json:"steel"`
	Length  string  `json:"length"` // unbraced length Lb
	Axis    string  `json:"axis"`
	Cb      float64 `json:"cb"`
	Moment  string  `json:"moment"`
}

// BoltRequest describes the bolt group of a connection.
type BoltRequest struct {
	Count    int    `json:"count"`
	Diameter string `json:"diameter"`
	Planes   int    `json:"planes"`
	Grade    string `json:"grade"`
}

// LayerRequest is one clamped plate; steel defaults to the configured grade.
type LayerRequest struct {
	Name      string `json:"name"`
	Thickness string `json:"thickness"`
	Steel     string `json:"steel"`
}

// BlockShearRequest gives the block shear failure path areas in mm².
type BlockShearRequest struct {
	Agv   string  `json:"agv"`
	Anv   string  `json:"anv"`
	Ant   string  `json:"ant"`
	Ubs   float64 `json:"ubs"`
	Steel string  `json:"steel"`
}

// ConnectionRequest evaluates a bolted connection. Empty checks run every
// check the given geometry allows.
type ConnectionRequest struct {
	Checks     []string           `json:"checks"`
	Demand     string             `json:"demand"`
	Bolts      BoltRequest        `json:"bolts"`
	Layers     []LayerRequest     `json:"layers"`
	BlockShear *BlockShearRequest `json:"block_shear"`
}

// BaseplateRequest sizes a column base plate. Width and length default to
// the column footprint plus 50 mm a side.
type BaseplateRequest struct {
	Column   string `json:"column"`
	Load     string `json:"load"`
	Steel    string `json:"steel"`
	Concrete string `json:"concrete"`
	Width    string `json:"width"`
	Length   string `json:"length"`
}

// BaseplateResponse is returned by the base plate endpoint.
type BaseplateResponse struct {
	Column      string   `json:"column"`
	Width       Quantity `json:"width"`
	Length      Quantity `json:"length"`
	Cantilever  Quantity `json:"cantilever"`
	Required    Quantity `json:"required_thickness"`
	Standard    Quantity `json:"standard_thickness"`
	Stocked     bool     `json:"stocked"`
	Bearing     Check    `json:"bearing"`
	Status      string   `json:"status"`
	Trace       []Step   `json:"trace"`
	Fingerprint string   `json:"fingerprint"`
}

// parse reads an optional quantity field; empty yields the zero quantity.
func parse(field, s string, def units.Unit) (units.Quantity, error) {
	if s == "" {
		return units.New(0, def), nil
	}
	q, err := units.Parse(s, def)
	if err != nil {
		return units.Quantity{}, fmt.Errorf("%s: %w", field, err)
	}
	return q, nil
}

func (s *Server) steel(name string) (material.Steel, error) {
	if name == "" {
		name = s.Config.Defaults.Steel
	}
	return s.Materials.Steel(name)
}

func endCondition(s string) (provisions.EndCondition, error) {
	if s == "" {
		return provisions.Pinned, nil
	}
	return provisions.ParseEndCondition(s)
}

func (s *Server) column(w http.ResponseWriter, r *http.Request) {
	var req ColumnRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}
	sec, err := s.Shapes.Lookup(req.Section)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	steel, err := s.steel(req.Steel)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	length, err := parse("length", req.Length, units.MM)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	load, err := parse("load", req.Load, units.KN)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	top, err := endCondition(req.Top)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	bottom, err := endCondition(req.Bottom)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	res, err := column.EvaluateCompression(column.Input{
		Section:  sec,
		Material: steel,
		Length:   length,
		Top:      top,
		Bottom:   bottom,
		K:        req.K,
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	out := capacityResponse(sec, steel, res)
	if !load.IsZero() {
		c, err := limitstate.Check(limitstate.Compression, load, res)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		cj := check(c)
		out.Check = &cj
		out.Trace = steps(c.Trace)
		out.Fingerprint = c.Trace.Fingerprint().String()
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) beam(w http.ResponseWriter, r *http.Request) {
	var req BeamRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}
	sec, err := s.Shapes.Lookup(req.Section)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	steel, err := s.steel(req.Steel)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	lb, err := parse("length", req.Length, units.MM)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	mu, err := parse("moment", req.Moment, units.KNM)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	axis := beam.Strong
	if req.Axis != "" {
		if axis, err = beam.ParseAxis(req.Axis); err != nil {
			s.fail(w, r, err)
			return
		}
	}
	cb := req.Cb
	if cb == 0 {
		cb = s.Config.Defaults.Cb
	}

	res, err := beam.EvaluateFlexure(beam.Input{
		Section:        sec,
		Material:       steel,
		UnbracedLength: lb,
		Axis:           axis,
		Cb:             cb,
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	out := capacityResponse(sec, steel, res)
	if !mu.IsZero() {
		c, err := limitstate.Check(limitstate.Flexure, mu, res)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		cj := check(c)
		out.Check = &cj
		out.Trace = steps(c.Trace)
		out.Fingerprint = c.Trace.Fingerprint().String()
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) connectionInput(req ConnectionRequest) (connection.Input, error) {
	var in connection.Input
	demand, err := units.Parse(req.Demand, units.KN)
	if err != nil {
		return in, fmt.Errorf("demand: %w", err)
	}
	in.Demand = demand
	for _, c := range req.Checks {
		in.Checks = append(in.Checks, limitstate.Mode(c))
	}

	grade := req.Bolts.Grade
	if grade == "" {
		grade = s.Config.Defaults.Bolt
	}
	bolt, err := s.Materials.Bolt(grade)
	if err != nil {
		return in, err
	}
	d, err := parse("bolts.diameter", req.Bolts.Diameter, units.MM)
	if err != nil {
		return in, err
	}
	in.Bolts = connection.BoltGroup{
		Count:       req.Bolts.Count,
		Diameter:    d,
		ShearPlanes: req.Bolts.Planes,
		Grade:       bolt,
	}

	for i, l := range req.Layers {
		t, err := parse(fmt.Sprintf("layers[%d].thickness", i), l.Thickness, units.MM)
		if err != nil {
			return in, err
		}
		m, err := s.steel(l.Steel)
		if err != nil {
			return in, err
		}
		in.Layers = append(in.Layers, connection.Layer{Name: l.Name, Thickness: t, Material: m})
	}

	if bs := req.BlockShear; bs != nil {
		var p connection.BlockShearPath
		if p.Agv, err = parse("block_shear.agv", bs.Agv, units.MM2); err != nil {
			return in, err
		}
		if p.Anv, err = parse("block_shear.anv", bs.Anv, units.MM2); err != nil {
			return in, err
		}
		if p.Ant, err = parse("block_shear.ant", bs.Ant, units.MM2); err != nil {
			return in, err
		}
		if p.Material, err = s.steel(bs.Steel); err != nil {
			return in, err
		}
		p.Ubs = bs.Ubs
		in.BlockShear = &p
	}
	return in, nil
}

func (s *Server) connection(w http.ResponseWriter, r *http.Request) {
	var req ConnectionRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}
	in, err := s.connectionInput(req)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	g, err := connection.Evaluate(in)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	out := GoverningResponse{
		Governing:   check(g.Governing),
		Utilization: g.Utilization,
		Status:      string(g.Status),
		Trace:       steps(g.Trace),
		Fingerprint: g.Trace.Fingerprint().String(),
	}
	for _, c := range g.Checks {
		out.Checks = append(out.Checks, check(c))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) baseplate(w http.ResponseWriter, r *http.Request) {
	var req BaseplateRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}
	col, err := s.Shapes.Lookup(req.Column)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	steel, err := s.steel(req.Steel)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	conc, err := s.Config.ConcreteClass(s.Materials, req.Concrete)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	load, err := parse("load", req.Load, units.KN)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	width, err := parse("width", req.Width, units.MM)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	length, err := parse("length", req.Length, units.MM)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	res, err := baseplate.Design(baseplate.Input{
		Column:   col,
		Load:     load,
		Steel:    steel,
		Concrete: conc,
		Width:    width,
		Length:   length,
		Stock:    material.DefaultStock(),
		System:   material.Metric,
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, BaseplateResponse{
		Column:      col.Name(),
		Width:       quantity(res.Width),
		Length:      quantity(res.Length),
		Cantilever:  quantity(res.Cantilever),
		Required:    quantity(res.Required),
		Standard:    quantity(res.Standard),
		Stocked:     res.Stocked,
		Bearing:     check(res.Bearing),
		Status:      string(res.Status),
		Trace:       steps(res.Trace),
		Fingerprint: res.Trace.Fingerprint().String(),
	})
}

// SectionResponse lists the raw catalogue properties of a shape.
type SectionResponse struct {
	Name       string             `json:"name"`
	Metric     string             `json:"metric,omitempty"`
	Type       string             `json:"type"`
	Properties map[string]float64 `json:"properties"`
}

func (s *Server) sectionByName(w http.ResponseWriter, r *http.Request) {
	m, err := s.Shapes.Lookup(mux.Vars(r)["name"])
	if err != nil {
		s.fail(w, r, err)
		return
	}
	rec := m.Record()
	props := make(map[string]float64)
	for _, k := range rec.Keys() {
		if v, ok := rec.Raw(k); ok {
			props[k] = v
		}
	}
	writeJSON(w, http.StatusOK, SectionResponse{
		Name:       rec.Name(),
		Metric:     rec.MetricName(),
		Type:       string(rec.Type()),
		Properties: props,
	})
}

// MaterialsResponse lists the registered grades in catalogue units.
type MaterialsResponse struct {
	Steel []material.SteelSpec `json:"steel"`
	Bolts []material.BoltSpec  `json:"bolts"`
}

func (s *Server) materials(w http.ResponseWriter, _ *http.Request) {
	var out MaterialsResponse
	for _, m := range s.Materials.SteelGrades() {
		out.Steel = append(out.Steel, material.SteelSpec{
			Name:    m.Name,
			Fy:      m.Fy.MustIn(units.MPa),
			Fu:      m.Fu.MustIn(units.MPa),
			E:       m.E.MustIn(units.GPa),
			Density: m.Density.MustIn(units.KgPerM3),
		})
	}
	for _, b := range s.Materials.BoltGrades() {
		out.Bolts = append(out.Bolts, material.BoltSpec{
			Name:  b.Name,
			Proof: b.Proof.MustIn(units.MPa),
			Fy:    b.Fy.MustIn(units.MPa),
			Fu:    b.Fu.MustIn(units.MPa),
		})
	}
	writeJSON(w, http.StatusOK, out)
}
