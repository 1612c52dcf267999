package section

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// ShapeType is the AISC shape family of a record.
type ShapeType string

const (
	TypeW    ShapeType = "W"
	TypeM    ShapeType = "M"
	TypeS    ShapeType = "S"
	TypeHP   ShapeType = "HP"
	TypeC    ShapeType = "C"
	TypeMC   ShapeType = "MC"
	TypeL    ShapeType = "L"
	TypeWT   ShapeType = "WT"
	TypeMT   ShapeType = "MT"
	TypeST   ShapeType = "ST"
	Type2L   ShapeType = "2L"
	TypeHSS  ShapeType = "HSS"
	TypePipe ShapeType = "PIPE"
	// TypeBuiltUp marks records computed from a plate outline.
	TypeBuiltUp ShapeType = "BU"
)

// KnownTypes lists the shape families a database may hold.
var KnownTypes = []ShapeType{
	TypeW, TypeM, TypeS, TypeHP, TypeC, TypeMC, TypeL,
	TypeWT, TypeMT, TypeST, Type2L, TypeHSS, TypePipe, TypeBuiltUp,
}

// ParseShapeType resolves a shape family name case-insensitively.
func ParseShapeType(s string) (ShapeType, error) {
	t := ShapeType(strings.ToUpper(strings.TrimSpace(s)))
	for _, k := range KnownTypes {
		if t == k {
			return t, nil
		}
	}
	return "", &ValidationError{msg: fmt.Sprintf("unknown shape type %q", s)}
}

// Record is an immutable raw property record. Values are stored in the scaled
// metric units of the AISC database; Model applies the scaling.
type Record struct {
	name   string
	metric string
	typ    ShapeType
	props  map[string]float64
}

// NewRecord validates and copies props into a new record.
func NewRecord(name, metric string, typ ShapeType, props map[string]float64) (*Record, error) {
	r := &Record{
		name:   strings.ToUpper(strings.TrimSpace(name)),
		metric: strings.ToUpper(strings.TrimSpace(metric)),
		typ:    typ,
		props:  make(map[string]float64, len(props)),
	}
	for k, v := range props {
		r.props[k] = v
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// Name returns the imperial designation, e.g. W18X50.
func (r *Record) Name() string { return r.name }

// MetricName returns the metric designation, e.g. W460X74.
func (r *Record) MetricName() string { return r.metric }

// Type returns the shape family.
func (r *Record) Type() ShapeType { return r.typ }

// Raw returns the stored value of a property before scaling.
func (r *Record) Raw(key string) (float64, bool) {
	v, ok := r.props[key]
	return v, ok
}

// Keys returns the property names in sorted order.
func (r *Record) Keys() []string {
	keys := make([]string, 0, len(r.props))
	for k := range r.props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Validate checks that the record is usable
func (r *Record) Validate() error {
	if r.name == "" {
		return &ValidationError{"record must have a name"}
	}
	if _, err := ParseShapeType(string(r.typ)); err != nil {
		return &ValidationError{msg: fmt.Sprintf("%s: %v", r.name, err)}
	}
	for k, v := range r.props {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return &ValidationError{msg: fmt.Sprintf("%s: property %s is not finite", r.name, k)}
		}
	}
	return nil
}

// ValidationError represents a section record validation error
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}
