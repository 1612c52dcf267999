// Package limitstate defines the results shared by the capacity engines and
// the governing-mode aggregation over several limit-state checks.
package limitstate

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/alexiusacademia/gosteel/internal/trace"
	"github.com/alexiusacademia/gosteel/internal/units"
)

var (
	// ErrUnsupportedShapeType is returned when an engine does not cover the
	// shape family of a section.
	ErrUnsupportedShapeType = errors.New("unsupported shape type")
	// ErrInvalidInput is returned for non-positive lengths, counts or areas.
	ErrInvalidInput = errors.New("invalid input")
)

// Regime is the behaviour that governs a member capacity.
type Regime string

const (
	InelasticBuckling Regime = "inelastic buckling"
	ElasticBuckling   Regime = "elastic buckling"
	PlasticYielding   Regime = "zone 1: plastic yielding"
	InelasticLTB      Regime = "zone 2: inelastic LTB"
	ElasticLTB        Regime = "zone 3: elastic LTB"
	WeakAxisYielding  Regime = "weak-axis yielding"
)

// CapacityResult is the outcome of one member evaluation.
type CapacityResult struct {
	Nominal      units.Quantity
	Design       units.Quantity
	Regime       Regime
	Axis         string // governing buckling or bending axis
	Intermediate map[string]units.Quantity
	Trace        *trace.Trace
}

// Value returns an intermediate quantity by symbol.
func (r *CapacityResult) Value(symbol string) (units.Quantity, bool) {
	q, ok := r.Intermediate[symbol]
	return q, ok
}

// Symbols returns the intermediate symbols in sorted order.
func (r *CapacityResult) Symbols() []string {
	keys := make([]string, 0, len(r.Intermediate))
	for k := range r.Intermediate {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Warnings returns the warning steps of the trace.
func (r *CapacityResult) Warnings() []trace.Step {
	return r.Trace.Warnings()
}

// Status is the verdict of a check.
type Status string

const (
	Pass Status = "PASS"
	Fail Status = "FAIL"
)

// StatusOf returns PASS for a utilization of at most 1.0.
func StatusOf(utilization float64) Status {
	if utilization <= 1.0 {
		return Pass
	}
	return Fail
}

// Mode names a limit state.
type Mode string

const (
	BoltShear       Mode = "bolt shear"
	Bearing         Mode = "bearing"
	BlockShear      Mode = "block shear"
	Compression     Mode = "compression"
	Flexure         Mode = "flexure"
	ConcreteBearing Mode = "concrete bearing"
)

// CheckResult compares one demand against one capacity.
type CheckResult struct {
	Mode        Mode
	Label       string
	Demand      units.Quantity
	Capacity    units.Quantity
	Utilization float64
	Status      Status
	Trace       *trace.Trace
}

// NewCheck computes utilization = demand / capacity.
func NewCheck(mode Mode, label string, demand, capacity units.Quantity, tr *trace.Trace) (CheckResult, error) {
	if !capacity.Positive() {
		return CheckResult{}, fmt.Errorf("%w: %s capacity must be positive", ErrInvalidInput, mode)
	}
	u, err := demand.Abs().Div(capacity).Float()
	if err != nil {
		return CheckResult{}, fmt.Errorf("%s: %w", mode, err)
	}
	if label == "" {
		label = string(mode)
	}
	if tr == nil {
		tr = &trace.Trace{}
	}
	return CheckResult{
		Mode:        mode,
		Label:       label,
		Demand:      demand,
		Capacity:    capacity,
		Utilization: u,
		Status:      StatusOf(u),
		Trace:       tr,
	}, nil
}

// Check compares a demand with the design capacity of a member result.
func Check(mode Mode, demand units.Quantity, r *CapacityResult) (CheckResult, error) {
	tr := &trace.Trace{}
	tr.Append(r.Trace)
	c, err := NewCheck(mode, "", demand, r.Design, tr)
	if err != nil {
		return CheckResult{}, err
	}
	tr.Add(trace.Step{
		Description:  "Check utilization",
		Formula:      "demand / φRn ≤ 1.0",
		Substitution: fmt.Sprintf("%s / %s", demand, r.Design),
		Result:       fmt.Sprintf("%.3f", c.Utilization),
		Conclusion:   string(c.Status),
	})
	return c, nil
}

// GoverningResult aggregates several checks.
type GoverningResult struct {
	Checks      []CheckResult
	Governing   CheckResult
	Utilization float64
	Status      Status
	Trace       *trace.Trace
}

// Aggregate selects the check with the highest utilization. On a tie the
// earlier check governs.
func Aggregate(checks []CheckResult) (*GoverningResult, error) {
	if len(checks) == 0 {
		return nil, fmt.Errorf("%w: no checks to aggregate", ErrInvalidInput)
	}

	g := 0
	for i := 1; i < len(checks); i++ {
		if checks[i].Utilization > checks[g].Utilization {
			g = i
		}
	}

	tr := &trace.Trace{}
	vars := make(map[string]string, len(checks))
	var parts []string
	for _, c := range checks {
		tr.Append(c.Trace)
		vars[c.Label] = fmt.Sprintf("%.3f", c.Utilization)
		parts = append(parts, fmt.Sprintf("%.3f", c.Utilization))
	}

	gov := checks[g]
	status := StatusOf(gov.Utilization)
	tr.Add(trace.Step{
		Description:  "Governing limit state",
		Formula:      "U = max(Ui)",
		Substitution: fmt.Sprintf("U = max(%s)", strings.Join(parts, ", ")),
		Result:       fmt.Sprintf("%.3f (%s)", gov.Utilization, gov.Label),
		Conclusion:   fmt.Sprintf("%s governs; connection %s", gov.Label, status),
		Variables:    vars,
	})

	return &GoverningResult{
		Checks:      append([]CheckResult(nil), checks...),
		Governing:   gov,
		Utilization: gov.Utilization,
		Status:      status,
		Trace:       tr,
	}, nil
}
