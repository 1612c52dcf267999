// Package selection finds the lightest catalogue shape that passes a check.
package selection

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/alexiusacademia/gosteel/internal/beam"
	"github.com/alexiusacademia/gosteel/internal/column"
	"github.com/alexiusacademia/gosteel/internal/limitstate"
	"github.com/alexiusacademia/gosteel/internal/material"
	"github.com/alexiusacademia/gosteel/internal/provisions"
	"github.com/alexiusacademia/gosteel/internal/section"
	"github.com/alexiusacademia/gosteel/internal/units"
)

// ErrNoPassingSection is returned when every candidate fails.
var ErrNoPassingSection = errors.New("no passing section")

// CheckFunc evaluates one candidate.
type CheckFunc func(*section.Model) (limitstate.CheckResult, error)

// Options configures a selection run over one shape family.
type Options struct {
	Type    section.ShapeType
	SortBy  string // stored property to order candidates by, default "W"
	Check   CheckFunc
	Workers int // default runtime.NumCPU()
}

// Outcome is the evaluation of one candidate.
type Outcome struct {
	Name  string
	Check limitstate.CheckResult
	Err   error
}

// Passed reports whether the candidate was evaluated and passed.
func (o Outcome) Passed() bool {
	return o.Err == nil && o.Check.Status == limitstate.Pass
}

// Result holds every evaluated candidate and the selected one, if any.
type Result struct {
	Selected *Outcome
	Outcomes []Outcome // in candidate order
}

// Select evaluates every candidate of a family in parallel and picks the
// first passing one in sort order. The outcomes are returned even when no
// candidate passes.
func Select(ctx context.Context, db *section.Database, opts Options) (*Result, error) {
	if opts.Check == nil {
		return nil, fmt.Errorf("%w: no check function", limitstate.ErrInvalidInput)
	}
	sortBy := opts.SortBy
	if sortBy == "" {
		sortBy = "W"
	}
	names := db.ByType(opts.Type, sortBy)
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: no %s shapes in the database", section.ErrShapeNotFound, opts.Type)
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(names) {
		workers = len(names)
	}

	outcomes := make([]Outcome, len(names))
	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				outcomes[i] = evaluate(names[i], db, opts.Check)
			}
		}()
	}

feed:
	for i := range names {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := &Result{Outcomes: outcomes}
	for i := range outcomes {
		if outcomes[i].Passed() {
			res.Selected = &outcomes[i]
			return res, nil
		}
	}
	return res, fmt.Errorf("%w among %d %s shapes", ErrNoPassingSection, len(names), opts.Type)
}

func evaluate(name string, db *section.Database, check CheckFunc) Outcome {
	o := Outcome{Name: name}
	m, err := db.Lookup(name)
	if err != nil {
		o.Err = err
		return o
	}
	o.Check, o.Err = check(m)
	return o
}

// BeamCheck checks strong-axis flexure against a factored moment.
func BeamCheck(steel material.Steel, lb units.Quantity, cb float64, mu units.Quantity) CheckFunc {
	return func(m *section.Model) (limitstate.CheckResult, error) {
		r, err := beam.EvaluateFlexure(beam.Input{
			Section:        m,
			Material:       steel,
			UnbracedLength: lb,
			Axis:           beam.Strong,
			Cb:             cb,
		})
		if err != nil {
			return limitstate.CheckResult{}, err
		}
		return limitstate.Check(limitstate.Flexure, mu, r)
	}
}

// ColumnCheck checks axial compression against a factored load.
func ColumnCheck(steel material.Steel, length units.Quantity, top, bottom provisions.EndCondition, pu units.Quantity) CheckFunc {
	return func(m *section.Model) (limitstate.CheckResult, error) {
		r, err := column.EvaluateCompression(column.Input{
			Section:  m,
			Material: steel,
			Length:   length,
			Top:      top,
			Bottom:   bottom,
		})
		if err != nil {
			return limitstate.CheckResult{}, err
		}
		return limitstate.Check(limitstate.Compression, pu, r)
	}
}
