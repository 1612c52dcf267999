// Package trace records the ordered derivation behind a capacity result.
package trace

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// Level marks a step as informational or a warning.
type Level int

const (
	Info Level = iota
	Warning
)

func (l Level) String() string {
	if l == Warning {
		return "WARNING"
	}
	return "INFO"
}

// Step is one record of a derivation.
type Step struct {
	Description  string
	Reference    string            // code clause
	Formula      string            // symbolic form
	Substitution string            // formula with numbers
	Result       string            // value with unit
	Conclusion   string            // interpretation
	Variables    map[string]string // symbol -> value, for parameter steps
	Level        Level
}

// Trace is an append-only ordered list of steps. The zero value is ready to
// use. A Trace is not safe for concurrent mutation; each evaluation builds
// its own.
type Trace struct {
	steps []Step
}

// Add appends an informational step.
func (t *Trace) Add(s Step) {
	t.steps = append(t.steps, s.clone())
}

// Warn appends a warning step.
func (t *Trace) Warn(s Step) {
	s.Level = Warning
	t.Add(s)
}

// Append copies every step of o onto t, preserving order.
func (t *Trace) Append(o *Trace) {
	if o == nil {
		return
	}
	for _, s := range o.steps {
		t.Add(s)
	}
}

// Len returns the number of steps.
func (t *Trace) Len() int { return len(t.steps) }

// Steps returns a copy of the steps in order.
func (t *Trace) Steps() []Step {
	out := make([]Step, len(t.steps))
	for i, s := range t.steps {
		out[i] = s.clone()
	}
	return out
}

// Warnings returns the warning steps in order.
func (t *Trace) Warnings() []Step {
	var out []Step
	for _, s := range t.steps {
		if s.Level == Warning {
			out = append(out, s.clone())
		}
	}
	return out
}

// Fingerprint returns a name-based UUID of the trace content. Identical
// derivations produce identical fingerprints.
func (t *Trace) Fingerprint() uuid.UUID {
	var b strings.Builder
	for _, s := range t.steps {
		s.write(&b)
	}
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(b.String()))
}

func (s Step) clone() Step {
	if s.Variables != nil {
		vars := make(map[string]string, len(s.Variables))
		for k, v := range s.Variables {
			vars[k] = v
		}
		s.Variables = vars
	}
	return s
}

func (s Step) write(b *strings.Builder) {
	fmt.Fprintf(b, "%d\x1f%s\x1f%s\x1f%s\x1f%s\x1f%s\x1f%s", s.Level, s.Description, s.Reference,
		s.Formula, s.Substitution, s.Result, s.Conclusion)
	for _, k := range s.VariableNames() {
		fmt.Fprintf(b, "\x1f%s=%s", k, s.Variables[k])
	}
	b.WriteByte('\x1e')
}

// VariableNames returns the variable symbols in sorted order.
func (s Step) VariableNames() []string {
	keys := make([]string, 0, len(s.Variables))
	for k := range s.Variables {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// String renders the step on one or more lines.
func (s Step) String() string {
	var b strings.Builder
	if s.Level == Warning {
		b.WriteString("[WARNING] ")
	}
	b.WriteString(s.Description)
	if s.Reference != "" {
		fmt.Fprintf(&b, " (%s)", s.Reference)
	}
	for _, k := range s.VariableNames() {
		fmt.Fprintf(&b, "\n    %s = %s", k, s.Variables[k])
	}
	if s.Formula != "" {
		fmt.Fprintf(&b, "\n    %s", s.Formula)
	}
	if s.Substitution != "" {
		fmt.Fprintf(&b, "\n    %s", s.Substitution)
	}
	if s.Result != "" {
		fmt.Fprintf(&b, "\n    = %s", s.Result)
	}
	if s.Conclusion != "" {
		fmt.Fprintf(&b, "\n    -> %s", s.Conclusion)
	}
	return b.String()
}
