package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexiusacademia/gosteel/internal/limitstate"
	"github.com/alexiusacademia/gosteel/internal/trace"
)

// Badge renders a PASS or FAIL verdict.
func Badge(s limitstate.Status) string {
	text := "[" + string(s) + "]"
	if s == limitstate.Pass {
		return PassStyle.Bold(true).Render(text)
	}
	return FailStyle.Bold(true).Render(text)
}

// WarningBadge marks a warning line.
func WarningBadge() string {
	return WarnStyle.Bold(true).Render("[WARNING]")
}

// Header renders a section heading followed by a rule of the same width.
func Header(title string) string {
	rule := strings.Repeat("─", lipgloss.Width(title))
	return HeaderStyle.Render(title) + "\n" + RenderMuted(rule)
}

// Utilization renders a utilization ratio colored by its verdict. Ratios
// above 0.9 that still pass are shown as warnings.
func Utilization(u float64) string {
	text := fmt.Sprintf("%.3f", u)
	switch {
	case u > 1.0:
		return RenderFail(text)
	case u > 0.9:
		return RenderWarn(text)
	default:
		return RenderPass(text)
	}
}

// Step renders one derivation step, indented under its description.
func Step(i int, s trace.Step) string {
	var b strings.Builder
	title := fmt.Sprintf("%d. %s", i, s.Description)
	if s.Level == trace.Warning {
		title = WarningBadge() + " " + s.Description
	}
	b.WriteString(RenderBold(title))
	if s.Reference != "" {
		b.WriteString(" " + RenderMuted("("+s.Reference+")"))
	}
	b.WriteString("\n")
	for _, k := range s.VariableNames() {
		fmt.Fprintf(&b, "   %s = %s\n", k, s.Variables[k])
	}
	if s.Formula != "" {
		fmt.Fprintf(&b, "   %s\n", RenderAccent(s.Formula))
	}
	if s.Substitution != "" {
		fmt.Fprintf(&b, "   %s\n", s.Substitution)
	}
	if s.Result != "" {
		fmt.Fprintf(&b, "   = %s\n", RenderBold(s.Result))
	}
	if s.Conclusion != "" {
		fmt.Fprintf(&b, "   → %s\n", s.Conclusion)
	}
	return b.String()
}

// Trace renders every step of tr in order. Warnings keep their position in
// the derivation and are not numbered.
func Trace(tr *trace.Trace) string {
	if tr == nil || tr.Len() == 0 {
		return RenderMuted("(no derivation steps)") + "\n"
	}
	var b strings.Builder
	n := 0
	for _, s := range tr.Steps() {
		if s.Level != trace.Warning {
			n++
		}
		b.WriteString(Step(n, s))
	}
	return b.String()
}

// Checks renders one line per check with its utilization and verdict, and
// marks the governing check.
func Checks(g *limitstate.GoverningResult) string {
	var b strings.Builder
	width := 0
	for _, c := range g.Checks {
		if n := lipgloss.Width(c.Label); n > width {
			width = n
		}
	}
	for _, c := range g.Checks {
		marker := "  "
		if c.Label == g.Governing.Label && c.Mode == g.Governing.Mode {
			marker = RenderAccent("▶ ")
		}
		pad := strings.Repeat(" ", width-lipgloss.Width(c.Label))
		fmt.Fprintf(&b, "%s%s%s  %s / %s  U = %s  %s\n", marker, c.Label, pad,
			c.Demand, c.Capacity, Utilization(c.Utilization), Badge(c.Status))
	}
	return b.String()
}
