package cmd

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"text/tabwriter"

	"github.com/alexiusacademia/gosteel/internal/config"
	"github.com/alexiusacademia/gosteel/internal/limitstate"
	"github.com/alexiusacademia/gosteel/internal/material"
	"github.com/alexiusacademia/gosteel/internal/section"
	"github.com/alexiusacademia/gosteel/internal/trace"
	"github.com/alexiusacademia/gosteel/internal/ui"
	"github.com/alexiusacademia/gosteel/internal/units"
)

const (
	rule   = "───────────────────────────────────────────────────────────────"
	banner = "═══════════════════════════════════════════════════════════════"
)

// workspace is the configuration and registries shared by every command.
type workspace struct {
	cfg *config.Config
	reg *material.Registry
	db  *section.Database
}

var loadWorkspace = sync.OnceValues(func() (*workspace, error) {
	if err := config.LoadEnv(); err != nil {
		return nil, err
	}
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}
	reg, err := cfg.Registry()
	if err != nil {
		return nil, err
	}
	db, err := cfg.Shapes()
	if err != nil {
		return nil, fmt.Errorf("loading shape database: %w", err)
	}
	return &workspace{cfg: cfg, reg: reg, db: db}, nil
})

// steel resolves a grade name, falling back to the configured default.
func (ws *workspace) steel(name string) (material.Steel, error) {
	if name == "" {
		name = ws.cfg.Defaults.Steel
	}
	return ws.reg.Steel(name)
}

// quantity parses a flag value such as "10ft" or "150kN". A bare number is
// taken in def.
func quantity(flag, value string, def units.Unit) (units.Quantity, error) {
	if value == "" {
		return units.New(0, def), nil
	}
	q, err := units.Parse(value, def)
	if err != nil {
		return units.Quantity{}, fmt.Errorf("--%s: %w", flag, err)
	}
	return q, nil
}

func newTable() *tabwriter.Writer {
	return tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
}

func printBanner(title string) {
	fmt.Println()
	fmt.Println(banner)
	fmt.Printf("     %s\n", title)
	fmt.Println(banner)
	fmt.Println()
}

func printHeading(title string) {
	fmt.Println(ui.HeaderStyle.Render(strings.ToUpper(title) + ":"))
	fmt.Println(rule)
}

// printCapacity lists the nominal and design capacity and the intermediate
// values of a member result.
func printCapacity(r *limitstate.CapacityResult, unit units.Unit) {
	printHeading("Capacity")
	w := newTable()
	fmt.Fprintf(w, "  Regime:\t%s\n", r.Regime)
	if r.Axis != "" {
		fmt.Fprintf(w, "  Governing axis:\t%s\n", r.Axis)
	}
	for _, k := range r.Symbols() {
		q := r.Intermediate[k]
		fmt.Fprintf(w, "  %s:\t%s\n", k, q.Format(units.DisplayUnit(q.Dim()), 2))
	}
	fmt.Fprintf(w, "  Nominal:\t%s\n", r.Nominal.Format(unit, 2))
	fmt.Fprintf(w, "  Design:\t%s\n", r.Design.Format(unit, 2))
	w.Flush()
	fmt.Println()
}

// printCheck draws the result box of a single demand/capacity check.
func printCheck(title string, c limitstate.CheckResult, unit units.Unit) {
	fmt.Printf("  ╔═══════════════════════════════════════════════╗\n")
	fmt.Printf("  ║  %s\n", title)
	fmt.Printf("  ║  Demand    = %s\n", c.Demand.Format(unit, 2))
	fmt.Printf("  ║  Capacity  = %s\n", c.Capacity.Format(unit, 2))
	fmt.Printf("  ║  U         = %s  %s\n", ui.Utilization(c.Utilization), ui.Badge(c.Status))
	fmt.Printf("  ╚═══════════════════════════════════════════════╝\n")
	fmt.Println()
}

// printWarnings lists the warning steps of tr.
func printWarnings(tr *trace.Trace) {
	if tr == nil {
		return
	}
	ws := tr.Warnings()
	if len(ws) == 0 {
		return
	}
	printHeading("Warnings")
	for _, s := range ws {
		fmt.Printf("  %s %s\n", ui.WarningBadge(), s.Description)
		if s.Conclusion != "" {
			fmt.Printf("    %s\n", s.Conclusion)
		}
	}
	fmt.Println()
}

// printTrace prints the full derivation when --trace is set.
func printTrace(tr *trace.Trace) {
	if !showTrace || tr == nil {
		return
	}
	printHeading("Derivation")
	fmt.Print(ui.Trace(tr))
	fmt.Printf("  %s\n\n", ui.RenderMuted("fingerprint "+tr.Fingerprint().String()))
}
