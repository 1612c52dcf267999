package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/alexiusacademia/gosteel/internal/provisions"
	"github.com/alexiusacademia/gosteel/internal/section"
	"github.com/alexiusacademia/gosteel/internal/selection"
	"github.com/alexiusacademia/gosteel/internal/ui"
	"github.com/alexiusacademia/gosteel/internal/units"
	"github.com/spf13/cobra"
)

var (
	selectType    string
	selectSteel   string
	selectLength  string
	selectShowAll bool

	selectCb     float64
	selectMoment string

	selectTop    string
	selectBottom string
	selectLoad   string
)

var selectCmd = &cobra.Command{
	Use:   "select",
	Short: "Find the lightest adequate shape",
	Long: `Check every shape of a family and report the lightest one that
passes. Candidates are evaluated in parallel.

Subcommands:
  beam    - Strong-axis flexure including LTB
  column  - Axial compression`,
}

var selectBeamCmd = &cobra.Command{
	Use:   "beam",
	Short: "Lightest beam for a factored moment",
	Long: `Find the lightest shape whose φMn at the given unbraced length is at
least Mu.

Examples:
  gosteel select beam --length 6m --moment 250kN-m
  gosteel select beam -L 20ft -M 300kip-ft --cb 1.14 --type W`,
	Run: runSelectBeam,
}

var selectColumnCmd = &cobra.Command{
	Use:   "column",
	Short: "Lightest column for a factored axial load",
	Long: `Find the lightest shape whose φPn at the given length and end
conditions is at least Pu.

Examples:
  gosteel select column --length 4m --load 1500kN
  gosteel select column -L 14ft -P 600kip --top pinned --bottom fixed --type HP`,
	Run: runSelectColumn,
}

func init() {
	rootCmd.AddCommand(selectCmd)
	selectCmd.AddCommand(selectBeamCmd, selectColumnCmd)

	for _, c := range []*cobra.Command{selectBeamCmd, selectColumnCmd} {
		c.Flags().StringVar(&selectType, "type", "W", "Shape family")
		c.Flags().StringVar(&selectSteel, "steel", "", "Steel grade (default from config)")
		c.Flags().StringVarP(&selectLength, "length", "L", "", "Unbraced length [required]")
		c.Flags().BoolVarP(&selectShowAll, "all", "a", false, "List every candidate")
		c.MarkFlagRequired("length")
	}

	selectBeamCmd.Flags().Float64Var(&selectCb, "cb", 0, "Moment gradient factor Cb (default from config)")
	selectBeamCmd.Flags().StringVarP(&selectMoment, "moment", "M", "", "Factored moment Mu [required]")
	selectBeamCmd.MarkFlagRequired("moment")

	selectColumnCmd.Flags().StringVar(&selectTop, "top", "pinned", "Top end condition")
	selectColumnCmd.Flags().StringVar(&selectBottom, "bottom", "pinned", "Bottom end condition")
	selectColumnCmd.Flags().StringVarP(&selectLoad, "load", "P", "", "Factored axial load Pu [required]")
	selectColumnCmd.MarkFlagRequired("load")
}

func runSelectBeam(cmd *cobra.Command, args []string) {
	ws, err := loadWorkspace()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	steel, err := ws.steel(selectSteel)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	lb, err := quantity("length", selectLength, units.MM)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	mu, err := quantity("moment", selectMoment, units.KNM)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	cb := selectCb
	if cb == 0 {
		cb = ws.cfg.Defaults.Cb
	}
	runSelect(ws.db, "BEAM SELECTION", units.KNM, selection.BeamCheck(steel, lb, cb, mu))
}

func runSelectColumn(cmd *cobra.Command, args []string) {
	ws, err := loadWorkspace()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	steel, err := ws.steel(selectSteel)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	length, err := quantity("length", selectLength, units.MM)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	pu, err := quantity("load", selectLoad, units.KN)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	top, err := provisions.ParseEndCondition(selectTop)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	bottom, err := provisions.ParseEndCondition(selectBottom)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	runSelect(ws.db, "COLUMN SELECTION", units.KN, selection.ColumnCheck(steel, length, top, bottom, pu))
}

func runSelect(db *section.Database, title string, unit units.Unit, check selection.CheckFunc) {
	t, err := section.ParseShapeType(selectType)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	result, err := selection.Select(ctx, db, selection.Options{Type: t, Check: check})
	if err != nil && !errors.Is(err, selection.ErrNoPassingSection) {
		fmt.Printf("Error: %v\n", err)
		return
	}

	printBanner(title + " - " + string(t) + " SHAPES")

	if selectShowAll {
		printHeading("Candidates")
		w := newTable()
		fmt.Fprintf(w, "  Shape\tCapacity\tU\tStatus\n")
		fmt.Fprintf(w, "  ─────\t────────\t─\t──────\n")
		for _, o := range result.Outcomes {
			if o.Err != nil {
				fmt.Fprintf(w, "  %s\t-\t-\t%s\n", o.Name, ui.RenderMuted(o.Err.Error()))
				continue
			}
			fmt.Fprintf(w, "  %s\t%s\t%s\t%s\n", o.Name, o.Check.Capacity.Format(unit, 1),
				ui.Utilization(o.Check.Utilization), ui.Badge(o.Check.Status))
		}
		w.Flush()
		fmt.Println()
	}

	if result.Selected == nil {
		fmt.Printf("  %s %v\n\n", ui.RenderFail("No adequate shape:"), err)
		return
	}
	printCheck("SELECTED: "+result.Selected.Name, result.Selected.Check, unit)
	printTrace(result.Selected.Check.Trace)
}
