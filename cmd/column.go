package cmd

import (
	"fmt"

	"github.com/alexiusacademia/gosteel/internal/column"
	"github.com/alexiusacademia/gosteel/internal/diagram"
	"github.com/alexiusacademia/gosteel/internal/limitstate"
	"github.com/alexiusacademia/gosteel/internal/provisions"
	"github.com/alexiusacademia/gosteel/internal/units"
	"github.com/spf13/cobra"
)

var (
	columnSection string
	columnSteel   string
	columnLength  string
	columnTop     string
	columnBottom  string
	columnK       float64
	columnLoad    string

	// Diagram options
	columnPlot   bool
	columnExport string
)

var columnCmd = &cobra.Command{
	Use:   "column",
	Short: "Axial compression capacity of a steel column",
	Long: `Calculate the compression capacity (φPn) of a steel column by
flexural buckling about both principal axes.

The check follows AISC 360-16 Chapter E:
  - Table C-A-7.1: Effective length factor from end conditions
  - E3-2: Inelastic buckling, KL/r ≤ 4.71√(E/Fy)
  - E3-3: Elastic buckling, Fcr = 0.877Fe

Lengths and loads accept units (4m, 13ft, 1500kN, 300kip).
Bare numbers are mm and kN.

Examples:
  gosteel column --section W14X90 --length 4m --top pinned --bottom fixed
  gosteel column -s W14X90 -L 13ft --load 1500kN --trace
  gosteel column -s W8X31 -L 3m --plot --export column.png`,
	Run: runColumn,
}

func init() {
	rootCmd.AddCommand(columnCmd)

	columnCmd.Flags().StringVarP(&columnSection, "section", "s", "", "Shape designation, e.g. W14X90 [required]")
	columnCmd.Flags().StringVar(&columnSteel, "steel", "", "Steel grade (default from config)")
	columnCmd.Flags().StringVarP(&columnLength, "length", "L", "", "Unbraced length [required]")
	columnCmd.Flags().StringVar(&columnTop, "top", "pinned", "Top end condition (fixed, pinned, rolled, free)")
	columnCmd.Flags().StringVar(&columnBottom, "bottom", "pinned", "Bottom end condition (fixed, pinned, rolled, free)")
	columnCmd.Flags().Float64Var(&columnK, "k", 0, "Effective length factor override")
	columnCmd.Flags().StringVarP(&columnLoad, "load", "P", "", "Factored axial load Pu to check")

	columnCmd.Flags().BoolVar(&columnPlot, "plot", false, "Show ASCII capacity curve φPn vs length")
	columnCmd.Flags().StringVarP(&columnExport, "export", "o", "", "Export capacity curve to file (png, svg, pdf)")

	columnCmd.MarkFlagRequired("section")
	columnCmd.MarkFlagRequired("length")
}

func runColumn(cmd *cobra.Command, args []string) {
	ws, err := loadWorkspace()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	sec, err := ws.db.Lookup(columnSection)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	steel, err := ws.steel(columnSteel)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	length, err := quantity("length", columnLength, units.MM)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	load, err := quantity("load", columnLoad, units.KN)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	top, err := provisions.ParseEndCondition(columnTop)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	bottom, err := provisions.ParseEndCondition(columnBottom)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	result, err := column.EvaluateCompression(column.Input{
		Section:  sec,
		Material: steel,
		Length:   length,
		Top:      top,
		Bottom:   bottom,
		K:        columnK,
	})
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	printBanner("COLUMN COMPRESSION CAPACITY - AISC 360 CHAPTER E")

	printHeading("Input data")
	w := newTable()
	fmt.Fprintf(w, "  Section:\t%s (%s)\n", sec.Name(), sec.Type())
	fmt.Fprintf(w, "  Steel:\t%s, Fy = %s\n", steel.Name, steel.Fy.Format(units.MPa, 0))
	fmt.Fprintf(w, "  Length (L):\t%s\n", length.Format(units.MM, 0))
	fmt.Fprintf(w, "  End conditions:\t%s / %s\n", top, bottom)
	if columnK > 0 {
		fmt.Fprintf(w, "  K (override):\t%.2f\n", columnK)
	}
	w.Flush()
	fmt.Println()

	printCapacity(result, units.KN)
	printWarnings(result.Trace)

	tr := result.Trace
	if !load.IsZero() {
		c, err := limitstate.Check(limitstate.Compression, load, result)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		printCheck("COMPRESSION CHECK  Pu ≤ φPn", c, units.KN)
		tr = c.Trace
	} else {
		fmt.Printf("  ╔═══════════════════════════════════════════╗\n")
		fmt.Printf("  ║  DESIGN CAPACITY (φPn) = %s\n", result.Design.Format(units.KN, 2))
		fmt.Printf("  ╚═══════════════════════════════════════════╝\n")
		fmt.Println()
	}
	printTrace(tr)

	if columnPlot || columnExport != "" {
		maxL := length.Scale(2)
		curve, err := diagram.ColumnCurve(sec, steel, top, bottom, columnK, maxL, 40)
		if err != nil {
			fmt.Printf("Error generating curve: %v\n", err)
			return
		}
		if columnPlot {
			printHeading("Capacity curve")
			fmt.Println(diagram.ASCII(curve, 15, 60))
		}
		if columnExport != "" {
			if err := diagram.Export(curve, columnExport); err != nil {
				fmt.Printf("Error exporting diagram: %v\n", err)
				return
			}
			fmt.Printf("  Diagram exported to: %s\n\n", columnExport)
		}
	}
}
