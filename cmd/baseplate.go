package cmd

import (
	"fmt"

	"github.com/alexiusacademia/gosteel/internal/baseplate"
	"github.com/alexiusacademia/gosteel/internal/diagram"
	"github.com/alexiusacademia/gosteel/internal/material"
	"github.com/alexiusacademia/gosteel/internal/ui"
	"github.com/alexiusacademia/gosteel/internal/units"
	"github.com/spf13/cobra"
)

var (
	bpColumn   string
	bpLoad     string
	bpSteel    string
	bpConcrete string
	bpWidth    string
	bpLength   string
	bpImperial bool
)

var baseplateCmd = &cobra.Command{
	Use:   "baseplate",
	Short: "Column base plate design for axial compression",
	Long: `Size a column base plate for concentric axial compression.

The plate defaults to the column footprint plus 50 mm on every side.
Concrete bearing is checked against 0.85·φc·f'c and the required
thickness t = l·√(2Pu/(0.9·Fy·A1)) is rounded up to the next stock plate.

Examples:
  gosteel baseplate --column W8X31 --load 1000kN --steel A36 --concrete 25MPa
  gosteel baseplate -c W14X90 -P 600kip --width 20in --length 20in --imperial`,
	Run: runBaseplate,
}

func init() {
	rootCmd.AddCommand(baseplateCmd)

	baseplateCmd.Flags().StringVarP(&bpColumn, "column", "c", "", "Column shape [required]")
	baseplateCmd.Flags().StringVarP(&bpLoad, "load", "P", "", "Factored axial load Pu [required]")
	baseplateCmd.Flags().StringVar(&bpSteel, "steel", "ASTM A36", "Plate steel grade")
	baseplateCmd.Flags().StringVar(&bpConcrete, "concrete", "", "Concrete class or f'c (default from config)")
	baseplateCmd.Flags().StringVar(&bpWidth, "width", "", "Plate width B (default bf + 100 mm)")
	baseplateCmd.Flags().StringVar(&bpLength, "length", "", "Plate length N (default d + 100 mm)")
	baseplateCmd.Flags().BoolVar(&bpImperial, "imperial", false, "Round to imperial stock thicknesses")

	baseplateCmd.MarkFlagRequired("column")
	baseplateCmd.MarkFlagRequired("load")
}

func runBaseplate(cmd *cobra.Command, args []string) {
	ws, err := loadWorkspace()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	col, err := ws.db.Lookup(bpColumn)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	steel, err := ws.steel(bpSteel)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	conc, err := ws.cfg.ConcreteClass(ws.reg, bpConcrete)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	load, err := quantity("load", bpLoad, units.KN)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	width, err := quantity("width", bpWidth, units.MM)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	length, err := quantity("length", bpLength, units.MM)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	system, unit := material.Metric, units.MM
	if bpImperial {
		system, unit = material.Imperial, units.IN
	}

	result, err := baseplate.Design(baseplate.Input{
		Column:   col,
		Load:     load,
		Steel:    steel,
		Concrete: conc,
		Width:    width,
		Length:   length,
		Stock:    material.DefaultStock(),
		System:   system,
	})
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	printBanner("COLUMN BASE PLATE DESIGN")

	printHeading("Input data")
	w := newTable()
	fmt.Fprintf(w, "  Column:\t%s\n", col.Name())
	fmt.Fprintf(w, "  Axial load (Pu):\t%s\n", load.Format(units.KN, 2))
	fmt.Fprintf(w, "  Plate steel:\t%s, Fy = %s\n", steel.Name, steel.Fy.Format(units.MPa, 0))
	fmt.Fprintf(w, "  Concrete:\t%s, φc = %.2f\n", conc.Name, conc.Phi)
	w.Flush()
	fmt.Println()

	printHeading("Plate")
	w = newTable()
	fmt.Fprintf(w, "  B × N:\t%s × %s\n", result.Width.Format(units.MM, 0), result.Length.Format(units.MM, 0))
	fmt.Fprintf(w, "  m:\t%s\n", result.CantileverM.Format(units.MM, 1))
	fmt.Fprintf(w, "  n:\t%s\n", result.CantileverN.Format(units.MM, 1))
	fmt.Fprintf(w, "  l (governing):\t%s\n", result.Cantilever.Format(units.MM, 1))
	fmt.Fprintf(w, "  Concrete bearing U:\t%s %s\n", ui.Utilization(result.Bearing.Utilization), ui.Badge(result.Bearing.Status))
	w.Flush()
	fmt.Println()

	printWarnings(result.Trace)

	lines := []string{
		fmt.Sprintf("Plate:        %s × %s", result.Width.Format(units.MM, 0), result.Length.Format(units.MM, 0)),
		fmt.Sprintf("t required:   %s", result.Required.Format(unit, 3)),
		fmt.Sprintf("t standard:   %s", result.Standard.Format(unit, 3)),
		fmt.Sprintf("Status:       %s", result.Status),
	}
	if !result.Stocked {
		lines = append(lines, "(not from stock list)")
	}
	fmt.Print(diagram.SummaryBox("BASE PLATE", lines))
	fmt.Println()
	printTrace(result.Trace)
}
