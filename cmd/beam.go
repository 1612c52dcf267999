package cmd

import (
	"fmt"
	"os"

	"github.com/alexiusacademia/gosteel/internal/beam"
	"github.com/alexiusacademia/gosteel/internal/diagram"
	"github.com/alexiusacademia/gosteel/internal/fea"
	"github.com/alexiusacademia/gosteel/internal/limitstate"
	"github.com/alexiusacademia/gosteel/internal/units"
	"github.com/spf13/cobra"
)

var (
	beamSection  string
	beamSteel    string
	beamLength   string
	beamAxis     string
	beamCb       float64
	beamMoment   string
	beamEnvelope string

	// Diagram options
	beamPlot   bool
	beamExport string
)

var beamCmd = &cobra.Command{
	Use:   "beam",
	Short: "Flexural capacity of a steel beam",
	Long: `Calculate the flexural capacity (φMn) of a rolled steel beam
including lateral-torsional buckling.

The check follows AISC 360-16 Chapter F:
  - F2-1: Plastic moment Mp = Fy·Zx (Zone 1, Lb ≤ Lp)
  - F2-2: Inelastic LTB with linear interpolation (Zone 2, Lp < Lb ≤ Lr)
  - F2-3/F2-4: Elastic LTB, Fcr·Sx (Zone 3, Lb > Lr)
  - F6: Weak-axis bending, min(Fy·Zy, 1.6Fy·Sy)

The demand moment may be given directly (--moment) or read from a
frame analysis envelope (--envelope, JSON in N·m and N).

Examples:
  gosteel beam --section W18X50 --length 10ft --moment 300kip-ft
  gosteel beam -s W12X26 -L 8m --cb 1.14 --trace
  gosteel beam -s W18X50 -L 3.5m --envelope member-12.json
  gosteel beam -s W18X50 -L 4m --plot --export ltb.svg`,
	Run: runBeam,
}

func init() {
	rootCmd.AddCommand(beamCmd)

	beamCmd.Flags().StringVarP(&beamSection, "section", "s", "", "Shape designation, e.g. W18X50 [required]")
	beamCmd.Flags().StringVar(&beamSteel, "steel", "", "Steel grade (default from config)")
	beamCmd.Flags().StringVarP(&beamLength, "length", "L", "", "Unbraced length Lb [required]")
	beamCmd.Flags().StringVar(&beamAxis, "axis", "strong", "Bending axis (strong, weak)")
	beamCmd.Flags().Float64Var(&beamCb, "cb", 0, "Moment gradient factor Cb (default from config)")
	beamCmd.Flags().StringVarP(&beamMoment, "moment", "M", "", "Factored moment Mu to check (bare numbers are kN·m)")
	beamCmd.Flags().StringVarP(&beamEnvelope, "envelope", "e", "", "Frame analysis envelope JSON to take Mu from")

	beamCmd.Flags().BoolVar(&beamPlot, "plot", false, "Show ASCII capacity curve φMn vs Lb")
	beamCmd.Flags().StringVarP(&beamExport, "export", "o", "", "Export capacity curve to file (png, svg, pdf)")

	beamCmd.MarkFlagRequired("section")
	beamCmd.MarkFlagRequired("length")
}

// envelopeMoment reads the governing moment from a solver envelope file.
func envelopeMoment(path string) (units.Quantity, error) {
	f, err := os.Open(path)
	if err != nil {
		return units.Quantity{}, err
	}
	defer f.Close()
	env, err := fea.ReadEnvelope(f)
	if err != nil {
		return units.Quantity{}, fmt.Errorf("reading envelope %s: %w", path, err)
	}
	return env.Demand().Moment, nil
}

func runBeam(cmd *cobra.Command, args []string) {
	ws, err := loadWorkspace()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	sec, err := ws.db.Lookup(beamSection)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	steel, err := ws.steel(beamSteel)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	lb, err := quantity("length", beamLength, units.MM)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	axis, err := beam.ParseAxis(beamAxis)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	if beamMoment != "" && beamEnvelope != "" {
		fmt.Println("Error: --moment and --envelope are mutually exclusive.")
		return
	}
	mu, err := quantity("moment", beamMoment, units.KNM)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	if beamEnvelope != "" {
		if mu, err = envelopeMoment(beamEnvelope); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
	}
	cb := beamCb
	if cb == 0 {
		cb = ws.cfg.Defaults.Cb
	}

	result, err := beam.EvaluateFlexure(beam.Input{
		Section:        sec,
		Material:       steel,
		UnbracedLength: lb,
		Axis:           axis,
		Cb:             cb,
	})
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	printBanner("BEAM FLEXURAL CAPACITY - AISC 360 CHAPTER F")

	printHeading("Input data")
	w := newTable()
	fmt.Fprintf(w, "  Section:\t%s (%s)\n", sec.Name(), sec.Type())
	fmt.Fprintf(w, "  Steel:\t%s, Fy = %s\n", steel.Name, steel.Fy.Format(units.MPa, 0))
	fmt.Fprintf(w, "  Unbraced length (Lb):\t%s\n", lb.Format(units.MM, 0))
	fmt.Fprintf(w, "  Axis:\t%s\n", axis)
	fmt.Fprintf(w, "  Cb:\t%.2f\n", cb)
	if beamEnvelope != "" {
		fmt.Fprintf(w, "  Envelope:\t%s\n", beamEnvelope)
	}
	w.Flush()
	fmt.Println()

	printCapacity(result, units.KNM)
	printWarnings(result.Trace)

	tr := result.Trace
	if !mu.IsZero() {
		c, err := limitstate.Check(limitstate.Flexure, mu, result)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		printCheck("FLEXURE CHECK  Mu ≤ φMn", c, units.KNM)
		tr = c.Trace
	} else {
		fmt.Printf("  ╔═══════════════════════════════════════════╗\n")
		fmt.Printf("  ║  DESIGN CAPACITY (φMn) = %s\n", result.Design.Format(units.KNM, 2))
		fmt.Printf("  ║                        = %s\n", result.Design.Format(units.KipFt, 1))
		fmt.Printf("  ╚═══════════════════════════════════════════╝\n")
		fmt.Println()
	}
	printTrace(tr)

	if (beamPlot || beamExport != "") && axis == beam.Strong {
		maxLb := lb.Scale(2)
		if lr, ok := result.Value("Lr"); ok && lr.SI() < 1e5 {
			if c, err := lr.Cmp(lb); err == nil && c > 0 {
				maxLb = lr.Scale(1.5)
			}
		}
		curve, err := diagram.BeamCurve(sec, steel, cb, maxLb, 60)
		if err != nil {
			fmt.Printf("Error generating curve: %v\n", err)
			return
		}
		if beamPlot {
			printHeading("Capacity curve")
			fmt.Println(diagram.ASCII(curve, 15, 60))
		}
		if beamExport != "" {
			if err := diagram.Export(curve, beamExport); err != nil {
				fmt.Printf("Error exporting diagram: %v\n", err)
				return
			}
			fmt.Printf("  Diagram exported to: %s\n\n", beamExport)
		}
	}
}
