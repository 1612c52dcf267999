package cmd

import (
	"fmt"

	"github.com/alexiusacademia/gosteel/internal/connection"
	"github.com/alexiusacademia/gosteel/internal/units"
	"github.com/spf13/cobra"
)

var (
	finBeam      string
	finBeamSteel string
	finSteel     string
	finThickness string
	finRows      int
	finCols      int
	finSpacing   string
	finEdgeV     string
	finEdgeH     string
	finDiameter  string
	finGrade     string
	finShear     string
)

var finplateCmd = &cobra.Command{
	Use:   "finplate",
	Short: "Design check of a single-sided fin plate (shear tab)",
	Long: `Check a fin plate bolted to a beam web for bolt shear, bearing on
the plate and the web, and block shear of the beam web.

The beam web block shear path runs from the top edge down the bolt line
and out through the bottom bolt. Unset geometry takes the defaults:
3 rows at 75 mm, 35 mm edge distances, 3/4 in bolts.

Examples:
  gosteel finplate --beam W18X50 --shear 300kN --thickness 10mm
  gosteel finplate -b W12X26 -V 150kN --thickness 0.375in --rows 4 --grade A325`,
	Run: runFinplate,
}

func init() {
	rootCmd.AddCommand(finplateCmd)

	finplateCmd.Flags().StringVarP(&finBeam, "beam", "b", "", "Supported beam shape [required]")
	finplateCmd.Flags().StringVar(&finBeamSteel, "beam-steel", "", "Beam steel grade (default from config)")
	finplateCmd.Flags().StringVar(&finSteel, "plate-steel", "ASTM A36", "Plate steel grade")
	finplateCmd.Flags().StringVar(&finThickness, "thickness", "10mm", "Plate thickness")
	finplateCmd.Flags().IntVar(&finRows, "rows", 0, "Bolt rows (default 3)")
	finplateCmd.Flags().IntVar(&finCols, "cols", 0, "Bolt columns (default 1)")
	finplateCmd.Flags().StringVar(&finSpacing, "spacing", "", "Vertical bolt pitch (default 75mm)")
	finplateCmd.Flags().StringVar(&finEdgeV, "edge-v", "", "Vertical edge distance (default 35mm)")
	finplateCmd.Flags().StringVar(&finEdgeH, "edge-h", "", "Horizontal edge distance (default 35mm)")
	finplateCmd.Flags().StringVarP(&finDiameter, "diameter", "d", "", "Bolt diameter (default 3/4in)")
	finplateCmd.Flags().StringVarP(&finGrade, "grade", "g", "", "Bolt grade (default from config)")
	finplateCmd.Flags().StringVarP(&finShear, "shear", "V", "", "Factored end shear Vf [required]")

	finplateCmd.MarkFlagRequired("beam")
	finplateCmd.MarkFlagRequired("shear")
}

func runFinplate(cmd *cobra.Command, args []string) {
	ws, err := loadWorkspace()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	sec, err := ws.db.Lookup(finBeam)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	beamSteel, err := ws.steel(finBeamSteel)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	plateSteel, err := ws.steel(finSteel)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	grade := finGrade
	if grade == "" {
		grade = ws.cfg.Defaults.Bolt
	}
	bolt, err := ws.reg.Bolt(grade)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fp := connection.FinPlate{
		Beam:         sec,
		BeamMaterial: beamSteel,
		Plate:        plateSteel,
		Rows:         finRows,
		Cols:         finCols,
		BoltGrade:    bolt,
	}
	for _, f := range []struct {
		name  string
		value string
		dst   *units.Quantity
	}{
		{"thickness", finThickness, &fp.Thickness},
		{"spacing", finSpacing, &fp.Spacing},
		{"edge-v", finEdgeV, &fp.EdgeV},
		{"edge-h", finEdgeH, &fp.EdgeH},
		{"diameter", finDiameter, &fp.BoltDiameter},
	} {
		q, err := quantity(f.name, f.value, units.MM)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		*f.dst = q
	}
	vf, err := quantity("shear", finShear, units.KN)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	geom, err := fp.Geometry()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	result, err := fp.Evaluate(vf)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	printBanner("FIN PLATE CONNECTION CHECK")

	printHeading("Input data")
	w := newTable()
	fmt.Fprintf(w, "  Beam:\t%s, %s\n", sec.Name(), beamSteel.Name)
	fmt.Fprintf(w, "  Plate:\t%s thick, %s\n", fp.Thickness.Format(units.MM, 1), plateSteel.Name)
	fmt.Fprintf(w, "  Bolts:\t%d, %s\n", geom.Bolts, bolt.Name)
	fmt.Fprintf(w, "  End shear (Vf):\t%s\n", vf.Format(units.KN, 2))
	w.Flush()
	fmt.Println()

	printHeading("Geometry")
	w = newTable()
	fmt.Fprintf(w, "  Hole diameter:\t%s\n", geom.Hole.Format(units.MM, 2))
	fmt.Fprintf(w, "  Web thickness (tw):\t%s\n", geom.Web.Format(units.MM, 2))
	fmt.Fprintf(w, "  Shear length (Lgv):\t%s\n", geom.Lgv.Format(units.MM, 1))
	fmt.Fprintf(w, "  Agv:\t%s\n", geom.Agv.Format(units.MM2, 1))
	fmt.Fprintf(w, "  Anv:\t%s\n", geom.Anv.Format(units.MM2, 1))
	fmt.Fprintf(w, "  Ant:\t%s\n", geom.Ant.Format(units.MM2, 1))
	w.Flush()
	fmt.Println()

	printGoverning(result)
	printTrace(result.Trace)
}
