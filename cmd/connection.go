package cmd

import (
	"fmt"
	"strings"

	"github.com/alexiusacademia/gosteel/internal/connection"
	"github.com/alexiusacademia/gosteel/internal/limitstate"
	"github.com/alexiusacademia/gosteel/internal/ui"
	"github.com/alexiusacademia/gosteel/internal/units"
	"github.com/spf13/cobra"
)

var (
	connDemand   string
	connChecks   []string
	connBolts    int
	connDiameter string
	connPlanes   int
	connGrade    string
	connLayers   []string

	// Block shear path
	connAgv     string
	connAnv     string
	connAnt     string
	connUbs     float64
	connBSSteel string
)

var connectionCmd = &cobra.Command{
	Use:   "connection",
	Short: "Bolted shear connection checks",
	Long: `Check a bolted shear connection and report the governing limit state.

Checks (CSA S16-19 clause 13.11-13.12 / AISC J3, J4):
  bolt shear   - Vr = 0.60·φb·n·m·Ab·Fu
  bearing      - Br = 3·φbr·t·d·Fu, per clamped layer
  block shear  - Tr = φu(Ubs·An·Fu + 0.6·Agv·(Fy+Fu)/2)

Without --check every check with the required geometry is run.
Layers are given as name:thickness:steel (steel is optional).

Examples:
  gosteel connection --demand 150kN --bolts 4 --diameter 20mm --grade 8.8
  gosteel connection -V 250kN -n 3 -d 0.75in --layer "fin plate:10mm:A36" --layer "beam web:9mm"
  gosteel connection -V 300kN -n 3 --check "block shear" --agv 1668mm2 --anv 1194mm2 --ant 221mm2`,
	Run: runConnection,
}

func init() {
	rootCmd.AddCommand(connectionCmd)

	connectionCmd.Flags().StringVarP(&connDemand, "demand", "V", "", "Factored shear demand [required]")
	connectionCmd.Flags().StringSliceVar(&connChecks, "check", nil, "Checks to run: bolt shear, bearing, block shear")
	connectionCmd.Flags().IntVarP(&connBolts, "bolts", "n", 0, "Number of bolts [required]")
	connectionCmd.Flags().StringVarP(&connDiameter, "diameter", "d", "20mm", "Bolt diameter")
	connectionCmd.Flags().IntVar(&connPlanes, "planes", 1, "Shear planes per bolt")
	connectionCmd.Flags().StringVarP(&connGrade, "grade", "g", "", "Bolt grade (default from config)")
	connectionCmd.Flags().StringArrayVar(&connLayers, "layer", nil, "Clamped layer name:thickness[:steel] (repeatable)")

	connectionCmd.Flags().StringVar(&connAgv, "agv", "", "Block shear gross shear area")
	connectionCmd.Flags().StringVar(&connAnv, "anv", "", "Block shear net shear area")
	connectionCmd.Flags().StringVar(&connAnt, "ant", "", "Block shear net tension area")
	connectionCmd.Flags().Float64Var(&connUbs, "ubs", 1.0, "Block shear tension stress factor Ubs")
	connectionCmd.Flags().StringVar(&connBSSteel, "bs-steel", "", "Steel of the block shear element")

	connectionCmd.MarkFlagRequired("demand")
	connectionCmd.MarkFlagRequired("bolts")
}

// parseLayer reads name:thickness[:steel].
func parseLayer(ws *workspace, s string) (connection.Layer, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return connection.Layer{}, fmt.Errorf("invalid layer %q: want name:thickness[:steel]", s)
	}
	t, err := quantity("layer", parts[1], units.MM)
	if err != nil {
		return connection.Layer{}, err
	}
	grade := ""
	if len(parts) == 3 {
		grade = parts[2]
	}
	m, err := ws.steel(grade)
	if err != nil {
		return connection.Layer{}, err
	}
	return connection.Layer{Name: strings.TrimSpace(parts[0]), Thickness: t, Material: m}, nil
}

func runConnection(cmd *cobra.Command, args []string) {
	ws, err := loadWorkspace()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	demand, err := quantity("demand", connDemand, units.KN)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	d, err := quantity("diameter", connDiameter, units.MM)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	grade := connGrade
	if grade == "" {
		grade = ws.cfg.Defaults.Bolt
	}
	bolt, err := ws.reg.Bolt(grade)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	in := connection.Input{
		Demand: demand,
		Bolts: connection.BoltGroup{
			Count:       connBolts,
			Diameter:    d,
			ShearPlanes: connPlanes,
			Grade:       bolt,
		},
	}
	for _, c := range connChecks {
		in.Checks = append(in.Checks, limitstate.Mode(strings.TrimSpace(c)))
	}
	for _, s := range connLayers {
		l, err := parseLayer(ws, s)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		in.Layers = append(in.Layers, l)
	}
	if connAgv != "" || connAnv != "" || connAnt != "" {
		var p connection.BlockShearPath
		if p.Agv, err = quantity("agv", connAgv, units.MM2); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if p.Anv, err = quantity("anv", connAnv, units.MM2); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if p.Ant, err = quantity("ant", connAnt, units.MM2); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if p.Material, err = ws.steel(connBSSteel); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		p.Ubs = connUbs
		in.BlockShear = &p
	}

	result, err := connection.Evaluate(in)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	printBanner("BOLTED CONNECTION CHECK")

	printHeading("Input data")
	w := newTable()
	fmt.Fprintf(w, "  Shear demand (Vf):\t%s\n", demand.Format(units.KN, 2))
	fmt.Fprintf(w, "  Bolts:\t%d × %s %s, %d shear plane(s)\n", connBolts, d.Format(units.MM, 2), bolt.Name, connPlanes)
	for _, l := range in.Layers {
		fmt.Fprintf(w, "  Layer %s:\tt = %s, %s\n", l.Name, l.Thickness.Format(units.MM, 1), l.Material.Name)
	}
	w.Flush()
	fmt.Println()

	printGoverning(result)
	printTrace(result.Trace)
}

// printGoverning lists every check and boxes the governing one.
func printGoverning(g *limitstate.GoverningResult) {
	printHeading("Limit states")
	fmt.Print(ui.Checks(g))
	fmt.Println()
	fmt.Printf("  ╔═══════════════════════════════════════════════╗\n")
	fmt.Printf("  ║  GOVERNING: %s\n", g.Governing.Label)
	fmt.Printf("  ║  U = %s  %s\n", ui.Utilization(g.Utilization), ui.Badge(g.Status))
	fmt.Printf("  ╚═══════════════════════════════════════════════╝\n")
	fmt.Println()
}
