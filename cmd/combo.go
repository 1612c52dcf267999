package cmd

import (
	"fmt"
	"strings"

	"github.com/alexiusacademia/gosteel/internal/provisions"
	"github.com/alexiusacademia/gosteel/internal/units"
	"github.com/spf13/cobra"
)

var (
	// Unfactored effects. Bare numbers are kN·m.
	comboDead       string
	comboLive       string
	comboRoof       string
	comboSnow       string
	comboWind       string
	comboEarthquake string

	// Options
	comboSet     string
	comboShowAll bool
)

var comboCmd = &cobra.Command{
	Use:   "combo",
	Short: "Governing factored effect from strength load combinations",
	Long: `Calculate the governing factored effect from the LRFD load combinations.

Provide unfactored effects (moment, shear or axial force) from each load
type. All effects must share one kind: mixing a moment with a force is
an error. Bare numbers are taken as kN·m.

Load Types:
  D  - Dead load
  L  - Live load
  Lr - Roof live load
  S  - Snow load
  W  - Wind load
  E  - Earthquake load

Combination sets:
  asce7   - ASCE 7-16 2.3.1 (used with AISC 360, alias aisc, lrfd)
  nbcc    - NBCC 2020 Table 4.1.3.2.-A (used with CSA S16, alias csa)
  gravity - 1.4D and 1.2D + 1.6L

Examples:
  # Simple gravity loads (dead + live)
  gosteel combo --dead 50 --live 30

  # Axial forces with wind, all combinations
  gosteel combo --dead 400kN --live 250kN --wind 80kN --all

  # CSA combinations in kip·ft
  gosteel combo -d 40kip-ft -l 25kip-ft -S 10kip-ft --set nbcc`,
	Run: runCombo,
}

func init() {
	rootCmd.AddCommand(comboCmd)

	comboCmd.Flags().StringVarP(&comboDead, "dead", "d", "", "Effect of dead load")
	comboCmd.Flags().StringVarP(&comboLive, "live", "l", "", "Effect of live load")
	comboCmd.Flags().StringVarP(&comboRoof, "roof", "r", "", "Effect of roof live load")
	comboCmd.Flags().StringVarP(&comboSnow, "snow", "S", "", "Effect of snow load")
	comboCmd.Flags().StringVarP(&comboWind, "wind", "w", "", "Effect of wind load")
	comboCmd.Flags().StringVarP(&comboEarthquake, "earthquake", "e", "", "Effect of earthquake load")

	comboCmd.Flags().StringVar(&comboSet, "set", "asce7", "Combination set (asce7, nbcc, gravity)")
	comboCmd.Flags().BoolVarP(&comboShowAll, "all", "a", false, "Show all load combination results")
}

func runCombo(cmd *cobra.Command, args []string) {
	var effects provisions.LoadEffects
	for _, f := range []struct {
		name  string
		value string
		dst   *units.Quantity
	}{
		{"dead", comboDead, &effects.Dead},
		{"live", comboLive, &effects.Live},
		{"roof", comboRoof, &effects.Roof},
		{"snow", comboSnow, &effects.Snow},
		{"wind", comboWind, &effects.Wind},
		{"earthquake", comboEarthquake, &effects.Earthquake},
	} {
		q, err := quantity(f.name, f.value, units.KNM)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		*f.dst = q
	}

	loads := []struct {
		label string
		q     units.Quantity
	}{
		{"Dead Load (D)", effects.Dead},
		{"Live Load (L)", effects.Live},
		{"Roof Live Load (Lr)", effects.Roof},
		{"Snow Load (S)", effects.Snow},
		{"Wind Load (W)", effects.Wind},
		{"Earthquake Load (E)", effects.Earthquake},
	}
	given := false
	for _, l := range loads {
		if !l.q.IsZero() {
			given = true
		}
	}
	if !given {
		fmt.Println("Error: Please provide at least one unfactored effect.")
		fmt.Println("Use 'gosteel combo --help' for usage information.")
		return
	}

	combinations, ok := provisions.Combinations(strings.ToLower(comboSet))
	if !ok {
		fmt.Printf("Error: unknown combination set %q\n", comboSet)
		return
	}

	maxU, governing, err := provisions.GoverningEffect(effects, combinations)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	unit := units.DisplayUnit(maxU.Dim())

	printBanner("FACTORED LOAD EFFECT - " + strings.ToUpper(comboSet))

	printHeading(fmt.Sprintf("Unfactored effects (%s)", unit.Symbol))
	w := newTable()
	for _, l := range loads {
		if !l.q.IsZero() {
			fmt.Fprintf(w, "  %s:\t%.2f\n", l.label, l.q.MustIn(unit))
		}
	}
	w.Flush()
	fmt.Println()

	if comboShowAll {
		printHeading("Load combinations")
		w = newTable()
		fmt.Fprintf(w, "  #\tCombination\tU (%s)\n", unit.Symbol)
		fmt.Fprintf(w, "  ─\t───────────\t─────────\n")

		for _, combo := range combinations {
			u, err := combo.Factored(effects)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
			marker := ""
			if combo.ID == governing.ID {
				marker = " ← GOVERNS"
			}
			fmt.Fprintf(w, "  %s\t%s\t%.2f%s\n", combo.ID, combo.Description, u.MustIn(unit), marker)
		}
		w.Flush()
		fmt.Println()
	}

	printHeading("Result")
	fmt.Printf("  Governing Combination: %s (%s)\n", governing.ID, governing.Description)
	fmt.Println()
	fmt.Printf("  ╔═══════════════════════════════════╗\n")
	fmt.Printf("  ║  FACTORED EFFECT (U) = %s\n", maxU.Format(unit, 2))
	fmt.Printf("  ╚═══════════════════════════════════╝\n")
	fmt.Println()
}
