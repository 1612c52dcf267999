package cmd

import (
	"fmt"

	"github.com/alexiusacademia/gosteel/internal/units"
	"github.com/spf13/cobra"
)

var materialCmd = &cobra.Command{
	Use:   "material",
	Short: "List steel and bolt grades",
	Long: `List the steel and bolt grades known to the material registry,
including any added by the configuration file.

Examples:
  gosteel material list
  gosteel material list --config project.toml`,
	Run: runMaterial,
}

var materialListCmd = &cobra.Command{
	Use:   "list",
	Short: "List steel and bolt grades",
	Run:   runMaterial,
}

func init() {
	rootCmd.AddCommand(materialCmd)
	materialCmd.AddCommand(materialListCmd)
}

func runMaterial(cmd *cobra.Command, args []string) {
	ws, err := loadWorkspace()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	printBanner("MATERIAL REGISTRY")

	printHeading("Steel grades")
	w := newTable()
	fmt.Fprintf(w, "  Name\tFy (MPa)\tFu (MPa)\tE (MPa)\n")
	fmt.Fprintf(w, "  ────\t────────\t────────\t───────\n")
	for _, s := range ws.reg.SteelGrades() {
		marker := ""
		if s.Name == ws.cfg.Defaults.Steel {
			marker = " ← DEFAULT"
		}
		fmt.Fprintf(w, "  %s\t%.0f\t%.0f\t%.0f%s\n", s.Name,
			s.Fy.MustIn(units.MPa), s.Fu.MustIn(units.MPa), s.E.MustIn(units.MPa), marker)
	}
	w.Flush()
	fmt.Println()

	printHeading("Bolt grades")
	w = newTable()
	fmt.Fprintf(w, "  Name\tProof (MPa)\tFy (MPa)\tFu (MPa)\n")
	fmt.Fprintf(w, "  ────\t───────────\t────────\t────────\n")
	for _, b := range ws.reg.BoltGrades() {
		marker := ""
		if b.Name == ws.cfg.Defaults.Bolt {
			marker = " ← DEFAULT"
		}
		fmt.Fprintf(w, "  %s\t%.0f\t%.0f\t%.0f%s\n", b.Name,
			b.Proof.MustIn(units.MPa), b.Fy.MustIn(units.MPa), b.Fu.MustIn(units.MPa), marker)
	}
	w.Flush()
	fmt.Println()

	if len(ws.cfg.Concrete) > 0 {
		printHeading("Concrete classes")
		w = newTable()
		for _, c := range ws.cfg.Concrete {
			fmt.Fprintf(w, "  %s\tf'c = %.1f MPa\n", c.Name, c.Fc)
		}
		w.Flush()
		fmt.Println()
	}
}
