package cmd

import (
	"fmt"
	"os"

	"github.com/alexiusacademia/gosteel/internal/version"
	"github.com/spf13/cobra"
)

var (
	configFile string
	showTrace  bool
)

var rootCmd = &cobra.Command{
	Use:   "gosteel",
	Short: "Structural Steel Limit-State Checks",
	Long: `gosteel - Go Structural Steel Checker

A CLI tool for limit-state checks of structural steel members and
bolted connections based on AISC 360 and CSA S16.

This tool helps structural engineers perform:
  - Column compression capacity (flexural buckling)
  - Beam flexural capacity including lateral-torsional buckling
  - Bolted connection checks (bolt shear, bearing, block shear)
  - Fin plate and base plate design
  - Lightest-section selection from the shape database

Every result carries a step-by-step derivation (use --trace).`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println()
		fmt.Println("  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Println("  ║                                                           ║")
		fmt.Printf("  ║   gosteel v%-47s║\n", version.Version)
		fmt.Println("  ║   Go Structural Steel Checker                             ║")
		fmt.Printf("  ║   %s ©  %-36s║\n", version.Author, version.Year)
		fmt.Println("  ║                                                           ║")
		fmt.Println("  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Println()
		fmt.Println("  A CLI tool for limit-state checks of structural steel members")
		fmt.Println("  and bolted connections (AISC 360 / CSA S16).")
		fmt.Println()
		fmt.Println("  Features:")
		fmt.Println("    • Column and beam capacity with derivation traces")
		fmt.Println("    • Bolted connection, fin plate and base plate checks")
		fmt.Println("    • Factored effects from load combinations")
		fmt.Println("    • Section selection, capacity curves and an HTTP API")
		fmt.Println()
		fmt.Println("  Use 'gosteel --help' to see available commands.")
		fmt.Println()
		fmt.Println("  ─────────────────────────────────────────────────────────────")
		fmt.Printf("  Copyright © %s %s. All rights reserved.\n", version.Year, version.Author)
		fmt.Println()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default gosteel.toml, or $GOSTEEL_CONFIG)")
	rootCmd.PersistentFlags().BoolVarP(&showTrace, "trace", "t", false, "Print the full derivation trace")
}
