package cmd

import (
	"fmt"
	"strings"

	"github.com/alexiusacademia/gosteel/internal/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of gosteel",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("gosteel v%s\n", version.Version)
		fmt.Println("Structural Steel Limit-State Checks")
		fmt.Printf("Based on %s\n", strings.Join(version.Codes, " and "))
		fmt.Printf("Build: %s (commit %s)\n", version.BuildTime, version.GitCommit)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
