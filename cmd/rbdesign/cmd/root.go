package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var debugMode bool

var rootCmd = &cobra.Command{
	Use:   "rbdesign",
	Short: "Grid-based rigid-body assembly designer",
	Long: `rbdesign edits particle assemblies on a square grid and exports them
for simulation.

Examples:
  rbdesign edit                       start with a fresh design
  rbdesign edit crystal.rbd           edit an existing design
  rbdesign export -o init.xml --copies 16 crystal.rbd
  rbdesign info crystal.rbd`,
	Version: "0.9.0",
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&debugMode, "debug", "d", false, "enable canvas invariant checks and timing output")
}
