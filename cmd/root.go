package cmd

import (
	"fmt"
	"os"

	"github.com/jjaramillod93/goshake/internal/version"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "goshake",
	Short: "Nonlinear MDOF Seismic Response Tool",
	Long: `goshake - Go Seismic Time-History Analysis

A CLI tool for nonlinear dynamic (time history) analysis of
multi-degree-of-freedom shear buildings, driven by an external
OpenSees interpreter.

This tool helps earthquake engineers perform:
  - Nonlinear time-history analysis with bilinear story springs
  - Modal analysis and Rayleigh damping calibration
  - Ground motion record inspection and scaling
  - Response plotting with annotated peaks

The finite-element work itself is delegated to OpenSees; goshake
builds the model, steps the transient analysis and reports the
response.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println()
		fmt.Println("  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Println("  ║                                                           ║")
		fmt.Printf("  ║   goshake v%-47s║\n", version.Version)
		fmt.Println("  ║   Go Seismic Time-History Analysis                        ║")
		fmt.Println("  ║                                                           ║")
		fmt.Println("  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Println()
		fmt.Println("  Nonlinear dynamic analysis of MDOF shear buildings,")
		fmt.Println("  driven by an external OpenSees interpreter.")
		fmt.Println()
		fmt.Println("  Features:")
		fmt.Println("    • Bilinear hysteretic story springs with strain hardening")
		fmt.Println("    • Rayleigh damping calibrated at the two lowest modes")
		fmt.Println("    • Newmark time stepping with Newton iteration")
		fmt.Println("    • Response figures, CSV and spreadsheet export")
		fmt.Println()
		fmt.Println("  Use 'goshake --help' to see available commands.")
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
}
