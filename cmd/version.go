package cmd

import (
	"fmt"

	"github.com/jjaramillod93/goshake/internal/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of goshake",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("goshake v%s\n", version.Version)
		fmt.Println("Nonlinear MDOF Seismic Response Tool")
		fmt.Println("Driven by an external OpenSees interpreter")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
