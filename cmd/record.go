package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jjaramillod93/goshake/internal/groundmotion"
	"github.com/jjaramillod93/goshake/internal/report"
	"github.com/jjaramillod93/goshake/internal/units"
)

var (
	recordDt    float64
	recordScale float64
	recordPlot  bool
)

var recordCmd = &cobra.Command{
	Use:   "record [file]",
	Short: "Inspect a ground motion record file",
	Long: `Read a ground motion record and report its sample count,
duration and peak acceleration, both raw (in g) and scaled to m/s².

Record files are plain text with whitespace or newline separated
acceleration samples; the sampling interval is supplied with --dt.

Examples:
  goshake record el_centro.th
  goshake record el_centro.th --dt 0.02 --plot`,
	Args: cobra.ExactArgs(1),
	RunE: runRecord,
}

func init() {
	rootCmd.AddCommand(recordCmd)

	recordCmd.Flags().Float64Var(&recordDt, "dt", 0.02, "Record sampling interval (s)")
	recordCmd.Flags().Float64VarP(&recordScale, "scale", "s", 1.0, "Record scale factor (applied on top of g)")
	recordCmd.Flags().BoolVarP(&recordPlot, "plot", "p", false, "Preview the record in the terminal")
}

func runRecord(cmd *cobra.Command, args []string) error {
	rec, err := groundmotion.Load(args[0], recordDt)
	if err != nil {
		return err
	}
	scaled := rec.Scaled(units.Gravity * recordScale)

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("     GROUND MOTION RECORD")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  File:\t%s\n", args[0])
	fmt.Fprintf(w, "  Samples:\t%d\n", rec.Len())
	fmt.Fprintf(w, "  Sampling interval:\t%.4f s\n", rec.Dt)
	fmt.Fprintf(w, "  Duration:\t%.2f s\n", rec.Duration())
	fmt.Fprintf(w, "  Peak (raw):\t%.4f g\n", rec.Peak())
	fmt.Fprintf(w, "  Peak (scaled):\t%.4f m/s²\n", scaled.Peak())
	w.Flush()
	fmt.Println()

	if recordPlot {
		fmt.Println(report.AsciiSeries(scaled.Samples, "Ground acceleration", "m/s²", 72, 10))
		fmt.Println()
	}
	return nil
}
