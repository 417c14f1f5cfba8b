package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jjaramillod93/goshake/internal/analysis"
	"github.com/jjaramillod93/goshake/internal/export"
	"github.com/jjaramillod93/goshake/internal/groundmotion"
	"github.com/jjaramillod93/goshake/internal/model"
	"github.com/jjaramillod93/goshake/internal/opensees"
	"github.com/jjaramillod93/goshake/internal/report"
	"github.com/jjaramillod93/goshake/internal/units"
)

var (
	// Inputs
	analyzeConfig string
	analyzeMotion string
	analyzeBinary string

	// Analysis parameters
	analyzeDt       float64
	analyzeDtOut    float64
	analyzeDuration float64
	analyzeDamping  float64
	analyzeScale    float64

	// Outputs
	analyzeOutDir string
	analyzeCSV    string
	analyzeXLSX   string
	analyzeASCII  bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run a nonlinear time-history analysis",
	Long: `Run a nonlinear dynamic (time history) analysis of a shear
building under a ground motion record.

The building is defined in an HCL file (see examples/three_story.hcl);
without --config the built-in three-story demonstration building is
used. The record file holds whitespace-separated acceleration samples
in units of g; the sampling interval is given with --dt.

The workflow matches the classic OpenSees transient recipe: Newton
iteration on a banded system, Newmark integration, Rayleigh damping
calibrated at the two lowest modes, uniform base excitation. Response
figures for relative acceleration and displacement are written to the
output directory with peak values annotated per floor.

Examples:
  # Demonstration building under El Centro 1940
  goshake analyze --motion el_centro.th

  # Custom building, 10 s excerpt, results as CSV too
  goshake analyze --config tower.hcl --motion record.th --duration 10 --csv out.csv

  # Preview the response in the terminal
  goshake analyze --motion el_centro.th --ascii`,
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	// Input flags
	analyzeCmd.Flags().StringVarP(&analyzeConfig, "config", "c", "", "Building definition file (HCL); omit for the built-in three-story model")
	analyzeCmd.Flags().StringVarP(&analyzeMotion, "motion", "m", "", "Ground motion record file [required]")
	analyzeCmd.Flags().StringVar(&analyzeBinary, "opensees", "OpenSees", "Path to the OpenSees interpreter binary")

	// Analysis flags
	analyzeCmd.Flags().Float64Var(&analyzeDt, "dt", 0.02, "Record sampling interval (s)")
	analyzeCmd.Flags().Float64Var(&analyzeDtOut, "dt-out", 0.01, "Output/analysis step (s)")
	analyzeCmd.Flags().Float64VarP(&analyzeDuration, "duration", "t", 35, "Analysis stop time (s)")
	analyzeCmd.Flags().Float64VarP(&analyzeDamping, "damping", "d", 0.05, "Target damping ratio")
	analyzeCmd.Flags().Float64VarP(&analyzeScale, "scale", "s", 1.0, "Record scale factor (applied on top of g)")

	// Output flags
	analyzeCmd.Flags().StringVarP(&analyzeOutDir, "out-dir", "o", ".", "Directory for the response figures")
	analyzeCmd.Flags().StringVar(&analyzeCSV, "csv", "", "Also write the response history as CSV")
	analyzeCmd.Flags().StringVar(&analyzeXLSX, "xlsx", "", "Also write the response history as a spreadsheet")
	analyzeCmd.Flags().BoolVar(&analyzeASCII, "ascii", false, "Preview the response in the terminal")

	analyzeCmd.MarkFlagRequired("motion")
}

// loadInputs resolves the building and the analysis configuration from
// flags and the optional config file. Flags that were left at their
// defaults yield to values from the file.
func loadInputs(cmd *cobra.Command) (*model.BuildingModel, analysis.Config, error) {
	cfg := analysis.DefaultConfig()
	cfg.Dt = analyzeDt
	cfg.DtOut = analyzeDtOut
	cfg.Duration = analyzeDuration
	cfg.Damping = analyzeDamping
	cfg.Scale = analyzeScale

	if analyzeConfig == "" {
		return model.DefaultThreeStory(), cfg, nil
	}

	bm, settings, err := model.LoadConfig(analyzeConfig)
	if err != nil {
		return nil, cfg, err
	}
	if settings.Damping != 0 && !cmd.Flags().Changed("damping") {
		cfg.Damping = settings.Damping
	}
	if settings.Dt != 0 && !cmd.Flags().Changed("dt") {
		cfg.Dt = settings.Dt
	}
	if settings.DtOut != 0 && !cmd.Flags().Changed("dt-out") {
		cfg.DtOut = settings.DtOut
	}
	if settings.Duration != 0 && !cmd.Flags().Changed("duration") {
		cfg.Duration = settings.Duration
	}
	if settings.Scale != 0 && !cmd.Flags().Changed("scale") {
		cfg.Scale = settings.Scale
	}
	if settings.Gamma != 0 {
		cfg.Gamma = settings.Gamma
	}
	if settings.Beta != 0 {
		cfg.Beta = settings.Beta
	}
	if settings.Tolerance != 0 {
		cfg.Tolerance = settings.Tolerance
	}
	if settings.MaxIterations != 0 {
		cfg.MaxIterations = settings.MaxIterations
	}
	return bm, cfg, nil
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	bm, cfg, err := loadInputs(cmd)
	if err != nil {
		return err
	}

	rec, err := groundmotion.Load(analyzeMotion, cfg.Dt)
	if err != nil {
		return err
	}

	eng, err := opensees.Launch(context.Background(), analyzeBinary)
	if err != nil {
		return err
	}
	defer eng.Close()

	result, err := analysis.Run(eng, bm, rec, cfg)
	if err != nil {
		return err
	}
	hist := result.History

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("     NONLINEAR TIME-HISTORY ANALYSIS")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	fmt.Println("MODEL:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Stories:\t%d\n", bm.NumFloors())
	fmt.Fprintf(w, "  Record:\t%s (%d samples, %.2f s)\n", analyzeMotion, rec.Len(), rec.Duration())
	fmt.Fprintf(w, "  Damping ratio:\t%.1f %%\n", cfg.Damping*100)
	fmt.Fprintf(w, "  Output steps:\t%d × %.3f s\n", hist.NumSteps(), cfg.DtOut)
	w.Flush()
	fmt.Println()

	fmt.Println("NATURAL PERIODS:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for i, T := range result.Periods {
		fmt.Fprintf(w, "  T%d:\t%.3f s\n", i+1, T)
	}
	fmt.Fprintf(w, "  Rayleigh a0:\t%.6f\n", result.A0)
	fmt.Fprintf(w, "  Rayleigh a1:\t%.6f\n", result.A1)
	w.Flush()
	fmt.Println()

	scaled := rec.Scaled(units.Gravity * cfg.Scale)

	fmt.Println("PEAK RESPONSE:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Ground accel:\t%.3f m/s²\n", scaled.Peak())
	for i := 0; i < hist.NumStories(); i++ {
		fmt.Fprintf(w, "  Floor %d:\taccel %.3f m/s²\tdisp %.2f mm\tforce %.3f kN\n",
			i+1,
			report.Peak(hist.Accel[i]),
			report.Peak(report.ToMillimeters(hist.Disp[i])),
			report.Peak(hist.Force[i]),
		)
	}
	w.Flush()
	fmt.Println()

	accelPath := filepath.Join(analyzeOutDir, "rel_accel.png")
	dispPath := filepath.Join(analyzeOutDir, "rel_disp.png")
	if err := report.SaveAccelerations(hist, scaled, cfg.Duration, accelPath); err != nil {
		return fmt.Errorf("writing acceleration figure: %w", err)
	}
	if err := report.SaveDisplacements(hist, cfg.Duration, dispPath); err != nil {
		return fmt.Errorf("writing displacement figure: %w", err)
	}
	fmt.Println("FIGURES:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	fmt.Printf("  %s\n", accelPath)
	fmt.Printf("  %s\n", dispPath)
	fmt.Println()

	if analyzeCSV != "" {
		if err := export.SaveCSV(analyzeCSV, hist); err != nil {
			return fmt.Errorf("writing CSV: %w", err)
		}
		fmt.Printf("  %s\n", analyzeCSV)
	}
	if analyzeXLSX != "" {
		if err := export.SaveXLSX(analyzeXLSX, hist); err != nil {
			return fmt.Errorf("writing spreadsheet: %w", err)
		}
		fmt.Printf("  %s\n", analyzeXLSX)
	}

	if analyzeASCII {
		fmt.Println("RELATIVE ACCELERATIONS:")
		fmt.Println(report.AsciiHistory(hist.Accel, "Floor", "m/s²", 72, 8))
	}
	return nil
}
