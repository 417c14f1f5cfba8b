// Package analysis orchestrates a nonlinear time-history run of a
// shear building against an external structural solver: model
// assembly, Rayleigh damping calibration from the solver's own modal
// frequencies, base excitation setup and the fixed transient stepping
// loop that records the response.
package analysis

import (
	"fmt"
	"math"

	"github.com/jjaramillod93/goshake/internal/groundmotion"
	"github.com/jjaramillod93/goshake/internal/model"
	"github.com/jjaramillod93/goshake/internal/units"
)

// Tags used for the single load case.
const (
	seriesTag  = 1
	patternTag = 1
	shakeDir   = 1
)

// BuildModel defines the building inside the engine: a fixed ground
// node 0, one massed node per floor, and per story one bilinear
// material driving a zero-length spring between consecutive nodes.
// Story values are passed through unchecked; a non-physical mass or
// stiffness is the solver's to reject.
func BuildModel(eng Engine, bm *model.BuildingModel) error {
	if err := eng.Model(1, 1); err != nil {
		return err
	}
	if err := eng.Node(0, 0); err != nil {
		return err
	}
	for i, s := range bm.Stories {
		if err := eng.MassNode(i+1, 0, s.Mass); err != nil {
			return err
		}
	}
	if err := eng.Fix(0, 1); err != nil {
		return err
	}
	for i, s := range bm.Stories {
		tag := i + 1
		if err := eng.Steel01(tag, s.YieldStrength, s.Stiffness, s.HardeningRatio); err != nil {
			return err
		}
		if err := eng.ZeroLength(tag, i, i+1, tag, shakeDir); err != nil {
			return err
		}
	}
	return nil
}

// RayleighCoefficients returns the mass- and stiffness-proportional
// damping factors that give damping ratio h at the two circular
// frequencies w1 and w2.
func RayleighCoefficients(h, w1, w2 float64) (a0, a1 float64) {
	a0 = 2 * h * w1 * w2 / (w1 + w2)
	a1 = 2 * h / (w1 + w2)
	return a0, a1
}

// ConfigureDamping eigen-solves the assembled model for n modes,
// calibrates Rayleigh damping to ratio h at the two lowest modes and
// applies it. Higher modes are retrieved only for the period report.
// A single-story building has only one mode; both coefficients are
// then calibrated at that one frequency, which the closed form covers
// with w1 = w2. Returns the natural periods (s), lowest mode first,
// and the applied coefficient pair.
func ConfigureDamping(eng Engine, n int, h float64) (periods []float64, a0, a1 float64, err error) {
	if n < 1 {
		return nil, 0, 0, fmt.Errorf("eigen solve: need at least one mode, got %d", n)
	}
	lambdas, err := eng.Eigen(n)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("eigen solve: %w", err)
	}
	omegas := make([]float64, len(lambdas))
	periods = make([]float64, len(lambdas))
	for i, l := range lambdas {
		omegas[i] = math.Sqrt(l)
		periods[i] = 2 * math.Pi / omegas[i]
	}
	w1, w2 := omegas[0], omegas[0]
	if len(omegas) > 1 {
		w2 = omegas[1]
	}
	a0, a1 = RayleighCoefficients(h, w1, w2)
	if err := eng.Rayleigh(a0, 0, 0, a1); err != nil {
		return nil, 0, 0, err
	}
	return periods, a0, a1, nil
}

// ApplyExcitation registers the record as a path time series scaled by
// gravity times the user factor, applied as a uniform base
// acceleration along the building's single translational direction.
func ApplyExcitation(eng Engine, rec *groundmotion.Record, scale float64) error {
	if err := eng.PathTimeSeries(seriesTag, rec.Dt, rec.Samples, units.Gravity*scale); err != nil {
		return err
	}
	return eng.UniformExcitation(patternTag, shakeDir, seriesTag)
}

// Result bundles everything one pipeline run produces.
type Result struct {
	History *History
	Periods []float64
	A0, A1  float64
}

// Run executes the whole workflow on a freshly wiped engine: build,
// modal/damping configuration, excitation, transient stepping. The
// engine is wiped first so stale definitions from an earlier run can
// never leak in; releasing the engine itself stays with the caller.
func Run(eng Engine, bm *model.BuildingModel, rec *groundmotion.Record, cfg Config) (*Result, error) {
	if err := eng.Wipe(); err != nil {
		return nil, err
	}
	if err := BuildModel(eng, bm); err != nil {
		return nil, fmt.Errorf("building model: %w", err)
	}
	periods, a0, a1, err := ConfigureDamping(eng, bm.NumFloors(), cfg.Damping)
	if err != nil {
		return nil, fmt.Errorf("configuring damping: %w", err)
	}
	if err := ApplyExcitation(eng, rec, cfg.Scale); err != nil {
		return nil, fmt.Errorf("applying excitation: %w", err)
	}
	hist, err := RunTransient(eng, bm, cfg)
	if err != nil {
		return nil, err
	}
	return &Result{History: hist, Periods: periods, A0: a0, A1: a1}, nil
}
