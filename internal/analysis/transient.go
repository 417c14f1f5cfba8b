package analysis

import (
	"fmt"

	"github.com/jjaramillod93/goshake/internal/model"
)

// ConvergenceError reports a transient step the solver could not
// converge. There is no retry or relaxation; the run is over.
type ConvergenceError struct {
	Step int
	Time float64
	Err  error
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("step %d (t=%.3f s) did not converge: %v", e.Step, e.Time, e.Err)
}

func (e *ConvergenceError) Unwrap() error { return e.Err }

// History holds the recorded response, indexed [story][step]. All
// three quantities are relative to the ground.
type History struct {
	Time  []float64   // step times, fixed DtOut spacing from zero
	Disp  [][]float64 // relative displacement (m)
	Accel [][]float64 // relative acceleration (m/s²)
	Force [][]float64 // spring force (kN)
}

// NumStories returns the story dimension of the arrays.
func (h *History) NumStories() int { return len(h.Disp) }

// NumSteps returns the time dimension of the arrays.
func (h *History) NumSteps() int { return len(h.Time) }

func newHistory(stories, steps int) *History {
	h := &History{
		Time:  make([]float64, steps),
		Disp:  make([][]float64, stories),
		Accel: make([][]float64, stories),
		Force: make([][]float64, stories),
	}
	for i := 0; i < stories; i++ {
		h.Disp[i] = make([]float64, steps)
		h.Accel[i] = make([]float64, steps)
		h.Force[i] = make([]float64, steps)
	}
	return h
}

// Sample is the response at one output step.
type Sample struct {
	Step  int
	Time  float64
	Disp  []float64 // per story
	Accel []float64
	Force []float64
}

// Stepper advances the configured transient analysis one output step
// at a time and reads back the response. It is a single forward pass
// over a fixed number of steps; it cannot be rewound or reused.
type Stepper struct {
	eng     Engine
	stories int
	dtOut   float64
	steps   int
	next    int
}

// NewStepper assumes the analysis objects are already configured on
// the engine.
func NewStepper(eng Engine, stories int, cfg Config) *Stepper {
	return &Stepper{
		eng:     eng,
		stories: stories,
		dtOut:   cfg.DtOut,
		steps:   StepCount(cfg.Duration, cfg.DtOut),
	}
}

// Remaining returns how many output steps are left.
func (s *Stepper) Remaining() int { return s.steps - s.next }

// Next advances the analysis by one output step and samples the
// response of every story. ok is false once the fixed number of steps
// has been consumed. A step the solver cannot converge surfaces as a
// ConvergenceError.
func (s *Stepper) Next() (sample Sample, ok bool, err error) {
	if s.next >= s.steps {
		return Sample{}, false, nil
	}
	t := float64(s.next) * s.dtOut
	if err := s.eng.Analyze(1, s.dtOut); err != nil {
		return Sample{}, false, &ConvergenceError{Step: s.next, Time: t, Err: err}
	}
	sample = Sample{
		Step:  s.next,
		Time:  t,
		Disp:  make([]float64, s.stories),
		Accel: make([]float64, s.stories),
		Force: make([]float64, s.stories),
	}
	for i := 0; i < s.stories; i++ {
		node := i + 1
		if sample.Disp[i], err = s.eng.NodeDisp(node, shakeDir); err != nil {
			return Sample{}, false, fmt.Errorf("step %d: node %d displacement: %w", s.next, node, err)
		}
		if sample.Force[i], err = s.eng.EleForce(node, shakeDir); err != nil {
			return Sample{}, false, fmt.Errorf("step %d: element %d force: %w", s.next, node, err)
		}
		if sample.Accel[i], err = s.eng.NodeAccel(node, shakeDir); err != nil {
			return Sample{}, false, fmt.Errorf("step %d: node %d acceleration: %w", s.next, node, err)
		}
	}
	s.next++
	return sample, true, nil
}

// RunTransient configures the solution strategy once, then drives the
// stepping loop to completion and collects the full response history.
// The step count is fixed up front from the configured duration; a
// non-convergent step aborts the run with no partial result.
func RunTransient(eng Engine, bm *model.BuildingModel, cfg Config) (*History, error) {
	if err := eng.WipeAnalysis(); err != nil {
		return nil, err
	}
	if err := eng.Algorithm("Newton"); err != nil {
		return nil, err
	}
	if err := eng.System("BandGen"); err != nil {
		return nil, err
	}
	if err := eng.Numberer("Plain"); err != nil {
		return nil, err
	}
	if err := eng.Constraints("Plain"); err != nil {
		return nil, err
	}
	if err := eng.NewmarkIntegrator(cfg.Gamma, cfg.Beta); err != nil {
		return nil, err
	}
	if err := eng.TransientAnalysis(); err != nil {
		return nil, err
	}
	if err := eng.NormUnbalanceTest(cfg.Tolerance, cfg.MaxIterations); err != nil {
		return nil, err
	}

	stepper := NewStepper(eng, bm.NumFloors(), cfg)
	hist := newHistory(bm.NumFloors(), stepper.steps)
	for {
		sample, ok, err := stepper.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		hist.Time[sample.Step] = sample.Time
		for i := 0; i < bm.NumFloors(); i++ {
			hist.Disp[i][sample.Step] = sample.Disp[i]
			hist.Accel[i][sample.Step] = sample.Accel[i]
			hist.Force[i][sample.Step] = sample.Force[i]
		}
	}
	return hist, nil
}
