package analysis

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jjaramillod93/goshake/internal/groundmotion"
	"github.com/jjaramillod93/goshake/internal/model"
)

// stubEngine records every call made against the solver boundary and
// replies with canned values.
type stubEngine struct {
	ops []string

	nodes     []int
	massNodes []int
	fixed     []int
	materials []int
	elements  [][3]int // tag, iNode, jNode

	eigenvalues []float64
	rayleigh    [4]float64

	seriesDt     float64
	seriesFactor float64
	seriesValues []float64
	patternDir   int

	analyzeCalls int
	failAtCall   int // 1-based analyze call that fails; 0 = never
	response     func(tag int) float64
}

func newStubEngine(eigenvalues []float64) *stubEngine {
	return &stubEngine{
		eigenvalues: eigenvalues,
		response:    func(int) float64 { return 0 },
	}
}

func (s *stubEngine) record(op string)    { s.ops = append(s.ops, op) }
func (s *stubEngine) Wipe() error         { s.record("wipe"); return nil }
func (s *stubEngine) WipeAnalysis() error { s.record("wipeAnalysis"); return nil }

func (s *stubEngine) Model(ndm, ndf int) error {
	s.record(fmt.Sprintf("model %d %d", ndm, ndf))
	return nil
}

func (s *stubEngine) Node(tag int, x float64) error {
	s.record("node")
	s.nodes = append(s.nodes, tag)
	return nil
}

func (s *stubEngine) MassNode(tag int, x, mass float64) error {
	s.record("node")
	s.massNodes = append(s.massNodes, tag)
	return nil
}

func (s *stubEngine) Fix(tag int, dofs ...int) error {
	s.record("fix")
	s.fixed = append(s.fixed, tag)
	return nil
}

func (s *stubEngine) Steel01(tag int, fy, k, b float64) error {
	s.record("material")
	s.materials = append(s.materials, tag)
	return nil
}

func (s *stubEngine) ZeroLength(tag, iNode, jNode, matTag, dir int) error {
	s.record("element")
	s.elements = append(s.elements, [3]int{tag, iNode, jNode})
	return nil
}

func (s *stubEngine) Eigen(n int) ([]float64, error) {
	s.record("eigen")
	if n > len(s.eigenvalues) {
		return nil, fmt.Errorf("only %d eigenvalues available", len(s.eigenvalues))
	}
	return s.eigenvalues[:n], nil
}

func (s *stubEngine) Rayleigh(aM, aK, aKInit, aKComm float64) error {
	s.record("rayleigh")
	s.rayleigh = [4]float64{aM, aK, aKInit, aKComm}
	return nil
}

func (s *stubEngine) PathTimeSeries(tag int, dt float64, values []float64, factor float64) error {
	s.record("timeSeries")
	s.seriesDt = dt
	s.seriesValues = values
	s.seriesFactor = factor
	return nil
}

func (s *stubEngine) UniformExcitation(patternTag, dir, seriesTag int) error {
	s.record("pattern")
	s.patternDir = dir
	return nil
}

func (s *stubEngine) Constraints(kind string) error { s.record("constraints " + kind); return nil }
func (s *stubEngine) Numberer(kind string) error    { s.record("numberer " + kind); return nil }
func (s *stubEngine) System(kind string) error      { s.record("system " + kind); return nil }
func (s *stubEngine) Algorithm(kind string) error   { s.record("algorithm " + kind); return nil }

func (s *stubEngine) NormUnbalanceTest(tol float64, maxIter int) error {
	s.record("test")
	return nil
}

func (s *stubEngine) NewmarkIntegrator(gamma, beta float64) error {
	s.record("integrator")
	return nil
}

func (s *stubEngine) TransientAnalysis() error { s.record("analysis"); return nil }

func (s *stubEngine) Analyze(steps int, dt float64) error {
	s.analyzeCalls++
	if s.failAtCall > 0 && s.analyzeCalls == s.failAtCall {
		return errors.New("analyze returned status -3")
	}
	return nil
}

func (s *stubEngine) NodeDisp(tag, dof int) (float64, error)  { return s.response(tag), nil }
func (s *stubEngine) NodeAccel(tag, dof int) (float64, error) { return s.response(tag), nil }
func (s *stubEngine) EleForce(tag, dof int) (float64, error)  { return -s.response(tag), nil }

func uniformBuilding(n int) *model.BuildingModel {
	bm := &model.BuildingModel{}
	for i := 0; i < n; i++ {
		bm.Stories = append(bm.Stories, model.Story{
			Mass:           0.1,
			YieldStrength:  0.5,
			Stiffness:      40,
			HardeningRatio: 0.01,
		})
	}
	return bm
}

func TestBuildModelCallPattern(t *testing.T) {
	for _, n := range []int{1, 2, 3, 7} {
		t.Run(fmt.Sprintf("%d-story", n), func(t *testing.T) {
			eng := newStubEngine(nil)
			bm := uniformBuilding(n)
			require.NoError(t, BuildModel(eng, bm))

			// Ground node plus one massed node per floor.
			require.Equal(t, []int{0}, eng.nodes)
			require.Len(t, eng.massNodes, n)
			require.Equal(t, []int{0}, eng.fixed)

			// One material and one element per story, element i
			// connecting nodes i-1 and i.
			require.Len(t, eng.materials, n)
			require.Len(t, eng.elements, n)
			for i, el := range eng.elements {
				require.Equal(t, [3]int{i + 1, i, i + 1}, el)
			}
		})
	}
}

func TestRayleighCoefficients(t *testing.T) {
	a0, a1 := RayleighCoefficients(0.05, 10, 20)
	require.InDelta(t, 2*0.05*10*20/30.0, a0, 1e-12)
	require.InDelta(t, 2*0.05/30.0, a1, 1e-12)
	require.InDelta(t, 0.6667, a0, 1e-4)
}

func TestConfigureDamping(t *testing.T) {
	// Eigenvalues are squared circular frequencies: ω = 10, 20, 30.
	eng := newStubEngine([]float64{100, 400, 900})
	periods, a0, a1, err := ConfigureDamping(eng, 3, 0.05)
	require.NoError(t, err)

	require.Len(t, periods, 3)
	require.InDelta(t, 2*math.Pi/10, periods[0], 1e-12)
	require.InDelta(t, 2*math.Pi/20, periods[1], 1e-12)
	require.InDelta(t, 2*math.Pi/30, periods[2], 1e-12)

	// Only the two lowest modes calibrate the coefficients, applied
	// as rayleigh(a0, 0, 0, a1).
	require.Equal(t, [4]float64{a0, 0, 0, a1}, eng.rayleigh)
	require.InDelta(t, 2*0.05*10*20/30.0, a0, 1e-12)
	require.InDelta(t, 2*0.05/30.0, a1, 1e-12)
}

func TestConfigureDampingSingleStory(t *testing.T) {
	// One story means one mode (ω = 10); both coefficients calibrate
	// at that frequency: a0 = h·ω, a1 = h/ω.
	eng := newStubEngine([]float64{100})
	periods, a0, a1, err := ConfigureDamping(eng, 1, 0.05)
	require.NoError(t, err)

	require.Len(t, periods, 1)
	require.InDelta(t, 2*math.Pi/10, periods[0], 1e-12)
	require.InDelta(t, 0.05*10, a0, 1e-12)
	require.InDelta(t, 0.05/10, a1, 1e-12)
	require.Equal(t, [4]float64{a0, 0, 0, a1}, eng.rayleigh)
}

func TestConfigureDampingTwoStories(t *testing.T) {
	eng := newStubEngine([]float64{100, 400})
	periods, a0, a1, err := ConfigureDamping(eng, 2, 0.05)
	require.NoError(t, err)

	require.Len(t, periods, 2)
	require.InDelta(t, 2*0.05*10*20/30.0, a0, 1e-12)
	require.InDelta(t, 2*0.05/30.0, a1, 1e-12)
}

func TestRunSingleStoryBuilding(t *testing.T) {
	eng := newStubEngine([]float64{100})
	rec := &groundmotion.Record{Samples: make([]float64, 20), Dt: 0.02}

	cfg := DefaultConfig()
	cfg.Duration = 0.1

	result, err := Run(eng, uniformBuilding(1), rec, cfg)
	require.NoError(t, err)

	require.Len(t, result.Periods, 1)
	require.Equal(t, 1, result.History.NumStories())
	require.Equal(t, StepCount(cfg.Duration, cfg.DtOut), result.History.NumSteps())
}

func TestStepCount(t *testing.T) {
	require.Equal(t, 3501, StepCount(35, 0.01))
	require.Equal(t, 101, StepCount(10, 0.1))
	require.Equal(t, 2, StepCount(0.01, 0.01))
}

func TestApplyExcitationScaling(t *testing.T) {
	eng := newStubEngine(nil)
	rec := &groundmotion.Record{Samples: []float64{0.1, -0.2, 0.3}, Dt: 0.02}
	require.NoError(t, ApplyExcitation(eng, rec, 2))

	// Raw samples go to the solver untouched; gravity and the user
	// factor travel as the series factor, applied exactly once.
	require.Equal(t, rec.Samples, eng.seriesValues)
	require.InDelta(t, 9.81*2, eng.seriesFactor, 1e-12)
	require.Equal(t, 0.02, eng.seriesDt)
	require.Equal(t, 1, eng.patternDir)
}

func TestRunZeroMotionStaysAtRest(t *testing.T) {
	eng := newStubEngine([]float64{100, 400, 900})
	bm := &model.BuildingModel{Stories: []model.Story{
		{Mass: 0.1, YieldStrength: 0.55, Stiffness: 60, HardeningRatio: 0.01},
		{Mass: 0.1, YieldStrength: 0.45, Stiffness: 50, HardeningRatio: 0.01},
		{Mass: 0.1, YieldStrength: 0.30, Stiffness: 30, HardeningRatio: 0.01},
	}}
	rec := &groundmotion.Record{Samples: make([]float64, 50), Dt: 0.02}

	cfg := DefaultConfig()
	cfg.Duration = 1

	result, err := Run(eng, bm, rec, cfg)
	require.NoError(t, err)

	hist := result.History
	steps := StepCount(cfg.Duration, cfg.DtOut)
	require.Equal(t, 3, hist.NumStories())
	require.Equal(t, steps, hist.NumSteps())
	require.Equal(t, steps, eng.analyzeCalls)
	require.Equal(t, "wipe", eng.ops[0])

	for i := 0; i < hist.NumStories(); i++ {
		for step := 0; step < steps; step++ {
			require.Zero(t, hist.Disp[i][step])
			require.Zero(t, hist.Force[i][step])
		}
	}
}

func TestRunTransientConfiguresSolutionOnce(t *testing.T) {
	eng := newStubEngine(nil)
	cfg := DefaultConfig()
	cfg.Duration = 0.05

	_, err := RunTransient(eng, uniformBuilding(2), cfg)
	require.NoError(t, err)

	want := []string{
		"wipeAnalysis",
		"algorithm Newton",
		"system BandGen",
		"numberer Plain",
		"constraints Plain",
		"integrator",
		"analysis",
		"test",
	}
	require.Equal(t, want, eng.ops)
}

func TestNonConvergenceAbortsRun(t *testing.T) {
	eng := newStubEngine(nil)
	eng.failAtCall = 4

	cfg := DefaultConfig()
	cfg.Duration = 1

	_, err := RunTransient(eng, uniformBuilding(3), cfg)
	require.Error(t, err)

	var convErr *ConvergenceError
	require.ErrorAs(t, err, &convErr)
	require.Equal(t, 3, convErr.Step)

	// The loop stops immediately, no retries.
	require.Equal(t, 4, eng.analyzeCalls)
}

func TestStepperIsSingleForwardPass(t *testing.T) {
	eng := newStubEngine(nil)
	cfg := DefaultConfig()
	cfg.Duration = 0.03

	stepper := NewStepper(eng, 2, cfg)
	total := StepCount(cfg.Duration, cfg.DtOut)
	require.Equal(t, total, stepper.Remaining())

	times := []float64{}
	for {
		sample, ok, err := stepper.Next()
		require.NoError(t, err)
		if !ok {
			break
		}
		times = append(times, sample.Time)
		require.Len(t, sample.Disp, 2)
	}
	require.Len(t, times, total)
	require.Zero(t, stepper.Remaining())

	// Fixed spacing, monotonically increasing from zero.
	for i, tm := range times {
		require.InDelta(t, float64(i)*cfg.DtOut, tm, 1e-12)
	}

	// Exhausted steppers stay exhausted.
	_, ok, err := stepper.Next()
	require.NoError(t, err)
	require.False(t, ok)
}
