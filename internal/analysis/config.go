package analysis

// Config carries the transient analysis parameters. The defaults
// reproduce the three-story demonstration run.
type Config struct {
	Damping       float64 // target damping ratio for Rayleigh calibration
	Dt            float64 // ground motion sampling interval (s)
	DtOut         float64 // output step, also the analysis sub-step (s)
	Duration      float64 // analysis stop time (s)
	Gamma         float64 // Newmark gamma
	Beta          float64 // Newmark beta
	Tolerance     float64 // unbalanced-norm convergence tolerance
	MaxIterations int     // Newton iteration cap per step
	Scale         float64 // user scale factor on the record, on top of gravity
}

// DefaultConfig returns the demonstration parameters: 5% damping,
// 0.02 s record spacing, 0.01 s output steps over 35 s, average
// acceleration Newmark and a tight unbalance tolerance.
func DefaultConfig() Config {
	return Config{
		Damping:       0.05,
		Dt:            0.02,
		DtOut:         0.01,
		Duration:      35,
		Gamma:         0.5,
		Beta:          0.25,
		Tolerance:     1.0e-12,
		MaxIterations: 100,
		Scale:         1.0,
	}
}

// StepCount returns the number of recorded output steps for a run of
// the given duration: one sample per output step plus the initial one,
// the ratio truncated toward zero. Fixed up front, never shortened by
// the data.
func StepCount(duration, dtOut float64) int {
	return int(duration/dtOut) + 1
}
