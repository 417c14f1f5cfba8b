// Package groundmotion loads and prepares seismic acceleration records
// used as base excitation input. Record files are plain text with one
// or more whitespace or newline separated acceleration samples; the
// sampling interval is not stored in the file and must be supplied by
// the caller.
package groundmotion

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
)

// Record is an evenly-sampled acceleration time history.
type Record struct {
	// Samples are the raw acceleration values as read from the file,
	// usually in units of g.
	Samples []float64

	// Dt is the sampling interval in seconds.
	Dt float64
}

// Load reads a record file from disk. A missing file or a token that
// does not parse as a float is a fatal error for the run.
func Load(path string, dt float64) (*Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening ground motion file: %w", err)
	}
	defer f.Close()

	rec, err := Parse(f, dt)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return rec, nil
}

// Parse reads whitespace-separated samples from r.
func Parse(r io.Reader, dt float64) (*Record, error) {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)

	var samples []float64
	for scanner.Scan() {
		v, err := strconv.ParseFloat(scanner.Text(), 64)
		if err != nil {
			return nil, fmt.Errorf("sample %d: %w", len(samples)+1, err)
		}
		samples = append(samples, v)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("record holds no samples")
	}
	return &Record{Samples: samples, Dt: dt}, nil
}

// Len returns the sample count.
func (r *Record) Len() int { return len(r.Samples) }

// Duration returns the time span covered by the record.
func (r *Record) Duration() float64 {
	return float64(len(r.Samples)) * r.Dt
}

// Times returns the time value of each sample, starting at zero with
// fixed spacing Dt.
func (r *Record) Times() []float64 {
	t := make([]float64, len(r.Samples))
	for i := range t {
		t[i] = float64(i) * r.Dt
	}
	return t
}

// Scaled returns a copy of the record with every sample multiplied by
// factor exactly once. The receiver is left untouched so the same raw
// record can be scaled for the solver and for plotting independently.
func (r *Record) Scaled(factor float64) *Record {
	out := &Record{Samples: make([]float64, len(r.Samples)), Dt: r.Dt}
	for i, v := range r.Samples {
		out.Samples[i] = v * factor
	}
	return out
}

// Peak returns the signed extremum of the record: whichever of the
// minimum and maximum has the larger magnitude, the minimum winning
// ties.
func (r *Record) Peak() float64 {
	min, max := math.Inf(1), math.Inf(-1)
	for _, v := range r.Samples {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	if math.Abs(max) > math.Abs(min) {
		return max
	}
	return min
}
