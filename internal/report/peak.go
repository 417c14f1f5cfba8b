// Package report turns recorded response histories into figures and
// terminal previews. Nothing numerical happens here beyond unit
// conversion and extremum selection.
package report

import "math"

// Peak returns the most extreme signed value of a series: whichever
// of its minimum and maximum has the larger magnitude. Equal
// magnitudes resolve to the minimum.
func Peak(series []float64) float64 {
	min, max := math.Inf(1), math.Inf(-1)
	for _, v := range series {
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

// ToMillimeters converts a series in meters to millimeters.
func ToMillimeters(series []float64) []float64 {
	out := make([]float64, len(series))
	for i, v := range series {
		out[i] = v * 1000
	}
	return out
}
