package report

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"
)

// AsciiSeries renders one response series as a terminal line chart
// with its peak in the caption. Long series are decimated to the
// requested width so the chart stays one column-per-step.
func AsciiSeries(values []float64, caption, unit string, width, height int) string {
	data := decimate(values, width)
	graph := asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(fmt.Sprintf("%s   peak: %.3f %s", caption, Peak(values), unit)),
	)
	return graph
}

// AsciiHistory renders each story of a [story][step] array stacked
// bottom story last, mirroring the image figure ordering.
func AsciiHistory(series [][]float64, label, unit string, width, height int) string {
	var sb strings.Builder
	for i := len(series) - 1; i >= 0; i-- {
		sb.WriteString(AsciiSeries(series[i], fmt.Sprintf("%s %d", label, i+1), unit, width, height))
		sb.WriteString("\n\n")
	}
	return sb.String()
}

// decimate picks evenly spaced samples so at most width points are
// plotted. Peaks between picked samples are not preserved; the
// caption carries the true peak.
func decimate(values []float64, width int) []float64 {
	if width <= 0 || len(values) <= width {
		return values
	}
	out := make([]float64, width)
	step := float64(len(values)-1) / float64(width-1)
	for i := range out {
		out[i] = values[int(float64(i)*step)]
	}
	return out
}
