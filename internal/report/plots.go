package report

import (
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/jjaramillod93/goshake/internal/analysis"
	"github.com/jjaramillod93/goshake/internal/groundmotion"
)

// timeSeries pairs a time axis with sample values for plotting.
func timeSeries(t, values []float64) plotter.XYs {
	n := len(values)
	if len(t) < n {
		n = len(t)
	}
	xys := make(plotter.XYs, n)
	for i := 0; i < n; i++ {
		xys[i] = plotter.XY{X: t[i], Y: values[i]}
	}
	return xys
}

// subplot builds one row of a stacked figure: a single series with a
// grid, fixed axis ranges and its peak annotated in the legend.
func subplot(t, values []float64, label, unit string, colorIdx int, xMax, yLim float64) (*plot.Plot, error) {
	p := plot.New()
	line, err := plotter.NewLine(timeSeries(t, values))
	if err != nil {
		return nil, err
	}
	line.LineStyle.Width = vg.Points(1)
	line.LineStyle.Color = plotutil.Color(colorIdx)
	p.Add(plotter.NewGrid(), line)

	p.Legend.Add(fmt.Sprintf("%s   peak: %.2f %s", label, Peak(values), unit), line)
	p.Legend.Top = true
	p.Legend.Left = false

	p.X.Min, p.X.Max = 0, xMax
	p.Y.Min, p.Y.Max = -yLim, yLim
	return p, nil
}

// saveStack lays the plots out as one column sharing the time axis and
// writes a PNG.
func saveStack(rows []*plot.Plot, title, xLabel, yLabel, filename string, w, h vg.Length) error {
	rows[0].Title.Text = title
	rows[len(rows)-1].X.Label.Text = xLabel
	mid := len(rows) / 2
	rows[mid].Y.Label.Text = yLabel

	plots := make([][]*plot.Plot, len(rows))
	for i, p := range rows {
		plots[i] = []*plot.Plot{p}
	}

	img := vgimg.New(w, h)
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows: len(rows),
		Cols: 1,
		PadY: vg.Millimeter,
	}
	canvases := plot.Align(plots, tiles, dc)
	for i, p := range rows {
		p.Draw(canvases[i][0])
	}

	if dir := filepath.Dir(filename); dir != "" && dir != "." {
		os.MkdirAll(dir, 0755)
	}
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(f); err != nil {
		return err
	}
	return nil
}

// SaveAccelerations writes the relative-acceleration figure: the
// scaled ground record on top, one row per floor below it, all on the
// analysis time span. The record must already carry its gravity/user
// scaling; no factor is applied here.
func SaveAccelerations(hist *analysis.History, gm *groundmotion.Record, duration float64, filename string) error {
	rows := make([]*plot.Plot, 0, hist.NumStories()+1)

	ground, err := subplot(gm.Times(), gm.Samples, "Ground", "[m/s2]", 0, duration, 8)
	if err != nil {
		return err
	}
	rows = append(rows, ground)

	for i := 0; i < hist.NumStories(); i++ {
		p, err := subplot(hist.Time, hist.Accel[i], fmt.Sprintf("Floor %d", i+1), "[m/s2]", i+1, duration, 8)
		if err != nil {
			return err
		}
		rows = append(rows, p)
	}
	return saveStack(rows, "Relative Accelerations", "Time [s]", "Acceleration [m/s2]",
		filename, 8*vg.Inch, 5*vg.Inch)
}

// SaveDisplacements writes the relative-displacement figure, one row
// per floor, converted to millimeters before plotting so the peak
// labels match the axis unit.
func SaveDisplacements(hist *analysis.History, duration float64, filename string) error {
	rows := make([]*plot.Plot, 0, hist.NumStories())
	for i := 0; i < hist.NumStories(); i++ {
		p, err := subplot(hist.Time, ToMillimeters(hist.Disp[i]), fmt.Sprintf("Floor %d", i+1), "[mm]", i+1, duration, 75)
		if err != nil {
			return err
		}
		rows = append(rows, p)
	}
	return saveStack(rows, "Relative Displacements", "Time [s]", "Displacement [mm]",
		filename, 8*vg.Inch, 3.8*vg.Inch)
}
