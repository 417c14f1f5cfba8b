// Package export persists response histories for downstream
// processing, either as CSV or as a spreadsheet.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/jjaramillod93/goshake/internal/analysis"
)

// header returns the column names: time followed by displacement,
// acceleration and spring force per story.
func header(stories int) []string {
	cols := []string{"time_s"}
	for i := 1; i <= stories; i++ {
		cols = append(cols,
			fmt.Sprintf("disp_%d_m", i),
			fmt.Sprintf("accel_%d_ms2", i),
			fmt.Sprintf("force_%d_kn", i),
		)
	}
	return cols
}

// WriteCSV streams the history to w, one row per output step.
func WriteCSV(w io.Writer, hist *analysis.History) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(header(hist.NumStories())); err != nil {
		return err
	}
	for step := 0; step < hist.NumSteps(); step++ {
		record := []string{fmt.Sprintf("%.8f", hist.Time[step])}
		for i := 0; i < hist.NumStories(); i++ {
			record = append(record,
				fmt.Sprintf("%.8f", hist.Disp[i][step]),
				fmt.Sprintf("%.8f", hist.Accel[i][step]),
				fmt.Sprintf("%.8f", hist.Force[i][step]),
			)
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// SaveCSV writes the history to a CSV file.
func SaveCSV(path string, hist *analysis.History) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteCSV(f, hist)
}

// SaveXLSX writes the history to a spreadsheet using the stream
// writer, which keeps memory flat for long runs.
func SaveXLSX(path string, hist *analysis.History) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "TimeHistory"
	f.SetSheetName("Sheet1", sheet)

	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return err
	}

	head := header(hist.NumStories())
	row := make([]interface{}, len(head))
	for i, h := range head {
		row[i] = h
	}
	if err := sw.SetRow("A1", row); err != nil {
		return err
	}

	for step := 0; step < hist.NumSteps(); step++ {
		row := make([]interface{}, 0, 1+3*hist.NumStories())
		row = append(row, hist.Time[step])
		for i := 0; i < hist.NumStories(); i++ {
			row = append(row, hist.Disp[i][step], hist.Accel[i][step], hist.Force[i][step])
		}
		cell, err := excelize.CoordinatesToCellName(1, step+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, row); err != nil {
			return err
		}
	}
	if err := sw.Flush(); err != nil {
		return err
	}
	return f.SaveAs(path)
}
