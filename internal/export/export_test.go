package export

import (
	"bytes"
	"encoding/csv"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jjaramillod93/goshake/internal/analysis"
)

func sampleHistory() *analysis.History {
	return &analysis.History{
		Time:  []float64{0, 0.01, 0.02},
		Disp:  [][]float64{{0, 0.001, 0.002}, {0, 0.003, 0.004}},
		Accel: [][]float64{{0, 0.5, 1.0}, {0, 1.5, 2.0}},
		Force: [][]float64{{0, 0.1, 0.2}, {0, 0.3, 0.4}},
	}
}

func TestWriteCSVLayout(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleHistory()))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)

	// Header plus one row per step.
	require.Len(t, rows, 4)
	require.Equal(t, []string{
		"time_s",
		"disp_1_m", "accel_1_ms2", "force_1_kn",
		"disp_2_m", "accel_2_ms2", "force_2_kn",
	}, rows[0])

	require.Equal(t, "0.01000000", rows[2][0])
	require.Equal(t, "0.00100000", rows[2][1])
	require.Equal(t, "0.30000000", rows[2][6])
}

func TestSaveXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.xlsx")
	require.NoError(t, SaveXLSX(path, sampleHistory()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("TimeHistory")
	require.NoError(t, err)
	require.Len(t, rows, 4)
	require.Equal(t, "time_s", rows[0][0])
	require.Equal(t, "force_2_kn", rows[0][6])
}
