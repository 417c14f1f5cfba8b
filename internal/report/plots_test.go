package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jjaramillod93/goshake/internal/analysis"
	"github.com/jjaramillod93/goshake/internal/groundmotion"
)

func smallHistory() *analysis.History {
	return &analysis.History{
		Time:  []float64{0, 0.01, 0.02, 0.03},
		Disp:  [][]float64{{0, 0.001, -0.002, 0.001}, {0, 0.002, -0.003, 0.002}},
		Accel: [][]float64{{0, 0.5, -1.2, 0.8}, {0, 0.9, -2.1, 1.4}},
		Force: [][]float64{{0, 0.1, -0.2, 0.1}, {0, 0.2, -0.3, 0.2}},
	}
}

func TestSaveFiguresWritePNGs(t *testing.T) {
	dir := t.TempDir()
	hist := smallHistory()
	gm := &groundmotion.Record{Samples: []float64{0, 0.3, -0.6, 0.2}, Dt: 0.01}

	accel := filepath.Join(dir, "figs", "rel_accel.png")
	require.NoError(t, SaveAccelerations(hist, gm, 0.03, accel))

	disp := filepath.Join(dir, "figs", "rel_disp.png")
	require.NoError(t, SaveDisplacements(hist, 0.03, disp))

	for _, p := range []string{accel, disp} {
		info, err := os.Stat(p)
		require.NoError(t, err)
		require.NotZero(t, info.Size())
	}
}
