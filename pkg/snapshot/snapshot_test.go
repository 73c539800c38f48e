package snapshot_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simviz/vizexport/pkg/sim"
	"github.com/simviz/vizexport/pkg/snapshot"
	"github.com/simviz/vizexport/pkg/vizerrors"
)

const snapshotYAML = `agents:
  - type: Cell
    id: 7
    position: [1, 2, 3]
    diameter: 3.5
    volume: 22.4
    mass: 1.1
  - type: Marker
    id: 8
    position: [4, 5, 6]
    diameter: 1
fields:
  - name: Oxygen
    kind: gaussian
    dimensions: [0, 10, 0, 10, 0, 10]
    box_length: 0.5
    center: [2.5, 2.5, 2.5]
    amplitude: 4
    sigma: 2
  - name: Glucose
    kind: linear
    dimensions: [0, 4, 0, 4, 0, 4]
    coefficients: [1, 2, 3]
    offset: 10
`

func TestParse(t *testing.T) {
	t.Parallel()

	s, err := snapshot.Parse([]byte(snapshotYAML))
	require.NoError(t, err)

	var agents []sim.Agent
	s.ForEachAgent(func(a sim.Agent) { agents = append(agents, a) })
	require.Len(t, agents, 2)

	cell := agents[0]
	assert.Equal(t, uint64(7), cell.GetUID())
	assert.Equal(t, "Cell", cell.GetTypeName())
	assert.Equal(t, [3]float64{1, 2, 3}, cell.GetPosition())
	assert.InDelta(t, 3.5, cell.GetDiameter(), 0)

	v, ok := cell.(sim.Volumer)
	require.True(t, ok, "agent with volume must satisfy sim.Volumer")
	assert.InDelta(t, 22.4, v.GetVolume(), 0)

	m, ok := cell.(sim.Masser)
	require.True(t, ok, "agent with mass must satisfy sim.Masser")
	assert.InDelta(t, 1.1, m.GetMass(), 0)

	marker := agents[1]
	_, hasVolume := marker.(sim.Volumer)
	assert.False(t, hasVolume, "bare agent must not satisfy sim.Volumer")

	var grids []sim.DiffusionGrid
	s.ForEachDiffusionGrid(func(g sim.DiffusionGrid) { grids = append(grids, g) })
	require.Len(t, grids, 2)
	assert.Equal(t, "Oxygen", grids[0].GetContinuumName())
	assert.Equal(t, [6]int{0, 10, 0, 10, 0, 10}, grids[0].GetDimensions())
	assert.InDelta(t, 0.5, grids[0].GetBoxLength(), 0)
	assert.Equal(t, 11, grids[0].GetResolution())
}

func TestParse_GaussianField(t *testing.T) {
	t.Parallel()

	s, err := snapshot.Parse([]byte(snapshotYAML))
	require.NoError(t, err)

	var grids []sim.DiffusionGrid
	s.ForEachDiffusionGrid(func(g sim.DiffusionGrid) { grids = append(grids, g) })
	oxygen := grids[0]

	// Lattice coordinate (5,5,5) is the physical center (2.5,2.5,2.5) at
	// box length 0.5, where the bump peaks at its amplitude.
	assert.InDelta(t, 4.0, oxygen.GetValue([3]float64{5, 5, 5}), 1e-12)

	grad := oxygen.GetGradient([3]float64{5, 5, 5})
	for axis, g := range grad {
		assert.InDelta(t, 0, g, 1e-6, "gradient axis %d at the peak", axis)
	}
}

func TestParse_LinearField(t *testing.T) {
	t.Parallel()

	s, err := snapshot.Parse([]byte(snapshotYAML))
	require.NoError(t, err)

	var grids []sim.DiffusionGrid
	s.ForEachDiffusionGrid(func(g sim.DiffusionGrid) { grids = append(grids, g) })
	glucose := grids[1]

	// box_length defaults to 1, so lattice and physical coordinates match.
	assert.InDelta(t, 10+1*1+2*2+3*3, glucose.GetValue([3]float64{1, 2, 3}), 1e-12)

	grad := glucose.GetGradient([3]float64{1, 2, 3})
	assert.InDelta(t, 1, grad[0], 1e-6)
	assert.InDelta(t, 2, grad[1], 1e-6)
	assert.InDelta(t, 3, grad[2], 1e-6)
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		err     error
		content string
	}{
		"unknown field kind": {
			content: "fields:\n  - name: X\n    kind: quadratic\n",
			err:     vizerrors.ErrUnknownFieldKind,
		},
		"gaussian without sigma": {
			content: "fields:\n  - name: X\n    kind: gaussian\n",
			err:     vizerrors.ErrInvalidConfig,
		},
		"unknown key": {
			content: "beads: []\n",
			err:     vizerrors.ErrYAMLUnmarshal,
		},
	}

	for name, tc := range tcs {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := snapshot.Parse([]byte(tc.content))
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := snapshot.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, vizerrors.ErrReadFile)
}
