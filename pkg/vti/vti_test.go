package vti_test

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simviz/vizexport/pkg/vizerrors"
	"github.com/simviz/vizexport/pkg/vti"
)

// rampGrid has a value of x + 10y + 100z at lattice coordinate (x, y, z),
// which makes the sample order observable in the output.
type rampGrid struct {
	name       string
	dims       [6]int
	resolution int
	boxLength  float64
}

func (g rampGrid) GetContinuumName() string { return g.name }
func (g rampGrid) GetDimensions() [6]int    { return g.dims }
func (g rampGrid) GetResolution() int       { return g.resolution }
func (g rampGrid) GetBoxLength() float64    { return g.boxLength }

func (g rampGrid) GetValue(coord [3]float64) float64 {
	return coord[0] + 10*coord[1] + 100*coord[2]
}

func (g rampGrid) GetGradient(_ [3]float64) [3]float64 {
	return [3]float64{1, 10, 100}
}

type vtiFile struct {
	XMLName xml.Name `xml:"VTKFile"`
	Type    string   `xml:"type,attr"`
	Image   struct {
		WholeExtent string `xml:"WholeExtent,attr"`
		Origin      string `xml:"Origin,attr"`
		Spacing     string `xml:"Spacing,attr"`
		Piece       struct {
			Extent    string `xml:"Extent,attr"`
			PointData struct {
				DataArrays []struct {
					Type       string `xml:"type,attr"`
					Name       string `xml:"Name,attr"`
					Components int    `xml:"NumberOfComponents,attr"`
					Value      string `xml:",chardata"`
				} `xml:"DataArray"`
			} `xml:"PointData"`
		} `xml:"Piece"`
	} `xml:"ImageData"`
}

func parseVTI(t *testing.T, path string) *vtiFile {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	parsed := &vtiFile{}
	require.NoError(t, xml.Unmarshal(data, parsed))

	return parsed
}

func TestWriteDiffusionGrid_SampleOrder(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "Oxygen-0.vti")

	grid := rampGrid{name: "Oxygen", dims: [6]int{0, 1, 0, 1, 0, 1}, resolution: 2, boxLength: 1}
	require.NoError(t, vti.WriteDiffusionGrid(path, grid))

	parsed := parseVTI(t, path)
	arrays := parsed.Image.Piece.PointData.DataArrays
	require.Len(t, arrays, 2)

	concentration := arrays[0]
	assert.Equal(t, "Oxygen_Concentration", concentration.Name)
	assert.Equal(t, 1, concentration.Components)

	// A 2x2x2 lattice yields exactly 8 samples, x fastest and z slowest.
	samples := strings.Fields(concentration.Value)
	assert.Equal(t, []string{"0", "1", "10", "11", "100", "101", "110", "111"}, samples)

	gradient := arrays[1]
	assert.Equal(t, "Oxygen_Gradient", gradient.Name)
	assert.Equal(t, 3, gradient.Components)
	assert.Len(t, strings.Fields(gradient.Value), 8*3)
}

func TestWriteDiffusionGrid_Geometry(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "Glucose-0.vti")

	grid := rampGrid{name: "Glucose", dims: [6]int{2, 5, 4, 8, -3, 0}, resolution: 4, boxLength: 0.5}
	require.NoError(t, vti.WriteDiffusionGrid(path, grid))

	parsed := parseVTI(t, path)
	assert.Equal(t, "ImageData", parsed.Type)
	assert.Equal(t, "2 5 4 8 -3 0", parsed.Image.WholeExtent)
	assert.Equal(t, parsed.Image.WholeExtent, parsed.Image.Piece.Extent)
	assert.Equal(t, "1 2 -1.5", parsed.Image.Origin)
	assert.Equal(t, "0.5 0.5 0.5", parsed.Image.Spacing)

	// 4x5x4 lattice points.
	concentration := parsed.Image.Piece.PointData.DataArrays[0]
	assert.Len(t, strings.Fields(concentration.Value), 4*5*4)
}

func TestWriteDiffusionGrid_CreateError(t *testing.T) {
	t.Parallel()

	grid := rampGrid{name: "Oxygen", dims: [6]int{0, 1, 0, 1, 0, 1}, resolution: 2, boxLength: 1}

	err := vti.WriteDiffusionGrid(filepath.Join(t.TempDir(), "missing", "Oxygen-0.vti"), grid)
	require.Error(t, err)
	assert.ErrorIs(t, err, vizerrors.ErrCreateFile)
}

func TestWritePVTI(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "Oxygen-10.pvti")
	require.NoError(t, vti.WritePVTI(path, "Oxygen-10", 2, [6]int{0, 10, 0, 10, 0, 10}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var parsed struct {
		XMLName xml.Name `xml:"VTKFile"`
		Type    string   `xml:"type,attr"`
		Image   struct {
			WholeExtent string `xml:"WholeExtent,attr"`
			Pieces      []struct {
				Source string `xml:"Source,attr"`
			} `xml:"Piece"`
		} `xml:"PImageData"`
	}
	require.NoError(t, xml.Unmarshal(data, &parsed))

	assert.Equal(t, "PImageData", parsed.Type)
	assert.Equal(t, "0 10 0 10 0 10", parsed.Image.WholeExtent)

	require.Len(t, parsed.Image.Pieces, 2)
	for i, piece := range parsed.Image.Pieces {
		assert.Equal(t, fmt.Sprintf("Oxygen-10_%d.vti", i), piece.Source)
	}

	// Schema only, no sample values.
	assert.NotContains(t, string(data), "format=")
}
