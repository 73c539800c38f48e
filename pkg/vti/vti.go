package vti

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/simviz/vizexport/pkg/sim"
	"github.com/simviz/vizexport/pkg/vizerrors"
	"github.com/simviz/vizexport/pkg/vtkutil"
)

const (
	// Ext is the file extension for single-piece files.
	Ext = ".vti"
	// ManifestExt is the file extension for parallel manifest files.
	ManifestExt = ".pvti"
)

// WriteDiffusionGrid writes one field lattice as a single image-data piece.
//
// The extent is the grid's dimensions unchanged, the origin is the extent
// minimum scaled by the box length, and the spacing is the box length on all
// axes. Lattice points are sampled in (z, y, x) nested order with z outermost;
// downstream tooling depends on that order, so it must not change.
func WriteDiffusionGrid(path string, grid sim.DiffusionGrid) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %w", vizerrors.ErrCreateFile, err)
	}

	dims := grid.GetDimensions()
	boxLength := grid.GetBoxLength()

	origin := [3]float64{
		float64(dims[0]) * boxLength,
		float64(dims[2]) * boxLength,
		float64(dims[4]) * boxLength,
	}
	spacing := [3]float64{boxLength, boxLength, boxLength}

	w := bufio.NewWriter(f)
	writeHeader(w, dims, origin, spacing)
	writePointData(w, grid)
	writeFooter(w)

	if err := w.Flush(); err != nil {
		f.Close()

		return fmt.Errorf("%w: %w", vizerrors.ErrWriteFile, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %w", vizerrors.ErrWriteFile, err)
	}

	return nil
}

// WritePVTI writes a parallel manifest declaring wholeExtent and the shared
// schema, referencing piece files named "{piecePrefix}_{i}.vti". It carries no
// sample values.
func WritePVTI(path, piecePrefix string, pieces int, wholeExtent [6]int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %w", vizerrors.ErrCreateFile, err)
	}

	realType := vtkutil.RealTypeName()

	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "<?xml version=\"1.0\"?>\n")
	fmt.Fprintf(w, "<VTKFile type=\"PImageData\" version=\"1.0\" byte_order=\"LittleEndian\">\n")
	fmt.Fprintf(w, "  <PImageData WholeExtent=%q GhostLevel=\"0\">\n", formatExtent(wholeExtent))

	fmt.Fprintf(w, "    <PPointData>\n")
	fmt.Fprintf(w, "      <PDataArray type=%q Name=\"Concentration\" NumberOfComponents=\"1\"/>\n", realType)
	fmt.Fprintf(w, "      <PDataArray type=%q Name=\"Gradient\" NumberOfComponents=\"3\"/>\n", realType)
	fmt.Fprintf(w, "    </PPointData>\n")

	for i := 0; i < pieces; i++ {
		fmt.Fprintf(w, "    <Piece Source=%q/>\n", fmt.Sprintf("%s_%d%s", piecePrefix, i, Ext))
	}

	fmt.Fprintf(w, "  </PImageData>\n")
	fmt.Fprintf(w, "</VTKFile>\n")

	if err := w.Flush(); err != nil {
		f.Close()

		return fmt.Errorf("%w: %w", vizerrors.ErrWriteFile, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %w", vizerrors.ErrWriteFile, err)
	}

	return nil
}

func writeHeader(w io.Writer, extent [6]int, origin, spacing [3]float64) {
	fmt.Fprintf(w, "<?xml version=\"1.0\"?>\n")
	fmt.Fprintf(w, "<VTKFile type=\"ImageData\" version=\"1.0\" byte_order=\"LittleEndian\">\n")
	fmt.Fprintf(w, "  <ImageData WholeExtent=%q Origin=\"%s %s %s\" Spacing=\"%s %s %s\">\n",
		formatExtent(extent),
		vtkutil.FormatReal(origin[0]), vtkutil.FormatReal(origin[1]), vtkutil.FormatReal(origin[2]),
		vtkutil.FormatReal(spacing[0]), vtkutil.FormatReal(spacing[1]), vtkutil.FormatReal(spacing[2]))
	fmt.Fprintf(w, "    <Piece Extent=%q>\n", formatExtent(extent))
}

func writePointData(w io.Writer, grid sim.DiffusionGrid) {
	name := grid.GetContinuumName()
	realType := vtkutil.RealTypeName()

	fmt.Fprintf(w, "      <PointData>\n")

	fmt.Fprintf(w, "        <DataArray type=%q Name=\"%s_Concentration\" NumberOfComponents=\"1\" format=\"ascii\">\n",
		realType, name)
	forEachLatticePoint(grid.GetDimensions(), func(coord [3]float64) {
		fmt.Fprintf(w, "          %s\n", vtkutil.FormatReal(grid.GetValue(coord)))
	})
	fmt.Fprintf(w, "        </DataArray>\n")

	fmt.Fprintf(w, "        <DataArray type=%q Name=\"%s_Gradient\" NumberOfComponents=\"3\" format=\"ascii\">\n",
		realType, name)
	forEachLatticePoint(grid.GetDimensions(), func(coord [3]float64) {
		g := grid.GetGradient(coord)
		fmt.Fprintf(w, "          %s %s %s\n",
			vtkutil.FormatReal(g[0]), vtkutil.FormatReal(g[1]), vtkutil.FormatReal(g[2]))
	})
	fmt.Fprintf(w, "        </DataArray>\n")

	fmt.Fprintf(w, "      </PointData>\n")
}

// forEachLatticePoint visits every point of the extent in (z, y, x) nested
// order, z outermost. The order is an external contract shared with readers
// of the produced files.
func forEachLatticePoint(dims [6]int, fn func(coord [3]float64)) {
	nx := dims[1] - dims[0] + 1
	ny := dims[3] - dims[2] + 1
	nz := dims[5] - dims[4] + 1

	for z := 0; z < nz; z++ {
		for y := 0; y < ny; y++ {
			for x := 0; x < nx; x++ {
				fn([3]float64{
					float64(dims[0] + x),
					float64(dims[2] + y),
					float64(dims[4] + z),
				})
			}
		}
	}
}

func writeFooter(w io.Writer) {
	fmt.Fprintf(w, "    </Piece>\n")
	fmt.Fprintf(w, "  </ImageData>\n")
	fmt.Fprintf(w, "</VTKFile>\n")
}

func formatExtent(extent [6]int) string {
	return fmt.Sprintf("%d %d %d %d %d %d",
		extent[0], extent[1], extent[2], extent[3], extent[4], extent[5])
}
