package vtu

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
	Ext = ".vtu"
	// ManifestExt is the file extension for parallel manifest files.
	ManifestExt = ".pvtu"

	// VTK cell type for a single vertex.
	vertexCellType = 1
)

// WriteAgents writes agents, in input order, as one unstructured-grid piece.
// Every agent becomes one point and one vertex cell, so NumberOfPoints always
// equals NumberOfCells.
func WriteAgents(path string, agents []sim.Agent) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %w", vizerrors.ErrCreateFile, err)
	}

	w := bufio.NewWriter(f)
	writeHeader(w, len(agents))
	writePoints(w, agents)
	writePointData(w, agents)
	writeCells(w, len(agents))
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

// WritePVTU writes a parallel manifest referencing pieces files named
// "{piecePrefix}_{i}.vtu". The manifest carries the shared attribute schema
// but no values.
func WritePVTU(path, piecePrefix string, pieces int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %w", vizerrors.ErrCreateFile, err)
	}

	w := bufio.NewWriter(f)
	writeManifestHeader(w)

	for i := 0; i < pieces; i++ {
		fmt.Fprintf(w, "    <Piece Source=%q/>\n", fmt.Sprintf("%s_%d%s", piecePrefix, i, Ext))
	}

	fmt.Fprintf(w, "  </PUnstructuredGrid>\n")
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

func writeHeader(w io.Writer, points int) {
	fmt.Fprintf(w, "<?xml version=\"1.0\"?>\n")
	fmt.Fprintf(w, "<VTKFile type=\"UnstructuredGrid\" version=\"1.0\" byte_order=\"LittleEndian\">\n")
	fmt.Fprintf(w, "  <UnstructuredGrid>\n")
	fmt.Fprintf(w, "    <Piece NumberOfPoints=\"%d\" NumberOfCells=\"%d\">\n", points, points)
}

func writePoints(w io.Writer, agents []sim.Agent) {
	fmt.Fprintf(w, "      <Points>\n")
	fmt.Fprintf(w, "        <DataArray type=%q NumberOfComponents=\"3\" format=\"ascii\">\n",
		vtkutil.RealTypeName())

	for _, agent := range agents {
		pos := agent.GetPosition()
		fmt.Fprintf(w, "          %s %s %s\n",
			vtkutil.FormatReal(pos[0]), vtkutil.FormatReal(pos[1]), vtkutil.FormatReal(pos[2]))
	}

	fmt.Fprintf(w, "        </DataArray>\n")
	fmt.Fprintf(w, "      </Points>\n")
}

// writePointData writes the fixed-order attribute arrays. The schema is the
// same for every agent kind: volume and mass are written as zero when the
// kind does not track them, keeping downstream columns stable.
func writePointData(w io.Writer, agents []sim.Agent) {
	fmt.Fprintf(w, "      <PointData>\n")

	fmt.Fprintf(w, "        <DataArray type=\"UInt64\" Name=\"AgentID\" NumberOfComponents=\"1\" format=\"ascii\">\n")
	for _, agent := range agents {
		fmt.Fprintf(w, "          %d\n", agent.GetUID())
	}
	fmt.Fprintf(w, "        </DataArray>\n")

	fmt.Fprintf(w, "        <DataArray type=%q Name=\"Diameter\" NumberOfComponents=\"1\" format=\"ascii\">\n",
		vtkutil.RealTypeName())
	for _, agent := range agents {
		fmt.Fprintf(w, "          %s\n", vtkutil.FormatReal(agent.GetDiameter()))
	}
	fmt.Fprintf(w, "        </DataArray>\n")

	fmt.Fprintf(w, "        <DataArray type=%q Name=\"Position\" NumberOfComponents=\"3\" format=\"ascii\">\n",
		vtkutil.RealTypeName())
	for _, agent := range agents {
		pos := agent.GetPosition()
		fmt.Fprintf(w, "          %s %s %s\n",
			vtkutil.FormatReal(pos[0]), vtkutil.FormatReal(pos[1]), vtkutil.FormatReal(pos[2]))
	}
	fmt.Fprintf(w, "        </DataArray>\n")

	fmt.Fprintf(w, "        <DataArray type=%q Name=\"Volume\" NumberOfComponents=\"1\" format=\"ascii\">\n",
		vtkutil.RealTypeName())
	for _, agent := range agents {
		var volume float64
		if v, ok := agent.(sim.Volumer); ok {
			volume = v.GetVolume()
		}
		fmt.Fprintf(w, "          %s\n", vtkutil.FormatReal(volume))
	}
	fmt.Fprintf(w, "        </DataArray>\n")

	fmt.Fprintf(w, "        <DataArray type=%q Name=\"Mass\" NumberOfComponents=\"1\" format=\"ascii\">\n",
		vtkutil.RealTypeName())
	for _, agent := range agents {
		var mass float64
		if m, ok := agent.(sim.Masser); ok {
			mass = m.GetMass()
		}
		fmt.Fprintf(w, "          %s\n", vtkutil.FormatReal(mass))
	}
	fmt.Fprintf(w, "        </DataArray>\n")

	fmt.Fprintf(w, "      </PointData>\n")
}

func writeCells(w io.Writer, cells int) {
	fmt.Fprintf(w, "      <Cells>\n")

	// Each point is its own vertex cell.
	fmt.Fprintf(w, "        <DataArray type=\"UInt64\" Name=\"connectivity\" format=\"ascii\">\n")
	for i := 0; i < cells; i++ {
		fmt.Fprintf(w, "          %d\n", i)
	}
	fmt.Fprintf(w, "        </DataArray>\n")

	fmt.Fprintf(w, "        <DataArray type=\"UInt64\" Name=\"offsets\" format=\"ascii\">\n")
	for i := 0; i < cells; i++ {
		fmt.Fprintf(w, "          %d\n", i+1)
	}
	fmt.Fprintf(w, "        </DataArray>\n")

	fmt.Fprintf(w, "        <DataArray type=\"UInt8\" Name=\"types\" format=\"ascii\">\n")
	for i := 0; i < cells; i++ {
		fmt.Fprintf(w, "          %d\n", vertexCellType)
	}
	fmt.Fprintf(w, "        </DataArray>\n")

	fmt.Fprintf(w, "      </Cells>\n")
}

func writeFooter(w io.Writer) {
	fmt.Fprintf(w, "    </Piece>\n")
	fmt.Fprintf(w, "  </UnstructuredGrid>\n")
	fmt.Fprintf(w, "</VTKFile>\n")
}

func writeManifestHeader(w io.Writer) {
	realType := vtkutil.RealTypeName()

	fmt.Fprintf(w, "<?xml version=\"1.0\"?>\n")
	fmt.Fprintf(w, "<VTKFile type=\"PUnstructuredGrid\" version=\"1.0\" byte_order=\"LittleEndian\">\n")
	fmt.Fprintf(w, "  <PUnstructuredGrid GhostLevel=\"0\">\n")

	fmt.Fprintf(w, "    <PPointData>\n")
	fmt.Fprintf(w, "      <PDataArray type=\"UInt64\" Name=\"AgentID\" NumberOfComponents=\"1\"/>\n")
	fmt.Fprintf(w, "      <PDataArray type=%q Name=\"Diameter\" NumberOfComponents=\"1\"/>\n", realType)
	fmt.Fprintf(w, "      <PDataArray type=%q Name=\"Position\" NumberOfComponents=\"3\"/>\n", realType)
	fmt.Fprintf(w, "      <PDataArray type=%q Name=\"Volume\" NumberOfComponents=\"1\"/>\n", realType)
	fmt.Fprintf(w, "      <PDataArray type=%q Name=\"Mass\" NumberOfComponents=\"1\"/>\n", realType)
	fmt.Fprintf(w, "    </PPointData>\n")

	fmt.Fprintf(w, "    <PPoints>\n")
	fmt.Fprintf(w, "      <PDataArray type=%q NumberOfComponents=\"3\"/>\n", realType)
	fmt.Fprintf(w, "    </PPoints>\n")
}
