// Package vtu writes point-cloud datasets as VTK XML unstructured grids.
//
// Agents become positioned points with per-point attribute arrays and trivial
// one-vertex-per-point connectivity, so any VTK-aware tool can load the output
// without this project depending on VTK itself. Output is ASCII-encoded only.
package vtu
