package vtkutil

import (
	"fmt"
	"strconv"
	"unsafe"
)

// Real is the floating-point representation used for all exported values.
type Real = float64

// RealBits returns the width of [Real] in bits. It is derived from the
// in-memory representation so the XML type tags can never misdescribe the
// written values.
func RealBits() int {
	return int(unsafe.Sizeof(Real(0))) * 8
}

// RealTypeName returns the VTK DataArray type tag for [Real], e.g. "Float64".
func RealTypeName() string {
	return fmt.Sprintf("Float%d", RealBits())
}

// FormatReal renders v as the shortest ASCII decimal that round-trips.
func FormatReal(v Real) string {
	return strconv.FormatFloat(v, 'g', -1, RealBits())
}
