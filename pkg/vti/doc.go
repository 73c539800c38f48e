// Package vti writes diffusion field lattices as VTK XML image data.
//
// A lattice is addressed by its integer extent, a physical origin, and a
// uniform spacing derived from the grid's box length. Output is ASCII-encoded
// only.
package vti
