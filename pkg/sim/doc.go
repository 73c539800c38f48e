// Package sim declares the read-only interfaces through which the export
// subsystem observes a running simulation.
//
// The simulation owns agents and diffusion grids; the exporter only samples
// them for the duration of a single export call and never mutates or retains
// them. Geometry supplied by these interfaces is assumed valid.
package sim
