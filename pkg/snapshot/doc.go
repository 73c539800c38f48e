// Package snapshot builds an in-memory simulation snapshot from a YAML
// document, for exporting outside a running simulation.
//
// A snapshot holds a fixed agent population plus analytic diffusion fields
// evaluated on demand, and satisfies [sim.ResourceManager] so it can be fed
// straight into the export coordinator.
package snapshot
