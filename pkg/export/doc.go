// Package export coordinates per-step visualization export.
//
// The exporter pulls a read-only snapshot from the simulation's resource
// manager, groups agents by declared type against a configured whitelist,
// computes a deterministic partition across workers, and delegates byte
// writing to the vtu and vti serializers. Data flow is strictly one-way:
// nothing is ever written back into simulation state, and no failure ever
// propagates into the simulation step loop.
package export
