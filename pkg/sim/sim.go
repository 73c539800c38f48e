package sim

// Agent is a single simulated entity positioned in space.
type Agent interface {
	// GetUID returns the stable identifier of the agent.
	GetUID() uint64
	// GetTypeName returns the declared type of the agent, used to group
	// agents into per-type datasets and matched against the export whitelist.
	GetTypeName() string
	// GetPosition returns the agent position as (x, y, z).
	GetPosition() [3]float64
	// GetDiameter returns the agent diameter.
	GetDiameter() float64
}

// Volumer is implemented by agent kinds that track a volume. Agents without
// it are exported with a zero volume so that downstream columns stay fixed.
type Volumer interface {
	GetVolume() float64
}

// Masser is implemented by agent kinds that track a mass. Agents without it
// are exported with a zero mass.
type Masser interface {
	GetMass() float64
}

// DiffusionGrid is a regular scalar field lattice produced by the diffusion
// solver. Values and gradients are sampled on demand at lattice coordinates.
type DiffusionGrid interface {
	// GetContinuumName returns the substance name, matched against the
	// export whitelist and used to name output arrays and files.
	GetContinuumName() string
	// GetDimensions returns the lattice extent as
	// (x_min, x_max, y_min, y_max, z_min, z_max).
	GetDimensions() [6]int
	// GetResolution returns the number of boxes per axis.
	GetResolution() int
	// GetBoxLength returns the physical edge length of one lattice box.
	GetBoxLength() float64
	// GetValue returns the field value at a lattice coordinate.
	GetValue(coord [3]float64) float64
	// GetGradient returns the field gradient at a lattice coordinate.
	GetGradient(coord [3]float64) [3]float64
}

// ResourceManager iterates the live simulation state.
type ResourceManager interface {
	ForEachAgent(fn func(Agent))
	ForEachDiffusionGrid(fn func(DiffusionGrid))
}
