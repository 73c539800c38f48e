package snapshot

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/simviz/vizexport/pkg/sim"
	"github.com/simviz/vizexport/pkg/vizerrors"
)

// Snapshot is a fixed, read-only simulation state. It satisfies
// [sim.ResourceManager].
type Snapshot struct {
	agents []sim.Agent
	grids  []sim.DiffusionGrid
}

func (s *Snapshot) ForEachAgent(fn func(sim.Agent)) {
	for _, a := range s.agents {
		fn(a)
	}
}

func (s *Snapshot) ForEachDiffusionGrid(fn func(sim.DiffusionGrid)) {
	for _, g := range s.grids {
		fn(g)
	}
}

type document struct {
	Agents []agentSpec `yaml:"agents"`
	Fields []fieldSpec `yaml:"fields"`
}

type agentSpec struct {
	Volume   *float64   `yaml:"volume,omitempty"`
	Mass     *float64   `yaml:"mass,omitempty"`
	Type     string     `yaml:"type"`
	Position [3]float64 `yaml:"position"`
	ID       uint64     `yaml:"id"`
	Diameter float64    `yaml:"diameter"`
}

// Load reads a snapshot from a YAML file. Unknown keys are rejected.
func Load(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", vizerrors.ErrReadFile, err)
	}

	return Parse(data)
}

// Parse builds a snapshot from YAML bytes.
func Parse(data []byte) (*Snapshot, error) {
	doc := &document{}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(doc); err != nil {
		return nil, fmt.Errorf("%w: %w", vizerrors.ErrYAMLUnmarshal, err)
	}

	s := &Snapshot{}

	for _, spec := range doc.Agents {
		s.agents = append(s.agents, newAgent(spec))
	}

	for _, spec := range doc.Fields {
		field, err := newField(spec)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", spec.Name, err)
		}

		s.grids = append(s.grids, field)
	}

	return s, nil
}

type baseAgent struct {
	typeName string
	position [3]float64
	uid      uint64
	diameter float64
}

func (a baseAgent) GetUID() uint64          { return a.uid }
func (a baseAgent) GetTypeName() string     { return a.typeName }
func (a baseAgent) GetPosition() [3]float64 { return a.position }
func (a baseAgent) GetDiameter() float64    { return a.diameter }

// somaticAgent additionally tracks volume and mass, satisfying [sim.Volumer]
// and [sim.Masser].
type somaticAgent struct {
	baseAgent

	volume float64
	mass   float64
}

func (a somaticAgent) GetVolume() float64 { return a.volume }
func (a somaticAgent) GetMass() float64   { return a.mass }

func newAgent(spec agentSpec) sim.Agent {
	base := baseAgent{
		uid:      spec.ID,
		typeName: spec.Type,
		position: spec.Position,
		diameter: spec.Diameter,
	}

	if spec.Volume == nil && spec.Mass == nil {
		return base
	}

	a := somaticAgent{baseAgent: base}
	if spec.Volume != nil {
		a.volume = *spec.Volume
	}
	if spec.Mass != nil {
		a.mass = *spec.Mass
	}

	return a
}
