package export

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/simviz/vizexport/pkg/vizerrors"
)

// Params configures the export subsystem. Field names follow the simulation
// parameter file.
type Params struct {
	// OutputDir is the directory all files are written into. It is created
	// on first use.
	OutputDir string `yaml:"output_dir"`

	// VisualizeAgents whitelists agent types for export. Types not listed
	// are silently skipped.
	VisualizeAgents []AgentParams `yaml:"visualize_agents"`

	// VisualizeDiffusion whitelists diffusion grids for export.
	VisualizeDiffusion []DiffusionParams `yaml:"visualize_diffusion"`

	// VisualizationInterval exports every n-th step. Defaults to 1.
	VisualizationInterval uint64 `yaml:"visualization_interval"`

	// ExportVisualization enables the subsystem. When false every call is
	// a no-op.
	ExportVisualization bool `yaml:"export_visualization"`
}

// AgentParams selects one agent type for export.
type AgentParams struct {
	// Name is the declared agent type name.
	Name string `yaml:"name"`

	// AdditionalAttributes is reserved for per-type attribute selection.
	AdditionalAttributes []string `yaml:"additional_attributes,omitempty"`
}

// DiffusionParams selects one diffusion grid for export. The two booleans are
// reserved; both arrays are currently always emitted.
type DiffusionParams struct {
	// Name is the continuum name of the grid.
	Name string `yaml:"name"`

	Concentration bool `yaml:"concentration"`
	Gradient      bool `yaml:"gradient"`
}

// LoadParams reads and validates export parameters from a YAML file. Unknown
// keys are rejected.
func LoadParams(path string) (*Params, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", vizerrors.ErrReadFile, err)
	}

	params := &Params{VisualizationInterval: 1}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(params); err != nil {
		return nil, fmt.Errorf("%w: %w", vizerrors.ErrYAMLUnmarshal, err)
	}

	if err := params.Validate(); err != nil {
		return nil, err
	}

	return params, nil
}

// Validate checks the parameters for consistency. A disabled configuration is
// always valid.
func (p *Params) Validate() error {
	if !p.ExportVisualization {
		return nil
	}

	if p.OutputDir == "" {
		return fmt.Errorf("%w: output_dir must be set when export is enabled", vizerrors.ErrInvalidConfig)
	}

	if p.VisualizationInterval == 0 {
		return fmt.Errorf("%w: visualization_interval must be at least 1", vizerrors.ErrInvalidConfig)
	}

	return nil
}

func (p *Params) agentWhitelisted(typeName string) bool {
	for _, a := range p.VisualizeAgents {
		if a.Name == typeName {
			return true
		}
	}

	return false
}

func (p *Params) diffusionWhitelisted(name string) bool {
	for _, d := range p.VisualizeDiffusion {
		if d.Name == name {
			return true
		}
	}

	return false
}
