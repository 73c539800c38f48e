package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/simviz/vizexport/pkg/export"
	"github.com/simviz/vizexport/pkg/snapshot"
)

const (
	exportDesc = `This command exports a simulation snapshot to VTK XML files.
`
	exportExample = `  vizexport export -p params.yaml -s snapshot.yaml

  # Export ten consecutive steps with four piece writers
  vizexport export -p params.yaml -s snapshot.yaml --steps 10 --workers 4

  # Override the output directory from the parameter file
  vizexport export -p params.yaml -s snapshot.yaml -o /tmp/viz
`
)

// NewExportCmd returns the export command.
func NewExportCmd(arg *RootArgs) *cobra.Command {
	args := NewExportArgs(arg)

	cmd := &cobra.Command{
		Use:          "export",
		Short:        "Export a simulation snapshot to VTK XML files",
		Long:         exportDesc,
		Example:      exportExample,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			params, err := export.LoadParams(args.GetParams())
			if err != nil {
				return fmt.Errorf("failed to load export parameters: %w", err)
			}

			if out := args.GetOutput(); out != "" {
				params.OutputDir = out
			}

			snap, err := snapshot.Load(args.GetSnapshot())
			if err != nil {
				return fmt.Errorf("failed to load snapshot: %w", err)
			}

			e := export.New(params, snap, export.WithWorkerCount(args.GetWorkers()))
			e.Initialize()

			for step := 0; step < args.GetSteps(); step++ {
				e.ExportVisualization(uint64(step))
			}

			e.Finalize()

			return nil
		},
	}

	cmd.Flags().StringVarP(args.params, "params", "p", "", "Specify the export parameter file")
	must(cmd.MarkFlagRequired("params"))
	must(cmd.MarkFlagFilename("params"))

	cmd.Flags().StringVarP(args.snapshot, "snapshot", "s", "", "Specify the snapshot file")
	must(cmd.MarkFlagRequired("snapshot"))
	must(cmd.MarkFlagFilename("snapshot"))

	cmd.Flags().StringVarP(args.output, "output", "o", "", "Override the output directory")
	cmd.Flags().IntVar(args.steps, "steps", 1, "Number of simulation steps to export")
	cmd.Flags().IntVar(args.workers, "workers", 0, "Number of piece writers (0 = hardware parallelism)")

	return cmd
}

// ExportArgs holds the arguments for the export command.
type ExportArgs struct {
	params   *string
	snapshot *string
	output   *string
	steps    *int
	workers  *int
	*RootArgs
}

// NewExportArgs creates a new [ExportArgs].
func NewExportArgs(args *RootArgs) *ExportArgs {
	return &ExportArgs{
		params:   new(string),
		snapshot: new(string),
		output:   new(string),
		steps:    new(int),
		workers:  new(int),
		RootArgs: args,
	}
}

func (a *ExportArgs) GetParams() string {
	return *a.params
}

func (a *ExportArgs) GetSnapshot() string {
	return *a.snapshot
}

func (a *ExportArgs) GetOutput() string {
	return *a.output
}

func (a *ExportArgs) GetSteps() int {
	return *a.steps
}

func (a *ExportArgs) GetWorkers() int {
	return *a.workers
}
