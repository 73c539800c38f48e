package export

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/semaphore"

	"github.com/simviz/vizexport/pkg/sim"
	"github.com/simviz/vizexport/pkg/vizerrors"
	"github.com/simviz/vizexport/pkg/vti"
	"github.com/simviz/vizexport/pkg/vtu"
)

// Exporter writes per-step visualization snapshots. It keeps no state across
// steps beyond the initialized flag and the output path, and is meant to be
// driven from a single controlling goroutine.
type Exporter struct {
	params      *Params
	rm          sim.ResourceManager
	logger      *slog.Logger
	workerCount int
	initialized bool
}

// Option configures an [Exporter].
type Option func(*Exporter)

// WithWorkerCount pins the number of piece-writing workers. Zero (the
// default) resolves the hardware parallelism once per export call.
func WithWorkerCount(n int) Option {
	return func(e *Exporter) {
		e.workerCount = n
	}
}

// WithLogger sets the base logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Exporter) {
		e.logger = logger
	}
}

// New creates an [Exporter] reading simulation state from rm.
func New(params *Params, rm sim.ResourceManager, opts ...Option) *Exporter {
	e := &Exporter{
		params: params,
		rm:     rm,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(e)
	}

	e.logger = e.logger.With(slog.String("component", "export"))

	return e
}

// Initialize creates the output directory. A directory failure is logged once
// here; subsequent per-file writes into it fail and are logged individually.
func (e *Exporter) Initialize() {
	if e.initialized || !e.params.ExportVisualization {
		return
	}

	if err := os.MkdirAll(e.params.OutputDir, 0o750); err != nil {
		e.logger.Error("failed to create output directory",
			slog.String("path", e.params.OutputDir),
			slog.Any("error", fmt.Errorf("%w: %w", vizerrors.ErrCreateDir, err)),
		)
	}

	e.initialized = true
	e.logger.Info("initialized visualization export", slog.String("output_dir", e.params.OutputDir))
}

// Finalize logs the end of the export session.
func (e *Exporter) Finalize() {
	if !e.initialized {
		return
	}

	e.logger.Info("finalized visualization export")
}

// ExportVisualization exports the current simulation state for step. It is a
// no-op when export is disabled, not initialized, or the step is not aligned
// with the configured interval. Failures are logged and swallowed; nothing
// propagates back into the step loop.
func (e *Exporter) ExportVisualization(step uint64) {
	if !e.params.ExportVisualization || !e.initialized {
		return
	}

	interval := e.params.VisualizationInterval
	if interval == 0 {
		interval = 1
	}

	if step%interval != 0 {
		return
	}

	logger := e.logger.With(
		slog.String("run_id", uuid.NewString()),
		slog.Uint64("step", step),
	)
	logger.Info("exporting visualization")

	j := e.newJob(step)
	e.exportAgents(j, logger)
	e.exportDiffusionGrids(j, logger)
}

// job is the transient snapshot of one export call. It is built fresh per
// step and discarded once writing completes.
type job struct {
	agentsByType map[string][]sim.Agent
	typeNames    []string // first-seen order
	grids        []sim.DiffusionGrid
	step         uint64
}

func (e *Exporter) newJob(step uint64) *job {
	j := &job{
		step:         step,
		agentsByType: map[string][]sim.Agent{},
	}

	e.rm.ForEachAgent(func(agent sim.Agent) {
		name := agent.GetTypeName()
		if _, ok := j.agentsByType[name]; !ok {
			j.typeNames = append(j.typeNames, name)
		}

		j.agentsByType[name] = append(j.agentsByType[name], agent)
	})

	e.rm.ForEachDiffusionGrid(func(grid sim.DiffusionGrid) {
		j.grids = append(j.grids, grid)
	})

	return j
}

func (e *Exporter) exportAgents(j *job, logger *slog.Logger) {
	if len(e.params.VisualizeAgents) == 0 {
		return
	}

	workers := e.workerCount
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	for _, typeName := range j.typeNames {
		agents := j.agentsByType[typeName]
		if len(agents) == 0 {
			continue
		}

		if !e.params.agentWhitelisted(typeName) {
			logger.Debug("agent type not selected for export", slog.String("type", typeName))

			continue
		}

		prefix := fmt.Sprintf("%s-%d", typeName, j.step)

		if workers <= 1 {
			path := filepath.Join(e.params.OutputDir, prefix+vtu.Ext)
			if err := vtu.WriteAgents(path, agents); err != nil {
				logger.Error("failed to write agents",
					slog.String("path", path),
					slog.Any("error", err),
				)
			}

			continue
		}

		e.exportAgentPieces(prefix, agents, workers, logger)
	}
}

// exportAgentPieces fans one agent group out across workers. Every worker
// writes its own exclusive piece file; piece failures are isolated and do not
// abort sibling pieces. The manifest is written only after all pieces have
// been attempted, so a reader can never observe it referencing a piece that
// was never dispatched.
func (e *Exporter) exportAgentPieces(prefix string, agents []sim.Agent, workers int, logger *slog.Logger) {
	ctx := context.Background()
	sem := semaphore.NewWeighted(int64(workers))
	errChan := make(chan error, workers)

	for i, r := range Partition(len(agents), workers) {
		if err := sem.Acquire(ctx, 1); err != nil {
			logger.Error("failed to acquire worker", slog.Any("error", err))

			return
		}

		path := filepath.Join(e.params.OutputDir, fmt.Sprintf("%s_%d%s", prefix, i, vtu.Ext))
		piece := agents[r.Start:r.End]

		go func() {
			defer sem.Release(1)

			if err := vtu.WriteAgents(path, piece); err != nil {
				errChan <- fmt.Errorf("piece %q: %w", filepath.Base(path), err)

				return
			}

			errChan <- nil
		}()
	}

	// Join barrier before the manifest.
	if err := sem.Acquire(ctx, int64(workers)); err != nil {
		logger.Error("failed to join workers", slog.Any("error", err))

		return
	}

	close(errChan)

	var merr error
	for err := range errChan {
		if err != nil {
			merr = multierror.Append(merr, err)
		}
	}

	if merr != nil {
		logger.Error("failed to write agent pieces", slog.Any("error", merr))
	}

	// The manifest references the expected piece names even when some pieces
	// failed to materialize (at-least-attempt semantics).
	path := filepath.Join(e.params.OutputDir, prefix+vtu.ManifestExt)
	if err := vtu.WritePVTU(path, prefix, workers); err != nil {
		logger.Error("failed to write manifest",
			slog.String("path", path),
			slog.Any("error", err),
		)
	}
}

// exportDiffusionGrids writes each whitelisted grid with a single writer.
// Field export is deliberately never split across workers.
func (e *Exporter) exportDiffusionGrids(j *job, logger *slog.Logger) {
	if len(e.params.VisualizeDiffusion) == 0 {
		return
	}

	for _, grid := range j.grids {
		name := grid.GetContinuumName()

		if !e.params.diffusionWhitelisted(name) {
			logger.Debug("diffusion grid not selected for export", slog.String("grid", name))

			continue
		}

		path := filepath.Join(e.params.OutputDir, fmt.Sprintf("%s-%d%s", name, j.step, vti.Ext))
		logger.Debug("writing diffusion grid",
			slog.String("grid", name),
			slog.Int("resolution", grid.GetResolution()),
		)

		if err := vti.WriteDiffusionGrid(path, grid); err != nil {
			logger.Error("failed to write diffusion grid",
				slog.String("path", path),
				slog.Any("error", err),
			)
		}
	}
}
