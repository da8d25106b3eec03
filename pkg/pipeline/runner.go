package pipeline

import (
	"context"
	"maps"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/scatterspec/pkg/artifact"
	"github.com/matzehuels/scatterspec/pkg/dataset"
	"github.com/matzehuels/scatterspec/pkg/errors"
	"github.com/matzehuels/scatterspec/pkg/observability"
	"github.com/matzehuels/scatterspec/pkg/plotspec"
	"github.com/matzehuels/scatterspec/pkg/render"
	"github.com/matzehuels/scatterspec/pkg/render/sink"
	"github.com/matzehuels/scatterspec/pkg/scene"
	"github.com/matzehuels/scatterspec/pkg/table"
)

// Runner executes the pipeline.
//
// The Runner holds no per-run state, so one Runner can serve any number of
// sequential or concurrent runs with different options.
type Runner struct {
	Logger *log.Logger

	// Renderer overrides backend selection when set.
	Renderer render.Renderer
}

// NewRunner creates a runner that logs to logger.
// If logger is nil, log.Default() is used.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// NewRenderer returns the backend selected by opts.
func NewRenderer(opts Options) render.Renderer {
	if opts.Backend == BackendChart {
		return sink.NewChart(sink.WithChartDPI(float64(opts.DPI)))
	}
	return sink.NewPlot(sink.WithDPI(opts.DPI))
}

// Execute runs load → resolve → render → write.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	opts.SetDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	logger := opts.Logger
	hooks := observability.Pipeline()

	result := &Result{}

	// Stage 1: Load
	loadStart := time.Now()
	x, err := r.loadMeasurements(ctx, opts.FileA)
	if err != nil {
		return nil, err
	}
	y, err := r.loadMeasurements(ctx, opts.FileB)
	if err != nil {
		return nil, err
	}
	spec, err := r.loadSpec(ctx, opts.SpecFile)
	if err != nil {
		return nil, err
	}
	result.Stats.LoadTime = time.Since(loadStart)

	logger.Info("loaded inputs",
		"x", x.Label,
		"y", y.Label,
		"rows_x", x.Len(),
		"rows_y", y.Len(),
		"spec_rows", spec.Len(),
		"duration", result.Stats.LoadTime)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 2: Resolve
	resolveStart := time.Now()
	set := dataset.Merge(x, y)
	s, sceneStats := scene.Build(scene.Input{
		Entities:       set,
		Spec:           spec,
		Margin:         opts.Margin,
		XLimits:        limits(opts.XLimits),
		YLimits:        limits(opts.YLimits),
		LegendFontSize: opts.LegendFontSize,
		Logger:         logger,
	})
	result.Scene = s
	result.Stats.ResolveTime = time.Since(resolveStart)
	result.Stats.Entities = sceneStats.Entities
	result.Stats.Plotted = sceneStats.Plotted
	result.Stats.Layers = sceneStats.Layers
	result.Stats.Labels = sceneStats.Labels
	result.Stats.LegendEntries = sceneStats.LegendEntries
	hooks.OnResolveComplete(ctx, sceneStats.Entities, sceneStats.Plotted, sceneStats.Layers, result.Stats.ResolveTime)

	logger.Info("resolved styles",
		"entities", sceneStats.Entities,
		"plotted", sceneStats.Plotted,
		"layers", sceneStats.Layers,
		"legend", sceneStats.LegendEntries,
		"duration", result.Stats.ResolveTime)
	if set.Len() == 0 {
		logger.Warn("no entity appears in both files", "a", opts.FileA, "b", opts.FileB)
	}

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, err := r.render(ctx, s, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)

	logger.Info("rendered outputs",
		"formats", opts.Formats,
		"backend", opts.Backend,
		"duration", result.Stats.RenderTime)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 4: Write
	writeStart := time.Now()
	base, paths, err := artifact.Save(opts.OutputDir(), opts.OutputBase(), artifacts)
	if err != nil {
		return nil, err
	}
	result.Base, result.Paths = base, paths
	result.Stats.WriteTime = time.Since(writeStart)

	ah := observability.Artifact()
	ah.OnNameChosen(ctx, opts.OutputBase(), base)
	for _, p := range paths {
		logger.Debug("wrote artifact", "path", p)
	}
	for i, format := range slices.Sorted(maps.Keys(artifacts)) {
		ah.OnWrite(ctx, paths[i], len(artifacts[format]))
	}
	if base != opts.OutputBase() {
		logger.Info("output name taken, using suffix", "requested", opts.OutputBase(), "base", base)
	}

	return result, nil
}

func (r *Runner) loadMeasurements(ctx context.Context, path string) (*table.Measurements, error) {
	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, path)
	start := time.Now()
	m, err := table.Load(path)
	rows := 0
	if m != nil {
		rows = m.Len()
	}
	hooks.OnLoadComplete(ctx, path, rows, time.Since(start), err)
	return m, err
}

// loadSpec returns nil without error when no specification file is given.
func (r *Runner) loadSpec(ctx context.Context, path string) (*plotspec.Spec, error) {
	if path == "" {
		return nil, nil
	}
	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, path)
	start := time.Now()
	spec, err := plotspec.Load(path)
	hooks.OnLoadComplete(ctx, path, spec.Len(), time.Since(start), err)
	return spec, err
}

func (r *Runner) render(ctx context.Context, s render.Scene, opts Options) (map[string][]byte, error) {
	renderer := r.Renderer
	if renderer == nil {
		renderer = NewRenderer(opts)
	}
	hooks := observability.Pipeline()

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		hooks.OnRenderStart(ctx, format)
		start := time.Now()
		data, err := renderer.Render(s, format)
		hooks.OnRenderComplete(ctx, format, len(data), time.Since(start), err)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeRender, err, "render %s", format)
		}
		if len(data) == 0 {
			return nil, errors.New(errors.ErrCodeInternal, "%s renderer produced no output", format)
		}
		opts.Logger.Debug("rendered", "format", format, "bytes", len(data))
		artifacts[format] = data
	}
	return artifacts, nil
}
