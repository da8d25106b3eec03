// Package pipeline provides the scatter-plot pipeline shared by every entry
// point.
//
// # Architecture
//
// A run consists of four stages:
//
//  1. Load: read the x and y measurement tables and the optional
//     specification file
//  2. Resolve: merge the tables, resolve every entity's style and schedule
//     the layers into a scene
//  3. Render: turn the scene into each requested output format
//  4. Write: pick a free output base name and write every artifact
//
// Any error aborts the run before the write stage, so a failed run never
// leaves partial output behind.
//
// # Usage
//
//	runner := pipeline.NewRunner(logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    FileA:    "treatA.tsv",
//	    FileB:    "treatB.tsv",
//	    SpecFile: "spec.tsv",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Paths)
package pipeline

import (
	"io"
	"path/filepath"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/scatterspec/pkg/dataset"
	"github.com/matzehuels/scatterspec/pkg/errors"
	"github.com/matzehuels/scatterspec/pkg/render"
	"github.com/matzehuels/scatterspec/pkg/scene"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultOutput is the default output base name.
	DefaultOutput = "scatter"

	// DefaultBackend is the default drawing backend.
	DefaultBackend = BackendPlot

	// DefaultDPI is the default PNG resolution.
	DefaultDPI = render.DefaultDPI

	// DefaultMargin scales computed axis bounds.
	DefaultMargin = dataset.DefaultMargin

	// DefaultLegendFontSize is the legend text size in points.
	DefaultLegendFontSize = scene.DefaultLegendFontSize
)

// DefaultFormats are written when no format is requested.
var DefaultFormats = []string{render.FormatSVG, render.FormatPNG}

// Backend names.
const (
	BackendPlot  = "plot"
	BackendChart = "chart"
)

// ValidBackends is the set of supported drawing backends.
var ValidBackends = map[string]bool{
	BackendPlot:  true,
	BackendChart: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
// Field tags allow the same struct to be read from a TOML or YAML file.
type Options struct {
	// Inputs
	FileA    string `json:"file_a" toml:"file_a" yaml:"file_a"`
	FileB    string `json:"file_b" toml:"file_b" yaml:"file_b"`
	SpecFile string `json:"spec_file,omitempty" toml:"spec_file" yaml:"spec_file"`

	// Output
	Output  string   `json:"output,omitempty" toml:"output" yaml:"output"` // base name, may include a directory
	Dir     string   `json:"dir,omitempty" toml:"dir" yaml:"dir"`
	Formats []string `json:"formats,omitempty" toml:"formats" yaml:"formats"`

	// Drawing
	Backend        string    `json:"backend,omitempty" toml:"backend" yaml:"backend"`
	DPI            int       `json:"dpi,omitempty" toml:"dpi" yaml:"dpi"`
	Margin         float64   `json:"margin,omitempty" toml:"margin" yaml:"margin"`
	XLimits        []float64 `json:"xlim,omitempty" toml:"xlim" yaml:"xlim"`
	YLimits        []float64 `json:"ylim,omitempty" toml:"ylim" yaml:"ylim"`
	LegendFontSize float64   `json:"legend_font_size,omitempty" toml:"legend_font_size" yaml:"legend_font_size"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-" toml:"-" yaml:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Base is the output base name actually used, after collision suffixing.
	Base string

	// Paths lists the written files in format order.
	Paths []string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Scene is the draw list handed to the renderer.
	Scene render.Scene

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Entities      int
	Plotted       int
	Layers        int
	Labels        int
	LegendEntries int
	LoadTime      time.Duration
	ResolveTime   time.Duration
	RenderTime    time.Duration
	WriteTime     time.Duration
}

// =============================================================================
// Options Methods
// =============================================================================

// SetDefaults fills every unset field with its default.
func (o *Options) SetDefaults() {
	if o.Output == "" {
		o.Output = DefaultOutput
	}
	if len(o.Formats) == 0 {
		o.Formats = slices.Clone(DefaultFormats)
	}
	if o.Backend == "" {
		o.Backend = DefaultBackend
	}
	if o.DPI == 0 {
		o.DPI = DefaultDPI
	}
	if o.Margin == 0 {
		o.Margin = DefaultMargin
	}
	if o.LegendFontSize == 0 {
		o.LegendFontSize = DefaultLegendFontSize
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate checks that the options describe a runnable pipeline.
// Call SetDefaults first.
func (o *Options) Validate() error {
	if o.FileA == "" || o.FileB == "" {
		return errors.New(errors.ErrCodeUsage, "two measurement files are required")
	}
	if err := errors.ValidateOutputBase(o.Output); err != nil {
		return err
	}
	if !ValidBackends[o.Backend] {
		return errors.New(errors.ErrCodeUsage, "invalid backend: %q (must be one of: plot, chart)", o.Backend)
	}
	supported := NewRenderer(*o).Formats()
	for _, f := range o.Formats {
		if !slices.Contains(supported, f) {
			return errors.New(errors.ErrCodeUnsupported, "backend %s cannot write format %q (supported: %v)", o.Backend, f, supported)
		}
	}
	if o.DPI < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "dpi must be positive, got %d", o.DPI)
	}
	if o.Margin <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "margin must be positive, got %g", o.Margin)
	}
	if o.LegendFontSize < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "legend font size must be positive, got %g", o.LegendFontSize)
	}
	if err := validateLimits("x", o.XLimits); err != nil {
		return err
	}
	return validateLimits("y", o.YLimits)
}

func validateLimits(axis string, lim []float64) error {
	switch len(lim) {
	case 0:
		return nil
	case 2:
		return errors.ValidateLimits(axis, lim[0], lim[1])
	default:
		return errors.New(errors.ErrCodeInvalidInput, "%s limits need exactly two values, got %d", axis, len(lim))
	}
}

// OutputDir returns the directory artifacts are written to.
func (o *Options) OutputDir() string {
	return filepath.Join(o.Dir, filepath.Dir(o.Output))
}

// OutputBase returns the requested base name without its directory.
func (o *Options) OutputBase() string {
	return filepath.Base(o.Output)
}

func limits(lim []float64) *scene.Limits {
	if len(lim) != 2 {
		return nil
	}
	return &scene.Limits{Min: lim[0], Max: lim[1]}
}
