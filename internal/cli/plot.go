package cli

import (
	"context"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/matzehuels/scatterspec/pkg/buildinfo"
	"github.com/matzehuels/scatterspec/pkg/errors"
	"github.com/matzehuels/scatterspec/pkg/pipeline"
	"github.com/matzehuels/scatterspec/pkg/plotspec"
)

// plotOpts holds the command-line flags for the plot command.
type plotOpts struct {
	config         string    // TOML or YAML file with default options
	output         string    // output base name
	dir            string    // output directory
	formats        []string  // output formats: svg, png, pdf
	backend        string    // drawing backend: plot, chart
	dpi            int       // PNG resolution
	margin         float64   // axis bound scale factor
	xlim           []float64 // fixed x range
	ylim           []float64 // fixed y range
	legendFontSize float64   // legend text size in points
}

// plotCommand creates the command that renders a scatter plot.
func (c *CLI) plotCommand() *cobra.Command {
	var opts plotOpts

	cmd := &cobra.Command{
		Use:   appName + " <fileA> <fileB> [specFile]",
		Short: "Plot two measurement files against each other, styled by a spec file",
		Long:  plotLong(),
		Args:  cobra.MaximumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) < 2 && opts.config == "" {
				return cmd.Help()
			}
			po, err := opts.pipelineOptions(cmd, args)
			if err != nil {
				return err
			}
			return c.runPlot(cmd.Context(), po)
		},
	}

	opts.bind(cmd)
	return cmd
}

// bind registers the plot flags on cmd.
func (o *plotOpts) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.config, "config", "", "TOML or YAML file with default options")
	cmd.Flags().StringVarP(&o.output, "output", "o", pipeline.DefaultOutput, "output base name (extensions are added)")
	cmd.Flags().StringVar(&o.dir, "dir", "", "output directory (default: current directory)")
	cmd.Flags().StringSliceVarP(&o.formats, "format", "f", pipeline.DefaultFormats, "output format(s): svg, png, pdf")
	cmd.Flags().StringVar(&o.backend, "backend", pipeline.DefaultBackend, "drawing backend: plot, chart")
	cmd.Flags().IntVar(&o.dpi, "dpi", pipeline.DefaultDPI, "PNG resolution")
	cmd.Flags().Float64Var(&o.margin, "margin", pipeline.DefaultMargin, "scale factor applied to computed axis bounds")
	cmd.Flags().Float64SliceVar(&o.xlim, "xlim", nil, "fixed x axis range, e.g. --xlim=-3,3")
	cmd.Flags().Float64SliceVar(&o.ylim, "ylim", nil, "fixed y axis range, e.g. --ylim=-3,3")
	cmd.Flags().Float64Var(&o.legendFontSize, "legend-font-size", pipeline.DefaultLegendFontSize, "legend text size in points")
}

// pipelineOptions merges the config file, positional arguments and flags.
// Explicitly set flags win over the config file.
func (o *plotOpts) pipelineOptions(cmd *cobra.Command, args []string) (pipeline.Options, error) {
	var po pipeline.Options
	if o.config != "" {
		cfg, err := pipeline.LoadConfig(o.config)
		if err != nil {
			return pipeline.Options{}, err
		}
		po = cfg
	}

	if len(args) >= 2 {
		po.FileA, po.FileB = args[0], args[1]
	}
	if len(args) == 3 {
		po.SpecFile = args[2]
	}
	if po.FileA == "" || po.FileB == "" {
		return pipeline.Options{}, errors.New(errors.ErrCodeUsage, "two measurement files are required")
	}

	flags := cmd.Flags()
	use := func(name string, empty bool) bool { return flags.Changed(name) || empty }
	if use("output", po.Output == "") {
		po.Output = o.output
	}
	if use("dir", po.Dir == "") {
		po.Dir = o.dir
	}
	if use("format", len(po.Formats) == 0) {
		po.Formats = normalizeFormats(o.formats)
	}
	if use("backend", po.Backend == "") {
		po.Backend = o.backend
	}
	if use("dpi", po.DPI == 0) {
		po.DPI = o.dpi
	}
	if use("margin", po.Margin == 0) {
		po.Margin = o.margin
	}
	if use("xlim", len(po.XLimits) == 0) {
		po.XLimits = o.xlim
	}
	if use("ylim", len(po.YLimits) == 0) {
		po.YLimits = o.ylim
	}
	if use("legend-font-size", po.LegendFontSize == 0) {
		po.LegendFontSize = o.legendFontSize
	}
	return po, nil
}

// normalizeFormats lowercases formats and drops blanks and duplicates.
func normalizeFormats(formats []string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, f := range formats {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" || seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	return out
}

// runPlot executes the pipeline and reports the written files.
func (c *CLI) runPlot(ctx context.Context, opts pipeline.Options) error {
	logger := loggerFromContext(ctx)
	opts.Logger = logger
	logger.Debug(appName, "version", buildinfo.Short())
	prog := newProgress(logger)

	var spinner *Spinner
	if logger.GetLevel() > LogDebug && isatty.IsTerminal(os.Stderr.Fd()) {
		spinner = newSpinnerWithContext(ctx, os.Stderr, "Plotting...")
		spinner.Start()
	}

	result, err := c.newRunner().Execute(ctx, opts)
	if spinner != nil {
		spinner.Stop()
	}
	if err != nil {
		return err
	}

	prog.done("plot finished", "points", result.Stats.Plotted, "files", len(result.Paths))
	printSuccess("Plotted %d of %d entities", result.Stats.Plotted, result.Stats.Entities)
	printStats(result.Stats)
	if result.Base != opts.OutputBase() {
		printWarning("%s already exists, wrote %s instead", opts.OutputBase(), result.Base)
	}
	for _, p := range result.Paths {
		printFile(p)
	}
	return nil
}

func plotLong() string {
	var b strings.Builder
	b.WriteString(`Plot two measurement files against each other.

fileA and fileB are tab or comma separated files whose first column is an
entity key and whose second column is a number. The delimiter is tab when the
header splits into more than one field on tab, and comma otherwise. The header
of the second column becomes the axis label. Entities missing from either file
are ignored, and columns beyond the first two are ignored.

The optional specFile styles entities individually. It uses the same delimiter
rule and needs a header with these columns, in any order:

  `)
	b.WriteString(strings.Join(plotspec.Columns, "\t"))
	b.WriteString(`

Additional columns are ignored. "Plot or not?" and "Label or not?" are true
only for the value 1. Layer must be an integer; higher layers are drawn on
top and rows without a layer go to the bottom. A Marker of 0 means the point
marker. Entities without a row are drawn as small blue points.

Outputs are written as <output>.svg and <output>.png (500 dpi). Existing files
are never overwritten: the first free name among <output>_0, <output>_1, ...
is used instead.

A fileA named like a subcommand ("columns", "completion", "help") runs that
subcommand instead. Put the files after -- to plot them:

  `+appName+` -- columns b.tsv`)
	return b.String()
}
