// Package pkg provides the core libraries for scatterspec, a scatter plot tool
// whose per-entity styling is resolved from a specification table.
//
// # Overview
//
// scatterspec reads two measurement files that share an entity key column,
// plots every shared entity at (value in A, value in B), and styles each point
// from an optional specification file. The pkg directory is organized as a
// straight pipeline:
//
//	fileA, fileB             specFile
//	     ↓                       ↓
//	[table] rows + numbers   [plotspec] per-entity styles
//	     ↓                       ↓
//	[dataset] shared entities ───┤
//	                             ↓
//	              [layer] draw order by layer
//	                             ↓
//	       [scene] draw list + [legend] entries
//	                             ↓
//	            [render/sink] SVG / PNG / PDF bytes
//	                             ↓
//	        [artifact] collision-free output names
//
// [pipeline] runs all stages for the CLI and reports progress through
// [observability] hooks.
//
// # Quick Start
//
//	opts := pipeline.Options{
//	    FileA:    "treatA.tsv",
//	    FileB:    "treatB.tsv",
//	    SpecFile: "spec.tsv",
//	}
//	res, err := pipeline.NewRunner(logger).Execute(ctx, opts)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(res.Paths) // [scatter.svg scatter.png]
//
// # Main Packages
//
// [table] - Delimited and spreadsheet readers. The delimiter is tab when the
// header splits on tab, and comma otherwise.
//
// [dataset] - The intersection of two measurement tables and axis bounds.
//
// [plotspec] - Specification files: required columns, per-entity styles and
// the default style for entities without a row.
//
// [layer] - Layer keys and the stable bottom-to-top draw schedule.
//
// [legend] - First-seen legend entries keyed by legend group.
//
// [scene] - Assembles reference lines, points, labels and the legend into a
// backend-neutral [render.Scene].
//
// [render] - Scene types, color and marker parsing. Backends live in
// [render/sink]: gonum/plot and go-chart.
//
// [artifact] - Output naming with _0, _1, ... suffixes; never overwrites.
//
// [errors] - Coded errors shared by every stage.
//
// # Testing
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/plotspec/...           # Specific package
//	go test -run Example ./pkg/...       # Examples only
//
// [table]: https://pkg.go.dev/github.com/matzehuels/scatterspec/pkg/table
// [dataset]: https://pkg.go.dev/github.com/matzehuels/scatterspec/pkg/dataset
// [plotspec]: https://pkg.go.dev/github.com/matzehuels/scatterspec/pkg/plotspec
// [layer]: https://pkg.go.dev/github.com/matzehuels/scatterspec/pkg/layer
// [legend]: https://pkg.go.dev/github.com/matzehuels/scatterspec/pkg/legend
// [scene]: https://pkg.go.dev/github.com/matzehuels/scatterspec/pkg/scene
// [render]: https://pkg.go.dev/github.com/matzehuels/scatterspec/pkg/render
// [render.Scene]: https://pkg.go.dev/github.com/matzehuels/scatterspec/pkg/render#Scene
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/scatterspec/pkg/render/sink
// [artifact]: https://pkg.go.dev/github.com/matzehuels/scatterspec/pkg/artifact
// [errors]: https://pkg.go.dev/github.com/matzehuels/scatterspec/pkg/errors
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/scatterspec/pkg/pipeline
// [observability]: https://pkg.go.dev/github.com/matzehuels/scatterspec/pkg/observability
package pkg
