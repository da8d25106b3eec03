// Package render defines the boundary between scatter-plot assembly and the
// drawing backends.
//
// # Overview
//
// A [Scene] is the complete list of draw commands for one plot: axis
// configuration, dashed reference lines, styled points in z-order, text
// labels and legend entries. Scenes are built by package scene and handed to a
// [Renderer], which turns them into SVG, PNG or PDF bytes.
//
// Backends live in the [sink] subpackage:
//
//   - sink.Plot draws with gonum.org/v1/plot and supports every marker shape
//   - sink.Chart draws with github.com/wcharczuk/go-chart/v2 (dots only)
//
// # Colors and Markers
//
// Color and marker values are opaque strings until they reach a backend.
// [ParseColor] and [ParseMarker] give every backend the same interpretation:
//
//	c, err := render.ParseColor("tab:orange")
//	m, ok := render.ParseMarker("^")
//	r := render.Radius(m, 40) // points
//
// [sink]: github.com/matzehuels/scatterspec/pkg/render/sink
package render
