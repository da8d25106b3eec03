// Package sink provides the drawing backends for [render.Scene].
//
// Two backends are available:
//
//   - [Plot] uses gonum.org/v1/plot. It writes SVG, PNG and PDF and draws
//     every marker shape, including rotated triangles, polygons and stars.
//   - [Chart] uses github.com/wcharczuk/go-chart/v2. It writes SVG and PNG
//     and draws every marker as a dot.
//
// Both backends honour the scene's draw order: commands are grouped by z
// index and drawn from the lowest index up, so later layers cover earlier
// ones. Points whose coordinates are NaN or infinite are skipped.
//
// # Usage
//
//	r := sink.NewPlot(sink.WithDPI(300))
//	png, err := r.Render(scene, render.FormatPNG)
package sink
