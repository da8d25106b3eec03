// Package scene turns merged measurements and resolved styles into a
// [render.Scene].
//
// Build walks the layer sequence from the bottom up. Each plotted entity
// becomes a point at its layer's z index, label-enabled entities get a text
// label above every layer, and the first entity of each legend group fixes
// that group's legend entry. Two dashed reference lines through the origin
// are drawn beneath everything.
package scene

import (
	"github.com/charmbracelet/log"

	"github.com/matzehuels/scatterspec/pkg/dataset"
	"github.com/matzehuels/scatterspec/pkg/layer"
	"github.com/matzehuels/scatterspec/pkg/legend"
	"github.com/matzehuels/scatterspec/pkg/plotspec"
	"github.com/matzehuels/scatterspec/pkg/render"
)

const (
	// ReferenceColor is the color of the axis reference lines.
	ReferenceColor = "silver"

	// ReferenceWidth is the reference line width in points.
	ReferenceWidth = 1.0

	// DefaultLegendFontSize is the legend text size in points.
	DefaultLegendFontSize = 6.0

	// ProgressInterval is how many plotted points pass between progress logs.
	ProgressInterval = 100
)

// Limits is a fixed axis range.
type Limits struct {
	Min, Max float64
}

// Input collects everything Build needs.
type Input struct {
	Entities dataset.EntitySet
	Spec     *plotspec.Spec // nil when no specification file was given

	// Margin scales the computed bounds; zero means dataset.DefaultMargin.
	Margin float64

	// XLimits and YLimits replace the computed bounds when set.
	XLimits, YLimits *Limits

	// LegendFontSize of zero means DefaultLegendFontSize.
	LegendFontSize float64

	Logger *log.Logger
}

// Stats summarizes a built scene.
type Stats struct {
	Entities       int
	Plotted        int
	Layers         int
	Labels         int
	LegendEntries  int
	UnknownMarkers int
}

// Build assembles the scene for in.
func Build(in Input) (render.Scene, Stats) {
	logger := in.Logger
	if logger == nil {
		logger = log.Default()
	}
	margin := in.Margin
	if margin == 0 {
		margin = dataset.DefaultMargin
	}
	fontSize := in.LegendFontSize
	if fontSize == 0 {
		fontSize = DefaultLegendFontSize
	}

	set := in.Entities
	s := render.Scene{
		X:              axis(set.XLabel(), set.XValues(), margin, in.XLimits),
		Y:              axis(set.YLabel(), set.YValues(), margin, in.YLimits),
		EqualAspect:    true,
		LegendFontSize: fontSize,
	}
	s.Lines = referenceLines(s.X, s.Y)

	layers := layer.Schedule(in.Spec.Members(set))
	labelZ := layer.Top(layers) + 1
	stats := Stats{Entities: set.Len(), Layers: len(layers)}

	zOf := make(map[string]int)
	for _, l := range layers {
		logger.Debug("drawing layer", "layer", l.Key, "z", l.Z, "entities", len(l.Entities))
		for _, key := range l.Entities {
			zOf[key] = l.Z
		}
	}

	var legends legend.Collector
	warned := make(map[string]bool)
	for _, key := range layer.Sequence(layers) {
		pt, ok := set.Point(key)
		if !ok {
			continue
		}
		st := in.Spec.Resolve(key)
		if _, known := render.ParseMarker(st.Marker); !known && !warned[st.Marker] {
			warned[st.Marker] = true
			stats.UnknownMarkers++
			logger.Warn("unknown marker, drawing a circle", "marker", st.Marker, "entity", key)
		}

		s.Points = append(s.Points, render.Point{
			Key:    key,
			X:      pt.X,
			Y:      pt.Y,
			Color:  st.Color,
			Marker: st.Marker,
			Size:   st.Size,
			Alpha:  st.Alpha,
			Z:      zOf[key],
		})
		stats.Plotted++
		if stats.Plotted%ProgressInterval == 0 {
			logger.Debugf("%d data points plotted", stats.Plotted)
		}

		legends.Observe(st.LegendGroup, st.Color, st.Marker, st.Alpha, st.Size)

		if st.Label {
			s.Labels = append(s.Labels, render.Label{
				Text:     key,
				X:        pt.X,
				Y:        pt.Y,
				FontSize: st.LabelFontSize,
				Z:        labelZ,
			})
		}
	}

	s.Legend = legends.Entries()
	stats.Labels = len(s.Labels)
	stats.LegendEntries = legends.Len()
	return s, stats
}

func axis(label string, values []float64, margin float64, fixed *Limits) render.Axis {
	if fixed != nil {
		return render.Axis{Label: label, Min: fixed.Min, Max: fixed.Max}
	}
	lo, hi := dataset.Bounds(values, margin)
	return render.Axis{Label: label, Min: lo, Max: hi}
}

// referenceLines returns the y = 0 and x = 0 lines spanning the axes.
func referenceLines(x, y render.Axis) []render.Line {
	return []render.Line{
		{X1: x.Min, Y1: 0, X2: x.Max, Y2: 0, Color: ReferenceColor, Width: ReferenceWidth, Dashed: true},
		{X1: 0, Y1: y.Min, X2: 0, Y2: y.Max, Color: ReferenceColor, Width: ReferenceWidth, Dashed: true},
	}
}
