package render

import (
	"math"

	"github.com/matzehuels/scatterspec/pkg/legend"
)

// Output formats.
const (
	FormatSVG = "svg"
	FormatPNG = "png"
	FormatPDF = "pdf"
)

// DefaultDPI is the raster resolution of PNG output.
const DefaultDPI = 500

// CanvasWidth is the figure width in inches.
const CanvasWidth = 6.4

// Renderer turns a scene into the bytes of one output format.
type Renderer interface {
	Render(s Scene, format string) ([]byte, error)
	// Formats lists the formats Render accepts.
	Formats() []string
}

// Scene holds every draw command of a plot. Slices are in draw order.
type Scene struct {
	X, Y           Axis
	EqualAspect    bool
	Lines          []Line
	Points         []Point
	Labels         []Label
	Legend         []legend.Entry
	LegendFontSize float64
}

// Axis configures one axis.
type Axis struct {
	Label    string
	Min, Max float64
}

// Span returns Max - Min.
func (a Axis) Span() float64 { return a.Max - a.Min }

// Line is a straight reference line.
type Line struct {
	X1, Y1, X2, Y2 float64
	Color          string
	Width          float64 // points
	Dashed         bool
	Z              int
}

// Point is one plotted entity.
type Point struct {
	Key    string
	X, Y   float64
	Color  string
	Marker string
	Size   float64 // area in points squared
	Alpha  float64
	Z      int
}

// Label is text drawn at a data position.
type Label struct {
	Text     string
	X, Y     float64
	FontSize float64 // points
	Z        int
}

// MaxZ returns the highest z index used by the scene.
func (s Scene) MaxZ() int {
	z := 0
	for _, l := range s.Lines {
		z = max(z, l.Z)
	}
	for _, p := range s.Points {
		z = max(z, p.Z)
	}
	for _, l := range s.Labels {
		z = max(z, l.Z)
	}
	return z
}

// Size returns the figure size in inches. With EqualAspect the height follows
// the ratio of the axis spans, clamped to half and twice the width.
func (s Scene) Size() (w, h float64) {
	w, h = CanvasWidth, CanvasWidth*0.75
	if !s.EqualAspect {
		return w, h
	}
	xs, ys := s.X.Span(), s.Y.Span()
	if xs <= 0 || ys <= 0 || math.IsInf(xs, 0) || math.IsInf(ys, 0) {
		return w, h
	}
	ratio := math.Max(0.5, math.Min(2, ys/xs))
	return w, w * ratio
}
