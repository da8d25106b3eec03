package sink

import (
	"bytes"
	"fmt"
	"image/color"
	"math"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/matzehuels/scatterspec/pkg/legend"
	"github.com/matzehuels/scatterspec/pkg/render"
)

// ChartOption configures the go-chart backend.
type ChartOption func(*Chart)

// WithChartDPI sets the resolution used to size the canvas in pixels.
func WithChartDPI(dpi float64) ChartOption {
	return func(c *Chart) {
		if dpi > 0 {
			c.dpi = dpi
		}
	}
}

// Chart renders scenes with github.com/wcharczuk/go-chart/v2.
type Chart struct {
	dpi float64
}

// NewChart returns a go-chart backend.
func NewChart(opts ...ChartOption) *Chart {
	c := &Chart{dpi: render.DefaultDPI}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Formats implements [render.Renderer].
func (r *Chart) Formats() []string {
	return []string{render.FormatSVG, render.FormatPNG}
}

// Render implements [render.Renderer].
func (r *Chart) Render(s render.Scene, format string) ([]byte, error) {
	var provider chart.RendererProvider
	switch format {
	case render.FormatSVG:
		provider = chart.SVG
	case render.FormatPNG:
		provider = chart.PNG
	default:
		return nil, unsupported(format)
	}

	ch, err := r.build(s)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := ch.Render(provider, &buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	return buf.Bytes(), nil
}

// px converts a length in points to canvas pixels.
func (r *Chart) px(points float64) float64 {
	return points * r.dpi / 72
}

func (r *Chart) build(s render.Scene) (chart.Chart, error) {
	wIn, hIn := s.Size()
	ch := chart.Chart{
		Width:  int(math.Round(wIn * r.dpi)),
		Height: int(math.Round(hIn * r.dpi)),
		DPI:    r.dpi,
		XAxis:  chart.XAxis{Name: s.X.Label, Range: continuousRange(s.X)},
		YAxis:  chart.YAxis{Name: s.Y.Label, Range: continuousRange(s.Y)},
	}

	for _, slot := range byZ(s) {
		for _, l := range slot.lines {
			series, err := r.lineSeries(l)
			if err != nil {
				return chart.Chart{}, err
			}
			ch.Series = append(ch.Series, series)
		}
		if len(slot.points) > 0 {
			series, err := r.pointSeries(slot.points)
			if err != nil {
				return chart.Chart{}, err
			}
			ch.Series = append(ch.Series, series)
		}
		if len(slot.labels) > 0 {
			ch.Series = append(ch.Series, labelSeries(slot.labels))
		}
	}

	if len(s.Legend) > 0 {
		el, err := r.legendElement(s.Legend, s.LegendFontSize)
		if err != nil {
			return chart.Chart{}, err
		}
		ch.Elements = []chart.Renderable{el}
	}
	return ch, nil
}

// continuousRange widens an empty span since go-chart rejects zero deltas.
func continuousRange(a render.Axis) *chart.ContinuousRange {
	lo, hi := a.Min, a.Max
	if hi-lo == 0 {
		lo, hi = lo-1, hi+1
	}
	return &chart.ContinuousRange{Min: lo, Max: hi}
}

func (r *Chart) lineSeries(l render.Line) (chart.Series, error) {
	c, err := lineColor(l)
	if err != nil {
		return nil, err
	}
	style := chart.Style{
		StrokeColor: toDrawing(c),
		StrokeWidth: r.px(l.Width),
	}
	if l.Dashed {
		style.StrokeDashArray = []float64{r.px(3.7 * l.Width), r.px(1.6 * l.Width)}
	}
	return chart.ContinuousSeries{
		XValues: []float64{l.X1, l.X2},
		YValues: []float64{l.Y1, l.Y2},
		Style:   style,
	}, nil
}

func (r *Chart) pointSeries(points []render.Point) (chart.Series, error) {
	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	colors := make([]drawing.Color, len(points))
	widths := make([]float64, len(points))
	for i, p := range points {
		c, err := pointColor(p)
		if err != nil {
			return nil, err
		}
		m, _ := render.ParseMarker(p.Marker)
		xs[i], ys[i] = p.X, p.Y
		colors[i] = toDrawing(c)
		widths[i] = r.px(render.Radius(m, p.Size))
	}

	return chart.ContinuousSeries{
		XValues: xs,
		YValues: ys,
		Style: chart.Style{
			StrokeWidth: chart.Disabled,
			DotColorProvider: func(_, _ chart.Range, i int, _, _ float64) drawing.Color {
				return colors[i]
			},
			DotWidthProvider: func(_, _ chart.Range, i int, _, _ float64) float64 {
				return widths[i]
			},
		},
	}, nil
}

func labelSeries(labels []render.Label) chart.Series {
	values := make([]chart.Value2, len(labels))
	for i, l := range labels {
		values[i] = chart.Value2{
			XValue: l.X,
			YValue: l.Y,
			Label:  l.Text,
			Style:  chart.Style{FontSize: l.FontSize},
		}
	}
	return chart.AnnotationSeries{Annotations: values}
}

// legendElement draws the legend box in the upper right corner of the plot.
func (r *Chart) legendElement(entries []legend.Entry, fontSize float64) (chart.Renderable, error) {
	type row struct {
		text   string
		color  drawing.Color
		radius float64
	}
	rows := make([]row, len(entries))
	for i, e := range entries {
		c, err := render.ParseColor(e.Color)
		if err != nil {
			return nil, fmt.Errorf("legend group %s: %w", e.Group, err)
		}
		m, _ := render.ParseMarker(e.Marker)
		rows[i] = row{
			text:   e.Group,
			color:  toDrawing(render.WithAlpha(c, e.Alpha)),
			radius: r.px(render.Radius(m, e.Size)),
		}
	}
	if fontSize <= 0 {
		fontSize = chart.DefaultFontSize
	}
	pad := int(r.px(4))

	return func(cr chart.Renderer, box chart.Box, defaults chart.Style) {
		cr.SetFont(defaults.GetFont())
		cr.SetFontSize(fontSize)
		cr.SetFontColor(drawing.ColorBlack)

		var textW, rowH int
		var marker float64
		for _, rw := range rows {
			tb := cr.MeasureText(rw.text)
			textW = max(textW, tb.Width())
			rowH = max(rowH, tb.Height())
			marker = math.Max(marker, rw.radius)
		}
		markerW := int(math.Ceil(2 * marker))
		rowH = max(rowH, markerW) + pad/2

		w := pad + markerW + pad + textW + pad
		h := pad + rowH*len(rows) + pad
		right, top := box.Right-pad, box.Top+pad
		left, bottom := right-w, top+h

		cr.SetFillColor(drawing.ColorWhite)
		cr.SetStrokeColor(drawing.Color{R: 204, G: 204, B: 204, A: 255})
		cr.SetStrokeWidth(1)
		cr.MoveTo(left, top)
		cr.LineTo(right, top)
		cr.LineTo(right, bottom)
		cr.LineTo(left, bottom)
		cr.LineTo(left, top)
		cr.Close()
		cr.FillStroke()

		for i, rw := range rows {
			cy := top + pad + rowH*i + rowH/2
			cx := left + pad + markerW/2

			cr.SetFillColor(rw.color)
			cr.SetStrokeColor(rw.color)
			cr.SetStrokeWidth(0)
			cr.Circle(rw.radius, cx, cy)
			cr.FillStroke()

			cr.SetFontColor(drawing.ColorBlack)
			tb := cr.MeasureText(rw.text)
			cr.Text(rw.text, left+pad+markerW+pad, cy+tb.Height()/2)
		}
	}, nil
}

func toDrawing(c color.NRGBA) drawing.Color {
	return drawing.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}
