package sink

import (
	"bytes"
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgpdf"
	"gonum.org/v1/plot/vg/vgsvg"

	"github.com/matzehuels/scatterspec/pkg/render"
)

// PlotOption configures the gonum backend.
type PlotOption func(*Plot)

// WithDPI sets the raster resolution of PNG output.
func WithDPI(dpi int) PlotOption {
	return func(p *Plot) {
		if dpi > 0 {
			p.dpi = dpi
		}
	}
}

// Plot renders scenes with gonum.org/v1/plot.
type Plot struct {
	dpi int
}

// NewPlot returns a gonum backend. PNG output defaults to [render.DefaultDPI].
func NewPlot(opts ...PlotOption) *Plot {
	p := &Plot{dpi: render.DefaultDPI}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Formats implements [render.Renderer].
func (r *Plot) Formats() []string {
	return []string{render.FormatSVG, render.FormatPNG, render.FormatPDF}
}

// Render implements [render.Renderer].
func (r *Plot) Render(s render.Scene, format string) ([]byte, error) {
	p, err := r.build(s)
	if err != nil {
		return nil, err
	}

	wIn, hIn := s.Size()
	w, h := vg.Length(wIn)*vg.Inch, vg.Length(hIn)*vg.Inch

	var c vg.CanvasWriterTo
	switch format {
	case render.FormatSVG:
		c = vgsvg.New(w, h)
	case render.FormatPNG:
		c = vgimg.PngCanvas{Canvas: vgimg.NewWith(vgimg.UseWH(w, h), vgimg.UseDPI(r.dpi))}
	case render.FormatPDF:
		c = vgpdf.New(w, h)
	default:
		return nil, unsupported(format)
	}

	p.Draw(draw.New(c))

	var buf bytes.Buffer
	if _, err := c.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("write %s: %w", format, err)
	}
	return buf.Bytes(), nil
}

func (r *Plot) build(s render.Scene) (*plot.Plot, error) {
	p := plot.New()
	p.X.Label.Text = s.X.Label
	p.Y.Label.Text = s.Y.Label

	for _, slot := range byZ(s) {
		if err := addLines(p, slot.lines); err != nil {
			return nil, err
		}
		if err := addPoints(p, slot.points); err != nil {
			return nil, err
		}
		if err := addLabels(p, slot.labels); err != nil {
			return nil, err
		}
	}

	if err := addLegend(p, s); err != nil {
		return nil, err
	}

	// Add widens the axes to the data, so the configured range is set last.
	p.X.Min, p.X.Max = s.X.Min, s.X.Max
	p.Y.Min, p.Y.Max = s.Y.Min, s.Y.Max
	return p, nil
}

func addLines(p *plot.Plot, lines []render.Line) error {
	for _, l := range lines {
		c, err := lineColor(l)
		if err != nil {
			return err
		}
		pl, err := plotter.NewLine(plotter.XYs{{X: l.X1, Y: l.Y1}, {X: l.X2, Y: l.Y2}})
		if err != nil {
			return fmt.Errorf("reference line: %w", err)
		}
		pl.LineStyle.Color = c
		pl.LineStyle.Width = vg.Points(l.Width)
		if l.Dashed {
			pl.LineStyle.Dashes = []vg.Length{vg.Points(3.7 * l.Width), vg.Points(1.6 * l.Width)}
		}
		p.Add(pl)
	}
	return nil
}

func addPoints(p *plot.Plot, points []render.Point) error {
	if len(points) == 0 {
		return nil
	}
	xys := make(plotter.XYs, len(points))
	styles := make([]draw.GlyphStyle, len(points))
	for i, pt := range points {
		c, err := pointColor(pt)
		if err != nil {
			return err
		}
		xys[i] = plotter.XY{X: pt.X, Y: pt.Y}
		styles[i] = glyphStyle(pt.Marker, pt.Size, c)
	}

	sc, err := plotter.NewScatter(xys)
	if err != nil {
		return fmt.Errorf("scatter: %w", err)
	}
	sc.GlyphStyleFunc = func(i int) draw.GlyphStyle { return styles[i] }
	p.Add(sc)
	return nil
}

func addLabels(p *plot.Plot, labels []render.Label) error {
	if len(labels) == 0 {
		return nil
	}
	data := plotter.XYLabels{
		XYs:    make(plotter.XYs, len(labels)),
		Labels: make([]string, len(labels)),
	}
	for i, l := range labels {
		data.XYs[i] = plotter.XY{X: l.X, Y: l.Y}
		data.Labels[i] = l.Text
	}

	pl, err := plotter.NewLabels(data)
	if err != nil {
		return fmt.Errorf("labels: %w", err)
	}
	for i, l := range labels {
		if l.FontSize > 0 {
			pl.TextStyle[i].Font.Size = vg.Points(l.FontSize)
		}
	}
	p.Add(pl)
	return nil
}

func addLegend(p *plot.Plot, s render.Scene) error {
	if len(s.Legend) == 0 {
		return nil
	}
	p.Legend.Top = true
	if s.LegendFontSize > 0 {
		p.Legend.TextStyle.Font.Size = vg.Points(s.LegendFontSize)
	}
	for _, e := range s.Legend {
		c, err := render.ParseColor(e.Color)
		if err != nil {
			return fmt.Errorf("legend group %s: %w", e.Group, err)
		}
		sty := glyphStyle(e.Marker, e.Size, render.WithAlpha(c, e.Alpha))
		p.Legend.Add(e.Group, glyphThumb(sty))
	}
	return nil
}
