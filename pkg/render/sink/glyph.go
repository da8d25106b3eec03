package sink

import (
	"image/color"
	"math"

	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/matzehuels/scatterspec/pkg/render"
)

// polygonGlyph draws a filled regular polygon, or a star when inner is set.
type polygonGlyph struct {
	sides    int
	rotation float64 // radians, angle of the first vertex
	inner    float64 // star inner radius as a fraction of the outer radius
	squeeze  float64 // horizontal scale, 0 means 1
}

func (g polygonGlyph) DrawGlyph(c *draw.Canvas, sty draw.GlyphStyle, pt vg.Point) {
	c.SetColor(sty.Color)

	n := g.sides
	if g.inner > 0 {
		n *= 2
	}
	sx := g.squeeze
	if sx == 0 {
		sx = 1
	}

	var p vg.Path
	for i := range n {
		r := sty.Radius
		if g.inner > 0 && i%2 == 1 {
			r *= vg.Length(g.inner)
		}
		a := g.rotation + 2*math.Pi*float64(i)/float64(n)
		v := vg.Point{
			X: pt.X + r*vg.Length(sx*math.Cos(a)),
			Y: pt.Y + r*vg.Length(math.Sin(a)),
		}
		if i == 0 {
			p.Move(v)
		} else {
			p.Line(v)
		}
	}
	p.Close()
	c.Fill(p)
}

// glyphs maps each marker to its gonum shape.
var glyphs = map[render.Marker]draw.GlyphDrawer{
	render.MarkerCircle:        draw.CircleGlyph{},
	render.MarkerPoint:         draw.CircleGlyph{},
	render.MarkerPixel:         draw.SquareGlyph{},
	render.MarkerSquare:        draw.SquareGlyph{},
	render.MarkerTriangleUp:    polygonGlyph{sides: 3, rotation: math.Pi / 2},
	render.MarkerTriangleDown:  polygonGlyph{sides: 3, rotation: -math.Pi / 2},
	render.MarkerTriangleLeft:  polygonGlyph{sides: 3, rotation: math.Pi},
	render.MarkerTriangleRight: polygonGlyph{sides: 3},
	render.MarkerDiamond:       polygonGlyph{sides: 4, rotation: math.Pi / 2},
	render.MarkerThinDiamond:   polygonGlyph{sides: 4, rotation: math.Pi / 2, squeeze: 0.6},
	render.MarkerPentagon:      polygonGlyph{sides: 5, rotation: math.Pi / 2},
	render.MarkerHexagon:       polygonGlyph{sides: 6, rotation: math.Pi / 2},
	render.MarkerOctagon:       polygonGlyph{sides: 8, rotation: math.Pi / 8},
	render.MarkerPlus:          draw.PlusGlyph{},
	render.MarkerCross:         draw.CrossGlyph{},
	render.MarkerStar:          polygonGlyph{sides: 5, rotation: math.Pi / 2, inner: 0.4},
}

func glyphStyle(code string, size float64, c color.Color) draw.GlyphStyle {
	m, _ := render.ParseMarker(code)
	return draw.GlyphStyle{
		Color:  c,
		Radius: vg.Points(render.Radius(m, size)),
		Shape:  glyphs[m],
	}
}

// glyphThumb draws a legend thumbnail as a single glyph.
type glyphThumb draw.GlyphStyle

func (g glyphThumb) Thumbnail(c *draw.Canvas) {
	c.DrawGlyph(draw.GlyphStyle(g), c.Center())
}
