package sink

import (
	"fmt"
	"image/color"
	"math"

	"github.com/matzehuels/scatterspec/pkg/render"
)

// layered is one z slot of a scene.
type layered struct {
	lines  []render.Line
	points []render.Point
	labels []render.Label
}

// byZ splits a scene into z slots, indexed from 0 to s.MaxZ().
func byZ(s render.Scene) []layered {
	slots := make([]layered, s.MaxZ()+1)
	for _, l := range s.Lines {
		if l.Z >= 0 {
			slots[l.Z].lines = append(slots[l.Z].lines, l)
		}
	}
	for _, p := range s.Points {
		if p.Z >= 0 && finite(p.X, p.Y) {
			slots[p.Z].points = append(slots[p.Z].points, p)
		}
	}
	for _, l := range s.Labels {
		if l.Z >= 0 && finite(l.X, l.Y) {
			slots[l.Z].labels = append(slots[l.Z].labels, l)
		}
	}
	return slots
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func pointColor(p render.Point) (color.NRGBA, error) {
	c, err := render.ParseColor(p.Color)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("entity %s: %w", p.Key, err)
	}
	return render.WithAlpha(c, p.Alpha), nil
}

func lineColor(l render.Line) (color.NRGBA, error) {
	c, err := render.ParseColor(l.Color)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("reference line: %w", err)
	}
	return c, nil
}

func unsupported(format string) error {
	return fmt.Errorf("unsupported format %q", format)
}
