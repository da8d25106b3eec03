package render

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// shortColors are the single-letter color codes.
var shortColors = map[string]color.NRGBA{
	"b": {0, 0, 255, 255},
	"g": {0, 128, 0, 255},
	"r": {255, 0, 0, 255},
	"c": {0, 191, 191, 255},
	"m": {191, 0, 191, 255},
	"y": {191, 191, 0, 255},
	"k": {0, 0, 0, 255},
	"w": {255, 255, 255, 255},
}

// tableau is the ten-color categorical palette, addressable as "tab:<name>"
// or "C0".."C9".
var tableau = []struct {
	name string
	hex  string
}{
	{"blue", "#1f77b4"},
	{"orange", "#ff7f0e"},
	{"green", "#2ca02c"},
	{"red", "#d62728"},
	{"purple", "#9467bd"},
	{"brown", "#8c564b"},
	{"pink", "#e377c2"},
	{"gray", "#7f7f7f"},
	{"olive", "#bcbd22"},
	{"cyan", "#17becf"},
}

// ParseColor interprets a color value from a specification file.
//
// Accepted forms: single-letter codes (b g r c m y k w), "tab:<name>" and
// "C0".."C9", SVG/CSS color names, "#rgb", "#rrggbb" and "#rrggbbaa" hex
// strings, and gray levels written as a number between 0 and 1.
func ParseColor(s string) (color.NRGBA, error) {
	raw := strings.TrimSpace(s)
	name := strings.ToLower(raw)

	if c, ok := shortColors[raw]; ok {
		return c, nil
	}
	if rest, ok := strings.CutPrefix(name, "tab:"); ok {
		rest = strings.ReplaceAll(rest, "grey", "gray")
		for _, t := range tableau {
			if t.name == rest {
				return hexColor(t.hex)
			}
		}
		return color.NRGBA{}, fmt.Errorf("unknown color %q", s)
	}
	if len(name) == 2 && name[0] == 'c' && name[1] >= '0' && name[1] <= '9' {
		return hexColor(tableau[name[1]-'0'].hex)
	}
	if strings.HasPrefix(name, "#") {
		return hexColor(name)
	}
	if g, err := strconv.ParseFloat(name, 64); err == nil {
		if g < 0 || g > 1 || math.IsNaN(g) {
			return color.NRGBA{}, fmt.Errorf("gray level %q out of range [0, 1]", s)
		}
		v := uint8(math.Round(g * 255))
		return color.NRGBA{v, v, v, 255}, nil
	}
	if c, ok := colornames.Map[strings.ReplaceAll(name, " ", "")]; ok {
		return color.NRGBA{c.R, c.G, c.B, 255}, nil
	}
	return color.NRGBA{}, fmt.Errorf("unknown color %q", s)
}

func hexColor(s string) (color.NRGBA, error) {
	alpha := uint8(255)
	if len(s) == 9 {
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("invalid hex color %q", s)
		}
		alpha = uint8(a)
		s = s[:7]
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{r, g, b, alpha}, nil
}

// WithAlpha scales the opacity of c by alpha, clamped to [0, 1].
func WithAlpha(c color.NRGBA, alpha float64) color.NRGBA {
	alpha = math.Max(0, math.Min(1, alpha))
	if math.IsNaN(alpha) {
		alpha = 1
	}
	c.A = uint8(math.Round(float64(c.A) * alpha))
	return c
}
