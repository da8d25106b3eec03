package render

import (
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
	}{
		{"b", color.NRGBA{0, 0, 255, 255}},
		{"k", color.NRGBA{0, 0, 0, 255}},
		{"silver", color.NRGBA{192, 192, 192, 255}},
		{"Red", color.NRGBA{255, 0, 0, 255}},
		{"light gray", color.NRGBA{211, 211, 211, 255}},
		{"#ff8000", color.NRGBA{255, 128, 0, 255}},
		{"#f00", color.NRGBA{255, 0, 0, 255}},
		{"#00ff0080", color.NRGBA{0, 255, 0, 128}},
		{"tab:orange", color.NRGBA{255, 127, 14, 255}},
		{"C0", color.NRGBA{31, 119, 180, 255}},
		{"0.5", color.NRGBA{128, 128, 128, 255}},
		{"1", color.NRGBA{255, 255, 255, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseColorErrors(t *testing.T) {
	for _, in := range []string{"", "notacolor", "#12", "1.5", "tab:mauve", "#gg0000"} {
		_, err := ParseColor(in)
		assert.Error(t, err, "ParseColor(%q)", in)
	}
}

func TestWithAlpha(t *testing.T) {
	c := color.NRGBA{10, 20, 30, 255}
	assert.Equal(t, uint8(128), WithAlpha(c, 0.5).A)
	assert.Equal(t, uint8(255), WithAlpha(c, 3).A)
	assert.Equal(t, uint8(0), WithAlpha(c, -1).A)
	assert.Equal(t, uint8(255), WithAlpha(c, math.NaN()).A)
}

func TestParseMarker(t *testing.T) {
	m, ok := ParseMarker(".")
	assert.True(t, ok)
	assert.Equal(t, MarkerPoint, m)

	m, ok = ParseMarker(" ^ ")
	assert.True(t, ok)
	assert.Equal(t, MarkerTriangleUp, m)

	m, ok = ParseMarker("0")
	assert.False(t, ok)
	assert.Equal(t, MarkerCircle, m)
}

func TestRadius(t *testing.T) {
	assert.InDelta(t, 2.0, Radius(MarkerCircle, 16), 1e-9)
	assert.InDelta(t, 1.0, Radius(MarkerPoint, 16), 1e-9)
	assert.InDelta(t, 0.5, Radius(MarkerPixel, 400), 1e-9)
	assert.Zero(t, Radius(MarkerSquare, 0))
}

func TestSceneMaxZ(t *testing.T) {
	s := Scene{
		Points: []Point{{Z: 0}, {Z: 3}},
		Labels: []Label{{Z: 4}},
	}
	assert.Equal(t, 4, s.MaxZ())
	assert.Equal(t, 0, Scene{}.MaxZ())
}

func TestAxisSpan(t *testing.T) {
	assert.Equal(t, 4.0, Axis{Min: -1, Max: 3}.Span())
}

func TestSceneSize(t *testing.T) {
	tests := []struct {
		name  string
		scene Scene
		wantH float64
	}{
		{"free aspect", Scene{X: Axis{Max: 1}, Y: Axis{Max: 10}}, CanvasWidth * 0.75},
		{"square", Scene{EqualAspect: true, X: Axis{Min: -1, Max: 1}, Y: Axis{Min: -1, Max: 1}}, CanvasWidth},
		{"tall clamped", Scene{EqualAspect: true, X: Axis{Max: 1}, Y: Axis{Max: 10}}, CanvasWidth * 2},
		{"wide clamped", Scene{EqualAspect: true, X: Axis{Max: 10}, Y: Axis{Max: 1}}, CanvasWidth / 2},
		{"empty", Scene{EqualAspect: true}, CanvasWidth * 0.75},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := tt.scene.Size()
			assert.Equal(t, CanvasWidth, w)
			assert.InDelta(t, tt.wantH, h, 1e-9)
		})
	}
}
