package render

import (
	"math"
	"strings"
)

// Marker is a point shape.
type Marker int

// Supported marker shapes.
const (
	MarkerCircle Marker = iota
	MarkerPoint
	MarkerPixel
	MarkerSquare
	MarkerTriangleUp
	MarkerTriangleDown
	MarkerTriangleLeft
	MarkerTriangleRight
	MarkerDiamond
	MarkerThinDiamond
	MarkerPentagon
	MarkerHexagon
	MarkerOctagon
	MarkerPlus
	MarkerCross
	MarkerStar
)

var markerCodes = map[string]Marker{
	".": MarkerPoint,
	",": MarkerPixel,
	"o": MarkerCircle,
	"s": MarkerSquare,
	"^": MarkerTriangleUp,
	"v": MarkerTriangleDown,
	"<": MarkerTriangleLeft,
	">": MarkerTriangleRight,
	"D": MarkerDiamond,
	"d": MarkerThinDiamond,
	"p": MarkerPentagon,
	"h": MarkerHexagon,
	"H": MarkerHexagon,
	"8": MarkerOctagon,
	"+": MarkerPlus,
	"x": MarkerCross,
	"*": MarkerStar,
}

// ParseMarker interprets a marker code. Unknown codes return MarkerCircle
// and false so callers can warn and keep drawing.
func ParseMarker(s string) (Marker, bool) {
	m, ok := markerCodes[strings.TrimSpace(s)]
	if !ok {
		return MarkerCircle, false
	}
	return m, true
}

// Radius converts a marker area (points squared) into a drawing radius in
// points. The point marker is drawn at half the circle size and the pixel
// marker ignores size altogether.
func Radius(m Marker, size float64) float64 {
	if size <= 0 || math.IsNaN(size) {
		return 0
	}
	r := math.Sqrt(size) / 2
	switch m {
	case MarkerPoint:
		return r / 2
	case MarkerPixel:
		return 0.5
	}
	return r
}
