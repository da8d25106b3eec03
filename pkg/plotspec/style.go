package plotspec

import "github.com/matzehuels/scatterspec/pkg/layer"

// Marker and color tokens understood by the renderers.
const (
	MarkerPoint  = "."
	ColorDefault = "b"
)

// Style is the resolved drawing record of one entity.
type Style struct {
	Plot          bool
	Color         string
	Marker        string
	Size          float64 // marker area in points squared
	Alpha         float64
	Layer         layer.Key
	Label         bool
	LabelFontSize float64
	LegendGroup   string // empty means no legend entry
}

// Default returns the style of entities that have no specification row.
func Default() Style {
	return Style{
		Plot:          true,
		Color:         ColorDefault,
		Marker:        MarkerPoint,
		Size:          10,
		Alpha:         1,
		Layer:         layer.Unspecified,
		Label:         false,
		LabelFontSize: 0,
		LegendGroup:   "",
	}
}
