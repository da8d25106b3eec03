package plotspec

import (
	"fmt"
	"strings"

	"github.com/matzehuels/scatterspec/pkg/errors"
)

// Required specification column names.
const (
	ColumnKey           = "Gene name"
	ColumnPlot          = "Plot or not?"
	ColumnColor         = "Color"
	ColumnMarker        = "Marker"
	ColumnSize          = "Size"
	ColumnAlpha         = "Alpha"
	ColumnLayer         = "Layer"
	ColumnLabel         = "Label or not?"
	ColumnLabelFontSize = "Label font size"
	ColumnLegendGroup   = "Legend group"
)

// Columns lists the required columns, key column first.
var Columns = []string{
	ColumnKey,
	ColumnPlot,
	ColumnColor,
	ColumnMarker,
	ColumnSize,
	ColumnAlpha,
	ColumnLayer,
	ColumnLabel,
	ColumnLabelFontSize,
	ColumnLegendGroup,
}

// columns holds the header index of every required column.
type columns struct {
	key, plot, color, marker, size, alpha, layer, label, labelFontSize, legendGroup int
}

// resolveColumns looks up every required column by trimmed name. All missing
// columns are reported together.
func resolveColumns(header []string, path string) (columns, error) {
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.TrimSpace(h)] = i
	}

	var missing []string
	lookup := func(name string) int {
		i, ok := index[name]
		if !ok {
			missing = append(missing, fmt.Sprintf("`%s`", name))
			return -1
		}
		return i
	}

	c := columns{
		key:           lookup(ColumnKey),
		plot:          lookup(ColumnPlot),
		color:         lookup(ColumnColor),
		marker:        lookup(ColumnMarker),
		size:          lookup(ColumnSize),
		alpha:         lookup(ColumnAlpha),
		layer:         lookup(ColumnLayer),
		label:         lookup(ColumnLabel),
		labelFontSize: lookup(ColumnLabelFontSize),
		legendGroup:   lookup(ColumnLegendGroup),
	}
	if len(missing) > 0 {
		noun := "column"
		if len(missing) > 1 {
			noun = "columns"
		}
		return columns{}, errors.New(errors.ErrCodeSchema,
			"cannot find %s %s in %s", noun, strings.Join(missing, ", "), path)
	}
	return c, nil
}
