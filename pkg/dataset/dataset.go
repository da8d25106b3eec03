// Package dataset joins two measurement tables into the set of plottable entities.
//
// Only entities present in both tables can be placed on a scatter plot: one
// table supplies the x coordinate, the other the y coordinate. Entities found in
// a single table are dropped without warning.
package dataset

import (
	"math"

	"github.com/matzehuels/scatterspec/pkg/table"
)

// DefaultMargin scales the axis bounds away from the outermost points.
const DefaultMargin = 1.05

// EntitySet is the ordered list of keys present in both tables.
type EntitySet struct {
	Keys []string
	x, y *table.Measurements
}

// Point is an entity positioned on the plot.
type Point struct {
	Key  string
	X, Y float64
}

// Merge intersects two measurement tables. Keys are returned in the first
// table's order, so Merge(a, b) and Merge(b, a) contain the same keys but may
// list them differently.
func Merge(x, y *table.Measurements) EntitySet {
	set := EntitySet{x: x, y: y}
	for _, k := range x.Keys {
		if _, ok := y.Values[k]; ok {
			set.Keys = append(set.Keys, k)
		}
	}
	return set
}

// XLabel returns the axis label of the x table.
func (s EntitySet) XLabel() string {
	if s.x == nil {
		return ""
	}
	return s.x.Label
}

// YLabel returns the axis label of the y table.
func (s EntitySet) YLabel() string {
	if s.y == nil {
		return ""
	}
	return s.y.Label
}

// Len returns the number of shared entities.
func (s EntitySet) Len() int { return len(s.Keys) }

// Contains reports whether key is in the set.
func (s EntitySet) Contains(key string) bool {
	if s.x == nil || s.y == nil {
		return false
	}
	_, okX := s.x.Values[key]
	_, okY := s.y.Values[key]
	return okX && okY
}

// Point returns the coordinates of key.
func (s EntitySet) Point(key string) (Point, bool) {
	if !s.Contains(key) {
		return Point{}, false
	}
	return Point{Key: key, X: s.x.Values[key], Y: s.y.Values[key]}, true
}

// XValues returns the x coordinates of every entity.
func (s EntitySet) XValues() []float64 {
	vals := make([]float64, 0, len(s.Keys))
	for _, k := range s.Keys {
		vals = append(vals, s.x.Values[k])
	}
	return vals
}

// YValues returns the y coordinates of every entity.
func (s EntitySet) YValues() []float64 {
	vals := make([]float64, 0, len(s.Keys))
	for _, k := range s.Keys {
		vals = append(vals, s.y.Values[k])
	}
	return vals
}

// Bounds returns axis limits covering values and zero, scaled by margin.
// The origin is always inside the range so the reference lines stay visible:
// lo is margin*min(values, 0) and hi is margin*max(values, 0), so data that
// is all negative ends at 0 rather than at margin*max(values).
// An empty input yields the degenerate range [-0, +0]; NaN values are ignored.
func Bounds(values []float64, margin float64) (lo, hi float64) {
	lo, hi = 0, 0
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return margin * lo, margin * hi
}
