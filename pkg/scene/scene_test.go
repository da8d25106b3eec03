package scene

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/scatterspec/pkg/dataset"
	"github.com/matzehuels/scatterspec/pkg/layer"
	"github.com/matzehuels/scatterspec/pkg/legend"
	"github.com/matzehuels/scatterspec/pkg/plotspec"
	"github.com/matzehuels/scatterspec/pkg/render"
	"github.com/matzehuels/scatterspec/pkg/table"
)

const specHeader = "Gene name\tPlot or not?\tColor\tMarker\tSize\tAlpha\tLayer\tLabel or not?\tLabel font size\tLegend group\n"

var quiet = log.New(io.Discard)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func load(t *testing.T, a, b string) dataset.EntitySet {
	t.Helper()
	x, err := table.Load(writeFile(t, "a.tsv", a))
	require.NoError(t, err)
	y, err := table.Load(writeFile(t, "b.tsv", b))
	require.NoError(t, err)
	return dataset.Merge(x, y)
}

func loadSpec(t *testing.T, rows string) *plotspec.Spec {
	t.Helper()
	spec, err := plotspec.Load(writeFile(t, "spec.tsv", specHeader+rows))
	require.NoError(t, err)
	return spec
}

func keys(points []render.Point) []string {
	out := make([]string, len(points))
	for i, p := range points {
		out[i] = p.Key
	}
	return out
}

func TestBuildWithoutSpec(t *testing.T) {
	set := load(t,
		"Gene\tTreatA\nG1\t1.0\nG2\t-2.0\nG3\t3.0\n",
		"Gene\tTreatB\nG1\t0.5\nG2\t-1.0\n")

	s, stats := Build(Input{Entities: set, Logger: quiet})

	assert.Equal(t, "TreatA", s.X.Label)
	assert.Equal(t, "TreatB", s.Y.Label)
	assert.Equal(t, []string{"G1", "G2"}, keys(s.Points))
	for _, p := range s.Points {
		assert.Equal(t, "b", p.Color)
		assert.Equal(t, ".", p.Marker)
		assert.Equal(t, 10.0, p.Size)
		assert.Equal(t, 1.0, p.Alpha)
		assert.Equal(t, 0, p.Z)
	}
	assert.Empty(t, s.Legend)
	assert.Empty(t, s.Labels)
	assert.True(t, s.EqualAspect)
	assert.Equal(t, DefaultLegendFontSize, s.LegendFontSize)

	assert.InDelta(t, -2.1, s.X.Min, 1e-9)
	assert.InDelta(t, 1.05, s.X.Max, 1e-9)
	assert.InDelta(t, -1.05, s.Y.Min, 1e-9)
	assert.InDelta(t, 0.525, s.Y.Max, 1e-9)

	assert.Equal(t, Stats{Entities: 2, Plotted: 2, Layers: 1}, stats)
}

func TestReferenceLinesSpanAxes(t *testing.T) {
	set := load(t, "k\tx\nA\t2\n", "k\ty\nA\t-4\n")
	s, _ := Build(Input{Entities: set, Margin: 1, Logger: quiet})

	require.Len(t, s.Lines, 2)
	assert.Equal(t, render.Line{X1: 0, Y1: 0, X2: 2, Y2: 0, Color: "silver", Width: 1, Dashed: true}, s.Lines[0])
	assert.Equal(t, render.Line{X1: 0, Y1: -4, X2: 0, Y2: 0, Color: "silver", Width: 1, Dashed: true}, s.Lines[1])
	for _, l := range s.Lines {
		assert.Zero(t, l.Z)
	}
}

func TestBuildFixedLimits(t *testing.T) {
	set := load(t, "k\tx\nA\t2\n", "k\ty\nA\t-4\n")
	s, _ := Build(Input{
		Entities: set,
		XLimits:  &Limits{Min: -3, Max: 3},
		YLimits:  &Limits{Min: -5, Max: 5},
		Logger:   quiet,
	})
	assert.Equal(t, render.Axis{Label: "x", Min: -3, Max: 3}, s.X)
	assert.Equal(t, render.Axis{Label: "y", Min: -5, Max: 5}, s.Y)
}

func TestBuildLayering(t *testing.T) {
	set := load(t,
		"k\tx\nA\t1\nB\t2\nC\t3\nD\t4\nE\t5\nF\t6\n",
		"k\ty\nA\t1\nB\t2\nC\t3\nD\t4\nE\t5\nF\t6\n")
	spec := loadSpec(t, ""+
		"A\t1\tr\to\t20\t1\t5\t0\t0\t\n"+
		"B\t1\tg\ts\t20\t1\t-1\t1\t7\t\n"+
		"C\t1\tk\t^\t20\t1\t2\t0\t0\t\n"+
		"D\t0\tk\t^\t20\t1\t9\t0\t0\t\n"+
		"E\t1\tm\t.\t20\t1\t\t0\t0\t\n")

	s, stats := Build(Input{Entities: set, Spec: spec, Logger: quiet})

	// unspecified (E from spec, then F without a row), -1, 2, 5; D is not plotted.
	assert.Equal(t, []string{"E", "F", "B", "C", "A"}, keys(s.Points))
	assert.Equal(t, layer.Sequence(layer.Schedule(spec.Members(set))), keys(s.Points))
	z := map[string]int{}
	for _, p := range s.Points {
		z[p.Key] = p.Z
	}
	assert.Equal(t, map[string]int{"E": 0, "F": 0, "B": 1, "C": 2, "A": 3}, z)

	require.Len(t, s.Labels, 1)
	assert.Equal(t, render.Label{Text: "B", X: 2, Y: 2, FontSize: 7, Z: 4}, s.Labels[0])

	assert.Equal(t, 4, stats.Layers)
	assert.Equal(t, 5, stats.Plotted)
	assert.Equal(t, 6, stats.Entities)
}

func TestBuildLegendFirstInDrawOrder(t *testing.T) {
	set := load(t,
		"k\tx\nA\t1\nB\t2\nC\t3\nD\t4\n",
		"k\ty\nA\t1\nB\t2\nC\t3\nD\t4\n")
	spec := loadSpec(t, ""+
		"A\t1\tr\to\t20\t0.5\t3\t0\t0\tHits\n"+
		"B\t1\tg\ts\t30\t1\t1\t0\t0\tHits\n"+
		"C\t0\tk\t^\t20\t1\t0\t0\t0\tHidden\n"+
		"D\t1\tc\tD\t15\t0.8\t2\t0\t0\tControls\n")

	s, stats := Build(Input{Entities: set, Spec: spec, Logger: quiet})

	assert.Equal(t, []legend.Entry{
		{Group: "Hits", Color: "g", Marker: "s", Alpha: 1, Size: 60},
		{Group: "Controls", Color: "c", Marker: "D", Alpha: 0.8, Size: 30},
	}, s.Legend)
	assert.Equal(t, 2, stats.LegendEntries)
}

func TestBuildUnknownMarkerCountedOnce(t *testing.T) {
	set := load(t, "k\tx\nA\t1\nB\t2\n", "k\ty\nA\t1\nB\t2\n")
	spec := loadSpec(t, ""+
		"A\t1\tr\tQ\t20\t1\t\t0\t0\t\n"+
		"B\t1\tr\tQ\t20\t1\t\t0\t0\t\n")

	s, stats := Build(Input{Entities: set, Spec: spec, Logger: quiet})
	assert.Len(t, s.Points, 2)
	assert.Equal(t, 1, stats.UnknownMarkers)
}

func TestBuildEmptySet(t *testing.T) {
	set := load(t, "k\tx\nA\t1\n", "k\ty\nB\t1\n")
	s, stats := Build(Input{Entities: set, Logger: quiet})

	assert.Empty(t, s.Points)
	assert.Zero(t, stats.Layers)
	assert.Zero(t, s.X.Span())
	assert.Len(t, s.Lines, 2)
}
