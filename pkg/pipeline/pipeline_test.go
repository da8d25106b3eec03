package pipeline

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/scatterspec/pkg/errors"
	"github.com/matzehuels/scatterspec/pkg/render"
)

const specHeader = "Gene name\tPlot or not?\tColor\tMarker\tSize\tAlpha\tLayer\tLabel or not?\tLabel font size\tLegend group\n"

type fakeRenderer struct {
	err    error
	empty  bool
	scenes []render.Scene
}

func (f *fakeRenderer) Formats() []string {
	return []string{render.FormatSVG, render.FormatPNG, render.FormatPDF}
}

func (f *fakeRenderer) Render(s render.Scene, format string) ([]byte, error) {
	f.scenes = append(f.scenes, s)
	if f.err != nil {
		return nil, f.err
	}
	if f.empty {
		return nil, nil
	}
	return []byte(format), nil
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// fixture writes the G1/G2 inputs and returns options writing to an empty dir.
func fixture(t *testing.T) Options {
	t.Helper()
	in := t.TempDir()
	return Options{
		FileA: writeFile(t, in, "a.tsv", "Gene\tTreatA\nG1\t1.0\nG2\t-2.0\nG3\t3.0\n"),
		FileB: writeFile(t, in, "b.tsv", "Gene\tTreatB\nG1\t0.5\nG2\t-1.0\n"),
		Dir:   t.TempDir(),
	}
}

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestSetDefaults(t *testing.T) {
	var o Options
	o.SetDefaults()

	if o.Output != DefaultOutput {
		t.Errorf("Output = %q, want %q", o.Output, DefaultOutput)
	}
	if !slices.Equal(o.Formats, []string{"svg", "png"}) {
		t.Errorf("Formats = %v, want [svg png]", o.Formats)
	}
	if o.Backend != BackendPlot || o.DPI != 500 || o.Margin != 1.05 || o.LegendFontSize != 6 {
		t.Errorf("defaults = %+v", o)
	}
	if o.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}

	// Defaults must not alias the package-level slice.
	o.Formats[0] = "pdf"
	if DefaultFormats[0] != "svg" {
		t.Error("SetDefaults shares DefaultFormats")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Options)
		wantCode errors.Code
	}{
		{"valid", func(*Options) {}, ""},
		{"missing file", func(o *Options) { o.FileB = "" }, errors.ErrCodeUsage},
		{"bad backend", func(o *Options) { o.Backend = "matplotlib" }, errors.ErrCodeUsage},
		{"pdf on chart", func(o *Options) { o.Backend = BackendChart; o.Formats = []string{"pdf"} }, errors.ErrCodeUnsupported},
		{"pdf on plot", func(o *Options) { o.Formats = []string{"pdf"} }, ""},
		{"unknown format", func(o *Options) { o.Formats = []string{"bmp"} }, errors.ErrCodeUnsupported},
		{"output with extension", func(o *Options) { o.Output = "scatter.svg" }, errors.ErrCodeUsage},
		{"negative margin", func(o *Options) { o.Margin = -1 }, errors.ErrCodeInvalidInput},
		{"negative dpi", func(o *Options) { o.DPI = -1 }, errors.ErrCodeInvalidInput},
		{"negative legend font", func(o *Options) { o.LegendFontSize = -2 }, errors.ErrCodeInvalidInput},
		{"one limit", func(o *Options) { o.XLimits = []float64{1} }, errors.ErrCodeInvalidInput},
		{"reversed limits", func(o *Options) { o.YLimits = []float64{3, -3} }, errors.ErrCodeInvalidInput},
		{"good limits", func(o *Options) { o.XLimits = []float64{-3, 3} }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := Options{FileA: "a", FileB: "b"}
			o.SetDefaults()
			tt.mutate(&o)
			err := o.Validate()
			if got := errors.GetCode(err); got != tt.wantCode {
				t.Errorf("Validate() code = %q, want %q (err: %v)", got, tt.wantCode, err)
			}
		})
	}
}

func TestOutputLocation(t *testing.T) {
	o := Options{Dir: "out", Output: "plots/run1"}
	if got, want := o.OutputDir(), filepath.Join("out", "plots"); got != want {
		t.Errorf("OutputDir() = %q, want %q", got, want)
	}
	if got := o.OutputBase(); got != "run1" {
		t.Errorf("OutputBase() = %q, want %q", got, "run1")
	}
}

func TestExecuteWithoutSpec(t *testing.T) {
	opts := fixture(t)
	fake := &fakeRenderer{}
	r := &Runner{Logger: nil, Renderer: fake}

	res, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	want := []string{filepath.Join(opts.Dir, "scatter.png"), filepath.Join(opts.Dir, "scatter.svg")}
	if !slices.Equal(res.Paths, want) {
		t.Errorf("Paths = %v, want %v", res.Paths, want)
	}
	if res.Base != "scatter" {
		t.Errorf("Base = %q, want scatter", res.Base)
	}
	if res.Stats.Entities != 2 || res.Stats.Plotted != 2 || res.Stats.LegendEntries != 0 {
		t.Errorf("Stats = %+v, want 2 entities, 2 plotted, no legend", res.Stats)
	}
	if res.Scene.X.Label != "TreatA" || res.Scene.Y.Label != "TreatB" {
		t.Errorf("axis labels = %q/%q, want TreatA/TreatB", res.Scene.X.Label, res.Scene.Y.Label)
	}
	if len(fake.scenes) != 2 {
		t.Errorf("rendered %d times, want once per format", len(fake.scenes))
	}
}

func TestExecuteNeverOverwrites(t *testing.T) {
	opts := fixture(t)
	r := &Runner{Renderer: &fakeRenderer{}}

	var bases []string
	for range 3 {
		res, err := r.Execute(context.Background(), opts)
		if err != nil {
			t.Fatalf("Execute() error: %v", err)
		}
		bases = append(bases, res.Base)
	}
	if want := []string{"scatter", "scatter_0", "scatter_1"}; !slices.Equal(bases, want) {
		t.Errorf("bases = %v, want %v", bases, want)
	}
	if got := len(listDir(t, opts.Dir)); got != 6 {
		t.Errorf("dir has %d files, want 6", got)
	}
}

func TestExecuteWithSpec(t *testing.T) {
	opts := fixture(t)
	opts.SpecFile = writeFile(t, t.TempDir(), "spec.csv",
		strings.ReplaceAll(specHeader, "\t", ",")+
			"G1,1,r,0,40,0.5,2,1,8,Hits\n"+
			"G2,0,g,o,40,1,,0,0,Hidden\n")

	res, err := (&Runner{Renderer: &fakeRenderer{}}).Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	s := res.Scene
	if len(s.Points) != 1 || s.Points[0].Key != "G1" || s.Points[0].Marker != "." {
		t.Fatalf("Points = %+v, want only G1 with point marker", s.Points)
	}
	if len(s.Legend) != 1 || s.Legend[0].Group != "Hits" || s.Legend[0].Size != 80 {
		t.Errorf("Legend = %+v, want one Hits entry at double size", s.Legend)
	}
	if len(s.Labels) != 1 || s.Labels[0].Text != "G1" {
		t.Errorf("Labels = %+v, want G1", s.Labels)
	}
}

func TestExecuteFailuresWriteNothing(t *testing.T) {
	tests := []struct {
		name     string
		spec     string
		renderer *fakeRenderer
		wantCode errors.Code
		wantMsg  []string
	}{
		{
			name:     "non-integer layer",
			spec:     specHeader + "G1\t1\tr\to\t10\t1\tabc\t0\t0\t\n",
			renderer: &fakeRenderer{},
			wantCode: errors.ErrCodeParse,
			wantMsg:  []string{"G1", "spec.tsv", "abc"},
		},
		{
			name:     "missing column",
			spec:     "Gene name\tColor\nG1\tr\n",
			renderer: &fakeRenderer{},
			wantCode: errors.ErrCodeSchema,
			wantMsg:  []string{"Plot or not?", "Legend group"},
		},
		{
			name:     "renderer failure",
			spec:     specHeader,
			renderer: &fakeRenderer{err: stderrors.New("boom")},
			wantCode: errors.ErrCodeRender,
			wantMsg:  []string{"boom"},
		},
		{
			name:     "empty render output",
			spec:     specHeader,
			renderer: &fakeRenderer{empty: true},
			wantCode: errors.ErrCodeInternal,
			wantMsg:  []string{"svg", "no output"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := fixture(t)
			opts.SpecFile = writeFile(t, t.TempDir(), "spec.tsv", tt.spec)

			_, err := (&Runner{Renderer: tt.renderer}).Execute(context.Background(), opts)
			if err == nil {
				t.Fatal("Execute() should fail")
			}
			if got := errors.GetCode(err); got != tt.wantCode {
				t.Errorf("code = %q, want %q", got, tt.wantCode)
			}
			msg := errors.UserMessage(err)
			for _, want := range tt.wantMsg {
				if !strings.Contains(msg, want) {
					t.Errorf("message %q does not mention %q", msg, want)
				}
			}
			if files := listDir(t, opts.Dir); len(files) != 0 {
				t.Errorf("output dir = %v, want empty", files)
			}
		})
	}
}

func TestExecuteMissingInput(t *testing.T) {
	opts := fixture(t)
	opts.FileA = filepath.Join(t.TempDir(), "nope.tsv")
	_, err := (&Runner{Renderer: &fakeRenderer{}}).Execute(context.Background(), opts)
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Execute() error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestExecuteCanceled(t *testing.T) {
	opts := fixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := (&Runner{Renderer: &fakeRenderer{}}).Execute(ctx, opts)
	if !stderrors.Is(err, context.Canceled) {
		t.Errorf("Execute() error = %v, want context.Canceled", err)
	}
	if files := listDir(t, opts.Dir); len(files) != 0 {
		t.Errorf("output dir = %v, want empty", files)
	}
}

func TestExecuteRealBackends(t *testing.T) {
	for _, backend := range []string{BackendPlot, BackendChart} {
		t.Run(backend, func(t *testing.T) {
			opts := fixture(t)
			opts.Backend = backend
			opts.DPI = 72

			res, err := NewRunner(nil).Execute(context.Background(), opts)
			if err != nil {
				t.Fatalf("Execute() error: %v", err)
			}
			png, err := os.ReadFile(filepath.Join(opts.Dir, "scatter.png"))
			if err != nil {
				t.Fatal(err)
			}
			if !strings.HasPrefix(string(png), "\x89PNG") {
				t.Error("scatter.png is not a PNG")
			}
			if !strings.Contains(string(res.Artifacts["svg"]), "<svg") {
				t.Error("svg artifact has no <svg element")
			}
		})
	}
}
