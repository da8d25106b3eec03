package plotspec

import (
	"strconv"
	"strings"

	"github.com/matzehuels/scatterspec/pkg/dataset"
	"github.com/matzehuels/scatterspec/pkg/errors"
	"github.com/matzehuels/scatterspec/pkg/layer"
	"github.com/matzehuels/scatterspec/pkg/table"
)

// Spec is a loaded specification file.
type Spec struct {
	Path   string
	order  []string
	styles map[string]Style
}

// Load reads and validates a specification file.
func Load(path string) (*Spec, error) {
	rows, err := table.ReadRows(path)
	if err != nil {
		return nil, err
	}
	return FromRows(rows)
}

// FromRows builds a Spec from already-read rows. Column lookup and validation
// happen once, before any row is interpreted.
func FromRows(rows *table.Rows) (*Spec, error) {
	cols, err := resolveColumns(rows.Header, rows.Path)
	if err != nil {
		return nil, err
	}

	s := &Spec{Path: rows.Path, styles: make(map[string]Style, len(rows.Records))}
	for _, rec := range rows.Records {
		key, style, err := parseRecord(rec, cols, rows.Path)
		if err != nil {
			return nil, err
		}
		if _, dup := s.styles[key]; !dup {
			s.order = append(s.order, key)
		}
		s.styles[key] = style
	}
	return s, nil
}

func parseRecord(rec table.Record, c columns, path string) (string, Style, error) {
	field := func(i int) string { return strings.TrimSpace(rec.Field(i)) }
	key := field(c.key)

	lk, err := layer.Parse(field(c.layer))
	if err != nil {
		return "", Style{}, errors.Wrap(errors.ErrCodeParse, err,
			"Layer column contains non-integer value %q in %s for gene %s", field(c.layer), path, key)
	}

	style := Style{
		Plot:        field(c.plot) == "1",
		Color:       field(c.color),
		Marker:      field(c.marker),
		Layer:       lk,
		Label:       field(c.label) == "1",
		LegendGroup: field(c.legendGroup),
	}
	if style.Marker == "0" {
		style.Marker = MarkerPoint
	}
	if !style.Plot {
		return key, style, nil
	}

	number := func(col int, name string) (float64, error) {
		raw := field(col)
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return 0, errors.Wrap(errors.ErrCodeParse, err,
				"%s column contains non-numeric value %q in %s for gene %s (line %d)", name, raw, path, key, rec.Line)
		}
		return v, nil
	}
	if style.Size, err = number(c.size, ColumnSize); err != nil {
		return "", Style{}, err
	}
	if style.Alpha, err = number(c.alpha, ColumnAlpha); err != nil {
		return "", Style{}, err
	}
	if style.LabelFontSize, err = number(c.labelFontSize, ColumnLabelFontSize); err != nil {
		return "", Style{}, err
	}
	return key, style, nil
}

// Len returns the number of distinct entities in the file.
func (s *Spec) Len() int {
	if s == nil {
		return 0
	}
	return len(s.order)
}

// Lookup returns the row for key, if the file has one.
func (s *Spec) Lookup(key string) (Style, bool) {
	if s == nil {
		return Style{}, false
	}
	st, ok := s.styles[key]
	return st, ok
}

// Resolve returns the row for key verbatim, or [Default] when there is none.
func (s *Spec) Resolve(key string) Style {
	if st, ok := s.Lookup(key); ok {
		return st
	}
	return Default()
}

// Order returns entity keys in first-row order.
func (s *Spec) Order() []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s.order...)
}

// Members lists the plotted entities of set in scheduling order: specification
// rows first, in file order, then entities without a row, in set order.
// Rows for entities outside set and rows with plotting disabled are left out.
func (s *Spec) Members(set dataset.EntitySet) []layer.Member {
	members := make([]layer.Member, 0, set.Len())
	for _, key := range s.Order() {
		st := s.styles[key]
		if !st.Plot || !set.Contains(key) {
			continue
		}
		members = append(members, layer.Member{Entity: key, Layer: st.Layer})
	}
	for _, key := range set.Keys {
		if _, ok := s.Lookup(key); ok {
			continue
		}
		members = append(members, layer.Member{Entity: key, Layer: layer.Unspecified})
	}
	return members
}
