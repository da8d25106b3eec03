package table

import (
	"strconv"
	"strings"

	"github.com/matzehuels/scatterspec/pkg/errors"
)

// Measurements maps entity keys to one numeric value per entity.
// It is built once by [Load] and not modified afterwards.
type Measurements struct {
	Path   string
	Label  string             // header of the value column, used as the axis label
	Keys   []string           // distinct keys in first-occurrence order
	Values map[string]float64 // last occurrence wins for repeated keys
}

// Len returns the number of distinct entities.
func (m *Measurements) Len() int { return len(m.Keys) }

// Value returns the measurement for key.
func (m *Measurements) Value(key string) (float64, bool) {
	v, ok := m.Values[key]
	return v, ok
}

// Load reads a two-column measurement file. Column one is the entity key,
// column two the value; further columns are ignored. Each data line is
// trimmed as a whole before it is split, so leading whitespace never ends up
// in a key.
//
// A value that does not parse as a float aborts the load with a PARSE_ERROR
// naming the file, line and key.
func Load(path string) (*Measurements, error) {
	rows, err := ReadRows(path)
	if err != nil {
		return nil, err
	}
	return FromRows(rows)
}

// FromRows builds measurements from already-read rows.
func FromRows(rows *Rows) (*Measurements, error) {
	if len(rows.Header) < 2 {
		return nil, errors.New(errors.ErrCodeParse,
			"%s: header must have at least two columns (key and value)", rows.Path)
	}

	m := &Measurements{
		Path:   rows.Path,
		Label:  rows.Header[1],
		Values: make(map[string]float64, len(rows.Records)),
	}

	for _, rec := range rows.Records {
		fields := rec.Fields
		if rows.Delimiter != 0 {
			// Measurement lines are trimmed as a whole before splitting.
			fields = strings.Split(strings.TrimSpace(rec.Text), string(rows.Delimiter))
		}
		if len(fields) < 2 {
			return nil, errors.New(errors.ErrCodeParse,
				"%s line %d: expected a key and a value, got %q", rows.Path, rec.Line, fields)
		}
		key, raw := fields[0], fields[1]
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeParse, err,
				"%s line %d: cannot parse value %q for %q as a number", rows.Path, rec.Line, raw, key)
		}
		if _, seen := m.Values[key]; !seen {
			m.Keys = append(m.Keys, key)
		}
		m.Values[key] = v
	}
	return m, nil
}
