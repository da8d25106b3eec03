// Package legend collects legend entries while the draw sequence is walked.
//
// The first plotted entity of each legend group decides how that group looks
// in the legend. Later entities of the same group are ignored, and entities
// with an empty group never produce an entry.
package legend

// MarkerScale enlarges legend markers relative to plotted ones.
const MarkerScale = 2

// Entry is one legend row.
type Entry struct {
	Group  string
	Color  string
	Marker string
	Alpha  float64
	Size   float64 // already scaled by MarkerScale
}

// Collector is an ordered, deduplicating set of entries.
// The zero value is ready to use.
type Collector struct {
	seen    map[string]struct{}
	entries []Entry
}

// Observe records an entry for group unless group is empty or already seen.
// It reports whether a new entry was added.
func (c *Collector) Observe(group, color, marker string, alpha, size float64) bool {
	if group == "" {
		return false
	}
	if _, ok := c.seen[group]; ok {
		return false
	}
	if c.seen == nil {
		c.seen = make(map[string]struct{})
	}
	c.seen[group] = struct{}{}
	c.entries = append(c.entries, Entry{
		Group:  group,
		Color:  color,
		Marker: marker,
		Alpha:  alpha,
		Size:   size * MarkerScale,
	})
	return true
}

// Len returns the number of entries.
func (c *Collector) Len() int { return len(c.entries) }

// Entries returns the entries in first-seen order.
func (c *Collector) Entries() []Entry {
	return append([]Entry(nil), c.entries...)
}
