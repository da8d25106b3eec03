// Package layer orders plotted entities into z-order draw layers.
//
// Every entity belongs to exactly one layer. A layer is identified by a [Key]:
// either an explicit integer from the specification file or [Unspecified],
// which sorts below every explicit value. [Schedule] groups entities by key
// and numbers the sorted layers from zero; that index is the z-order handed
// to the renderer, so later layers occlude earlier ones.
package layer

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
)

// Key identifies a draw layer. The zero value is [Unspecified].
type Key struct {
	explicit bool
	n        int
}

// Unspecified is the layer of entities without an explicit layer.
// It is always the lowest layer.
var Unspecified = Key{}

// Explicit returns the key of integer layer n.
func Explicit(n int) Key { return Key{explicit: true, n: n} }

// IsUnspecified reports whether k is the implicit bottom layer.
func (k Key) IsUnspecified() bool { return !k.explicit }

// String returns the layer number, or "unspecified".
func (k Key) String() string {
	if !k.explicit {
		return "unspecified"
	}
	return strconv.Itoa(k.n)
}

// Compare orders keys: Unspecified first, then explicit values ascending.
func Compare(a, b Key) int {
	switch {
	case !a.explicit && !b.explicit:
		return 0
	case !a.explicit:
		return -1
	case !b.explicit:
		return 1
	}
	return cmp.Compare(a.n, b.n)
}

// Parse converts a raw layer cell. A blank cell is Unspecified; anything else
// must be a base-10 integer.
func Parse(raw string) (Key, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Unspecified, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return Key{}, err
	}
	return Explicit(n), nil
}

// Member is an entity awaiting scheduling.
type Member struct {
	Entity string
	Layer  Key
}

// Layer is one z-order group of the draw sequence.
type Layer struct {
	Key      Key
	Z        int      // index in the sorted layer sequence
	Entities []string // draw order within the layer
}

// Schedule groups members by layer key and sorts the groups.
// Within a layer, entities keep the order in which they appear in members.
// Layers with no members are never produced.
func Schedule(members []Member) []Layer {
	byKey := make(map[Key]int)
	var layers []Layer
	for _, m := range members {
		i, ok := byKey[m.Layer]
		if !ok {
			i = len(layers)
			byKey[m.Layer] = i
			layers = append(layers, Layer{Key: m.Layer})
		}
		layers[i].Entities = append(layers[i].Entities, m.Entity)
	}

	slices.SortStableFunc(layers, func(a, b Layer) int { return Compare(a.Key, b.Key) })
	for i := range layers {
		layers[i].Z = i
	}
	return layers
}

// Top returns the highest z index in layers, or -1 when there are none.
func Top(layers []Layer) int {
	return len(layers) - 1
}

// Sequence flattens layers into the full draw order.
func Sequence(layers []Layer) []string {
	var seq []string
	for _, l := range layers {
		seq = append(seq, l.Entities...)
	}
	return seq
}
