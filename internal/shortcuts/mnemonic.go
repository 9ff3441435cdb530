package shortcuts

import (
	"slices"
	"unicode"

	"github.com/renato0307/hopkey/internal/keyboard"
)

// FallbackSuffix is appended to every name so that items whose letters are
// all taken still get a key.
const FallbackSuffix = "1234567890,.?/!@#$%&"

// Named is an item offered for mnemonic assignment.
type Named[V any] struct {
	Name  string
	Value V
}

// Assign derives a conflict-free key for every item from its name.
func Assign[V any](items []Named[V]) *Map[V] {
	m := NewMap[V]()
	AssignInto(m, items)
	return m
}

// AssignInto binds items into m without touching keys m already holds.
// Keys listed in reserved are treated as taken.
//
// Assignment runs in rounds over character positions. In round p every item
// still waiting tries the lower-cased p-th character of its name (extended
// with FallbackSuffix). The first item, in input order, to try a free key
// gets it; the others wait for round p+1. An item whose name runs out of
// characters gets no key; AssignInto returns those items.
func AssignInto[V any](m *Map[V], items []Named[V], reserved ...keyboard.Key) []Named[V] {
	type pending struct {
		item  Named[V]
		runes []rune
	}

	waiting := make([]pending, 0, len(items))
	for _, it := range items {
		waiting = append(waiting, pending{item: it, runes: []rune(it.Name + FallbackSuffix)})
	}

	var dropped []Named[V]
	for p := 0; len(waiting) > 0; p++ {
		next := waiting[:0]
		for _, w := range waiting {
			if p >= len(w.runes) {
				dropped = append(dropped, w.item)
				continue
			}
			k := keyboard.Char(unicode.ToLower(w.runes[p]))
			if slices.Contains(reserved, k) {
				next = append(next, w)
				continue
			}
			if err := m.Insert(k, w.item.Value); err != nil {
				next = append(next, w)
			}
		}
		waiting = next
	}
	return dropped
}
