// Package shortcuts provides Key-typed lookup maps that refuse to rebind a
// key, and the mnemonic assignment that derives keys from display names.
package shortcuts

import (
	"fmt"
	"slices"

	"github.com/renato0307/hopkey/internal/keyboard"
)

// ConflictError is returned when a key is already bound. It carries the
// rejected value back to the caller.
type ConflictError[V any] struct {
	Key      keyboard.Key
	Existing V
	Rejected V
}

func (e *ConflictError[V]) Error() string {
	return fmt.Sprintf("key %q is already bound", e.Key.String())
}

// Entry is a single key binding.
type Entry[V any] struct {
	Key   keyboard.Key
	Value V
}

// Map binds keys to values. A key can be bound only once.
//
// The zero value is not usable; create maps with NewMap.
type Map[V any] struct {
	bindings map[keyboard.Key]V
}

// NewMap creates an empty map
func NewMap[V any]() *Map[V] {
	return &Map[V]{bindings: make(map[keyboard.Key]V)}
}

// Insert binds k to v. If k is already bound the map is left unchanged and a
// *ConflictError is returned.
func (m *Map[V]) Insert(k keyboard.Key, v V) error {
	if existing, ok := m.bindings[k]; ok {
		return &ConflictError[V]{Key: k, Existing: existing, Rejected: v}
	}
	m.bindings[k] = v
	return nil
}

// Get returns the value bound to exactly k (symbol and modifiers).
func (m *Map[V]) Get(k keyboard.Key) (V, bool) {
	v, ok := m.bindings[k]
	return v, ok
}

// Fuzzy returns the value bound to k, falling back to the same symbol
// without modifiers.
func (m *Map[V]) Fuzzy(k keyboard.Key) (V, bool) {
	if v, ok := m.bindings[k]; ok {
		return v, true
	}
	v, ok := m.bindings[k.Plain()]
	return v, ok
}

// Len returns the number of bindings.
func (m *Map[V]) Len() int {
	return len(m.bindings)
}

// Entries returns all bindings ordered by key.
func (m *Map[V]) Entries() []Entry[V] {
	entries := make([]Entry[V], 0, len(m.bindings))
	for k, v := range m.bindings {
		entries = append(entries, Entry[V]{Key: k, Value: v})
	}
	slices.SortFunc(entries, func(a, b Entry[V]) int {
		return keyboard.Compare(a.Key, b.Key)
	})
	return entries
}
