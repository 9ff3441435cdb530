package layers

import (
	"errors"
	"fmt"
	"slices"

	"github.com/renato0307/hopkey/internal/keyboard"
	"github.com/renato0307/hopkey/internal/shortcuts"
)

// ErrReservedKey is returned when an explicit key is one of the global keys
// every layer leaves free
var ErrReservedKey = errors.New("key is reserved")

// Builder fills a layer from configuration. Explicit keys are bound as they
// are added; the remaining children get mnemonic keys when Build is called.
// Reserved keys are never bound, explicitly or by mnemonic.
type Builder struct {
	layer    *Layer
	reserved []keyboard.Key
	pending  []shortcuts.Named[Action]
}

// NewBuilder starts a layer called name
func NewBuilder(name string, reserved ...keyboard.Key) *Builder {
	return &Builder{layer: New(name), reserved: reserved}
}

// Bind binds action to key. Reserved keys are rejected with ErrReservedKey
// and taken keys with a *ConflictError.
func (b *Builder) Bind(key keyboard.Key, action Action) error {
	if slices.Contains(b.reserved, key) {
		return fmt.Errorf("%w: %q", ErrReservedKey, key.String())
	}
	return b.layer.actions.Insert(key, action)
}

// Defer queues action for mnemonic assignment from name. Deferred actions
// keep their relative order, which is their assignment priority.
func (b *Builder) Defer(name string, action Action) {
	b.pending = append(b.pending, shortcuts.Named[Action]{Name: name, Value: action})
}

// Build assigns mnemonics to the deferred actions and returns the layer,
// along with the deferred actions that ran out of candidate keys.
func (b *Builder) Build() (*Layer, []Action) {
	var dropped []Action
	for _, d := range shortcuts.AssignInto(b.layer.actions, b.pending, b.reserved...) {
		dropped = append(dropped, d.Value)
	}
	b.pending = nil
	return b.layer, dropped
}
