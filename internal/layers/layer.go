// Package layers holds the static tree of key-bound layers and commands the
// dispatcher navigates. The tree is built once at configuration time and is
// read-only afterwards, so it can be shared freely between goroutines.
package layers

import (
	"github.com/renato0307/hopkey/internal/commands"
	"github.com/renato0307/hopkey/internal/keyboard"
	"github.com/renato0307/hopkey/internal/shortcuts"
)

// Action is what a key does inside a layer: Branch or Execute
type Action interface {
	// Label is the name shown next to the key
	Label() string
	isAction()
}

// Branch descends into a child layer
type Branch struct {
	Layer *Layer
}

// Label returns the child layer name
func (b Branch) Label() string { return b.Layer.Name() }
func (Branch) isAction() {}

// Execute runs a command
type Execute struct {
	Command *commands.Command
}

// Label returns the command name
func (e Execute) Label() string { return e.Command.Name() }
func (Execute) isAction() {}

// ConflictError is returned when a key is bound twice in the same layer
type ConflictError = shortcuts.ConflictError[Action]

// Layer is a named set of key-bound actions
type Layer struct {
	name    string
	actions *shortcuts.Map[Action]
}

// New creates an empty layer
func New(name string) *Layer {
	return &Layer{
		name:    name,
		actions: shortcuts.NewMap[Action](),
	}
}

// Name returns the layer name
func (l *Layer) Name() string {
	return l.name
}

// AddLayer binds key to a child layer. An already-bound key is rejected with
// a *ConflictError carrying the key and the rejected Branch.
func (l *Layer) AddLayer(key keyboard.Key, sub *Layer) error {
	return l.actions.Insert(key, Branch{Layer: sub})
}

// AddCommand binds key to a command. An already-bound key is rejected with a
// *ConflictError carrying the key and the rejected Execute.
func (l *Layer) AddCommand(key keyboard.Key, cmd *commands.Command) error {
	return l.actions.Insert(key, Execute{Command: cmd})
}

// Resolve returns the action bound to exactly key (symbol and modifiers)
func (l *Layer) Resolve(key keyboard.Key) (Action, bool) {
	return l.actions.Get(key)
}

// Actions returns every binding of the layer ordered by key
func (l *Layer) Actions() []shortcuts.Entry[Action] {
	return l.actions.Entries()
}

// Walk visits every layer and command below l depth-first, in key order.
// path holds the keys pressed from l to reach the action.
func (l *Layer) Walk(fn func(path []keyboard.Key, action Action)) {
	l.walk(nil, fn)
}

func (l *Layer) walk(prefix []keyboard.Key, fn func([]keyboard.Key, Action)) {
	for _, e := range l.Actions() {
		path := append(append([]keyboard.Key(nil), prefix...), e.Key)
		fn(path, e.Value)
		if b, ok := e.Value.(Branch); ok {
			b.Layer.walk(path, fn)
		}
	}
}
