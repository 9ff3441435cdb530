package layers

import "slices"

// Stack is the path of active layers from the root to the current layer.
// A Stack always holds at least the root; it can only be created with
// NewStack and never pops its root.
type Stack struct {
	layers []*Layer
}

// NewStack creates a stack containing only root
func NewStack(root *Layer) Stack {
	return Stack{layers: []*Layer{root}}
}

// Top returns the current layer
func (s Stack) Top() *Layer {
	return s.layers[len(s.layers)-1]
}

// Depth returns the number of layers on the stack
func (s Stack) Depth() int {
	return len(s.layers)
}

// Push returns a new stack with layer on top
func (s Stack) Push(layer *Layer) Stack {
	next := make([]*Layer, len(s.layers), len(s.layers)+1)
	copy(next, s.layers)
	return Stack{layers: append(next, layer)}
}

// Pop returns the stack without its top layer. It refuses to remove the
// root and returns false instead.
func (s Stack) Pop() (Stack, bool) {
	if len(s.layers) <= 1 {
		return s, false
	}
	return Stack{layers: slices.Clone(s.layers[:len(s.layers)-1])}, true
}

// Names returns the layer names from root to top
func (s Stack) Names() []string {
	names := make([]string, len(s.layers))
	for i, l := range s.layers {
		names[i] = l.Name()
	}
	return names
}
