package keyboard

import "slices"

// Bindings holds the global key configuration shared by every mode of the
// dispatcher. It is built once at startup and only read afterwards.
type Bindings struct {
	// Activation keys wake the dispatcher up from the inactive state
	Activation []Key

	// Back pops one layer, cancels parameter input or cancels a failed command
	Back []Key

	// Deactivate returns to the inactive state from anywhere
	Deactivate []Key

	// Retry re-runs a failed step
	Retry []Key

	// Copy copies the failure detail to the clipboard (optional)
	Copy []Key
}

// Default returns the default key configuration
func Default() *Bindings {
	return &Bindings{
		Activation: []Key{Char(' ')},
		Back:       []Key{Named(BackSpace)},
		Deactivate: []Key{Named(Escape)},
		Retry:      []Key{Named(Return)},
		Copy:       []Key{Char('y')},
	}
}

// IsActivation returns true if k is one of the activation keys
func (b *Bindings) IsActivation(k Key) bool {
	return slices.Contains(b.Activation, k)
}

// IsBack returns true if k is one of the back keys
func (b *Bindings) IsBack(k Key) bool {
	return slices.Contains(b.Back, k)
}

// IsDeactivate returns true if k is one of the deactivate keys
func (b *Bindings) IsDeactivate(k Key) bool {
	return slices.Contains(b.Deactivate, k)
}

// IsRetry returns true if k is one of the retry keys
func (b *Bindings) IsRetry(k Key) bool {
	return slices.Contains(b.Retry, k)
}

// IsCopy returns true if k is one of the copy keys
func (b *Bindings) IsCopy(k Key) bool {
	return slices.Contains(b.Copy, k)
}

// Reserved returns the back and deactivate keys. Layers and option lists
// check them before their own shortcuts, so no shortcut may use them.
func (b *Bindings) Reserved() []Key {
	return slices.Concat(b.Back, b.Deactivate)
}
