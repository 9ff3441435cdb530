package keyboard

import "strings"

// Modifier is a set of modifier keys held during a key press.
type Modifier uint8

const (
	// ModNone indicates no modifiers.
	ModNone Modifier = 0

	// ModShift indicates the Shift key.
	ModShift Modifier = 1 << iota

	// ModControl indicates the Control key.
	ModControl

	// ModAlt indicates the Alt key (Option on macOS).
	ModAlt

	// ModSuper indicates the Super key (Cmd on macOS, Win on Windows).
	ModSuper
)

// Has returns true if m contains all modifiers in mod.
func (m Modifier) Has(mod Modifier) bool {
	return m&mod == mod
}

// With returns a new Modifier with mod added.
func (m Modifier) With(mod Modifier) Modifier {
	return m | mod
}

// Without returns a new Modifier with mod removed.
func (m Modifier) Without(mod Modifier) Modifier {
	return m &^ mod
}

// IsEmpty returns true if no modifiers are set.
func (m Modifier) IsEmpty() bool {
	return m == ModNone
}

// String returns the modifiers in "ctrl+alt+shift+super" order, joined by "+".
func (m Modifier) String() string {
	if m == ModNone {
		return ""
	}

	var parts []string
	if m.Has(ModControl) {
		parts = append(parts, "ctrl")
	}
	if m.Has(ModAlt) {
		parts = append(parts, "alt")
	}
	if m.Has(ModShift) {
		parts = append(parts, "shift")
	}
	if m.Has(ModSuper) {
		parts = append(parts, "super")
	}
	return strings.Join(parts, "+")
}

// modifierNames maps lower-case modifier names to Modifier values.
var modifierNames = map[string]Modifier{
	"ctrl":    ModControl,
	"control": ModControl,
	"c":       ModControl,
	"alt":     ModAlt,
	"option":  ModAlt,
	"opt":     ModAlt,
	"a":       ModAlt,
	"shift":   ModShift,
	"s":       ModShift,
	"super":   ModSuper,
	"cmd":     ModSuper,
	"win":     ModSuper,
	"meta":    ModSuper,
	"m":       ModSuper,
}

// ModifierFromName returns the Modifier for a lower-case name.
func ModifierFromName(name string) (Modifier, bool) {
	m, ok := modifierNames[name]
	return m, ok
}
