// Package keyboard defines the Key value used throughout hopkey, the parser
// for human-written key specifications and the global key bindings.
package keyboard

import (
	"cmp"
	"fmt"
	"unicode"
)

// Symbol identifies the physical key of a press. Printable characters share
// the SymbolChar symbol and carry their rune in the Key.
type Symbol uint8

const (
	// SymbolNone is the zero symbol; no valid Key carries it.
	SymbolNone Symbol = iota

	// SymbolChar is a printable character key.
	SymbolChar

	// Editing and control keys
	Return
	Escape
	BackSpace
	Tab
	Delete
	Insert
	Home
	End
	PageUp
	PageDown

	// Arrow keys
	Up
	Down
	Left
	Right

	// Function keys
	F1
	F2
	F3
	F4
	F5
	F6
	F7
	F8
	F9
	F10
	F11
	F12

	// Bare modifier keys
	ShiftKey
	ControlKey
	AltKey
	SuperKey
)

// symbolNames holds the canonical (display) name of every named symbol.
var symbolNames = map[Symbol]string{
	Return:     "enter",
	Escape:     "esc",
	BackSpace:  "backspace",
	Tab:        "tab",
	Delete:     "delete",
	Insert:     "insert",
	Home:       "home",
	End:        "end",
	PageUp:     "pgup",
	PageDown:   "pgdown",
	Up:         "up",
	Down:       "down",
	Left:       "left",
	Right:      "right",
	F1:         "f1",
	F2:         "f2",
	F3:         "f3",
	F4:         "f4",
	F5:         "f5",
	F6:         "f6",
	F7:         "f7",
	F8:         "f8",
	F9:         "f9",
	F10:        "f10",
	F11:        "f11",
	F12:        "f12",
	ShiftKey:   "shift",
	ControlKey: "control",
	AltKey:     "alt",
	SuperKey:   "super",
}

// String returns the canonical name of the symbol.
func (s Symbol) String() string {
	switch s {
	case SymbolNone:
		return "none"
	case SymbolChar:
		return "char"
	}
	if name, ok := symbolNames[s]; ok {
		return name
	}
	return fmt.Sprintf("symbol(%d)", s)
}

// Key is a key press: a symbol plus the set of modifiers held with it.
//
// Key is a comparable value and can be used directly as a map key. Two keys
// are equal only when symbol, rune and modifiers all match. The fields are
// unexported so a Key cannot change after construction; With returns a copy.
type Key struct {
	symbol Symbol
	char   rune
	mods   Modifier
}

// Char returns the key for a printable character with no modifiers.
func Char(r rune) Key {
	return Key{symbol: SymbolChar, char: r}
}

// Named returns the key for a named special symbol with no modifiers.
func Named(s Symbol) Key {
	return Key{symbol: s}
}

// With returns a copy of k with mod added to its modifier set.
func (k Key) With(mod Modifier) Key {
	k.mods = k.mods.With(mod)
	return k
}

// Plain returns a copy of k without any modifiers.
func (k Key) Plain() Key {
	k.mods = ModNone
	return k
}

// Symbol returns the symbol of the key.
func (k Key) Symbol() Symbol {
	return k.symbol
}

// Modifiers returns the modifier set of the key.
func (k Key) Modifiers() Modifier {
	return k.mods
}

// Printable returns the character typed by this key press when it produces
// text: a printable rune with at most Shift held.
func (k Key) Printable() (rune, bool) {
	if k.symbol != SymbolChar || !unicode.IsPrint(k.char) {
		return 0, false
	}
	if !k.mods.Without(ModShift).IsEmpty() {
		return 0, false
	}
	return k.char, true
}

// String returns the key in the same notation Parse accepts, e.g. "ctrl+p",
// "esc", "space", "shift+f1".
func (k Key) String() string {
	var name string
	switch k.symbol {
	case SymbolChar:
		if k.char == ' ' {
			name = "space"
		} else {
			name = string(k.char)
		}
	default:
		name = k.symbol.String()
	}
	if k.mods.IsEmpty() {
		return name
	}
	return k.mods.String() + "+" + name
}

// Compare orders keys by symbol, then rune, then modifier set. Character keys
// sort before named keys.
func Compare(a, b Key) int {
	if c := cmp.Compare(a.symbol, b.symbol); c != 0 {
		return c
	}
	if c := cmp.Compare(a.char, b.char); c != 0 {
		return c
	}
	return cmp.Compare(a.mods, b.mods)
}
