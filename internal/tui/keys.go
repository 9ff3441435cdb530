package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/renato0307/hopkey/internal/keyboard"
)

var namedKeys = map[tea.KeyType]keyboard.Key{
	tea.KeySpace:     keyboard.Char(' '),
	tea.KeyCtrlAt:    keyboard.Char(' ').With(keyboard.ModControl),
	tea.KeyEnter:     keyboard.Named(keyboard.Return),
	tea.KeyEsc:       keyboard.Named(keyboard.Escape),
	tea.KeyBackspace: keyboard.Named(keyboard.BackSpace),
	tea.KeyTab:       keyboard.Named(keyboard.Tab),
	tea.KeyShiftTab:  keyboard.Named(keyboard.Tab).With(keyboard.ModShift),
	tea.KeyDelete:    keyboard.Named(keyboard.Delete),
	tea.KeyInsert:    keyboard.Named(keyboard.Insert),
	tea.KeyHome:      keyboard.Named(keyboard.Home),
	tea.KeyEnd:       keyboard.Named(keyboard.End),
	tea.KeyPgUp:      keyboard.Named(keyboard.PageUp),
	tea.KeyPgDown:    keyboard.Named(keyboard.PageDown),
	tea.KeyUp:        keyboard.Named(keyboard.Up),
	tea.KeyDown:      keyboard.Named(keyboard.Down),
	tea.KeyLeft:      keyboard.Named(keyboard.Left),
	tea.KeyRight:     keyboard.Named(keyboard.Right),
	tea.KeyShiftUp:   keyboard.Named(keyboard.Up).With(keyboard.ModShift),
	tea.KeyShiftDown: keyboard.Named(keyboard.Down).With(keyboard.ModShift),
	tea.KeyCtrlUp:    keyboard.Named(keyboard.Up).With(keyboard.ModControl),
	tea.KeyCtrlDown:  keyboard.Named(keyboard.Down).With(keyboard.ModControl),
	tea.KeyF1:        keyboard.Named(keyboard.F1),
	tea.KeyF2:        keyboard.Named(keyboard.F2),
	tea.KeyF3:        keyboard.Named(keyboard.F3),
	tea.KeyF4:        keyboard.Named(keyboard.F4),
	tea.KeyF5:        keyboard.Named(keyboard.F5),
	tea.KeyF6:        keyboard.Named(keyboard.F6),
	tea.KeyF7:        keyboard.Named(keyboard.F7),
	tea.KeyF8:        keyboard.Named(keyboard.F8),
	tea.KeyF9:        keyboard.Named(keyboard.F9),
	tea.KeyF10:       keyboard.Named(keyboard.F10),
	tea.KeyF11:       keyboard.Named(keyboard.F11),
	tea.KeyF12:       keyboard.Named(keyboard.F12),
}

// convertKey translates a terminal key event. Pasted text and multi-rune
// events yield one key per rune; unknown events yield none.
func convertKey(msg tea.KeyMsg) []keyboard.Key {
	var mods keyboard.Modifier
	if msg.Alt {
		mods = keyboard.ModAlt
	}

	switch {
	case msg.Type == tea.KeyRunes:
		keys := make([]keyboard.Key, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			k := keyboard.Char(r)
			if !msg.Paste {
				k = k.With(mods)
			}
			keys = append(keys, k)
		}
		return keys
	case msg.Type >= tea.KeyCtrlA && msg.Type <= tea.KeyCtrlZ && !isNamed(msg.Type):
		r := 'a' + rune(msg.Type-tea.KeyCtrlA)
		return []keyboard.Key{keyboard.Char(r).With(mods.With(keyboard.ModControl))}
	}

	if k, ok := namedKeys[msg.Type]; ok {
		return []keyboard.Key{k.With(mods)}
	}
	return nil
}

// isNamed reports control codes the terminal sends for named keys
// (tab is ctrl+i, enter is ctrl+m)
func isNamed(t tea.KeyType) bool {
	_, ok := namedKeys[t]
	return ok
}
