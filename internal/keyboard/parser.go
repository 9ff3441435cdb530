package keyboard

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Parse errors
var (
	ErrEmptySpec        = errors.New("empty key specification")
	ErrUnknownKey       = errors.New("unknown key")
	ErrUnknownModifier  = errors.New("unknown modifier")
	ErrUnmatchedBracket = errors.New("unmatched bracket in key specification")
	ErrShiftedChar      = errors.New("shift only applies to letters and named keys")
)

// keyAliases maps accepted (lower-case) names to keys. Canonical names are
// added from symbolNames in init.
var keyAliases = map[string]Key{
	"space":     Char(' '),
	"spc":       Char(' '),
	"return":    Named(Return),
	"ret":       Named(Return),
	"cr":        Named(Return),
	"escape":    Named(Escape),
	"bs":        Named(BackSpace),
	"del":       Named(Delete),
	"ins":       Named(Insert),
	"pageup":    Named(PageUp),
	"pagedown":  Named(PageDown),
	"pgdn":      Named(PageDown),
	"ctrl":      Named(ControlKey),
	"cmd":       Named(SuperKey),
	"plus":      Char('+'),
	"minus":     Char('-'),
	"lt":        Char('<'),
	"gt":        Char('>'),
	"backslash": Char('\\'),
}

func init() {
	for sym, name := range symbolNames {
		keyAliases[name] = Named(sym)
	}
}

// KeyNames returns every multi-character key name Parse understands, sorted.
func KeyNames() []string {
	names := make([]string, 0, len(keyAliases))
	for name := range keyAliases {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Parse parses a key specification into a Key.
//
// Supported formats:
//   - Single character: "a", "A", "1", "@"
//   - Named keys: "enter", "esc", "backspace", "space", "f5", "up"
//   - With modifiers: "ctrl+p", "alt+shift+x", "super+enter"
//   - Vim style: "<C-p>", "<A-x>", "<CR>", "<Esc>"
//
// Letters are normalized to what a terminal reports: "shift+a" is "A",
// "ctrl+P" and "ctrl+shift+p" are both "ctrl+p". Shift on any other
// character ("shift+1") is rejected since the terminal sends the shifted
// character instead.
func Parse(spec string) (Key, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Key{}, ErrEmptySpec
	}

	if strings.HasPrefix(spec, "<") && len(spec) > 1 {
		if !strings.HasSuffix(spec, ">") {
			return Key{}, fmt.Errorf("%w: %q", ErrUnmatchedBracket, spec)
		}
		return parseVimStyle(spec[1 : len(spec)-1])
	}

	// A lone "+" or a trailing "++" names the plus key itself
	if spec == "+" {
		return Char('+'), nil
	}
	if strings.HasSuffix(spec, "++") {
		mods, err := parseModifiers(strings.Split(strings.TrimSuffix(spec, "++"), "+"))
		if err != nil {
			return Key{}, err
		}
		return normalize(Char('+').With(mods), spec)
	}

	parts := strings.Split(spec, "+")
	mods, err := parseModifiers(parts[:len(parts)-1])
	if err != nil {
		return Key{}, err
	}
	k, err := parseName(parts[len(parts)-1])
	if err != nil {
		return Key{}, err
	}
	return normalize(k.With(mods), spec)
}

// MustParse is like Parse but panics on error. Use for compile-time constants.
func MustParse(spec string) Key {
	k, err := Parse(spec)
	if err != nil {
		panic(err)
	}
	return k
}

// parseVimStyle parses the inside of "<C-s>" style notation
func parseVimStyle(inner string) (Key, error) {
	inner = strings.TrimSpace(inner)
	if inner == "" {
		return Key{}, fmt.Errorf("%w: \"<>\"", ErrEmptySpec)
	}

	// "<C-->" is ctrl+minus
	if strings.HasSuffix(inner, "--") {
		mods, err := parseModifiers(strings.Split(strings.TrimSuffix(inner, "--"), "-"))
		if err != nil {
			return Key{}, err
		}
		return normalize(Char('-').With(mods), "<"+inner+">")
	}

	parts := strings.Split(inner, "-")
	mods, err := parseModifiers(parts[:len(parts)-1])
	if err != nil {
		return Key{}, err
	}
	k, err := parseName(parts[len(parts)-1])
	if err != nil {
		return Key{}, err
	}
	return normalize(k.With(mods), "<"+inner+">")
}

// normalize folds Shift into letter case and lower-cases Control letters
func normalize(k Key, spec string) (Key, error) {
	if k.symbol != SymbolChar || !k.mods.Has(ModShift) && !k.mods.Has(ModControl) {
		return k, nil
	}
	if !unicode.IsLetter(k.char) {
		if k.mods.Has(ModShift) {
			return Key{}, fmt.Errorf("%w: %q", ErrShiftedChar, spec)
		}
		return k, nil
	}
	if k.mods.Has(ModControl) {
		k.char = unicode.ToLower(k.char)
	} else {
		k.char = unicode.ToUpper(k.char)
	}
	k.mods = k.mods.Without(ModShift)
	return k, nil
}

func parseModifiers(parts []string) (Modifier, error) {
	var mods Modifier
	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		mod, ok := ModifierFromName(p)
		if !ok {
			return ModNone, fmt.Errorf("%w: %q", ErrUnknownModifier, p)
		}
		mods = mods.With(mod)
	}
	return mods, nil
}

// parseName parses a single character or a key name
func parseName(name string) (Key, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Key{}, ErrEmptySpec
	}
	if utf8.RuneCountInString(name) == 1 {
		r, _ := utf8.DecodeRuneInString(name)
		return Char(r), nil
	}
	if k, ok := keyAliases[strings.ToLower(name)]; ok {
		return k, nil
	}
	return Key{}, fmt.Errorf("%w: %q", ErrUnknownKey, name)
}
