// Package ui holds the color themes and shared styles of the hopkey
// front-end and of the check command's tree output.
package ui

import (
	"slices"

	"github.com/charmbracelet/lipgloss"
)

// Palette is the set of colors a theme is derived from
type Palette struct {
	Primary    lipgloss.AdaptiveColor // Breadcrumb, prompts
	Secondary  lipgloss.AdaptiveColor // Layers
	Accent     lipgloss.AdaptiveColor // Keys
	Foreground lipgloss.AdaptiveColor
	Muted      lipgloss.AdaptiveColor // Meta actions (back, close)
	Error      lipgloss.AdaptiveColor
	Success    lipgloss.AdaptiveColor
	Warning    lipgloss.AdaptiveColor
	Border     lipgloss.AdaptiveColor
}

// Theme defines the styles for the TUI
type Theme struct {
	Name    string
	Palette Palette

	Box        lipgloss.Style // Frame around the dispatcher
	Breadcrumb lipgloss.Style
	Key        lipgloss.Style
	Layer      lipgloss.Style
	Command    lipgloss.Style
	Option     lipgloss.Style
	Meta       lipgloss.Style
	Prompt     lipgloss.Style
	Input      lipgloss.Style
	Cursor     lipgloss.Style
	Error      lipgloss.Style
	Notice     lipgloss.Style
	Idle       lipgloss.Style
}

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

var palettes = map[string]Palette{
	"charm": {
		Primary: ac("#5A56E0", "#7571F9"), Secondary: ac("#02BA84", "#02BF87"), Accent: ac("#F780E2", "#F780E2"),
		Foreground: ac("235", "252"), Muted: ac("243", "243"), Error: ac("#FF4672", "#ED567A"),
		Success: ac("#02BA84", "#02BF87"), Warning: ac("#FFAA00", "#FFAA00"), Border: ac("240", "240"),
	},
	"dracula": {
		Primary: ac("#bd93f9", "#bd93f9"), Secondary: ac("#8be9fd", "#8be9fd"), Accent: ac("#ff79c6", "#ff79c6"),
		Foreground: ac("#282a36", "#f8f8f2"), Muted: ac("#6272a4", "#6272a4"), Error: ac("#ff5555", "#ff5555"),
		Success: ac("#50fa7b", "#50fa7b"), Warning: ac("#f1fa8c", "#f1fa8c"), Border: ac("61", "61"),
	},
	"catppuccin": {
		Primary: ac("#8839ef", "#cba6f7"), Secondary: ac("#179299", "#89dceb"), Accent: ac("#ea76cb", "#f5c2e7"),
		Foreground: ac("#4c4f69", "#cdd6f4"), Muted: ac("#9ca0b0", "#7f849c"), Error: ac("#d20f39", "#f38ba8"),
		Success: ac("#40a02b", "#a6e3a1"), Warning: ac("#df8e1d", "#f9e2af"), Border: ac("#9ca0b0", "#45475a"),
	},
	"nord": {
		Primary: ac("#5e81ac", "#88c0d0"), Secondary: ac("#81a1c1", "#81a1c1"), Accent: ac("#b48ead", "#b48ead"),
		Foreground: ac("#2e3440", "#eceff4"), Muted: ac("#4c566a", "#4c566a"), Error: ac("#bf616a", "#bf616a"),
		Success: ac("#a3be8c", "#a3be8c"), Warning: ac("#ebcb8b", "#ebcb8b"), Border: ac("#d8dee9", "#3b4252"),
	},
	"gruvbox": {
		Primary: ac("#af3a03", "#fe8019"), Secondary: ac("#79740e", "#b8bb26"), Accent: ac("#b16286", "#d3869b"),
		Foreground: ac("#3c3836", "#ebdbb2"), Muted: ac("#7c6f64", "#928374"), Error: ac("#9d0006", "#fb4934"),
		Success: ac("#79740e", "#b8bb26"), Warning: ac("#b57614", "#fabd2f"), Border: ac("#d5c4a1", "#504945"),
	},
	"tokyo-night": {
		Primary: ac("#7aa2f7", "#7aa2f7"), Secondary: ac("#2ac3de", "#2ac3de"), Accent: ac("#bb9af7", "#bb9af7"),
		Foreground: ac("#1a1b26", "#c0caf5"), Muted: ac("#565f89", "#565f89"), Error: ac("#f7768e", "#f7768e"),
		Success: ac("#9ece6a", "#9ece6a"), Warning: ac("#e0af68", "#e0af68"), Border: ac("#a9b1d6", "#292e42"),
	},
	"solarized": {
		Primary: ac("#268bd2", "#268bd2"), Secondary: ac("#2aa198", "#2aa198"), Accent: ac("#6c71c4", "#6c71c4"),
		Foreground: ac("#002b36", "#839496"), Muted: ac("#586e75", "#586e75"), Error: ac("#dc322f", "#dc322f"),
		Success: ac("#859900", "#859900"), Warning: ac("#cb4b16", "#cb4b16"), Border: ac("#93a1a1", "#073642"),
	},
	"monokai": {
		Primary: ac("#66d9ef", "#66d9ef"), Secondary: ac("#a6e22e", "#a6e22e"), Accent: ac("#ae81ff", "#ae81ff"),
		Foreground: ac("#272822", "#f8f8f2"), Muted: ac("#75715e", "#75715e"), Error: ac("#f92672", "#f92672"),
		Success: ac("#a6e22e", "#a6e22e"), Warning: ac("#e6db74", "#e6db74"), Border: ac("#464741", "#464741"),
	},
}

// DefaultTheme is used when no theme is configured
const DefaultTheme = "charm"

// NewTheme derives the styles of a theme from its palette
func NewTheme(name string, p Palette) *Theme {
	return &Theme{
		Name:    name,
		Palette: p,

		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Border).
			Padding(0, 1),
		Breadcrumb: lipgloss.NewStyle().Foreground(p.Primary).Bold(true),
		Key:        lipgloss.NewStyle().Foreground(p.Accent).Bold(true),
		Layer:      lipgloss.NewStyle().Foreground(p.Secondary),
		Command:    lipgloss.NewStyle().Foreground(p.Foreground),
		Option:     lipgloss.NewStyle().Foreground(p.Foreground),
		Meta:       lipgloss.NewStyle().Foreground(p.Muted),
		Prompt:     lipgloss.NewStyle().Foreground(p.Primary),
		Input:      lipgloss.NewStyle().Foreground(p.Foreground),
		Cursor:     lipgloss.NewStyle().Foreground(p.Accent),
		Error:      lipgloss.NewStyle().Foreground(p.Error).Bold(true),
		Notice:     lipgloss.NewStyle().Foreground(p.Success),
		Idle:       lipgloss.NewStyle().Foreground(p.Muted).Italic(true),
	}
}

// GetTheme returns a theme by name, defaulting to charm
func GetTheme(name string) *Theme {
	p, ok := palettes[name]
	if !ok {
		name = DefaultTheme
		p = palettes[DefaultTheme]
	}
	return NewTheme(name, p)
}

// IsTheme reports whether name is a known theme
func IsTheme(name string) bool {
	_, ok := palettes[name]
	return ok
}

// AvailableThemes returns the theme names in sorted order
func AvailableThemes() []string {
	names := make([]string, 0, len(palettes))
	for name := range palettes {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
