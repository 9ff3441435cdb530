package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Truncate shortens text to width cells, ending with an ellipsis when cut
func Truncate(text string, width int) string {
	if width < 1 || lipgloss.Width(text) <= width {
		return text
	}
	runes := []rune(text)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}

// RenderError renders a failure message wrapped to width with a bullet
// prefix. Multi-line details (such as stderr output) keep their line breaks.
func RenderError(text string, theme *Theme, width int) string {
	if text == "" {
		return ""
	}
	const prefix = "⏺ "
	style := theme.Error
	if width > len(prefix)+10 {
		style = style.Width(width - lipgloss.Width(prefix))
	}

	lines := strings.Split(style.Render(text), "\n")
	for i := range lines {
		if i == 0 {
			lines[i] = theme.Error.Render(prefix) + lines[i]
		} else {
			lines[i] = strings.Repeat(" ", lipgloss.Width(prefix)) + lines[i]
		}
	}
	return strings.Join(lines, "\n")
}
