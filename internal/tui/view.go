package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/renato0307/hopkey/internal/commands"
	"github.com/renato0307/hopkey/internal/dispatch"
	"github.com/renato0307/hopkey/internal/keyboard"
	"github.com/renato0307/hopkey/internal/ui"
)

// maxRows is the height of one column of hints before wrapping into the
// next column
const maxRows = 10

// maxLabel caps the width of a hint label so one long generated option
// cannot widen every column
const maxLabel = 40

type renderer struct {
	theme    *ui.Theme
	bindings *keyboard.Bindings
	width    int
}

func (r renderer) render(m dispatch.Model) string {
	var body string
	switch m := m.(type) {
	case dispatch.NavigationModel:
		body = r.navigation(m)
	case dispatch.ParameterModel:
		body = r.parameter(m)
	case dispatch.ErrorModel:
		body = r.failure(m)
	default:
		return r.idle()
	}

	box := r.theme.Box
	if r.width > 4 {
		box = box.Width(r.width - 2)
	}
	return box.Render(body)
}

func (r renderer) idle() string {
	return r.theme.Idle.Render("hopkey: press " + keyNames(r.bindings.Activation) + " to start, ctrl+c to quit")
}

func (r renderer) navigation(m dispatch.NavigationModel) string {
	var entries, meta []dispatch.Hint
	for _, h := range m.Hints {
		switch h.Kind {
		case dispatch.HintLayer, dispatch.HintCommand:
			entries = append(entries, h)
		default:
			meta = append(meta, h)
		}
	}

	sections := []string{r.breadcrumb(m.Stack)}
	if len(entries) > 0 {
		sections = append(sections, r.columns(entries))
	} else {
		sections = append(sections, r.theme.Meta.Render("(empty layer)"))
	}
	sections = append(sections, r.footer(meta))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (r renderer) parameter(m dispatch.ParameterModel) string {
	sections := []string{r.breadcrumb(append(append([]string(nil), m.Stack...), m.Command))}

	prompt := r.theme.Prompt.Render(m.Parameter + ": ")
	switch m.Kind {
	case commands.KindText:
		sections = append(sections, prompt+r.theme.Input.Render(m.Input)+r.theme.Cursor.Render("█"))
	case commands.KindCharacter:
		sections = append(sections, prompt+r.theme.Meta.Render("press a key"))
	case commands.KindChoose:
		sections = append(sections, prompt)
		if len(m.Options) > 0 {
			sections = append(sections, r.columns(m.Options))
		} else {
			sections = append(sections, r.theme.Meta.Render("(no options)"))
		}
	}

	sections = append(sections, r.footer(m.Hints))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (r renderer) failure(m dispatch.ErrorModel) string {
	sections := []string{ui.RenderError(m.Message, r.theme, r.width-6)}
	if m.Notice != "" {
		sections = append(sections, r.theme.Notice.Render(m.Notice))
	}
	sections = append(sections, r.footer(m.Hints))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (r renderer) breadcrumb(stack []string) string {
	return r.theme.Breadcrumb.Render(strings.Join(stack, " › "))
}

// columns lays hints out top to bottom, then left to right
func (r renderer) columns(hints []dispatch.Hint) string {
	var cols []string
	for start := 0; start < len(hints); start += maxRows {
		end := min(start+maxRows, len(hints))
		rows := make([]string, 0, end-start)
		for _, h := range hints[start:end] {
			rows = append(rows, r.entry(h))
		}
		col := lipgloss.JoinVertical(lipgloss.Left, rows...)
		if len(cols) > 0 {
			col = lipgloss.NewStyle().PaddingLeft(3).Render(col)
		}
		cols = append(cols, col)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

func (r renderer) entry(h dispatch.Hint) string {
	label := ui.Truncate(h.Label, maxLabel)
	style := r.theme.Command
	switch h.Kind {
	case dispatch.HintLayer:
		style = r.theme.Layer
		label = "+" + label
	case dispatch.HintOption:
		style = r.theme.Option
	}
	return r.theme.Key.Render(keyNames(h.Keys)) + " " + style.Render(label)
}

func (r renderer) footer(hints []dispatch.Hint) string {
	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		if len(h.Keys) == 0 {
			continue
		}
		parts = append(parts, r.theme.Key.Render(keyNames(h.Keys))+" "+r.theme.Meta.Render(h.Label))
	}
	return strings.Join(parts, r.theme.Meta.Render(" · "))
}

func keyNames(keys []keyboard.Key) string {
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = k.String()
	}
	return strings.Join(names, "/")
}
