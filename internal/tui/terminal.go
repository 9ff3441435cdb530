// Package tui connects the dispatch engine to a terminal through a Bubble
// Tea program. The program owns the terminal; the engine runs in its own
// goroutine and talks to the program through Terminal, which implements
// both dispatch.Input and dispatch.View.
package tui

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/renato0307/hopkey/internal/dispatch"
	"github.com/renato0307/hopkey/internal/keyboard"
	"github.com/renato0307/hopkey/internal/logging"
	"github.com/renato0307/hopkey/internal/ui"
)

// keyBuffer is how many key presses can queue up while the engine is busy
// running a step
const keyBuffer = 64

// renderMsg asks the program to draw a new display model
type renderMsg struct {
	model dispatch.Model
}

// stoppedMsg reports that the engine returned
type stoppedMsg struct {
	err error
}

// quitKey stops the program regardless of the dispatcher's state
var quitKey = key.NewBinding(
	key.WithKeys("ctrl+c"),
	key.WithHelp("ctrl+c", "quit"),
)

// Runner is the loop driven by Terminal.Run, normally a *dispatch.Engine
type Runner interface {
	Run(ctx context.Context) error
}

// Terminal implements dispatch.Input and dispatch.View
type Terminal struct {
	keys    chan keyboard.Key
	program *tea.Program
}

var (
	_ dispatch.Input = (*Terminal)(nil)
	_ dispatch.View  = (*Terminal)(nil)
)

// New creates a terminal front-end. opts are passed to tea.NewProgram.
func New(theme *ui.Theme, bindings *keyboard.Bindings, opts ...tea.ProgramOption) *Terminal {
	keys := make(chan keyboard.Key, keyBuffer)
	m := model{
		keys:     keys,
		renderer: renderer{theme: theme, bindings: bindings},
		current:  dispatch.NoneModel{},
	}
	return &Terminal{keys: keys, program: tea.NewProgram(m, opts...)}
}

// Run starts the program and runs r until either side stops. A quit key
// press cancels r's context and is not an error.
func (t *Terminal) Run(ctx context.Context, r Runner) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		err := r.Run(ctx)
		t.program.Send(stoppedMsg{err: err})
	}()

	final, err := t.program.Run()
	cancel()
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}

	if m, ok := final.(model); ok && m.err != nil && !errors.Is(m.err, context.Canceled) {
		return m.err
	}
	return nil
}

// Render sends model to the program. It returns once the program has
// accepted the message or has stopped.
func (t *Terminal) Render(m dispatch.Model) {
	t.program.Send(renderMsg{model: m})
}

// CaptureAny waits for the next key press
func (t *Terminal) CaptureAny(ctx context.Context) (keyboard.Key, error) {
	select {
	case k := <-t.keys:
		return k, nil
	case <-ctx.Done():
		return keyboard.Key{}, ctx.Err()
	}
}

// CaptureOne waits for a press of one of keys, discarding others
func (t *Terminal) CaptureOne(ctx context.Context, keys []keyboard.Key) (keyboard.Key, error) {
	for {
		k, err := t.CaptureAny(ctx)
		if err != nil {
			return k, err
		}
		if slices.Contains(keys, k) {
			return k, nil
		}
	}
}

// model is the Bubble Tea side of Terminal
type model struct {
	keys     chan<- keyboard.Key
	renderer renderer
	current  dispatch.Model
	err      error
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.renderer.width = msg.Width
	case tea.KeyMsg:
		if key.Matches(msg, quitKey) {
			return m, tea.Quit
		}
		for _, k := range convertKey(msg) {
			select {
			case m.keys <- k:
			default:
				logging.Warn("key dropped, dispatcher is busy", "key", k.String())
			}
		}
	case renderMsg:
		m.current = msg.model
	case stoppedMsg:
		m.err = msg.err
		return m, tea.Quit
	}
	return m, nil
}

func (m model) View() string {
	return m.renderer.render(m.current)
}
