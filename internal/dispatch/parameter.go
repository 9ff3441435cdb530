package dispatch

import (
	"context"
	"fmt"

	"github.com/renato0307/hopkey/internal/commands"
	"github.com/renato0307/hopkey/internal/keyboard"
	"github.com/renato0307/hopkey/internal/layers"
	"github.com/renato0307/hopkey/internal/shortcuts"
)

// inputResult is how parameter input ended
type inputResult int

const (
	inputValue  inputResult = iota // A value was collected
	inputCancel                    // Back: abandon the command, stay in the layer
	inputExit                      // Deactivate: abandon the command and close
)

func (e *Engine) collect(ctx context.Context, cmd *commands.Command, p commands.Parameter, stack layers.Stack) (commands.Value, inputResult, error) {
	model := ParameterModel{
		Stack:     stack.Names(),
		Command:   cmd.Name(),
		Parameter: p.Name,
		Kind:      p.Kind,
		Hints: []Hint{
			{Keys: e.keys.Back, Label: "cancel", Kind: HintBack},
			{Keys: e.keys.Deactivate, Label: "close", Kind: HintDeactivate},
		},
	}

	switch p.Kind {
	case commands.KindCharacter:
		return e.collectCharacter(ctx, p, model)
	case commands.KindText:
		return e.collectText(ctx, p, model)
	case commands.KindChoose:
		return e.collectChoice(ctx, p, model)
	default:
		return commands.Value{}, inputExit, fmt.Errorf("%w: unknown parameter kind %v", ErrInternal, p.Kind)
	}
}

// collectCharacter takes the first printable key press as the value
func (e *Engine) collectCharacter(ctx context.Context, p commands.Parameter, model ParameterModel) (commands.Value, inputResult, error) {
	for {
		e.view.Render(model)

		key, err := e.input.CaptureAny(ctx)
		if err != nil {
			return commands.Value{}, inputExit, err
		}

		switch {
		case e.keys.IsBack(key):
			return commands.Value{}, inputCancel, nil
		case e.keys.IsDeactivate(key):
			return commands.Value{}, inputExit, nil
		}

		r, ok := key.Printable()
		if !ok {
			continue
		}
		v, err := p.Assign(string(r))
		if err != nil {
			return commands.Value{}, inputExit, fmt.Errorf("%w: %w", ErrInternal, err)
		}
		return v, inputValue, nil
	}
}

// collectText edits a buffer until Return commits it. Back only cancels an
// empty buffer so that a user fixing a typo does not lose the command.
func (e *Engine) collectText(ctx context.Context, p commands.Parameter, model ParameterModel) (commands.Value, inputResult, error) {
	var buf []rune
	for {
		model.Input = string(buf)
		e.view.Render(model)

		key, err := e.input.CaptureAny(ctx)
		if err != nil {
			return commands.Value{}, inputExit, err
		}

		switch {
		case e.keys.IsDeactivate(key):
			return commands.Value{}, inputExit, nil
		case key == keyboard.Named(keyboard.Return):
			v, err := p.Assign(string(buf))
			if err != nil {
				return commands.Value{}, inputExit, fmt.Errorf("%w: %w", ErrInternal, err)
			}
			return v, inputValue, nil
		case key == keyboard.Named(keyboard.BackSpace) && len(buf) > 0:
			buf = buf[:len(buf)-1]
		case e.keys.IsBack(key):
			if len(buf) == 0 {
				return commands.Value{}, inputCancel, nil
			}
		default:
			if r, ok := key.Printable(); ok {
				buf = append(buf, r)
			}
		}
	}
}

// collectChoice offers the configured and generated options under mnemonic
// shortcuts and matches key presses fuzzily
func (e *Engine) collectChoice(ctx context.Context, p commands.Parameter, model ParameterModel) (commands.Value, inputResult, error) {
	var generated []string
	if p.Generator != nil {
		var (
			res inputResult
			err error
		)
		generated, res, err = e.generateOptions(ctx, p)
		if err != nil || res != inputValue {
			return commands.Value{}, res, err
		}
	}

	options := commands.MergeOptions(p.Options, generated)
	items := make([]shortcuts.Named[string], len(options))
	for i, opt := range options {
		items[i] = shortcuts.Named[string]{Name: opt, Value: opt}
	}
	choices := shortcuts.NewMap[string]()
	if dropped := shortcuts.AssignInto(choices, items, e.keys.Reserved()...); len(dropped) > 0 {
		e.log.Warn("options without shortcut", "parameter", p.Name, "count", len(dropped))
	}
	model.Options = optionHints(options, choices)

	for {
		e.view.Render(model)

		key, err := e.input.CaptureAny(ctx)
		if err != nil {
			return commands.Value{}, inputExit, err
		}

		switch {
		case e.keys.IsBack(key):
			return commands.Value{}, inputCancel, nil
		case e.keys.IsDeactivate(key):
			return commands.Value{}, inputExit, nil
		}

		opt, ok := choices.Fuzzy(key)
		if !ok {
			continue
		}
		v, err := p.AssignChoice(opt, generated)
		if err != nil {
			return commands.Value{}, inputExit, fmt.Errorf("%w: %w", ErrInternal, err)
		}
		return v, inputValue, nil
	}
}

// generateOptions runs the generator of p. Failures go through the error
// screen like any other runtime failure.
func (e *Engine) generateOptions(ctx context.Context, p commands.Parameter) ([]string, inputResult, error) {
	for {
		out, err := e.exec.RunToCompletion(ctx, p.Generator.Command)
		if err == nil {
			return p.Generator.Options(out), inputValue, nil
		}

		e.log.Warn("option generator failed", "parameter", p.Name, "error", err)
		msg := fmt.Sprintf("generating options for %s failed: %v", p.Name, err)
		rec, rerr := e.handleFailure(ctx, msg)
		if rerr != nil {
			return nil, inputExit, rerr
		}
		switch rec {
		case recoverCancel:
			return nil, inputCancel, nil
		case recoverAbort:
			return nil, inputExit, nil
		}
	}
}

// optionHints lists options in display order with their assigned keys
func optionHints(options []string, choices *shortcuts.Map[string]) []Hint {
	keyOf := make(map[string]keyboard.Key, choices.Len())
	for _, entry := range choices.Entries() {
		keyOf[entry.Value] = entry.Key
	}

	hints := make([]Hint, 0, len(options))
	for _, opt := range options {
		k, ok := keyOf[opt]
		if !ok {
			continue
		}
		hints = append(hints, Hint{Keys: []keyboard.Key{k}, Label: opt, Kind: HintOption})
	}
	return hints
}
