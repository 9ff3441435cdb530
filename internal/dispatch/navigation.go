package dispatch

import (
	"context"

	"github.com/renato0307/hopkey/internal/keyboard"
	"github.com/renato0307/hopkey/internal/layers"
)

// outcome is the result of running a command from a layer
type outcome int

const (
	keepGoing outcome = iota // Stay in the layer for rapid re-triggering
	finished                 // End the interaction
)

func (e *Engine) navigate(ctx context.Context, s Navigating) (State, error) {
	e.view.Render(e.navigationModel(s.Stack))

	key, err := e.input.CaptureAny(ctx)
	if err != nil {
		return nil, err
	}

	if e.keys.IsDeactivate(key) {
		return Inactive{}, nil
	}
	if e.keys.IsBack(key) {
		if popped, ok := s.Stack.Pop(); ok {
			return Navigating{Stack: popped}, nil
		}
	}

	action, ok := s.Stack.Top().Resolve(key)
	if !ok {
		e.log.Debug("unbound key", "key", key.String(), "layer", s.Stack.Top().Name())
		return s, nil
	}

	switch a := action.(type) {
	case layers.Branch:
		return Navigating{Stack: s.Stack.Push(a.Layer)}, nil
	case layers.Execute:
		out, err := e.execute(ctx, a.Command, s.Stack)
		if err != nil {
			return nil, err
		}
		if out == finished {
			return Inactive{}, nil
		}
	}
	return s, nil
}

func (e *Engine) navigationModel(stack layers.Stack) NavigationModel {
	actions := stack.Top().Actions()
	hints := make([]Hint, 0, len(actions)+2)
	for _, a := range actions {
		kind := HintCommand
		if _, ok := a.Value.(layers.Branch); ok {
			kind = HintLayer
		}
		hints = append(hints, Hint{Keys: []keyboard.Key{a.Key}, Label: a.Value.Label(), Kind: kind})
	}
	if stack.Depth() > 1 {
		hints = append(hints, Hint{Keys: e.keys.Back, Label: "back", Kind: HintBack})
	}
	hints = append(hints, Hint{Keys: e.keys.Deactivate, Label: "close", Kind: HintDeactivate})

	return NavigationModel{Stack: stack.Names(), Hints: hints}
}
