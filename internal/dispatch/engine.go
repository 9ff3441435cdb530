// Package dispatch implements the mode state machine of hopkey: waiting for
// activation, navigating layers, collecting parameters, executing commands
// and recovering from failures.
//
// The engine is single-threaded. It only does work in response to a key
// press delivered by the Input collaborator, and every transition completes
// before the next key is awaited.
package dispatch

import (
	"context"
	"errors"

	"github.com/renato0307/hopkey/internal/keyboard"
	"github.com/renato0307/hopkey/internal/layers"
	"github.com/renato0307/hopkey/internal/logging"
)

// ErrInternal marks a broken internal invariant, such as a command whose
// collected values fail to render. Run stops with it instead of panicking.
var ErrInternal = errors.New("internal invariant violated")

// State is a top-level mode of the engine: Inactive or Navigating
type State interface {
	isState()
}

// Inactive waits for an activation key
type Inactive struct{}

// Navigating shows the top layer of Stack and waits for a key
type Navigating struct {
	Stack layers.Stack
}

func (Inactive) isState() {}
func (Navigating) isState() {}

// Engine drives the dispatcher
type Engine struct {
	root      *layers.Layer
	keys      *keyboard.Bindings
	input     Input
	view      View
	exec      Executor
	clipboard Clipboard
	log       *logging.Logger
}

// Option configures an Engine
type Option func(*Engine)

// WithClipboard enables copying failure details from the error screen
func WithClipboard(c Clipboard) Option {
	return func(e *Engine) { e.clipboard = c }
}

// WithLogger replaces the default logger
func WithLogger(l *logging.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// New creates an engine over the layer tree rooted at root
func New(root *layers.Layer, keys *keyboard.Bindings, input Input, view View, exec Executor, opts ...Option) *Engine {
	e := &Engine{
		root:  root,
		keys:  keys,
		input: input,
		view:  view,
		exec:  exec,
		log:   logging.Get().With("component", "dispatch"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run loops over the states starting from Inactive. It only returns when the
// Input fails (for example because ctx is done) or an internal invariant is
// broken.
func (e *Engine) Run(ctx context.Context) error {
	var state State = Inactive{}
	for {
		next, err := e.Step(ctx, state)
		if err != nil {
			e.view.Render(NoneModel{})
			return err
		}
		state = next
	}
}

// Step performs one transition from state and returns the next state
func (e *Engine) Step(ctx context.Context, state State) (State, error) {
	switch s := state.(type) {
	case Inactive:
		return e.activate(ctx)
	case Navigating:
		if s.Stack.Depth() == 0 {
			return nil, errors.Join(ErrInternal, errors.New("navigating without a layer"))
		}
		return e.navigate(ctx, s)
	default:
		return nil, errors.Join(ErrInternal, errors.New("unknown state"))
	}
}

func (e *Engine) activate(ctx context.Context) (State, error) {
	e.view.Render(NoneModel{})

	key, err := e.input.CaptureOne(ctx, e.keys.Activation)
	if err != nil {
		return nil, err
	}

	e.log.Debug("activated", "key", key.String())
	return Navigating{Stack: layers.NewStack(e.root)}, nil
}
