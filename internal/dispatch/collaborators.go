package dispatch

import (
	"context"

	"github.com/renato0307/hopkey/internal/keyboard"
)

// Input blocks until the user presses a key
type Input interface {
	// CaptureOne blocks until one of keys is pressed and returns it
	CaptureOne(ctx context.Context, keys []keyboard.Key) (keyboard.Key, error)

	// CaptureAny blocks until any key is pressed and returns it with its
	// modifiers
	CaptureAny(ctx context.Context) (keyboard.Key, error)
}

// View draws display models. Render must not block on user input.
type View interface {
	Render(model Model)
}

// Executor runs rendered instructions
type Executor interface {
	// RunToCompletion runs program and waits for it, returning its stdout
	RunToCompletion(ctx context.Context, program string) (string, error)

	// RunInBackground starts program without waiting for it
	RunInBackground(ctx context.Context, program string) error
}

// Clipboard receives failure details on request
type Clipboard interface {
	Copy(text string) error
}
