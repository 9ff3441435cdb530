package dispatch

import "context"

// recovery is the user's decision after a failure
type recovery int

const (
	recoverRetry  recovery = iota // Run the failed step again
	recoverCancel                 // Skip the remaining steps, stay in the layer
	recoverAbort                  // Skip the remaining steps, deactivate
)

// handleFailure shows message until the user picks retry, cancel or abort
func (e *Engine) handleFailure(ctx context.Context, message string) (recovery, error) {
	model := ErrorModel{Message: message, Hints: e.errorHints()}
	for {
		e.view.Render(model)

		key, err := e.input.CaptureAny(ctx)
		if err != nil {
			return recoverAbort, err
		}

		switch {
		case e.keys.IsDeactivate(key):
			return recoverAbort, nil
		case e.keys.IsBack(key):
			return recoverCancel, nil
		case e.keys.IsRetry(key):
			return recoverRetry, nil
		case e.clipboard != nil && e.keys.IsCopy(key):
			if err := e.clipboard.Copy(message); err != nil {
				e.log.Warn("copy to clipboard failed", "error", err)
				model.Notice = "copy failed: " + err.Error()
			} else {
				model.Notice = "copied to clipboard"
			}
		}
	}
}

func (e *Engine) errorHints() []Hint {
	hints := []Hint{
		{Keys: e.keys.Retry, Label: "retry", Kind: HintRetry},
		{Keys: e.keys.Back, Label: "cancel", Kind: HintBack},
		{Keys: e.keys.Deactivate, Label: "abort", Kind: HintDeactivate},
	}
	if e.clipboard != nil && len(e.keys.Copy) > 0 {
		hints = append(hints, Hint{Keys: e.keys.Copy, Label: "copy", Kind: HintCopy})
	}
	return hints
}
