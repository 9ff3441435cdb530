package dispatch

import (
	"context"
	"fmt"

	"github.com/renato0307/hopkey/internal/commands"
	"github.com/renato0307/hopkey/internal/layers"
)

// execute collects the parameters of cmd, renders its steps and runs them in
// order. A failed step can be retried on its own; earlier steps never run
// twice.
func (e *Engine) execute(ctx context.Context, cmd *commands.Command, stack layers.Stack) (outcome, error) {
	params := cmd.Parameters()
	values := make([]commands.Value, 0, len(params))
	for _, p := range params {
		v, res, err := e.collect(ctx, cmd, p, stack)
		if err != nil {
			return finished, err
		}
		switch res {
		case inputCancel:
			return keepGoing, nil
		case inputExit:
			return finished, nil
		}
		values = append(values, v)
	}

	instructions, err := cmd.RenderInstructions(values)
	if err != nil {
		e.log.Error("rendering collected values failed", "command", cmd.Name(), "error", err)
		return finished, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	for i, inst := range instructions {
		for {
			err := e.runStep(ctx, inst)
			if err == nil {
				break
			}

			e.log.Warn("step failed", "command", cmd.Name(), "step", i, "error", err)
			msg := fmt.Sprintf("%s: step %d of %d failed: %v", cmd.Name(), i+1, len(instructions), err)
			rec, rerr := e.handleFailure(ctx, msg)
			if rerr != nil {
				return finished, rerr
			}
			switch rec {
			case recoverCancel:
				return keepGoing, nil
			case recoverAbort:
				return finished, nil
			}
			e.log.Info("retrying step", "command", cmd.Name(), "step", i)
		}
	}

	if cmd.IsFinal() {
		return finished, nil
	}
	return keepGoing, nil
}

func (e *Engine) runStep(ctx context.Context, inst commands.Instruction) error {
	if !inst.Synchronous {
		return e.exec.RunInBackground(ctx, inst.Program)
	}

	out, err := e.exec.RunToCompletion(ctx, inst.Program)
	if err != nil {
		return err
	}
	e.log.Debug("step finished", "program", inst.Program, "output_bytes", len(out))
	return nil
}
