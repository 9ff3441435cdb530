package commands

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/renato0307/hopkey/internal/logging"
)

// StartupError is returned when the shell could not be started at all
type StartupError struct {
	Program string
	Err     error
}

func (e *StartupError) Error() string {
	return fmt.Sprintf("failed to start %q: %v", e.Program, e.Err)
}

func (e *StartupError) Unwrap() error { return e.Err }

// RuntimeError is returned when a program ran and exited unsuccessfully
type RuntimeError struct {
	Program  string
	ExitCode int
	Details  string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%q exited with status %d: %s", e.Program, e.ExitCode, e.Details)
}

// UnknownError is returned when a program failed in a way that is neither a
// start-up failure nor an exit status, e.g. a timeout
type UnknownError struct {
	Program string
	Err     error
}

func (e *UnknownError) Error() string {
	return fmt.Sprintf("%q failed: %v", e.Program, e.Err)
}

func (e *UnknownError) Unwrap() error { return e.Err }

// ShellExecutor runs instructions through a shell via subprocess
type ShellExecutor struct {
	shell   string
	timeout time.Duration
}

// ExecuteOptions configures the shell executor
type ExecuteOptions struct {
	Shell   string        // Shell binary (default: /bin/sh)
	Timeout time.Duration // Synchronous step timeout (default: 30s)
}

// NewShellExecutor creates a new shell executor
func NewShellExecutor(opts ExecuteOptions) *ShellExecutor {
	shell := opts.Shell
	if shell == "" {
		shell = DefaultShell
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &ShellExecutor{shell: shell, timeout: timeout}
}

// RunToCompletion runs program and waits for it, returning its stdout
func (e *ShellExecutor) RunToCompletion(ctx context.Context, program string) (string, error) {
	timing := logging.Start("run to completion")
	defer logging.End(timing)

	cmd := exec.Command(e.shell, "-c", program)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	// Children of the shell may keep the output pipes open after a kill
	cmd.WaitDelay = waitDelay

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	if err := cmd.Start(); err != nil {
		return "", &StartupError{Program: program, Err: err}
	}

	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()

	select {
	case <-ctx.Done():
		_ = cmd.Process.Kill()
		<-done
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", &UnknownError{Program: program, Err: fmt.Errorf("timed out after %v", e.timeout)}
		}
		return "", &UnknownError{Program: program, Err: ctx.Err()}
	case err := <-done:
		if err == nil {
			return stdout.String(), nil
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			details := strings.TrimSpace(stderr.String())
			if details == "" {
				details = exitErr.String()
			}
			return "", &RuntimeError{Program: program, ExitCode: exitErr.ExitCode(), Details: details}
		}
		return "", &UnknownError{Program: program, Err: err}
	}
}

// RunInBackground starts program and returns without waiting for it. Only
// start-up failures are reported; the exit status is logged.
func (e *ShellExecutor) RunInBackground(ctx context.Context, program string) error {
	if err := ctx.Err(); err != nil {
		return &StartupError{Program: program, Err: err}
	}

	cmd := exec.Command(e.shell, "-c", program)
	if err := cmd.Start(); err != nil {
		return &StartupError{Program: program, Err: err}
	}

	logging.Debug("started background program", "program", program, "pid", cmd.Process.Pid)
	go func() {
		if err := cmd.Wait(); err != nil {
			logging.Warn("background program failed", "program", program, "error", err)
		}
	}()
	return nil
}

// CheckShell checks that the configured shell can be found
func (e *ShellExecutor) CheckShell() error {
	if _, err := exec.LookPath(e.shell); err != nil {
		return fmt.Errorf("shell %s not found: %w", e.shell, err)
	}
	return nil
}
