package testutil

import (
	"context"
	"sync"

	"github.com/renato0307/hopkey/internal/dispatch"
)

// Call is one program handed to a FakeExecutor
type Call struct {
	Program     string
	Synchronous bool
}

// Result is a scripted outcome for a program
type Result struct {
	Output string
	Err    error
}

// FakeExecutor records programs instead of running them. Scripted results
// are consumed per program in order; unscripted programs succeed with no
// output.
type FakeExecutor struct {
	mu      sync.Mutex
	calls   []Call
	results map[string][]Result
}

var _ dispatch.Executor = (*FakeExecutor)(nil)

func NewFakeExecutor() *FakeExecutor {
	return &FakeExecutor{results: make(map[string][]Result)}
}

// Script queues results for program
func (f *FakeExecutor) Script(program string, results ...Result) *FakeExecutor {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.results[program] = append(f.results[program], results...)
	return f
}

func (f *FakeExecutor) RunToCompletion(_ context.Context, program string) (string, error) {
	r := f.record(program, true)
	return r.Output, r.Err
}

func (f *FakeExecutor) RunInBackground(_ context.Context, program string) error {
	return f.record(program, false).Err
}

func (f *FakeExecutor) record(program string, sync bool) Result {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, Call{Program: program, Synchronous: sync})
	queue := f.results[program]
	if len(queue) == 0 {
		return Result{}
	}
	f.results[program] = queue[1:]
	return queue[0]
}

// Calls returns every recorded call in order
func (f *FakeExecutor) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// Programs returns the recorded programs in order
func (f *FakeExecutor) Programs() []string {
	calls := f.Calls()
	programs := make([]string, len(calls))
	for i, c := range calls {
		programs[i] = c.Program
	}
	return programs
}

// FakeClipboard records copied text
type FakeClipboard struct {
	Copied []string
	Err    error
}

var _ dispatch.Clipboard = (*FakeClipboard)(nil)

func (c *FakeClipboard) Copy(text string) error {
	if c.Err != nil {
		return c.Err
	}
	c.Copied = append(c.Copied, text)
	return nil
}
