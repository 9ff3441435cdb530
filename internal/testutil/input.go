// Package testutil provides scripted collaborators for driving the dispatch
// engine in tests without a terminal or a shell.
package testutil

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/renato0307/hopkey/internal/dispatch"
	"github.com/renato0307/hopkey/internal/keyboard"
)

// ErrScriptExhausted is returned once every scripted key was consumed. Tests
// use it as the normal end of an engine run.
var ErrScriptExhausted = errors.New("input script exhausted")

// ScriptedInput replays a fixed sequence of key presses
type ScriptedInput struct {
	mu   sync.Mutex
	keys []keyboard.Key
	pos  int
}

var _ dispatch.Input = (*ScriptedInput)(nil)

// NewScriptedInput returns an input that replays keys in order
func NewScriptedInput(keys ...keyboard.Key) *ScriptedInput {
	return &ScriptedInput{keys: keys}
}

// Keys parses each spec with keyboard.MustParse
func Keys(specs ...string) []keyboard.Key {
	keys := make([]keyboard.Key, len(specs))
	for i, s := range specs {
		keys[i] = keyboard.MustParse(s)
	}
	return keys
}

// CaptureOne skips scripted keys until one of keys comes up
func (s *ScriptedInput) CaptureOne(ctx context.Context, keys []keyboard.Key) (keyboard.Key, error) {
	for {
		k, err := s.CaptureAny(ctx)
		if err != nil {
			return keyboard.Key{}, err
		}
		if slices.Contains(keys, k) {
			return k, nil
		}
	}
}

// CaptureAny returns the next scripted key
func (s *ScriptedInput) CaptureAny(ctx context.Context) (keyboard.Key, error) {
	if err := ctx.Err(); err != nil {
		return keyboard.Key{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pos >= len(s.keys) {
		return keyboard.Key{}, ErrScriptExhausted
	}
	k := s.keys[s.pos]
	s.pos++
	return k, nil
}

// Remaining returns how many scripted keys were not consumed
func (s *ScriptedInput) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.keys) - s.pos
}
