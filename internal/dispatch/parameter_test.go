package dispatch_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/hopkey/internal/commands"
	"github.com/renato0307/hopkey/internal/dispatch"
	"github.com/renato0307/hopkey/internal/keyboard"
	"github.com/renato0307/hopkey/internal/layers"
	"github.com/renato0307/hopkey/internal/testutil"
)

func singleCommandRoot(t *testing.T, key rune, cmd *commands.Command) *layers.Layer {
	t.Helper()
	root := layers.New("root")
	require.NoError(t, root.AddCommand(keyboard.Char(key), cmd))
	return root
}

func optionLabels(hints []dispatch.Hint) []string {
	labels := make([]string, len(hints))
	for i, h := range hints {
		labels[i] = h.Label
	}
	return labels
}

func TestCharacterParameter(t *testing.T) {
	cmd := mustCommand(t, "signal", []string{"kill -{0} 1234"},
		[]commands.Parameter{commands.CharacterParam("signal")}, commands.Synchronous(), commands.Final(true))

	var h harness
	e := newEngine(singleCommandRoot(t, 'k', cmd), &h, "space", "k", "ctrl+x", "f1", "9")
	assert.ErrorIs(t, e.Run(context.Background()), testutil.ErrScriptExhausted)

	assert.Equal(t, []string{"kill -9 1234"}, h.exec.Programs())
	prompts := testutil.OfType[dispatch.ParameterModel](h.view)
	require.Len(t, prompts, 3)
	assert.Equal(t, "signal", prompts[0].Command)
	assert.Equal(t, commands.KindCharacter, prompts[0].Kind)
}

func TestCharacterParameterShiftedRune(t *testing.T) {
	cmd := mustCommand(t, "mark", []string{"mark {0}"}, []commands.Parameter{commands.CharacterParam("register")})

	var h harness
	e := newEngine(singleCommandRoot(t, 'm', cmd), &h, "space", "m", "shift+A")
	assert.ErrorIs(t, e.Run(context.Background()), testutil.ErrScriptExhausted)
	assert.Equal(t, []string{"mark A"}, h.exec.Programs())
}

func TestCharacterParameterCancelAndExit(t *testing.T) {
	cmd := mustCommand(t, "signal", []string{"kill -{0} 1"}, []commands.Parameter{commands.CharacterParam("signal")})
	ctx := context.Background()

	var h harness
	e := newEngine(singleCommandRoot(t, 'k', cmd), &h, "space", "k", "backspace", "k", "esc")

	s, err := e.Step(ctx, dispatch.Inactive{})
	require.NoError(t, err)
	s, err = e.Step(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, 1, depth(t, s), "back cancels the command and stays in the layer")

	s, err = e.Step(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, dispatch.Inactive{}, s, "deactivate exits")
	assert.Empty(t, h.exec.Calls())
}

func TestTextParameter(t *testing.T) {
	cmd := mustCommand(t, "commit", []string{`git commit -m "{0}"`},
		[]commands.Parameter{commands.TextParam("message")}, commands.Synchronous(), commands.Final(true))

	var h harness
	e := newEngine(singleCommandRoot(t, 'c', cmd), &h,
		"space", "c",
		"f", "i", "x", "space", "x", "backspace", "b", "u", "g", "alt+q", "enter",
	)
	assert.ErrorIs(t, e.Run(context.Background()), testutil.ErrScriptExhausted)

	assert.Equal(t, []string{`git commit -m "fix bug"`}, h.exec.Programs())
	prompts := testutil.OfType[dispatch.ParameterModel](h.view)
	assert.Equal(t, "", prompts[0].Input)
	assert.Equal(t, "fix x", prompts[5].Input)
	assert.Equal(t, "fix ", prompts[6].Input)
	assert.Equal(t, "fix bug", prompts[len(prompts)-1].Input)
}

func TestTextParameterBackOnlyCancelsEmptyBuffer(t *testing.T) {
	cmd := mustCommand(t, "commit", []string{`git commit -m "{0}"`}, []commands.Parameter{commands.TextParam("message")})
	ctx := context.Background()

	var h harness
	e := newEngine(singleCommandRoot(t, 'c', cmd), &h, "space", "c", "a", "backspace", "backspace")

	s, err := e.Step(ctx, dispatch.Inactive{})
	require.NoError(t, err)
	s, err = e.Step(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, 1, depth(t, s))
	assert.Empty(t, h.exec.Calls())
	assert.Equal(t, 0, h.input.Remaining())
}

func TestTextParameterWithCustomBackKey(t *testing.T) {
	cmd := mustCommand(t, "commit", []string{`git commit -m "{0}"`}, []commands.Parameter{commands.TextParam("message")})
	keys := keyboard.Default()
	keys.Back = []keyboard.Key{keyboard.MustParse("ctrl+h")}

	input := testutil.NewScriptedInput(testutil.Keys("space", "c", "a", "ctrl+h", "backspace", "ctrl+h")...)
	exec := testutil.NewFakeExecutor()
	e := dispatch.New(singleCommandRoot(t, 'c', cmd), keys, input, &testutil.RecordingView{}, exec)
	ctx := context.Background()

	s, err := e.Step(ctx, dispatch.Inactive{})
	require.NoError(t, err)
	s, err = e.Step(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, 1, depth(t, s), "ctrl+h is swallowed while the buffer holds text")
	assert.Equal(t, 0, input.Remaining())
	assert.Empty(t, exec.Calls())
}

func TestMultipleParameters(t *testing.T) {
	cmd := mustCommand(t, "push", []string{"git push {1} {0}"},
		[]commands.Parameter{commands.TextParam("branch"), commands.ChooseParam("remote", "origin", "upstream")})

	var h harness
	e := newEngine(singleCommandRoot(t, 'p', cmd), &h, "space", "p", "m", "a", "i", "n", "enter", "u")
	assert.ErrorIs(t, e.Run(context.Background()), testutil.ErrScriptExhausted)
	assert.Equal(t, []string{"git push upstream main"}, h.exec.Programs())
}

func TestChooseParameter(t *testing.T) {
	cmd := mustCommand(t, "fetch", []string{"git fetch {0}"},
		[]commands.Parameter{commands.ChooseParam("remote", "origin", "upstream")}, commands.Final(true))

	var h harness
	e := newEngine(singleCommandRoot(t, 'f', cmd), &h, "space", "f", "z", "alt+u")
	assert.ErrorIs(t, e.Run(context.Background()), testutil.ErrScriptExhausted)

	assert.Equal(t, []string{"git fetch upstream"}, h.exec.Programs(), "modified key falls back to the plain shortcut")
	prompt := testutil.OfType[dispatch.ParameterModel](h.view)[0]
	assert.Equal(t, []string{"origin", "upstream"}, optionLabels(prompt.Options))
	assert.Equal(t, []keyboard.Key{keyboard.Char('o')}, prompt.Options[0].Keys)
	assert.Equal(t, dispatch.HintOption, prompt.Options[0].Kind)
}

func TestChooseParameterSkipsGlobalKeys(t *testing.T) {
	cmd := mustCommand(t, "log", []string{"run --{0}"},
		[]commands.Parameter{commands.ChooseParam("level", "quiet", "verbose")}, commands.Final(true))
	keys := keyboard.Default()
	keys.Deactivate = []keyboard.Key{keyboard.Char('q')}

	input := testutil.NewScriptedInput(testutil.Keys("space", "l", "u")...)
	view := &testutil.RecordingView{}
	exec := testutil.NewFakeExecutor()
	e := dispatch.New(singleCommandRoot(t, 'l', cmd), keys, input, view, exec)
	assert.ErrorIs(t, e.Run(context.Background()), testutil.ErrScriptExhausted)

	assert.Equal(t, []string{"run --quiet"}, exec.Programs())
	prompt := testutil.OfType[dispatch.ParameterModel](view)[0]
	assert.Equal(t, []keyboard.Key{keyboard.Char('u')}, prompt.Options[0].Keys)
	assert.Equal(t, []keyboard.Key{keyboard.Char('v')}, prompt.Options[1].Keys)
}

func TestChooseParameterGeneratedOptions(t *testing.T) {
	param := commands.ChooseParam("branch", "main").WithGenerator("git branch --format=%(refname:short)", "")
	cmd := mustCommand(t, "checkout", []string{"git checkout {0}"}, []commands.Parameter{param}, commands.Final(true))

	var h harness
	h.exec = testutil.NewFakeExecutor().Script("git branch --format=%(refname:short)",
		testutil.Result{Output: "main\nfeature\n\n"})
	e := newEngine(singleCommandRoot(t, 'b', cmd), &h, "space", "b", "f")
	assert.ErrorIs(t, e.Run(context.Background()), testutil.ErrScriptExhausted)

	assert.Equal(t, []testutil.Call{
		{Program: "git branch --format=%(refname:short)", Synchronous: true},
		{Program: "git checkout feature", Synchronous: false},
	}, h.exec.Calls())
	prompt := testutil.OfType[dispatch.ParameterModel](h.view)[0]
	assert.Equal(t, []string{"main", "feature"}, optionLabels(prompt.Options))
}

func TestChooseParameterGeneratorRetry(t *testing.T) {
	gen := "git branch"
	param := commands.ChooseParam("branch").WithGenerator(gen, ",")
	cmd := mustCommand(t, "checkout", []string{"git checkout {0}"}, []commands.Parameter{param}, commands.Final(true))

	var h harness
	h.exec = testutil.NewFakeExecutor().Script(gen,
		testutil.Result{Err: errors.New("not a git repository")},
		testutil.Result{Output: "dev,prod"})
	e := newEngine(singleCommandRoot(t, 'b', cmd), &h, "space", "b", "enter", "p")
	assert.ErrorIs(t, e.Run(context.Background()), testutil.ErrScriptExhausted)

	assert.Equal(t, []string{gen, gen, "git checkout prod"}, h.exec.Programs())
	failures := testutil.OfType[dispatch.ErrorModel](h.view)
	require.Len(t, failures, 1)
	assert.Contains(t, failures[0].Message, "not a git repository")
}

func TestChooseParameterGeneratorCancel(t *testing.T) {
	gen := "git branch"
	param := commands.ChooseParam("branch").WithGenerator(gen, "")
	cmd := mustCommand(t, "checkout", []string{"git checkout {0}"}, []commands.Parameter{param})
	ctx := context.Background()

	var h harness
	h.exec = testutil.NewFakeExecutor().Script(gen,
		testutil.Result{Err: errors.New("boom")},
		testutil.Result{Err: errors.New("boom")})
	e := newEngine(singleCommandRoot(t, 'b', cmd), &h, "space", "b", "backspace", "b", "esc")

	s, err := e.Step(ctx, dispatch.Inactive{})
	require.NoError(t, err)
	s, err = e.Step(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, 1, depth(t, s))

	s, err = e.Step(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, dispatch.Inactive{}, s)
	assert.Equal(t, []string{gen, gen}, h.exec.Programs())
}
