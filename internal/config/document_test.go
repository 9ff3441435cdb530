package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/hopkey/internal/commands"
	"github.com/renato0307/hopkey/internal/keyboard"
	"github.com/renato0307/hopkey/internal/layers"
)

const gitDocument = `
keys:
  activation: ["ctrl+space", "<A-g>"]
  copy: []
root:
  layers:
    - name: git
      key: g
      commands:
        - name: status
          steps: ["git status"]
          final: false
          sync: true
        - name: commit
          description: Commit staged changes
          steps:
            - run: git add -A
              sync: true
            - git commit -m "{0}"
          parameters:
            - name: message
              type: text
        - name: checkout
          key: o
          steps: ["git checkout {0}"]
          parameters:
            - name: branch
              type: choose
              options: [main]
              generate:
                command: git branch --format='%(refname:short)'
  commands:
    - name: date
      steps: ["date"]
`

func commandAt(t *testing.T, l *layers.Layer, key string) *commands.Command {
	t.Helper()
	a, ok := l.Resolve(keyboard.MustParse(key))
	require.True(t, ok, "nothing bound to %q in %s", key, l.Name())
	exec, ok := a.(layers.Execute)
	require.True(t, ok, "%q in %s is not a command", key, l.Name())
	return exec.Command
}

func TestParse(t *testing.T) {
	doc, err := Parse([]byte(gitDocument))
	require.NoError(t, err)

	assert.Equal(t, []keyboard.Key{keyboard.MustParse("ctrl+space"), keyboard.MustParse("alt+g")}, doc.Bindings.Activation)
	assert.Empty(t, doc.Bindings.Copy)
	assert.NotNil(t, doc.Bindings.Copy)
	assert.Equal(t, keyboard.Default().Back, doc.Bindings.Back)

	root := doc.Root
	assert.Equal(t, "root", root.Name())
	assert.Equal(t, "date", commandAt(t, root, "d").Name())

	a, ok := root.Resolve(keyboard.Char('g'))
	require.True(t, ok)
	git := a.(layers.Branch).Layer
	assert.Equal(t, "git", git.Name())

	status := commandAt(t, git, "s")
	assert.False(t, status.IsFinal())
	assert.True(t, status.Steps()[0].Synchronous())

	commit := commandAt(t, git, "c")
	assert.True(t, commit.IsFinal(), "final defaults to true")
	assert.Equal(t, "Commit staged changes", commit.Description())
	require.Len(t, commit.Steps(), 2)
	assert.True(t, commit.Steps()[0].Synchronous())
	assert.False(t, commit.Steps()[1].Synchronous())
	assert.Equal(t, commands.KindText, commit.Parameters()[0].Kind)

	checkout := commandAt(t, git, "o")
	p := checkout.Parameters()[0]
	assert.Equal(t, commands.KindChoose, p.Kind)
	assert.Equal(t, []string{"main"}, p.Options)
	require.NotNil(t, p.Generator)
	assert.Equal(t, "git branch --format='%(refname:short)'", p.Generator.Command)
}

func TestParseMnemonicsAfterExplicitKeys(t *testing.T) {
	doc, err := Parse([]byte(`
root:
  commands:
    - {name: build, steps: [make]}
    - {name: bench, steps: [make bench]}
    - {name: test, key: b, steps: [make test]}
`))
	require.NoError(t, err)

	assert.Equal(t, "test", commandAt(t, doc.Root, "b").Name())
	assert.Equal(t, "build", commandAt(t, doc.Root, "u").Name())
	assert.Equal(t, "bench", commandAt(t, doc.Root, "e").Name())
}

func TestParseKeepsGlobalKeysFree(t *testing.T) {
	doc, err := Parse([]byte(`
keys:
  back: [b]
  deactivate: [q]
root:
  layers:
    - name: tools
      commands:
        - {name: bench, steps: [make bench]}
  commands:
    - {name: quit app, steps: [pkill app]}
`))
	require.NoError(t, err)

	_, ok := doc.Root.Resolve(keyboard.Char('q'))
	assert.False(t, ok, "the deactivate key is never a shortcut")
	assert.Equal(t, "quit app", commandAt(t, doc.Root, "u").Name())

	a, ok := doc.Root.Resolve(keyboard.Char('t'))
	require.True(t, ok)
	tools := a.(layers.Branch).Layer
	_, ok = tools.Resolve(keyboard.Char('b'))
	assert.False(t, ok, "the back key is never a shortcut")
	assert.Equal(t, "bench", commandAt(t, tools, "e").Name())
}

func TestParseRejectsReservedExplicitKey(t *testing.T) {
	_, err := Parse([]byte(`
keys:
  deactivate: [q]
root:
  layers:
    - name: git
      key: g
      commands:
        - {name: status, key: backspace, steps: [git status]}
  commands:
    - {name: quit app, key: q, steps: [pkill app]}
`))
	require.Error(t, err)
	assert.ErrorIs(t, err, layers.ErrReservedKey)
	assert.ErrorContains(t, err, `root/git/status: key is reserved: "backspace"`)
	assert.ErrorContains(t, err, `root/quit app: key is reserved: "q"`)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name     string
		document string
		want     []string
	}{
		{
			name:     "invalid yaml",
			document: "root: [",
			want:     []string{"invalid layer document"},
		},
		{
			name:     "unknown field",
			document: "root:\n  comands: []\n",
			want:     []string{"invalid layer document", "comands"},
		},
		{
			name: "unknown key with suggestion",
			document: `
root:
  commands:
    - {name: top, key: "ctrl+bckspace", steps: [top]}
`,
			want: []string{"root/top", "unknown key", `did you mean "backspace"?`},
		},
		{
			name: "duplicate key",
			document: `
root:
  commands:
    - {name: one, key: x, steps: ["true"]}
    - {name: two, key: x, steps: ["true"]}
`,
			want: []string{"root/two", `key "x" is already bound to "one"`},
		},
		{
			name: "placeholders and parameters disagree",
			document: `
root:
  commands:
    - name: copy
      steps: ["cp {0} {2}"]
      parameters:
        - {name: src, type: text}
        - {name: unused, type: text}
`,
			want: []string{"root/copy", "missing parameter {2}", "parameter {1} is declared"},
		},
		{
			name: "bad parameter type",
			document: `
root:
  commands:
    - name: pick
      steps: ["echo {0}"]
      parameters:
        - {name: what, type: chose, options: [a]}
`,
			want: []string{"root/pick/parameters[0]", `did you mean "choose"?`},
		},
		{
			name: "choose without options",
			document: `
root:
  commands:
    - name: pick
      steps: ["echo {0}"]
      parameters:
        - {name: what, type: choose}
`,
			want: []string{"needs options or a generator"},
		},
		{
			name: "options on text parameter",
			document: `
root:
  commands:
    - name: say
      steps: ["echo {0}"]
      parameters:
        - {name: what, type: text, options: [a]}
`,
			want: []string{"cannot have options"},
		},
		{
			name: "bad placeholder",
			document: `
root:
  commands:
    - {name: bad, steps: ["echo {x}"]}
`,
			want: []string{"root/bad/steps[0]", "{x}"},
		},
		{
			name: "missing names and steps",
			document: `
root:
  layers:
    - key: a
  commands:
    - steps: [ls]
    - name: empty
`,
			want: []string{"root/layers[0]: layer name is required", "root/commands[0]: command name is required", "root/empty"},
		},
		{
			name: "bad step shape",
			document: `
root:
  commands:
    - name: s
      steps: [{exec: ls}]
`,
			want: []string{"step must be a string or an object"},
		},
		{
			name:     "empty activation",
			document: "keys:\n  activation: []\nroot: {}\n",
			want:     []string{"keys.activation: at least one key is required"},
		},
		{
			name:     "root with key",
			document: "root:\n  key: r\n",
			want:     []string{"root layer cannot have a key"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.document))
			require.Error(t, err)
			for _, want := range tt.want {
				assert.Contains(t, err.Error(), want)
			}
		})
	}
}

func TestParseReportsEveryProblem(t *testing.T) {
	_, err := Parse([]byte(`
keys:
  retry: [nope]
root:
  commands:
    - {name: a, key: "hyper+a", steps: [ls]}
    - {name: b, steps: ["{9}"]}
`))
	require.Error(t, err)

	var joined interface{ Unwrap() []error }
	require.True(t, errors.As(err, &joined))
	assert.Len(t, joined.Unwrap(), 3)
	assert.ErrorIs(t, err, keyboard.ErrUnknownKey)
	assert.ErrorIs(t, err, keyboard.ErrUnknownModifier)
}

func TestParseNoShortcutLeft(t *testing.T) {
	document := "root:\n  commands:\n"
	for range 22 {
		document += "    - {name: x, steps: [ls]}\n"
	}

	_, err := Parse([]byte(document))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoShortcut)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layers.yaml")
	require.NoError(t, os.WriteFile(path, []byte(gitDocument), 0o600))

	doc, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "root", doc.Root.Name())

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("root:\n  key: r\n"), 0o600))
	_, err = Load(bad)
	assert.ErrorContains(t, err, bad)
}
