package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/hopkey/internal/config"
	"github.com/renato0307/hopkey/internal/ui"
)

const document = `
root:
  layers:
    - name: git
      commands:
        - name: checkout
          description: switch branch
          steps: ["git checkout {0}"]
          parameters:
            - {name: branch, type: choose, options: [main]}
        - name: status
          final: false
          steps: ["git status"]
  commands:
    - {name: date, steps: [date]}
`

func TestRenderTree(t *testing.T) {
	doc, err := config.Parse([]byte(document))
	require.NoError(t, err)

	out := renderTree(doc.Root, ui.GetTheme("charm"))
	for _, want := range []string{
		"root",
		"d date",
		"g +git",
		"c checkout [branch:choose] - switch branch",
		"s status (stays)",
	} {
		assert.Contains(t, out, want)
	}

	sum := summary(doc.Root, doc.Bindings)
	assert.Contains(t, sum, "2 layers, 3 commands")
	assert.Contains(t, sum, "activation: space")
}

func TestCheckCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layers.yaml")
	require.NoError(t, os.WriteFile(path, []byte(document), 0o600))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"check", "--config", path})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "+git")
	assert.Contains(t, out.String(), "3 commands")
}

func TestCheckCommandReportsErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layers.yaml")
	require.NoError(t, os.WriteFile(path, []byte("root:\n  commands:\n    - {name: x, key: hyper+x, steps: [ls]}\n"), 0o600))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"check", "--config", path})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown modifier")
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "hopkey dev\n", out.String())
}
