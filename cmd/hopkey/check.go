package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"
	"github.com/spf13/cobra"

	"github.com/renato0307/hopkey/internal/commands"
	"github.com/renato0307/hopkey/internal/keyboard"
	"github.com/renato0307/hopkey/internal/layers"
	"github.com/renato0307/hopkey/internal/ui"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the layer document and print the key tree",
	Long: `check loads the layer document, reports every problem found and, when
the document is valid, prints the tree with the keys assigned to each layer
and command.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		settings, doc, err := setup()
		if err != nil {
			return err
		}

		theme := ui.GetTheme(settings.Theme)
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, renderTree(doc.Root, theme))
		fmt.Fprintln(out)
		fmt.Fprintln(out, summary(doc.Root, doc.Bindings))
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "hopkey", version)
	},
}

func renderTree(root *layers.Layer, theme *ui.Theme) string {
	return layerTree(theme.Breadcrumb.Render(root.Name()), root, theme).
		EnumeratorStyle(lipgloss.NewStyle().Foreground(theme.Palette.Border)).
		String()
}

func layerTree(label string, l *layers.Layer, theme *ui.Theme) *tree.Tree {
	t := tree.Root(label)
	for _, e := range l.Actions() {
		key := theme.Key.Render(e.Key.String())
		switch a := e.Value.(type) {
		case layers.Branch:
			t.Child(layerTree(key+" "+theme.Layer.Render("+"+a.Layer.Name()), a.Layer, theme))
		case layers.Execute:
			t.Child(key + " " + theme.Command.Render(a.Command.Name()) + theme.Meta.Render(commandDetails(a.Command)))
		}
	}
	return t
}

// commandDetails describes parameters and flags, e.g. " [branch:choose] (stays)"
func commandDetails(cmd *commands.Command) string {
	var b strings.Builder
	for _, p := range cmd.Parameters() {
		fmt.Fprintf(&b, " [%s:%s]", p.Name, p.Kind)
	}
	if !cmd.IsFinal() {
		b.WriteString(" (stays)")
	}
	if cmd.Description() != "" {
		b.WriteString(" - " + cmd.Description())
	}
	return b.String()
}

func summary(root *layers.Layer, keys *keyboard.Bindings) string {
	var nLayers, nCommands int
	root.Walk(func(_ []keyboard.Key, a layers.Action) {
		switch a.(type) {
		case layers.Branch:
			nLayers++
		case layers.Execute:
			nCommands++
		}
	})

	names := func(ks []keyboard.Key) string {
		s := make([]string, len(ks))
		for i, k := range ks {
			s[i] = k.String()
		}
		if len(s) == 0 {
			return "-"
		}
		return strings.Join(s, ", ")
	}

	return fmt.Sprintf("%d layers, %d commands\nactivation: %s | back: %s | deactivate: %s | retry: %s | copy: %s",
		nLayers+1, nCommands,
		names(keys.Activation), names(keys.Back), names(keys.Deactivate), names(keys.Retry), names(keys.Copy))
}
