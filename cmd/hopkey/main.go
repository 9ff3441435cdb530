package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/renato0307/hopkey/internal/commands"
	"github.com/renato0307/hopkey/internal/config"
	"github.com/renato0307/hopkey/internal/dispatch"
	"github.com/renato0307/hopkey/internal/logging"
	"github.com/renato0307/hopkey/internal/tui"
	"github.com/renato0307/hopkey/internal/ui"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

var v = config.NewViper()

var rootCmd = &cobra.Command{
	Use:   "hopkey",
	Short: "Keyboard-driven command launcher",
	Long: `hopkey turns a tree of key-bound layers into a launcher: press the
activation key, walk down the layers one key at a time and run the command
at the end, filling in its parameters on the way.

The layer tree is read from a YAML document (--config). Every flag can also
be set with a HOPKEY_ environment variable, e.g. HOPKEY_LOG_LEVEL=debug.`,
	SilenceUsage: true,
	RunE:         runRoot,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("config", config.DefaultConfigPath(), "layer document")
	flags.String("theme", ui.DefaultTheme, fmt.Sprintf("color theme %v", ui.AvailableThemes()))
	flags.String("shell", commands.DefaultShell, "shell used to run instructions")
	flags.Duration("timeout", commands.DefaultTimeout, "timeout of synchronous steps")
	flags.String("log-file", "", "log file (logging is off when empty)")
	flags.String("log-level", "info", "log level: debug, info, warn, error")
	flags.String("log-format", string(logging.FormatText), "log format: text, json")

	for key, flag := range map[string]string{
		"config":     "config",
		"theme":      "theme",
		"shell":      "shell",
		"timeout":    "timeout",
		"log.file":   "log-file",
		"log.level":  "log-level",
		"log.format": "log-format",
	} {
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			panic(err)
		}
	}

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads settings, initializes logging and loads the layer document
func setup() (*config.Settings, *config.Document, error) {
	settings, err := config.LoadSettings(v)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid settings: %w", err)
	}
	if err := logging.Init(settings.LoggingConfig()); err != nil {
		return nil, nil, err
	}

	doc, err := config.Load(settings.Config)
	if err != nil {
		return nil, nil, err
	}
	return settings, doc, nil
}

func runRoot(cmd *cobra.Command, _ []string) error {
	settings, doc, err := setup()
	if err != nil {
		return err
	}
	logging.Info("starting hopkey", "version", version, "config", settings.Config)

	executor := commands.NewShellExecutor(settings.ExecuteOptions())
	if err := executor.CheckShell(); err != nil {
		return err
	}

	var opts []dispatch.Option
	if commands.ClipboardAvailable() {
		opts = append(opts, dispatch.WithClipboard(commands.SystemClipboard{}))
	} else {
		logging.Warn("no clipboard backend, copy is disabled")
	}

	term := tui.New(ui.GetTheme(settings.Theme), doc.Bindings)
	engine := dispatch.New(doc.Root, doc.Bindings, term, term, executor, opts...)

	ctx, stop := signal.NotifyContext(contextOf(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := term.Run(ctx, engine); err != nil {
		logging.Error("hopkey stopped", "error", err)
		return err
	}
	logging.Info("hopkey stopped")
	return nil
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
