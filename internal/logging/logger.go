// Package logging wraps log/slog with rotating file output. Logging is off
// unless a file is configured, since the terminal belongs to the UI.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger wraps slog.Logger
type Logger struct {
	logger  *slog.Logger
	enabled bool
}

// LogFormat represents the output format for logs
type LogFormat string

const (
	FormatText LogFormat = "text"
	FormatJSON LogFormat = "json"
)

// Config holds configuration for logger initialization
type Config struct {
	// FilePath is the path to the log file (empty = no logging)
	FilePath string
	// Level is the minimum log level
	Level slog.Level
	// Format is the output format (text or json)
	Format LogFormat
	// MaxSizeMB is the maximum size in MB before rotation
	MaxSizeMB int
	// MaxBackups is the maximum number of rotated files to keep
	MaxBackups int
}

var (
	globalLogger *Logger
	noopLogger   = &Logger{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
)

// Init installs the global logger. An empty FilePath disables logging.
func Init(config Config) error {
	if config.FilePath == "" {
		globalLogger = noopLogger
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(config.FilePath), 0o755); err != nil {
		return fmt.Errorf("creating log directory: %w", err)
	}

	writer := &lumberjack.Logger{
		Filename:   config.FilePath,
		MaxSize:    config.MaxSizeMB,
		MaxBackups: config.MaxBackups,
		Compress:   true,
	}

	globalLogger = &Logger{logger: slog.New(newHandler(writer, config)), enabled: true}
	return nil
}

func newHandler(w io.Writer, config Config) slog.Handler {
	opts := &slog.HandlerOptions{Level: config.Level}
	if config.Format == FormatJSON {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

// New builds a logger writing to w, bypassing the global one. Tests use it
// to inspect what a component logs.
func New(w io.Writer, config Config) *Logger {
	return &Logger{logger: slog.New(newHandler(w, config)), enabled: true}
}

// Get returns the global logger, or a noop logger before Init
func Get() *Logger {
	if globalLogger == nil {
		return noopLogger
	}
	return globalLogger
}

func (l *Logger) Debug(msg string, args ...any) { l.logger.Debug(msg, args...) }
func (l *Logger) Info(msg string, args ...any) { l.logger.Info(msg, args...) }
func (l *Logger) Warn(msg string, args ...any) { l.logger.Warn(msg, args...) }
func (l *Logger) Error(msg string, args ...any) { l.logger.Error(msg, args...) }

// With returns a new Logger with the given key-value pairs added as context
func (l *Logger) With(args ...any) *Logger {
	return &Logger{logger: l.logger.With(args...), enabled: l.enabled}
}

// IsEnabled reports whether records go anywhere
func (l *Logger) IsEnabled() bool {
	return l.enabled
}

// Package-level convenience functions

func Debug(msg string, args ...any) { Get().Debug(msg, args...) }
func Info(msg string, args ...any) { Get().Info(msg, args...) }
func Warn(msg string, args ...any) { Get().Warn(msg, args...) }
func Error(msg string, args ...any) { Get().Error(msg, args...) }

// IsEnabled returns true if logging is enabled globally
func IsEnabled() bool {
	return Get().IsEnabled()
}

// ParseLevel converts debug, info, warn or error to a slog.Level
func ParseLevel(level string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", level)
	}
	return l, nil
}

// ParseFormat converts text or json to a LogFormat
func ParseFormat(format string) (LogFormat, error) {
	switch LogFormat(strings.ToLower(format)) {
	case FormatJSON:
		return FormatJSON, nil
	case FormatText, "":
		return FormatText, nil
	default:
		return FormatText, fmt.Errorf("unknown log format %q", format)
	}
}
