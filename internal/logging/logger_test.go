package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		wantEnabled bool
	}{
		{
			name: "text file",
			config: Config{
				FilePath:   filepath.Join(t.TempDir(), "hopkey.log"),
				Level:      slog.LevelInfo,
				Format:     FormatText,
				MaxSizeMB:  10,
				MaxBackups: 2,
			},
			wantEnabled: true,
		},
		{
			name:        "empty filepath disables logging",
			config:      Config{Level: slog.LevelInfo},
			wantEnabled: false,
		},
		{
			name: "json file in missing directory",
			config: Config{
				FilePath:   filepath.Join(t.TempDir(), "nested", "dir", "hopkey.log"),
				Level:      slog.LevelDebug,
				Format:     FormatJSON,
				MaxSizeMB:  10,
				MaxBackups: 2,
			},
			wantEnabled: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, Init(tt.config))
			t.Cleanup(func() { globalLogger = nil })

			assert.Equal(t, tt.wantEnabled, IsEnabled())
			Get().Info("test message")

			if tt.wantEnabled {
				content, err := os.ReadFile(tt.config.FilePath)
				require.NoError(t, err)
				assert.Contains(t, string(content), "test message")
			}
		})
	}
}

func TestGetBeforeInit(t *testing.T) {
	globalLogger = nil
	assert.False(t, IsEnabled())
	assert.NotPanics(t, func() { Warn("nothing listens") })
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"info", slog.LevelInfo, false},
		{"WARN", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"verbose", slog.LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if tt.wantErr {
				assert.ErrorContains(t, err, "unknown log level")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFormat(t *testing.T) {
	got, err := ParseFormat("json")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, got)

	got, err = ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatText, got)

	_, err = ParseFormat("xml")
	assert.ErrorContains(t, err, "unknown log format")
}

func TestLoggerWith(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, Config{Level: slog.LevelDebug, Format: FormatJSON}).With("component", "dispatch")

	logger.Debug("unbound key", "key", "q")

	assert.Contains(t, buf.String(), `"component":"dispatch"`)
	assert.Contains(t, buf.String(), `"key":"q"`)
	assert.True(t, logger.IsEnabled())
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, Config{Level: slog.LevelWarn})

	logger.Info("hidden")
	logger.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}
