package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/renato0307/hopkey/internal/commands"
	"github.com/renato0307/hopkey/internal/logging"
	"github.com/renato0307/hopkey/internal/ui"
)

// EnvPrefix prefixes every environment variable read by hopkey,
// e.g. HOPKEY_LOG_LEVEL
const EnvPrefix = "HOPKEY"

// Settings holds the runtime settings of the hopkey binary
type Settings struct {
	Config  string        `mapstructure:"config"`
	Theme   string        `mapstructure:"theme"`
	Shell   string        `mapstructure:"shell"`
	Timeout time.Duration `mapstructure:"timeout"`
	Log     LogSettings   `mapstructure:"log"`
}

// LogSettings configures the log file
type LogSettings struct {
	File       string `mapstructure:"file"`
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
}

// DefaultConfigPath returns ~/.config/hopkey/layers.yaml, or layers.yaml in
// the working directory when the user config directory is unknown
func DefaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "layers.yaml"
	}
	return filepath.Join(dir, "hopkey", "layers.yaml")
}

// NewViper returns a viper instance with defaults and environment binding.
// Callers bind command-line flags on top.
func NewViper() *viper.Viper {
	v := viper.New()

	v.SetDefault("config", DefaultConfigPath())
	v.SetDefault("theme", ui.DefaultTheme)
	v.SetDefault("shell", commands.DefaultShell)
	v.SetDefault("timeout", commands.DefaultTimeout)
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", string(logging.FormatText))
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 3)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// LoadSettings reads and validates the settings held by v
func LoadSettings(v *viper.Viper) (*Settings, error) {
	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate reports every invalid setting
func (s *Settings) Validate() error {
	var errs []error
	if s.Config == "" {
		errs = append(errs, errors.New("config: path is required"))
	}
	if !ui.IsTheme(s.Theme) {
		errs = append(errs, fmt.Errorf("theme: unknown theme %q%s", s.Theme, suggest(s.Theme, ui.AvailableThemes())))
	}
	if s.Shell == "" {
		errs = append(errs, errors.New("shell: must not be empty"))
	}
	if s.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("timeout: must be positive, got %s", s.Timeout))
	}
	if _, err := logging.ParseLevel(s.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	if _, err := logging.ParseFormat(s.Log.Format); err != nil {
		errs = append(errs, fmt.Errorf("log.format: %w", err))
	}
	return errors.Join(errs...)
}

// LoggingConfig converts the log settings for logging.Init
func (s *Settings) LoggingConfig() logging.Config {
	level, _ := logging.ParseLevel(s.Log.Level)
	format, _ := logging.ParseFormat(s.Log.Format)
	return logging.Config{
		FilePath:   s.Log.File,
		Level:      level,
		Format:     format,
		MaxSizeMB:  s.Log.MaxSizeMB,
		MaxBackups: s.Log.MaxBackups,
	}
}

// ExecuteOptions converts the executor settings
func (s *Settings) ExecuteOptions() commands.ExecuteOptions {
	return commands.ExecuteOptions{Shell: s.Shell, Timeout: s.Timeout}
}
