// Package config provides configuration types and defaults for kilovim.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/zjrosen/kilovim/internal/log"
)

// Limits for editor.indent_width.
const (
	MinIndentWidth = 1
	MaxIndentWidth = 16
)

// Config holds all configuration options for kilovim.
type Config struct {
	Editor EditorConfig `mapstructure:"editor" yaml:"editor"`
	Log    LogConfig    `mapstructure:"log" yaml:"log"`
}

// EditorConfig holds editing behaviour options.
type EditorConfig struct {
	IndentWidth int  `mapstructure:"indent_width" yaml:"indent_width"` // spaces for >> << and visual > <
	SmartIndent bool `mapstructure:"smart_indent" yaml:"smart_indent"` // new lines inherit indent; Ctrl-Z toggles
}

// LogConfig holds debug logging options.
type LogConfig struct {
	// Debug enables the file logger. The --debug flag and KILOVIM_DEBUG
	// environment variable override it.
	Debug bool `mapstructure:"debug" yaml:"debug"`

	// Level is the lowest level written: debug, info, warn or error.
	Level string `mapstructure:"level" yaml:"level"`

	// Path is the log file written when Debug is set.
	// Default: kilovim.log
	Path string `mapstructure:"path" yaml:"path"`
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		Editor: EditorConfig{
			IndentWidth: 4,
			SmartIndent: true,
		},
		Log: LogConfig{
			Debug: false,
			Level: "debug",
			Path:  "kilovim.log",
		},
	}
}

// Validate checks the configuration for errors.
func Validate(cfg Config) error {
	if err := ValidateEditor(cfg.Editor); err != nil {
		return fmt.Errorf("editor: %w", err)
	}
	if cfg.Log.Debug && cfg.Log.Path == "" {
		return fmt.Errorf("log: path is required when debug is enabled")
	}
	if _, err := log.ParseLevel(cfg.Log.Level); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	return nil
}

// ValidateEditor checks editor configuration for errors.
func ValidateEditor(ed EditorConfig) error {
	if ed.IndentWidth < MinIndentWidth || ed.IndentWidth > MaxIndentWidth {
		return fmt.Errorf("indent_width must be between %d and %d, got %d",
			MinIndentWidth, MaxIndentWidth, ed.IndentWidth)
	}
	return nil
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# kilovim configuration

editor:
  # Spaces inserted or removed by >>, << and visual-line > <.
  # Must be between 1 and 16.
  indent_width: 4

  # New lines created with Enter, o and O inherit the indent of the
  # current line. Ctrl-Z toggles this while editing.
  smart_indent: true

log:
  # Write a debug log. Also enabled by --debug or KILOVIM_DEBUG=1.
  debug: false

  # Lowest level written: debug, info, warn or error.
  level: debug

  # Log file location.
  path: kilovim.log
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
