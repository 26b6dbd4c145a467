// Package config loads the optional todos configuration file.
//
// The file is found only through an explicit path: the --config flag or,
// when the flag is empty, the TODOS_CONFIG environment variable. There is
// no discovery. Without either, Default() is used as is.
//
// Values are layered: defaults, then the file, then command-line flags
// (applied by the caller).
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/idilsaglam/todos/internal/listwindow"
)

// EnvVar names the environment variable holding the config path.
const EnvVar = "TODOS_CONFIG"

// Config is the full configuration.
type Config struct {
	// Theme is one of classic, neon or mono.
	Theme string `yaml:"theme"`

	// Align is top or bottom. Bottom keeps new items in view.
	Align string `yaml:"align"`

	// NoColor disables colour output entirely.
	NoColor bool `yaml:"no_color"`

	Log   LogConfig   `yaml:"log"`
	Input InputConfig `yaml:"input"`
}

// LogConfig configures slog output.
type LogConfig struct {
	// Level is debug, info, warn or error.
	Level string `yaml:"level"`

	// File receives JSON log records. Empty means the TUI status bar
	// (interactive) or stderr (scripts).
	File string `yaml:"file"`
}

// InputConfig configures the title input line.
type InputConfig struct {
	Placeholder string `yaml:"placeholder"`
	CharLimit   int    `yaml:"char_limit"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Theme: "classic",
		Align: "bottom",
		Log: LogConfig{
			Level: "info",
		},
		Input: InputConfig{
			Placeholder: "Add todo...",
			CharLimit:   200,
		},
	}
}

// Load reads the file at path, falling back to $TODOS_CONFIG. With neither
// set it returns Default().
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvVar)
	}
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile reads and validates the file at path on top of the defaults.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) normalize() {
	c.Theme = strings.ToLower(strings.TrimSpace(c.Theme))
	c.Align = strings.ToLower(strings.TrimSpace(c.Align))
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
}

var themes = []string{"classic", "neon", "mono"}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var errs []error

	if !contains(themes, c.Theme) {
		errs = append(errs, fmt.Errorf("theme must be one of: %v", themes))
	}
	if _, ok := listwindow.ParseAlignment(c.Align); !ok {
		errs = append(errs, fmt.Errorf("align must be top or bottom, got %q", c.Align))
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	if c.Input.CharLimit < 0 {
		errs = append(errs, fmt.Errorf("input.char_limit must not be negative"))
	}

	return errors.Join(errs...)
}

// Alignment returns the parsed list alignment.
func (c *Config) Alignment() listwindow.Alignment {
	a, _ := listwindow.ParseAlignment(c.Align)
	return a
}

// LogLevel returns the parsed slog level, defaulting to info.
func (c *Config) LogLevel() slog.Level {
	l, err := parseLevel(c.Log.Level)
	if err != nil {
		return slog.LevelInfo
	}
	return l
}

func parseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log.level: %w", err)
	}
	return l, nil
}

func contains(slice []string, s string) bool {
	for _, v := range slice {
		if v == s {
			return true
		}
	}
	return false
}
