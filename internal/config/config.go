// Package config loads strdiff settings from defaults, the nearest settings file, and the environment, in increasing priority.
package config

import (
	"fmt"
	"slices"
)

// Settings file names searched for upward from the working directory. When a directory holds both, FileName wins.
const (
	FileName     = ".strdiff.json"
	YAMLFileName = ".strdiff.yaml"
)

// Environment variables that override the settings file.
const (
	EnvColor  = "STRDIFF_COLOR"
	EnvFormat = "STRDIFF_FORMAT"
)

var (
	// ColorModes are the accepted values of Config.Color.
	ColorModes = []string{"auto", "always", "never"}

	// Formats are the accepted values of Config.Format.
	Formats = []string{"debug", "pretty", "delta", "summary"}
)

// Config holds the settings a command-line flag may further override.
type Config struct {
	Color  string `json:"color"`  // one of ColorModes
	Format string `json:"format"` // one of Formats; used by `strdiff diff`

	// Source is the settings file that was applied, or "" if none was found.
	Source string `config:"-"`
}

// Defaults returns the configuration used when no file or environment variable sets a value.
func Defaults() Config {
	return Config{Color: "auto", Format: "debug"}
}

// Load builds the configuration for a process started in startDir (the working directory if empty): defaults, then the nearest FileName or YAMLFileName at or above startDir, then EnvColor and
// EnvFormat. The result is validated.
func Load(startDir string) (Config, error) {
	def := Defaults()
	l := NewLoader().
		WithDefaults(map[string]any{
			"color":  def.Color,
			"format": def.Format,
		}).
		WithNearestFile(startDir, FileName, YAMLFileName).
		WithEnv(map[string]string{
			"color":  EnvColor,
			"format": EnvFormat,
		})

	var cfg Config
	if err := l.StrictlyLoad(&cfg); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	if files := l.Files(); len(files) > 0 {
		cfg.Source = files[0]
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first setting that holds an unknown value.
func (c Config) Validate() error {
	if !slices.Contains(ColorModes, c.Color) {
		return fmt.Errorf("invalid color %q: want one of %v", c.Color, ColorModes)
	}
	if !slices.Contains(Formats, c.Format) {
		return fmt.Errorf("invalid format %q: want one of %v", c.Format, Formats)
	}
	return nil
}
