// Package config handles loading the weave CLI's default settings.
//
// Configuration can be specified in a YAML file named weave.yaml or
// .weaverc. The config file is searched for in the current directory
// and parent directories. This is a CLI default-settings file only; it
// has no bearing on the library API in pkg/weave.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the CLI default-settings file structure. All
// fields are optional and fall back to built-in defaults when unset.
// The apply command reads only SourceRoot, and only when --source-root
// is not given; IncludeContent, Color and LogLevel are loaded and
// resolved but no command applies them.
type Config struct {
	// SourceRoot is the default "sourceRoot" written into generated maps.
	SourceRoot *string `yaml:"sourceRoot,omitempty"`

	// IncludeContent embeds the original source in "sourcesContent" by
	// default.
	IncludeContent *bool `yaml:"includeContent,omitempty"`

	// Color controls default CLI color mode: "auto", "always", "never".
	Color *string `yaml:"color,omitempty"`

	// LogLevel is the default log level: "debug", "info", "warn", "error".
	LogLevel *string `yaml:"logLevel,omitempty"`
}

// Defaults returns the built-in default settings, used when no config
// file is found and as the base that a loaded file overlays.
type Defaults struct {
	SourceRoot     string
	IncludeContent bool
	Color          string
	LogLevel       string
}

// DefaultSettings are weave's built-in defaults.
func DefaultSettings() Defaults {
	return Defaults{
		SourceRoot:     "",
		IncludeContent: false,
		Color:          "auto",
		LogLevel:       "info",
	}
}

// FileNames are the names searched for a config file, in order of
// preference.
var FileNames = []string{
	"weave.yaml",
	".weaverc",
}

// Load searches for a config file starting from startDir and walking up
// through parent directories. Returns a nil Config and empty path if
// none is found.
func Load(startDir string) (*Config, string, error) {
	dir := startDir
	for {
		for _, name := range FileNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				cfg, err := LoadFile(path)
				return cfg, path, err
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, "", nil
		}
		dir = parent
	}
}

// LoadFile loads configuration from a specific file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Resolve overlays c onto the built-in defaults, producing the settings
// the CLI should use absent any explicit flag.
func (c *Config) Resolve() Defaults {
	d := DefaultSettings()
	if c == nil {
		return d
	}
	if c.SourceRoot != nil {
		d.SourceRoot = *c.SourceRoot
	}
	if c.IncludeContent != nil {
		d.IncludeContent = *c.IncludeContent
	}
	if c.Color != nil {
		d.Color = *c.Color
	}
	if c.LogLevel != nil {
		d.LogLevel = *c.LogLevel
	}
	return d
}
