// Package config handles loading, validation, and merging of iconembed configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// FileName is the optional config file looked up in the manifest directory
const FileName = "iconembed.toml"

// Config represents the complete iconembed configuration
type Config struct {
	Generate GenerateConfig `toml:"generate"`
	Check    CheckConfig    `toml:"check"`
}

// GenerateConfig controls code generation
type GenerateConfig struct {
	// Manifest file name
	Manifest string `toml:"manifest" doc:"Manifest file, relative to the manifest directory (default: first of icons.json, icons.yaml, icons.yml, icons.toml)"`
	// Root of the <name>/<variant>.svg tree
	AssetsRoot string `toml:"assetsRoot" doc:"Directory holding <name>/[filled-]<style>.svg assets, relative to the manifest directory"`
	// Generated file name
	Output string `toml:"output" doc:"Generated Go file, relative to the output directory"`
	// Package clause of the generated file
	Package string `toml:"package" doc:"Package name of the generated file (default: $GOPACKAGE, then icons)"`
	// Embedding mode
	Mode string `toml:"mode" doc:"How asset bytes are embedded: literal string or //go:embed" enum:"literal,embed"`
}

// CheckConfig controls the validate command
type CheckConfig struct {
	// Orphan warning exclusions
	Ignore []string `toml:"ignore" doc:"Doublestar patterns, relative to assetsRoot, excluded from unused-asset warnings"`
}

// LoadConfig loads configuration from a TOML file.
// With an empty path, iconembed.toml in dir is used if present and a nil
// config is returned otherwise. An explicit path must exist.
func LoadConfig(dir, path string) (*Config, error) {
	explicitPath := path != ""
	if path == "" {
		path = filepath.Join(dir, FileName)
	}

	// Check if file exists
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if explicitPath {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, nil
	}

	var cfg Config
	metadata, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	// Check for unknown fields
	undecoded := metadata.Undecoded()
	if len(undecoded) > 0 {
		var unknownFields []string
		for _, key := range undecoded {
			unknownFields = append(unknownFields, key.String())
		}
		return nil, fmt.Errorf("unknown fields in config: %s", strings.Join(unknownFields, ", "))
	}

	return &cfg, nil
}

// GetDefaults returns the default configuration
func GetDefaults() Config {
	return Config{
		Generate: GenerateConfig{
			AssetsRoot: "icons",
			Output:     "icons_gen.go",
			Mode:       "literal",
		},
		Check: CheckConfig{
			Ignore: []string{},
		},
	}
}

// MergeWithDefaults merges loaded config with defaults
func MergeWithDefaults(cfg *Config) Config {
	defaults := GetDefaults()

	if cfg == nil {
		return defaults
	}

	merged := *cfg
	if merged.Generate.AssetsRoot == "" {
		merged.Generate.AssetsRoot = defaults.Generate.AssetsRoot
	}
	if merged.Generate.Output == "" {
		merged.Generate.Output = defaults.Generate.Output
	}
	if merged.Generate.Mode == "" {
		merged.Generate.Mode = defaults.Generate.Mode
	}
	if merged.Check.Ignore == nil {
		merged.Check.Ignore = defaults.Check.Ignore
	}

	return merged
}
