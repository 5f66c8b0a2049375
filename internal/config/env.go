package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Env is the configuration read from environment variables
type Env struct {
	// Build output directory
	OutDir string `env:"ICONEMBED_OUT_DIR"`
	// Explicit manifest directory, skipping discovery
	SourceDir string `env:"ICONEMBED_SOURCE_DIR"`
	// Documentation builds tolerate a missing or broken manifest
	Docs bool `env:"ICONEMBED_DOCS"`
	// Set by go generate
	GoPackage string `env:"GOPACKAGE"`
}

// LoadEnv loads configuration from the process environment
func LoadEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	return e, nil
}

// LoadEnvFrom loads configuration from the given variables instead of the process environment
func LoadEnvFrom(vars map[string]string) (Env, error) {
	var e Env
	if err := env.ParseWithOptions(&e, env.Options{Environment: vars}); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	return e, nil
}
