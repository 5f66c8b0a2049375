package config

import (
	"errors"
	"fmt"
	"go/token"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/bmatcuk/doublestar/v4"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// ValidationResult holds the results of config validation
type ValidationResult struct {
	Valid    bool
	Errors   []ValidationError
	Warnings []ValidationError
}

// Err folds the errors of an invalid result into one error
func (r *ValidationResult) Err() error {
	if r == nil || r.Valid {
		return nil
	}
	errs := make([]error, 0, len(r.Errors))
	for _, e := range r.Errors {
		errs = append(errs, e)
	}
	return fmt.Errorf("invalid config: %w", errors.Join(errs...))
}

func newResult() *ValidationResult {
	return &ValidationResult{
		Valid:    true,
		Errors:   []ValidationError{},
		Warnings: []ValidationError{},
	}
}

// ValidateConfig validates an already-loaded config
func ValidateConfig(cfg *Config) (*ValidationResult, error) {
	result := newResult()

	if cfg == nil {
		return result, nil
	}

	validateGenerate(&cfg.Generate, result)
	validateCheck(&cfg.Check, result)

	return result, nil
}

// ValidateConfigFile validates a TOML config file
func ValidateConfigFile(path string) (*ValidationResult, error) {
	result := newResult()

	// Check if file exists
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config file does not exist: %s", path)
	}

	var cfg Config
	metadata, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, ValidationError{
			Message: fmt.Sprintf("Invalid TOML syntax: %v", err),
		})
		return result, nil
	}

	// Check for unknown fields
	for _, key := range metadata.Undecoded() {
		result.Valid = false
		result.Errors = append(result.Errors, ValidationError{
			Field:   key.String(),
			Message: "Unknown configuration field",
		})
	}

	validateGenerate(&cfg.Generate, result)
	validateCheck(&cfg.Check, result)

	return result, nil
}

// validateGenerate validates the generate section
func validateGenerate(gen *GenerateConfig, result *ValidationResult) {
	if gen.Mode != "" {
		validModes := []string{"literal", "embed"}
		if !contains(validModes, gen.Mode) {
			result.Valid = false
			result.Errors = append(result.Errors, ValidationError{
				Field:   "generate.mode",
				Message: fmt.Sprintf("Invalid mode '%s'. Valid options: %s", gen.Mode, strings.Join(validModes, ", ")),
			})
		}
	}

	if gen.Package != "" && (!token.IsIdentifier(gen.Package) || gen.Package == "_") {
		result.Valid = false
		result.Errors = append(result.Errors, ValidationError{
			Field:   "generate.package",
			Message: fmt.Sprintf("Package '%s' is not a valid Go identifier", gen.Package),
		})
	}

	if gen.Output != "" {
		if filepath.IsAbs(gen.Output) {
			result.Valid = false
			result.Errors = append(result.Errors, ValidationError{
				Field:   "generate.output",
				Message: "Output must be relative to the output directory",
			})
		} else if filepath.Ext(gen.Output) != ".go" {
			result.Warnings = append(result.Warnings, ValidationError{
				Field:   "generate.output",
				Message: fmt.Sprintf("Output '%s' does not end in .go and will not be compiled", gen.Output),
			})
		}
	}

	if gen.Manifest != "" && strings.ContainsAny(gen.Manifest, `/\`) {
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   "generate.manifest",
			Message: "Manifest is a path; it is still resolved against the manifest directory",
		})
	}
}

// validateCheck validates the check section
func validateCheck(check *CheckConfig, result *ValidationResult) {
	for i, pattern := range check.Ignore {
		if !doublestar.ValidatePattern(pattern) {
			result.Valid = false
			result.Errors = append(result.Errors, ValidationError{
				Field:   fmt.Sprintf("check.ignore[%d]", i),
				Message: fmt.Sprintf("Invalid pattern '%s'", pattern),
			})
		}
	}
}

// contains checks if a slice contains a string
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

// PrintValidationResult prints the validation result in a human-readable format
func PrintValidationResult(w io.Writer, path string, result *ValidationResult) {
	fmt.Fprintln(w, "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Fprintf(w, "📋 Validating: %s\n", path)

	if result.Valid && len(result.Warnings) == 0 {
		fmt.Fprintln(w, "✅ Configuration is valid!")
		fmt.Fprintln(w)
		return
	}

	if len(result.Errors) > 0 {
		fmt.Fprintf(w, "\n❌ Found %d error(s):\n", len(result.Errors))
		for _, err := range result.Errors {
			if err.Field != "" {
				fmt.Fprintf(w, "  • [%s] %s\n", err.Field, err.Message)
			} else {
				fmt.Fprintf(w, "  • %s\n", err.Message)
			}
		}
		fmt.Fprintln(w)
	}

	if len(result.Warnings) > 0 {
		fmt.Fprintf(w, "⚠️  Found %d warning(s):\n", len(result.Warnings))
		for _, warn := range result.Warnings {
			if warn.Field != "" {
				fmt.Fprintf(w, "  • [%s] %s\n", warn.Field, warn.Message)
			} else {
				fmt.Fprintf(w, "  • %s\n", warn.Message)
			}
		}
		fmt.Fprintln(w)
	}

	if !result.Valid {
		fmt.Fprintln(w, "❌ Configuration is INVALID")
	} else {
		fmt.Fprintln(w, "✅ Configuration is valid (with warnings)")
	}
	fmt.Fprintln(w)
}
