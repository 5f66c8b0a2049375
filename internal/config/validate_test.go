package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name         string
		cfg          Config
		wantValid    bool
		wantWarnings int
	}{
		{
			name:      "empty config",
			cfg:       Config{},
			wantValid: true,
		},
		{
			name: "valid config",
			cfg: Config{
				Generate: GenerateConfig{
					Output:  "icons_gen.go",
					Package: "icons",
					Mode:    "embed",
				},
				Check: CheckConfig{Ignore: []string{"**/draft-*.svg"}},
			},
			wantValid: true,
		},
		{
			name:      "invalid mode",
			cfg:       Config{Generate: GenerateConfig{Mode: "inline"}},
			wantValid: false,
		},
		{
			name:      "invalid package",
			cfg:       Config{Generate: GenerateConfig{Package: "my-icons"}},
			wantValid: false,
		},
		{
			name:      "blank package",
			cfg:       Config{Generate: GenerateConfig{Package: "_"}},
			wantValid: false,
		},
		{
			name:      "absolute output",
			cfg:       Config{Generate: GenerateConfig{Output: "/tmp/icons.go"}},
			wantValid: false,
		},
		{
			name:         "output without .go",
			cfg:          Config{Generate: GenerateConfig{Output: "icons.txt"}},
			wantValid:    true,
			wantWarnings: 1,
		},
		{
			name:         "manifest with separator",
			cfg:          Config{Generate: GenerateConfig{Manifest: "sub/icons.json"}},
			wantValid:    true,
			wantWarnings: 1,
		},
		{
			name:      "invalid ignore pattern",
			cfg:       Config{Check: CheckConfig{Ignore: []string{"[unclosed"}}},
			wantValid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ValidateConfig(&tt.cfg)
			if err != nil {
				t.Fatalf("ValidateConfig() error = %v", err)
			}

			if result.Valid != tt.wantValid {
				t.Errorf("ValidateConfig() valid = %v, want %v", result.Valid, tt.wantValid)
				if !result.Valid {
					t.Logf("Errors: %v", result.Errors)
				}
			}
			if len(result.Warnings) != tt.wantWarnings {
				t.Errorf("ValidateConfig() warnings = %v, want %d", result.Warnings, tt.wantWarnings)
			}
		})
	}
}

func TestValidateConfigNil(t *testing.T) {
	result, err := ValidateConfig(nil)
	if err != nil {
		t.Fatalf("ValidateConfig(nil) error = %v", err)
	}
	if !result.Valid {
		t.Error("nil config should be valid")
	}
	if result.Err() != nil {
		t.Errorf("Err() = %v, want nil", result.Err())
	}
}

func TestValidationResultErr(t *testing.T) {
	result, _ := ValidateConfig(&Config{Generate: GenerateConfig{Mode: "inline", Package: "a-b"}})
	err := result.Err()
	if err == nil {
		t.Fatal("Err() = nil for an invalid result")
	}
	for _, want := range []string{"generate.mode", "generate.package"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Err() = %v, want it to mention %s", err, want)
		}
	}
}

func TestValidationErrorFormatting(t *testing.T) {
	tests := []struct {
		err  ValidationError
		want string
	}{
		{ValidationError{Field: "generate.mode", Message: "bad"}, "generate.mode: bad"},
		{ValidationError{Message: "bad"}, "bad"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}

func TestValidateConfigFileNonexistent(t *testing.T) {
	_, err := ValidateConfigFile("/nonexistent/iconembed.toml")
	if err == nil {
		t.Error("Expected error for nonexistent file")
	}
}

func TestValidateConfigFileInvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte("[generate\nmode = 1"), 0644); err != nil {
		t.Fatal(err)
	}

	result, err := ValidateConfigFile(path)
	if err != nil {
		t.Fatalf("ValidateConfigFile() error = %v", err)
	}
	if result.Valid {
		t.Error("Expected invalid result for bad TOML")
	}
}

func TestValidateConfigFileUnknownFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	content := `
[generate]
mode = "embed"
colour = "red"

[extra]
key = 1
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	result, err := ValidateConfigFile(path)
	if err != nil {
		t.Fatalf("ValidateConfigFile() error = %v", err)
	}
	if result.Valid {
		t.Error("Expected invalid result for unknown fields")
	}

	fields := make([]string, 0, len(result.Errors))
	for _, e := range result.Errors {
		fields = append(fields, e.Field)
	}
	joined := strings.Join(fields, " ")
	if !strings.Contains(joined, "generate.colour") {
		t.Errorf("Errors %v should mention generate.colour", fields)
	}
}

func TestPrintValidationResult(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		var buf bytes.Buffer
		PrintValidationResult(&buf, "iconembed.toml", &ValidationResult{Valid: true})
		if !strings.Contains(buf.String(), "Configuration is valid!") {
			t.Errorf("output = %q", buf.String())
		}
	})

	t.Run("invalid with field errors", func(t *testing.T) {
		var buf bytes.Buffer
		PrintValidationResult(&buf, "iconembed.toml", &ValidationResult{
			Valid:  false,
			Errors: []ValidationError{{Field: "generate.mode", Message: "Invalid mode"}, {Message: "general"}},
		})
		out := buf.String()
		for _, want := range []string{"Found 2 error(s)", "[generate.mode] Invalid mode", "• general", "INVALID"} {
			if !strings.Contains(out, want) {
				t.Errorf("output missing %q:\n%s", want, out)
			}
		}
	})

	t.Run("valid with warnings", func(t *testing.T) {
		var buf bytes.Buffer
		PrintValidationResult(&buf, "iconembed.toml", &ValidationResult{
			Valid:    true,
			Warnings: []ValidationError{{Field: "generate.output", Message: "not .go"}},
		})
		if !strings.Contains(buf.String(), "valid (with warnings)") {
			t.Errorf("output = %q", buf.String())
		}
	})
}

func TestContainsHelper(t *testing.T) {
	slice := []string{"literal", "embed"}
	if !contains(slice, "embed") {
		t.Error("contains() should find embed")
	}
	if contains(slice, "inline") {
		t.Error("contains() should not find inline")
	}
	if contains(nil, "embed") {
		t.Error("contains() on nil slice should be false")
	}
}
