// Copyright 2025 Andrew Khoury
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// generate-docs generates documentation from config structs using reflection
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/drew/iconembed/internal/config"
)

// FieldDoc represents documentation for a single field
type FieldDoc struct {
	Name        string
	Type        string
	Default     string
	Description string
	ValidValues []string
}

// SectionDoc represents documentation for a config section
type SectionDoc struct {
	Name        string
	Description string
	Fields      []FieldDoc
}

// EnvDoc documents one environment variable
type EnvDoc struct {
	Name        string
	Type        string
	Description string
}

func main() {
	if len(os.Args) > 1 && os.Args[1] == "--help" {
		fmt.Println("Usage: generate-docs [dir]")
		fmt.Println("Generates documentation from config structs:")
		fmt.Println("  - iconembed.example.toml")
		fmt.Println("  - iconembed.schema.json")
		fmt.Println("  - docs/configuration.md")
		return
	}

	dir := "."
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	if err := run(dir); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(dir string) error {
	docs := buildDocumentation()
	env := buildEnvDocumentation()

	if err := generateExampleTOML(dir, docs); err != nil {
		return fmt.Errorf("generating iconembed.example.toml: %w", err)
	}
	fmt.Println("✓ Generated iconembed.example.toml")

	if err := generateJSONSchema(dir, docs); err != nil {
		return fmt.Errorf("generating iconembed.schema.json: %w", err)
	}
	fmt.Println("✓ Generated iconembed.schema.json")

	if err := generateMarkdownDocs(dir, docs, env); err != nil {
		return fmt.Errorf("generating docs/configuration.md: %w", err)
	}
	fmt.Println("✓ Generated docs/configuration.md")

	return nil
}

func buildDocumentation() []SectionDoc {
	defaults := config.GetDefaults()

	return []SectionDoc{
		extractSection("generate", "Code generation settings. Flags and environment variables override these.", defaults.Generate),
		extractSection("check", "Settings for `iconembed validate`", defaults.Check),
	}
}

// extractSection uses reflection to extract field documentation from struct tags
func extractSection(name, description string, value interface{}) SectionDoc {
	section := SectionDoc{
		Name:        name,
		Description: description,
		Fields:      []FieldDoc{},
	}

	t := reflect.TypeOf(value)
	v := reflect.ValueOf(value)

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		// Skip unexported fields
		if !field.IsExported() {
			continue
		}

		docTag := field.Tag.Get("doc")
		tomlTag := field.Tag.Get("toml")
		if docTag == "" || tomlTag == "" {
			continue
		}

		fieldDoc := FieldDoc{
			Name:        tomlTag,
			Type:        getFieldType(field.Type),
			Default:     getDefaultValue(v.Field(i), field.Type),
			Description: docTag,
		}

		if enumTag := field.Tag.Get("enum"); enumTag != "" {
			fieldDoc.ValidValues = strings.Split(enumTag, ",")
		}

		section.Fields = append(section.Fields, fieldDoc)
	}

	return section
}

// buildEnvDocumentation reads the env tags of config.Env
func buildEnvDocumentation() []EnvDoc {
	descriptions := map[string]string{
		"OutDir":    "Directory the generated file is written to (default: current directory)",
		"SourceDir": "Manifest directory; skips the upward search for go.mod",
		"Docs":      "Documentation build: a missing or broken manifest yields an empty icon set",
		"GoPackage": "Set by go generate; default package name of the generated file",
	}

	t := reflect.TypeOf(config.Env{})
	docs := make([]EnvDoc, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		name := field.Tag.Get("env")
		if name == "" {
			continue
		}
		docs = append(docs, EnvDoc{
			Name:        name,
			Type:        getFieldType(field.Type),
			Description: descriptions[field.Name],
		})
	}
	return docs
}

// getFieldType returns a string representation of the field type
func getFieldType(t reflect.Type) string {
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return "int"
	case reflect.Bool:
		return "bool"
	case reflect.Slice:
		return "[]" + getFieldType(t.Elem())
	case reflect.Ptr:
		return getFieldType(t.Elem())
	default:
		return t.String()
	}
}

// getDefaultValue returns a TOML representation of the default value
func getDefaultValue(v reflect.Value, t reflect.Type) string {
	switch t.Kind() {
	case reflect.String:
		return v.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return fmt.Sprintf("%d", v.Int())
	case reflect.Bool:
		if v.Bool() {
			return "true"
		}
		return "false"
	case reflect.Slice:
		if v.IsNil() {
			return ""
		}
		items := make([]string, v.Len())
		for i := range items {
			items[i] = fmt.Sprintf("%q", v.Index(i).String())
		}
		return "[" + strings.Join(items, ", ") + "]"
	default:
		return ""
	}
}

func generateExampleTOML(dir string, docs []SectionDoc) error {
	var sb strings.Builder

	sb.WriteString(`# =============================================================================
# iconembed Configuration Reference
# =============================================================================
# Every available option with its default. Place iconembed.toml next to the
# icon manifest, or pass -config.
#
# Precedence: flags > environment > this file > defaults
# =============================================================================

`)

	for _, section := range docs {
		sb.WriteString("# -----------------------------------------------------------------------------\n")
		sb.WriteString(fmt.Sprintf("# [%s] - %s\n", section.Name, strings.ReplaceAll(section.Description, "`", "")))
		sb.WriteString("# -----------------------------------------------------------------------------\n\n")
		sb.WriteString(fmt.Sprintf("[%s]\n", section.Name))

		for _, field := range section.Fields {
			sb.WriteString(fmt.Sprintf("# %s\n", field.Description))
			sb.WriteString(fmt.Sprintf("# Default: %s\n", field.Default))
			if len(field.ValidValues) > 0 {
				sb.WriteString(fmt.Sprintf("# Valid values: %s\n", strings.Join(field.ValidValues, ", ")))
			}

			value := field.Default
			if field.Type == "string" && value != "" {
				value = fmt.Sprintf(`"%s"`, value)
			}
			if value == "" {
				sb.WriteString(fmt.Sprintf("# %s = \n", field.Name))
			} else {
				sb.WriteString(fmt.Sprintf("%s = %s\n", field.Name, value))
			}
			sb.WriteString("\n")
		}

		sb.WriteString("\n")
	}

	return os.WriteFile(filepath.Join(dir, "iconembed.example.toml"), []byte(sb.String()), 0644)
}

func generateJSONSchema(dir string, docs []SectionDoc) error {
	schema := map[string]interface{}{
		"$schema":              "http://json-schema.org/draft-07/schema#",
		"title":                "iconembed Configuration",
		"description":          "Configuration schema for the iconembed code generator",
		"type":                 "object",
		"additionalProperties": false,
		"properties":           make(map[string]interface{}),
	}

	properties := schema["properties"].(map[string]interface{})

	for _, section := range docs {
		sectionFields := make(map[string]interface{})

		for _, field := range section.Fields {
			fieldSchema := map[string]interface{}{
				"description": field.Description,
			}

			switch field.Type {
			case "string":
				fieldSchema["type"] = "string"
				if field.Default != "" {
					fieldSchema["default"] = field.Default
				}
			case "[]string":
				fieldSchema["type"] = "array"
				fieldSchema["items"] = map[string]interface{}{"type": "string"}
			}

			if len(field.ValidValues) > 0 {
				fieldSchema["enum"] = field.ValidValues
			}

			sectionFields[field.Name] = fieldSchema
		}

		properties[section.Name] = map[string]interface{}{
			"type":                 "object",
			"description":          section.Description,
			"additionalProperties": false,
			"properties":           sectionFields,
		}
	}

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(dir, "iconembed.schema.json"), data, 0644)
}

func generateMarkdownDocs(dir string, docs []SectionDoc, env []EnvDoc) error {
	var sb strings.Builder

	sb.WriteString(`# Configuration

iconembed reads an optional ` + "`iconembed.toml`" + ` from the manifest directory.
Unknown keys are rejected. Run ` + "`iconembed validate`" + ` to check a config file
together with the manifest and asset tree.

Settings are applied in this order, later entries losing:

1. Command-line flags
2. Environment variables
3. ` + "`iconembed.toml`" + `
4. Built-in defaults

`)

	sb.WriteString("## Config file\n\n")
	for _, section := range docs {
		sb.WriteString("### `[" + section.Name + "]`\n\n")
		sb.WriteString(section.Description + "\n\n")

		sb.WriteString("| Field | Type | Default | Description |\n")
		sb.WriteString("|-------|------|---------|-------------|\n")

		for _, field := range section.Fields {
			defaultVal := field.Default
			if defaultVal == "" {
				defaultVal = "-"
			}
			desc := field.Description
			if len(field.ValidValues) > 0 {
				desc += fmt.Sprintf(" (valid: `%s`)", strings.Join(field.ValidValues, "`, `"))
			}
			sb.WriteString(fmt.Sprintf("| `%s` | %s | `%s` | %s |\n",
				field.Name, field.Type, defaultVal, strings.ReplaceAll(desc, "|", `\|`)))
		}

		sb.WriteString("\n")
	}

	sb.WriteString("## Environment\n\n")
	sb.WriteString("| Variable | Type | Description |\n")
	sb.WriteString("|----------|------|-------------|\n")
	for _, e := range env {
		sb.WriteString(fmt.Sprintf("| `%s` | %s | %s |\n", e.Name, e.Type, e.Description))
	}
	sb.WriteString("\n")

	docsDir := filepath.Join(dir, "docs")
	if err := os.MkdirAll(docsDir, 0755); err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(docsDir, "configuration.md"), []byte(sb.String()), 0644)
}
