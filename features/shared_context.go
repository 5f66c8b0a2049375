package features

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/drew/iconembed/internal/emit"
	"github.com/drew/iconembed/internal/generate"
	"github.com/drew/iconembed/internal/logging"
	"github.com/drew/iconembed/internal/manifest"
	"github.com/drew/iconembed/internal/registry"
	"github.com/drew/iconembed/internal/resolve"
	"github.com/drew/iconembed/internal/testutil/inspect"
)

// errorsByName maps the names used in feature files to sentinel errors
var errorsByName = map[string]error{
	"manifest not found": manifest.ErrManifestNotFound,
	"manifest parse":     manifest.ErrManifestParse,
	"asset not found":    resolve.ErrAssetNotFound,
	"naming collision":   registry.ErrNamingCollision,
	"write error":        emit.ErrWrite,
	"NoSuchIconError":    inspect.ErrNoSuchIcon,
	"NoSuchVariantError": inspect.ErrNoSuchVariant,
}

// sharedContext holds ALL state for a scenario - used by all step definitions
type sharedContext struct {
	tempDir string
	opts    generate.Options

	// Generate results, oldest first
	results []*generate.Result
	report  *generate.Report
	err     error

	file *inspect.File
}

// setup creates the scenario project directory
func (c *sharedContext) setup() error {
	dir, err := os.MkdirTemp("", "iconembed-feature-*")
	if err != nil {
		return err
	}
	c.tempDir = dir
	c.opts = generate.Options{
		ManifestDir: dir,
		AssetsRoot:  "icons",
		OutDir:      filepath.Join(dir, "out"),
		Output:      "icons_gen.go",
		Package:     "icons",
		Mode:        emit.ModeLiteral,
	}
	return nil
}

func (c *sharedContext) writeFile(rel, content string) error {
	path := filepath.Join(c.tempDir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0644)
}

func (c *sharedContext) outputPath() string {
	return filepath.Join(c.opts.OutDir, c.opts.Output)
}

// runGenerate runs the pipeline and records its outcome
func (c *sharedContext) runGenerate() error {
	c.file = nil
	res, err := generate.Run(c.opts, logging.Nop())
	c.err = err
	if err == nil {
		c.results = append(c.results, res)
	}
	return nil
}

// runValidate runs the pipeline without writing
func (c *sharedContext) runValidate() error {
	rep, err := generate.Validate(c.opts, logging.Nop())
	c.report, c.err = rep, err
	return nil
}

// generated parses the output file once per run
func (c *sharedContext) generated() (*inspect.File, error) {
	if c.file != nil {
		return c.file, nil
	}
	f, err := inspect.ParseFile(c.outputPath())
	if err != nil {
		return nil, fmt.Errorf("parse generated file: %w", err)
	}
	c.file = f
	return f, nil
}

// theRunShouldSucceed checks that the last run succeeded
func (c *sharedContext) theRunShouldSucceed() error {
	if c.err != nil {
		return fmt.Errorf("expected success, got: %v", c.err)
	}
	return nil
}

// theRunShouldFailWith checks the last run failed with the named error
func (c *sharedContext) theRunShouldFailWith(name string) error {
	if c.err == nil {
		return fmt.Errorf("expected %s, got success", name)
	}
	target, ok := errorsByName[name]
	if !ok {
		return fmt.Errorf("unknown error name %q", name)
	}
	if !errors.Is(c.err, target) {
		return fmt.Errorf("expected %s, got: %v", name, c.err)
	}
	return nil
}

// theErrorShouldMention checks the error message (case-insensitive)
func (c *sharedContext) theErrorShouldMention(expected string) error {
	if c.err == nil {
		return fmt.Errorf("expected an error mentioning %q, got success", expected)
	}
	if !strings.Contains(strings.ToLower(c.err.Error()), strings.ToLower(expected)) {
		return fmt.Errorf("expected error to mention %q, got: %v", expected, c.err)
	}
	return nil
}

// cleanup removes temporary directories
func (c *sharedContext) cleanup() {
	if c.tempDir != "" {
		_ = os.RemoveAll(c.tempDir)
	}
}
