// Package emit renders the generated Go source for a registry and writes it
// to the build output location.
package emit

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"go/token"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/template"

	"github.com/zeebo/xxh3"
	"golang.org/x/tools/imports"

	"github.com/drew/iconembed/assets"
	"github.com/drew/iconembed/internal/registry"
)

// Mode selects how asset bytes reach the generated file
type Mode string

// Embedding modes
const (
	// ModeLiteral writes the bytes as a string literal
	ModeLiteral Mode = "literal"
	// ModeEmbed emits //go:embed directives relative to the output directory
	ModeEmbed Mode = "embed"
)

// ParseMode parses a mode name
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeLiteral, ModeEmbed:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("invalid mode %q (valid: %s, %s)", s, ModeLiteral, ModeEmbed)
	}
}

// ErrWrite matches every WriteError
var ErrWrite = errors.New("write error")

// WriteError reports a failure to write the generated file
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// Is makes every WriteError match ErrWrite
func (e *WriteError) Is(target error) bool {
	return target == ErrWrite
}

// Options configure rendering
type Options struct {
	// Package clause of the generated file
	Package string
	Mode    Mode
	// Directory the generated file is written to. Embed paths are relative to it.
	OutDir string
}

// Emitter renders registries into Go source
type Emitter struct {
	opts Options
	tmpl *template.Template
}

// New validates opts and parses the embedded template
func New(opts Options) (*Emitter, error) {
	if !token.IsIdentifier(opts.Package) || opts.Package == "_" {
		return nil, fmt.Errorf("invalid package name %q", opts.Package)
	}
	if opts.Mode == "" {
		opts.Mode = ModeLiteral
	}
	if _, err := ParseMode(string(opts.Mode)); err != nil {
		return nil, err
	}
	if opts.Mode == ModeEmbed {
		abs, err := filepath.Abs(opts.OutDir)
		if err != nil {
			return nil, fmt.Errorf("absolute path of %s: %w", opts.OutDir, err)
		}
		// Embed paths are compared against the real location of each asset
		opts.OutDir = realPath(abs)
	}

	tmpl, err := template.New("icons.go").Parse(assets.IconsTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse template: %w", err)
	}
	return &Emitter{opts: opts, tmpl: tmpl}, nil
}

type fileData struct {
	Package string
	Embed   bool
	Groups  []groupData
}

type groupData struct {
	Name     string
	Func     string
	Variants []variantData
}

type variantData struct {
	Const      string
	StyleIdent string
	Filled     bool
	Literal    string
	EmbedPath  string
}

// Render produces formatted Go source for reg
func (e *Emitter) Render(reg *registry.Registry) ([]byte, error) {
	data := fileData{
		Package: e.opts.Package,
		Embed:   e.opts.Mode == ModeEmbed,
		Groups:  make([]groupData, 0, len(reg.Groups)),
	}

	for _, g := range reg.Groups {
		gd := groupData{Name: g.Name, Func: g.Func}
		for _, v := range g.Variants {
			vd := variantData{
				Const:      v.Const,
				StyleIdent: v.Style.Ident(),
				Filled:     v.Filled,
			}
			if data.Embed {
				p, err := e.embedPath(v.Name, v.Path)
				if err != nil {
					return nil, err
				}
				vd.EmbedPath = p
			} else {
				content, err := os.ReadFile(v.Path)
				if err != nil {
					return nil, fmt.Errorf("read asset %s: %w", v.Path, err)
				}
				vd.Literal = strconv.Quote(string(content))
			}
			gd.Variants = append(gd.Variants, vd)
		}
		data.Groups = append(data.Groups, gd)
	}

	var buf bytes.Buffer
	if err := e.tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("execute template: %w", err)
	}

	src, err := imports.Process("icons_gen.go", buf.Bytes(), &imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
		FormatOnly: true,
	})
	if err != nil {
		return nil, fmt.Errorf("format generated source: %w", err)
	}
	return src, nil
}

func (e *Emitter) embedPath(name, path string) (string, error) {
	// go:embed rejects symlinks and other irregular files
	info, err := os.Lstat(path)
	if err != nil {
		return "", fmt.Errorf("stat asset %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("embed mode: asset %s of icon %q is not a regular file", path, name)
	}

	dir, err := filepath.EvalSymlinks(filepath.Dir(path))
	if err != nil {
		return "", fmt.Errorf("resolve asset directory of %s: %w", path, err)
	}
	rel, err := filepath.Rel(e.opts.OutDir, filepath.Join(dir, filepath.Base(path)))
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("embed mode: asset %s is outside the output directory %s", path, e.opts.OutDir)
	}
	return strconv.Quote(filepath.ToSlash(rel)), nil
}

// realPath resolves symlinks in the longest existing prefix of an absolute path
func realPath(path string) string {
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		return resolved
	}
	parent := filepath.Dir(path)
	if parent == path {
		return path
	}
	return filepath.Join(realPath(parent), filepath.Base(path))
}

// Fingerprint returns the xxh3-128 digest of src in hex
func Fingerprint(src []byte) string {
	sum := xxh3.Hash128(src).Bytes()
	return hex.EncodeToString(sum[:])
}

// Write stores src at path unless the file already holds identical content.
// It reports whether the file was written.
func Write(path string, src []byte) (bool, error) {
	if same, err := sameContent(path, src); err == nil && same {
		return false, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, &WriteError{Path: path, Err: err}
	}
	if err := os.WriteFile(path, src, 0o644); err != nil {
		return false, &WriteError{Path: path, Err: err}
	}
	return true, nil
}

func sameContent(path string, src []byte) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	h := xxh3.New()
	n, err := io.Copy(h, f)
	if err != nil {
		return false, err
	}
	return n == int64(len(src)) && h.Sum128() == xxh3.Hash128(src), nil
}
