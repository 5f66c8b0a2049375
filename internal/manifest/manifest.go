// Package manifest loads the icon manifest and normalizes it into icon requests.
//
// A manifest is a list whose entries are either a bare icon name or a record
// with a name, an optional style and an optional filled flag:
//
//	["home", {"name": "settings", "style": "rounded", "filled": true}]
//
// JSON, YAML and TOML encodings are accepted. JSON and YAML documents may be a
// bare list or an object holding the list under "icons"; TOML documents always
// use the "icons" key.
package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/drew/iconembed/internal/model"
)

// Candidates are the manifest file names tried, in order, when none is given
var Candidates = []string{"icons.json", "icons.yaml", "icons.yml", "icons.toml"}

var (
	// ErrManifestNotFound is returned when no manifest file exists
	ErrManifestNotFound = errors.New("manifest not found")
	// ErrManifestParse matches every ParseError
	ErrManifestParse = errors.New("manifest parse error")
)

// ParseError reports malformed manifest content
type ParseError struct {
	Path string
	// Index of the offending entry, or -1 when the document itself is malformed
	Index int
	Err   error
}

func (e *ParseError) Error() string {
	path := e.Path
	if path == "" {
		path = "<input>"
	}
	if e.Index >= 0 {
		return fmt.Sprintf("parse manifest %s: entry %d: %v", path, e.Index, e.Err)
	}
	return fmt.Sprintf("parse manifest %s: %v", path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is makes every ParseError match ErrManifestParse
func (e *ParseError) Is(target error) bool {
	return target == ErrManifestParse
}

// Format is a manifest encoding
type Format string

// Supported manifest encodings
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFor picks the encoding from the file extension. Unknown extensions are read as JSON.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	default:
		return FormatJSON
	}
}

// Manifest is a loaded and normalized manifest
type Manifest struct {
	// Path the manifest was read from
	Path     string
	Requests []model.IconRequest
}

// Load locates the manifest in dir and parses it. When file is empty the
// Candidates are tried in order; otherwise only file is considered.
func Load(dir, file string) (*Manifest, error) {
	path, err := Locate(dir, file)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest %s: %w", path, err)
	}

	reqs, err := Parse(FormatFor(path), data)
	if err != nil {
		var perr *ParseError
		if errors.As(err, &perr) {
			perr.Path = path
		}
		return nil, err
	}

	return &Manifest{Path: path, Requests: reqs}, nil
}

// Locate returns the path of the manifest in dir
func Locate(dir, file string) (string, error) {
	names := Candidates
	if file != "" {
		if filepath.IsAbs(file) {
			return statManifest(file)
		}
		names = []string{file}
	}

	for _, name := range names {
		path, err := statManifest(filepath.Join(dir, name))
		if err == nil {
			return path, nil
		}
		if !errors.Is(err, ErrManifestNotFound) {
			return "", err
		}
	}

	return "", fmt.Errorf("%w in %s (looked for %s)", ErrManifestNotFound, dir, strings.Join(names, ", "))
}

func statManifest(path string) (string, error) {
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("%w: %s", ErrManifestNotFound, path)
	}
	if err != nil {
		return "", fmt.Errorf("stat manifest %s: %w", path, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%w: %s is a directory", ErrManifestNotFound, path)
	}
	return path, nil
}

// Parse decodes manifest content and normalizes every entry
func Parse(format Format, data []byte) ([]model.IconRequest, error) {
	var (
		entries []Entry
		err     error
	)
	switch format {
	case FormatYAML:
		entries, err = decodeYAML(data)
	case FormatTOML:
		entries, err = decodeTOML(data)
	default:
		entries, err = decodeJSON(data)
	}
	if err != nil {
		var perr *ParseError
		if errors.As(err, &perr) {
			return nil, err
		}
		return nil, &ParseError{Index: -1, Err: err}
	}

	reqs := make([]model.IconRequest, 0, len(entries))
	for i, e := range entries {
		req, err := e.Request()
		if err != nil {
			return nil, &ParseError{Index: i, Err: err}
		}
		reqs = append(reqs, req)
	}
	return reqs, nil
}
