// Package discover locates the directory holding the icon manifest.
package discover

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultDescriptor is the project file that marks the manifest directory
const DefaultDescriptor = "go.mod"

// ErrRootNotFound is returned when no ancestor holds the project descriptor
var ErrRootNotFound = errors.New("project root not found")

// Canonical returns the absolute path of dir with symlinks resolved
func Canonical(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("absolute path of %s: %w", dir, err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", abs, err)
	}
	return resolved, nil
}

// FindRoot walks upward from start to the first directory containing
// descriptor, start included
func FindRoot(start, descriptor string) (string, error) {
	if descriptor == "" {
		descriptor = DefaultDescriptor
	}
	dir, err := Canonical(start)
	if err != nil {
		return "", err
	}

	for {
		if info, err := os.Stat(filepath.Join(dir, descriptor)); err == nil && !info.IsDir() {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", fmt.Errorf("%w: no %s above %s", ErrRootNotFound, descriptor, start)
}

// ManifestDir picks the manifest directory: the first non-empty override
// wins, otherwise the project root above outDir is used
func ManifestDir(outDir, descriptor string, overrides ...string) (string, error) {
	for _, o := range overrides {
		if o == "" {
			continue
		}
		info, err := os.Stat(o)
		if err != nil {
			return "", fmt.Errorf("manifest directory %s: %w", o, err)
		}
		if !info.IsDir() {
			return "", fmt.Errorf("manifest directory %s is not a directory", o)
		}
		return filepath.Clean(o), nil
	}
	return FindRoot(outDir, descriptor)
}
