// Package resolve maps icon requests onto asset files below an assets root.
package resolve

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/drew/iconembed/internal/model"
)

// ErrAssetNotFound matches every AssetNotFoundError
var ErrAssetNotFound = errors.New("asset not found")

// AssetNotFoundError reports a declared variant without a backing file
type AssetNotFoundError struct {
	Name string
	Path string
}

func (e *AssetNotFoundError) Error() string {
	return fmt.Sprintf("icon %s not found at %s", e.Name, e.Path)
}

// Is makes every AssetNotFoundError match ErrAssetNotFound
func (e *AssetNotFoundError) Is(target error) bool {
	return target == ErrAssetNotFound
}

// Resolver resolves requests against one assets root
type Resolver struct {
	root string
}

// New creates a resolver for the given assets root
func New(root string) *Resolver {
	return &Resolver{root: root}
}

// Root returns the assets root
func (r *Resolver) Root() string {
	return r.root
}

// Path returns the expected asset path for req:
// <root>/<name>/<filled->style.svg
func (r *Resolver) Path(req model.IconRequest) string {
	return filepath.Join(r.root, req.Name, req.FileName())
}

// Resolve checks every request and stops at the first missing asset
func (r *Resolver) Resolve(reqs []model.IconRequest) ([]model.ResolvedAsset, error) {
	assets := make([]model.ResolvedAsset, 0, len(reqs))
	for _, req := range reqs {
		asset, err := r.ResolveOne(req)
		if err != nil {
			return nil, err
		}
		assets = append(assets, asset)
	}
	return assets, nil
}

// ResolveOne resolves a single request
func (r *Resolver) ResolveOne(req model.IconRequest) (model.ResolvedAsset, error) {
	path := r.Path(req)

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return model.ResolvedAsset{}, &AssetNotFoundError{Name: req.Name, Path: path}
		}
		return model.ResolvedAsset{}, fmt.Errorf("stat asset %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return model.ResolvedAsset{}, &AssetNotFoundError{Name: req.Name, Path: path}
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return model.ResolvedAsset{}, fmt.Errorf("absolute path of %s: %w", path, err)
	}

	return model.ResolvedAsset{IconRequest: req, Path: filepath.Clean(abs)}, nil
}

// Orphans lists SVG files below root that no resolved asset references.
// Paths are slash-separated and relative to root. Files matching any ignore
// pattern (doublestar syntax, relative to root) are skipped.
func Orphans(root string, assets []model.ResolvedAsset, ignore []string) ([]string, error) {
	for _, pattern := range ignore {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid ignore pattern %q", pattern)
		}
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("absolute path of %s: %w", root, err)
	}

	used := make(map[string]bool, len(assets))
	for _, a := range assets {
		rel, err := filepath.Rel(absRoot, a.Path)
		if err != nil {
			continue
		}
		used[filepath.ToSlash(rel)] = true
	}

	matches, err := doublestar.Glob(os.DirFS(absRoot), "**/*.svg", doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("glob assets in %s: %w", root, err)
	}

	var orphans []string
	for _, m := range matches {
		if used[m] || ignored(m, ignore) {
			continue
		}
		orphans = append(orphans, m)
	}
	sort.Strings(orphans)
	return orphans, nil
}

func ignored(path string, patterns []string) bool {
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, path); ok {
			return true
		}
	}
	return false
}
