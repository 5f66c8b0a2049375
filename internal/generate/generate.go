// Package generate runs the manifest to Go source pipeline.
package generate

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/drew/iconembed/internal/emit"
	"github.com/drew/iconembed/internal/logging"
	"github.com/drew/iconembed/internal/manifest"
	"github.com/drew/iconembed/internal/registry"
	"github.com/drew/iconembed/internal/resolve"
)

// Options are the effective settings of one run. Relative AssetsRoot is
// resolved against ManifestDir and relative Output against OutDir.
type Options struct {
	ManifestDir string
	Manifest    string
	AssetsRoot  string
	OutDir      string
	Output      string
	Package     string
	Mode        emit.Mode
	// Docs tolerates a missing manifest directory or a broken manifest
	// and generates from an empty manifest instead.
	Docs   bool
	DryRun bool
	// Ignore patterns for orphan reporting
	Ignore []string
}

// Result describes a finished run
type Result struct {
	// Empty when docs mode fell back to an empty manifest
	ManifestPath string
	AssetsRoot   string
	OutputPath   string
	Registry     *registry.Registry
	Source       []byte
	Fingerprint  string
	Written      bool
	// Files the output depends on: the manifest and every asset
	Deps []string
}

// Report is the outcome of Validate
type Report struct {
	ManifestPath string
	AssetsRoot   string
	Registry     *registry.Registry
	Orphans      []string
}

// Run loads, resolves, names, renders and writes. Nothing is written when
// any stage fails or when DryRun is set.
func Run(opts Options, log *logging.Logger) (*Result, error) {
	emitter, err := newEmitter(opts)
	if err != nil {
		return nil, err
	}

	res, err := build(opts, log)
	if err != nil {
		return nil, err
	}

	src, err := emitter.Render(res.Registry)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	res.Source = src
	res.Fingerprint = emit.Fingerprint(src)
	res.OutputPath = outputPath(opts)

	elog := log.Component("emit")
	if opts.DryRun {
		elog.Info().Str("output", res.OutputPath).Str("fingerprint", res.Fingerprint).Msg("dry run, not writing")
		return res, nil
	}

	written, err := emit.Write(res.OutputPath, src)
	if err != nil {
		return nil, err
	}
	res.Written = written
	if written {
		elog.Info().Str("output", res.OutputPath).Int("bytes", len(src)).Msg("wrote")
	} else {
		elog.Info().Str("output", res.OutputPath).Msg("unchanged")
	}

	return res, nil
}

// Validate runs every stage up to naming and reports unused assets.
// Nothing is rendered or written.
func Validate(opts Options, log *logging.Logger) (*Report, error) {
	res, err := build(opts, log)
	if err != nil {
		return nil, err
	}

	rep := &Report{
		ManifestPath: res.ManifestPath,
		AssetsRoot:   res.AssetsRoot,
		Registry:     res.Registry,
	}
	if res.AssetsRoot == "" {
		return rep, nil
	}

	orphans, err := resolve.Orphans(res.AssetsRoot, res.Registry.Assets(), opts.Ignore)
	if err != nil {
		return nil, err
	}
	for _, o := range orphans {
		log.Component("check").Warn().Str("asset", o).Msg("asset not referenced by manifest")
	}
	rep.Orphans = orphans
	return rep, nil
}

func newEmitter(opts Options) (*emit.Emitter, error) {
	return emit.New(emit.Options{
		Package: opts.Package,
		Mode:    opts.Mode,
		OutDir:  filepath.Dir(outputPath(opts)),
	})
}

func outputPath(opts Options) string {
	if filepath.IsAbs(opts.Output) {
		return opts.Output
	}
	return filepath.Join(opts.OutDir, opts.Output)
}

func build(opts Options, log *logging.Logger) (*Result, error) {
	mlog := log.Component("manifest")

	m, err := loadManifest(opts, mlog)
	if err != nil {
		return nil, err
	}

	res := &Result{ManifestPath: m.Path}
	if m.Path != "" {
		res.Deps = append(res.Deps, m.Path)
		res.AssetsRoot = assetsRoot(opts)
		mlog.Debug().Str("path", m.Path).Int("entries", len(m.Requests)).Msg("loaded")
	}

	resolver := resolve.New(res.AssetsRoot)
	assets, err := resolver.Resolve(m.Requests)
	if err != nil {
		return nil, err
	}
	rlog := log.Component("resolve")
	for _, a := range assets {
		rlog.Debug().Str("icon", a.IconRequest.String()).Str("path", a.Path).Msg("resolved")
		res.Deps = append(res.Deps, a.Path)
	}

	reg, err := registry.Build(assets)
	if err != nil {
		return nil, err
	}
	log.Component("registry").Debug().Int("icons", len(reg.Groups)).Int("variants", reg.Len()).Msg("built")
	res.Registry = reg

	return res, nil
}

func loadManifest(opts Options, log *logging.Logger) (*manifest.Manifest, error) {
	if opts.ManifestDir == "" {
		if opts.Docs {
			log.Info().Msg("docs build without a manifest directory, using an empty manifest")
			return &manifest.Manifest{}, nil
		}
		return nil, errors.New("no manifest directory")
	}

	m, err := manifest.Load(opts.ManifestDir, opts.Manifest)
	if err != nil {
		if opts.Docs {
			log.Warn().Err(err).Msg("docs build, using an empty manifest")
			return &manifest.Manifest{}, nil
		}
		return nil, err
	}
	return m, nil
}

func assetsRoot(opts Options) string {
	if filepath.IsAbs(opts.AssetsRoot) {
		return opts.AssetsRoot
	}
	return filepath.Join(opts.ManifestDir, opts.AssetsRoot)
}
