// iconembed
//
// Generates a Go source file embedding the SVG icons a manifest declares.
// Run it from a go:generate directive or by hand.

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/drew/iconembed/internal/config"
	"github.com/drew/iconembed/internal/discover"
	"github.com/drew/iconembed/internal/emit"
	"github.com/drew/iconembed/internal/generate"
	"github.com/drew/iconembed/internal/logging"
	"github.com/drew/iconembed/internal/ui"
)

// sliceFlag allows repeating -ignore
type sliceFlag []string

func (s *sliceFlag) String() string {
	return fmt.Sprintf("%v", *s)
}

func (s *sliceFlag) Set(val string) error {
	*s = append(*s, val)
	return nil
}

// cli holds the process-level inputs of one invocation
type cli struct {
	stdout io.Writer
	stderr io.Writer
	env    config.Env
	// colors are allowed on stdout
	color bool
}

// flags of both commands
type options struct {
	outDir      string
	out         string
	manifestDir string
	manifest    string
	assets      string
	pkg         string
	mode        string
	config      string
	dryRun      bool
	verbose     bool
	noColor     bool
	ignore      sliceFlag
}

func main() {
	env, err := config.LoadEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}

	c := &cli{
		stdout: os.Stdout,
		stderr: os.Stderr,
		env:    env,
		color:  ui.IsColorEnabled(os.Stdout),
	}
	if err := c.run(os.Args[1:]); err != nil {
		ui.NewRenderer(os.Stderr, ui.IsColorEnabled(os.Stderr)).RenderError(err)
		os.Exit(1)
	}
}

func (c *cli) run(args []string) error {
	command := "generate"
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		command, args = args[0], args[1:]
	}
	switch command {
	case "generate", "validate":
	default:
		return fmt.Errorf("unknown command %q (want generate or validate)", command)
	}

	fs := flag.NewFlagSet("iconembed "+command, flag.ContinueOnError)
	fs.SetOutput(c.stderr)

	var o options
	fs.StringVar(&o.outDir, "out-dir", "", "Directory the generated file is written to (default: $ICONEMBED_OUT_DIR, then .)")
	fs.StringVar(&o.out, "out", "", "Generated file name (overrides config)")
	fs.StringVar(&o.manifestDir, "manifest-dir", "", "Manifest directory, skipping discovery (default: $ICONEMBED_SOURCE_DIR)")
	fs.StringVar(&o.manifest, "manifest", "", "Manifest file name (overrides config)")
	fs.StringVar(&o.assets, "assets", "", "Assets root, relative to the manifest directory (overrides config)")
	fs.StringVar(&o.pkg, "package", "", "Package name of the generated file (default: $GOPACKAGE)")
	fs.StringVar(&o.mode, "mode", "", "Embedding mode: literal, embed (overrides config)")
	fs.StringVar(&o.config, "config", "", "Path to config file (default: iconembed.toml in the manifest directory)")
	fs.BoolVar(&o.dryRun, "dry-run", false, "Render but do not write the output")
	fs.BoolVar(&o.verbose, "verbose", false, "Verbose logging")
	fs.BoolVar(&o.noColor, "no-color", false, "Disable colored output")
	fs.Var(&o.ignore, "ignore", "Exclude assets matching a pattern from unused-asset warnings (can be specified multiple times)")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	log := logging.New(c.stderr, logging.Options{
		Verbose: o.verbose,
		NoColor: o.noColor || !c.color,
	})
	renderer := ui.NewRenderer(c.stdout, c.color && !o.noColor)

	opts, err := c.resolveOptions(&o, command, log)
	if err != nil {
		return err
	}

	if command == "validate" {
		rep, err := generate.Validate(opts, log)
		if err != nil {
			return err
		}
		renderer.RenderValidation(ui.Validation{
			Manifest: rep.ManifestPath,
			Icons:    len(rep.Registry.Groups),
			Variants: rep.Registry.Len(),
			Orphans:  rep.Orphans,
		})
		return nil
	}

	res, err := generate.Run(opts, log)
	if err != nil {
		return err
	}
	for _, dep := range res.Deps {
		log.Debug().Str("path", dep).Msg("depends on")
	}
	renderer.RenderSummary(ui.Summary{
		Output:      res.OutputPath,
		Manifest:    res.ManifestPath,
		Icons:       len(res.Registry.Groups),
		Variants:    res.Registry.Len(),
		Fingerprint: res.Fingerprint,
		Written:     res.Written,
		DryRun:      opts.DryRun,
	})
	return nil
}

// resolveOptions discovers directories, loads the config file and applies
// precedence: flags, then environment, then config, then defaults
func (c *cli) resolveOptions(o *options, command string, log *logging.Logger) (generate.Options, error) {
	outDir := o.outDir
	if outDir == "" {
		outDir = c.env.OutDir
	}
	if outDir == "" {
		outDir = "."
	}
	outDir, err := discover.Canonical(outDir)
	if err != nil {
		return generate.Options{}, fmt.Errorf("output directory: %w", err)
	}

	var manifestDir string
	if !c.env.Docs || o.manifestDir != "" || c.env.SourceDir != "" {
		manifestDir, err = discover.ManifestDir(outDir, discover.DefaultDescriptor, o.manifestDir, c.env.SourceDir)
		if err != nil {
			return generate.Options{}, err
		}
	}
	log.Debug().Str("out_dir", outDir).Str("manifest_dir", manifestDir).Msg("directories")

	// validate reports every config problem before loading stops at the first
	if command == "validate" {
		if path := configPath(manifestDir, o.config); path != "" {
			result, err := config.ValidateConfigFile(path)
			if err != nil {
				return generate.Options{}, err
			}
			config.PrintValidationResult(c.stdout, path, result)
			if err := result.Err(); err != nil {
				return generate.Options{}, err
			}
		}
	}

	cfg, err := loadConfig(manifestDir, o.config)
	if err != nil {
		return generate.Options{}, err
	}
	result, err := config.ValidateConfig(cfg)
	if err != nil {
		return generate.Options{}, err
	}
	if command != "validate" {
		for _, w := range result.Warnings {
			log.Warn().Str("field", w.Field).Msg(w.Message)
		}
	}
	if err := result.Err(); err != nil {
		return generate.Options{}, err
	}

	merged := config.MergeWithDefaults(cfg)
	settings := merged.Resolve(c.env, config.Overrides{
		Manifest:   o.manifest,
		AssetsRoot: o.assets,
		Output:     o.out,
		Package:    o.pkg,
		Mode:       o.mode,
	})

	mode, err := emit.ParseMode(settings.Mode)
	if err != nil {
		return generate.Options{}, err
	}

	return generate.Options{
		ManifestDir: manifestDir,
		Manifest:    settings.Manifest,
		AssetsRoot:  settings.AssetsRoot,
		OutDir:      outDir,
		Output:      settings.Output,
		Package:     settings.Package,
		Mode:        mode,
		Docs:        c.env.Docs,
		DryRun:      o.dryRun,
		Ignore:      append(append([]string{}, settings.Ignore...), o.ignore...),
	}, nil
}

// configPath returns the config file to use, or "" when there is none
func configPath(manifestDir, path string) string {
	if path != "" {
		return path
	}
	if manifestDir == "" {
		return ""
	}
	path = filepath.Join(manifestDir, config.FileName)
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

func loadConfig(manifestDir, path string) (*config.Config, error) {
	if manifestDir == "" && path == "" {
		return nil, nil
	}
	return config.LoadConfig(manifestDir, path)
}
