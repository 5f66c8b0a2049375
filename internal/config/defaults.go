package config

// DefaultPackage is the package clause used when neither flags, environment
// nor config name one
const DefaultPackage = "icons"

// Overrides carries values set on the command line. Empty fields are unset.
type Overrides struct {
	Manifest   string
	AssetsRoot string
	Output     string
	Package    string
	Mode       string
}

// Settings are the effective generation settings
type Settings struct {
	Manifest   string
	AssetsRoot string
	Output     string
	Package    string
	Mode       string
	Ignore     []string
}

// Resolve applies precedence: flags, then environment, then the merged config
func (c *Config) Resolve(env Env, flags Overrides) Settings {
	return Settings{
		Manifest:   firstNonEmpty(flags.Manifest, c.Generate.Manifest),
		AssetsRoot: firstNonEmpty(flags.AssetsRoot, c.Generate.AssetsRoot),
		Output:     firstNonEmpty(flags.Output, c.Generate.Output),
		Package:    firstNonEmpty(flags.Package, env.GoPackage, c.Generate.Package, DefaultPackage),
		Mode:       firstNonEmpty(flags.Mode, c.Generate.Mode),
		Ignore:     c.Check.Ignore,
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
