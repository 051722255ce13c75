package config

import (
	"time"

	"github.com/spf13/viper"

	"github.com/teranos/poet/decl"
	"github.com/teranos/poet/imports"
	"github.com/teranos/poet/poet"
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	v.SetDefault("render.indent", poet.DefaultIndent)
	v.SetDefault("render.wildcard", "disabled")
	v.SetDefault("render.skip_builtin", true) // java.lang never needs an import

	v.SetDefault("output.dir", "")

	v.SetDefault("filer.root", "generated")
	v.SetDefault("filer.manifest", "poet.db")

	v.SetDefault("log.json", false)
	v.SetDefault("log.verbosity", 0)

	v.SetDefault("watch.debounce_ms", 300)
}

// RenderOptions converts the render section into document defaults.
func (c *Config) RenderOptions() (decl.Options, error) {
	policy, err := imports.ParseWildcardPolicy(c.Render.Wildcard)
	if err != nil {
		return decl.Options{}, err
	}
	return decl.Options{
		Indent:      c.Render.Indent,
		Policy:      policy,
		SkipBuiltin: c.Render.SkipBuiltin,
	}, nil
}

// Debounce returns the watch debounce period, 300ms when unset.
func (c *Config) Debounce() time.Duration {
	if c.Watch.DebounceMS <= 0 {
		return 300 * time.Millisecond
	}
	return time.Duration(c.Watch.DebounceMS) * time.Millisecond
}
