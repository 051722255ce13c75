package config

import (
	"strings"

	"github.com/teranos/poet/errors"
	"github.com/teranos/poet/imports"
)

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if strings.TrimLeft(c.Render.Indent, " \t") != "" {
		return errors.NewConfigurationError("render.indent must be spaces or tabs, got %q", c.Render.Indent)
	}
	if _, err := imports.ParseWildcardPolicy(c.Render.Wildcard); err != nil {
		return errors.WithHint(errors.Wrap(err, "render.wildcard"), "use disabled, always, or a threshold >= 1")
	}

	// Watch debounce: 0 = default, negative = invalid
	if c.Watch.DebounceMS < 0 {
		return errors.NewConfigurationError("watch.debounce_ms must be >= 0, got %d", c.Watch.DebounceMS)
	}
	if c.Log.Verbosity < 0 {
		return errors.NewConfigurationError("log.verbosity must be >= 0, got %d", c.Log.Verbosity)
	}

	if c.Filer.Manifest != "" && c.Filer.Root == "" {
		return errors.NewConfigurationError("filer.manifest is set but filer.root is empty")
	}
	if c.Output.Dir != "" && c.Output.Dir == c.Filer.Root {
		return errors.WithHint(
			errors.NewConfigurationError("output.dir and filer.root are both %s", c.Output.Dir),
			"the directory sink and the filer sink write to separate roots")
	}
	return nil
}
