// Package config loads poet settings from TOML files and POET_* environment
// variables.
package config

// Config represents the poet configuration
type Config struct {
	Render RenderConfig `mapstructure:"render" toml:"render" yaml:"render" json:"render"`
	Output OutputConfig `mapstructure:"output" toml:"output" yaml:"output" json:"output"`
	Filer  FilerConfig  `mapstructure:"filer" toml:"filer" yaml:"filer" json:"filer"`
	Log    LogConfig    `mapstructure:"log" toml:"log" yaml:"log" json:"log"`
	Watch  WatchConfig  `mapstructure:"watch" toml:"watch" yaml:"watch" json:"watch"`
}

// RenderConfig holds defaults for documents that do not set their own.
type RenderConfig struct {
	Indent      string `mapstructure:"indent" toml:"indent" yaml:"indent" json:"indent"`
	Wildcard    string `mapstructure:"wildcard" toml:"wildcard" yaml:"wildcard" json:"wildcard"` // disabled, always, or a threshold N >= 1
	SkipBuiltin bool   `mapstructure:"skip_builtin" toml:"skip_builtin" yaml:"skip_builtin" json:"skip_builtin"`
}

// OutputConfig configures the directory sink. An empty Dir renders to stdout.
type OutputConfig struct {
	Dir string `mapstructure:"dir" toml:"dir" yaml:"dir" json:"dir"`
}

// FilerConfig configures the tracked filer sink.
type FilerConfig struct {
	Root     string `mapstructure:"root" toml:"root" yaml:"root" json:"root"`
	Manifest string `mapstructure:"manifest" toml:"manifest" yaml:"manifest" json:"manifest"`
}

// LogConfig configures logging
type LogConfig struct {
	JSON      bool `mapstructure:"json" toml:"json" yaml:"json" json:"json"`
	Verbosity int  `mapstructure:"verbosity" toml:"verbosity" yaml:"verbosity" json:"verbosity"` // 0 warn, 1 info, 2+ debug
}

// WatchConfig configures watch mode
type WatchConfig struct {
	DebounceMS int `mapstructure:"debounce_ms" toml:"debounce_ms" yaml:"debounce_ms" json:"debounce_ms"`
}

// File and directory permission constants
const (
	DefaultDirPermissions  = 0o755
	DefaultFilePermissions = 0o644
)

// FileName is the name of poet configuration files.
const FileName = "poet.toml"
