package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/poet/errors"
	"github.com/teranos/poet/imports"
)

func TestLoad_Defaults(t *testing.T) {
	// Isolated viper so user/system config does not leak in
	v := viper.New()
	SetDefaults(v)

	cfg, err := LoadWithViper(v)
	require.NoError(t, err)

	assert.Equal(t, "  ", cfg.Render.Indent)
	assert.Equal(t, "disabled", cfg.Render.Wildcard)
	assert.True(t, cfg.Render.SkipBuiltin)
	assert.Equal(t, "generated", cfg.Filer.Root)
	assert.Equal(t, "poet.db", cfg.Filer.Manifest)
	assert.Equal(t, 300, cfg.Watch.DebounceMS)
	assert.NoError(t, cfg.Validate())
}

func TestSetDefaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	tests := []struct {
		key      string
		expected interface{}
	}{
		{"render.indent", "  "},
		{"render.wildcard", "disabled"},
		{"render.skip_builtin", true},
		{"filer.root", "generated"},
		{"filer.manifest", "poet.db"},
		{"log.verbosity", 0},
		{"watch.debounce_ms", 300},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.expected, v.Get(tt.key))
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte(`
[render]
wildcard = "3"
indent = "    "

[watch]
debounce_ms = 50
`), 0o644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "3", cfg.Render.Wildcard)
	assert.Equal(t, "    ", cfg.Render.Indent)
	assert.True(t, cfg.Render.SkipBuiltin, "unset keys keep defaults")
	assert.Equal(t, 50*time.Millisecond, cfg.Debounce())

	opts, err := cfg.RenderOptions()
	require.NoError(t, err)
	want, err := imports.WildcardThreshold(3)
	require.NoError(t, err)
	assert.Equal(t, want, opts.Policy)
	assert.Equal(t, "    ", opts.Indent)
	assert.True(t, opts.SkipBuiltin)
}

func TestLoadFromFile_Missing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestMergeConfigFiles_Precedence(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	dir := t.TempDir()
	user := filepath.Join(dir, "user.toml")
	project := filepath.Join(dir, "project.toml")
	require.NoError(t, os.WriteFile(user, []byte("[render]\nwildcard = \"always\"\nindent = \"\\t\"\n"), 0o644))
	require.NoError(t, os.WriteFile(project, []byte("[render]\nwildcard = \"2\"\n"), 0o644))

	v := viper.New()
	SetDefaults(v)
	mergeConfigFiles(v, []source{
		{SourceSystem, filepath.Join(dir, "absent.toml")},
		{SourceUser, user},
		{SourceProject, project},
	})

	cfg, err := LoadWithViper(v)
	require.NoError(t, err)
	assert.Equal(t, "2", cfg.Render.Wildcard)
	assert.Equal(t, "\t", cfg.Render.Indent)
	assert.Equal(t, SourceInfo{Source: SourceProject, Path: project}, Sources["render.wildcard"])
	assert.Equal(t, SourceInfo{Source: SourceUser, Path: user}, Sources["render.indent"])
}

func TestFindProjectConfig_WalksUp(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, FileName), []byte(""), 0o644))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(nested))
	t.Cleanup(func() { os.Chdir(wd) })

	found := findProjectConfig()
	want, err := filepath.EvalSymlinks(filepath.Join(root, FileName))
	require.NoError(t, err)
	got, err := filepath.EvalSymlinks(found)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	Reset()
	t.Cleanup(Reset)
	t.Setenv("POET_RENDER_WILDCARD", "always")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "always", cfg.Render.Wildcard)

	var found bool
	for _, s := range Settings() {
		if s.Key == "render.wildcard" {
			found = true
			assert.Equal(t, SourceEnvironment, s.Source)
			assert.Equal(t, "POET_RENDER_WILDCARD", s.SourcePath)
		}
	}
	assert.True(t, found)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{Render: RenderConfig{Indent: "  ", Wildcard: "disabled"}}
	}
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"tab indent", func(c *Config) { c.Render.Indent = "\t" }, false},
		{"empty wildcard means disabled", func(c *Config) { c.Render.Wildcard = "" }, false},
		{"threshold", func(c *Config) { c.Render.Wildcard = "4" }, false},
		{"text indent", func(c *Config) { c.Render.Indent = "ab" }, true},
		{"zero threshold is always", func(c *Config) { c.Render.Wildcard = "0" }, false},
		{"bogus wildcard", func(c *Config) { c.Render.Wildcard = "sometimes" }, true},
		{"negative debounce", func(c *Config) { c.Watch.DebounceMS = -1 }, true},
		{"zero debounce is default", func(c *Config) { c.Watch.DebounceMS = 0 }, false},
		{"negative verbosity", func(c *Config) { c.Log.Verbosity = -1 }, true},
		{"manifest without root", func(c *Config) { c.Filer.Manifest = "poet.db" }, true},
		{"same sink roots", func(c *Config) { c.Output.Dir = "gen"; c.Filer.Root = "gen" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsConfigurationError(err), "got %v", err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestSave_RotatesBackups(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", FileName)

	for i := 1; i <= 4; i++ {
		cfg := &Config{Render: RenderConfig{Indent: "  ", Wildcard: "disabled"}, Watch: WatchConfig{DebounceMS: i}}
		require.NoError(t, Save(cfg, path))
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var latest Config
	require.NoError(t, toml.Unmarshal(data, &latest))
	assert.Equal(t, 4, latest.Watch.DebounceMS)

	for n, want := range map[string]int{".back1": 3, ".back2": 2, ".back3": 1} {
		data, err := os.ReadFile(path + n)
		require.NoError(t, err, n)
		var backup Config
		require.NoError(t, toml.Unmarshal(data, &backup))
		assert.Equal(t, want, backup.Watch.DebounceMS, n)
		assert.True(t, IsBackupFile(path+n))
	}
	assert.False(t, IsBackupFile(path))
}

func TestSave_RejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	err := Save(&Config{Render: RenderConfig{Wildcard: "nope"}}, path)
	require.Error(t, err)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}
