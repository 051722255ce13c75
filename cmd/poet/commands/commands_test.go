package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/poet/config"
	"github.com/teranos/poet/decl"
	"github.com/teranos/poet/errors"
	"github.com/teranos/poet/filer"
	"github.com/teranos/poet/imports"
	"github.com/teranos/poet/version"
)

const greeterDoc = `
version: "1.0"
package: demo.app
type:
  name: Greeter
  modifiers: [public]
  originating: [demo.app.GreeterSpec]
  fields:
    - name: first
      type: demo.a.Alpha
    - name: second
      type: demo.a.Beta
`

func writeDoc(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "greeter.yaml")
	require.NoError(t, os.WriteFile(path, []byte(greeterDoc), 0o644))
	return path
}

func defaultConfig() *config.Config {
	return &config.Config{
		Render: config.RenderConfig{Indent: "  ", Wildcard: "disabled", SkipBuiltin: true},
	}
}

func newRenderCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "render"}
	addRenderFlags(cmd)
	return cmd
}

func TestRenderOptions_FlagsOverrideConfig(t *testing.T) {
	cmd := newRenderCmd()
	require.NoError(t, cmd.Flags().Parse([]string{"--wildcard", "2", "--indent", "\t", "--skip-builtin=false"}))

	opts, err := renderOptions(cmd, defaultConfig())
	require.NoError(t, err)
	want, err := imports.WildcardThreshold(2)
	require.NoError(t, err)
	assert.Equal(t, want, opts.Policy)
	assert.Equal(t, "\t", opts.Indent)
	assert.False(t, opts.SkipBuiltin)
}

func TestRenderOptions_ConfigWhenFlagsUnset(t *testing.T) {
	opts, err := renderOptions(newRenderCmd(), defaultConfig())
	require.NoError(t, err)
	assert.Equal(t, imports.WildcardDisabled, opts.Policy)
	assert.Equal(t, "  ", opts.Indent)
	assert.True(t, opts.SkipBuiltin)
}

func TestRenderFlags_SkipBuiltinHelpNamesLibraryDefault(t *testing.T) {
	flag := newRenderCmd().Flags().Lookup("skip-builtin")
	require.NotNil(t, flag)
	assert.Equal(t, "true", flag.DefValue)
	assert.Contains(t, flag.Usage, "unlike the poet library")
	assert.Contains(t, flag.Usage, "--skip-builtin=false")
}

func TestRenderOptions_BadWildcard(t *testing.T) {
	cmd := newRenderCmd()
	require.NoError(t, cmd.Flags().Parse([]string{"--wildcard", "lots"}))
	_, err := renderOptions(cmd, defaultConfig())
	require.Error(t, err)
	assert.True(t, errors.IsConfigurationError(err))
}

func TestOpenSink_Exclusive(t *testing.T) {
	cmd := newRenderCmd()
	require.NoError(t, cmd.Flags().Parse([]string{"--out", "a", "--filer", "b"}))
	_, err := openSink(cmd, defaultConfig())
	require.Error(t, err)
	assert.True(t, errors.IsConfigurationError(err))
}

func TestRenderDocument_Stdout(t *testing.T) {
	var out bytes.Buffer
	s := &sink{stdout: &out}

	require.NoError(t, renderDocument(writeDoc(t), decl.Options{SkipBuiltin: true}, s, nil))
	assert.Contains(t, out.String(), "package demo.app;\n")
	assert.Contains(t, out.String(), "import demo.a.Alpha;\nimport demo.a.Beta;\n")
}

func TestRenderDocument_Dir(t *testing.T) {
	root := t.TempDir()
	s := &sink{out: root}

	require.NoError(t, renderDocument(writeDoc(t), decl.Options{}, s, nil))
	_, err := os.Stat(filepath.Join(root, "demo", "app", "Greeter.java"))
	assert.NoError(t, err)
}

func TestRenderDocument_Filer(t *testing.T) {
	root := t.TempDir()
	m, err := filer.OpenManifest(filepath.Join(t.TempDir(), "poet.db"))
	require.NoError(t, err)
	s := &sink{root: root, manifest: m}
	defer s.Close()

	doc := writeDoc(t)
	session, err := s.session()
	require.NoError(t, err)
	require.NoError(t, renderDocument(doc, decl.Options{}, s, session))

	// A second pass needs a new session, as watch mode does.
	session, err = s.session()
	require.NoError(t, err)
	require.NoError(t, renderDocument(doc, decl.Options{}, s, session))

	artifacts, err := m.ArtifactsFrom("demo.app.GreeterSpec")
	require.NoError(t, err)
	require.Len(t, artifacts, 1)
	assert.Equal(t, filer.StatusWritten, artifacts[0].Status)

	table := artifactTable(artifacts)
	require.Len(t, table, 2)
	assert.Equal(t, "demo.app.Greeter", table[1][0])
	assert.Equal(t, "demo.app.GreeterSpec", table[1][4])
}

func TestMarshalConfig(t *testing.T) {
	cfg := defaultConfig()

	for _, format := range []string{"toml", "yaml", "json"} {
		data, err := marshalConfig(cfg, format)
		require.NoError(t, err, format)
		assert.Contains(t, string(data), "skip_builtin", format)
	}

	data, err := marshalConfig(cfg, "json")
	require.NoError(t, err)
	var back config.Config
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, *cfg, back)

	_, err = marshalConfig(cfg, "ini")
	assert.Error(t, err)
}

func TestVersionCmd_JSON(t *testing.T) {
	var out bytes.Buffer
	VersionCmd.SetOut(&out)
	require.NoError(t, VersionCmd.Flags().Set("json", "true"))
	t.Cleanup(func() { VersionCmd.Flags().Set("json", "false") })

	require.NoError(t, VersionCmd.RunE(VersionCmd, nil))

	var info version.Info
	require.NoError(t, json.Unmarshal(out.Bytes(), &info))
	assert.Equal(t, decl.SupportedVersions, info.Documents)
}
