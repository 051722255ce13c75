package commands

import (
	"io"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/poet/config"
	"github.com/teranos/poet/decl"
	"github.com/teranos/poet/errors"
	"github.com/teranos/poet/filer"
	"github.com/teranos/poet/imports"
	"github.com/teranos/poet/logger"
	"github.com/teranos/poet/poet"
)

// RenderCmd renders declaration documents
var RenderCmd = &cobra.Command{
	Use:   "render <doc>...",
	Short: "Render declaration documents to Java source",
	Long: `Render each declaration document to Java source.

Without --out or --filer the source is written to stdout. --out writes below a
source root following the package layout. --filer does the same but records
every artifact, and the elements it came from, in the manifest database.

Flags override poet.toml; documents override both.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRender,
}

func init() {
	addRenderFlags(RenderCmd)
}

func addRenderFlags(cmd *cobra.Command) {
	cmd.Flags().String("out", "", "Write files below this source root")
	cmd.Flags().String("filer", "", "Write files below this root and record them in the manifest")
	cmd.Flags().String("manifest", "", "Manifest database used with --filer")
	cmd.Flags().String("wildcard", "", "Wildcard policy: disabled, always, or a threshold N")
	cmd.Flags().Bool("skip-builtin", true,
		"Never import java.lang. On by default here, unlike the poet library; pass --skip-builtin=false to match library output")
	cmd.Flags().String("indent", "", "Indentation unit")
}

// sink is where rendered files go. Exactly one of out, root or stdout is used.
type sink struct {
	out      string
	root     string
	manifest *filer.Manifest
	stdout   io.Writer
}

func (s *sink) Close() error {
	if s.manifest != nil {
		return s.manifest.Close()
	}
	return nil
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	opts, err := renderOptions(cmd, cfg)
	if err != nil {
		return err
	}
	s, err := openSink(cmd, cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	session, err := s.session()
	if err != nil {
		return err
	}
	for _, path := range args {
		if err := renderDocument(path, opts, s, session); err != nil {
			return err
		}
	}
	return nil
}

// renderOptions merges configuration with flags that were set explicitly.
func renderOptions(cmd *cobra.Command, cfg *config.Config) (decl.Options, error) {
	opts, err := cfg.RenderOptions()
	if err != nil {
		return decl.Options{}, err
	}
	flags := cmd.Flags()
	if flags.Changed("wildcard") {
		s, _ := flags.GetString("wildcard")
		if opts.Policy, err = imports.ParseWildcardPolicy(s); err != nil {
			return decl.Options{}, err
		}
	}
	if flags.Changed("skip-builtin") {
		opts.SkipBuiltin, _ = flags.GetBool("skip-builtin")
	}
	if flags.Changed("indent") {
		opts.Indent, _ = flags.GetString("indent")
	}
	return opts, nil
}

func openSink(cmd *cobra.Command, cfg *config.Config) (*sink, error) {
	flags := cmd.Flags()
	out, _ := flags.GetString("out")
	root, _ := flags.GetString("filer")
	if out != "" && root != "" {
		return nil, errors.NewConfigurationError("--out and --filer are mutually exclusive")
	}
	if out == "" && root == "" {
		out = cfg.Output.Dir
	}
	s := &sink{out: out, root: root, stdout: cmd.OutOrStdout()}
	if root == "" {
		return s, nil
	}

	path, _ := flags.GetString("manifest")
	if path == "" {
		path = cfg.Filer.Manifest
	}
	if path != "" {
		m, err := filer.OpenManifest(path)
		if err != nil {
			return nil, err
		}
		s.manifest = m
	}
	return s, nil
}

// session returns a fresh filer for one render pass, or nil when the sink is
// not a filer. Each class may be created once per session.
func (s *sink) session() (*filer.Filer, error) {
	if s.root == "" {
		return nil, nil
	}
	return filer.New(s.root, s.manifest)
}

func renderDocument(path string, opts decl.Options, s *sink, session *filer.Filer) error {
	f, err := decl.Load(path, opts)
	if err != nil {
		return err
	}
	switch {
	case session != nil:
		if err := f.WriteToFiler(session); err != nil {
			return err
		}
		pterm.Success.Printf("%s -> %s\n", path, session.PathFor(f.QualifiedName()))
	case s.out != "":
		written, err := f.WriteToDir(s.out)
		if err != nil {
			return err
		}
		pterm.Success.Printf("%s -> %s\n", path, written)
	default:
		if _, err := f.WriteTo(s.stdout); err != nil {
			return err
		}
	}
	logger.Debugw("Document rendered",
		logger.FieldPath, path,
		logger.FieldType, f.QualifiedName())
	return nil
}

var _ poet.Filer = (*filer.Filer)(nil)
