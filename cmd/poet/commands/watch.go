package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/poet/config"
	"github.com/teranos/poet/errors"
	"github.com/teranos/poet/logger"
	"github.com/teranos/poet/watch"
)

// WatchCmd re-renders documents when they change
var WatchCmd = &cobra.Command{
	Use:   "watch <doc>...",
	Short: "Re-render documents whenever they change",
	Long: `Render every document once, then watch them and re-render each one
after it changes. Runs until interrupted.

A sink is required: --out, --filer, or output.dir in poet.toml.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runWatch,
}

func init() {
	addRenderFlags(WatchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
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
	if s.out == "" && s.root == "" {
		return errors.WithHint(
			errors.NewConfigurationError("watch needs a directory sink"),
			"pass --out DIR or --filer DIR")
	}

	render := func(path string) error {
		session, err := s.session()
		if err != nil {
			return err
		}
		if err := renderDocument(path, opts, s, session); err != nil {
			pterm.Error.Printf("%s: %v\n", path, err)
			return err
		}
		return nil
	}
	for _, path := range args {
		// A broken document should not keep the others from being watched
		_ = render(path)
	}

	w, err := watch.New(args, cfg.Debounce())
	if err != nil {
		return err
	}
	w.OnChange(render)
	w.Start()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	pterm.Info.Printf("Watching %d document(s), press Ctrl+C to stop\n", len(args))
	logger.Infow("Watch started", logger.FieldCount, len(args))

	<-ctx.Done()
	return w.Stop()
}
