package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/teranos/poet/cmd/poet/commands"
	"github.com/teranos/poet/config"
	"github.com/teranos/poet/errors"
	"github.com/teranos/poet/logger"
)

var rootCmd = &cobra.Command{
	Use:   "poet",
	Short: "poet - Java source files from declaration documents",
	Long: `poet - Render Java source files with a minimal, collision-free import list.

Each declaration document (YAML or TOML) describes one top-level type. poet
renders it twice: a dry run that collects every referenced class, then the
real run with the planned imports.

Available commands:
  render   - Render documents to stdout, a directory, or the tracked filer
  watch    - Re-render documents when they change
  manifest - Inspect artifacts recorded by the filer
  config   - Show and validate configuration
  version  - Show version information

Examples:
  poet render greeter.yaml                  # Print Greeter.java
  poet render *.yaml --out src/main/java    # Write below a source root
  poet render greeter.yaml --wildcard 3     # Collapse 3+ names into pkg.*
  poet watch *.yaml --out src/main/java     # Re-render on change`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbosity, _ := cmd.Flags().GetCount("verbose")
		jsonLogs := false
		if cfg, err := config.Load(); err == nil {
			jsonLogs = cfg.Log.JSON
			if cfg.Log.Verbosity > verbosity {
				verbosity = cfg.Log.Verbosity
			}
		}
		if err := logger.Initialize(jsonLogs, verbosity); err != nil {
			return errors.Wrap(err, "failed to initialize logger")
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv)")

	rootCmd.AddCommand(commands.RenderCmd)
	rootCmd.AddCommand(commands.WatchCmd)
	rootCmd.AddCommand(commands.ManifestCmd)
	rootCmd.AddCommand(commands.ConfigCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	defer logger.Cleanup()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		for _, hint := range errors.GetAllHints(err) {
			fmt.Fprintf(os.Stderr, "hint: %s\n", hint)
		}
		logger.Cleanup()
		os.Exit(1)
	}
}
