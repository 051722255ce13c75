package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/teranos/poet/config"
)

// ConfigCmd manages poet configuration
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Show and validate poet configuration",
	Long: `Display and manage poet configuration.

Configuration sources (in order of precedence):
1. Command line flags
2. Environment variables (POET_* prefix, e.g. POET_RENDER_WILDCARD)
3. Project config (nearest ./poet.toml walking up)
4. User config (~/.poet/poet.toml)
5. System config (/etc/poet/poet.toml)
6. Default values

Examples:
  poet config show                  # Show current configuration
  poet config show --format yaml    # Show configuration as YAML
  poet config get render.wildcard   # Get a specific value
  poet config sources               # Where each value came from
  poet config validate              # Validate current configuration
  poet config init                  # Write defaults to ./poet.toml`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a specific configuration value",
	Long:  "Get a specific configuration value using dot notation (e.g., render.wildcard, filer.root)",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate current configuration",
	RunE:  runConfigValidate,
}

var configSourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "Show where each configuration value came from",
	RunE:  runConfigSources,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration to a file",
	RunE:  runConfigInit,
}

func init() {
	configShowCmd.Flags().String("format", "toml", "Output format: toml, json, yaml")
	configInitCmd.Flags().Bool("user", false, "Write ~/.poet/poet.toml instead of ./poet.toml")

	ConfigCmd.AddCommand(configShowCmd)
	ConfigCmd.AddCommand(configGetCmd)
	ConfigCmd.AddCommand(configValidateCmd)
	ConfigCmd.AddCommand(configSourcesCmd)
	ConfigCmd.AddCommand(configInitCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	format, _ := cmd.Flags().GetString("format")
	data, err := marshalConfig(cfg, format)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), string(data))
	return nil
}

func marshalConfig(cfg *config.Config, format string) ([]byte, error) {
	switch format {
	case "json":
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal config to JSON: %w", err)
		}
		return append(data, '\n'), nil
	case "yaml":
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal config to YAML: %w", err)
		}
		return append([]byte("# poet configuration\n"), data...), nil
	case "toml":
		data, err := toml.Marshal(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal config to TOML: %w", err)
		}
		return append([]byte("# poet configuration\n"), data...), nil
	}
	return nil, fmt.Errorf("unsupported format: %s (supported: toml, json, yaml)", format)
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	key := args[0]
	if !config.GetViper().IsSet(key) {
		return fmt.Errorf("configuration key %q not found", key)
	}
	fmt.Fprintln(cmd.OutOrStdout(), config.Get(key))
	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		pterm.Error.Println("Configuration is invalid")
		return err
	}
	pterm.Success.Println("Configuration is valid")
	return nil
}

func runConfigSources(cmd *cobra.Command, args []string) error {
	data := pterm.TableData{{"Key", "Value", "Source", "From"}}
	for _, s := range config.Settings() {
		data = append(data, []string{s.Key, fmt.Sprint(s.Value), string(s.Source), s.SourcePath})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := config.FileName
	if user, _ := cmd.Flags().GetBool("user"); user {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to find home directory: %w", err)
		}
		path = filepath.Join(home, ".poet", config.FileName)
	}

	v := viper.New()
	config.SetDefaults(v)
	cfg, err := config.LoadWithViper(v)
	if err != nil {
		return err
	}
	if err := config.Save(cfg, path); err != nil {
		return err
	}
	pterm.Success.Printf("Wrote %s\n", path)
	return nil
}
