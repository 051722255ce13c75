package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teranos/poet/decl"
	"github.com/teranos/poet/display"
	"github.com/teranos/poet/version"
)

// VersionCmd represents the version command
var VersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show poet version information",
	Long:  `Display version, build time, commit hash, platform and supported document versions.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		info := version.Get(decl.SupportedVersions)
		out := cmd.OutOrStdout()

		if display.ShouldOutputJSON(cmd) {
			return display.OutputJSON(out, info)
		}
		fmt.Fprintln(out, info.String())
		fmt.Fprintf(out, "Platform: %s\n", info.Platform)
		fmt.Fprintf(out, "Go: %s\n", info.GoVersion)
		fmt.Fprintf(out, "Documents: %s\n", info.Documents)
		return nil
	},
}

func init() {
	VersionCmd.Flags().BoolP("json", "j", false, "Output version info as JSON")
}
