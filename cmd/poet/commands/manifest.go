package commands

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/poet/config"
	"github.com/teranos/poet/display"
	"github.com/teranos/poet/filer"
)

// ManifestCmd inspects the filer manifest
var ManifestCmd = &cobra.Command{
	Use:   "manifest",
	Short: "Inspect artifacts recorded by the filer",
	Long: `Inspect the artifacts the filer sink recorded.

Examples:
  poet manifest ls                            # List every artifact
  poet manifest ls --from demo.app.GreeterSpec  # Artifacts generated from an element`,
}

var manifestLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List recorded artifacts",
	Args:  cobra.NoArgs,
	RunE:  runManifestLs,
}

func init() {
	manifestLsCmd.Flags().String("from", "", "Only artifacts generated from this element")
	manifestLsCmd.Flags().String("manifest", "", "Manifest database (default filer.manifest)")
	manifestLsCmd.Flags().BoolP("json", "j", false, "Output as JSON")
	ManifestCmd.AddCommand(manifestLsCmd)
}

func runManifestLs(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("manifest")
	if path == "" {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		path = cfg.Filer.Manifest
	}
	m, err := filer.OpenManifest(path)
	if err != nil {
		return err
	}
	defer m.Close()

	from, _ := cmd.Flags().GetString("from")
	var artifacts []filer.Artifact
	if from != "" {
		artifacts, err = m.ArtifactsFrom(from)
	} else {
		artifacts, err = m.Artifacts()
	}
	if err != nil {
		return err
	}

	if display.ShouldOutputJSON(cmd) {
		return display.OutputJSON(cmd.OutOrStdout(), artifacts)
	}

	if len(artifacts) == 0 {
		pterm.Info.Println("No artifacts recorded")
		return nil
	}
	return pterm.DefaultTable.WithHasHeader().WithData(artifactTable(artifacts)).Render()
}

func artifactTable(artifacts []filer.Artifact) pterm.TableData {
	data := pterm.TableData{{"Name", "Status", "Bytes", "Path", "Origins"}}
	for _, a := range artifacts {
		data = append(data, []string{
			a.Name,
			a.Status,
			fmt.Sprint(a.Bytes),
			a.Path,
			strings.Join(a.Origins, ", "),
		})
	}
	return data
}
