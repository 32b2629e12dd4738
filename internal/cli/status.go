package cli

import (
	"github.com/spf13/cobra"

	"github.com/danieljhkim/workspyce/internal/engine"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show pending intents and the release manifest",
	Long: `Show the intent records waiting for "workspyce version" and the packages
waiting for "workspyce release". Nothing is changed.`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	eng, err := newEngine(cmd, false)
	if err != nil {
		return err
	}

	result, err := eng.Status(cmd.Context(), &engine.StatusRequest{})
	if err != nil {
		return err
	}

	if jsonOutput {
		return outputJSON(result)
	}

	PrintSection("Pending intents")
	PrintPending(result.Pending)

	PrintSection("Release manifest")
	PrintManifest(result.Manifest, result.ManifestExists)
	return nil
}
