package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/workspyce/internal/engine"
)

var releaseToken string

var releaseCmd = &cobra.Command{
	Use:   "release",
	Short: "Build and publish the packages in the release manifest",
	Long: `Build every package listed in the release manifest written by
"workspyce version", then publish all built artifacts with a single publish
command. The manifest is removed once publishing succeeds.

The token comes from --token, or from WORKSPYCE_PUBLISH_TOKEN or
UV_PUBLISH_TOKEN when the flag is not given.`,
	Args: cobra.NoArgs,
	RunE: runRelease,
}

func init() {
	releaseCmd.Flags().StringVar(&releaseToken, "token", "", "Credential passed to the publish command")
}

func runRelease(cmd *cobra.Command, args []string) error {
	eng, err := newEngine(cmd, false)
	if err != nil {
		return err
	}

	req := &engine.ReleaseRequest{
		Token: resolveToken(releaseToken, os.Getenv),
	}

	result, err := eng.Release(cmd.Context(), req)
	if err != nil {
		if result != nil && len(result.Built) > 0 && !jsonOutput {
			PrintSection("Built before the failure")
			PrintNumberedList(result.Built, 1)
		}
		return err
	}

	if jsonOutput {
		return outputJSON(result)
	}

	if result.NothingToRelease {
		PrintEmptyState("Nothing to release")
		return nil
	}

	PrintSection("Built")
	PrintNumberedList(result.Built, 1)
	fmt.Println()
	PrintSuccess(fmt.Sprintf("Published %s", PrintCount(len(result.Built), "package", "packages")))
	return nil
}
