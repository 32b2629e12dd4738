package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/workspyce/internal/engine"
)

var versionDryRun bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Apply pending intents to versions and the changelog",
	Long: `Apply every pending intent record, oldest first.

For each record the package version is bumped in its pyproject.toml, a
"## <package> <version>" section is prepended to the changelog, the package is
added to the release manifest and the record is deleted.

A failure stops the run. Records applied before the failure stay applied. A
record interrupted after its version was written is resumed on the next run
without bumping the version again.`,
	Args: cobra.NoArgs,
	RunE: runVersion,
}

func init() {
	versionCmd.Flags().BoolVar(&versionDryRun, "dry-run", false, "Show the bumps without changing any file")
}

func runVersion(cmd *cobra.Command, args []string) error {
	eng, err := newEngine(cmd, false)
	if err != nil {
		return err
	}

	result, err := eng.Version(cmd.Context(), &engine.VersionRequest{DryRun: versionDryRun})
	if err != nil {
		if result != nil && len(result.Bumps) > 0 && !jsonOutput {
			printBumps(result)
		}
		return err
	}

	if jsonOutput {
		return outputJSON(result)
	}

	if len(result.Bumps) == 0 {
		PrintEmptyState("No pending intent records")
		return nil
	}

	printBumps(result)

	if result.DryRun {
		PrintSection("Would release")
	} else {
		PrintSection("Release manifest")
	}
	PrintManifest(result.Manifest, true)
	return nil
}

func printBumps(result *engine.VersionResult) {
	title := "Bumped"
	if result.DryRun {
		title = "Planned (dry run)"
	}
	PrintSection(title)

	PrintBumps(result.Bumps)

	if !result.DryRun {
		fmt.Println()
		PrintSuccess(fmt.Sprintf("Applied %s", PrintCount(len(result.Bumps), "intent", "intents")))
	}
}
