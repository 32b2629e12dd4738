package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/workspyce/internal/engine"
	"github.com/danieljhkim/workspyce/internal/prompt"
)

var checkPlain bool

var checkCmd = &cobra.Command{
	Use:   "check [files...]",
	Short: "Record release intents for changed packages",
	Long: `Find the workspace packages touched by uncommitted changes and ask, once per
package, which kind of release it needs and what changed.

Each answer is stored as an intent record under the state directory and applied
later by "workspyce version". Packages that already have a pending record are
skipped. Answer anything other than major, minor or patch to skip a package.

Changed files come from "git status" unless files are given explicitly.`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&checkPlain, "plain", false, "Use line prompts even on a terminal")
}

func runCheck(cmd *cobra.Command, args []string) error {
	eng, err := newEngine(cmd, checkPlain)
	if err != nil {
		return err
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	req := &engine.CheckRequest{
		CWD:   cwd,
		Files: args,
	}

	result, err := eng.Check(cmd.Context(), req)
	if err != nil {
		if errors.Is(err, prompt.ErrAborted) && result != nil {
			printCheckResult(result)
			PrintWarning("Aborted; intents recorded so far are kept")
		}
		return err
	}

	if jsonOutput {
		return outputJSON(result)
	}

	printCheckResult(result)
	return nil
}

func printCheckResult(result *engine.CheckResult) {
	if result.Changed == 0 {
		PrintEmptyState("No changed files")
		return
	}

	for _, w := range result.Warnings {
		PrintWarning(w)
	}
	for _, fe := range result.Errors {
		PrintError(fmt.Sprintf("%s: %s", fe.Path, fe.Message))
	}

	if len(result.Skipped) > 0 {
		PrintSection("Skipped")
		for _, s := range result.Skipped {
			PrintLabelValue(s.Package, s.Reason)
		}
	}

	if len(result.Ignored) > 0 {
		PrintSection("Ignored")
		PrintNumberedList(result.Ignored, 1)
	}

	if len(result.Recorded) == 0 {
		PrintEmptyState("No release intents recorded")
		return
	}

	PrintSection("Recorded")
	for _, r := range result.Recorded {
		PrintRecorded(r)
	}
	fmt.Println()
	PrintInfo(fmt.Sprintf("%s recorded. Run \"workspyce version\" to apply.",
		PrintCount(len(result.Recorded), "intent", "intents")))
}
