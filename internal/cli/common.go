package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/danieljhkim/workspyce/internal/clock"
	"github.com/danieljhkim/workspyce/internal/config"
	"github.com/danieljhkim/workspyce/internal/engine"
	"github.com/danieljhkim/workspyce/internal/fsops"
	"github.com/danieljhkim/workspyce/internal/gitx"
	"github.com/danieljhkim/workspyce/internal/intent"
	"github.com/danieljhkim/workspyce/internal/pkgmgr"
	"github.com/danieljhkim/workspyce/internal/prompt"
)

// Environment variables consulted for the publish token, in order.
const (
	EnvPublishToken   = "WORKSPYCE_PUBLISH_TOKEN"
	EnvUVPublishToken = "UV_PUBLISH_TOKEN"
)

// newEngine creates a new engine with real implementations of all dependencies.
// With --json, prompts and subprocess output go to stderr so stdout stays
// machine readable.
func newEngine(cmd *cobra.Command, plain bool) (*engine.Engine, error) {
	cfg, err := config.Load(pyprojectPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", engine.ErrConfig, err)
	}

	var out io.Writer = os.Stdout
	if jsonOutput {
		out = os.Stderr
	}

	fs := fsops.NewRealFS()
	gitRepo := gitx.NewRealGitRepo()
	clk := &clock.RealClock{}
	prompter := newPrompter(cmd.InOrStdin(), out, plain)
	runner := pkgmgr.NewCommand(cfg, out, os.Stderr)

	return engine.New(gitRepo, fs, clk, intent.NewNamer(), prompter, runner, cfg), nil
}

// newPrompter picks the interactive prompter when in is a terminal and the
// line prompter otherwise.
func newPrompter(in io.Reader, out io.Writer, plain bool) prompt.Prompter {
	if f, ok := in.(*os.File); ok && !plain && term.IsTerminal(int(f.Fd())) {
		return prompt.NewTUI(in, out)
	}
	return prompt.NewLine(in, out)
}

// resolveToken returns the explicit token, or the first non-empty token
// environment variable.
func resolveToken(flag string, getenv func(string) string) string {
	if strings.TrimSpace(flag) != "" {
		return strings.TrimSpace(flag)
	}
	for _, key := range []string{EnvPublishToken, EnvUVPublishToken} {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
	}
	return ""
}

// formatJSON formats a value as JSON.
func formatJSON(v interface{}) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// FormatError formats an error for display.
func FormatError(err error) string {
	return errorColor.Sprintf("Error: %v", err)
}

// outputJSON outputs a value as JSON to stdout.
func outputJSON(v interface{}) error {
	out, err := formatJSON(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(os.Stdout, out)
	return err
}
