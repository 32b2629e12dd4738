// Package pkgmgr drives the package manager's build and publish steps.
package pkgmgr

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/danieljhkim/workspyce/internal/config"
)

// ErrCommandFailed indicates the package manager could not be started or
// exited non-zero.
var ErrCommandFailed = errors.New("package manager command failed")

// Runner builds packages and publishes their artifacts.
type Runner interface {
	// Build builds the package rooted at path.
	Build(ctx context.Context, path string) error

	// Publish uploads every artifact built so far.
	Publish(ctx context.Context, token string) error
}

// Command runs the configured argv templates as subprocesses in Dir.
// Output is streamed to Stdout and Stderr; stderr is also captured for
// the error message.
type Command struct {
	Dir            string
	BuildCommand   []string
	PublishCommand []string
	Stdout         io.Writer
	Stderr         io.Writer
}

// NewCommand creates a Command from configuration.
func NewCommand(cfg *config.Config, stdout, stderr io.Writer) *Command {
	return &Command{
		Dir:            cfg.Paths.Root,
		BuildCommand:   cfg.BuildCommand,
		PublishCommand: cfg.PublishCommand,
		Stdout:         stdout,
		Stderr:         stderr,
	}
}

// Build runs the build command with the package path substituted.
func (c *Command) Build(ctx context.Context, path string) error {
	argv := config.Expand(c.BuildCommand, config.PathPlaceholder, path)
	return c.run(ctx, argv, argv)
}

// Publish runs the publish command with the token substituted. The token is
// masked in error messages.
func (c *Command) Publish(ctx context.Context, token string) error {
	argv := config.Expand(c.PublishCommand, config.TokenPlaceholder, token)
	shown := config.Expand(c.PublishCommand, config.TokenPlaceholder, "***")
	return c.run(ctx, argv, shown)
}

func (c *Command) run(ctx context.Context, argv, shown []string) error {
	if len(argv) == 0 {
		return fmt.Errorf("%w: empty command", ErrCommandFailed)
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = c.Dir

	var stderr bytes.Buffer
	cmd.Stdout = c.Stdout
	if c.Stderr != nil {
		cmd.Stderr = io.MultiWriter(c.Stderr, &stderr)
	} else {
		cmd.Stderr = &stderr
	}

	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail == "" {
			return fmt.Errorf("%w: %s: %w", ErrCommandFailed, strings.Join(shown, " "), err)
		}
		return fmt.Errorf("%w: %s: %w, detail: %s", ErrCommandFailed, strings.Join(shown, " "), err, detail)
	}
	return nil
}

// FakeRunner records calls for testing.
type FakeRunner struct {
	Built      []string
	Published  []string
	BuildErr   map[string]error
	PublishErr error
}

// NewFakeRunner creates a FakeRunner.
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{BuildErr: map[string]error{}}
}

// Build records path and returns the configured error for it.
func (f *FakeRunner) Build(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.Built = append(f.Built, path)
	return f.BuildErr[path]
}

// Publish records token and returns PublishErr.
func (f *FakeRunner) Publish(ctx context.Context, token string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.Published = append(f.Published, token)
	return f.PublishErr
}
