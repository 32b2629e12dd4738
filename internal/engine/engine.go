// Package engine provides the core business logic for workspyce operations.
//
// The engine package acts as the orchestration layer between CLI commands and
// lower-level operations. All state between operations lives on disk: intent
// records and the release manifest in the state directory, package versions
// in their descriptors, and the shared changelog.
//
// Key components:
//   - Engine: Main orchestrator that coordinates all operations
//   - Check: Detects changed packages and records bump intents
//   - Version: Applies pending intents to descriptors and the changelog
//   - Release: Builds and publishes the packages listed in the manifest
//   - Status: Reports pending intents and the release manifest
package engine

import (
	"github.com/danieljhkim/workspyce/internal/clock"
	"github.com/danieljhkim/workspyce/internal/config"
	"github.com/danieljhkim/workspyce/internal/fsops"
	"github.com/danieljhkim/workspyce/internal/gitx"
	"github.com/danieljhkim/workspyce/internal/intent"
	"github.com/danieljhkim/workspyce/internal/pkgmgr"
	"github.com/danieljhkim/workspyce/internal/prompt"
	"github.com/danieljhkim/workspyce/internal/release"
)

// Engine orchestrates all workspyce operations.
// It is the main API surface called by the CLI.
type Engine struct {
	gitRepo  gitx.GitRepo
	fs       fsops.FS
	clock    clock.Clock
	names    intent.Namer
	prompter prompt.Prompter
	runner   pkgmgr.Runner
	cfg      *config.Config
}

// New creates a new Engine with the given dependencies.
func New(
	gitRepo gitx.GitRepo,
	fs fsops.FS,
	clk clock.Clock,
	names intent.Namer,
	prompter prompt.Prompter,
	runner pkgmgr.Runner,
	cfg *config.Config,
) *Engine {
	return &Engine{
		gitRepo:  gitRepo,
		fs:       fs,
		clock:    clk,
		names:    names,
		prompter: prompter,
		runner:   runner,
		cfg:      cfg,
	}
}

// Config returns the configuration the engine was built with.
func (e *Engine) Config() *config.Config {
	return e.cfg
}

func (e *Engine) store() *intent.Store {
	return intent.NewStore(e.fs, e.cfg.Paths.StateDir, e.clock, e.names)
}

func (e *Engine) manifest() *release.Manifest {
	return release.NewManifest(e.fs, e.cfg.Paths.ReleaseManifest)
}
