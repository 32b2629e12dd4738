// Package config manages workspyce configuration and filesystem paths.
//
// All state lives next to the workspace: the root pyproject.toml, the
// .workspyce/ state directory holding intent records and the release
// manifest, and the shared CHANGELOG.md. Locations can be customized in the
// [tool.workspyce] table of the root pyproject or via environment variables.
package config

import (
	"os"
	"path/filepath"
)

const (
	// DefaultPyproject is the workspace manifest read when --pyproject is not given.
	DefaultPyproject = "pyproject.toml"

	// DefaultStateDir is the state directory name, relative to the workspace root.
	DefaultStateDir = ".workspyce"

	// DefaultChangelog is the changelog file name, relative to the workspace root.
	DefaultChangelog = "CHANGELOG.md"

	// ReleaseManifestName is the release manifest file inside the state directory.
	ReleaseManifestName = "release.txt"

	EnvStateDir  = "WORKSPYCE_STATE_DIR"
	EnvChangelog = "WORKSPYCE_CHANGELOG"
)

// Paths contains all the filesystem paths used by workspyce.
type Paths struct {
	// Root is the workspace root (directory of the root pyproject)
	Root string

	// Pyproject is the root pyproject.toml declaring the workspace members
	Pyproject string

	// StateDir holds pending intent records and the release manifest
	StateDir string

	// Changelog is the shared changelog document
	Changelog string

	// ReleaseManifest lists package roots awaiting build and publish
	ReleaseManifest string
}

// DefaultPaths returns the default paths for a workspace whose root manifest
// is pyproject. Paths can be overridden with environment variables:
//   - WORKSPYCE_STATE_DIR: Override the state directory
//   - WORKSPYCE_CHANGELOG: Override the changelog file
func DefaultPaths(pyproject string) Paths {
	if pyproject == "" {
		pyproject = DefaultPyproject
	}
	root := filepath.Dir(pyproject)

	p := Paths{
		Root:      root,
		Pyproject: pyproject,
		StateDir:  filepath.Join(root, DefaultStateDir),
		Changelog: filepath.Join(root, DefaultChangelog),
	}
	p.applyEnv()
	p.ReleaseManifest = filepath.Join(p.StateDir, ReleaseManifestName)
	return p
}

func (p *Paths) applyEnv() {
	if dir := os.Getenv(EnvStateDir); dir != "" {
		p.StateDir = p.resolve(dir)
	}
	if file := os.Getenv(EnvChangelog); file != "" {
		p.Changelog = p.resolve(file)
	}
}

// resolve interprets a configured path relative to the workspace root.
func (p *Paths) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(p.Root, path)
}
