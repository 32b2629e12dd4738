package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Placeholders substituted into the build and publish argv templates.
const (
	PathPlaceholder  = "{path}"
	TokenPlaceholder = "{token}"
)

var (
	// DefaultBuildCommand builds one package into the shared dist/ directory.
	DefaultBuildCommand = []string{"uv", "build", PathPlaceholder}

	// DefaultPublishCommand uploads everything built so far.
	DefaultPublishCommand = []string{"uv", "publish", "--token", TokenPlaceholder}
)

// Config is the resolved configuration for one invocation.
type Config struct {
	Paths Paths

	// BuildCommand is the argv run once per released package.
	BuildCommand []string

	// PublishCommand is the argv run once after all builds.
	PublishCommand []string

	// FromFile reports whether the root pyproject was found and read.
	FromFile bool
}

type fileConfig struct {
	StateDir       string   `toml:"state-dir"`
	Changelog      string   `toml:"changelog"`
	BuildCommand   []string `toml:"build-command"`
	PublishCommand []string `toml:"publish-command"`
}

type pyprojectFile struct {
	Tool struct {
		Workspyce fileConfig `toml:"workspyce"`
	} `toml:"tool"`
}

// Load resolves the configuration for the workspace declared by pyproject.
// A missing pyproject yields the defaults; callers that need the file (check)
// fail later when resolving the workspace members.
func Load(pyproject string) (*Config, error) {
	cfg := &Config{
		Paths:          DefaultPaths(pyproject),
		BuildCommand:   append([]string(nil), DefaultBuildCommand...),
		PublishCommand: append([]string(nil), DefaultPublishCommand...),
	}

	var raw pyprojectFile
	meta, err := toml.DecodeFile(cfg.Paths.Pyproject, &raw)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("load workspyce config (%s): %w", cfg.Paths.Pyproject, err)
	}
	cfg.FromFile = true

	tool := raw.Tool.Workspyce
	if meta.IsDefined("tool", "workspyce", "state-dir") && os.Getenv(EnvStateDir) == "" {
		cfg.Paths.StateDir = cfg.Paths.resolve(strings.TrimSpace(tool.StateDir))
		cfg.Paths.ReleaseManifest = filepath.Join(cfg.Paths.StateDir, ReleaseManifestName)
	}
	if meta.IsDefined("tool", "workspyce", "changelog") && os.Getenv(EnvChangelog) == "" {
		cfg.Paths.Changelog = cfg.Paths.resolve(strings.TrimSpace(tool.Changelog))
	}
	if meta.IsDefined("tool", "workspyce", "build-command") {
		cfg.BuildCommand = tool.BuildCommand
	}
	if meta.IsDefined("tool", "workspyce", "publish-command") {
		cfg.PublishCommand = tool.PublishCommand
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid [tool.workspyce] in %s: %w", cfg.Paths.Pyproject, err)
	}
	return cfg, nil
}

// Validate checks the resolved configuration.
func Validate(cfg *Config) error {
	if strings.TrimSpace(cfg.Paths.StateDir) == "" || cfg.Paths.StateDir == cfg.Paths.Root {
		return fmt.Errorf("state-dir must name a directory inside the workspace")
	}
	if strings.TrimSpace(cfg.Paths.Changelog) == "" {
		return fmt.Errorf("changelog must not be empty")
	}
	if len(cfg.BuildCommand) == 0 || strings.TrimSpace(cfg.BuildCommand[0]) == "" {
		return fmt.Errorf("build-command must name an executable")
	}
	if !containsArg(cfg.BuildCommand, PathPlaceholder) {
		return fmt.Errorf("build-command must contain %s", PathPlaceholder)
	}
	if len(cfg.PublishCommand) == 0 || strings.TrimSpace(cfg.PublishCommand[0]) == "" {
		return fmt.Errorf("publish-command must name an executable")
	}
	return nil
}

func containsArg(argv []string, placeholder string) bool {
	for _, a := range argv {
		if strings.Contains(a, placeholder) {
			return true
		}
	}
	return false
}

// Expand substitutes placeholder with value in every argument of argv.
func Expand(argv []string, placeholder, value string) []string {
	out := make([]string, len(argv))
	for i, a := range argv {
		out[i] = strings.ReplaceAll(a, placeholder, value)
	}
	return out
}

// NeedsToken reports whether the publish command consumes a credential.
func (c *Config) NeedsToken() bool {
	return containsArg(c.PublishCommand, TokenPlaceholder)
}
