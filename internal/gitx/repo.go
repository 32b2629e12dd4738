package gitx

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// ErrNotRepository is returned when no enclosing git repository exists.
var ErrNotRepository = errors.New("not in a git repository")

// GitRepo provides an abstraction for git repository operations.
type GitRepo interface {
	// Discover finds the git repository root starting from cwd.
	Discover(cwd string) (root string, err error)

	// ChangedFiles lists paths with uncommitted changes, relative to dir.
	ChangedFiles(ctx context.Context, dir string) ([]string, error)

	// RelPath computes the relative path from root to the given path.
	RelPath(root, path string) (string, error)
}

// RealGitRepo implements GitRepo using actual git commands.
type RealGitRepo struct{}

// NewRealGitRepo creates a new RealGitRepo.
func NewRealGitRepo() *RealGitRepo {
	return &RealGitRepo{}
}

// Discover finds the git repository root by walking up from cwd looking for .git directory.
func (g *RealGitRepo) Discover(cwd string) (string, error) {
	absPath, err := filepath.Abs(cwd)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}

	current := absPath
	for {
		gitDir := filepath.Join(current, ".git")
		if info, err := os.Stat(gitDir); err == nil {
			// .git can be a directory or a file (for worktrees/submodules)
			if info.IsDir() || info.Mode().IsRegular() {
				return current, nil
			}
		}

		parent := filepath.Dir(current)
		if parent == current {
			return "", ErrNotRepository
		}
		current = parent
	}
}

// ChangedFiles runs `git status --short` in dir and returns the changed paths.
func (g *RealGitRepo) ChangedFiles(ctx context.Context, dir string) ([]string, error) {
	cmd := exec.CommandContext(ctx, "git", "status", "--short")
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("git status failed: %w, detail: %s", err, strings.TrimSpace(stderr.String()))
	}
	return ParseShortStatus(stdout.String()), nil
}

// RelPath computes the relative path from root to path. Paths outside root
// are rejected.
func (g *RealGitRepo) RelPath(root, path string) (string, error) {
	return relPath(root, path)
}

func relPath(root, path string) (string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute root: %w", err)
	}

	absTarget, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute target: %w", err)
	}

	rel, err := filepath.Rel(absRoot, absTarget)
	if err != nil {
		return "", fmt.Errorf("failed to compute relative path: %w", err)
	}

	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path %s is outside %s", path, root)
	}

	return rel, nil
}

// FakeGitRepo implements GitRepo with predetermined values for testing.
type FakeGitRepo struct {
	root    string
	changed []string
	err     error
	calls   int
}

// NewFakeGitRepo creates a new FakeGitRepo reporting changed as the status output.
func NewFakeGitRepo(root string, changed ...string) *FakeGitRepo {
	return &FakeGitRepo{root: root, changed: changed}
}

// SetError sets an error to be returned by all methods.
func (g *FakeGitRepo) SetError(err error) {
	g.err = err
}

// Calls returns how many times ChangedFiles ran.
func (g *FakeGitRepo) Calls() int {
	return g.calls
}

// Discover returns the predetermined root.
func (g *FakeGitRepo) Discover(cwd string) (string, error) {
	if g.err != nil {
		return "", g.err
	}
	return g.root, nil
}

// ChangedFiles returns the predetermined paths.
func (g *FakeGitRepo) ChangedFiles(ctx context.Context, dir string) ([]string, error) {
	g.calls++
	if g.err != nil {
		return nil, g.err
	}
	return append([]string(nil), g.changed...), nil
}

// RelPath computes the relative path (works like real implementation).
func (g *FakeGitRepo) RelPath(root, path string) (string, error) {
	if g.err != nil {
		return "", g.err
	}
	return relPath(root, path)
}
