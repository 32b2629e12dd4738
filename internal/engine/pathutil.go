package engine

import (
	"fmt"
	"path/filepath"
	"strings"
)

// resolveToRootRelative resolves a user-provided path (absolute, relative, or containing "..")
// to a clean workspace-root-relative path. It rejects paths that escape the workspace or
// resolve to the workspace root itself.
func resolveToRootRelative(userPath, cwd, root string) (string, error) {
	var absPath string
	if filepath.IsAbs(userPath) {
		absPath = userPath
	} else {
		absPath = filepath.Join(cwd, userPath)
	}
	absPath = filepath.Clean(absPath)

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("failed to resolve workspace root %q: %w", root, err)
	}

	relPath, err := filepath.Rel(absRoot, absPath)
	if err != nil {
		return "", fmt.Errorf("failed to compute workspace-relative path for %q: %w", userPath, err)
	}

	// Reject paths outside the workspace
	if relPath == ".." || strings.HasPrefix(relPath, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path %q resolves to %q which is outside the workspace", userPath, absPath)
	}

	if relPath == "." {
		return "", fmt.Errorf("path %q resolves to the workspace root, which is not a package file", userPath)
	}

	return filepath.ToSlash(relPath), nil
}

// underRoot joins a workspace-relative path onto root. Absolute paths are
// returned unchanged.
func underRoot(root, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, filepath.FromSlash(path))
}
