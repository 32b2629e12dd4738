// Package pyproject reads and rewrites Python package descriptors.
package pyproject

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/danieljhkim/workspyce/internal/fsops"
)

// FileName is the descriptor file every package root contains.
const FileName = "pyproject.toml"

var (
	// ErrNotFound indicates no descriptor exists at or above a path.
	ErrNotFound = errors.New("no pyproject.toml found")

	// ErrMissingField indicates a descriptor without a name or version.
	ErrMissingField = errors.New("missing project field")
)

// Project is the identity a descriptor declares.
type Project struct {
	Name    string
	Version string
}

type descriptor struct {
	Project struct {
		Name    string `toml:"name"`
		Version string `toml:"version"`
	} `toml:"project"`
	Tool struct {
		Poetry struct {
			Name    string `toml:"name"`
			Version string `toml:"version"`
		} `toml:"poetry"`
	} `toml:"tool"`
}

// Locate returns the nearest directory at or above path that contains a
// descriptor. Relative paths finish with the current directory.
func Locate(fs fsops.FS, path string) (string, error) {
	dir := filepath.Clean(path)
	if info, err := fs.Stat(dir); err == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		ok, err := fs.Exists(candidate)
		if err != nil {
			return "", fmt.Errorf("checking %s: %w", candidate, err)
		}
		if ok {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", fmt.Errorf("%w for %s", ErrNotFound, path)
}

// ReadProject extracts the package name and version from descriptor bytes.
// The [project] table wins; [tool.poetry] is consulted for fields it lacks.
func ReadProject(data []byte) (Project, error) {
	var d descriptor
	if _, err := toml.Decode(string(data), &d); err != nil {
		return Project{}, fmt.Errorf("parsing descriptor: %w", err)
	}
	p := Project{Name: d.Project.Name, Version: d.Project.Version}
	if p.Name == "" {
		p.Name = d.Tool.Poetry.Name
	}
	if p.Version == "" {
		p.Version = d.Tool.Poetry.Version
	}
	return p, nil
}

// Descriptor returns the descriptor path inside a package root.
func Descriptor(root string) string {
	return filepath.Join(root, FileName)
}

// ReadName returns the declared package name.
func ReadName(data []byte) (string, error) {
	p, err := ReadProject(data)
	if err != nil {
		return "", err
	}
	if p.Name == "" {
		return "", fmt.Errorf("%w: name", ErrMissingField)
	}
	return p.Name, nil
}

// ReadVersion returns the declared package version.
func ReadVersion(data []byte) (string, error) {
	p, err := ReadProject(data)
	if err != nil {
		return "", err
	}
	if p.Version == "" {
		return "", fmt.Errorf("%w: version", ErrMissingField)
	}
	return p.Version, nil
}
