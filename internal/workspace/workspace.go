// Package workspace resolves which changed files belong to a uv workspace.
//
// Members are read from the [tool.uv.workspace] table of the root
// pyproject.toml. Each member entry becomes an unanchored regular expression
// in which every "*" stands for ".*"; a path is a member when any pattern
// matches anywhere inside it. Exclusions use glob semantics and apply to
// package roots.
package workspace

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/bmatcuk/doublestar/v4"
)

var (
	// ErrNoMembers indicates the members declaration is absent or empty.
	ErrNoMembers = errors.New("no workspace members declared")

	// ErrBadPattern indicates a member or exclude entry that cannot be compiled.
	ErrBadPattern = errors.New("invalid workspace pattern")
)

// Workspace holds the compiled member patterns and exclude globs.
type Workspace struct {
	patterns []*regexp.Regexp
	exclude  []string
}

type manifestFile struct {
	Tool struct {
		UV struct {
			Workspace struct {
				Members []string `toml:"members"`
				Exclude []string `toml:"exclude"`
			} `toml:"workspace"`
		} `toml:"uv"`
	} `toml:"tool"`
}

// Load reads the workspace declaration from the pyproject at path.
func Load(path string) (*Workspace, error) {
	var raw manifestFile
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return nil, fmt.Errorf("reading workspace manifest %s: %w", path, err)
	}
	if !meta.IsDefined("tool", "uv", "workspace", "members") {
		return nil, fmt.Errorf("%w: %s has no [tool.uv.workspace] members, are you in a uv workspace?", ErrNoMembers, path)
	}
	return New(raw.Tool.UV.Workspace.Members, raw.Tool.UV.Workspace.Exclude)
}

// New compiles members and validates exclude globs.
func New(members, exclude []string) (*Workspace, error) {
	patterns, err := Compile(members)
	if err != nil {
		return nil, err
	}
	for _, glob := range exclude {
		if !doublestar.ValidatePattern(filepath.ToSlash(glob)) {
			return nil, fmt.Errorf("%w: exclude %q", ErrBadPattern, glob)
		}
	}
	return &Workspace{patterns: patterns, exclude: exclude}, nil
}

// Translate converts one member entry into its regular expression source:
// surrounding whitespace and quotes are stripped and "*" becomes ".*".
func Translate(member string) string {
	m := strings.TrimSpace(member)
	m = strings.ReplaceAll(m, `"`, "")
	return strings.ReplaceAll(m, "*", ".*")
}

// Compile translates and compiles member entries, preserving order.
func Compile(members []string) ([]*regexp.Regexp, error) {
	if len(members) == 0 {
		return nil, ErrNoMembers
	}
	patterns := make([]*regexp.Regexp, 0, len(members))
	for _, member := range members {
		src := Translate(member)
		if src == "" {
			return nil, fmt.Errorf("%w: empty member entry", ErrBadPattern)
		}
		re, err := regexp.Compile(src)
		if err != nil {
			return nil, fmt.Errorf("%w: member %q: %w", ErrBadPattern, member, err)
		}
		patterns = append(patterns, re)
	}
	return patterns, nil
}

// Patterns returns the regular expression sources, one per member.
func (w *Workspace) Patterns() []string {
	out := make([]string, len(w.patterns))
	for i, re := range w.patterns {
		out[i] = re.String()
	}
	return out
}

// IsMember reports whether any member pattern matches inside path.
func (w *Workspace) IsMember(path string) bool {
	return IsMember(w.patterns, path)
}

// IsMember reports whether any of patterns matches inside path.
func IsMember(patterns []*regexp.Regexp, path string) bool {
	for _, re := range patterns {
		if re.MatchString(path) {
			return true
		}
	}
	return false
}

// Excluded reports whether a package root matches one of the exclude globs.
func (w *Workspace) Excluded(pkgRoot string) bool {
	root := filepath.ToSlash(filepath.Clean(pkgRoot))
	for _, glob := range w.exclude {
		if ok, err := doublestar.Match(filepath.ToSlash(glob), root); err == nil && ok {
			return true
		}
	}
	return false
}
