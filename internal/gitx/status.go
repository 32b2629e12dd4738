// Package gitx wraps the git commands workspyce needs to find changed files.
package gitx

import (
	"regexp"
	"strconv"
	"strings"
)

// statusPrefix matches the one or two status characters of a short status
// line and the whitespace that follows them.
var statusPrefix = regexp.MustCompile(`^\s*[MTADRCU?!]{1,2}\s+`)

// ParseShortStatus extracts paths from `git status --short` output. Status
// codes are stripped, renames resolve to their new path, quoted paths are
// unquoted and blank lines are dropped.
func ParseShortStatus(out string) []string {
	var paths []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		path := strings.TrimSpace(statusPrefix.ReplaceAllString(line, ""))
		if i := strings.Index(path, " -> "); i >= 0 {
			path = path[i+len(" -> "):]
		}
		path = unquote(path)
		if path != "" {
			paths = append(paths, path)
		}
	}
	return paths
}

func unquote(path string) string {
	if len(path) >= 2 && path[0] == '"' && path[len(path)-1] == '"' {
		if s, err := strconv.Unquote(path); err == nil {
			return s
		}
	}
	return path
}
