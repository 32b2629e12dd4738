// Package release manages the manifest of package roots awaiting build and
// publish.
package release

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/danieljhkim/workspyce/internal/fsops"
)

// Manifest is the on-disk release list.
type Manifest struct {
	fs   fsops.FS
	path string
}

// NewManifest returns a Manifest stored at path.
func NewManifest(fs fsops.FS, path string) *Manifest {
	return &Manifest{fs: fs, path: path}
}

// Path returns the manifest location.
func (m *Manifest) Path() string {
	return m.path
}

// Read returns the non-empty, trimmed entries. exists is false when there is
// no manifest, which means there is nothing to release.
func (m *Manifest) Read() (entries []string, exists bool, err error) {
	data, err := m.fs.ReadFile(m.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("reading release manifest %s: %w", m.path, err)
	}
	return Parse(string(data)), true, nil
}

// Write replaces the manifest with entries, one per line, dropping
// duplicates while keeping first-seen order.
func (m *Manifest) Write(entries []string) error {
	data := Format(entries)
	if err := m.fs.AtomicWrite(m.path, []byte(data), 0644); err != nil {
		return fmt.Errorf("writing release manifest %s: %w", m.path, err)
	}
	return nil
}

// Remove deletes the manifest. A missing manifest is not an error.
func (m *Manifest) Remove() error {
	if err := m.fs.Remove(m.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing release manifest %s: %w", m.path, err)
	}
	return nil
}

// Parse splits manifest text into entries, skipping blank lines.
func Parse(text string) []string {
	var entries []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			entries = append(entries, line)
		}
	}
	return entries
}

// Format renders entries newline-joined with a trailing newline.
func Format(entries []string) string {
	var b strings.Builder
	for _, e := range Dedupe(entries) {
		b.WriteString(e)
		b.WriteByte('\n')
	}
	return b.String()
}

// Dedupe drops repeated entries, keeping the first occurrence.
func Dedupe(entries []string) []string {
	seen := make(map[string]bool, len(entries))
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		if seen[e] {
			continue
		}
		seen[e] = true
		out = append(out, e)
	}
	return out
}
