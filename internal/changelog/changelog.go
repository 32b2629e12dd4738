// Package changelog maintains the cumulative, newest-first changelog.
package changelog

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/danieljhkim/workspyce/internal/fsops"
)

// Section is one release entry.
type Section struct {
	Package string
	Version string
	Body    string
}

// Render formats a section as a level two heading followed by the body.
func (s Section) Render() string {
	var b strings.Builder
	b.WriteString("## ")
	b.WriteString(s.Package)
	if s.Version != "" {
		b.WriteString(" ")
		b.WriteString(s.Version)
	}
	b.WriteString("\n\n")
	if body := strings.TrimSpace(s.Body); body != "" {
		b.WriteString(body)
		b.WriteString("\n\n")
	}
	return b.String()
}

// Leads reports whether the changelog at path already starts with section.
// A missing changelog leads with nothing.
func Leads(fs fsops.FS, path string, section Section) (bool, error) {
	existing, err := fs.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("reading changelog %s: %w", path, err)
	}
	return strings.HasPrefix(string(existing), section.Render()), nil
}

// Prepend places section above the existing content of the changelog at
// path, creating the file when it does not exist yet.
func Prepend(fs fsops.FS, path string, section Section) error {
	existing, err := fs.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("reading changelog %s: %w", path, err)
	}

	data := append([]byte(section.Render()), existing...)
	if err := fs.AtomicWrite(path, data, fsops.FileMode(fs, path, 0644)); err != nil {
		return fmt.Errorf("writing changelog %s: %w", path, err)
	}
	return nil
}
