// Package intent persists pending version-bump decisions.
//
// A record is a small markdown document: a YAML front matter block naming
// the package, its descriptor path and the bump kind, followed by the free
// text change description.
//
//	---
//	package: coding-agent
//	pyproject: packages/coding_agent/pyproject.toml
//	release: minor
//	---
//	add feature
//
// While "workspyce version" applies a record it first writes the planned
// transition into the front matter as from/to. A record that still carries
// them after an interrupted run marks a bump that may already be on disk.
package intent

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/danieljhkim/workspyce/internal/bump"
)

// ErrMalformed indicates a record that is missing front matter or a field.
var ErrMalformed = errors.New("malformed intent record")

const delimiter = "---"

// Record is one pending bump for one package.
type Record struct {
	Package     string
	Pyproject   string
	Release     bump.Kind
	Description string

	// From and To are the versions of a bump in flight. Both are empty
	// until the version step starts applying the record.
	From string
	To   string
}

// InFlight reports whether a previous version run started applying r.
func (r Record) InFlight() bool {
	return r.To != ""
}

type frontMatter struct {
	Package   string `yaml:"package"`
	Pyproject string `yaml:"pyproject"`
	Release   string `yaml:"release"`
	From      string `yaml:"from,omitempty"`
	To        string `yaml:"to,omitempty"`
}

// Marshal renders a record document.
func Marshal(r Record) ([]byte, error) {
	if !r.Release.Valid() {
		return nil, fmt.Errorf("%w %q", bump.ErrUnknownKind, r.Release)
	}
	if (r.From == "") != (r.To == "") {
		return nil, fmt.Errorf("%w: from and to must be set together", ErrMalformed)
	}
	head, err := yaml.Marshal(frontMatter{
		Package:   r.Package,
		Pyproject: r.Pyproject,
		Release:   string(r.Release),
		From:      r.From,
		To:        r.To,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding front matter: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString(delimiter + "\n")
	buf.Write(head)
	buf.WriteString(delimiter + "\n")
	buf.WriteString(r.Description)
	if r.Description != "" && !strings.HasSuffix(r.Description, "\n") {
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

// Parse decodes a record document. Every front matter field is required and
// the bump kind must be one of major, minor or patch.
func Parse(data []byte) (Record, error) {
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	if !strings.HasPrefix(text, delimiter+"\n") {
		return Record{}, fmt.Errorf("%w: no front matter", ErrMalformed)
	}
	rest := text[len(delimiter)+1:]

	var head, body string
	switch {
	case strings.HasPrefix(rest, delimiter+"\n"):
		body = rest[len(delimiter)+1:]
	case rest == delimiter:
	default:
		end := strings.Index(rest, "\n"+delimiter+"\n")
		if end < 0 {
			if !strings.HasSuffix(rest, "\n"+delimiter) {
				return Record{}, fmt.Errorf("%w: unterminated front matter", ErrMalformed)
			}
			end = len(rest) - len(delimiter) - 1
			head = rest[:end]
		} else {
			head = rest[:end]
			body = rest[end+len(delimiter)+2:]
		}
	}

	var fm frontMatter
	if err := yaml.Unmarshal([]byte(head), &fm); err != nil {
		return Record{}, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	var missing []string
	if fm.Package == "" {
		missing = append(missing, "package")
	}
	if fm.Pyproject == "" {
		missing = append(missing, "pyproject")
	}
	if fm.Release == "" {
		missing = append(missing, "release")
	}
	if len(missing) > 0 {
		return Record{}, fmt.Errorf("%w: missing %s", ErrMalformed, strings.Join(missing, ", "))
	}

	kind, ok := bump.ParseKind(fm.Release)
	if !ok {
		return Record{}, fmt.Errorf("%w: %w %q", ErrMalformed, bump.ErrUnknownKind, fm.Release)
	}

	if (fm.From == "") != (fm.To == "") {
		return Record{}, fmt.Errorf("%w: from and to must be set together", ErrMalformed)
	}
	for _, v := range []string{fm.From, fm.To} {
		if v == "" {
			continue
		}
		if _, err := bump.ParseVersion(v); err != nil {
			return Record{}, fmt.Errorf("%w: %w", ErrMalformed, err)
		}
	}

	return Record{
		Package:     fm.Package,
		Pyproject:   fm.Pyproject,
		Release:     kind,
		Description: strings.TrimRight(body, "\n"),
		From:        fm.From,
		To:          fm.To,
	}, nil
}
