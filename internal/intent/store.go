package intent

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/danieljhkim/workspyce/internal/clock"
	"github.com/danieljhkim/workspyce/internal/fsops"
)

// Extension is the suffix of every record file.
const Extension = ".md"

// Namer produces the random suffix of record file names.
type Namer interface {
	Generate() string
}

type uuidNamer struct{}

// NewNamer returns a Namer yielding the first group of a random UUID.
func NewNamer() Namer {
	return uuidNamer{}
}

func (uuidNamer) Generate() string {
	id := uuid.NewString()
	return id[:strings.IndexByte(id, '-')]
}

// Store reads and writes records in the state directory.
type Store struct {
	fs    fsops.FS
	dir   string
	clock clock.Clock
	names Namer
}

// NewStore creates a Store rooted at dir.
func NewStore(fs fsops.FS, dir string, c clock.Clock, names Namer) *Store {
	return &Store{fs: fs, dir: dir, clock: c, names: names}
}

// Dir returns the state directory.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the full path of a record file.
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, name)
}

// Save writes r to a new file and returns its name. Names start with a UTC
// timestamp so listing order follows creation order.
func (s *Store) Save(r Record) (string, error) {
	data, err := Marshal(r)
	if err != nil {
		return "", err
	}

	name, err := s.newName()
	if err != nil {
		return "", err
	}
	if err := s.fs.AtomicWrite(s.Path(name), data, 0644); err != nil {
		return "", fmt.Errorf("writing intent record: %w", err)
	}
	return name, nil
}

// Rewrite replaces the content of an existing record file.
func (s *Store) Rewrite(name string, r Record) error {
	if err := s.fs.ValidateIdentifier(name); err != nil {
		return err
	}
	data, err := Marshal(r)
	if err != nil {
		return err
	}
	if err := s.fs.AtomicWrite(s.Path(name), data, 0644); err != nil {
		return fmt.Errorf("rewriting %s: %w", s.Path(name), err)
	}
	return nil
}

func (s *Store) newName() (string, error) {
	stamp := clock.Stamp(s.clock)
	for attempt := 0; attempt < 8; attempt++ {
		name := stamp + "-" + s.names.Generate() + Extension
		if err := s.fs.ValidateIdentifier(name); err != nil {
			return "", err
		}
		exists, err := s.fs.Exists(s.Path(name))
		if err != nil {
			return "", err
		}
		if !exists {
			return name, nil
		}
	}
	return "", fmt.Errorf("could not find a free record name in %s", s.dir)
}

// Files lists record file names sorted ascending. A missing state directory
// holds no records.
func (s *Store) Files() ([]string, error) {
	entries, err := s.fs.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("listing %s: %w", s.dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), Extension) {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}

// Load reads and parses one record file.
func (s *Store) Load(name string) (Record, error) {
	data, err := s.fs.ReadFile(s.Path(name))
	if err != nil {
		return Record{}, fmt.Errorf("reading %s: %w", s.Path(name), err)
	}
	r, err := Parse(data)
	if err != nil {
		return Record{}, fmt.Errorf("%s: %w", s.Path(name), err)
	}
	return r, nil
}

// Delete removes a consumed record.
func (s *Store) Delete(name string) error {
	if err := s.fs.ValidateIdentifier(name); err != nil {
		return err
	}
	if err := s.fs.Remove(s.Path(name)); err != nil {
		return fmt.Errorf("removing %s: %w", s.Path(name), err)
	}
	return nil
}

// Pending maps each package with a readable pending record to the file
// holding its earliest record. Unreadable records are returned in bad.
func (s *Store) Pending() (pending map[string]string, bad []string, err error) {
	names, err := s.Files()
	if err != nil {
		return nil, nil, err
	}
	pending = make(map[string]string, len(names))
	for _, name := range names {
		r, err := s.Load(name)
		if err != nil {
			bad = append(bad, name)
			continue
		}
		if _, seen := pending[r.Package]; !seen {
			pending[r.Package] = name
		}
	}
	return pending, bad, nil
}
