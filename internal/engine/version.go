package engine

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/danieljhkim/workspyce/internal/bump"
	"github.com/danieljhkim/workspyce/internal/changelog"
	"github.com/danieljhkim/workspyce/internal/fsops"
	"github.com/danieljhkim/workspyce/internal/intent"
	"github.com/danieljhkim/workspyce/internal/pyproject"
	"github.com/danieljhkim/workspyce/internal/release"
)

// Version applies every pending intent record, oldest first.
//
// Per record, in order:
// - note the planned from/to versions in the record itself
// - bump the descriptor version (structural rewrite, atomic)
// - prepend "## <package> <version>" with the description to the changelog
// - rewrite the release manifest with the package roots accumulated so far
// - delete the record
//
// Any failure aborts the run. Records already processed stay applied and
// deleted; the failing record and those after it stay pending. A record left
// with from/to whose descriptor already reads the "to" version is resumed:
// the descriptor is not bumped again and a changelog that already leads with
// its section is not prepended twice.
func (e *Engine) Version(ctx context.Context, req *VersionRequest) (*VersionResult, error) {
	store := e.store()
	manifest := e.manifest()

	files, err := store.Files()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}

	result := &VersionResult{DryRun: req.DryRun}

	// planned holds rewritten descriptors so a dry run sees earlier bumps.
	planned := make(map[string][]byte)
	var entries []string

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		rec, err := store.Load(file)
		if err != nil {
			if errors.Is(err, intent.ErrMalformed) {
				return result, fmt.Errorf("%w: %w", ErrParse, err)
			}
			return result, fmt.Errorf("%w: %w", ErrIO, err)
		}

		descriptor := underRoot(e.cfg.Paths.Root, rec.Pyproject)
		root := packageRoot(rec.Pyproject)

		data, ok := planned[descriptor]
		if !ok {
			data, err = e.fs.ReadFile(descriptor)
			if err != nil {
				return result, fmt.Errorf("%w: reading %s: %w", ErrIO, descriptor, err)
			}
		}

		current, err := pyproject.ReadVersion(data)
		if err != nil {
			return result, fmt.Errorf("%w: %s: %w", ErrParse, descriptor, err)
		}

		b := Bump{
			Record:  file,
			Package: rec.Package,
			Root:    root,
			Kind:    rec.Release,
		}
		updated := data
		if rec.InFlight() && current == rec.To {
			b.OldVersion, b.NewVersion, b.Resumed = rec.From, rec.To, true
			log.Warn().Str("package", rec.Package).Str("record", file).Str("version", current).
				Msg("resuming interrupted bump")
		} else {
			next, err := bump.Apply(current, rec.Release)
			if err != nil {
				return result, fmt.Errorf("%w: %s: %w", ErrParse, descriptor, err)
			}
			updated, err = pyproject.SetVersion(data, current, next)
			if err != nil {
				return result, fmt.Errorf("%w: %s: %w", ErrParse, descriptor, err)
			}
			b.OldVersion, b.NewVersion = current, next
		}
		planned[descriptor] = updated
		entries = append(entries, root)

		if !req.DryRun {
			if err := e.applyBump(store, manifest, file, descriptor, updated, rec, b, entries); err != nil {
				return result, err
			}
		}
		log.Debug().Str("package", b.Package).Str("from", b.OldVersion).Str("to", b.NewVersion).Bool("dry_run", req.DryRun).Msg("bumped")

		result.Bumps = append(result.Bumps, b)
	}

	result.Manifest = release.Dedupe(entries)
	return result, nil
}

func (e *Engine) applyBump(
	store *intent.Store,
	manifest *release.Manifest,
	file, descriptor string,
	updated []byte,
	rec intent.Record,
	b Bump,
	entries []string,
) error {
	section := changelog.Section{Package: rec.Package, Version: b.NewVersion, Body: rec.Description}
	logged := false

	if b.Resumed {
		leads, err := changelog.Leads(e.fs, e.cfg.Paths.Changelog, section)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrIO, err)
		}
		logged = leads
	} else {
		rec.From, rec.To = b.OldVersion, b.NewVersion
		if err := store.Rewrite(file, rec); err != nil {
			return fmt.Errorf("%w: %w", ErrIO, err)
		}
		if err := e.fs.AtomicWrite(descriptor, updated, fsops.FileMode(e.fs, descriptor, 0644)); err != nil {
			return fmt.Errorf("%w: writing %s: %w", ErrIO, descriptor, err)
		}
	}

	if !logged {
		if err := changelog.Prepend(e.fs, e.cfg.Paths.Changelog, section); err != nil {
			return fmt.Errorf("%w: %w", ErrIO, err)
		}
	}

	if err := manifest.Write(entries); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	log.Debug().Str("manifest", manifest.Path()).Int("entries", len(entries)).Msg("wrote release manifest")

	if err := store.Delete(file); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	return nil
}

// packageRoot derives the manifest entry for a descriptor path.
func packageRoot(descriptor string) string {
	dir := path.Dir(strings.ReplaceAll(descriptor, "\\", "/"))
	if dir == "" {
		return "."
	}
	return dir
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return s
}
