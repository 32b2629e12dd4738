package engine

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/danieljhkim/workspyce/internal/bump"
	"github.com/danieljhkim/workspyce/internal/intent"
	"github.com/danieljhkim/workspyce/internal/prompt"
	"github.com/danieljhkim/workspyce/internal/pyproject"
	"github.com/danieljhkim/workspyce/internal/workspace"
)

// ignoreOption is offered after the bump kinds. Anything that is not a bump
// kind means ignore.
const ignoreOption = "ignore"

func kindOptions() []string {
	options := make([]string, 0, len(bump.Kinds)+1)
	for _, k := range bump.Kinds {
		options = append(options, string(k))
	}
	return append(options, ignoreOption)
}

// Check finds changed workspace packages and records one intent per package.
//
// Behavior:
// - Changed files come from git status (or req.Files) relative to the workspace root
// - Files outside the workspace members are ignored
// - Each file is mapped to its nearest package; lookup failures are reported per file
// - A package is prompted at most once per run and never while it has a pending record
// - Declined or unrecognized kinds write nothing
// - Cancelling ctx while a prompt is open writes nothing for that package
func (e *Engine) Check(ctx context.Context, req *CheckRequest) (*CheckResult, error) {
	paths := e.cfg.Paths

	ws, err := workspace.Load(paths.Pyproject)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}

	files, err := e.changedFiles(ctx, req)
	if err != nil {
		return nil, err
	}

	store := e.store()
	pending, bad, err := store.Pending()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}

	result := &CheckResult{Changed: len(files)}
	for _, name := range bad {
		result.Warnings = append(result.Warnings, fmt.Sprintf("unreadable intent record %s", store.Path(name)))
	}

	processed := make(map[string]bool)
	stateDirReady := false
	options := kindOptions()

	for _, file := range files {
		if ctx.Err() != nil {
			return result, cancelled(ctx)
		}

		if !ws.IsMember(file) {
			log.Debug().Str("file", file).Msg("not a workspace member")
			continue
		}

		pkgDir, err := pyproject.Locate(e.fs, underRoot(paths.Root, file))
		if err != nil {
			result.Errors = append(result.Errors, newFileError(file, fmt.Errorf("%w: %w", ErrNotFound, err)))
			continue
		}

		root, err := e.gitRepo.RelPath(paths.Root, pkgDir)
		if err != nil {
			result.Errors = append(result.Errors, newFileError(file, fmt.Errorf("%w: %w", ErrNotFound, err)))
			continue
		}
		root = filepath.ToSlash(root)

		data, err := e.fs.ReadFile(pyproject.Descriptor(pkgDir))
		if err != nil {
			result.Errors = append(result.Errors, newFileError(file, fmt.Errorf("%w: %w", ErrIO, err)))
			continue
		}
		name, err := pyproject.ReadName(data)
		if err != nil {
			result.Errors = append(result.Errors, newFileError(file, fmt.Errorf("%w: %s: %w", ErrParse, pyproject.Descriptor(pkgDir), err)))
			continue
		}

		if processed[name] {
			continue
		}
		processed[name] = true

		if ws.Excluded(root) {
			result.Skipped = append(result.Skipped, SkippedPackage{Package: name, Root: root, Reason: "excluded from the workspace"})
			continue
		}
		if recordFile, ok := pending[name]; ok {
			result.Skipped = append(result.Skipped, SkippedPackage{
				Package: name,
				Root:    root,
				Reason:  fmt.Sprintf("already has a pending release (%s)", recordFile),
			})
			continue
		}

		answer, err := e.prompter.Choose(ctx, fmt.Sprintf("%s changed (%s). Release kind?", name, root), options)
		if err != nil {
			return result, promptError(err)
		}
		if ctx.Err() != nil {
			return result, cancelled(ctx)
		}
		kind, ok := bump.ParseKind(answer)
		if !ok {
			log.Debug().Str("package", name).Str("answer", answer).Msg("ignoring package")
			result.Ignored = append(result.Ignored, name)
			continue
		}

		description, err := e.prompter.Ask(ctx, fmt.Sprintf("Describe the %s change to %s", kind, name), "what changed?")
		if err != nil {
			return result, promptError(err)
		}

		if !stateDirReady {
			if err := e.fs.MkdirAll(store.Dir(), 0755); err != nil {
				log.Warn().Err(err).Str("dir", store.Dir()).Msg("could not create state directory")
				result.Warnings = append(result.Warnings, fmt.Sprintf("could not create %s: %v", store.Dir(), err))
			}
			stateDirReady = true
		}

		rec := intent.Record{
			Package:     name,
			Pyproject:   filepath.ToSlash(filepath.Join(root, pyproject.FileName)),
			Release:     kind,
			Description: description,
		}
		if ctx.Err() != nil {
			return result, cancelled(ctx)
		}
		recordFile, err := store.Save(rec)
		if err != nil {
			result.Errors = append(result.Errors, newFileError(file, fmt.Errorf("%w: %w", ErrIO, err)))
			continue
		}
		log.Debug().Str("package", name).Str("record", recordFile).Msg("recorded intent")

		result.Recorded = append(result.Recorded, RecordedIntent{
			File:        recordFile,
			Package:     name,
			Root:        root,
			Kind:        kind,
			Description: description,
		})
	}

	return result, nil
}

func (e *Engine) changedFiles(ctx context.Context, req *CheckRequest) ([]string, error) {
	if len(req.Files) == 0 {
		repoRoot, err := e.gitRepo.Discover(e.cfg.Paths.Root)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrSubprocess, err)
		}
		log.Debug().Str("repo", repoRoot).Msg("reading changed files from git status")

		files, err := e.gitRepo.ChangedFiles(ctx, e.cfg.Paths.Root)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrSubprocess, err)
		}
		return files, nil
	}

	cwd := req.CWD
	if cwd == "" {
		cwd = "."
	}
	absCWD, err := filepath.Abs(cwd)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", cwd, err)
	}

	files := make([]string, 0, len(req.Files))
	for _, f := range req.Files {
		rel, err := resolveToRootRelative(f, absCWD, e.cfg.Paths.Root)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrValidation, err)
		}
		files = append(files, rel)
	}
	return files, nil
}

func newFileError(path string, err error) FileError {
	return FileError{Path: path, Err: err, Message: err.Error()}
}

// cancelled reports a cancelled run the same way a prompt abort is reported.
func cancelled(ctx context.Context) error {
	return fmt.Errorf("%w: %w", prompt.ErrAborted, context.Cause(ctx))
}

func promptError(err error) error {
	if errors.Is(err, prompt.ErrAborted) {
		return err
	}
	return fmt.Errorf("%w: prompt: %w", ErrIO, err)
}
