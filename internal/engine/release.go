package engine

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

// Release builds every package in the release manifest, then publishes all
// artifacts once. The manifest is removed only after publishing succeeds.
// Without a manifest there is nothing to release and no command runs.
func (e *Engine) Release(ctx context.Context, req *ReleaseRequest) (*ReleaseResult, error) {
	manifest := e.manifest()

	entries, exists, err := manifest.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	log.Debug().Str("manifest", manifest.Path()).Bool("exists", exists).Int("entries", len(entries)).Msg("read release manifest")

	result := &ReleaseResult{}
	if !exists || len(entries) == 0 {
		result.NothingToRelease = true
		if exists {
			if err := manifest.Remove(); err != nil {
				return result, fmt.Errorf("%w: %w", ErrIO, err)
			}
		}
		return result, nil
	}

	if req.Token == "" && e.cfg.NeedsToken() {
		return result, fmt.Errorf("%w: a publish token is required to release %s", ErrValidation, manifest.Path())
	}

	for _, entry := range entries {
		log.Debug().Str("package", entry).Msg("building")
		if err := e.runner.Build(ctx, entry); err != nil {
			return result, fmt.Errorf("%w: building %s: %w", ErrSubprocess, entry, err)
		}
		result.Built = append(result.Built, entry)
	}

	log.Debug().Int("packages", len(result.Built)).Msg("publishing")
	if err := e.runner.Publish(ctx, req.Token); err != nil {
		return result, fmt.Errorf("%w: publishing: %w", ErrSubprocess, err)
	}
	result.Published = true

	if err := manifest.Remove(); err != nil {
		return result, fmt.Errorf("%w: %w", ErrIO, err)
	}
	return result, nil
}
