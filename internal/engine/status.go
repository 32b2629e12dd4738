package engine

import (
	"context"
	"fmt"
)

// Status reports pending intent records and the release manifest without
// changing anything.
func (e *Engine) Status(ctx context.Context, req *StatusRequest) (*StatusResult, error) {
	store := e.store()

	files, err := store.Files()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}

	result := &StatusResult{}
	for _, file := range files {
		rec, err := store.Load(file)
		if err != nil {
			result.Pending = append(result.Pending, PendingRecord{File: file, Error: err.Error()})
			continue
		}
		result.Pending = append(result.Pending, newPendingRecord(file, rec))
	}

	entries, exists, err := e.manifest().Read()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	result.Manifest = entries
	result.ManifestExists = exists

	return result, nil
}
