package storage

import (
	"context"

	"github.com/skugraph/skugraph/core"
)

// NormalizationCache stores text normalizer outputs keyed by the content
// hash of the input token. Implementations must be thread-safe: the cache
// is hit concurrently from parser pool workers.
type NormalizationCache interface {
	// GetEntry retrieves a cache entry by token hash.
	// Returns ErrNotFound if no entry exists for the ID.
	GetEntry(ctx context.Context, id core.ID) (*core.CacheEntry, error)

	// PutEntry stores a cache entry under the content hash of its token.
	// Sets InsertedAt if not already set. Overwrites any previous entry.
	PutEntry(ctx context.Context, entry *core.CacheEntry) error
}

// CheckpointRepository persists load progress per source label so an
// interrupted load can resume past its already-committed batches.
type CheckpointRepository interface {
	// SaveCheckpoint persists a checkpoint for a source.
	// Updates the UpdatedAt timestamp automatically.
	SaveCheckpoint(ctx context.Context, checkpoint *core.Checkpoint) error

	// LoadCheckpoint retrieves the checkpoint for a source.
	// Returns nil, nil if no checkpoint exists.
	LoadCheckpoint(ctx context.Context, source string) (*core.Checkpoint, error)

	// DeleteCheckpoint removes the checkpoint for a source.
	// Removing a checkpoint that does not exist is not an error.
	DeleteCheckpoint(ctx context.Context, source string) error
}
