package ai

import (
	"context"
	"log/slog"
	"time"

	"github.com/skugraph/skugraph/core"
)

// EntryCache is the persistence surface the cached normalizer needs.
// Satisfied by storage.NormalizationCache implementations.
type EntryCache interface {
	GetEntry(ctx context.Context, id core.ID) (*core.CacheEntry, error)
	PutEntry(ctx context.Context, entry *core.CacheEntry) error
}

// CachedNormalizer fronts a Normalizer with a persistent token cache.
// Catalog specification keys repeat heavily across rows, so a warm cache
// removes almost all model calls on re-runs.
type CachedNormalizer struct {
	inner  Normalizer
	cache  EntryCache
	logger *slog.Logger
}

// NewCachedNormalizer wraps inner with cache.
// Returns Normalizer interface for consistency with production constructors.
func NewCachedNormalizer(inner Normalizer, cache EntryCache) Normalizer {
	return &CachedNormalizer{
		inner:  inner,
		cache:  cache,
		logger: slog.Default().With("component", "normalizer-cache"),
	}
}

// Normalize returns the cached output for token when present, otherwise
// delegates to the inner normalizer and stores the result.
func (n *CachedNormalizer) Normalize(ctx context.Context, token string) (string, error) {
	id := core.IDFromContent(token)

	entry, err := n.cache.GetEntry(ctx, id)
	if err == nil && entry != nil && entry.Token == token {
		return entry.Output, nil
	}

	output, err := n.inner.Normalize(ctx, token)
	if err != nil {
		return "", err
	}

	putErr := n.cache.PutEntry(ctx, &core.CacheEntry{
		Token:      token,
		Output:     output,
		InsertedAt: time.Now().UTC(),
	})
	if putErr != nil {
		// Cache write failures never fail the call itself.
		n.logger.Warn("failed to store cache entry", "token", token, "error", putErr)
	}

	return output, nil
}
