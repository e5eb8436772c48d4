package badger

import (
	"context"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/skugraph/skugraph/core"
	"github.com/skugraph/skugraph/storage"
)

// CacheRepository implements storage.NormalizationCache for BadgerDB.
type CacheRepository struct {
	backend *Backend
}

var _ storage.NormalizationCache = (*CacheRepository)(nil)

// NewCacheRepository creates a new CacheRepository.
func NewCacheRepository(backend *Backend) *CacheRepository {
	return &CacheRepository{
		backend: backend,
	}
}

// GetEntry retrieves a cache entry by token hash.
func (r *CacheRepository) GetEntry(ctx context.Context, id core.ID) (*core.CacheEntry, error) {
	var entry *core.CacheEntry
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeCacheKey(id))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return storage.ErrNotFound
			}
			return err
		}

		return item.Value(func(val []byte) error {
			var unmarshalErr error
			entry, unmarshalErr = storage.UnmarshalCacheEntry(val)
			return unmarshalErr
		})
	}, false)

	if err != nil {
		return nil, err
	}
	return entry, nil
}

// PutEntry stores a cache entry under the content hash of its token.
func (r *CacheRepository) PutEntry(ctx context.Context, entry *core.CacheEntry) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		if entry.InsertedAt.IsZero() {
			entry.InsertedAt = time.Now().UTC()
		}
		key := makeCacheKey(core.IDFromContent(entry.Token))
		value := storage.MarshalCacheEntry(entry)
		if err := tx.Set(key, value); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}
