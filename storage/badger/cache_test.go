package badger

import (
	"context"
	"testing"
	"time"

	"github.com/skugraph/skugraph/core"
	"github.com/skugraph/skugraph/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheRepository_PutGet(t *testing.T) {
	cache, _, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer backend.Close()

	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	entry := &core.CacheEntry{
		Token:      "ProductDimensions",
		Output:     "product dimensions",
		InsertedAt: now,
	}

	err = cache.PutEntry(ctx, entry)
	require.NoError(t, err)

	got, err := cache.GetEntry(ctx, core.IDFromContent("ProductDimensions"))
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "ProductDimensions", got.Token)
	assert.Equal(t, "product dimensions", got.Output)
	assert.True(t, now.Equal(got.InsertedAt))
}

func TestCacheRepository_PutStampsInsertedAt(t *testing.T) {
	cache, _, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer backend.Close()

	ctx := context.Background()

	err = cache.PutEntry(ctx, &core.CacheEntry{Token: "ItemWeight", Output: "item weight"})
	require.NoError(t, err)

	got, err := cache.GetEntry(ctx, core.IDFromContent("ItemWeight"))
	require.NoError(t, err)
	assert.False(t, got.InsertedAt.IsZero())
}

func TestCacheRepository_GetMissing(t *testing.T) {
	cache, _, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer backend.Close()

	_, err = cache.GetEntry(context.Background(), core.IDFromContent("never stored"))
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestCacheRepository_Overwrite(t *testing.T) {
	cache, _, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer backend.Close()

	ctx := context.Background()

	err = cache.PutEntry(ctx, &core.CacheEntry{Token: "Wattage", Output: "wattage"})
	require.NoError(t, err)
	err = cache.PutEntry(ctx, &core.CacheEntry{Token: "Wattage", Output: "watt age"})
	require.NoError(t, err)

	got, err := cache.GetEntry(ctx, core.IDFromContent("Wattage"))
	require.NoError(t, err)
	assert.Equal(t, "watt age", got.Output)
}

func TestCacheRepository_DistinctTokens(t *testing.T) {
	cache, _, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer backend.Close()

	ctx := context.Background()

	tokens := map[string]string{
		"ProductDimensions":       "product dimensions",
		"ShippingWeight":          "shipping weight",
		"Manufacturerrecommended": "manufacturer recommended",
		"Color":                   "Color",
	}

	for token, output := range tokens {
		err := cache.PutEntry(ctx, &core.CacheEntry{Token: token, Output: output})
		require.NoError(t, err)
	}

	for token, output := range tokens {
		got, err := cache.GetEntry(ctx, core.IDFromContent(token))
		require.NoError(t, err)
		assert.Equal(t, token, got.Token)
		assert.Equal(t, output, got.Output)
	}
}
