package ai

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/skugraph/skugraph/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testNormalizer is a hand-written inner normalizer double.
type testNormalizer struct {
	err   error
	calls int
}

func (n *testNormalizer) Normalize(ctx context.Context, token string) (string, error) {
	n.calls++
	if n.err != nil {
		return "", n.err
	}
	return strings.ToLower(token), nil
}

// testEntryCache is a hand-written in-memory cache double.
type testEntryCache struct {
	entries map[core.ID]*core.CacheEntry
	getErr  error
	putErr  error
	puts    int
}

func newTestEntryCache() *testEntryCache {
	return &testEntryCache{entries: make(map[core.ID]*core.CacheEntry)}
}

func (c *testEntryCache) GetEntry(ctx context.Context, id core.ID) (*core.CacheEntry, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	entry, ok := c.entries[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return entry, nil
}

func (c *testEntryCache) PutEntry(ctx context.Context, entry *core.CacheEntry) error {
	c.puts++
	if c.putErr != nil {
		return c.putErr
	}
	c.entries[core.IDFromContent(entry.Token)] = entry
	return nil
}

func TestCachedNormalizer_MissCallsInnerAndStores(t *testing.T) {
	inner := &testNormalizer{}
	cache := newTestEntryCache()
	n := NewCachedNormalizer(inner, cache)

	out, err := n.Normalize(context.Background(), "ProductDimensions")
	require.NoError(t, err)
	assert.Equal(t, "productdimensions", out)
	assert.Equal(t, 1, inner.calls)
	assert.Equal(t, 1, cache.puts)
}

func TestCachedNormalizer_HitSkipsInner(t *testing.T) {
	inner := &testNormalizer{}
	cache := newTestEntryCache()
	n := NewCachedNormalizer(inner, cache)

	ctx := context.Background()

	_, err := n.Normalize(ctx, "ShippingWeight")
	require.NoError(t, err)
	require.Equal(t, 1, inner.calls)

	out, err := n.Normalize(ctx, "ShippingWeight")
	require.NoError(t, err)
	assert.Equal(t, "shippingweight", out)
	assert.Equal(t, 1, inner.calls, "second call must be served from cache")
}

func TestCachedNormalizer_InnerErrorPropagates(t *testing.T) {
	inner := &testNormalizer{err: errors.New("service down")}
	cache := newTestEntryCache()
	n := NewCachedNormalizer(inner, cache)

	_, err := n.Normalize(context.Background(), "Color")
	require.Error(t, err)
	assert.Equal(t, 0, cache.puts)
}

func TestCachedNormalizer_PutErrorDoesNotFailCall(t *testing.T) {
	inner := &testNormalizer{}
	cache := newTestEntryCache()
	cache.putErr = errors.New("disk full")
	n := NewCachedNormalizer(inner, cache)

	out, err := n.Normalize(context.Background(), "Wattage")
	require.NoError(t, err)
	assert.Equal(t, "wattage", out)
}

func TestCachedNormalizer_GetErrorFallsThroughToInner(t *testing.T) {
	inner := &testNormalizer{}
	cache := newTestEntryCache()
	cache.getErr = errors.New("corrupted")
	n := NewCachedNormalizer(inner, cache)

	out, err := n.Normalize(context.Background(), "Color")
	require.NoError(t, err)
	assert.Equal(t, "color", out)
	assert.Equal(t, 1, inner.calls)
}

func TestCachedNormalizer_TokenMismatchIsAMiss(t *testing.T) {
	inner := &testNormalizer{}
	cache := newTestEntryCache()
	// Entry stored under the hash of a different token.
	cache.entries[core.IDFromContent("Voltage")] = &core.CacheEntry{
		Token:  "SomethingElse",
		Output: "something else",
	}
	n := NewCachedNormalizer(inner, cache)

	out, err := n.Normalize(context.Background(), "Voltage")
	require.NoError(t, err)
	assert.Equal(t, "voltage", out)
	assert.Equal(t, 1, inner.calls)
}
