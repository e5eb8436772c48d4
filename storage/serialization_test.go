package storage

import (
	"testing"
	"time"

	"github.com/skugraph/skugraph/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalUnmarshalCacheEntry(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)

	tests := []struct {
		name  string
		entry *core.CacheEntry
	}{
		{
			name: "typical entry",
			entry: &core.CacheEntry{
				Token:      "ProductDimensions",
				Output:     "product dimensions",
				InsertedAt: now,
			},
		},
		{
			name: "unchanged output",
			entry: &core.CacheEntry{
				Token:      "Color",
				Output:     "Color",
				InsertedAt: now,
			},
		},
		{
			name: "empty output",
			entry: &core.CacheEntry{
				Token:      "x",
				Output:     "",
				InsertedAt: now,
			},
		},
		{
			name: "unicode token",
			entry: &core.CacheEntry{
				Token:      "Größe×Gewicht",
				Output:     "größe gewicht",
				InsertedAt: now,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalCacheEntry(tt.entry)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalCacheEntry(data)
			require.NoError(t, err)
			require.NotNil(t, decoded)

			assert.Equal(t, tt.entry.Token, decoded.Token)
			assert.Equal(t, tt.entry.Output, decoded.Output)
			assert.True(t, tt.entry.InsertedAt.Equal(decoded.InsertedAt))
		})
	}
}

func TestUnmarshalCacheEntry_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty data", []byte{}},
		{"truncated data", []byte{10, 'a', 'b'}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalCacheEntry(tt.data)
			assert.Error(t, err)
		})
	}
}

func TestMarshalUnmarshalCheckpoint(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)

	checkpoint := &core.Checkpoint{
		Source:      "catalog-2025-08.csv",
		LastBatch:   41,
		RecordsDone: 4100,
		UpdatedAt:   now,
	}

	data := MarshalCheckpoint(checkpoint)
	require.NotEmpty(t, data)

	decoded, err := UnmarshalCheckpoint(data)
	require.NoError(t, err)
	require.NotNil(t, decoded)

	assert.Equal(t, checkpoint.Source, decoded.Source)
	assert.Equal(t, checkpoint.LastBatch, decoded.LastBatch)
	assert.Equal(t, checkpoint.RecordsDone, decoded.RecordsDone)
	assert.True(t, checkpoint.UpdatedAt.Equal(decoded.UpdatedAt))
}

func TestUnmarshalCheckpoint_Invalid(t *testing.T) {
	_, err := UnmarshalCheckpoint([]byte{0xFF, 0xFF})
	assert.Error(t, err)
}
