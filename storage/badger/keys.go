package badger

import (
	"fmt"

	"github.com/skugraph/skugraph/core"
)

// Key prefixes for different data types
const (
	cacheEntryPrefix = "nrmcache"
	checkpointPrefix = "loadchk"
)

// makeCacheKey generates a key for a normalization cache entry by token hash.
func makeCacheKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", cacheEntryPrefix, id))
}

// makeCheckpointKey generates a key for a load checkpoint by source label.
func makeCheckpointKey(source string) []byte {
	return []byte(fmt.Sprintf("%s:%s", checkpointPrefix, source))
}
