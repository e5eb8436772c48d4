package core

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier derived from content.
// It keys cache entries and other content-addressed records.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Catalog column names as they appear in the source header row.
const (
	ColumnName          = "Product Name"
	ColumnDescription   = "Description"
	ColumnPrice         = "Selling Price"
	ColumnCategory      = "Category"
	ColumnSpecification = "Product Specification"
	ColumnParsedSpecs   = "Parsed Specifications"
)

// RequiredColumns returns the columns a batch must carry before ingestion.
func RequiredColumns() []string {
	return []string{ColumnName, ColumnParsedSpecs}
}

// ProductRecord is one catalog row after specification parsing.
// Index is the zero-based position of the row in the source dataset and is
// assigned once, before batching, so the derived product id is stable across
// runs and batch sizes.
type ProductRecord struct {
	Index       int
	Name        string
	Description string
	Price       string
	Categories  []string          // source order preserved
	Specs       map[string]string // normalized key -> normalized value
}

// ProductID returns the graph identity for the record, derived from its
// row position.
func (r *ProductRecord) ProductID() string {
	return fmt.Sprintf("product_%d", r.Index)
}

// CacheEntry is one stored normalizer result.
// Keyed in storage by IDFromContent of the token.
type CacheEntry struct {
	Token      string
	Output     string
	InsertedAt time.Time
}

// Checkpoint records load progress for one source so an interrupted run can
// resume past its committed batches.
type Checkpoint struct {
	Source      string
	LastBatch   int64
	RecordsDone int64
	UpdatedAt   time.Time
}
