// Copyright 2025 Skugraph Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package graph

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"sync"

	"github.com/skugraph/skugraph/core"
)

// Ingestor writes record batches into the graph store. Each batch runs in
// one explicit transaction: either every node and edge of the batch lands,
// or none do.
type Ingestor struct {
	store  Store
	logger *slog.Logger
	mu     sync.Mutex
}

// IngestResult summarizes one committed batch.
type IngestResult struct {
	Batch                int
	Records              int
	NodesCreated         int
	RelationshipsCreated int
	PropertiesSet        int
}

// Option configures an Ingestor.
type Option func(*Ingestor)

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(in *Ingestor) {
		in.logger = logger.With("component", "graph-ingestor")
	}
}

// NewIngestor creates an ingestion engine over the given store.
func NewIngestor(store Store, opts ...Option) (*Ingestor, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}

	in := &Ingestor{
		store:  store,
		logger: slog.Default().With("component", "graph-ingestor"),
	}
	for _, opt := range opts {
		opt(in)
	}
	return in, nil
}

// Ingest loads one batch of records inside a single transaction.
//
// Records are validated before the transaction opens; a validation failure
// means the store is never touched. Any statement or commit failure rolls
// the whole batch back and surfaces as a StoreTransactionError. Context
// cancellation also rolls back, and is returned unwrapped so callers can
// match it with errors.Is.
func (in *Ingestor) Ingest(ctx context.Context, batch int, records []*core.ProductRecord) (*IngestResult, error) {
	in.mu.Lock()
	defer in.mu.Unlock()

	if err := core.ValidateRecords(records); err != nil {
		return nil, fmt.Errorf("batch %d: %w", batch, err)
	}

	result := &IngestResult{Batch: batch, Records: len(records)}
	if len(records) == 0 {
		return result, nil
	}

	in.logger.Debug("ingesting batch", "batch", batch, "records", len(records))

	tx, err := in.store.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("batch %d: begin transaction: %w", batch, err)
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		// Roll back even when the surrounding context is already dead.
		if rollbackErr := tx.Rollback(context.WithoutCancel(ctx)); rollbackErr != nil {
			in.logger.Warn("rollback failed", "batch", batch, "error", rollbackErr)
			return
		}
		in.logger.Debug("batch rolled back", "batch", batch)
	}()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("batch %d: %w", batch, err)
	}

	products := make([]any, 0, len(records))
	for _, record := range records {
		products = append(products, map[string]any{
			"id":          record.ProductID(),
			"name":        record.Name,
			"description": record.Description,
			"price":       record.Price,
		})
	}

	counters, err := in.run(ctx, tx, batch, -1, OpUpsertProducts, stmtUpsertProducts, map[string]any{
		"products": products,
	})
	if err != nil {
		return nil, err
	}

	for _, record := range records {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("batch %d: record %d: %w", batch, record.Index, err)
		}

		recordCounters, err := in.ingestRecord(ctx, tx, batch, record)
		if err != nil {
			return nil, err
		}
		counters = counters.Add(recordCounters)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, &StoreTransactionError{Batch: batch, RecordIndex: -1, Op: OpCommit, Err: err}
	}
	committed = true

	result.NodesCreated = counters.NodesCreated
	result.RelationshipsCreated = counters.RelationshipsCreated
	result.PropertiesSet = counters.PropertiesSet

	in.logger.Debug("batch committed",
		"batch", batch,
		"records", result.Records,
		"nodes_created", result.NodesCreated,
		"relationships_created", result.RelationshipsCreated)
	return result, nil
}

// ingestRecord connects one product to its category and specification nodes.
func (in *Ingestor) ingestRecord(ctx context.Context, tx Tx, batch int, record *core.ProductRecord) (Counters, error) {
	var counters Counters
	productID := record.ProductID()

	// A category repeated within one record must still yield one edge.
	seen := make(map[string]struct{}, len(record.Categories))
	for _, category := range record.Categories {
		if _, dup := seen[category]; dup {
			continue
		}
		seen[category] = struct{}{}

		c, err := in.run(ctx, tx, batch, record.Index, OpUpsertCategory, stmtUpsertCategory, map[string]any{
			"name": category,
		})
		if err != nil {
			return counters, err
		}
		counters = counters.Add(c)

		c, err = in.run(ctx, tx, batch, record.Index, OpRelateCategory, stmtRelateCategory, map[string]any{
			"product_id":    productID,
			"category_name": category,
		})
		if err != nil {
			return counters, err
		}
		counters = counters.Add(c)
	}

	// Sorted key order keeps statement sequences deterministic across runs.
	for _, key := range slices.Sorted(maps.Keys(record.Specs)) {
		value := record.Specs[key]

		c, err := in.run(ctx, tx, batch, record.Index, OpUpsertSpecification, stmtUpsertSpecification, map[string]any{
			"key":   key,
			"value": value,
		})
		if err != nil {
			return counters, err
		}
		counters = counters.Add(c)

		c, err = in.run(ctx, tx, batch, record.Index, OpRelateSpecification, stmtRelateSpecification, map[string]any{
			"product_id": productID,
			"spec_key":   key,
			"spec_value": value,
		})
		if err != nil {
			return counters, err
		}
		counters = counters.Add(c)
	}

	return counters, nil
}

func (in *Ingestor) run(ctx context.Context, tx Tx, batch, recordIndex int, op, query string, params map[string]any) (Counters, error) {
	counters, err := tx.Run(ctx, query, params)
	if err != nil {
		return Counters{}, &StoreTransactionError{Batch: batch, RecordIndex: recordIndex, Op: op, Err: err}
	}
	return counters, nil
}
