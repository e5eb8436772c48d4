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


package skugraph

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/skugraph/skugraph/ai"
	"github.com/skugraph/skugraph/ai/openai"
	"github.com/skugraph/skugraph/core"
	"github.com/skugraph/skugraph/dataset"
	"github.com/skugraph/skugraph/graph"
	"github.com/skugraph/skugraph/prepare"
	"github.com/skugraph/skugraph/specs"
	"github.com/skugraph/skugraph/storage"
	"github.com/skugraph/skugraph/storage/badger"
)

// DefaultBatchSize is how many records one load transaction carries.
const DefaultBatchSize = 100

// Importer owns the full catalog pipeline: the normalizer cache, the
// specification preparer, and the checkpointed graph loader.
type Importer struct {
	backend     *badger.Backend
	cache       storage.NormalizationCache
	checkpoints storage.CheckpointRepository
	normalizer  ai.Normalizer

	graphConfig *graph.Config
	store       graph.Store
	ingestor    *graph.Ingestor
	connectMu   sync.Mutex

	batchSize      int
	poolSize       int
	resume         bool
	progressWriter io.Writer
	reportInterval int
	parserOpts     []specs.Option

	logger *slog.Logger
}

// NewImporter opens the normalizer cache at cachePath and wires the
// pipeline. The graph store is not dialed until the first Load call unless
// one is supplied with WithGraphStore.
func NewImporter(cachePath string, opts ...ImporterOption) (*Importer, error) {
	// Apply options
	options := &importerOptions{
		aiConfig:    ai.DefaultConfig(), // Default if not provided
		graphConfig: graph.FromEnv(),
		batchSize:   DefaultBatchSize,
		poolSize:    prepare.DefaultPoolSize,
		resume:      true,
	}
	for _, opt := range opts {
		opt(options)
	}

	// Open cache backend
	backend, err := badger.OpenBackend(cachePath, false)
	if err != nil {
		return nil, err
	}

	cacheRepo := badger.NewCacheRepository(backend)
	checkpointRepo := badger.NewCheckpointRepository(backend)

	// Create the normalizer with configured settings
	normalizer := options.normalizer
	if normalizer == nil {
		normalizer, err = openai.NewNormalizer(options.aiConfig)
		if err != nil {
			backend.Close()
			return nil, err
		}
	}

	return &Importer{
		backend:        backend,
		cache:          cacheRepo,
		checkpoints:    checkpointRepo,
		normalizer:     ai.NewCachedNormalizer(normalizer, cacheRepo),
		graphConfig:    options.graphConfig,
		store:          options.store,
		batchSize:      options.batchSize,
		poolSize:       options.poolSize,
		resume:         options.resume,
		progressWriter: options.progressWriter,
		reportInterval: options.reportInterval,
		parserOpts:     options.parserOpts,
		logger:         slog.Default().With("component", "importer"),
	}, nil
}

// Close releases the graph store and the cache backend.
func (imp *Importer) Close(ctx context.Context) error {
	if imp.store != nil {
		if err := imp.store.Close(ctx); err != nil {
			imp.logger.Error("error closing graph store", "err", err)
		}
	}

	if err := imp.backend.Close(); err != nil {
		imp.logger.Error("error closing cache backend", "err", err)
		return err
	}
	return nil
}

// NormalizationCache exposes the persistent token cache.
func (imp *Importer) NormalizationCache() storage.NormalizationCache {
	return imp.cache
}

// CheckpointRepository exposes load progress records.
func (imp *Importer) CheckpointRepository() storage.CheckpointRepository {
	return imp.checkpoints
}

// NewPreparer builds a preparer over the cached normalizer. The caller owns
// the preparer and must Release it.
func (imp *Importer) NewPreparer(opts ...prepare.Option) (*prepare.Preparer, error) {
	parser, err := specs.NewParser(imp.normalizer, imp.parserOpts...)
	if err != nil {
		return nil, err
	}

	base := []prepare.Option{prepare.WithPoolSize(imp.poolSize)}
	if imp.progressWriter != nil {
		base = append(base, prepare.WithProgress(imp.progressWriter, imp.reportInterval))
	}

	return prepare.NewPreparer(parser, append(base, opts...)...)
}

// Prepare parses the specification column of a raw catalog table and returns
// the table extended with parsed mappings.
func (imp *Importer) Prepare(ctx context.Context, table *dataset.Table) (*dataset.Table, error) {
	preparer, err := imp.NewPreparer()
	if err != nil {
		return nil, err
	}
	defer preparer.Release()

	return preparer.ParseColumn(ctx, table)
}

// Load writes records into the graph in transactional batches of BatchSize.
//
// Progress is checkpointed under the source label after every committed
// batch. When resume is on and a checkpoint exists, batches up to and
// including its LastBatch are skipped. A completed load deletes its
// checkpoint.
func (imp *Importer) Load(ctx context.Context, source string, records []*core.ProductRecord) (*LoadResult, error) {
	result := &LoadResult{Source: source, Records: len(records)}
	if len(records) == 0 {
		return result, nil
	}

	if err := imp.connect(ctx); err != nil {
		return nil, err
	}

	startBatch := 0
	if imp.resume {
		checkpoint, err := imp.checkpoints.LoadCheckpoint(ctx, source)
		if err != nil {
			return nil, fmt.Errorf("load %s: read checkpoint: %w", source, err)
		}
		if checkpoint != nil {
			// A checkpoint written under a different batch size or dataset
			// length would resume at the wrong row.
			expected := min(int(checkpoint.LastBatch+1)*imp.batchSize, len(records))
			if int(checkpoint.RecordsDone) != expected {
				imp.logger.Warn("checkpoint does not match batch layout, starting over",
					"source", source,
					"records_done", checkpoint.RecordsDone,
					"expected", expected)
			} else {
				startBatch = int(checkpoint.LastBatch) + 1
				result.Resumed = true
				imp.logger.Info("resuming load",
					"source", source,
					"last_batch", checkpoint.LastBatch,
					"records_done", checkpoint.RecordsDone)
			}
		}
	}

	var tracker *prepare.ProgressTracker
	if imp.progressWriter != nil {
		tracker = prepare.NewProgressTracker(imp.progressWriter, "Loaded", len(records), imp.reportInterval)
		tracker.Start()
	}

	totalBatches := (len(records) + imp.batchSize - 1) / imp.batchSize
	for batch := 0; batch < totalBatches; batch++ {
		start := batch * imp.batchSize
		end := min(start+imp.batchSize, len(records))

		if batch < startBatch {
			result.BatchesSkipped++
			if tracker != nil {
				tracker.Increment(end - start)
			}
			continue
		}

		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("load %s: %w", source, err)
		}

		batchResult, err := imp.ingestor.Ingest(ctx, batch, records[start:end])
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", source, err)
		}

		result.BatchesLoaded++
		result.NodesCreated += batchResult.NodesCreated
		result.RelationshipsCreated += batchResult.RelationshipsCreated
		result.PropertiesSet += batchResult.PropertiesSet
		if tracker != nil {
			tracker.Increment(end - start)
		}

		// Batches are idempotent, so a lost checkpoint only repeats work.
		if err := imp.checkpoints.SaveCheckpoint(ctx, &core.Checkpoint{
			Source:      source,
			LastBatch:   int64(batch),
			RecordsDone: int64(end),
		}); err != nil {
			imp.logger.Warn("failed to save checkpoint", "source", source, "batch", batch, "err", err)
		}
	}

	if tracker != nil {
		tracker.Finish()
	}

	if err := imp.checkpoints.DeleteCheckpoint(ctx, source); err != nil {
		imp.logger.Warn("failed to clear checkpoint", "source", source, "err", err)
	}

	imp.logger.Info("load complete",
		"source", source,
		"records", result.Records,
		"batches", result.BatchesLoaded,
		"skipped", result.BatchesSkipped,
		"nodes_created", result.NodesCreated,
		"relationships_created", result.RelationshipsCreated)
	return result, nil
}

// LoadTable validates a prepared table's columns, converts its rows into
// records, and loads them. The source label keys the checkpoint.
func (imp *Importer) LoadTable(ctx context.Context, source string, table *dataset.Table) (*LoadResult, error) {
	if err := core.ValidateColumns(table.Columns); err != nil {
		return nil, fmt.Errorf("load %s: %w", source, err)
	}

	records, err := dataset.RecordsFromTable(table)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", source, err)
	}

	return imp.Load(ctx, source, records)
}

// connect dials the graph store on first use and builds the ingestor.
func (imp *Importer) connect(ctx context.Context) error {
	imp.connectMu.Lock()
	defer imp.connectMu.Unlock()

	if imp.ingestor != nil {
		return nil
	}

	if imp.store == nil {
		store, err := graph.NewNeo4jStore(ctx, imp.graphConfig)
		if err != nil {
			return fmt.Errorf("connect graph store: %w", err)
		}
		imp.store = store
	}

	ingestor, err := graph.NewIngestor(imp.store)
	if err != nil {
		return err
	}
	imp.ingestor = ingestor
	return nil
}
