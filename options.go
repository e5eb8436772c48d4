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
	"io"

	"github.com/skugraph/skugraph/ai"
	"github.com/skugraph/skugraph/graph"
	"github.com/skugraph/skugraph/specs"
)

// ImporterOption configures an Importer.
type ImporterOption func(*importerOptions)

type importerOptions struct {
	aiConfig       *ai.Config
	normalizer     ai.Normalizer
	graphConfig    *graph.Config
	store          graph.Store
	batchSize      int
	poolSize       int
	resume         bool
	progressWriter io.Writer
	reportInterval int
	parserOpts     []specs.Option
}

// WithAIConfig sets the normalizer model configuration.
func WithAIConfig(config *ai.Config) ImporterOption {
	return func(o *importerOptions) {
		o.aiConfig = config
	}
}

// WithNormalizer supplies a normalizer instead of the model-backed one.
// It is still fronted by the persistent cache.
func WithNormalizer(normalizer ai.Normalizer) ImporterOption {
	return func(o *importerOptions) {
		o.normalizer = normalizer
	}
}

// WithGraphConfig sets the graph connection configuration used when Load
// dials the store. Default is FromEnv().
func WithGraphConfig(config *graph.Config) ImporterOption {
	return func(o *importerOptions) {
		o.graphConfig = config
	}
}

// WithGraphStore supplies an already-open store. Load will not dial, and
// Close closes the supplied store.
func WithGraphStore(store graph.Store) ImporterOption {
	return func(o *importerOptions) {
		o.store = store
	}
}

// WithBatchSize sets how many records each load transaction carries.
// Values below 1 fall back to DefaultBatchSize.
func WithBatchSize(size int) ImporterOption {
	return func(o *importerOptions) {
		if size < 1 {
			size = DefaultBatchSize
		}
		o.batchSize = size
	}
}

// WithPoolSize sets the preparer worker pool size.
func WithPoolSize(size int) ImporterOption {
	return func(o *importerOptions) {
		o.poolSize = size
	}
}

// WithResume controls whether Load skips batches already committed for the
// same source. Default is true.
func WithResume(resume bool) ImporterOption {
	return func(o *importerOptions) {
		o.resume = resume
	}
}

// WithProgress enables progress reporting for prepare and load runs.
func WithProgress(writer io.Writer, reportInterval int) ImporterOption {
	return func(o *importerOptions) {
		o.progressWriter = writer
		o.reportInterval = reportInterval
	}
}

// WithParserOptions forwards options to the specification parser.
func WithParserOptions(opts ...specs.Option) ImporterOption {
	return func(o *importerOptions) {
		o.parserOpts = append(o.parserOpts, opts...)
	}
}
