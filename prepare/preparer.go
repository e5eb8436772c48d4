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


// Package prepare runs the parallel specification-parsing stage that turns a
// raw catalog table into one ready for graph loading.
package prepare

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/skugraph/skugraph/core"
	"github.com/skugraph/skugraph/dataset"
)

// DefaultPoolSize bounds concurrent outstanding normalizer calls.
const DefaultPoolSize = 4

const defaultReportInterval = 100

// SpecParser parses one raw specification string into a key/value mapping.
// Implementations must be safe for concurrent use.
type SpecParser interface {
	Parse(ctx context.Context, raw string) (map[string]string, error)
}

// Preparer parses specification strings across a bounded worker pool while
// preserving row order, so product ids derived from row position stay stable.
type Preparer struct {
	parser         SpecParser
	pool           *ants.Pool
	progressWriter io.Writer
	reportInterval int
	logger         *slog.Logger
}

// Option configures a Preparer.
type Option func(*Preparer) error

// WithPoolSize sets the worker pool size.
// Default is DefaultPoolSize, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Preparer) error {
		if size < 1 {
			size = 1
		}

		if p.pool != nil {
			p.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}

		p.pool = pool
		return nil
	}
}

// WithProgress enables progress reporting to writer every reportInterval
// records. A nil writer disables reporting.
func WithProgress(writer io.Writer, reportInterval int) Option {
	return func(p *Preparer) error {
		if reportInterval < 1 {
			reportInterval = defaultReportInterval
		}
		p.progressWriter = writer
		p.reportInterval = reportInterval
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Preparer) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger.With("component", "preparer")
		return nil
	}
}

// NewPreparer creates a preparer around the given parser.
func NewPreparer(parser SpecParser, opts ...Option) (*Preparer, error) {
	if parser == nil {
		return nil, ErrParserRequired
	}

	pool, err := ants.NewPool(DefaultPoolSize)
	if err != nil {
		return nil, err
	}

	p := &Preparer{
		parser:         parser,
		pool:           pool,
		reportInterval: defaultReportInterval,
		logger:         slog.Default().With("component", "preparer"),
	}

	// Apply options (may override defaults)
	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// ParseAll parses every raw specification string concurrently and returns the
// results in input order. The first parse failure cancels outstanding work
// and is returned with its record index.
func (p *Preparer) ParseAll(ctx context.Context, raws []string) ([]map[string]string, error) {
	results := make([]map[string]string, len(raws))
	if len(raws) == 0 {
		return results, nil
	}

	var tracker *ProgressTracker
	if p.progressWriter != nil {
		tracker = NewProgressTracker(p.progressWriter, "Parsed", len(raws), p.reportInterval)
		tracker.Start()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)

	fail := func(err error) {
		errOnce.Do(func() {
			firstErr = err
			cancel()
		})
	}

	for i, raw := range raws {
		i, raw := i, raw
		wg.Add(1)
		submitErr := p.pool.Submit(func() {
			defer wg.Done()

			if ctx.Err() != nil {
				return
			}

			parsed, err := p.parser.Parse(ctx, raw)
			if err != nil {
				fail(fmt.Errorf("record %d: %w", i, err))
				return
			}

			results[i] = parsed
			if tracker != nil {
				tracker.Increment(1)
			}
		})
		if submitErr != nil {
			wg.Done()
			fail(submitErr)
			break
		}
	}

	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if tracker != nil {
		tracker.Finish()
		p.logger.Info("parsed specifications", "records", len(raws), "elapsed", tracker.Elapsed())
	}
	return results, nil
}

// ParseColumn parses every row's raw specification cell and returns a new
// table extended with the parsed mapping as a JSON cell in the
// "Parsed Specifications" column. A row without a specification cell yields
// an empty mapping.
func (p *Preparer) ParseColumn(ctx context.Context, table *dataset.Table) (*dataset.Table, error) {
	p.logger.Debug("parsing specification column", "rows", len(table.Rows))

	parsed, err := p.ParseAll(ctx, table.Column(core.ColumnSpecification))
	if err != nil {
		return nil, err
	}

	cells := make([]string, len(parsed))
	for i, mapping := range parsed {
		encoded, err := json.Marshal(mapping)
		if err != nil {
			return nil, fmt.Errorf("row %d: encoding specifications: %w", i, err)
		}
		cells[i] = string(encoded)
	}

	return table.WithColumn(core.ColumnParsedSpecs, cells)
}

// Release releases the worker pool.
// The preparer should not be used after calling Release.
func (p *Preparer) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}
