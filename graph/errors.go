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
	"errors"
	"fmt"
)

var (
	// ErrConnection marks failures reaching, authenticating with, or opening
	// a transaction against the graph database. Transient: the caller
	// reconnects and retries the whole batch; the engine performs no hidden
	// reconnects mid-transaction.
	ErrConnection = errors.New("graph connection error")

	// ErrStatement marks a failed statement or commit inside an open
	// transaction.
	ErrStatement = errors.New("graph statement error")

	// ErrStoreRequired is returned when an ingestor is built without a store.
	ErrStoreRequired = errors.New("graph store required")

	// ErrStoreClosed is returned when a transaction is requested from a
	// closed store.
	ErrStoreClosed = errors.New("graph store closed")
)

// Operation names reported in StoreTransactionError.Op.
const (
	OpUpsertProducts      = "upsert products"
	OpUpsertCategory      = "upsert category"
	OpRelateCategory      = "relate category"
	OpUpsertSpecification = "upsert specification"
	OpRelateSpecification = "relate specification"
	OpCommit              = "commit"
)

// StoreTransactionError reports a failed batch transaction with enough
// context to re-run just the failing batch.
type StoreTransactionError struct {
	// Batch is the failing batch number.
	Batch int

	// RecordIndex is the global index of the record being written, or -1
	// for batch-scoped operations such as the product upsert and commit.
	RecordIndex int

	// Op names the upsert shape that failed. See the Op constants.
	Op string

	// Err is the underlying cause.
	Err error
}

func (e *StoreTransactionError) Error() string {
	if e.RecordIndex >= 0 {
		return fmt.Sprintf("batch %d: record %d: %s: %v", e.Batch, e.RecordIndex, e.Op, e.Err)
	}
	return fmt.Sprintf("batch %d: %s: %v", e.Batch, e.Op, e.Err)
}

func (e *StoreTransactionError) Unwrap() error {
	return e.Err
}
