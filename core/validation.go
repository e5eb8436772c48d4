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


package core

import (
	"fmt"
	"strings"
)

// MissingColumnsError reports every required column absent from a batch.
// It wraps ErrMissingColumns for errors.Is checks.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("missing required columns: %s", strings.Join(e.Columns, ", "))
}

func (e *MissingColumnsError) Unwrap() error {
	return ErrMissingColumns
}

// ValidateColumns verifies that a batch carries every required column.
//
// Required columns:
//   - "Product Name"
//   - "Parsed Specifications" (may hold empty maps, but the column must exist)
//
// Runs once per batch before any transaction is opened. Returns a
// *MissingColumnsError listing all missing columns, never just the first.
func ValidateColumns(columns []string) error {
	present := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		present[c] = struct{}{}
	}

	var missing []string
	for _, required := range RequiredColumns() {
		if _, ok := present[required]; !ok {
			missing = append(missing, required)
		}
	}

	if len(missing) > 0 {
		return &MissingColumnsError{Columns: missing}
	}
	return nil
}

// ValidateRecord validates a single ProductRecord according to domain rules.
//
// Validation rules:
//   - Name must not be empty
//   - Specs must not be nil (empty maps are valid)
//
// NOT validated:
//   - Description and Price (optional, empty string when absent)
//   - Categories (empty list simply produces no relationship work)
func ValidateRecord(record *ProductRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidRecord)
	}

	if record.Name == "" {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, ErrEmptyName)
	}

	if record.Specs == nil {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, ErrNilSpecs)
	}

	return nil
}

// ValidateRecords validates every record in a batch, reporting the index of
// the first failure.
func ValidateRecords(records []*ProductRecord) error {
	for i, record := range records {
		if err := ValidateRecord(record); err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
	}
	return nil
}
