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


// Package dataset reads and writes the tabular product catalogs the importer
// consumes, and converts prepared tables into product records.
package dataset

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/skugraph/skugraph/core"
)

// Table is an in-memory tabular dataset: an ordered header plus one map per
// row keyed by column name. Row position is identity; product ids derive
// from it.
type Table struct {
	Columns []string
	Rows    []map[string]string
}

// HasColumn reports whether the header contains name.
func (t *Table) HasColumn(name string) bool {
	for _, column := range t.Columns {
		if column == name {
			return true
		}
	}
	return false
}

// WithColumn returns a copy of the table extended by one column, one value
// per row in order.
func (t *Table) WithColumn(name string, values []string) (*Table, error) {
	if t.HasColumn(name) {
		return nil, fmt.Errorf("%w: %s", ErrColumnExists, name)
	}
	if len(values) != len(t.Rows) {
		return nil, fmt.Errorf("%w: column %s has %d values for %d rows",
			ErrRowCountMismatch, name, len(values), len(t.Rows))
	}

	columns := make([]string, 0, len(t.Columns)+1)
	columns = append(columns, t.Columns...)
	columns = append(columns, name)

	rows := make([]map[string]string, len(t.Rows))
	for i, row := range t.Rows {
		copied := make(map[string]string, len(row)+1)
		for column, value := range row {
			copied[column] = value
		}
		copied[name] = values[i]
		rows[i] = copied
	}

	return &Table{Columns: columns, Rows: rows}, nil
}

// Column collects one column's cells in row order. Absent cells come back as
// empty strings.
func (t *Table) Column(name string) []string {
	values := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		values[i] = row[name]
	}
	return values
}

// RecordsFromTable converts a prepared table into product records. The record
// index equals the row position, so ids stay stable however the records are
// batched later.
//
// The "Parsed Specifications" cell holds the JSON object written by the
// prepare stage; a blank cell becomes an empty map, never an error.
func RecordsFromTable(table *Table) ([]*core.ProductRecord, error) {
	if !table.HasColumn(core.ColumnParsedSpecs) {
		return nil, &core.MissingColumnsError{Columns: []string{core.ColumnParsedSpecs}}
	}

	records := make([]*core.ProductRecord, len(table.Rows))
	for i, row := range table.Rows {
		specs := map[string]string{}
		if cell := strings.TrimSpace(row[core.ColumnParsedSpecs]); cell != "" {
			if err := json.Unmarshal([]byte(cell), &specs); err != nil {
				return nil, fmt.Errorf("row %d: parsed specifications: %w: %w",
					i, core.ErrInvalidRecord, err)
			}
		}

		records[i] = &core.ProductRecord{
			Index:       i,
			Name:        strings.TrimSpace(row[core.ColumnName]),
			Description: row[core.ColumnDescription],
			Price:       row[core.ColumnPrice],
			Categories:  SplitCategories(row[core.ColumnCategory]),
			Specs:       specs,
		}
	}

	return records, nil
}

// SplitCategories splits a pipe-delimited category cell into trimmed names.
// Blank entries are dropped; duplicates are kept.
func SplitCategories(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	parts := strings.Split(raw, "|")
	categories := make([]string, 0, len(parts))
	for _, part := range parts {
		if name := strings.TrimSpace(part); name != "" {
			categories = append(categories, name)
		}
	}
	return categories
}
