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

import "errors"

// Domain validation errors
var (
	// ErrMissingColumns indicates the batch lacks required columns.
	ErrMissingColumns = errors.New("missing required columns")

	// ErrInvalidRecord indicates a ProductRecord failed validation.
	ErrInvalidRecord = errors.New("invalid product record")

	// ErrEmptyName indicates the product Name field is empty.
	ErrEmptyName = errors.New("product name cannot be empty")

	// ErrNilSpecs indicates the specification map is absent.
	ErrNilSpecs = errors.New("specification map cannot be nil")
)
