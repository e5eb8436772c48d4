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


// Package storage provides the local persistence layer for skugraph.
//
// This package defines repository interfaces that decouple storage
// implementation from the ingestion logic. Two kinds of records live here:
// normalization cache entries (so repeated tokens never hit the language
// model twice) and load checkpoints (so an interrupted load resumes past
// its committed batches).
//
// # Architecture
//
//   - NormalizationCache: token hash -> normalizer output
//   - CheckpointRepository: source label -> last committed batch
//
// Constructors in the badger subpackage return these interfaces so
// consumers never couple to BadgerDB specifics and tests can substitute
// in-memory doubles.
//
// # Thread Safety
//
// All repository implementations must be thread-safe. The normalization
// cache in particular is accessed concurrently by parser pool workers.
//
// # Context Support
//
// All repository methods accept context.Context for cancellation and
// timeout support.
package storage
