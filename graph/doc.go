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


// Package graph loads parsed product records into a property graph.
//
// A Store hands out explicit write transactions; NewNeo4jStore implements it
// over the Bolt protocol, and NewMockStore implements it in memory for tests.
// The Ingestor turns one batch of records into MERGE statements inside a
// single transaction, so a batch either lands completely or not at all.
//
// Usage:
//
//	store, err := graph.NewNeo4jStore(ctx, graph.FromEnv())
//	if err != nil {
//		return err
//	}
//	defer store.Close(ctx)
//
//	ingestor, err := graph.NewIngestor(store)
//	if err != nil {
//		return err
//	}
//
//	result, err := ingestor.Ingest(ctx, 0, records)
package graph
