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


// Package ai provides the text normalization abstraction for skugraph.
//
// Catalog specification strings carry glued identifiers ("ProductDimensions",
// "Manufacturerrecommendedage") that a language model rewrites as separated
// words. This package defines the Normalizer interface for that service so
// the parser depends on an abstraction rather than a concrete client.
//
// # Implementation Packages
//
//   - ai/openai: production implementation against OpenAI-compatible APIs
//     (Ollama, LocalAI, vLLM)
//   - ai/mock: deterministic test double for unit testing without a model
//
// # Constructor Return Type Pattern
//
// Production constructors (openai.NewNormalizer, NewCachedNormalizer) return
// the Normalizer INTERFACE to enforce abstraction. Test utility constructors
// (mock.NewMockNormalizer) return CONCRETE types to enable assertions and
// behavior injection (CallCount, NormalizeFunc, Reset).
//
// # Caching
//
// CachedNormalizer decorates any Normalizer with a persistent cache keyed by
// the content hash of the input token:
//
//	normalizer := ai.NewCachedNormalizer(openaiNorm, cacheRepo)
//	out, err := normalizer.Normalize(ctx, "ProductDimensions")
//
// The normalizer is the only network-bound step in specification parsing;
// keeping it behind an interface means correctness tests never gate on a
// non-deterministic model.
package ai
