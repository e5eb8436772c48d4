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


package mock

import (
	"context"
	"strings"
	"sync"
	"unicode"
)

// MockNormalizer is a test double for ai.Normalizer.
// It allows custom behavior injection via function fields and is safe for
// concurrent use, matching the contract of the production normalizer.
type MockNormalizer struct {
	// NormalizeFunc is called by Normalize if set.
	// If nil, uses default deterministic case-boundary splitting.
	NormalizeFunc func(ctx context.Context, token string) (string, error)

	mu        sync.Mutex
	callCount int
}

// NewMockNormalizer creates a mock normalizer with default behavior.
// Note: Returns concrete type to allow test assertions via CallCount().
func NewMockNormalizer() *MockNormalizer {
	return &MockNormalizer{}
}

// Normalize splits glued tokens at case boundaries.
// Default behavior: "ProductDimensions" becomes "product dimensions"; a token
// with no case boundary is returned unchanged.
func (m *MockNormalizer) Normalize(ctx context.Context, token string) (string, error) {
	m.mu.Lock()
	m.callCount++
	fn := m.NormalizeFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, token)
	}

	return splitCaseBoundaries(token), nil
}

// CallCount returns the number of times Normalize was called.
func (m *MockNormalizer) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *MockNormalizer) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount = 0
	m.NormalizeFunc = nil
}

// splitCaseBoundaries inserts spaces where a lowercase letter or digit meets
// an uppercase letter, and where an uppercase run ends before a lowercase
// letter. The result is lowercased. Tokens without a boundary come back
// verbatim, mirroring the "return the text as is" instruction the production
// normalizer gives its model.
func splitCaseBoundaries(token string) string {
	runes := []rune(token)
	var b strings.Builder
	b.Grow(len(token) + 4)

	split := false
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) {
			prev := runes[i-1]
			boundary := unicode.IsLower(prev) || unicode.IsDigit(prev)
			if !boundary && unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1]) {
				boundary = true
			}
			if boundary {
				b.WriteByte(' ')
				split = true
			}
		}
		b.WriteRune(r)
	}

	if !split {
		return token
	}
	return strings.ToLower(b.String())
}
