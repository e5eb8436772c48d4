// Package mock provides test double implementations of AI service interfaces.
//
// This package contains a mock implementation of ai.Normalizer for use in
// unit tests. The mock allows tests to run without a live language model and
// enables controlled, deterministic behavior.
//
// # Usage in Tests
//
//	// Basic usage with default behavior
//	normalizer := mock.NewMockNormalizer()
//	text, err := normalizer.Normalize(ctx, "ProductDimensions")
//	// text == "product dimensions"
//
//	// Custom behavior injection
//	normalizer.NormalizeFunc = func(ctx context.Context, token string) (string, error) {
//	    return "", errors.New("model offline")
//	}
//
//	// Check call counts
//	count := normalizer.CallCount()
//
// # Default Behavior
//
// MockNormalizer splits tokens at case boundaries and lowercases the result,
// approximating what the production model does with glued identifiers. Tokens
// without a case boundary are returned unchanged.
package mock
