package specs

import "errors"

var (
	// ErrNormalizerRequired is returned when NewParser is given a nil normalizer.
	ErrNormalizerRequired = errors.New("normalizer is required")

	// ErrNormalizationUnavailable marks a token that could not be normalized
	// after retries. Recoverable at the parser boundary through the fallback
	// policy.
	ErrNormalizationUnavailable = errors.New("normalization unavailable")

	// ErrInvalidMaxAttempts is returned when maxAttempts is <= 0
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")
)
