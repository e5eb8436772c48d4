package ai

import "context"

// Normalizer rewrites a glued/compound token as separated words.
// Implementations must be thread-safe for concurrent use: a single
// Normalizer is shared by all parser pool workers.
type Normalizer interface {
	// Normalize returns a human-readable rendering of the token with glued
	// words split apart. Output may equal the input when nothing is glued,
	// and may instead carry the service's "nothing to split" sentinel
	// phrase; interpreting that phrase is the caller's policy.
	// The raw model response is cleaned (markdown fences, bracketed
	// annotations, surrounding quotes) before it is returned.
	// Returns an error if the service is unreachable or the call times out.
	Normalize(ctx context.Context, token string) (string, error)
}
