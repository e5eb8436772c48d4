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


package specs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/skugraph/skugraph/ai"
)

// FragmentDelimiter separates key:value fragments within a raw specification string.
const FragmentDelimiter = "|"

// ReservedKeyASIN bypasses normalization: identification codes must stay verbatim.
const ReservedKeyASIN = "ASIN"

// DefaultSentinel is the phrase a model echoes when a token needs no
// rewriting. Matched case-insensitively against normalizer output.
const DefaultSentinel = "no glued words"

const (
	defaultMaxAttempts = 3
	defaultRetryDelay  = 1 * time.Second
)

// FallbackPolicy selects what Parse does with a fragment whose normalization
// remains unavailable after retries.
type FallbackPolicy int

const (
	// FallbackAbort fails the whole record. The default.
	FallbackAbort FallbackPolicy = iota

	// FallbackSkip drops the fragment and keeps the rest of the record.
	FallbackSkip

	// FallbackRaw stores the fragment's trimmed key and value unnormalized.
	FallbackRaw
)

// String returns a human-readable policy name.
func (p FallbackPolicy) String() string {
	switch p {
	case FallbackAbort:
		return "abort"
	case FallbackSkip:
		return "skip"
	case FallbackRaw:
		return "raw"
	default:
		return fmt.Sprintf("policy(%d)", int(p))
	}
}

// Parser turns a raw pipe-delimited specification string into a mapping of
// normalized keys to normalized values. Parsing itself is pure; the only I/O
// happens through the configured ai.Normalizer.
type Parser struct {
	normalizer   ai.Normalizer
	reservedKeys map[string]struct{}
	sentinel     string
	policy       FallbackPolicy
	maxAttempts  int
	baseDelay    time.Duration
	logger       *slog.Logger
}

// Option configures a Parser.
type Option func(*Parser)

// WithReservedKeys replaces the set of keys that bypass normalization.
// Matching is exact on the trimmed key. Default is ASIN only.
func WithReservedKeys(keys ...string) Option {
	return func(p *Parser) {
		p.reservedKeys = make(map[string]struct{}, len(keys))
		for _, key := range keys {
			p.reservedKeys[key] = struct{}{}
		}
	}
}

// WithSentinel replaces the "no transformation needed" phrase. The phrase is
// matched case-insensitively anywhere in the normalizer output; an empty
// phrase disables the check.
func WithSentinel(phrase string) Option {
	return func(p *Parser) {
		p.sentinel = strings.ToLower(strings.TrimSpace(phrase))
	}
}

// WithFallbackPolicy sets what happens to a fragment when normalization is
// unavailable after retries. Default is FallbackAbort.
func WithFallbackPolicy(policy FallbackPolicy) Option {
	return func(p *Parser) {
		p.policy = policy
	}
}

// WithRetry sets the per-token retry budget for normalizer calls.
// Values below 1 attempt or a non-positive delay fall back to the defaults.
func WithRetry(maxAttempts int, baseDelay time.Duration) Option {
	return func(p *Parser) {
		if maxAttempts < 1 {
			maxAttempts = defaultMaxAttempts
		}
		if baseDelay <= 0 {
			baseDelay = defaultRetryDelay
		}
		p.maxAttempts = maxAttempts
		p.baseDelay = baseDelay
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Parser) {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger.With("component", "spec-parser")
	}
}

// NewParser creates a parser that normalizes tokens through the given
// normalizer. Pass the cache-fronted normalizer in production wiring.
func NewParser(normalizer ai.Normalizer, opts ...Option) (*Parser, error) {
	if normalizer == nil {
		return nil, ErrNormalizerRequired
	}

	p := &Parser{
		normalizer:   normalizer,
		reservedKeys: map[string]struct{}{ReservedKeyASIN: {}},
		sentinel:     DefaultSentinel,
		policy:       FallbackAbort,
		maxAttempts:  defaultMaxAttempts,
		baseDelay:    defaultRetryDelay,
		logger:       slog.Default().With("component", "spec-parser"),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p, nil
}

// Parse splits raw into pipe-delimited fragments and returns the normalized
// key to value mapping. A blank input yields an empty map, never an error.
//
// Fragments without a colon contribute nothing. A fragment whose trimmed key
// matches a reserved key stores its trimmed value verbatim. Every other
// fragment splits on the first colon only, and key and value pass through
// the normalizer independently. Later fragments with a duplicate normalized
// key overwrite earlier ones.
func (p *Parser) Parse(ctx context.Context, raw string) (map[string]string, error) {
	result := make(map[string]string)

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return result, nil
	}

	for _, fragment := range strings.Split(raw, FragmentDelimiter) {
		fragment = strings.TrimSpace(fragment)
		if fragment == "" {
			continue
		}

		sep := strings.Index(fragment, ":")
		if sep < 0 {
			p.logger.Debug("dropping fragment without separator", "fragment", fragment)
			continue
		}

		key := strings.TrimSpace(fragment[:sep])
		value := strings.TrimSpace(fragment[sep+1:])
		if key == "" {
			p.logger.Debug("dropping fragment with empty key", "fragment", fragment)
			continue
		}

		if _, reserved := p.reservedKeys[key]; reserved {
			result[key] = value
			continue
		}

		normalKey, normalValue, err := p.normalizePair(ctx, key, value)
		if err == nil {
			result[normalKey] = normalValue
			continue
		}
		if !errors.Is(err, ErrNormalizationUnavailable) {
			return nil, err
		}

		switch p.policy {
		case FallbackSkip:
			p.logger.Warn("skipping fragment, normalization unavailable",
				"fragment", fragment, "err", err)
		case FallbackRaw:
			p.logger.Warn("storing fragment unnormalized, normalization unavailable",
				"fragment", fragment, "err", err)
			result[key] = value
		default:
			return nil, fmt.Errorf("fragment %q: %w", fragment, err)
		}
	}

	return result, nil
}

// normalizePair normalizes a fragment's key and value as a unit: if either
// token fails, the fragment fails.
func (p *Parser) normalizePair(ctx context.Context, key, value string) (string, string, error) {
	normalKey, err := p.normalizeToken(ctx, key)
	if err != nil {
		return "", "", err
	}

	normalValue, err := p.normalizeToken(ctx, value)
	if err != nil {
		return "", "", err
	}

	return normalKey, normalValue, nil
}

// normalizeToken runs one token through the normalizer with retries. A
// sentinel hit in the output keeps the original token. Context cancellation
// propagates as-is so callers never apply a fallback policy to it.
func (p *Parser) normalizeToken(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", nil
	}

	var output string
	err := RetryWithBackoff(ctx, func() error {
		var callErr error
		output, callErr = p.normalizer.Normalize(ctx, token)
		return callErr
	}, p.maxAttempts, p.baseDelay)
	if err != nil {
		if ctx.Err() != nil {
			return "", err
		}
		return "", fmt.Errorf("%w: token %q: %w", ErrNormalizationUnavailable, token, err)
	}

	if p.sentinel != "" && strings.Contains(strings.ToLower(output), p.sentinel) {
		p.logger.Debug("normalizer echoed sentinel, keeping original token",
			"token", token, "output", output)
		return token, nil
	}

	return output, nil
}
