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


package openai

import (
	"context"
	"log/slog"
	"time"

	"github.com/skugraph/skugraph/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Normalizer implements ai.Normalizer using OpenAI-compatible chat APIs.
type Normalizer struct {
	client  llms.Model
	timeout time.Duration
	logger  *slog.Logger
}

// newNormalizer is an internal constructor that returns the concrete type.
func newNormalizer(config *ai.Config) (*Normalizer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Create OpenAI client configured for chat completion
	// Use "none" as token for local OpenAI-compatible services that don't require authentication
	client, err := openai.New(
		openai.WithBaseURL(config.Host),
		openai.WithToken("none"),
		openai.WithModel(config.Model),
	)
	if err != nil {
		return nil, err
	}

	return &Normalizer{
		client:  client,
		timeout: config.RequestTimeout,
		logger:  slog.Default().With("component", "openai-normalizer"),
	}, nil
}

// NewNormalizer creates a normalizer backed by an OpenAI-compatible chat model.
// The config is validated and normalized before use.
//
// Returns ai.Normalizer interface to enforce abstraction.
func NewNormalizer(config *ai.Config) (ai.Normalizer, error) {
	return newNormalizer(config)
}

// Normalize rewrites a glued token into separated words using the chat model.
// Each call is bounded by the configured request timeout.
func (n *Normalizer) Normalize(ctx context.Context, token string) (string, error) {
	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(splitWordsPrompt),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(token),
			},
		},
	}

	if n.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, n.timeout)
		defer cancel()
	}

	response, err := n.client.GenerateContent(ctx, content, llms.WithTemperature(0.0))
	if err != nil {
		n.logger.Error("failed to generate content", "token", token, "err", err)
		return "", err
	}

	if len(response.Choices) < 1 {
		n.logger.Debug("no choices returned from model", "token", token)
		return token, nil
	}

	rewritten := cleanResponse(response.Choices[0].Content)
	if rewritten == "" {
		n.logger.Debug("model returned an empty rewrite", "token", token)
		return token, nil
	}

	n.logger.Debug("normalized token", "token", token, "rewritten", rewritten)
	return rewritten, nil
}
