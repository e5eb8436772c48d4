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


// Package openai implements text normalization using OpenAI-compatible APIs.
//
// This package implements the ai.Normalizer interface using the langchaingo
// library to communicate with OpenAI or OpenAI-compatible services (such as
// Ollama, LocalAI, or vLLM). The model is asked to split glued compound
// tokens such as "ProductDimensions" into plain words while leaving numbers
// untouched.
//
// # Usage
//
//	config := ai.DefaultConfig()
//	// Or customize:
//	config := ai.NewConfig(
//	    ai.WithHost("http://localhost:11434"), // /v1 added automatically
//	    ai.WithModel("llama3.1:latest"),
//	)
//
//	normalizer, err := openai.NewNormalizer(config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	text, err := normalizer.Normalize(ctx, "Manufacturerrecommendedage")
//
// Responses are cleaned before they are returned: markdown fences, bracketed
// annotations, and surrounding quotes added by chatty models are stripped.
package openai
