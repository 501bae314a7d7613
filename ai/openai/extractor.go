// Copyright 2025 Poiesic Systems
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
	"encoding/json"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/poiesic/querygen/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Transport failures (timeouts, connection resets) are retried before the
// extraction attempt is counted as failed.
const (
	transportMaxAttempts = 3
	transportBaseDelay   = 500 * time.Millisecond
)

// KeywordExtractor implements ai.KeywordExtractor using OpenAI-compatible chat APIs.
// Without a live API key it never touches the network and produces a
// deterministic keyword list from the text itself.
type KeywordExtractor struct {
	client      llms.Model
	offline     bool
	maxKeywords int
	logger      *slog.Logger
}

// keyword is an internal type used for JSON unmarshaling.
// It matches the structure expected from the LLM.
type keyword struct {
	Keyword  string  `json:"keyword"`
	Category string  `json:"category"`
	Weight   float64 `json:"weight"`
}

// analysis is the wrapper structure for the LLM's JSON response.
type analysis struct {
	Keywords []keyword `json:"keywords"`
}

// newKeywordExtractor is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newKeywordExtractor(config *ai.Config) (*KeywordExtractor, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	logger := slog.Default().With("component", "openai-extractor")

	if !config.HasLiveKey() {
		logger.Info("no live API key configured, using offline extraction")
		return &KeywordExtractor{
			offline:     true,
			maxKeywords: config.MaxKeywords,
			logger:      logger,
		}, nil
	}

	client, err := openai.New(
		openai.WithBaseURL(config.ExtractorHost),
		openai.WithToken(config.APIKey),
		openai.WithModel(config.ExtractorModel),
	)
	if err != nil {
		return nil, err
	}

	return &KeywordExtractor{
		client:      client,
		maxKeywords: config.MaxKeywords,
		logger:      logger,
	}, nil
}

// NewKeywordExtractor creates a new keyword extractor using the provided configuration.
//
// Returns ai.KeywordExtractor interface to enforce abstraction.
func NewKeywordExtractor(config *ai.Config) (ai.KeywordExtractor, error) {
	return newKeywordExtractor(config)
}

// ExtractKeywords extracts weighted keywords from a job description using an LLM,
// or deterministically offline when no live key is configured.
func (e *KeywordExtractor) ExtractKeywords(ctx context.Context, text string) ([]ai.ExtractedKeyword, error) {
	if e.offline {
		return extractOffline(text, e.maxKeywords), nil
	}

	// Build the system and user prompts
	systemPrompt := buildSystemPrompt(e.maxKeywords)
	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(systemPrompt),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(text),
			},
		},
	}

	// Try up to 3 times in case of malformed JSON
	var result analysis
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		var response *llms.ContentResponse
		err := retryWithBackoff(ctx, func() error {
			var genErr error
			response, genErr = e.client.GenerateContent(ctx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
			return genErr
		}, transportMaxAttempts, transportBaseDelay)
		if err != nil {
			e.logger.Error("failed to generate content", "attempt", attempt+1, "err", err)
			return nil, err
		}

		if len(response.Choices) < 1 {
			e.logger.Debug("no choices returned from model")
			return []ai.ExtractedKeyword{}, nil
		}

		choice := response.Choices[0]

		// Strip markdown code fences if present
		responseText := strings.TrimSpace(choice.Content)
		responseText = strings.TrimPrefix(responseText, "```json")
		responseText = strings.TrimPrefix(responseText, "```")
		responseText = strings.TrimSuffix(responseText, "```")
		responseText = strings.TrimSpace(responseText)

		// Try to repair common JSON issues
		responseText = repairJSON(responseText)

		if err := json.Unmarshal([]byte(responseText), &result); err != nil {
			lastErr = err
			e.logger.Warn("error parsing extractor response",
				"attempt", attempt+1,
				"response", responseText,
				"err", err)
			continue
		}

		// Success
		lastErr = nil
		break
	}

	if lastErr != nil {
		e.logger.Error("failed to parse extractor response after retries", "err", lastErr)
		return nil, lastErr
	}

	// Convert, normalizing terms and categories
	extracted := make([]ai.ExtractedKeyword, 0, len(result.Keywords))
	for _, k := range result.Keywords {
		term := strings.ToLower(strings.TrimSpace(k.Keyword))
		if term == "" {
			continue
		}
		extracted = append(extracted, ai.ExtractedKeyword{
			Term:     term,
			Category: normalizeCategory(k.Category),
			Weight:   k.Weight,
		})
	}

	// Sort by weight (descending)
	slices.SortFunc(extracted, func(a, b ai.ExtractedKeyword) int {
		if a.Weight == b.Weight {
			return strings.Compare(a.Term, b.Term)
		}
		if a.Weight < b.Weight {
			return 1
		}
		return -1
	})

	if len(extracted) > e.maxKeywords {
		extracted = extracted[:e.maxKeywords]
	}

	e.logger.Debug("extracted keywords",
		"total", len(result.Keywords),
		"returned", len(extracted))

	return extracted, nil
}

// normalizeCategory maps model output onto the canonical category set.
// Unknown values become "other".
func normalizeCategory(category string) string {
	category = strings.ToLower(strings.TrimSpace(category))
	for _, c := range ai.KeywordCategories {
		if category == c {
			return c
		}
	}
	switch category {
	case "job title", "title", "position":
		return "role"
	case "technology", "tool", "language", "framework":
		return "skill"
	case "education", "certification", "experience":
		return "qualification"
	}
	return "other"
}
