package mock

import (
	"context"
	"strings"

	"github.com/poiesic/querygen/ai"
)

// MockExtractor is a test double for ai.KeywordExtractor.
// It allows custom behavior injection via function fields.
type MockExtractor struct {
	// ExtractKeywordsFunc is called by ExtractKeywords if set.
	// If nil, uses default simple word extraction.
	ExtractKeywordsFunc func(ctx context.Context, text string) ([]ai.ExtractedKeyword, error)

	callCount int
}

// NewMockExtractor creates a mock keyword extractor with default behavior.
// Note: Returns concrete type to allow test assertions via GetMockExtractor().
func NewMockExtractor() *MockExtractor {
	return &MockExtractor{}
}

// ExtractKeywords extracts simple mock keywords from text.
// Default behavior: splits text by spaces and creates keywords from words.
func (m *MockExtractor) ExtractKeywords(ctx context.Context, text string) ([]ai.ExtractedKeyword, error) {
	m.callCount++

	if m.ExtractKeywordsFunc != nil {
		return m.ExtractKeywordsFunc(ctx, text)
	}

	// Default: extract simple keywords from words
	words := strings.Fields(strings.ToLower(text))
	if len(words) == 0 {
		return []ai.ExtractedKeyword{}, nil
	}

	// Create mock keywords from first few words
	keywords := make([]ai.ExtractedKeyword, 0, len(words))
	weight := 10.0
	for i, word := range words {
		if i >= 5 { // Limit to 5 keywords
			break
		}

		// Clean the word
		word = strings.Trim(word, ".,!?;:\"'()[]{}")
		if word == "" {
			continue
		}

		keywords = append(keywords, ai.ExtractedKeyword{
			Term:     word,
			Category: "skill",
			Weight:   weight,
		})

		// Decrease weight for each subsequent keyword
		if weight > 1 {
			weight--
		}
	}

	return keywords, nil
}

// CallCount returns the number of times ExtractKeywords was called.
func (m *MockExtractor) CallCount() int {
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *MockExtractor) Reset() {
	m.callCount = 0
	m.ExtractKeywordsFunc = nil
}
