package extract

import (
	"context"
	"errors"

	"github.com/poiesic/querygen/ai"
	"github.com/poiesic/querygen/core"
)

// ErrNilExtractor indicates an AIStrategy was constructed without a backing
// service.
var ErrNilExtractor = errors.New("ai strategy requires a keyword extractor")

// AIStrategy adapts an ai.KeywordExtractor into an extraction Strategy so
// the model-backed extractor can sit at the front of a Chain with the
// semantic and baseline strategies behind it.
type AIStrategy struct {
	extractor ai.KeywordExtractor
}

// NewAIStrategy wraps a keyword extraction service as a Strategy.
func NewAIStrategy(extractor ai.KeywordExtractor) (*AIStrategy, error) {
	if extractor == nil {
		return nil, ErrNilExtractor
	}
	return &AIStrategy{extractor: extractor}, nil
}

// Name implements Strategy.
func (s *AIStrategy) Name() string {
	return "ai"
}

// Extract implements Strategy. Service errors propagate so the chain falls
// through to the next strategy.
func (s *AIStrategy) Extract(ctx context.Context, text string) ([]core.KeywordItem, error) {
	extracted, err := s.extractor.ExtractKeywords(ctx, text)
	if err != nil {
		return nil, err
	}

	keywords := make([]core.KeywordItem, 0, len(extracted))
	for _, k := range extracted {
		keywords = append(keywords, core.KeywordItem{
			Keyword:   k.Term,
			Frequency: k.Weight,
			Category:  k.Category,
		})
	}
	return keywords, nil
}
