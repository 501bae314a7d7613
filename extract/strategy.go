package extract

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/poiesic/querygen/core"
)

var (
	// ErrNoStrategies indicates a Chain was constructed without strategies.
	ErrNoStrategies = errors.New("extraction chain requires at least one strategy")

	// ErrAllStrategiesFailed indicates every strategy in a Chain returned an error.
	ErrAllStrategiesFailed = errors.New("all extraction strategies failed")
)

// Strategy is a keyword extraction algorithm. Implementations return their
// keywords ranked by descending frequency. An error signals the caller
// should fall through to the next strategy; strategies that can always
// degrade internally (like Baseline) simply never return one.
type Strategy interface {
	// Name identifies the strategy in logs and results.
	Name() string

	// Extract produces ranked keywords for the given text.
	Extract(ctx context.Context, text string) ([]core.KeywordItem, error)
}

// Chain tries strategies in order and returns the first successful result.
// It makes the extraction fallback policy an explicit object: callers see
// which strategy produced the keywords, and tests can assert on the
// fall-through behavior directly.
type Chain struct {
	strategies []Strategy
	logger     *slog.Logger
}

// NewChain creates a Chain over the given strategies, tried first to last.
func NewChain(strategies ...Strategy) (*Chain, error) {
	if len(strategies) == 0 {
		return nil, ErrNoStrategies
	}
	return &Chain{
		strategies: strategies,
		logger:     slog.Default().With("component", "extract-chain"),
	}, nil
}

// Name returns the name of the first strategy, which is the chain's
// preferred extractor.
func (c *Chain) Name() string {
	return c.strategies[0].Name()
}

// Extract runs the chain. Each failing strategy is logged and skipped; the
// first success wins. If every strategy fails, the last error is returned
// wrapped in ErrAllStrategiesFailed.
func (c *Chain) Extract(ctx context.Context, text string) ([]core.KeywordItem, error) {
	keywords, _, err := c.ExtractTraced(ctx, text)
	return keywords, err
}

// ExtractTraced is Extract plus the name of the strategy that produced the
// result, for callers that report which extractor ran.
func (c *Chain) ExtractTraced(ctx context.Context, text string) ([]core.KeywordItem, string, error) {
	var lastErr error
	for _, s := range c.strategies {
		keywords, err := s.Extract(ctx, text)
		if err != nil {
			c.logger.Warn("extraction strategy failed, falling through",
				"strategy", s.Name(),
				"err", err)
			lastErr = err
			continue
		}
		return keywords, s.Name(), nil
	}
	return nil, "", fmt.Errorf("%w: %w", ErrAllStrategiesFailed, lastErr)
}
