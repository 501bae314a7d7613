package extract

import (
	"context"
	"errors"
	"testing"

	"github.com/poiesic/querygen/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubStrategy is a scriptable Strategy for chain tests.
type stubStrategy struct {
	name     string
	keywords []core.KeywordItem
	err      error
	calls    int
}

func (s *stubStrategy) Name() string { return s.name }

func (s *stubStrategy) Extract(_ context.Context, _ string) ([]core.KeywordItem, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.keywords, nil
}

func TestNewChain(t *testing.T) {
	t.Run("requires at least one strategy", func(t *testing.T) {
		_, err := NewChain()
		assert.ErrorIs(t, err, ErrNoStrategies)
	})

	t.Run("name is first strategy name", func(t *testing.T) {
		chain, err := NewChain(&stubStrategy{name: "semantic"}, &stubStrategy{name: "baseline"})
		require.NoError(t, err)
		assert.Equal(t, "semantic", chain.Name())
	})
}

func TestChain_Extract(t *testing.T) {
	ctx := context.Background()
	want := []core.KeywordItem{{Keyword: "golang", Frequency: 3}}

	t.Run("first success wins", func(t *testing.T) {
		first := &stubStrategy{name: "first", keywords: want}
		second := &stubStrategy{name: "second"}
		chain, err := NewChain(first, second)
		require.NoError(t, err)

		keywords, err := chain.Extract(ctx, "text")
		require.NoError(t, err)
		assert.Equal(t, want, keywords)
		assert.Equal(t, 1, first.calls)
		assert.Equal(t, 0, second.calls)
	})

	t.Run("falls through on error", func(t *testing.T) {
		first := &stubStrategy{name: "first", err: errors.New("model unavailable")}
		second := &stubStrategy{name: "second", keywords: want}
		chain, err := NewChain(first, second)
		require.NoError(t, err)

		keywords, used, err := chain.ExtractTraced(ctx, "text")
		require.NoError(t, err)
		assert.Equal(t, want, keywords)
		assert.Equal(t, "second", used)
		assert.Equal(t, 1, first.calls)
	})

	t.Run("all failures report last error", func(t *testing.T) {
		lastErr := errors.New("still broken")
		chain, err := NewChain(
			&stubStrategy{name: "first", err: errors.New("broken")},
			&stubStrategy{name: "second", err: lastErr},
		)
		require.NoError(t, err)

		_, err = chain.Extract(ctx, "text")
		assert.ErrorIs(t, err, ErrAllStrategiesFailed)
		assert.ErrorIs(t, err, lastErr)
	})
}

func TestChain_SemanticOverBaseline(t *testing.T) {
	// The production configuration: semantic first, baseline terminal.
	chain, err := NewChain(NewSemantic(), NewBaseline())
	require.NoError(t, err)

	keywords, used, err := chain.ExtractTraced(context.Background(), "machine learning with python and python")
	require.NoError(t, err)
	assert.Equal(t, "semantic", used)
	assert.NotEmpty(t, keywords)
}
