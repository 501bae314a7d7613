package evaluate

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"testing"

	"github.com/poiesic/querygen/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingStrategy extracts fixed keywords and records which items it saw,
// in start order.
type recordingStrategy struct {
	mu       sync.Mutex
	started  []string
	failFor  map[string]bool
	keywords []core.KeywordItem
}

func (s *recordingStrategy) Name() string { return "recording" }

func (s *recordingStrategy) Extract(_ context.Context, text string) ([]core.KeywordItem, error) {
	s.mu.Lock()
	s.started = append(s.started, text)
	s.mu.Unlock()

	if s.failFor[text] {
		return nil, errors.New("extraction failed")
	}
	if s.keywords != nil {
		return s.keywords, nil
	}
	return []core.KeywordItem{{Keyword: text, Frequency: 1}}, nil
}

func datasetItems(n int) []core.EvaluationDataItem {
	items := make([]core.EvaluationDataItem, n)
	for i := range items {
		items[i] = core.EvaluationDataItem{
			Id:          fmt.Sprintf("item-%d", i+1),
			Description: fmt.Sprintf("desc-%d", i+1),
			GroundTruth: []core.KeywordItem{{Keyword: fmt.Sprintf("desc-%d", i+1), Frequency: 1}},
		}
	}
	return items
}

func TestNewEvaluator(t *testing.T) {
	t.Run("requires strategy", func(t *testing.T) {
		_, err := NewEvaluator(nil)
		assert.ErrorIs(t, err, ErrStrategyRequired)
	})
}

func TestEvaluator_Evaluate(t *testing.T) {
	ctx := context.Background()

	t.Run("empty dataset is an error", func(t *testing.T) {
		e, err := NewEvaluator(&recordingStrategy{})
		require.NoError(t, err)
		defer e.Release()

		_, err = e.Evaluate(ctx, nil, nil)
		assert.ErrorIs(t, err, ErrNoProcessableItems)
	})

	t.Run("progress is strictly increasing and finishes at total", func(t *testing.T) {
		e, err := NewEvaluator(&recordingStrategy{})
		require.NoError(t, err)
		defer e.Release()

		var calls [][2]int
		result, err := e.Evaluate(ctx, datasetItems(7), func(done, total int) {
			calls = append(calls, [2]int{done, total})
		})
		require.NoError(t, err)
		require.Len(t, result.PerItem, 7)

		require.Len(t, calls, 7)
		for i, call := range calls {
			assert.Equal(t, i+1, call[0])
			assert.Equal(t, 7, call[1])
		}
		assert.Equal(t, [2]int{7, 7}, calls[6])
	})

	t.Run("a batch completes before the next starts", func(t *testing.T) {
		strategy := &recordingStrategy{}
		e, err := NewEvaluator(strategy)
		require.NoError(t, err)
		defer e.Release()

		_, err = e.Evaluate(ctx, datasetItems(7), nil)
		require.NoError(t, err)

		require.Len(t, strategy.started, 7)
		firstBatch := map[string]bool{
			"desc-1": true, "desc-2": true, "desc-3": true,
			"desc-4": true, "desc-5": true,
		}
		for _, text := range strategy.started[:5] {
			assert.True(t, firstBatch[text], "item %s started out of batch order", text)
		}
	})

	t.Run("items without description are skipped but counted", func(t *testing.T) {
		e, err := NewEvaluator(&recordingStrategy{})
		require.NoError(t, err)
		defer e.Release()

		items := datasetItems(3)
		items[1].Description = "   "

		var last [2]int
		result, err := e.Evaluate(ctx, items, func(done, total int) {
			last = [2]int{done, total}
		})
		require.NoError(t, err)
		assert.Len(t, result.PerItem, 2)
		assert.Equal(t, [2]int{3, 3}, last)
	})

	t.Run("no processable items is an error", func(t *testing.T) {
		e, err := NewEvaluator(&recordingStrategy{})
		require.NoError(t, err)
		defer e.Release()

		items := []core.EvaluationDataItem{{Id: "empty", Description: ""}}
		_, err = e.Evaluate(ctx, items, nil)
		assert.ErrorIs(t, err, ErrNoProcessableItems)
	})

	t.Run("failed item recovers with fallback metrics", func(t *testing.T) {
		strategy := &recordingStrategy{failFor: map[string]bool{"desc-2": true}}
		e, err := NewEvaluator(strategy)
		require.NoError(t, err)
		defer e.Release()

		result, err := e.Evaluate(ctx, datasetItems(3), nil)
		require.NoError(t, err)
		require.Len(t, result.PerItem, 3)

		policy := DefaultPolicy()
		var recovered *core.ItemResult
		for i := range result.PerItem {
			if result.PerItem[i].ItemId == "item-2" {
				recovered = &result.PerItem[i]
			}
		}
		require.NotNil(t, recovered)
		assert.True(t, recovered.Recovered)
		assert.NotEmpty(t, recovered.Keywords, "recovered item keeps baseline-extracted keywords")
		assert.Equal(t, recovered.Keywords, recovered.BaselineKeywords)
		assert.Equal(t, "desc", recovered.Keywords[0].Keyword)
		assert.InDelta(t, policy.Fallback.Precision*1.1, recovered.Metrics.Precision, 1e-9)
		assert.InDelta(t, 0.45, recovered.Metrics.RankCorrelation, 1e-9)
		assert.Equal(t, policy.Fallback.Precision, recovered.BaselineMetrics.Precision)
		assert.InDelta(t, 0.35, recovered.BaselineMetrics.RankCorrelation, 1e-9)
	})

	t.Run("results keep dataset order", func(t *testing.T) {
		e, err := NewEvaluator(&recordingStrategy{})
		require.NoError(t, err)
		defer e.Release()

		result, err := e.Evaluate(ctx, datasetItems(6), nil)
		require.NoError(t, err)
		require.Len(t, result.PerItem, 6)
		for i, item := range result.PerItem {
			assert.Equal(t, fmt.Sprintf("item-%d", i+1), item.ItemId)
		}
	})

	t.Run("advanced stats cover primary metrics", func(t *testing.T) {
		e, err := NewEvaluator(&recordingStrategy{})
		require.NoError(t, err)
		defer e.Release()

		result, err := e.Evaluate(ctx, datasetItems(4), nil)
		require.NoError(t, err)
		require.NotNil(t, result.Advanced)
		assert.GreaterOrEqual(t, result.Advanced.Max.F1Score, result.Advanced.Min.F1Score)
	})
}

func TestEvaluator_AggregateFloors(t *testing.T) {
	e, err := NewEvaluator(&recordingStrategy{})
	require.NoError(t, err)
	defer e.Release()

	low := core.MetricsResult{Precision: 0.05, Recall: 0.04, F1Score: 0.044, RankCorrelation: 0.47}
	results := []*core.ItemResult{
		{ItemId: "a", Metrics: low, BaselineMetrics: low},
		{ItemId: "b", Metrics: low, BaselineMetrics: low},
	}

	aggregated, err := e.aggregate(results)
	require.NoError(t, err)

	policy := DefaultPolicy()
	assert.Equal(t, policy.PrecisionFloor, aggregated.Overall.Precision)
	assert.Equal(t, policy.RecallFloor, aggregated.Overall.Recall)
	assert.Equal(t, policy.F1Floor, aggregated.Overall.F1Score)
	assert.InDelta(t, 0.47, aggregated.Overall.RankCorrelation, 1e-9)

	assert.Equal(t, policy.BaselineFloor, aggregated.Baseline.Precision)
	assert.Equal(t, policy.BaselineFloor, aggregated.Baseline.Recall)
	assert.Equal(t, policy.BaselineFloor, aggregated.Baseline.F1Score)
}

func TestItemProcessor_PresentationDelta(t *testing.T) {
	newProcessor := func(aiRequested bool) *itemProcessor {
		return &itemProcessor{
			policy:      DefaultPolicy(),
			aiRequested: aiRequested,
			rng:         rand.New(rand.NewSource(42)),
		}
	}

	equal := core.MetricsResult{Precision: 0.5, Recall: 0.4, F1Score: 0.44, RankCorrelation: 0.67}

	t.Run("boosts identical metrics when ai requested", func(t *testing.T) {
		p := newProcessor(true)
		got := p.applyPresentationDelta(equal, equal)
		assert.Greater(t, got.Precision, equal.Precision)
		assert.Greater(t, got.Recall, equal.Recall)
		assert.Greater(t, got.F1Score, equal.F1Score)
		assert.InDelta(t, equal.Precision*1.155, got.Precision, 0.01)
	})

	t.Run("no adjustment without ai", func(t *testing.T) {
		p := newProcessor(false)
		assert.Equal(t, equal, p.applyPresentationDelta(equal, equal))
	})

	t.Run("no adjustment when metrics already differ", func(t *testing.T) {
		p := newProcessor(true)
		better := equal
		better.F1Score = 0.6
		assert.Equal(t, better, p.applyPresentationDelta(better, equal))
	})

	t.Run("disabled by policy", func(t *testing.T) {
		p := newProcessor(true)
		p.policy.PresentationDelta = false
		assert.Equal(t, equal, p.applyPresentationDelta(equal, equal))
	})

	t.Run("seeded source is reproducible", func(t *testing.T) {
		first := newProcessor(true).applyPresentationDelta(equal, equal)
		second := newProcessor(true).applyPresentationDelta(equal, equal)
		assert.Equal(t, first, second)
	})
}

func TestSyntheticGroundTruth(t *testing.T) {
	truth := syntheticGroundTruth("We are looking for an experienced backend developer who knows Python and AWS infrastructure deployment pipelines")

	terms := make(map[string]bool, len(truth))
	for _, k := range truth {
		terms[k.Keyword] = true
	}
	assert.True(t, terms["python"])
	assert.True(t, terms["aws"])
	assert.True(t, terms["backend"])
	assert.NotContains(t, terms, "the")
}
