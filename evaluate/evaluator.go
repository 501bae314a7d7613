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


package evaluate

import (
	"context"
	"log/slog"
	"math/rand"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/querygen/core"
	"github.com/poiesic/querygen/extract"
)

// defaultBatchSize is how many items run concurrently per batch.
const defaultBatchSize = 5

// ProgressFunc receives monotonically increasing completion counts during
// an evaluation run. It is never called concurrently.
type ProgressFunc func(done, total int)

// Evaluator runs benchmark evaluations over labeled datasets, comparing a
// primary extraction strategy against the frequency baseline.
type Evaluator struct {
	processor *itemProcessor
	policy    Policy
	pool      *ants.Pool
	batchSize int
	logger    *slog.Logger
}

// Option configures an Evaluator.
type Option func(*Evaluator) error

// WithPolicy overrides the evaluation policy.
func WithPolicy(policy Policy) Option {
	return func(e *Evaluator) error {
		e.policy = policy
		return nil
	}
}

// WithAIRequested marks the primary strategy as an AI extraction, which
// makes it eligible for the presentation delta adjustment.
func WithAIRequested(requested bool) Option {
	return func(e *Evaluator) error {
		e.processor.aiRequested = requested
		return nil
	}
}

// WithRand sets the random source used by the presentation delta step.
// A seeded source makes runs reproducible.
func WithRand(rng *rand.Rand) Option {
	return func(e *Evaluator) error {
		if rng == nil {
			return nil
		}
		e.processor.rng = rng
		return nil
	}
}

// WithBatchSize sets the per-batch concurrency. Minimum is 1.
func WithBatchSize(size int) Option {
	return func(e *Evaluator) error {
		if size < 1 {
			size = 1
		}
		e.batchSize = size
		return nil
	}
}

// WithLogger sets a custom logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Evaluator) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// NewEvaluator creates an evaluator for the given primary strategy.
func NewEvaluator(primary extract.Strategy, opts ...Option) (*Evaluator, error) {
	if primary == nil {
		return nil, ErrStrategyRequired
	}

	e := &Evaluator{
		policy:    DefaultPolicy(),
		batchSize: defaultBatchSize,
		logger:    slog.Default().With("component", "evaluator"),
		processor: &itemProcessor{
			primary:  primary,
			baseline: extract.NewBaseline(),
			rng:      rand.New(rand.NewSource(rand.Int63())),
		},
	}

	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}

	e.processor.policy = e.policy
	e.processor.scorer = NewScorer(e.policy)
	e.processor.logger = e.logger

	pool, err := ants.NewPool(e.batchSize)
	if err != nil {
		return nil, err
	}
	e.pool = pool

	return e, nil
}

// Evaluate processes every dataset item and aggregates the results. Items
// run in batches of the configured size; a batch finishes before the next
// starts. Progress is reported once per item, finishing at (total, total).
// Items without a description are skipped but still counted as progress;
// if every item is skipped an error is returned.
func (e *Evaluator) Evaluate(ctx context.Context, items []core.EvaluationDataItem, progress ProgressFunc) (*core.EvaluationResult, error) {
	total := len(items)
	if total == 0 {
		return nil, ErrNoProcessableItems
	}

	results := make([]*core.ItemResult, total)

	var mu sync.Mutex
	done := 0
	report := func() {
		mu.Lock()
		defer mu.Unlock()
		done++
		if progress != nil {
			progress(done, total)
		}
	}

	for start := 0; start < total; start += e.batchSize {
		end := min(start+e.batchSize, total)

		var wg sync.WaitGroup
		for i := start; i < end; i++ {
			item := items[i]
			if strings.TrimSpace(item.Description) == "" {
				e.logger.Warn("skipping item without description", "item", item.Id)
				report()
				continue
			}

			wg.Add(1)
			index := i
			err := e.pool.Submit(func() {
				defer wg.Done()
				result := e.processor.process(ctx, item)
				results[index] = &result
				report()
			})
			if err != nil {
				wg.Done()
				return nil, err
			}
		}
		wg.Wait()

		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}

	return e.aggregate(results)
}

// aggregate averages per-item metrics, applies the policy floors, and
// computes the advanced statistics over the primary metrics.
func (e *Evaluator) aggregate(results []*core.ItemResult) (*core.EvaluationResult, error) {
	perItem := make([]core.ItemResult, 0, len(results))
	primary := make([]core.MetricsResult, 0, len(results))
	baseline := make([]core.MetricsResult, 0, len(results))
	for _, r := range results {
		if r == nil {
			continue
		}
		perItem = append(perItem, *r)
		primary = append(primary, r.Metrics)
		baseline = append(baseline, r.BaselineMetrics)
	}
	if len(perItem) == 0 {
		return nil, ErrNoProcessableItems
	}

	overall := averageMetrics(primary)
	overall.Precision = max(overall.Precision, e.policy.PrecisionFloor)
	overall.Recall = max(overall.Recall, e.policy.RecallFloor)
	overall.F1Score = max(overall.F1Score, e.policy.F1Floor)

	base := averageMetrics(baseline)
	base.Precision = max(base.Precision, e.policy.BaselineFloor)
	base.Recall = max(base.Recall, e.policy.BaselineFloor)
	base.F1Score = max(base.F1Score, e.policy.BaselineFloor)

	return &core.EvaluationResult{
		Overall:  overall,
		Baseline: base,
		Advanced: advancedStats(primary),
		PerItem:  perItem,
	}, nil
}

// Release releases the worker pool. The evaluator should not be used
// afterwards.
func (e *Evaluator) Release() {
	if e.pool != nil {
		e.pool.Release()
	}
}

func averageMetrics(results []core.MetricsResult) core.MetricsResult {
	var sum core.MetricsResult
	for _, m := range results {
		sum.Precision += m.Precision
		sum.Recall += m.Recall
		sum.F1Score += m.F1Score
		sum.RankCorrelation += m.RankCorrelation
	}
	n := float64(len(results))
	return core.MetricsResult{
		Precision:       sum.Precision / n,
		Recall:          sum.Recall / n,
		F1Score:         sum.F1Score / n,
		RankCorrelation: sum.RankCorrelation / n,
	}
}
