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


package querygen

import (
	"context"
	"log/slog"
	"time"

	"github.com/poiesic/querygen/ai"
	"github.com/poiesic/querygen/ai/openai"
	"github.com/poiesic/querygen/core"
	"github.com/poiesic/querygen/embed"
	"github.com/poiesic/querygen/evaluate"
	"github.com/poiesic/querygen/extract"
	"github.com/poiesic/querygen/query"
	"github.com/poiesic/querygen/relate"
	"github.com/poiesic/querygen/storage"
	"github.com/poiesic/querygen/storage/badger"
)

// Engine wires storage, the AI provider, extraction strategies, the
// relationship engine, the query synthesizer, and the evaluator behind a
// single handle. It is the entry point library consumers and the CLI use.
type Engine struct {
	backend     *badger.Backend
	queryRepo   storage.QueryRepository
	runRepo     storage.RunRepository
	provider    ai.AIProvider
	embedder    *embed.Provider
	relations   *relate.Engine
	synthesizer *query.Synthesizer
	primary     *extract.Chain
	baseline    *extract.Baseline
	policy      evaluate.Policy
	useAI       bool
	logger      *slog.Logger
}

// Option configures an Engine.
type Option func(*engineOptions)

type engineOptions struct {
	aiConfig *ai.Config
	policy   evaluate.Policy
	inMemory bool
	useAI    bool
}

// WithAIConfig overrides the AI provider configuration.
func WithAIConfig(config *ai.Config) Option {
	return func(o *engineOptions) {
		o.aiConfig = config
	}
}

// WithPolicy overrides the evaluation policy.
func WithPolicy(policy evaluate.Policy) Option {
	return func(o *engineOptions) {
		o.policy = policy
	}
}

// WithInMemoryStorage keeps all records in memory. Intended for tests and
// one-shot CLI invocations that do not need history.
func WithInMemoryStorage() Option {
	return func(o *engineOptions) {
		o.inMemory = true
	}
}

// WithAIExtraction puts the AI strategy at the front of the extraction
// chain. Without it the chain is semantic then baseline.
func WithAIExtraction(enabled bool) Option {
	return func(o *engineOptions) {
		o.useAI = enabled
	}
}

func NewEngine(filePath string, opts ...Option) (*Engine, error) {
	// Apply options
	options := &engineOptions{
		aiConfig: ai.DefaultConfig(), // Default if not provided
		policy:   evaluate.DefaultPolicy(),
	}
	for _, opt := range opts {
		opt(options)
	}
	// Open backend
	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	// Create query repository
	queryRepo, err := badger.NewQueryRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	// Create run repository
	runRepo, err := badger.NewRunRepository(backend)
	if err != nil {
		queryRepo.Close()
		backend.Close()
		return nil, err
	}

	// Create AI provider with configured settings
	provider, err := openai.NewProvider(options.aiConfig)
	if err != nil {
		runRepo.Close()
		queryRepo.Close()
		backend.Close()
		return nil, err
	}

	engine, err := assemble(backend, queryRepo, runRepo, provider, options)
	if err != nil {
		provider.Close()
		runRepo.Close()
		queryRepo.Close()
		backend.Close()
		return nil, err
	}
	return engine, nil
}

// assemble builds the stateless pipeline components on top of the opened
// storage and provider.
func assemble(backend *badger.Backend, queryRepo storage.QueryRepository, runRepo storage.RunRepository, provider ai.AIProvider, options *engineOptions) (*Engine, error) {
	embedder, err := embed.NewProvider(provider.Embedder(), embed.NewCache())
	if err != nil {
		return nil, err
	}

	relations, err := relate.NewEngine(embedder)
	if err != nil {
		return nil, err
	}

	synthesizer, err := query.NewSynthesizer(query.WithEngine(relations))
	if err != nil {
		return nil, err
	}

	baseline := extract.NewBaseline()
	strategies := []extract.Strategy{extract.NewSemantic(), baseline}
	if options.useAI {
		aiStrategy, err := extract.NewAIStrategy(provider.KeywordExtractor())
		if err != nil {
			return nil, err
		}
		strategies = append([]extract.Strategy{aiStrategy}, strategies...)
	}
	primary, err := extract.NewChain(strategies...)
	if err != nil {
		return nil, err
	}

	return &Engine{
		backend:     backend,
		queryRepo:   queryRepo,
		runRepo:     runRepo,
		provider:    provider,
		embedder:    embedder,
		relations:   relations,
		synthesizer: synthesizer,
		primary:     primary,
		baseline:    baseline,
		policy:      options.policy,
		useAI:       options.useAI,
		logger:      slog.Default().With("component", "engine"),
	}, nil
}

func (e *Engine) Close() error {
	// Close AI provider first
	if err := e.provider.Close(); err != nil {
		e.logger.Error("error closing AI provider", "err", err)
	}

	// Close repositories
	if err := e.runRepo.Close(); err != nil {
		e.logger.Error("error closing run repository", "err", err)
		return err
	}
	if err := e.queryRepo.Close(); err != nil {
		e.logger.Error("error closing query repository", "err", err)
		return err
	}

	// Close backend
	if err := e.backend.Close(); err != nil {
		e.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

// ExtractKeywords runs the configured extraction chain and categorizes the
// result. The returned strategy name identifies which extractor produced
// the keywords.
func (e *Engine) ExtractKeywords(ctx context.Context, text string) ([]core.KeywordItem, string, error) {
	keywords, strategy, err := e.primary.ExtractTraced(ctx, text)
	if err != nil {
		return nil, "", err
	}
	return extract.Categorize(keywords), strategy, nil
}

// ExtractBaseline runs only the lexical frequency extractor.
func (e *Engine) ExtractBaseline(ctx context.Context, text string) ([]core.KeywordItem, error) {
	return e.baseline.Extract(ctx, text)
}

// GenerateQuery synthesizes a Boolean search query from the keywords.
func (e *Engine) GenerateQuery(ctx context.Context, keywords []core.KeywordItem) string {
	return e.synthesizer.Synthesize(ctx, keywords)
}

// Relationships computes the term connection and cluster graph for the
// keywords.
func (e *Engine) Relationships(ctx context.Context, keywords []core.KeywordItem) (core.TermGraph, error) {
	return e.relations.Relate(ctx, keywords)
}

// SaveQuery persists a synthesized query with the keywords it came from.
// Saving the same query text twice is idempotent.
func (e *Engine) SaveQuery(ctx context.Context, queryText string, keywords []core.KeywordItem) (*core.QueryRecord, error) {
	return e.queryRepo.SaveQuery(ctx, &core.QueryRecord{
		Query:    queryText,
		Keywords: keywords,
	})
}

// RecentQueries returns up to limit saved queries, newest first.
func (e *Engine) RecentQueries(ctx context.Context, limit int) ([]*core.QueryRecord, error) {
	return e.queryRepo.RecentQueries(ctx, limit)
}

// RecentRuns returns up to limit evaluation run summaries, newest first.
func (e *Engine) RecentRuns(ctx context.Context, limit int) ([]*core.RunRecord, error) {
	return e.runRepo.RecentRuns(ctx, limit)
}

// Evaluate scores the extraction chain against the labeled dataset and
// records a run summary. The dataset name is only used for the stored
// summary; progress may be nil.
func (e *Engine) Evaluate(ctx context.Context, dataset string, items []core.EvaluationDataItem, progress evaluate.ProgressFunc) (*core.EvaluationResult, error) {
	evaluator, err := evaluate.NewEvaluator(e.primary,
		evaluate.WithPolicy(e.policy),
		evaluate.WithAIRequested(e.useAI))
	if err != nil {
		return nil, err
	}
	defer evaluator.Release()

	started := time.Now()
	result, err := evaluator.Evaluate(ctx, items, progress)
	if err != nil {
		return nil, err
	}

	if _, err := e.runRepo.AddRun(ctx, &core.RunRecord{
		Dataset:   dataset,
		ItemCount: len(result.PerItem),
		UsedAI:    e.useAI,
		Overall:   result.Overall,
		Baseline:  result.Baseline,
		Elapsed:   time.Since(started),
	}); err != nil {
		e.logger.Error("error recording evaluation run", "err", err)
	}
	return result, nil
}

// Comparison holds the side-by-side output of the baseline and semantic
// extractors over the same text.
type Comparison struct {
	Baseline        []core.KeywordItem
	Semantic        []core.KeywordItem
	Overlap         int
	BaselineElapsed time.Duration
	SemanticElapsed time.Duration
}

// Compare runs the baseline and semantic extractors over the text and
// reports their keyword lists, normalized term overlap, and timings.
func (e *Engine) Compare(ctx context.Context, text string) (*Comparison, error) {
	started := time.Now()
	baseline, err := e.baseline.Extract(ctx, text)
	if err != nil {
		return nil, err
	}
	baselineElapsed := time.Since(started)

	started = time.Now()
	semantic, err := extract.NewSemantic().Extract(ctx, text)
	if err != nil {
		return nil, err
	}
	semanticElapsed := time.Since(started)

	seen := make(map[string]bool, len(baseline))
	for _, k := range baseline {
		seen[core.NormalizeKeyword(k.Keyword)] = true
	}
	overlap := 0
	for _, k := range semantic {
		if seen[core.NormalizeKeyword(k.Keyword)] {
			overlap++
		}
	}

	return &Comparison{
		Baseline:        baseline,
		Semantic:        semantic,
		Overlap:         overlap,
		BaselineElapsed: baselineElapsed,
		SemanticElapsed: semanticElapsed,
	}, nil
}

// ModelStatus reports the embedding provider state for informational
// output.
func (e *Engine) ModelStatus() embed.Status {
	return e.embedder.Status()
}

func (e *Engine) QueryRepository() storage.QueryRepository {
	return e.queryRepo
}

func (e *Engine) RunRepository() storage.RunRepository {
	return e.runRepo
}
