package embed

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/poiesic/querygen/ai"
)

const (
	// defaultLoadTimeout bounds the single-flight model warmup.
	defaultLoadTimeout = 15 * time.Second

	// defaultCooldown is how long the provider waits after a failed warmup
	// before attempting the real model again.
	defaultCooldown = 60 * time.Second
)

// ErrNilCache indicates a Provider was constructed without a cache.
var ErrNilCache = errors.New("embedding provider requires a cache")

// Status reports the provider's model state for informational surfaces.
type Status struct {
	// Ready means the real model has served at least one embedding.
	Ready bool
	// Loading means a warmup attempt is currently in flight.
	Loading bool
	// LastError is the most recent warmup failure, empty if none.
	LastError string
	// CachedVectors is the current cache size.
	CachedVectors int
}

// Provider produces embedding vectors with graceful degradation. It wraps
// an optional ai.Embedder; when the model is unavailable, loading, or
// cooling down after a failure, it serves deterministic fallback vectors
// instead of blocking or erroring. Every produced vector is cached by
// exact text. Safe for concurrent use.
type Provider struct {
	source      ai.Embedder // nil means fallback-only
	cache       *Cache
	dim         int
	loadTimeout time.Duration
	cooldown    time.Duration
	logger      *slog.Logger

	mu       sync.Mutex
	ready    bool
	loading  bool
	failedAt time.Time
	lastErr  error
}

// Option configures a Provider.
type Option func(*Provider) error

// WithLoadTimeout overrides the warmup timeout.
func WithLoadTimeout(d time.Duration) Option {
	return func(p *Provider) error {
		if d <= 0 {
			return errors.New("load timeout must be positive")
		}
		p.loadTimeout = d
		return nil
	}
}

// WithCooldown overrides the retry cooldown after a failed warmup.
func WithCooldown(d time.Duration) Option {
	return func(p *Provider) error {
		if d < 0 {
			return errors.New("cooldown cannot be negative")
		}
		p.cooldown = d
		return nil
	}
}

// WithDimension overrides the fallback vector dimension.
func WithDimension(dim int) Option {
	return func(p *Provider) error {
		if dim <= 0 {
			return errors.New("dimension must be positive")
		}
		p.dim = dim
		return nil
	}
}

// NewProvider creates an embedding provider over source, caching into
// cache. A nil source is valid and yields a fallback-only provider.
func NewProvider(source ai.Embedder, cache *Cache, opts ...Option) (*Provider, error) {
	if cache == nil {
		return nil, ErrNilCache
	}

	p := &Provider{
		source:      source,
		cache:       cache,
		dim:         Dimension,
		loadTimeout: defaultLoadTimeout,
		cooldown:    defaultCooldown,
		logger:      slog.Default().With("component", "embed-provider"),
	}
	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Embed returns the embedding vector for text. It never fails: when the
// real model cannot serve the request the deterministic fallback vector is
// returned instead. Repeated calls for identical text return identical
// vectors.
func (p *Provider) Embed(ctx context.Context, text string) []float32 {
	if vector, ok := p.cache.Get(text); ok {
		return vector
	}

	vector := p.produce(ctx, text)
	p.cache.Put(text, vector)
	// Serve from the cache so concurrent first calls all observe the same
	// stored vector.
	if cached, ok := p.cache.Get(text); ok {
		return cached
	}
	return vector
}

// produce obtains a vector from the real model if it is usable right now,
// else computes the fallback.
func (p *Provider) produce(ctx context.Context, text string) []float32 {
	switch p.acquireSource() {
	case sourceReady:
		vector, err := p.source.EmbedText(ctx, text)
		if err != nil || len(vector) == 0 {
			p.logger.Warn("model embedding failed, using fallback", "err", err)
			return FallbackVector(text, p.dim)
		}
		return Normalize(vector)

	case sourceWarmup:
		vector, err := p.warmup(ctx, text)
		if err != nil {
			return FallbackVector(text, p.dim)
		}
		return vector

	default:
		return FallbackVector(text, p.dim)
	}
}

type sourceState int

const (
	sourceUnavailable sourceState = iota
	sourceReady
	sourceWarmup
)

// acquireSource decides how this call may use the real model. At most one
// caller at a time gets sourceWarmup; callers arriving during a warmup or
// cooldown are directed to the fallback immediately rather than waiting.
func (p *Provider) acquireSource() sourceState {
	if p.source == nil {
		return sourceUnavailable
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ready {
		return sourceReady
	}
	if p.loading {
		return sourceUnavailable
	}
	if !p.failedAt.IsZero() && time.Since(p.failedAt) < p.cooldown {
		return sourceUnavailable
	}

	p.loading = true
	return sourceWarmup
}

// warmup performs the single-flight first embedding with a hard timeout and
// records the outcome.
func (p *Provider) warmup(ctx context.Context, text string) ([]float32, error) {
	warmupCtx, cancel := context.WithTimeout(ctx, p.loadTimeout)
	defer cancel()

	vector, err := p.source.EmbedText(warmupCtx, text)
	if err == nil && len(vector) == 0 {
		err = errors.New("model returned empty vector")
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.loading = false

	if err != nil {
		p.failedAt = time.Now()
		p.lastErr = err
		p.logger.Warn("embedding model warmup failed",
			"err", err,
			"cooldown", p.cooldown)
		return nil, err
	}

	p.ready = true
	p.failedAt = time.Time{}
	p.lastErr = nil
	p.logger.Info("embedding model ready")
	return Normalize(vector), nil
}

// Status returns the provider's current model state.
func (p *Provider) Status() Status {
	p.mu.Lock()
	defer p.mu.Unlock()

	s := Status{
		Ready:         p.ready,
		Loading:       p.loading,
		CachedVectors: p.cache.Len(),
	}
	if p.lastErr != nil {
		s.LastError = p.lastErr.Error()
	}
	return s
}

// EmbedText implements ai.Embedder. The error is always nil; degradation
// is handled internally.
func (p *Provider) EmbedText(ctx context.Context, text string) ([]float32, error) {
	return p.Embed(ctx, text), nil
}

// EmbedTexts implements ai.Embedder.
func (p *Provider) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vectors[i] = p.Embed(ctx, text)
	}
	return vectors, nil
}
