package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The returned vector represents the semantic meaning of the text.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// Batch processing is more efficient than calling EmbedText multiple times.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// KeywordExtractor extracts weighted keywords from job description text.
// Implementations must be thread-safe for concurrent use.
type KeywordExtractor interface {
	// ExtractKeywords analyzes a job description and extracts the keywords a
	// recruiter would search on, each with a relative weight and a category.
	// Returns an empty slice if no keywords are found.
	// Returns an error if extraction fails.
	ExtractKeywords(ctx context.Context, text string) ([]ExtractedKeyword, error)
}

// ExtractedKeyword represents a keyword identified in a job description.
type ExtractedKeyword struct {
	// Term is the keyword itself in lowercase, 1-3 words.
	// Example: "machine learning", "kubernetes", "software engineer"
	Term string

	// Category classifies the keyword. Must match one of the predefined
	// keyword categories (role, skill, qualification, other).
	Category string

	// Weight is a relative importance score. Higher = more central to the
	// job description.
	Weight float64
}

// AIProvider aggregates AI services for convenient initialization and lifecycle management.
// A provider creates and manages Embedder and KeywordExtractor instances,
// ensuring they share configuration and resources appropriately.
type AIProvider interface {
	// Embedder returns the text embedding service.
	// The returned Embedder is safe for concurrent use.
	Embedder() Embedder

	// KeywordExtractor returns the keyword extraction service.
	// The returned KeywordExtractor is safe for concurrent use.
	KeywordExtractor() KeywordExtractor

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
