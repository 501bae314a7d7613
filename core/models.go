package core

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing or database sequences.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Canonical keyword categories. Extractors may leave Category empty for
// uncategorized keywords.
const (
	CategoryRole          = "role"
	CategorySkill         = "skill"
	CategoryQualification = "qualification"
	CategoryOther         = "other"
)

// KeywordItem is a weighted keyword produced by an extractor.
// Frequency is a relative importance weight, not necessarily a literal
// occurrence count. Lists of KeywordItem are treated as immutable once
// produced; consumers re-sort and filter copies, never mutate in place.
type KeywordItem struct {
	Keyword   string
	Frequency float64
	Category  string
}

// TermConnection is an undirected similarity edge between two terms.
// Strength is cosine similarity in (0,1].
type TermConnection struct {
	Source   string
	Target   string
	Strength float64
}

// TermCluster is a group of mutually related terms with a synthetic id.
type TermCluster struct {
	Id    string
	Terms []string
}

// TermGraph is the output of the relationship engine: similarity edges
// sorted by descending strength plus a clustering that partitions the
// input terms exactly.
type TermGraph struct {
	Connections []TermConnection
	Clusters    []TermCluster
}

// MetricsResult holds precision/recall/F1 for one scoring pass.
// RankCorrelation is a derived display value, not a statistical rank
// correlation.
type MetricsResult struct {
	Precision       float64
	Recall          float64
	F1Score         float64
	RankCorrelation float64
}

// AdvancedMetricsResult holds distribution statistics computed over a set
// of per-item MetricsResult values. StdDev is population standard
// deviation (divide by N, not N-1).
type AdvancedMetricsResult struct {
	Mean   MetricsResult
	Median MetricsResult
	StdDev MetricsResult
	Min    MetricsResult
	Max    MetricsResult
}

// EvaluationDataItem is one labeled dataset entry: a job description plus
// its ground-truth keywords. GroundTruth may be empty, in which case a
// synthetic ground truth is derived during evaluation.
type EvaluationDataItem struct {
	Id          string
	Description string
	GroundTruth []KeywordItem
}

// ItemResult is the per-item output of an evaluation run. Both a primary
// extraction (AI or baseline per run configuration) and a baseline
// extraction are always computed for comparison.
type ItemResult struct {
	ItemId           string
	Keywords         []KeywordItem
	BaselineKeywords []KeywordItem
	Metrics          MetricsResult
	BaselineMetrics  MetricsResult
	Recovered        bool // item failed and was recovered with fallback metrics
}

// EvaluationResult is the aggregate output of an evaluation run.
type EvaluationResult struct {
	Overall  MetricsResult
	Baseline MetricsResult
	Advanced *AdvancedMetricsResult
	PerItem  []ItemResult
}

// QueryRecord is a saved Boolean query with the keywords it was
// synthesized from. Its ID is content-addressed so saving the same query
// twice is idempotent.
type QueryRecord struct {
	Id        ID
	Query     string
	Keywords  []KeywordItem
	CreatedAt time.Time
}

// RunRecord is a stored summary of an evaluation run.
type RunRecord struct {
	Id        ID
	Dataset   string
	ItemCount int
	UsedAI    bool
	Overall   MetricsResult
	Baseline  MetricsResult
	Elapsed   time.Duration
	CreatedAt time.Time
}
