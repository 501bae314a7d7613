package extract

import (
	"context"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/poiesic/querygen/core"
)

const (
	// semanticLimit is the number of keywords the semantic strategy returns.
	semanticLimit = 20

	// Layer weights when merging the three passes.
	technicalWeight = 2.5
	ngramWeight     = 1.8
	singleWeight    = 0.6

	// trigramBoost favors 3-word phrases over 2-word phrases in the mining
	// pass.
	trigramBoost = 1.5

	// minPhraseLength drops mined n-grams too short to be meaningful terms.
	minPhraseLength = 7
)

// Semantic is the phrase-aware extraction strategy: curated catalog
// matching, n-gram phrase mining, and single-word frequency combined into
// one weighted list. Designed to sit in front of Baseline in a Chain.
type Semantic struct{}

// NewSemantic creates the semantic extraction strategy.
func NewSemantic() *Semantic {
	return &Semantic{}
}

// Name implements Strategy.
func (s *Semantic) Name() string {
	return "semantic"
}

// Extract implements Strategy. A panic anywhere in the passes is converted
// to an error so the chain can fall through to the baseline.
func (s *Semantic) Extract(_ context.Context, text string) (keywords []core.KeywordItem, err error) {
	defer func() {
		if r := recover(); r != nil {
			keywords = nil
			err = fmt.Errorf("semantic extraction: %v", r)
		}
	}()

	if strings.TrimSpace(text) == "" {
		return []core.KeywordItem{}, nil
	}

	lower := strings.ToLower(text)

	technical := matchCatalogPhrases(lower)
	mined := mineNgrams(lower, technical)

	// Phrases from both passes suppress their component words in the
	// single-word pass.
	retained := make([]string, 0, len(technical)+len(mined))
	for _, m := range technical {
		retained = append(retained, m.phrase)
	}
	for _, m := range mined {
		retained = append(retained, m.phrase)
	}

	scores := make(map[string]float64, semanticLimit*2)
	order := make([]string, 0, semanticLimit*2)
	add := func(term string, score float64) {
		if _, seen := scores[term]; !seen {
			order = append(order, term)
		}
		scores[term] += score
	}

	for _, m := range technical {
		add(m.phrase, m.weight*technicalWeight)
	}
	for _, m := range mined {
		add(m.phrase, m.weight*ngramWeight)
	}
	for _, word := range Tokenize(lower) {
		if substringOfAny(word, retained) {
			continue
		}
		add(word, singleWeight)
	}

	slices.SortStableFunc(order, func(a, b string) int {
		if scores[a] == scores[b] {
			return 0
		}
		if scores[a] < scores[b] {
			return 1
		}
		return -1
	})

	if len(order) > semanticLimit {
		order = order[:semanticLimit]
	}

	keywords = make([]core.KeywordItem, len(order))
	for i, term := range order {
		keywords[i] = core.KeywordItem{Keyword: term, Frequency: roundScore(scores[term])}
	}
	return keywords, nil
}

// match is a scored phrase produced by one of the phrase passes.
type match struct {
	phrase string
	weight float64
}

// matchCatalogPhrases scans lowercased text against the curated catalog.
// Each hit is weighted by occurrence count scaled for phrase length, and
// shorter phrases contained in an already-retained longer match are
// dropped.
func matchCatalogPhrases(lower string) []match {
	hits := make([]match, 0, 16)
	for _, phrase := range catalogPhrases() {
		count := countBounded(lower, phrase)
		if count == 0 {
			continue
		}
		scale := math.Min(2, 1+float64(len(phrase))/20)
		hits = append(hits, match{
			phrase: phrase,
			weight: math.Ceil(float64(count) * scale),
		})
	}

	// Longest-first so substring dedupe keeps the most specific phrase.
	slices.SortStableFunc(hits, func(a, b match) int {
		return len(b.phrase) - len(a.phrase)
	})

	kept := hits[:0]
	retained := make([]string, 0, len(hits))
	for _, h := range hits {
		if substringOfAny(h.phrase, retained) {
			continue
		}
		kept = append(kept, h)
		retained = append(retained, h.phrase)
	}
	return kept
}

// mineNgrams extracts repeated 2-word and 3-word phrases from the text,
// sentence by sentence. Phrases starting with a stopword, shorter than
// minPhraseLength, occurring only once, or already covered by a catalog
// match are discarded. Trigrams are boosted over bigrams.
func mineNgrams(lower string, technical []match) []match {
	covered := make([]string, len(technical))
	for i, m := range technical {
		covered[i] = m.phrase
	}

	counts := make(map[string]int)
	sizes := make(map[string]int)
	order := make([]string, 0, 32)

	for _, sentence := range splitSentences(lower) {
		words := strings.Fields(strings.Map(func(r rune) rune {
			if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
				return r
			}
			return ' '
		}, sentence))

		for n := 2; n <= 3; n++ {
			for i := 0; i+n <= len(words); i++ {
				if stopwords[words[i]] || stopwords[words[i+n-1]] {
					continue
				}
				phrase := strings.Join(words[i:i+n], " ")
				if len(phrase) < minPhraseLength {
					continue
				}
				if counts[phrase] == 0 {
					order = append(order, phrase)
					sizes[phrase] = n
				}
				counts[phrase]++
			}
		}
	}

	mined := make([]match, 0, len(order))
	for _, phrase := range order {
		if counts[phrase] <= 1 {
			continue
		}
		if substringOfAny(phrase, covered) {
			continue
		}
		weight := float64(counts[phrase])
		if sizes[phrase] == 3 {
			weight *= trigramBoost
		}
		mined = append(mined, match{phrase: phrase, weight: weight})
	}
	return mined
}

// splitSentences breaks text on sentence-ending punctuation and newlines.
func splitSentences(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		switch r {
		case '.', '!', '?', ';', '\n':
			return true
		}
		return false
	})
}

// countBounded counts word-boundary-delimited occurrences of phrase in text.
func countBounded(text, phrase string) int {
	count := 0
	for start := 0; ; {
		idx := strings.Index(text[start:], phrase)
		if idx < 0 {
			return count
		}
		abs := start + idx
		end := abs + len(phrase)
		if boundaryBefore(text, abs) && boundaryAfter(text, end) {
			count++
		}
		start = abs + 1
	}
}

func boundaryBefore(text string, i int) bool {
	if i == 0 {
		return true
	}
	return !isWordChar(rune(text[i-1]))
}

func boundaryAfter(text string, i int) bool {
	if i >= len(text) {
		return true
	}
	return !isWordChar(rune(text[i]))
}

func isWordChar(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

// substringOfAny reports whether term appears inside any of the phrases.
func substringOfAny(term string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(p, term) {
			return true
		}
	}
	return false
}

// roundScore trims float noise from combined weights for stable output.
func roundScore(score float64) float64 {
	return math.Round(score*100) / 100
}
