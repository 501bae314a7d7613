package extract

import (
	"context"
	"slices"
	"strings"
	"unicode"

	"github.com/poiesic/querygen/core"
)

// baselineLimit is the number of keywords the baseline strategy returns.
const baselineLimit = 15

// Baseline is the frequency-based extraction strategy: stopword-filtered
// single words ranked by occurrence count. It never fails; malformed or
// empty input yields an empty list.
type Baseline struct{}

// NewBaseline creates the baseline extraction strategy.
func NewBaseline() *Baseline {
	return &Baseline{}
}

// Name implements Strategy.
func (b *Baseline) Name() string {
	return "baseline"
}

// Extract implements Strategy. The returned error is always nil; the
// baseline is the terminal layer of every extraction chain.
func (b *Baseline) Extract(_ context.Context, text string) ([]core.KeywordItem, error) {
	return b.ExtractKeywords(text), nil
}

// ExtractKeywords runs baseline extraction without the Strategy plumbing.
// Ties in frequency keep first-occurrence order so results are
// deterministic for identical input.
func (b *Baseline) ExtractKeywords(text string) []core.KeywordItem {
	words := Tokenize(text)
	if len(words) == 0 {
		return []core.KeywordItem{}
	}

	counts := make(map[string]int, len(words))
	order := make([]string, 0, len(words))
	for _, word := range words {
		if counts[word] == 0 {
			order = append(order, word)
		}
		counts[word]++
	}

	slices.SortStableFunc(order, func(a, b string) int {
		return counts[b] - counts[a]
	})

	if len(order) > baselineLimit {
		order = order[:baselineLimit]
	}

	keywords := make([]core.KeywordItem, len(order))
	for i, word := range order {
		keywords[i] = core.KeywordItem{Keyword: word, Frequency: float64(counts[word])}
	}
	return keywords
}

// Tokenize lowercases text, converts punctuation to whitespace, splits on
// whitespace, and drops short tokens and stopwords. It is shared by the
// baseline and semantic strategies.
func Tokenize(text string) []string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return ' '
	}, text)

	fields := strings.Fields(cleaned)
	words := fields[:0]
	for _, word := range fields {
		if len(word) <= 2 || stopwords[word] {
			continue
		}
		words = append(words, word)
	}
	return words
}
