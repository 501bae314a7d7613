package openai

import (
	"slices"
	"strings"

	"github.com/poiesic/querygen/ai"
)

// offlinePhrases are multi-word terms the offline extractor lifts out of
// the text before single-word counting, with the category each one
// implies. The list is intentionally small; offline extraction exists to
// keep the pipeline runnable without a credential, not to compete with
// the model.
var offlinePhrases = map[string]string{
	"software engineer":      "role",
	"software developer":     "role",
	"frontend developer":     "role",
	"backend developer":      "role",
	"full stack developer":   "role",
	"data scientist":         "role",
	"data engineer":          "role",
	"devops engineer":        "role",
	"product manager":        "role",
	"project manager":        "role",
	"machine learning":       "skill",
	"deep learning":          "skill",
	"data analysis":          "skill",
	"cloud computing":        "skill",
	"web development":        "skill",
	"continuous integration": "skill",
	"version control":        "skill",
	"unit testing":           "skill",
	"agile methodology":      "skill",
	"rest api":               "skill",
	"computer science":       "qualification",
	"bachelor's degree":      "qualification",
	"master's degree":        "qualification",
	"years of experience":    "qualification",
}

// offlineStopwords is a compact stopword set for the offline extractor.
// The extraction strategies carry the full list; this one only has to keep
// obvious filler out of a ten-item keyword list.
var offlineStopwords = map[string]bool{
	"the": true, "and": true, "for": true, "with": true, "that": true,
	"this": true, "are": true, "will": true, "you": true, "our": true,
	"your": true, "have": true, "has": true, "who": true, "what": true,
	"about": true, "from": true, "their": true, "they": true, "them": true,
	"been": true, "being": true, "was": true, "were": true, "can": true,
	"all": true, "any": true, "but": true, "not": true, "its": true,
	"also": true, "more": true, "other": true, "such": true, "into": true,
	"than": true, "then": true, "when": true, "where": true, "which": true,
	"while": true, "would": true, "should": true, "could": true, "may": true,
	"must": true, "work": true, "working": true, "team": true, "role": true,
	"job": true, "candidate": true, "ideal": true, "looking": true,
	"join": true, "well": true, "strong": true, "ability": true,
	"skills": true, "including": true, "required": true, "preferred": true,
	"plus": true, "etc": true, "per": true, "within": true, "across": true,
	"using": true, "use": true, "new": true, "help": true, "like": true,
}

// extractOffline produces a deterministic keyword list without calling any
// service: curated phrase lifting plus single-word frequency counting.
// Identical text always yields an identical result.
func extractOffline(text string, maxKeywords int) []ai.ExtractedKeyword {
	lower := strings.ToLower(text)
	if strings.TrimSpace(lower) == "" {
		return []ai.ExtractedKeyword{}
	}

	extracted := make([]ai.ExtractedKeyword, 0, maxKeywords)
	covered := make([]string, 0, 8)

	// Phrase pass first so single words inside a matched phrase are skipped.
	phrases := make([]string, 0, len(offlinePhrases))
	for p := range offlinePhrases {
		phrases = append(phrases, p)
	}
	slices.Sort(phrases)

	for _, phrase := range phrases {
		count := strings.Count(lower, phrase)
		if count == 0 {
			continue
		}
		extracted = append(extracted, ai.ExtractedKeyword{
			Term:     phrase,
			Category: offlinePhrases[phrase],
			Weight:   float64(count) * 2,
		})
		covered = append(covered, phrase)
	}

	// Single-word frequency pass.
	cleaned := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			return r
		}
		return ' '
	}, lower)

	counts := make(map[string]int)
	order := make([]string, 0, 64)
	for _, word := range strings.Fields(cleaned) {
		if len(word) <= 2 || offlineStopwords[word] {
			continue
		}
		if wordCovered(word, covered) {
			continue
		}
		if counts[word] == 0 {
			order = append(order, word)
		}
		counts[word]++
	}

	slices.SortStableFunc(order, func(a, b string) int {
		return counts[b] - counts[a]
	})

	for _, word := range order {
		extracted = append(extracted, ai.ExtractedKeyword{
			Term:     word,
			Category: "skill",
			Weight:   float64(counts[word]),
		})
	}

	slices.SortStableFunc(extracted, func(a, b ai.ExtractedKeyword) int {
		if a.Weight == b.Weight {
			return strings.Compare(a.Term, b.Term)
		}
		if a.Weight < b.Weight {
			return 1
		}
		return -1
	})

	if len(extracted) > maxKeywords {
		extracted = extracted[:maxKeywords]
	}
	return extracted
}

// wordCovered reports whether word already appears inside a lifted phrase.
func wordCovered(word string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(p, word) {
			return true
		}
	}
	return false
}
