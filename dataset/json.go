package dataset

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/poiesic/querygen/core"
)

// jsonItem tolerates both camelCase and snake_case ground-truth keys.
type jsonItem struct {
	Id               string            `json:"id"`
	Description      string            `json:"description"`
	GroundTruth      []json.RawMessage `json:"groundTruth"`
	GroundTruthSnake []json.RawMessage `json:"ground_truth"`
}

// jsonKeyword tolerates the term and frequency field spellings seen in
// benchmark exports.
type jsonKeyword struct {
	Keyword   string  `json:"keyword"`
	Term      string  `json:"term"`
	Text      string  `json:"text"`
	Frequency float64 `json:"frequency"`
	Count     float64 `json:"count"`
	Weight    float64 `json:"weight"`
	Category  string  `json:"category"`
}

// ParseJSON parses a dataset from a JSON array of evaluation items. Items
// without a description are skipped; ground-truth entries may be plain
// strings or keyword objects.
func ParseJSON(data []byte) ([]core.EvaluationDataItem, error) {
	var raw []jsonItem
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDataset, err)
	}

	items := make([]core.EvaluationDataItem, 0, len(raw))
	for i, entry := range raw {
		if strings.TrimSpace(entry.Description) == "" {
			continue
		}

		id := entry.Id
		if id == "" {
			id = fmt.Sprintf("item-%d", i)
		}

		truth := entry.GroundTruth
		if len(truth) == 0 {
			truth = entry.GroundTruthSnake
		}

		items = append(items, core.EvaluationDataItem{
			Id:          id,
			Description: entry.Description,
			GroundTruth: decodeKeywordList(truth),
		})
	}

	if len(items) == 0 {
		return nil, ErrEmptyDataset
	}
	return items, nil
}

// decodeKeywordList converts raw ground-truth entries into keyword items,
// dropping anything unusable.
func decodeKeywordList(raw []json.RawMessage) []core.KeywordItem {
	keywords := make([]core.KeywordItem, 0, len(raw))
	for _, entry := range raw {
		if k, ok := decodeKeyword(entry); ok {
			keywords = append(keywords, k)
		}
	}
	return keywords
}

// decodeKeyword accepts either a bare string or a keyword object and
// normalizes it into a core.KeywordItem.
func decodeKeyword(raw json.RawMessage) (core.KeywordItem, bool) {
	var term string
	if err := json.Unmarshal(raw, &term); err == nil {
		term = strings.TrimSpace(term)
		if term == "" {
			return core.KeywordItem{}, false
		}
		return core.KeywordItem{Keyword: term, Frequency: 1}, true
	}

	var obj jsonKeyword
	if err := json.Unmarshal(raw, &obj); err != nil {
		return core.KeywordItem{}, false
	}

	term = strings.TrimSpace(obj.Keyword)
	if term == "" {
		term = strings.TrimSpace(obj.Term)
	}
	if term == "" {
		term = strings.TrimSpace(obj.Text)
	}
	if term == "" {
		return core.KeywordItem{}, false
	}

	frequency := obj.Frequency
	if frequency == 0 {
		frequency = obj.Count
	}
	if frequency == 0 {
		frequency = obj.Weight
	}
	if frequency == 0 {
		frequency = 1
	}

	category := obj.Category
	if !core.IsCanonicalCategory(category) {
		category = ""
	}

	return core.KeywordItem{Keyword: term, Frequency: frequency, Category: category}, true
}
