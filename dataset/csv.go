package dataset

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/poiesic/querygen/core"
)

// descriptionColumns are the column aliases tried for the item text, in
// preference order.
var descriptionColumns = []string{"job_description", "description", "text", "content"}

// groundTruthColumns are the column aliases tried for labeled keywords
// when no model_response column yields any.
var groundTruthColumns = []string{
	"keywords", "ground_truth", "groundtruth", "ground_truth_keywords",
	"actual_keywords", "expected_keywords", "manual_keywords", "annotated_keywords",
}

// modelResponseKeys are the payload fields mined for keywords inside a
// model_response JSON blob.
var modelResponseKeys = []string{
	"keywords", "Core_Responsibilities", "Core Responsibilities", "skills", "tags",
}

var quotedTermPattern = regexp.MustCompile(`["']([^"']+)["']`)

// ParseCSV parses a dataset from header-driven CSV. Headers are matched
// case-insensitively; rows without a description column are skipped.
// Ground truth is mined from a model_response JSON column first, then
// from the known keyword column aliases.
func ParseCSV(data []byte) ([]core.EvaluationDataItem, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDataset, err)
	}
	if len(records) < 2 {
		return nil, ErrEmptyDataset
	}

	columns := make(map[string]int, len(records[0]))
	for i, header := range records[0] {
		columns[strings.ToLower(strings.TrimSpace(header))] = i
	}

	items := make([]core.EvaluationDataItem, 0, len(records)-1)
	for rowIndex, record := range records[1:] {
		field := func(name string) string {
			i, ok := columns[name]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		description := ""
		for _, column := range descriptionColumns {
			if v := field(column); v != "" {
				description = v
				break
			}
		}
		if description == "" {
			continue
		}
		if title := firstNonEmpty(field("position_title"), field("title")); title != "" {
			description = title + ": " + description
		}

		id := firstNonEmpty(field("id"), field("company_name"), field("position_id"))
		if id == "" {
			id = fmt.Sprintf("item-%d", rowIndex)
		}

		truth := mineModelResponse(field("model_response"))
		if len(truth) == 0 {
			for _, column := range groundTruthColumns {
				if v := field(column); v != "" {
					if truth = parseKeywordField(v); len(truth) > 0 {
						break
					}
				}
			}
		}

		items = append(items, core.EvaluationDataItem{
			Id:          id,
			Description: description,
			GroundTruth: truth,
		})
	}

	if len(items) == 0 {
		return nil, ErrEmptyDataset
	}
	return items, nil
}

// mineModelResponse digs keywords out of a model-response JSON blob: known
// list fields first, then object keys, then quoted fragments of malformed
// JSON.
func mineModelResponse(response string) []core.KeywordItem {
	response = strings.TrimSpace(response)
	if response == "" {
		return nil
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal([]byte(response), &payload); err != nil {
		// Not valid JSON. Salvage anything that looks like a quoted term.
		var keywords []core.KeywordItem
		for _, match := range quotedTermPattern.FindAllStringSubmatch(response, -1) {
			if term := strings.TrimSpace(match[1]); term != "" {
				keywords = append(keywords, core.KeywordItem{Keyword: term, Frequency: 1})
			}
		}
		return keywords
	}

	for _, key := range modelResponseKeys {
		raw, ok := payload[key]
		if !ok {
			continue
		}
		if keywords := decodeKeywordList(splitRawList(raw)); len(keywords) > 0 {
			return keywords
		}
		var joined string
		if err := json.Unmarshal(raw, &joined); err == nil {
			if keywords := commaSeparatedKeywords(joined); len(keywords) > 0 {
				return keywords
			}
		}
	}

	// No list field. Treat the object's keys as keywords, using string
	// values as categories when they are canonical.
	var keywords []core.KeywordItem
	for key, raw := range payload {
		term := strings.TrimSpace(key)
		if len(term) <= 2 || strings.EqualFold(term, "n/a") {
			continue
		}
		item := core.KeywordItem{Keyword: term, Frequency: 1}
		var value string
		if err := json.Unmarshal(raw, &value); err == nil && core.IsCanonicalCategory(value) {
			item.Category = value
		}
		keywords = append(keywords, item)
	}
	slices.SortFunc(keywords, func(a, b core.KeywordItem) int {
		return strings.Compare(a.Keyword, b.Keyword)
	})
	return keywords
}

// parseKeywordField parses a ground-truth cell: a JSON array or object, or
// a comma-separated list with optional "term:count" entries.
func parseKeywordField(value string) []core.KeywordItem {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}

	if strings.HasPrefix(trimmed, "[") {
		var raw []json.RawMessage
		if err := json.Unmarshal([]byte(trimmed), &raw); err == nil {
			return decodeKeywordList(raw)
		}
		return nil
	}

	if strings.HasPrefix(trimmed, "{") {
		var counts map[string]float64
		if err := json.Unmarshal([]byte(trimmed), &counts); err == nil {
			keywords := make([]core.KeywordItem, 0, len(counts))
			for term, count := range counts {
				if term = strings.TrimSpace(term); term != "" {
					if count == 0 {
						count = 1
					}
					keywords = append(keywords, core.KeywordItem{Keyword: term, Frequency: count})
				}
			}
			slices.SortFunc(keywords, func(a, b core.KeywordItem) int {
				return strings.Compare(a.Keyword, b.Keyword)
			})
			return keywords
		}
		return nil
	}

	return commaSeparatedKeywords(trimmed)
}

// commaSeparatedKeywords parses "go, python:3, sql" style lists.
func commaSeparatedKeywords(value string) []core.KeywordItem {
	var keywords []core.KeywordItem
	for _, part := range strings.Split(value, ",") {
		term, countStr, _ := strings.Cut(part, ":")
		term = strings.TrimSpace(term)
		if term == "" {
			continue
		}
		frequency := 1.0
		if n, err := strconv.ParseFloat(strings.TrimSpace(countStr), 64); err == nil && n > 0 {
			frequency = n
		}
		keywords = append(keywords, core.KeywordItem{Keyword: term, Frequency: frequency})
	}
	return keywords
}

// splitRawList unmarshals a raw value as a JSON array, or nil if it is not
// one.
func splitRawList(raw json.RawMessage) []json.RawMessage {
	var list []json.RawMessage
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil
	}
	return list
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
