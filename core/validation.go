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


package core

import (
	"fmt"
	"strings"
)

// ValidateKeywordItem validates a KeywordItem according to domain rules.
//
// Validation rules:
//   - Keyword must not be empty (after trimming)
//   - Frequency must not be negative
//   - Category, when present, must be one of the canonical categories
func ValidateKeywordItem(item *KeywordItem) error {
	if item == nil {
		return fmt.Errorf("%w: item is nil", ErrInvalidKeyword)
	}

	if strings.TrimSpace(item.Keyword) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidKeyword, ErrEmptyKeyword)
	}

	if item.Frequency < 0 {
		return fmt.Errorf("%w: %w", ErrInvalidKeyword, ErrNegativeFrequency)
	}

	if item.Category != "" && !IsCanonicalCategory(item.Category) {
		return fmt.Errorf("%w: %w: %q", ErrInvalidKeyword, ErrInvalidCategory, item.Category)
	}

	return nil
}

// ValidateDataItem validates an EvaluationDataItem according to domain rules.
//
// Validation rules:
//   - Description must not be empty (after trimming)
//
// NOT validated:
//   - GroundTruth (empty is valid; synthetic ground truth is derived later)
//   - Id (empty is valid; a positional id is assigned by loaders)
func ValidateDataItem(item *EvaluationDataItem) error {
	if item == nil {
		return fmt.Errorf("%w: item is nil", ErrInvalidDataItem)
	}

	if strings.TrimSpace(item.Description) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDataItem, ErrEmptyDescription)
	}

	return nil
}

// ValidateQueryRecord validates a QueryRecord according to domain rules.
func ValidateQueryRecord(record *QueryRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidQueryRecord)
	}

	if strings.TrimSpace(record.Query) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidQueryRecord, ErrEmptyQuery)
	}

	return nil
}

// IsCanonicalCategory reports whether category is one of the canonical
// keyword categories.
func IsCanonicalCategory(category string) bool {
	switch category {
	case CategoryRole, CategorySkill, CategoryQualification, CategoryOther:
		return true
	}
	return false
}

// NormalizeKeyword returns the canonical matching form of a keyword term:
// lowercased and trimmed. Metric comparisons and cache keys use this form;
// display surfaces keep the original case.
func NormalizeKeyword(term string) string {
	return strings.ToLower(strings.TrimSpace(term))
}
