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

import "errors"

// Domain validation errors
var (
	// ErrInvalidKeyword indicates a KeywordItem failed validation.
	ErrInvalidKeyword = errors.New("invalid keyword item")

	// ErrEmptyKeyword indicates the Keyword field is empty.
	ErrEmptyKeyword = errors.New("keyword cannot be empty")

	// ErrNegativeFrequency indicates a keyword weight below zero.
	ErrNegativeFrequency = errors.New("frequency cannot be negative")

	// ErrInvalidCategory indicates a category outside the canonical set.
	ErrInvalidCategory = errors.New("invalid keyword category")

	// ErrInvalidDataItem indicates an EvaluationDataItem failed validation.
	ErrInvalidDataItem = errors.New("invalid evaluation data item")

	// ErrEmptyDescription indicates the Description field is empty.
	ErrEmptyDescription = errors.New("description cannot be empty")

	// ErrInvalidQueryRecord indicates a QueryRecord failed validation.
	ErrInvalidQueryRecord = errors.New("invalid query record")

	// ErrEmptyQuery indicates the Query field is empty.
	ErrEmptyQuery = errors.New("query cannot be empty")
)
