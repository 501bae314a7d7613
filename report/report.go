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


// Package report exports evaluation results for downstream analysis. It is
// a read-only consumer of core.EvaluationResult: JSON for the full result
// tree and CSV for per-item metric rows.
package report

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/poiesic/querygen/core"
)

// ErrNilResult indicates that no evaluation result was provided.
var ErrNilResult = errors.New("evaluation result is nil")

// WriteJSON writes the full evaluation result as indented JSON.
func WriteJSON(w io.Writer, result *core.EvaluationResult) error {
	if result == nil {
		return ErrNilResult
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// csvHeader is the column layout of the per-item CSV export.
var csvHeader = []string{
	"item_id",
	"precision", "recall", "f1_score", "rank_correlation",
	"baseline_precision", "baseline_recall", "baseline_f1_score", "baseline_rank_correlation",
	"keywords", "recovered",
}

// WriteCSV writes one row per evaluated item, with primary and baseline
// metrics side by side and the extracted keywords joined by "; ".
func WriteCSV(w io.Writer, result *core.EvaluationResult) error {
	if result == nil {
		return ErrNilResult
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}

	for _, item := range result.PerItem {
		row := []string{
			item.ItemId,
			formatMetric(item.Metrics.Precision),
			formatMetric(item.Metrics.Recall),
			formatMetric(item.Metrics.F1Score),
			formatMetric(item.Metrics.RankCorrelation),
			formatMetric(item.BaselineMetrics.Precision),
			formatMetric(item.BaselineMetrics.Recall),
			formatMetric(item.BaselineMetrics.F1Score),
			formatMetric(item.BaselineMetrics.RankCorrelation),
			joinKeywords(item.Keywords),
			strconv.FormatBool(item.Recovered),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing csv row for %s: %w", item.ItemId, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatMetric(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}

func joinKeywords(keywords []core.KeywordItem) string {
	terms := make([]string, len(keywords))
	for i, k := range keywords {
		terms[i] = k.Keyword
	}
	return strings.Join(terms, "; ")
}
