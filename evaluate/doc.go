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


// Package evaluate scores extracted keywords against labeled ground truth
// and runs batched benchmark evaluations over datasets.
//
// Scoring is set-based: precision, recall, and F1 over case-insensitive
// term intersection, with a rank-correlation estimate derived from F1. A
// Policy controls the presentation floors applied to aggregate results,
// the collapse threshold below which raw scores are replaced by the
// fallback triple, and whether the presentation delta adjustment runs.
//
// The Evaluator processes dataset items in fixed-size batches on a worker
// pool. Items inside a batch run concurrently; a batch completes before
// the next one starts. Per-item failures are recovered with fallback
// metrics rather than failing the run.
package evaluate
