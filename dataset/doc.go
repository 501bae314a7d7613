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


// Package dataset loads evaluation datasets from JSON and CSV files.
//
// Real-world benchmark exports are messy: column names vary, ground truth
// appears as JSON arrays, comma lists, or model-response payloads, and
// keyword objects spell their term field "keyword", "term", or "text".
// The loaders absorb all of that at the boundary and hand the rest of the
// system clean core.EvaluationDataItem values.
package dataset
