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


// Package extract implements keyword extraction strategies for job
// description text.
//
// Three strategies are provided:
//
//   - Baseline: stopword-filtered single-word frequency counting. Cheap,
//     dependency-free, and the comparison arm for every evaluation run.
//   - Semantic: curated technical-phrase matching plus n-gram phrase mining
//     layered over single-word frequency. Produces multi-word keywords the
//     baseline cannot.
//   - AIStrategy: delegates to an ai.KeywordExtractor (LLM-backed or
//     offline).
//
// Strategies compose through Chain, which tries each strategy in order and
// falls through to the next on error. The fallback policy is therefore an
// explicit, testable object rather than scattered error handling:
//
//	chain := extract.NewChain(semantic, baseline)
//	keywords, err := chain.Extract(ctx, text)
//
// Categorize assigns each extracted keyword a canonical category
// (role, skill, qualification, other) for the query synthesizer.
package extract
