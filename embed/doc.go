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


// Package embed provides term embedding with graceful degradation.
//
// Provider wraps an ai.Embedder behind a session cache and a deterministic
// fallback. The first call that needs the real model performs a
// single-flight warmup with a hard timeout; while that warmup is in flight,
// and for a cooldown period after a failed warmup, every caller gets a
// deterministic pseudo-random vector instead of waiting. Fallback vectors
// are derived only from the input text, so they are stable across calls and
// processes, which keeps similarity math and tests reproducible even with
// no model available.
//
// All produced vectors, real or fallback, are cached by exact input text
// for the provider's lifetime. The cache is injectable and owned by the
// caller, so two providers can share one cache and tests can inspect it.
package embed
