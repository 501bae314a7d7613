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


// Package storage provides the storage abstraction layer for querygen.
//
// This package defines repository interfaces that decouple storage
// implementation from business logic, so different backends (BadgerDB,
// in-memory) can be used interchangeably.
//
// # Constructor Return Type Pattern
//
// Public constructors in backend packages return these interfaces rather
// than concrete types:
//
//	repo, err := badger.NewQueryRepository(backend)  // storage.QueryRepository
//
// This keeps consumers decoupled from BadgerDB specifics and lets tests
// substitute in-memory repositories without modification.
//
// # Architecture
//
// The storage layer follows the Repository pattern:
//
//   - QueryRepository: saved Boolean queries, content-addressed by query
//     text
//   - RunRepository: evaluation run summaries with sequential IDs
//
// Both carry a time index so recent records can be listed newest-first.
//
// # Usage
//
//	backend, err := badger.OpenBackend("/path/to/db", false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	queries, err := badger.NewQueryRepository(backend)
//
// In tests, open an in-memory backend instead:
//
//	queries, runs, backend, err := badger.NewMemoryRepositories()
//
// # Thread Safety
//
// All repository implementations must be thread-safe and support
// concurrent access from multiple goroutines.
//
// # Context Support
//
// All repository methods accept context.Context. Pass
// context.Background() for operations without specific timeout
// requirements.
package storage
