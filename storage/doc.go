// Copyright 2025 The Butler Authors
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


// Package storage provides the artifact and shard persistence layer for
// butler.
//
// Two abstractions live here:
//
//   - Bucket: a flat namespace of named artifacts with fetch, put and
//     archive-move operations. storage/fsbucket implements it over two local
//     directories (intake and archive) and emits arrival Notifications via
//     filesystem watching.
//   - ShardJournal: an append-mostly record of every knowledge shard produced
//     by ingestion, keyed by point id. storage/badger implements it over
//     BadgerDB. The journal is the durable source for reindexing: the vector
//     collection can be dropped and rebuilt from it at any time.
//
// Public constructors in the implementation packages return these interfaces
// so consumers never couple to a concrete backend. All implementations must
// be safe for concurrent use.
package storage
