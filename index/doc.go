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


// Package index adapts knowledge shards to a vector index.
//
// The Store interface captures the three things the core needs from an
// index: insert points, query k-nearest, delete the collection. Indexer sits
// on top of a Store and owns point id assignment, dimensionality guarding,
// and the shard-to-point mapping. Backends: index/qdrant (production) and
// index/memory (tests, local runs).
package index
