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


// Package core contains the domain model for the knowledge base.
//
// The central type is KnowledgeShard: a chunk of extracted text paired with
// its structured analysis and a fixed-length embedding vector. Shards are the
// unit of indexing and retrieval. Chunking, shard assembly, and the shared
// error taxonomy live here; everything remote (transcription, analysis,
// embedding, the vector index) is behind interfaces in the ai and index
// packages.
package core
