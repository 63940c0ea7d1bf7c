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


// Package search answers questions from the knowledge index.
//
// The flow is plan, retrieve, summarize: QueryPlanner rewrites the question
// into a retrieval query, Retriever embeds the query and pulls the nearest
// shards, and Summarizer distills each shard against the question before
// synthesizing one answer in the question's language. Searcher chains the
// three.
//
// No stage degrades silently. A failed plan or retrieval propagates as an
// error; only the explicit zero-matches case produces the fixed
// NoKnowledgeAnswer without consulting the generator.
package search
