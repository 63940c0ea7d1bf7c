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


// Package ai defines the remote capability contracts the knowledge base
// depends on: transcription, document text extraction, structured chunk
// analysis, embedding, and free-form generation.
//
// The core never talks to a model vendor directly. Production adapters live
// in ai/openai (any OpenAI-compatible endpoint); test doubles live in
// ai/mock. All implementations must be safe for concurrent use.
package ai
