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


// Package ingestion turns arriving artifacts into indexed knowledge shards.
//
// One Process call handles one artifact end to end: fetch, extract text
// (transcription for audio, document extraction for PDFs, passthrough for
// plain text), chunk, analyze and embed each chunk concurrently, journal the
// shards, upsert them into the vector index, and archive the artifact.
//
// Failures never leave an artifact in the intake namespace: whatever the
// outcome, the artifact is archived so it is not picked up again. The result
// of a run is a tagged Outcome (Processed, Skipped or Failed) rather than an
// error; Process only returns an error when the pipeline itself could not
// complete the archive step.
package ingestion
