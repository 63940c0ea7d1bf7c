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


package core

import "errors"

// Shared error taxonomy. Packages wrap these sentinels so callers can
// classify failures with errors.Is regardless of which stage produced them.
var (
	// ErrEmptyInput indicates an empty artifact, chunk, or question.
	ErrEmptyInput = errors.New("input is empty")

	// ErrInvalidArtifact indicates an artifact that cannot be ingested.
	ErrInvalidArtifact = errors.New("invalid artifact")

	// ErrSchemaViolation indicates a structured-analysis response that does
	// not conform to the required schema. Such responses are rejected, never
	// coerced.
	ErrSchemaViolation = errors.New("analysis response violates schema")

	// ErrRemoteCapability indicates a transcription, analysis, embedding,
	// generation, or index call that failed or timed out.
	ErrRemoteCapability = errors.New("remote capability call failed")

	// ErrDimensionMismatch indicates an embedding whose length differs from
	// the configured vector size. This is a shard-construction error, not an
	// index-time error.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrQueryPlanning indicates the question could not be turned into a
	// search query. Retrieval cannot proceed without a plan.
	ErrQueryPlanning = errors.New("query planning failed")

	// ErrIndexUnavailable indicates the vector index cannot be reached.
	ErrIndexUnavailable = errors.New("vector index unavailable")
)
