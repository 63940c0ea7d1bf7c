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

import "fmt"

// AssembleShard combines a chunk, its analysis, and its embedding into an
// immutable KnowledgeShard. It is a pure function: no I/O, no id assignment
// (ids belong to the indexer).
//
// The embedding length must equal vectorSize; a mismatch is reported as
// ErrDimensionMismatch here rather than surfacing later at index time.
func AssembleShard(chunk string, analysis AnalysisResult, embedding []float32, vectorSize int) (KnowledgeShard, error) {
	if chunk == "" {
		return KnowledgeShard{}, fmt.Errorf("assemble shard: %w", ErrEmptyInput)
	}
	if vectorSize > 0 && len(embedding) != vectorSize {
		return KnowledgeShard{}, fmt.Errorf("assemble shard: got %d dimensions, index expects %d: %w",
			len(embedding), vectorSize, ErrDimensionMismatch)
	}

	return KnowledgeShard{
		Information: chunk,
		Analysis:    analysis,
		Embedding:   embedding,
	}, nil
}
