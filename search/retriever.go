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


package search

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/theMladyPan/butler/ai"
	"github.com/theMladyPan/butler/core"
	"github.com/theMladyPan/butler/index"
)

// DefaultLimit is the number of shards retrieved when the caller does not
// specify one.
const DefaultLimit = 5

// Results holds one retrieval's ordered matches. MaxScore is the best
// similarity seen, surfaced so callers can judge retrieval quality; no
// threshold policy is applied here.
type Results struct {
	Matches  []core.ScoredMatch
	MaxScore float32
}

// Empty reports whether the retrieval produced no matches.
func (r Results) Empty() bool {
	return len(r.Matches) == 0
}

// Retriever embeds a retrieval query and pulls the nearest shards from the
// index.
type Retriever struct {
	embedder ai.Embedder
	indexer  *index.Indexer
	logger   *slog.Logger
}

// NewRetriever creates a retriever over the given embedder and indexer.
func NewRetriever(embedder ai.Embedder, indexer *index.Indexer, opts ...Option) (*Retriever, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if indexer == nil {
		return nil, ErrIndexerRequired
	}
	return &Retriever{
		embedder: embedder,
		indexer:  indexer,
		logger:   applySettings(opts, slog.Default().With("component", "retriever")),
	}, nil
}

// Retrieve returns up to k shards nearest to the query, ordered by
// descending similarity. k <= 0 falls back to DefaultLimit.
func (r *Retriever) Retrieve(ctx context.Context, query string, k int) (Results, error) {
	if k <= 0 {
		k = DefaultLimit
	}

	vector, err := r.embedder.EmbedText(ctx, query)
	if err != nil {
		return Results{}, fmt.Errorf("embed query: %w", err)
	}

	matches, err := r.indexer.Search(ctx, vector, k)
	if err != nil {
		return Results{}, fmt.Errorf("retrieve: %w", err)
	}

	results := Results{Matches: matches}
	if len(matches) > 0 {
		results.MaxScore = matches[0].Score
	}

	r.logger.Debug("retrieved shards", "query", query, "matches", len(matches), "max_score", results.MaxScore)
	return results, nil
}
