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
	"log/slog"

	"github.com/theMladyPan/butler/ai"
	"github.com/theMladyPan/butler/index"
)

// Answer is the result of one question: the text plus retrieval diagnostics.
type Answer struct {
	Text     string
	Query    string
	Matches  int
	MaxScore float32
}

// Searcher chains plan, retrieve and summarize. Errors at any stage
// propagate; there is no degraded answer.
type Searcher struct {
	planner    *QueryPlanner
	retriever  *Retriever
	summarizer *Summarizer
	logger     *slog.Logger
}

// NewSearcher creates a searcher from the AI provider and the indexer.
func NewSearcher(provider ai.Provider, indexer *index.Indexer, opts ...Option) (*Searcher, error) {
	if provider == nil {
		return nil, ErrGeneratorRequired
	}

	logger := applySettings(opts, slog.Default().With("component", "searcher"))

	planner, err := NewQueryPlanner(provider.Generator(), WithLogger(logger))
	if err != nil {
		return nil, err
	}
	retriever, err := NewRetriever(provider.Embedder(), indexer, WithLogger(logger))
	if err != nil {
		return nil, err
	}
	summarizer, err := NewSummarizer(provider.Generator(), WithLogger(logger))
	if err != nil {
		return nil, err
	}

	return &Searcher{
		planner:    planner,
		retriever:  retriever,
		summarizer: summarizer,
		logger:     logger,
	}, nil
}

// Ask answers a question from the knowledge index, retrieving up to k
// shards. k <= 0 falls back to DefaultLimit.
func (s *Searcher) Ask(ctx context.Context, question string, k int) (Answer, error) {
	query, err := s.planner.Plan(ctx, question)
	if err != nil {
		return Answer{}, err
	}

	results, err := s.retriever.Retrieve(ctx, query, k)
	if err != nil {
		return Answer{}, err
	}

	text, err := s.summarizer.Summarize(ctx, question, results.Matches)
	if err != nil {
		return Answer{}, err
	}

	s.logger.Info("answered question",
		"question", question, "matches", len(results.Matches), "max_score", results.MaxScore)
	return Answer{
		Text:     text,
		Query:    query,
		Matches:  len(results.Matches),
		MaxScore: results.MaxScore,
	}, nil
}
