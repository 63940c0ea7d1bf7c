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
	"strings"

	"github.com/theMladyPan/butler/ai"
	"github.com/theMladyPan/butler/core"
)

// NoKnowledgeAnswer is returned verbatim when retrieval produced nothing.
// The generator is never consulted in that case, so it cannot invent an
// answer from thin air.
const NoKnowledgeAnswer = "no relevant knowledge found"

const distillInstructions = `Extract from the note below only the facts that bear
on the question. Quote facts faithfully; do not add anything the note does not
say. If nothing in the note is relevant, respond with exactly: IRRELEVANT.`

const synthesisInstructions = `Answer the question using only the distilled notes
below. Respond in the same language the question is asked in. If the notes do
not contain the answer, say that the knowledge base does not cover it. Do not
invent facts.`

// Summarizer turns retrieved shards into one answer via two generator
// passes: a per-shard distillation against the question, then a single
// synthesis over the distillates.
type Summarizer struct {
	generator ai.Generator
	logger    *slog.Logger
}

// NewSummarizer creates a summarizer over the given generator.
func NewSummarizer(generator ai.Generator, opts ...Option) (*Summarizer, error) {
	if generator == nil {
		return nil, ErrGeneratorRequired
	}
	return &Summarizer{
		generator: generator,
		logger:    applySettings(opts, slog.Default().With("component", "summarizer")),
	}, nil
}

// Summarize answers the question from the given matches. Zero matches yield
// NoKnowledgeAnswer without any generator call.
func (s *Summarizer) Summarize(ctx context.Context, question string, matches []core.ScoredMatch) (string, error) {
	if len(matches) == 0 {
		s.logger.Info("no matches to summarize", "question", question)
		return NoKnowledgeAnswer, nil
	}

	distilled := make([]string, 0, len(matches))
	for i, match := range matches {
		input := fmt.Sprintf("Question: %s\n\nNote:\n%s", question, match.Information)
		extract, err := s.generator.Generate(ctx, distillInstructions, input)
		if err != nil {
			return "", fmt.Errorf("distill shard %d: %w", i, err)
		}

		extract = strings.TrimSpace(extract)
		if extract == "" || strings.EqualFold(extract, "IRRELEVANT") {
			continue
		}
		distilled = append(distilled, extract)
	}

	if len(distilled) == 0 {
		s.logger.Info("all shards distilled to nothing", "question", question, "matches", len(matches))
		return NoKnowledgeAnswer, nil
	}

	input := fmt.Sprintf("Question: %s\n\nDistilled notes:\n%s",
		question, strings.Join(distilled, "\n---\n"))
	answer, err := s.generator.Generate(ctx, synthesisInstructions, input)
	if err != nil {
		return "", fmt.Errorf("synthesize answer: %w", err)
	}
	return strings.TrimSpace(answer), nil
}
