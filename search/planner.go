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

const plannerInstructions = `You turn a user question into a short retrieval query
for a semantic knowledge index. Respond with the query only: the key entities,
facts and phrasings a relevant note would contain. No explanations, no
quotation marks, no preamble.`

// QueryPlanner rewrites a question into a retrieval query. There is no local
// fallback: if the generator fails, planning fails.
type QueryPlanner struct {
	generator ai.Generator
	logger    *slog.Logger
}

// NewQueryPlanner creates a planner over the given generator.
func NewQueryPlanner(generator ai.Generator, opts ...Option) (*QueryPlanner, error) {
	if generator == nil {
		return nil, ErrGeneratorRequired
	}
	return &QueryPlanner{
		generator: generator,
		logger:    applySettings(opts, slog.Default().With("component", "planner")),
	}, nil
}

// Plan returns the retrieval query for a question.
func (p *QueryPlanner) Plan(ctx context.Context, question string) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", fmt.Errorf("plan: %w", core.ErrEmptyInput)
	}

	query, err := p.generator.Generate(ctx, plannerInstructions, question)
	if err != nil {
		return "", fmt.Errorf("plan %q: %w: %w", question, core.ErrQueryPlanning, err)
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return "", fmt.Errorf("plan %q: empty query: %w", question, core.ErrQueryPlanning)
	}

	p.logger.Debug("planned query", "question", question, "query", query)
	return query, nil
}
