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


package search_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theMladyPan/butler/ai/mock"
	"github.com/theMladyPan/butler/core"
	"github.com/theMladyPan/butler/search"
)

func TestSummarizeZeroMatches(t *testing.T) {
	ctx := context.Background()

	generator := mock.NewMockGenerator()
	summarizer, err := search.NewSummarizer(generator)
	require.NoError(t, err)

	answer, err := summarizer.Summarize(ctx, "what happened?", nil)
	require.NoError(t, err)
	assert.Equal(t, search.NoKnowledgeAnswer, answer)
	assert.Equal(t, 0, generator.CallCount(), "generator must not be consulted without matches")
}

func TestSummarizeTwoPhase(t *testing.T) {
	ctx := context.Background()

	var instructionsSeen []string
	generator := mock.NewMockGenerator()
	generator.GenerateFunc = func(ctx context.Context, instructions, input string) (string, error) {
		instructionsSeen = append(instructionsSeen, instructions)
		if strings.Contains(input, "Distilled notes:") {
			return "the budget was approved in March", nil
		}
		return "budget approval: March", nil
	}

	summarizer, err := search.NewSummarizer(generator)
	require.NoError(t, err)

	matches := []core.ScoredMatch{
		{Information: "meeting notes mention the budget", Score: 0.9},
		{Information: "unrelated grocery list", Score: 0.4},
	}

	answer, err := summarizer.Summarize(ctx, "when was the budget approved?", matches)
	require.NoError(t, err)
	assert.Equal(t, "the budget was approved in March", answer)

	// One distillation call per match, then one synthesis call.
	require.Len(t, instructionsSeen, 3)
	assert.Equal(t, instructionsSeen[0], instructionsSeen[1])
	assert.NotEqual(t, instructionsSeen[0], instructionsSeen[2])
}

func TestSummarizeDropsIrrelevantShards(t *testing.T) {
	ctx := context.Background()

	synthesisInputs := 0
	generator := mock.NewMockGenerator()
	generator.GenerateFunc = func(ctx context.Context, instructions, input string) (string, error) {
		if strings.Contains(input, "Distilled notes:") {
			synthesisInputs++
			assert.NotContains(t, input, "IRRELEVANT")
			return "final answer", nil
		}
		if strings.Contains(input, "grocery") {
			return "IRRELEVANT", nil
		}
		return "useful fact", nil
	}

	summarizer, err := search.NewSummarizer(generator)
	require.NoError(t, err)

	matches := []core.ScoredMatch{
		{Information: "a useful note", Score: 0.9},
		{Information: "grocery list", Score: 0.3},
	}

	answer, err := summarizer.Summarize(ctx, "question?", matches)
	require.NoError(t, err)
	assert.Equal(t, "final answer", answer)
	assert.Equal(t, 1, synthesisInputs)
}

func TestSummarizeAllIrrelevant(t *testing.T) {
	ctx := context.Background()

	generator := mock.NewMockGenerator()
	generator.GenerateFunc = func(ctx context.Context, instructions, input string) (string, error) {
		return "irrelevant", nil
	}

	summarizer, err := search.NewSummarizer(generator)
	require.NoError(t, err)

	matches := []core.ScoredMatch{{Information: "nothing useful", Score: 0.2}}
	answer, err := summarizer.Summarize(ctx, "question?", matches)
	require.NoError(t, err)
	assert.Equal(t, search.NoKnowledgeAnswer, answer)
}

func TestSummarizeDistillFailure(t *testing.T) {
	ctx := context.Background()

	generator := mock.NewMockGenerator()
	generator.GenerateFunc = func(ctx context.Context, instructions, input string) (string, error) {
		return "", errors.New("model overloaded")
	}

	summarizer, err := search.NewSummarizer(generator)
	require.NoError(t, err)

	matches := []core.ScoredMatch{{Information: "a note", Score: 0.8}}
	_, err = summarizer.Summarize(ctx, "question?", matches)
	require.Error(t, err)
}
