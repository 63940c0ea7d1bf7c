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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theMladyPan/butler/ai/mock"
	"github.com/theMladyPan/butler/core"
	"github.com/theMladyPan/butler/index"
	"github.com/theMladyPan/butler/index/memory"
	"github.com/theMladyPan/butler/search"
)

// newAskFixture seeds an index with one shard and wires a provider whose
// embedder maps both the shard text and any query onto nearby vectors.
func newAskFixture(t *testing.T) (*search.Searcher, *mock.MockProvider) {
	t.Helper()
	ctx := context.Background()

	indexer, err := index.NewIndexer(memory.NewStore("test"), 2)
	require.NoError(t, err)
	require.NoError(t, indexer.EnsureCollection(ctx))

	_, err = indexer.Upsert(ctx, "minutes.txt", []core.KnowledgeShard{
		{Information: "the budget was approved on March 3rd", Embedding: []float32{1, 0}},
	})
	require.NoError(t, err)

	provider := mock.NewMockProvider()
	provider.MockEmbedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return []float32{1, 0}, nil
	}
	provider.MockGenerator.GenerateFunc = func(ctx context.Context, instructions, input string) (string, error) {
		switch {
		case strings.Contains(instructions, "retrieval query"):
			return "budget approval date", nil
		case strings.Contains(input, "Distilled notes:"):
			return "March 3rd", nil
		default:
			return "approved on March 3rd", nil
		}
	}

	searcher, err := search.NewSearcher(provider, indexer)
	require.NoError(t, err)
	return searcher, provider
}

func TestAskEndToEnd(t *testing.T) {
	ctx := context.Background()
	searcher, _ := newAskFixture(t)

	answer, err := searcher.Ask(ctx, "when was the budget approved?", 3)
	require.NoError(t, err)

	assert.Equal(t, "March 3rd", answer.Text)
	assert.Equal(t, "budget approval date", answer.Query)
	assert.Equal(t, 1, answer.Matches)
	assert.InDelta(t, 1.0, answer.MaxScore, 1e-5)
}

func TestAskEmptyIndex(t *testing.T) {
	ctx := context.Background()

	indexer, err := index.NewIndexer(memory.NewStore("test"), 2)
	require.NoError(t, err)
	require.NoError(t, indexer.EnsureCollection(ctx))

	provider := mock.NewMockProvider()
	provider.MockEmbedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return []float32{1, 0}, nil
	}
	generatorCalls := 0
	provider.MockGenerator.GenerateFunc = func(ctx context.Context, instructions, input string) (string, error) {
		generatorCalls++
		return "some query", nil
	}

	searcher, err := search.NewSearcher(provider, indexer)
	require.NoError(t, err)

	answer, err := searcher.Ask(ctx, "anything at all?", 5)
	require.NoError(t, err)
	assert.Equal(t, search.NoKnowledgeAnswer, answer.Text)
	assert.Equal(t, 0, answer.Matches)
	assert.Equal(t, 1, generatorCalls, "only the planner should have run")
}

func TestAskPlannerFailurePropagates(t *testing.T) {
	ctx := context.Background()
	searcher, provider := newAskFixture(t)

	provider.MockGenerator.GenerateFunc = func(ctx context.Context, instructions, input string) (string, error) {
		return "", core.ErrRemoteCapability
	}

	_, err := searcher.Ask(ctx, "when was the budget approved?", 3)
	require.ErrorIs(t, err, core.ErrQueryPlanning)
}
