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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theMladyPan/butler/ai/mock"
	"github.com/theMladyPan/butler/core"
	"github.com/theMladyPan/butler/index"
	"github.com/theMladyPan/butler/index/memory"
	"github.com/theMladyPan/butler/search"
)

func TestPlanRewritesQuestion(t *testing.T) {
	ctx := context.Background()

	generator := mock.NewMockGenerator()
	generator.GenerateFunc = func(ctx context.Context, instructions, input string) (string, error) {
		return "  quarterly revenue figures Q3  ", nil
	}

	planner, err := search.NewQueryPlanner(generator)
	require.NoError(t, err)

	query, err := planner.Plan(ctx, "how did we do last quarter?")
	require.NoError(t, err)
	assert.Equal(t, "quarterly revenue figures Q3", query)
}

func TestPlanFailsClosed(t *testing.T) {
	ctx := context.Background()

	generator := mock.NewMockGenerator()
	generator.GenerateFunc = func(ctx context.Context, instructions, input string) (string, error) {
		return "", errors.New("model overloaded")
	}

	planner, err := search.NewQueryPlanner(generator)
	require.NoError(t, err)

	_, err = planner.Plan(ctx, "anything")
	require.ErrorIs(t, err, core.ErrQueryPlanning)
}

func TestPlanRejectsEmptyQuestion(t *testing.T) {
	ctx := context.Background()

	generator := mock.NewMockGenerator()
	planner, err := search.NewQueryPlanner(generator)
	require.NoError(t, err)

	_, err = planner.Plan(ctx, "   ")
	require.ErrorIs(t, err, core.ErrEmptyInput)
	assert.Equal(t, 0, generator.CallCount())
}

func TestPlanRejectsEmptyQuery(t *testing.T) {
	ctx := context.Background()

	generator := mock.NewMockGenerator()
	generator.GenerateFunc = func(ctx context.Context, instructions, input string) (string, error) {
		return "  \n ", nil
	}

	planner, err := search.NewQueryPlanner(generator)
	require.NoError(t, err)

	_, err = planner.Plan(ctx, "anything")
	require.ErrorIs(t, err, core.ErrQueryPlanning)
}

func newSeededRetriever(t *testing.T) (*search.Retriever, *index.Indexer) {
	t.Helper()
	ctx := context.Background()

	indexer, err := index.NewIndexer(memory.NewStore("test"), 2)
	require.NoError(t, err)
	require.NoError(t, indexer.EnsureCollection(ctx))

	shards := []core.KnowledgeShard{
		{Information: "mostly relevant", Embedding: []float32{0.9, 0.43588989}},
		{Information: "barely relevant", Embedding: []float32{0.5, 0.8660254}},
		{Information: "quite relevant", Embedding: []float32{0.8, 0.6}},
	}
	_, err = indexer.Upsert(ctx, "facts.txt", shards)
	require.NoError(t, err)

	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return []float32{1, 0}, nil
	}

	retriever, err := search.NewRetriever(embedder, indexer)
	require.NoError(t, err)
	return retriever, indexer
}

func TestRetrieveSurfacesMaxScore(t *testing.T) {
	ctx := context.Background()
	retriever, _ := newSeededRetriever(t)

	results, err := retriever.Retrieve(ctx, "anything", 2)
	require.NoError(t, err)
	require.Len(t, results.Matches, 2)

	assert.Equal(t, "mostly relevant", results.Matches[0].Information)
	assert.Equal(t, "quite relevant", results.Matches[1].Information)
	assert.InDelta(t, 0.9, results.MaxScore, 1e-5)
	assert.False(t, results.Empty())
}

func TestRetrieveDefaultLimit(t *testing.T) {
	ctx := context.Background()
	retriever, _ := newSeededRetriever(t)

	results, err := retriever.Retrieve(ctx, "anything", 0)
	require.NoError(t, err)
	assert.Len(t, results.Matches, 3)
}

func TestRetrieveEmbedFailure(t *testing.T) {
	ctx := context.Background()

	indexer, err := index.NewIndexer(memory.NewStore("test"), 2)
	require.NoError(t, err)
	require.NoError(t, indexer.EnsureCollection(ctx))

	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return nil, core.ErrRemoteCapability
	}

	retriever, err := search.NewRetriever(embedder, indexer)
	require.NoError(t, err)

	_, err = retriever.Retrieve(ctx, "anything", 3)
	require.ErrorIs(t, err, core.ErrRemoteCapability)
}
