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


package badger_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theMladyPan/butler/core"
	"github.com/theMladyPan/butler/storage"
	badgerstore "github.com/theMladyPan/butler/storage/badger"
)

func newTestJournal(t *testing.T) storage.ShardJournal {
	t.Helper()
	journal, err := badgerstore.OpenMemoryJournal()
	require.NoError(t, err)
	t.Cleanup(func() { _ = journal.Close() })
	return journal
}

func testShard(text string) core.KnowledgeShard {
	return core.KnowledgeShard{
		Information: text,
		Analysis: core.AnalysisResult{
			Phrases:   []string{"phrase about " + text},
			Keypoints: []string{"keypoint"},
		},
		Embedding: []float32{0.1, 0.2, 0.3},
	}
}

func TestRecordAndGet(t *testing.T) {
	ctx := context.Background()
	journal := newTestJournal(t)

	shard := testShard("meeting notes")
	id := core.ShardID("notes.txt", 0, shard.Information)

	require.NoError(t, journal.Record(ctx, id, shard))

	got, err := journal.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, shard, got)
}

func TestGetMissing(t *testing.T) {
	ctx := context.Background()
	journal := newTestJournal(t)

	_, err := journal.Get(ctx, core.ID(42))
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestRecordOverwrites(t *testing.T) {
	ctx := context.Background()
	journal := newTestJournal(t)

	id := core.ID(7)
	require.NoError(t, journal.Record(ctx, id, testShard("first")))
	require.NoError(t, journal.Record(ctx, id, testShard("second")))

	got, err := journal.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "second", got.Information)

	count, err := journal.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestReplayVisitsAllShards(t *testing.T) {
	ctx := context.Background()
	journal := newTestJournal(t)

	want := map[core.ID]core.KnowledgeShard{
		core.ID(1): testShard("alpha"),
		core.ID(2): testShard("beta"),
		core.ID(3): testShard("gamma"),
	}
	for id, shard := range want {
		require.NoError(t, journal.Record(ctx, id, shard))
	}

	got := make(map[core.ID]core.KnowledgeShard)
	err := journal.Replay(ctx, func(id core.ID, shard core.KnowledgeShard) error {
		got[id] = shard
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestReplayStopsOnError(t *testing.T) {
	ctx := context.Background()
	journal := newTestJournal(t)

	require.NoError(t, journal.Record(ctx, core.ID(1), testShard("alpha")))
	require.NoError(t, journal.Record(ctx, core.ID(2), testShard("beta")))

	visits := 0
	err := journal.Replay(ctx, func(id core.ID, shard core.KnowledgeShard) error {
		visits++
		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, 1, visits)
}

func TestCountEmpty(t *testing.T) {
	ctx := context.Background()
	journal := newTestJournal(t)

	count, err := journal.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}
