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


package butler_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theMladyPan/butler"
	"github.com/theMladyPan/butler/ai/mock"
	"github.com/theMladyPan/butler/config"
	"github.com/theMladyPan/butler/index/memory"
	"github.com/theMladyPan/butler/ingestion"
	"github.com/theMladyPan/butler/storage"
)

func newTestService(t *testing.T) (*butler.Service, *config.Config) {
	t.Helper()
	root := t.TempDir()

	cfg := &config.Config{
		VectorSize:    mock.DefaultVectorSize,
		MaxTextLength: config.DefaultMaxTextLength,
		Overlap:       config.DefaultOverlap,
		Collection:    "test",
		IntakeDir:     filepath.Join(root, "intake"),
		ArchiveDir:    filepath.Join(root, "processed"),
		JournalDir:    filepath.Join(root, "journal"),
	}

	service, err := butler.New(cfg,
		butler.WithProvider(mock.NewMockProvider()),
		butler.WithStore(memory.NewStore(cfg.Collection)),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = service.Close() })
	return service, cfg
}

func TestServiceIngestAndAsk(t *testing.T) {
	ctx := context.Background()
	service, cfg := newTestService(t)

	require.NoError(t, service.EnsureCollection(ctx))

	pipeline, err := service.NewPipeline()
	require.NoError(t, err)
	defer pipeline.Release()

	path := filepath.Join(cfg.IntakeDir, "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("the budget was approved on March 3rd"), 0o644))

	outcome, err := pipeline.Process(ctx, storage.Notification{
		Bucket: cfg.IntakeDir, Name: "notes.txt", EventID: "evt-1",
	})
	require.NoError(t, err)
	require.Equal(t, ingestion.Processed, outcome.Status)
	require.Equal(t, 1, outcome.Shards)

	searcher, err := service.NewSearcher()
	require.NoError(t, err)

	answer, err := searcher.Ask(ctx, "when was the budget approved?", 3)
	require.NoError(t, err)
	assert.Equal(t, 1, answer.Matches)
	assert.NotEmpty(t, answer.Text)
}

func TestServiceReindexFromJournal(t *testing.T) {
	ctx := context.Background()
	service, cfg := newTestService(t)

	require.NoError(t, service.EnsureCollection(ctx))

	pipeline, err := service.NewPipeline()
	require.NoError(t, err)
	defer pipeline.Release()

	path := filepath.Join(cfg.IntakeDir, "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("facts worth keeping"), 0o644))

	outcome, err := pipeline.Process(ctx, storage.Notification{
		Bucket: cfg.IntakeDir, Name: "notes.txt", EventID: "evt-1",
	})
	require.NoError(t, err)
	require.Equal(t, ingestion.Processed, outcome.Status)

	// Drop the collection, then rebuild it from the journal.
	require.NoError(t, service.Indexer().DeleteCollection(ctx))
	require.NoError(t, service.EnsureCollection(ctx))

	count, err := service.Indexer().Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 0, count)

	written, err := service.Reindex(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, written)

	count, err = service.Indexer().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
