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


package fsbucket_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theMladyPan/butler/storage"
	"github.com/theMladyPan/butler/storage/fsbucket"
)

func newTestBucket(t *testing.T) (storage.Bucket, string, string) {
	t.Helper()
	root := t.TempDir()
	intake := filepath.Join(root, "intake")
	archive := filepath.Join(root, "processed")

	bucket, err := fsbucket.New(intake, archive)
	require.NoError(t, err)
	return bucket, intake, archive
}

func TestFetch(t *testing.T) {
	ctx := context.Background()
	bucket, intake, _ := newTestBucket(t)

	require.NoError(t, os.WriteFile(filepath.Join(intake, "notes.txt"), []byte("hello"), 0o644))

	data, err := bucket.Fetch(ctx, "notes.txt")
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), data)

	_, err = bucket.Fetch(ctx, "missing.txt")
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestArchiveNaming(t *testing.T) {
	ctx := context.Background()
	bucket, intake, archive := newTestBucket(t)

	require.NoError(t, os.WriteFile(filepath.Join(intake, "call.mp3"), []byte("audio"), 0o644))

	now := time.Date(2025, 8, 28, 15, 30, 0, 0, time.UTC)
	archived, err := bucket.Archive(ctx, "call.mp3", now)
	require.NoError(t, err)
	assert.Equal(t, "250828_153000_call.mp3", archived)

	// Source gone, destination present with the same content.
	_, err = os.Stat(filepath.Join(intake, "call.mp3"))
	assert.True(t, os.IsNotExist(err))

	data, err := os.ReadFile(filepath.Join(archive, archived))
	require.NoError(t, err)
	assert.Equal(t, []byte("audio"), data)
}

func TestArchiveMissing(t *testing.T) {
	ctx := context.Background()
	bucket, _, _ := newTestBucket(t)

	_, err := bucket.Archive(ctx, "ghost.txt", time.Now())
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestPutWritesToArchive(t *testing.T) {
	ctx := context.Background()
	bucket, _, archive := newTestBucket(t)

	require.NoError(t, bucket.Put(ctx, "call.mp3.txt", []byte("transcript")))

	data, err := os.ReadFile(filepath.Join(archive, "call.mp3.txt"))
	require.NoError(t, err)
	assert.Equal(t, []byte("transcript"), data)
}

func TestListSkipsDotfilesAndDirs(t *testing.T) {
	ctx := context.Background()
	bucket, intake, _ := newTestBucket(t)

	require.NoError(t, os.WriteFile(filepath.Join(intake, "a.txt"), []byte("a"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(intake, ".hidden"), []byte("x"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(intake, "subdir"), 0o755))

	names, err := bucket.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt"}, names)
}

func TestWatchAnnouncesArrivals(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bucket, intake, _ := newTestBucket(t)
	watcher, ok := bucket.(storage.Watcher)
	require.True(t, ok)

	events, err := watcher.Watch(ctx)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(intake, "fresh.txt"), []byte("new"), 0o644))

	select {
	case notif := <-events:
		assert.Equal(t, "fresh.txt", notif.Name)
		assert.Equal(t, intake, notif.Bucket)
		assert.NotEmpty(t, notif.EventID)
	case <-time.After(3 * time.Second):
		t.Fatal("no notification within 3s")
	}

	cancel()
	select {
	case _, open := <-events:
		assert.False(t, open, "channel should close on cancellation")
	case <-time.After(3 * time.Second):
		t.Fatal("channel not closed within 3s")
	}
}
