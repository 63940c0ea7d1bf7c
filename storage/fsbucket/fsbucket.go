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


// Package fsbucket implements storage.Bucket over two local directories: an
// intake directory artifacts arrive in, and an archive directory processed
// artifacts are moved to under timestamped names. Arrivals are announced via
// filesystem notifications.
//
// Producers should move files into the intake directory atomically (write
// elsewhere, then rename); the watcher fires on creation, not on completed
// writes.
package fsbucket

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"

	"github.com/theMladyPan/butler/storage"
)

// archiveStampLayout prefixes archived names, e.g. "250828_153000_call.mp3".
const archiveStampLayout = "060102_150405"

// Bucket is a filesystem-backed artifact bucket.
type Bucket struct {
	intakeDir  string
	archiveDir string
	logger     *slog.Logger
}

var (
	_ storage.Bucket  = (*Bucket)(nil)
	_ storage.Watcher = (*Bucket)(nil)
)

// Option configures a Bucket.
type Option func(*Bucket)

// WithLogger sets a custom logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(b *Bucket) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// New creates a bucket over the given intake and archive directories,
// creating them if needed. Returns the storage.Bucket interface.
func New(intakeDir, archiveDir string, opts ...Option) (storage.Bucket, error) {
	return newBucket(intakeDir, archiveDir, opts...)
}

func newBucket(intakeDir, archiveDir string, opts ...Option) (*Bucket, error) {
	if intakeDir == "" || archiveDir == "" {
		return nil, fmt.Errorf("intake and archive directories required")
	}
	for _, dir := range []string{intakeDir, archiveDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create %s: %w", dir, err)
		}
	}

	b := &Bucket{
		intakeDir:  intakeDir,
		archiveDir: archiveDir,
		logger:     slog.Default().With("component", "fsbucket"),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// Name returns the intake directory path.
func (b *Bucket) Name() string {
	return b.intakeDir
}

// Fetch reads an artifact from the intake directory.
func (b *Bucket) Fetch(ctx context.Context, name string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(b.intakeDir, filepath.Base(name)))
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("fetch %q: %w", name, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("fetch %q: %w", name, err)
	}
	return data, nil
}

// Put writes a derived object into the archive directory.
func (b *Bucket) Put(ctx context.Context, name string, data []byte) error {
	path := filepath.Join(b.archiveDir, filepath.Base(name))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("put %q: %w", name, err)
	}
	return nil
}

// Archive moves an artifact from intake to archive under a timestamped name.
func (b *Bucket) Archive(ctx context.Context, name string, now time.Time) (string, error) {
	base := filepath.Base(name)
	archived := now.Format(archiveStampLayout) + "_" + base

	src := filepath.Join(b.intakeDir, base)
	dst := filepath.Join(b.archiveDir, archived)

	err := os.Rename(src, dst)
	if os.IsNotExist(err) {
		return "", fmt.Errorf("archive %q: %w", name, storage.ErrNotFound)
	}
	if err != nil {
		// Rename fails across filesystems; fall back to copy and remove.
		if copyErr := copyFile(src, dst); copyErr != nil {
			return "", fmt.Errorf("archive %q: %w", name, err)
		}
		if rmErr := os.Remove(src); rmErr != nil {
			return "", fmt.Errorf("archive %q: remove source: %w", name, rmErr)
		}
	}

	b.logger.Debug("archived artifact", "name", base, "archived", archived)
	return archived, nil
}

// List returns the artifacts currently awaiting ingestion, skipping dotfiles
// and directories.
func (b *Bucket) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(b.intakeDir)
	if err != nil {
		return nil, fmt.Errorf("list intake: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		names = append(names, entry.Name())
	}
	return names, nil
}

// Watch emits a notification per artifact created in the intake directory.
// The returned channel is closed when ctx is cancelled.
func (b *Bucket) Watch(ctx context.Context) (<-chan storage.Notification, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(b.intakeDir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", b.intakeDir, err)
	}

	out := make(chan storage.Notification)
	go func() {
		defer close(out)
		defer watcher.Close()

		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !event.Has(fsnotify.Create) {
					continue
				}
				base := filepath.Base(event.Name)
				if strings.HasPrefix(base, ".") {
					continue
				}
				if info, err := os.Stat(event.Name); err != nil || info.IsDir() {
					continue
				}

				notif := storage.Notification{
					Bucket:  b.intakeDir,
					Name:    base,
					EventID: uuid.NewString(),
				}
				select {
				case out <- notif:
				case <-ctx.Done():
					return
				}

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				b.logger.Error("watch error", "error", err)
			}
		}
	}()

	return out, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
