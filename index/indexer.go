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


package index

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/theMladyPan/butler/core"
)

// Indexer upserts knowledge shards into a vector index. It exclusively owns
// point id assignment: ids are content hashes of (source, ordinal, text), so
// concurrent ingestion cannot collide and redelivered artifacts overwrite
// their own points instead of duplicating them.
type Indexer struct {
	store      Store
	vectorSize int
	logger     *slog.Logger
}

// Option configures an Indexer.
type Option func(*Indexer)

// WithLogger sets a custom logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(ix *Indexer) {
		if logger != nil {
			ix.logger = logger
		}
	}
}

// NewIndexer creates an indexer over the given store. vectorSize is the
// collection's configured dimensionality.
func NewIndexer(store Store, vectorSize int, opts ...Option) (*Indexer, error) {
	if store == nil {
		return nil, fmt.Errorf("index store required")
	}
	if vectorSize <= 0 {
		return nil, fmt.Errorf("vector size must be positive, got %d", vectorSize)
	}

	ix := &Indexer{
		store:      store,
		vectorSize: vectorSize,
		logger:     slog.Default().With("component", "indexer"),
	}
	for _, opt := range opts {
		opt(ix)
	}
	return ix, nil
}

// VectorSize returns the collection's configured dimensionality.
func (ix *Indexer) VectorSize() int {
	return ix.vectorSize
}

// EnsureCollection creates the collection iff it does not exist.
// Idempotent; called on every process start.
func (ix *Indexer) EnsureCollection(ctx context.Context) error {
	if err := ix.store.EnsureCollection(ctx, ix.vectorSize); err != nil {
		return fmt.Errorf("ensure collection: %w", err)
	}
	return nil
}

// Upsert indexes the shards of one source artifact, preserving their chunk
// order in the assigned ordinals. Returns the assigned point ids.
func (ix *Indexer) Upsert(ctx context.Context, source string, shards []core.KnowledgeShard) ([]core.ID, error) {
	if len(shards) == 0 {
		return nil, nil
	}

	points := make([]Point, len(shards))
	ids := make([]core.ID, len(shards))
	for i, shard := range shards {
		if len(shard.Embedding) != ix.vectorSize {
			return nil, fmt.Errorf("upsert %q shard %d: got %d dimensions, index expects %d: %w",
				source, i, len(shard.Embedding), ix.vectorSize, core.ErrDimensionMismatch)
		}
		ids[i] = core.ShardID(source, i, shard.Information)
		points[i] = Point{
			ID:      ids[i],
			Vector:  shard.Embedding,
			Payload: Payload{InformationShard: shard.Information},
		}
	}

	if err := ix.store.Upsert(ctx, points); err != nil {
		return nil, fmt.Errorf("upsert %q: %w", source, err)
	}

	ix.logger.Info("indexed shards", "source", source, "points", len(points))
	return ids, nil
}

// Search returns up to k nearest shards for the query vector, ordered by
// descending similarity.
func (ix *Indexer) Search(ctx context.Context, vector []float32, k int) ([]core.ScoredMatch, error) {
	hits, err := ix.store.Search(ctx, vector, k)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	matches := make([]core.ScoredMatch, len(hits))
	for i, hit := range hits {
		matches[i] = core.ScoredMatch{
			Information: hit.Payload.InformationShard,
			Score:       hit.Score,
		}
	}
	return matches, nil
}

// Count returns the number of points in the collection.
func (ix *Indexer) Count(ctx context.Context) (int, error) {
	return ix.store.Count(ctx)
}

// Info returns collection metadata.
func (ix *Indexer) Info(ctx context.Context) (CollectionInfo, error) {
	return ix.store.Info(ctx)
}

// DeleteCollection removes the collection. Destructive; maintenance only.
func (ix *Indexer) DeleteCollection(ctx context.Context) error {
	return ix.store.DeleteCollection(ctx)
}
