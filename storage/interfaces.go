package storage

import (
	"context"
	"time"

	"github.com/theMladyPan/butler/core"
)

// Notification announces the arrival of an artifact in a bucket. EventID is
// unique per delivery so redeliveries of the same artifact can be told apart
// in logs.
type Notification struct {
	Bucket  string
	Name    string
	EventID string
}

// Bucket is a flat namespace of named artifacts.
type Bucket interface {
	// Name identifies the bucket, e.g. its root path.
	Name() string

	// Fetch reads the named artifact. Returns ErrNotFound if it does not
	// exist.
	Fetch(ctx context.Context, name string) ([]byte, error)

	// Put writes a derived object next to the archived artifacts, such as
	// the transcript audit copy of an audio recording. Overwrites.
	Put(ctx context.Context, name string, data []byte) error

	// Archive moves the named artifact out of the intake namespace under a
	// timestamped name so it is never picked up again. Returns the archived
	// name. Archiving happens whether ingestion succeeded or not.
	Archive(ctx context.Context, name string, now time.Time) (string, error)

	// List returns the names of artifacts currently awaiting ingestion.
	List(ctx context.Context) ([]string, error)
}

// Watcher is implemented by buckets that can announce artifact arrivals.
type Watcher interface {
	// Watch emits a Notification per arriving artifact until ctx is
	// cancelled. The channel is closed on cancellation or watch failure.
	Watch(ctx context.Context) (<-chan Notification, error)
}

// ShardJournal records every knowledge shard produced by ingestion, keyed by
// its index point id. It is the durable source of truth the vector
// collection can be rebuilt from.
type ShardJournal interface {
	// Record persists one shard under its point id. Overwrites on
	// redelivery, mirroring the index upsert semantics.
	Record(ctx context.Context, id core.ID, shard core.KnowledgeShard) error

	// Get retrieves a shard by point id. Returns ErrNotFound if absent.
	Get(ctx context.Context, id core.ID) (core.KnowledgeShard, error)

	// Replay invokes fn for every journaled shard. Iteration stops at the
	// first error from fn.
	Replay(ctx context.Context, fn func(id core.ID, shard core.KnowledgeShard) error) error

	// Count returns the number of journaled shards.
	Count(ctx context.Context) (int, error)

	// Close releases the underlying backend.
	Close() error
}
