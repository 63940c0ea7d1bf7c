package index

import (
	"context"

	"github.com/theMladyPan/butler/core"
)

// Payload is the data stored alongside a point and returned at query time.
// Only the verbatim chunk text travels with the vector; analysis stays in
// the shard journal.
type Payload struct {
	InformationShard string `json:"information_shard"`
}

// Point is one indexed vector with its payload.
type Point struct {
	ID      core.ID   `json:"id"`
	Vector  []float32 `json:"vector"`
	Payload Payload   `json:"payload"`
}

// ScoredPoint is a search hit: payload plus similarity score, as reported by
// the store.
type ScoredPoint struct {
	Score   float32 `json:"score"`
	Payload Payload `json:"payload"`
}

// CollectionInfo describes the state of the index collection.
type CollectionInfo struct {
	Name       string
	PointCount int
	VectorSize int
}

// Store is the narrow contract the core requires from a vector index.
// Implementations must be safe for concurrent use; the index is the only
// shared state between concurrently ingesting artifacts.
type Store interface {
	// EnsureCollection creates the collection with the given vector size and
	// cosine distance iff it does not already exist. Idempotent; safe to
	// call on every process start.
	EnsureCollection(ctx context.Context, vectorSize int) error

	// Upsert inserts or replaces points and waits for the index to
	// acknowledge durability before returning. Partial failures are
	// surfaced as errors, never swallowed.
	Upsert(ctx context.Context, points []Point) error

	// Search returns up to limit nearest points by cosine similarity,
	// ordered by descending score.
	Search(ctx context.Context, vector []float32, limit int) ([]ScoredPoint, error)

	// Count returns the number of points in the collection.
	Count(ctx context.Context) (int, error)

	// Info returns collection metadata.
	Info(ctx context.Context) (CollectionInfo, error)

	// DeleteCollection removes the collection and all its points.
	// Destructive; used only by maintenance tooling.
	DeleteCollection(ctx context.Context) error
}
