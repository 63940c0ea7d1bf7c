// Package memory provides an in-memory index.Store with exact cosine
// search. It backs tests and local runs without a Qdrant instance.
package memory

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/theMladyPan/butler/core"
	"github.com/theMladyPan/butler/index"
)

// Store is an in-memory vector index. Safe for concurrent use.
type Store struct {
	mu         sync.RWMutex
	name       string
	created    bool
	vectorSize int
	points     map[core.ID]index.Point
}

var _ index.Store = (*Store)(nil)

// NewStore creates an empty in-memory store for the named collection.
func NewStore(name string) *Store {
	return &Store{name: name, points: make(map[core.ID]index.Point)}
}

// EnsureCollection records the collection configuration. Calling it again
// with the same vector size is a no-op; a different size is an error since
// the collection already exists with another dimensionality.
func (s *Store) EnsureCollection(ctx context.Context, vectorSize int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.created {
		if s.vectorSize != vectorSize {
			return fmt.Errorf("collection %q exists with %d dimensions, requested %d",
				s.name, s.vectorSize, vectorSize)
		}
		return nil
	}
	s.created = true
	s.vectorSize = vectorSize
	return nil
}

// Upsert inserts or replaces points by id.
func (s *Store) Upsert(ctx context.Context, points []index.Point) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.created {
		return fmt.Errorf("collection %q does not exist: %w", s.name, core.ErrIndexUnavailable)
	}
	for _, p := range points {
		if len(p.Vector) != s.vectorSize {
			return fmt.Errorf("point %d: got %d dimensions, collection has %d",
				p.ID, len(p.Vector), s.vectorSize)
		}
	}
	for _, p := range points {
		s.points[p.ID] = p
	}
	return nil
}

// Search returns up to limit points ordered by descending cosine similarity.
func (s *Store) Search(ctx context.Context, vector []float32, limit int) ([]index.ScoredPoint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.created {
		return nil, fmt.Errorf("collection %q does not exist: %w", s.name, core.ErrIndexUnavailable)
	}

	hits := make([]index.ScoredPoint, 0, len(s.points))
	for _, p := range s.points {
		hits = append(hits, index.ScoredPoint{
			Score:   cosine(vector, p.Vector),
			Payload: p.Payload,
		})
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].Score > hits[j].Score })
	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}
	return hits, nil
}

// Count returns the number of stored points.
func (s *Store) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.points), nil
}

// Info returns collection metadata.
func (s *Store) Info(ctx context.Context) (index.CollectionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return index.CollectionInfo{
		Name:       s.name,
		PointCount: len(s.points),
		VectorSize: s.vectorSize,
	}, nil
}

// DeleteCollection drops the collection and all points.
func (s *Store) DeleteCollection(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.created = false
	s.vectorSize = 0
	s.points = make(map[core.ID]index.Point)
	return nil
}

// cosine computes cosine similarity between two vectors. Mismatched lengths
// score zero.
func cosine(a, b []float32) float32 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}
