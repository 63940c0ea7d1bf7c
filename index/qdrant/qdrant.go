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


// Package qdrant implements index.Store as a minimal REST client to Qdrant.
// Collections are created with cosine distance; upserts wait for durability.
package qdrant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/theMladyPan/butler/core"
	"github.com/theMladyPan/butler/index"
)

const defaultTimeout = 15 * time.Second

// Config holds connection details for a Qdrant instance.
type Config struct {
	// Endpoint is the base URL, e.g. "http://localhost:6333".
	Endpoint string
	// APIKey may be empty for unauthenticated local instances.
	APIKey string
	// Collection is the collection name.
	Collection string
	// Timeout bounds every request. Defaults to 15s.
	Timeout time.Duration
}

// Store is a REST client to one Qdrant collection.
type Store struct {
	endpoint   string
	apiKey     string
	collection string
	client     *http.Client
	logger     *slog.Logger
}

var _ index.Store = (*Store)(nil)

// NewStore creates a Qdrant-backed index store.
func NewStore(cfg Config) (*Store, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("qdrant endpoint required")
	}
	if cfg.Collection == "" {
		return nil, fmt.Errorf("qdrant collection required")
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	return &Store{
		endpoint:   cfg.Endpoint,
		apiKey:     cfg.APIKey,
		collection: cfg.Collection,
		client:     &http.Client{Timeout: timeout},
		logger:     slog.Default().With("component", "qdrant", "collection", cfg.Collection),
	}, nil
}

// EnsureCollection creates the collection with cosine distance iff it does
// not already exist.
func (s *Store) EnsureCollection(ctx context.Context, vectorSize int) error {
	status, err := s.do(ctx, http.MethodGet, s.collectionURL(), nil, nil)
	if err != nil {
		return err
	}
	if status == http.StatusOK {
		return nil
	}
	if status != http.StatusNotFound {
		return fmt.Errorf("qdrant: unexpected status %d checking collection %q", status, s.collection)
	}

	body := map[string]any{
		"vectors": map[string]any{
			"size":     vectorSize,
			"distance": "Cosine",
		},
	}
	status, err = s.do(ctx, http.MethodPut, s.collectionURL(), body, nil)
	if err != nil {
		return err
	}
	if status >= 300 {
		return fmt.Errorf("qdrant: create collection %q failed with status %d", s.collection, status)
	}

	s.logger.Info("created collection", "size", vectorSize, "distance", "Cosine")
	return nil
}

// Upsert writes points and waits for the index to acknowledge them.
// A non-completed update status is surfaced as an error.
func (s *Store) Upsert(ctx context.Context, points []index.Point) error {
	body := map[string]any{"points": points}
	var resp struct {
		Result struct {
			Status string `json:"status"`
		} `json:"result"`
		Status any `json:"status"`
	}
	status, err := s.do(ctx, http.MethodPut, s.collectionURL()+"/points?wait=true", body, &resp)
	if err != nil {
		return err
	}
	if status >= 300 {
		return fmt.Errorf("qdrant: upsert of %d points failed with status %d: %v",
			len(points), status, resp.Status)
	}
	if resp.Result.Status != "" && resp.Result.Status != "completed" && resp.Result.Status != "acknowledged" {
		return fmt.Errorf("qdrant: upsert not completed: %s", resp.Result.Status)
	}
	return nil
}

// Search returns up to limit nearest points with payloads.
func (s *Store) Search(ctx context.Context, vector []float32, limit int) ([]index.ScoredPoint, error) {
	if limit <= 0 {
		limit = 10
	}
	body := map[string]any{
		"vector":       vector,
		"limit":        limit,
		"with_payload": true,
	}
	var resp struct {
		Result []index.ScoredPoint `json:"result"`
	}
	status, err := s.do(ctx, http.MethodPost, s.collectionURL()+"/points/search", body, &resp)
	if err != nil {
		return nil, err
	}
	if status >= 300 {
		return nil, fmt.Errorf("qdrant: search failed with status %d", status)
	}
	return resp.Result, nil
}

// Count returns the exact number of points in the collection.
func (s *Store) Count(ctx context.Context) (int, error) {
	body := map[string]any{"exact": true}
	var resp struct {
		Result struct {
			Count int `json:"count"`
		} `json:"result"`
	}
	status, err := s.do(ctx, http.MethodPost, s.collectionURL()+"/points/count", body, &resp)
	if err != nil {
		return 0, err
	}
	if status >= 300 {
		return 0, fmt.Errorf("qdrant: count failed with status %d", status)
	}
	return resp.Result.Count, nil
}

// Info returns collection metadata.
func (s *Store) Info(ctx context.Context) (index.CollectionInfo, error) {
	var resp struct {
		Result struct {
			PointsCount int `json:"points_count"`
			Config      struct {
				Params struct {
					Vectors struct {
						Size int `json:"size"`
					} `json:"vectors"`
				} `json:"params"`
			} `json:"config"`
		} `json:"result"`
	}
	status, err := s.do(ctx, http.MethodGet, s.collectionURL(), nil, &resp)
	if err != nil {
		return index.CollectionInfo{}, err
	}
	if status >= 300 {
		return index.CollectionInfo{}, fmt.Errorf("qdrant: collection info failed with status %d", status)
	}
	return index.CollectionInfo{
		Name:       s.collection,
		PointCount: resp.Result.PointsCount,
		VectorSize: resp.Result.Config.Params.Vectors.Size,
	}, nil
}

// DeleteCollection drops the collection. Destructive.
func (s *Store) DeleteCollection(ctx context.Context) error {
	status, err := s.do(ctx, http.MethodDelete, s.collectionURL(), nil, nil)
	if err != nil {
		return err
	}
	if status >= 300 && status != http.StatusNotFound {
		return fmt.Errorf("qdrant: delete collection %q failed with status %d", s.collection, status)
	}
	return nil
}

func (s *Store) collectionURL() string {
	return fmt.Sprintf("%s/collections/%s", s.endpoint, s.collection)
}

// do performs one JSON request. Transport-level failures are classified as
// core.ErrIndexUnavailable; HTTP status handling is left to the caller.
func (s *Store) do(ctx context.Context, method, url string, body, out any) (int, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("qdrant: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return 0, fmt.Errorf("qdrant: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if s.apiKey != "" {
		req.Header.Set("api-key", s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("qdrant: %s %s: %w: %w", method, url, core.ErrIndexUnavailable, err)
	}
	defer resp.Body.Close()

	if out != nil && resp.StatusCode < 300 {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, fmt.Errorf("qdrant: decode response: %w", err)
		}
	} else if out != nil {
		// Drain the error body into the generic status field when possible.
		_ = json.NewDecoder(resp.Body).Decode(out)
	}
	return resp.StatusCode, nil
}
