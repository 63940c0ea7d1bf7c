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


// Package butler assembles the knowledge base service from its parts:
// configuration, AI provider, vector index, artifact bucket, shard journal,
// ingestion pipeline and searcher.
package butler

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/theMladyPan/butler/ai"
	"github.com/theMladyPan/butler/ai/openai"
	"github.com/theMladyPan/butler/config"
	"github.com/theMladyPan/butler/core"
	"github.com/theMladyPan/butler/index"
	"github.com/theMladyPan/butler/index/qdrant"
	"github.com/theMladyPan/butler/ingestion"
	"github.com/theMladyPan/butler/search"
	"github.com/theMladyPan/butler/storage"
	badgerstore "github.com/theMladyPan/butler/storage/badger"
	"github.com/theMladyPan/butler/storage/fsbucket"
)

// reindexBatchSize bounds one upsert during journal replay.
const reindexBatchSize = 64

// Service owns the wired components for one butler process.
type Service struct {
	cfg      *config.Config
	provider ai.Provider
	store    index.Store
	indexer  *index.Indexer
	bucket   storage.Bucket
	journal  storage.ShardJournal
	logger   *slog.Logger
}

// ServiceOption configures service construction.
type ServiceOption func(*serviceOptions)

type serviceOptions struct {
	provider ai.Provider
	store    index.Store
}

// WithProvider injects an AI provider instead of constructing the
// OpenAI-compatible one from configuration.
func WithProvider(provider ai.Provider) ServiceOption {
	return func(o *serviceOptions) { o.provider = provider }
}

// WithStore injects a vector index store instead of the Qdrant client.
func WithStore(store index.Store) ServiceOption {
	return func(o *serviceOptions) { o.store = store }
}

// New wires a Service from configuration. The journal directory and the
// bucket directories are created if missing; the index collection is not
// touched until EnsureCollection is called.
func New(cfg *config.Config, opts ...ServiceOption) (*Service, error) {
	var options serviceOptions
	for _, opt := range opts {
		opt(&options)
	}

	provider := options.provider
	if provider == nil {
		aiCfg := ai.NewConfig(
			ai.WithHost(cfg.AIHost),
			ai.WithToken(cfg.AIToken),
			ai.WithEmbeddingModel(cfg.EmbeddingModel),
			ai.WithAnalyzerModel(cfg.AnalyzerModel),
			ai.WithGeneratorModel(cfg.GeneratorModel),
			ai.WithTranscriberModel(cfg.TranscriberModel),
		)
		if cfg.AIHost == "" {
			aiCfg.Host = ai.DefaultConfig().Host
		}
		if cfg.AIToken == "" {
			aiCfg.Token = ai.DefaultConfig().Token
		}

		var err error
		provider, err = openai.NewProvider(aiCfg)
		if err != nil {
			return nil, fmt.Errorf("ai provider: %w", err)
		}
	}

	store := options.store
	if store == nil {
		var err error
		store, err = qdrant.NewStore(qdrant.Config{
			Endpoint:   cfg.IndexEndpoint,
			APIKey:     cfg.IndexAPIKey,
			Collection: cfg.Collection,
		})
		if err != nil {
			provider.Close()
			return nil, fmt.Errorf("index store: %w", err)
		}
	}

	indexer, err := index.NewIndexer(store, cfg.VectorSize)
	if err != nil {
		provider.Close()
		return nil, err
	}

	bucket, err := fsbucket.New(cfg.IntakeDir, cfg.ArchiveDir)
	if err != nil {
		provider.Close()
		return nil, err
	}

	journal, err := badgerstore.OpenJournal(cfg.JournalDir)
	if err != nil {
		provider.Close()
		return nil, fmt.Errorf("shard journal: %w", err)
	}

	return &Service{
		cfg:      cfg,
		provider: provider,
		store:    store,
		indexer:  indexer,
		bucket:   bucket,
		journal:  journal,
		logger:   slog.Default().With("component", "service"),
	}, nil
}

// Close releases the provider and the journal.
func (s *Service) Close() error {
	if err := s.provider.Close(); err != nil {
		s.logger.Error("error closing AI provider", "err", err)
	}
	if err := s.journal.Close(); err != nil {
		s.logger.Error("error closing shard journal", "err", err)
		return err
	}
	return nil
}

// Config returns the service configuration.
func (s *Service) Config() *config.Config { return s.cfg }

// Indexer returns the vector indexer.
func (s *Service) Indexer() *index.Indexer { return s.indexer }

// Store returns the raw vector index store.
func (s *Service) Store() index.Store { return s.store }

// Provider returns the AI provider.
func (s *Service) Provider() ai.Provider { return s.provider }

// Bucket returns the artifact bucket.
func (s *Service) Bucket() storage.Bucket { return s.bucket }

// Journal returns the shard journal.
func (s *Service) Journal() storage.ShardJournal { return s.journal }

// EnsureCollection creates the index collection iff it does not exist.
func (s *Service) EnsureCollection(ctx context.Context) error {
	return s.indexer.EnsureCollection(ctx)
}

// NewPipeline creates an ingestion pipeline over the service's components.
// Chunking parameters come from the configuration.
func (s *Service) NewPipeline(opts ...ingestion.Option) (*ingestion.Pipeline, error) {
	chunker := ingestion.WithChunker(
		core.NewChunker(s.cfg.MaxTextLength, s.cfg.Overlap))
	opts = append([]ingestion.Option{chunker}, opts...)
	return ingestion.NewPipeline(s.bucket, s.journal, s.indexer, s.provider, opts...)
}

// NewSearcher creates a searcher over the service's components.
func (s *Service) NewSearcher(opts ...search.Option) (*search.Searcher, error) {
	return search.NewSearcher(s.provider, s.indexer, opts...)
}

// Reindex replays the shard journal into the index, recreating every point
// under its journaled id. The collection must exist. Returns the number of
// points written.
func (s *Service) Reindex(ctx context.Context) (int, error) {
	batch := make([]index.Point, 0, reindexBatchSize)
	total := 0

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := s.store.Upsert(ctx, batch); err != nil {
			return err
		}
		total += len(batch)
		batch = batch[:0]
		return nil
	}

	err := s.journal.Replay(ctx, func(id core.ID, shard core.KnowledgeShard) error {
		batch = append(batch, index.Point{
			ID:      id,
			Vector:  shard.Embedding,
			Payload: index.Payload{InformationShard: shard.Information},
		})
		if len(batch) == reindexBatchSize {
			return flush()
		}
		return nil
	})
	if err != nil {
		return total, fmt.Errorf("reindex: %w", err)
	}
	if err := flush(); err != nil {
		return total, fmt.Errorf("reindex: %w", err)
	}

	s.logger.Info("reindex complete", "points", total)
	return total, nil
}
