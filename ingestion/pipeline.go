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


package ingestion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/panjf2000/ants/v2"

	"github.com/theMladyPan/butler/ai"
	"github.com/theMladyPan/butler/core"
	"github.com/theMladyPan/butler/index"
	"github.com/theMladyPan/butler/storage"
)

// errNotText marks data that cannot be ingested as plain text.
var errNotText = errors.New("not valid UTF-8 text")

// Pipeline processes one artifact per Process call: extract, chunk, analyze,
// embed, journal, index, archive. Chunk-level analysis and embedding run
// concurrently on a shared worker pool; everything else is sequential.
type Pipeline struct {
	bucket   storage.Bucket
	journal  storage.ShardJournal
	indexer  *index.Indexer
	provider ai.Provider
	chunker  *core.Chunker
	pool     *ants.Pool
	now      func() time.Time
	logger   *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for chunk-level processing.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}
		if p.pool != nil {
			p.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// WithChunker sets the chunking parameters. Default is the standard window.
func WithChunker(chunker *core.Chunker) Option {
	return func(p *Pipeline) error {
		if chunker != nil {
			p.chunker = chunker
		}
		return nil
	}
}

// WithClock sets the time source used for archive naming. Default is
// time.Now.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) error {
		if now != nil {
			p.now = now
		}
		return nil
	}
}

// NewPipeline creates an ingestion pipeline over the given bucket, journal,
// indexer and AI provider.
func NewPipeline(
	bucket storage.Bucket,
	journal storage.ShardJournal,
	indexer *index.Indexer,
	provider ai.Provider,
	opts ...Option,
) (*Pipeline, error) {
	if bucket == nil {
		return nil, ErrBucketRequired
	}
	if journal == nil {
		return nil, ErrJournalRequired
	}
	if indexer == nil {
		return nil, ErrIndexerRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		bucket:   bucket,
		journal:  journal,
		indexer:  indexer,
		provider: provider,
		chunker:  core.NewChunker(core.DefaultMaxTextLength, core.DefaultOverlap),
		pool:     pool,
		now:      time.Now,
		logger:   slog.Default().With("component", "pipeline"),
	}
	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}
	return p, nil
}

// Release releases the worker pool. The pipeline must not be used after
// calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}

// chunkResult holds the output of one chunk's analyze+embed step, or the
// stage it failed at.
type chunkResult struct {
	shard core.KnowledgeShard
	stage Stage
	err   error
}

// Process ingests one artifact end to end. The artifact is archived whether
// ingestion succeeded, was skipped or failed; an error is returned only when
// the run itself could not be completed (for example the archive move
// failed).
func (p *Pipeline) Process(ctx context.Context, notif storage.Notification) (Outcome, error) {
	logger := p.logger.With("artifact", notif.Name, "event_id", notif.EventID)
	logger.Info("processing artifact")

	data, err := p.bucket.Fetch(ctx, notif.Name)
	if errors.Is(err, storage.ErrNotFound) {
		// Redelivery after a previous run already archived it.
		logger.Info("artifact not in intake, skipping")
		return Outcome{Status: Skipped, Artifact: notif.Name, Stage: StageReceived}, nil
	}
	if err != nil {
		return p.fail(ctx, logger, notif.Name, StageReceived, err)
	}

	artifact := core.Artifact{
		Name: notif.Name,
		Type: core.ArtifactTypeFromName(notif.Name),
		Data: data,
	}

	text, err := p.extractText(ctx, logger, artifact)
	if errors.Is(err, errNotText) {
		return p.skip(ctx, logger, notif.Name, "artifact is not readable text")
	}
	if err != nil {
		return p.fail(ctx, logger, notif.Name, StageExtracting, err)
	}
	if strings.TrimSpace(text) == "" {
		return p.skip(ctx, logger, notif.Name, "artifact has no textual content")
	}

	chunks := p.chunker.Chunk(text)
	logger.Debug("chunked artifact", "text_length", len(text), "chunks", len(chunks))

	results := make([]chunkResult, len(chunks))
	var wg sync.WaitGroup
	for i, chunk := range chunks {
		wg.Add(1)
		i, chunk := i, chunk
		submitErr := p.pool.Submit(func() {
			defer wg.Done()
			results[i] = p.processChunk(ctx, chunk)
		})
		if submitErr != nil {
			results[i] = chunkResult{stage: StageAnalyzing, err: submitErr}
			wg.Done()
		}
	}
	wg.Wait()

	shards := make([]core.KnowledgeShard, len(results))
	for i, result := range results {
		if result.err != nil {
			return p.fail(ctx, logger.With("chunk", i), notif.Name, result.stage, result.err)
		}
		shards[i] = result.shard
	}

	// Journal before upsert so the index can always be rebuilt from the
	// journal, never the other way around.
	for i, shard := range shards {
		id := core.ShardID(notif.Name, i, shard.Information)
		if err := p.journal.Record(ctx, id, shard); err != nil {
			return p.fail(ctx, logger, notif.Name, StageIndexing, err)
		}
	}

	if _, err := p.indexer.Upsert(ctx, notif.Name, shards); err != nil {
		return p.fail(ctx, logger, notif.Name, StageIndexing, err)
	}

	archived, err := p.bucket.Archive(ctx, notif.Name, p.now())
	if err != nil {
		return Outcome{
			Status:   Processed,
			Artifact: notif.Name,
			Shards:   len(shards),
			Stage:    StageIndexing,
		}, fmt.Errorf("archive %q: %w", notif.Name, err)
	}

	logger.Info("artifact processed", "shards", len(shards), "archived_as", archived)
	return Outcome{
		Status:     Processed,
		Artifact:   notif.Name,
		ArchivedAs: archived,
		Shards:     len(shards),
		Stage:      StageArchived,
	}, nil
}

// extractText dispatches on artifact type and returns the ingestible text.
// Audio transcripts are additionally written back to the bucket as an audit
// copy; a failed audit copy does not fail the run.
func (p *Pipeline) extractText(ctx context.Context, logger *slog.Logger, artifact core.Artifact) (string, error) {
	switch artifact.Type {
	case core.ArtifactAudio:
		text, err := p.provider.Transcriber().Transcribe(ctx, artifact.Name, artifact.Data)
		if err != nil {
			return "", fmt.Errorf("transcribe: %w", err)
		}
		if err := p.bucket.Put(ctx, artifact.Name+".txt", []byte(text)); err != nil {
			logger.Warn("transcript audit copy failed", "error", err)
		}
		return text, nil

	case core.ArtifactDocument:
		text, err := p.provider.DocumentExtractor().ExtractText(ctx, artifact.Name, artifact.Data)
		if err != nil {
			return "", fmt.Errorf("extract document: %w", err)
		}
		return text, nil

	default:
		if !utf8.Valid(artifact.Data) {
			return "", errNotText
		}
		return string(artifact.Data), nil
	}
}

// processChunk runs the analyze and embed steps for one chunk.
func (p *Pipeline) processChunk(ctx context.Context, chunk string) chunkResult {
	analysis, err := p.provider.Analyzer().Analyze(ctx, chunk)
	if err != nil {
		return chunkResult{stage: StageAnalyzing, err: err}
	}

	embedding, err := p.provider.Embedder().EmbedText(ctx, analysis.SearchText())
	if err != nil {
		return chunkResult{stage: StageEmbedding, err: err}
	}

	shard, err := core.AssembleShard(chunk, analysis, embedding, p.indexer.VectorSize())
	if err != nil {
		return chunkResult{stage: StageEmbedding, err: err}
	}
	return chunkResult{shard: shard}
}

// skip archives the artifact and reports a Skipped outcome.
func (p *Pipeline) skip(ctx context.Context, logger *slog.Logger, name, reason string) (Outcome, error) {
	logger.Info("skipping artifact", "reason", reason)
	archived := p.archiveQuietly(ctx, logger, name)
	return Outcome{
		Status:     Skipped,
		Artifact:   name,
		ArchivedAs: archived,
		Stage:      StageExtracting,
	}, nil
}

// fail archives the artifact and reports a Failed outcome. Stage failures
// are data, not pipeline errors; partial outputs are discarded.
func (p *Pipeline) fail(ctx context.Context, logger *slog.Logger, name string, stage Stage, cause error) (Outcome, error) {
	logger.Error("stage failed", "stage", stage.String(), "error", cause)
	archived := p.archiveQuietly(ctx, logger, name)
	return Outcome{
		Status:     Failed,
		Artifact:   name,
		ArchivedAs: archived,
		Stage:      stage,
		Err:        cause,
	}, nil
}

// archiveQuietly moves the artifact to the archive, logging rather than
// propagating failures. A missing source is fine; it means a concurrent run
// archived it first.
func (p *Pipeline) archiveQuietly(ctx context.Context, logger *slog.Logger, name string) string {
	archived, err := p.bucket.Archive(ctx, name, p.now())
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			logger.Error("archive failed", "error", err)
		}
		return ""
	}
	return archived
}
