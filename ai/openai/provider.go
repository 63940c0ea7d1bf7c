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


package openai

import (
	"log/slog"

	"github.com/theMladyPan/butler/ai"
)

// Provider implements ai.Provider using OpenAI-compatible services.
// It manages the transcriber, extractor, analyzer, embedder, and generator
// instances so they share one validated configuration.
type Provider struct {
	config      *ai.Config
	transcriber *Transcriber
	extractor   *DocumentExtractor
	analyzer    *Analyzer
	embedder    *Embedder
	generator   *Generator
	logger      *slog.Logger
}

var _ ai.Provider = (*Provider)(nil)

// NewProvider creates a new AI provider with OpenAI-compatible services.
// The config is validated and normalized before use.
//
// Returns ai.Provider interface (not *Provider) to enforce abstraction and
// prevent coupling to OpenAI-specific implementation details.
func NewProvider(config *ai.Config) (ai.Provider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	transcriber, err := newTranscriber(config)
	if err != nil {
		return nil, err
	}
	extractor, err := newDocumentExtractor(config)
	if err != nil {
		return nil, err
	}
	analyzer, err := newAnalyzer(config)
	if err != nil {
		return nil, err
	}
	embedder, err := newEmbedder(config)
	if err != nil {
		return nil, err
	}
	generator, err := newGenerator(config)
	if err != nil {
		return nil, err
	}

	return &Provider{
		config:      config,
		transcriber: transcriber,
		extractor:   extractor,
		analyzer:    analyzer,
		embedder:    embedder,
		generator:   generator,
		logger:      slog.Default().With("component", "openai-provider"),
	}, nil
}

// Transcriber returns the audio transcription service.
func (p *Provider) Transcriber() ai.Transcriber {
	return p.transcriber
}

// DocumentExtractor returns the document text extraction service.
func (p *Provider) DocumentExtractor() ai.DocumentExtractor {
	return p.extractor
}

// Analyzer returns the structured chunk analysis service.
func (p *Provider) Analyzer() ai.Analyzer {
	return p.analyzer
}

// Embedder returns the text embedding service.
func (p *Provider) Embedder() ai.Embedder {
	return p.embedder
}

// Generator returns the free-form generation service.
func (p *Provider) Generator() ai.Generator {
	return p.generator
}

// Close releases resources held by the provider.
// Currently a no-op as the underlying clients don't require explicit cleanup.
func (p *Provider) Close() error {
	p.logger.Debug("closing OpenAI provider")
	return nil
}
