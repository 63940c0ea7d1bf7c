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


package ai

import (
	"errors"
	"strings"
)

// Config holds configuration for AI service providers.
type Config struct {
	// Host is the base URL of the OpenAI-compatible API serving all
	// capabilities. Example: "http://localhost:11434/v1".
	Host string

	// Token is the API key. Local servers usually accept any value.
	Token string

	// EmbeddingModel is the model identifier for text embeddings.
	EmbeddingModel string

	// AnalyzerModel is the model identifier for structured chunk analysis.
	AnalyzerModel string

	// GeneratorModel is the model identifier for query planning and
	// summarization.
	GeneratorModel string

	// TranscriberModel is the model identifier for audio transcription.
	TranscriberModel string
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithHost sets the API base URL.
func WithHost(host string) ConfigOption {
	return func(c *Config) { c.Host = host }
}

// WithToken sets the API key.
func WithToken(token string) ConfigOption {
	return func(c *Config) { c.Token = token }
}

// WithEmbeddingModel sets the embedding model identifier.
func WithEmbeddingModel(model string) ConfigOption {
	return func(c *Config) { c.EmbeddingModel = model }
}

// WithAnalyzerModel sets the analyzer model identifier.
func WithAnalyzerModel(model string) ConfigOption {
	return func(c *Config) { c.AnalyzerModel = model }
}

// WithGeneratorModel sets the generator model identifier.
func WithGeneratorModel(model string) ConfigOption {
	return func(c *Config) { c.GeneratorModel = model }
}

// WithTranscriberModel sets the transcription model identifier.
func WithTranscriberModel(model string) ConfigOption {
	return func(c *Config) { c.TranscriberModel = model }
}

// DefaultConfig returns a Config with defaults for the hosted OpenAI API.
func DefaultConfig() *Config {
	return &Config{
		Host:             "https://api.openai.com/v1",
		Token:            "none",
		EmbeddingModel:   "text-embedding-3-small",
		AnalyzerModel:    "gpt-4o-mini",
		GeneratorModel:   "gpt-4o-mini",
		TranscriberModel: "whisper-1",
	}
}

// NewConfig creates a Config with the default values and applies the
// provided options.
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the configuration is in canonical form. The /v1 suffix
// is appended to the host if missing, as required by OpenAI-compatible APIs
// (OpenAI, Ollama, LocalAI, vLLM).
func (c *Config) Normalize() {
	if c.Host != "" && !strings.HasSuffix(c.Host, "/v1") {
		c.Host = strings.TrimSuffix(c.Host, "/") + "/v1"
	}
}

// Validate checks that the configuration is valid and complete.
// It normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	if c.Host == "" {
		return errors.New("ai config: Host is required")
	}
	if c.EmbeddingModel == "" {
		return errors.New("ai config: EmbeddingModel is required")
	}
	if c.AnalyzerModel == "" {
		return errors.New("ai config: AnalyzerModel is required")
	}
	if c.GeneratorModel == "" {
		return errors.New("ai config: GeneratorModel is required")
	}
	if c.TranscriberModel == "" {
		return errors.New("ai config: TranscriberModel is required")
	}
	return nil
}
