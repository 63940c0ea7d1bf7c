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


// Package config loads environment-sourced configuration for the knowledge
// base. A .env file in the working directory is honored when present; real
// environment variables take precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Recognized environment keys.
const (
	EnvVectorSize    = "VECTOR_SIZE"
	EnvMaxTextLength = "MAX_TEXT_LENGTH"
	EnvOverlap       = "OVERLAP"

	EnvIndexEndpoint   = "QDRANT_ENDPOINT"
	EnvIndexAPIKey     = "QDRANT_API_KEY"
	EnvIndexCollection = "QDRANT_COLLECTION"

	EnvIntakeDir  = "INTAKE_DIR"
	EnvArchiveDir = "ARCHIVE_DIR"
	EnvJournalDir = "JOURNAL_DIR"

	EnvAIHost           = "AI_HOST"
	EnvAIToken          = "AI_TOKEN"
	EnvEmbeddingModel   = "EMBEDDING_MODEL"
	EnvAnalyzerModel    = "ANALYZER_MODEL"
	EnvGeneratorModel   = "GENERATOR_MODEL"
	EnvTranscriberModel = "TRANSCRIBER_MODEL"
)

// Defaults applied when the corresponding key is unset. VectorSize has no
// default: production use must configure it explicitly.
const (
	DefaultMaxTextLength = 4096
	DefaultOverlap       = 1024
	DefaultCollection    = "test"
	DefaultIntakeDir     = "intake"
	DefaultArchiveDir    = "processed"
	DefaultJournalDir    = "journal"
)

// ErrVectorSizeRequired indicates VECTOR_SIZE is missing or not a positive
// integer.
var ErrVectorSizeRequired = errors.New("VECTOR_SIZE environment variable is not set")

// Config holds the resolved configuration for one process.
type Config struct {
	// VectorSize is the index's vector dimensionality. Required.
	VectorSize int

	// MaxTextLength and Overlap parametrize the chunking window.
	MaxTextLength int
	Overlap       int

	// IndexEndpoint, IndexAPIKey and Collection configure the vector index.
	IndexEndpoint string
	IndexAPIKey   string
	Collection    string

	// IntakeDir is watched for arriving artifacts; ArchiveDir receives them
	// after processing; JournalDir holds the local shard journal.
	IntakeDir  string
	ArchiveDir string
	JournalDir string

	// AIHost is the OpenAI-compatible endpoint serving embeddings,
	// generation, and transcription. AIToken may be empty for local servers.
	AIHost           string
	AIToken          string
	EmbeddingModel   string
	AnalyzerModel    string
	GeneratorModel   string
	TranscriberModel string
}

// FromEnv builds a Config from the environment. A .env file is loaded first
// if one exists; missing optional keys fall back to defaults.
func FromEnv() (*Config, error) {
	// Ignore the error: a missing .env file is the normal case.
	_ = godotenv.Load()

	vectorSize, err := intFromEnv(EnvVectorSize, 0)
	if err != nil {
		return nil, err
	}
	if vectorSize <= 0 {
		return nil, ErrVectorSizeRequired
	}

	maxTextLength, err := intFromEnv(EnvMaxTextLength, DefaultMaxTextLength)
	if err != nil {
		return nil, err
	}
	overlap, err := intFromEnv(EnvOverlap, DefaultOverlap)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		VectorSize:       vectorSize,
		MaxTextLength:    maxTextLength,
		Overlap:          overlap,
		IndexEndpoint:    os.Getenv(EnvIndexEndpoint),
		IndexAPIKey:      os.Getenv(EnvIndexAPIKey),
		Collection:       stringFromEnv(EnvIndexCollection, DefaultCollection),
		IntakeDir:        stringFromEnv(EnvIntakeDir, DefaultIntakeDir),
		ArchiveDir:       stringFromEnv(EnvArchiveDir, DefaultArchiveDir),
		JournalDir:       stringFromEnv(EnvJournalDir, DefaultJournalDir),
		AIHost:           os.Getenv(EnvAIHost),
		AIToken:          os.Getenv(EnvAIToken),
		EmbeddingModel:   stringFromEnv(EnvEmbeddingModel, "text-embedding-3-small"),
		AnalyzerModel:    stringFromEnv(EnvAnalyzerModel, "gpt-4o-mini"),
		GeneratorModel:   stringFromEnv(EnvGeneratorModel, "gpt-4o-mini"),
		TranscriberModel: stringFromEnv(EnvTranscriberModel, "whisper-1"),
	}
	return cfg, nil
}

func stringFromEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func intFromEnv(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: expected integer, got %q", key, v)
	}
	return n, nil
}
