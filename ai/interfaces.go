package ai

import (
	"context"

	"github.com/theMladyPan/butler/core"
)

// Transcriber converts an audio recording into text.
type Transcriber interface {
	// Transcribe returns the spoken text of the recording. The name is used
	// for format hints only; the audio bytes are authoritative.
	Transcribe(ctx context.Context, name string, audio []byte) (string, error)
}

// DocumentExtractor extracts readable text from a binary document.
type DocumentExtractor interface {
	// ExtractText returns the textual content of the document.
	ExtractText(ctx context.Context, name string, data []byte) (string, error)
}

// Analyzer performs structured extraction on a single chunk of text.
// Implementations must reject responses that violate the analysis schema
// (core.ErrSchemaViolation) rather than coercing them, and must fail with
// core.ErrEmptyInput on empty chunks without any remote call.
type Analyzer interface {
	Analyze(ctx context.Context, chunk string) (core.AnalysisResult, error)
}

// Embedder generates vector embeddings from text for semantic similarity
// search. Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates embeddings for multiple texts in a batch.
	// The returned slice preserves the order of the input texts.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Generator produces free-form text from an instruction and an input.
// It backs query planning and summarization.
type Generator interface {
	Generate(ctx context.Context, instructions, input string) (string, error)
}

// Provider aggregates the AI capabilities for convenient initialization and
// lifecycle management. All returned services are safe for concurrent use.
type Provider interface {
	Transcriber() Transcriber
	DocumentExtractor() DocumentExtractor
	Analyzer() Analyzer
	Embedder() Embedder
	Generator() Generator

	// Close releases resources held by the provider and its services.
	Close() error
}
