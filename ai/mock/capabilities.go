package mock

import (
	"context"
	"strings"
	"sync/atomic"

	"github.com/theMladyPan/butler/core"
)

// MockTranscriber is a test double for ai.Transcriber.
type MockTranscriber struct {
	// TranscribeFunc is called by Transcribe if set.
	TranscribeFunc func(ctx context.Context, name string, audio []byte) (string, error)

	callCount atomic.Int64
}

// NewMockTranscriber creates a mock transcriber whose default behavior
// returns the audio bytes interpreted as text.
func NewMockTranscriber() *MockTranscriber {
	return &MockTranscriber{}
}

// Transcribe returns the transcript of the recording.
func (m *MockTranscriber) Transcribe(ctx context.Context, name string, audio []byte) (string, error) {
	m.callCount.Add(1)
	if m.TranscribeFunc != nil {
		return m.TranscribeFunc(ctx, name, audio)
	}
	return string(audio), nil
}

// CallCount returns the number of times Transcribe was called.
func (m *MockTranscriber) CallCount() int { return int(m.callCount.Load()) }

// MockDocumentExtractor is a test double for ai.DocumentExtractor.
type MockDocumentExtractor struct {
	// ExtractTextFunc is called by ExtractText if set.
	ExtractTextFunc func(ctx context.Context, name string, data []byte) (string, error)

	callCount atomic.Int64
}

// NewMockDocumentExtractor creates a mock extractor whose default behavior
// returns the document bytes interpreted as text.
func NewMockDocumentExtractor() *MockDocumentExtractor {
	return &MockDocumentExtractor{}
}

// ExtractText returns the textual content of the document.
func (m *MockDocumentExtractor) ExtractText(ctx context.Context, name string, data []byte) (string, error) {
	m.callCount.Add(1)
	if m.ExtractTextFunc != nil {
		return m.ExtractTextFunc(ctx, name, data)
	}
	return string(data), nil
}

// CallCount returns the number of times ExtractText was called.
func (m *MockDocumentExtractor) CallCount() int { return int(m.callCount.Load()) }

// MockAnalyzer is a test double for ai.Analyzer.
type MockAnalyzer struct {
	// AnalyzeFunc is called by Analyze if set.
	AnalyzeFunc func(ctx context.Context, chunk string) (core.AnalysisResult, error)

	callCount atomic.Int64
}

// NewMockAnalyzer creates a mock analyzer with default deterministic
// behavior: the first words of the chunk become a phrase and a keypoint.
func NewMockAnalyzer() *MockAnalyzer {
	return &MockAnalyzer{}
}

// Analyze performs fake structured extraction. Empty chunks fail with
// core.ErrEmptyInput like the real analyzer.
func (m *MockAnalyzer) Analyze(ctx context.Context, chunk string) (core.AnalysisResult, error) {
	m.callCount.Add(1)
	if m.AnalyzeFunc != nil {
		return m.AnalyzeFunc(ctx, chunk)
	}
	if chunk == "" {
		return core.AnalysisResult{}, core.ErrEmptyInput
	}

	head := chunk
	if fields := strings.Fields(chunk); len(fields) > 5 {
		head = strings.Join(fields[:5], " ")
	}
	return core.AnalysisResult{
		Phrases:   []string{"what is " + head},
		Keypoints: []string{head},
	}, nil
}

// CallCount returns the number of times Analyze was called.
func (m *MockAnalyzer) CallCount() int { return int(m.callCount.Load()) }

// MockGenerator is a test double for ai.Generator.
type MockGenerator struct {
	// GenerateFunc is called by Generate if set.
	GenerateFunc func(ctx context.Context, instructions, input string) (string, error)

	callCount atomic.Int64
}

// NewMockGenerator creates a mock generator whose default behavior echoes
// the input.
func NewMockGenerator() *MockGenerator {
	return &MockGenerator{}
}

// Generate produces fake text from an instruction and an input.
func (m *MockGenerator) Generate(ctx context.Context, instructions, input string) (string, error) {
	m.callCount.Add(1)
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, instructions, input)
	}
	return input, nil
}

// CallCount returns the number of times Generate was called.
func (m *MockGenerator) CallCount() int { return int(m.callCount.Load()) }
