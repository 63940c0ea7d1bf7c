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


package mock

import "github.com/theMladyPan/butler/ai"

// MockProvider is a test double for ai.Provider.
// It aggregates the capability mocks; access the concrete types through the
// exported fields for test assertions and behavior injection.
type MockProvider struct {
	MockTranscriber *MockTranscriber
	MockExtractor   *MockDocumentExtractor
	MockAnalyzer    *MockAnalyzer
	MockEmbedder    *MockEmbedder
	MockGenerator   *MockGenerator
}

var _ ai.Provider = (*MockProvider)(nil)

// NewMockProvider creates a new mock provider with default mock services.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		MockTranscriber: NewMockTranscriber(),
		MockExtractor:   NewMockDocumentExtractor(),
		MockAnalyzer:    NewMockAnalyzer(),
		MockEmbedder:    NewMockEmbedder(),
		MockGenerator:   NewMockGenerator(),
	}
}

// Transcriber returns the mock transcriber.
func (p *MockProvider) Transcriber() ai.Transcriber { return p.MockTranscriber }

// DocumentExtractor returns the mock document extractor.
func (p *MockProvider) DocumentExtractor() ai.DocumentExtractor { return p.MockExtractor }

// Analyzer returns the mock analyzer.
func (p *MockProvider) Analyzer() ai.Analyzer { return p.MockAnalyzer }

// Embedder returns the mock embedder.
func (p *MockProvider) Embedder() ai.Embedder { return p.MockEmbedder }

// Generator returns the mock generator.
func (p *MockProvider) Generator() ai.Generator { return p.MockGenerator }

// Close is a no-op.
func (p *MockProvider) Close() error { return nil }
