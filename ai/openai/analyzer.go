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
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/theMladyPan/butler/ai"
	"github.com/theMladyPan/butler/core"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"
	"github.com/xeipuuv/gojsonschema"
)

// Analyzer implements ai.Analyzer using OpenAI-compatible chat APIs.
// Responses are validated against the strict analysis schema and rejected
// on any violation; malformed model output is never coerced into a result.
type Analyzer struct {
	client llms.Model
	schema gojsonschema.JSONLoader
	logger *slog.Logger
}

var _ ai.Analyzer = (*Analyzer)(nil)

// newAnalyzer is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newAnalyzer(config *ai.Config) (*Analyzer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.Host),
		openai.WithToken(config.Token),
		openai.WithModel(config.AnalyzerModel),
	)
	if err != nil {
		return nil, err
	}

	return newAnalyzerWithClient(client), nil
}

// newAnalyzerWithClient wires an analyzer around an existing model client.
// Split out so tests can inject a fake model.
func newAnalyzerWithClient(client llms.Model) *Analyzer {
	return &Analyzer{
		client: client,
		schema: gojsonschema.NewStringLoader(analysisResponseSchema),
		logger: slog.Default().With("component", "openai-analyzer"),
	}
}

// NewAnalyzer creates a new analyzer using the provided configuration.
//
// Returns ai.Analyzer interface to enforce abstraction.
func NewAnalyzer(config *ai.Config) (ai.Analyzer, error) {
	return newAnalyzer(config)
}

// Analyze performs structured extraction on one chunk of text.
// Empty chunks fail with core.ErrEmptyInput before any remote call.
func (a *Analyzer) Analyze(ctx context.Context, chunk string) (core.AnalysisResult, error) {
	if chunk == "" {
		return core.AnalysisResult{}, fmt.Errorf("analyze: %w", core.ErrEmptyInput)
	}

	content := []llms.MessageContent{
		{
			Role:  schema.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(buildAnalyzerPrompt(time.Now()))},
		},
		{
			Role:  schema.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart(chunk)},
		},
	}

	response, err := a.client.GenerateContent(ctx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
	if err != nil {
		a.logger.Error("failed to generate analysis", "err", err)
		return core.AnalysisResult{}, fmt.Errorf("analyze: %w: %w", core.ErrRemoteCapability, err)
	}

	if len(response.Choices) < 1 {
		return core.AnalysisResult{}, fmt.Errorf("analyze: no choices returned: %w", core.ErrSchemaViolation)
	}

	// Strip markdown code fences some models wrap JSON in.
	responseText := strings.TrimSpace(response.Choices[0].Content)
	responseText = strings.TrimPrefix(responseText, "```json")
	responseText = strings.TrimPrefix(responseText, "```")
	responseText = strings.TrimSuffix(responseText, "```")
	responseText = strings.TrimSpace(responseText)

	result, err := a.validate(responseText)
	if err != nil {
		a.logger.Warn("rejecting analysis response", "response", responseText, "err", err)
		return core.AnalysisResult{}, err
	}

	a.logger.Debug("analysis complete",
		"phrases", len(result.Phrases),
		"keypoints", len(result.Keypoints))
	return result, nil
}

// validate checks the raw response against the analysis schema and decodes
// it. Schema violations (missing fields, extra fields, wrong types, invalid
// JSON) all fail closed with core.ErrSchemaViolation.
func (a *Analyzer) validate(responseText string) (core.AnalysisResult, error) {
	outcome, err := gojsonschema.Validate(a.schema, gojsonschema.NewStringLoader(responseText))
	if err != nil {
		return core.AnalysisResult{}, fmt.Errorf("analyze: %w: %w", core.ErrSchemaViolation, err)
	}
	if !outcome.Valid() {
		details := make([]string, 0, len(outcome.Errors()))
		for _, desc := range outcome.Errors() {
			details = append(details, desc.String())
		}
		return core.AnalysisResult{}, fmt.Errorf("analyze: %w: %s",
			core.ErrSchemaViolation, strings.Join(details, "; "))
	}

	var result core.AnalysisResult
	if err := json.Unmarshal([]byte(responseText), &result); err != nil {
		return core.AnalysisResult{}, fmt.Errorf("analyze: %w: %w", core.ErrSchemaViolation, err)
	}
	return result, nil
}
