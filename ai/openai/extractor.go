package openai

import (
	"context"
	"fmt"
	"log/slog"
	"mime"
	"path/filepath"

	"github.com/theMladyPan/butler/ai"
	"github.com/theMladyPan/butler/core"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"
)

// DocumentExtractor implements ai.DocumentExtractor by handing the document
// bytes to a multimodal chat model and asking for plain text back.
type DocumentExtractor struct {
	client llms.Model
	logger *slog.Logger
}

var _ ai.DocumentExtractor = (*DocumentExtractor)(nil)

// newDocumentExtractor is an internal constructor that returns the concrete
// type. Used by Provider to manage the instance.
func newDocumentExtractor(config *ai.Config) (*DocumentExtractor, error) {
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

	return &DocumentExtractor{
		client: client,
		logger: slog.Default().With("component", "openai-extractor"),
	}, nil
}

// NewDocumentExtractor creates a new document extractor using the provided
// configuration.
//
// Returns ai.DocumentExtractor interface to enforce abstraction.
func NewDocumentExtractor(config *ai.Config) (ai.DocumentExtractor, error) {
	return newDocumentExtractor(config)
}

// ExtractText returns the textual content of a binary document.
func (e *DocumentExtractor) ExtractText(ctx context.Context, name string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("extract text: %w", core.ErrEmptyInput)
	}

	mimeType := mime.TypeByExtension(filepath.Ext(name))
	if mimeType == "" {
		mimeType = "application/pdf"
	}

	content := []llms.MessageContent{
		{
			Role:  schema.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(extractionPrompt)},
		},
		{
			Role:  schema.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.BinaryPart(mimeType, data)},
		},
	}

	response, err := e.client.GenerateContent(ctx, content)
	if err != nil {
		e.logger.Error("failed to extract document text", "name", name, "err", err)
		return "", fmt.Errorf("extract text: %w: %w", core.ErrRemoteCapability, err)
	}
	if len(response.Choices) < 1 {
		return "", fmt.Errorf("extract text: no choices returned: %w", core.ErrRemoteCapability)
	}

	return response.Choices[0].Content, nil
}
