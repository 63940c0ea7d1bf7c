package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/theMladyPan/butler/ai"
	"github.com/theMladyPan/butler/core"
)

const transcriptionTimeout = 5 * time.Minute

// Transcriber implements ai.Transcriber against the OpenAI-compatible
// /audio/transcriptions endpoint. langchaingo has no audio surface, so the
// endpoint is called directly.
type Transcriber struct {
	host   string
	token  string
	model  string
	client *http.Client
	logger *slog.Logger
}

var _ ai.Transcriber = (*Transcriber)(nil)

// newTranscriber is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newTranscriber(config *ai.Config) (*Transcriber, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Transcriber{
		host:   config.Host,
		token:  config.Token,
		model:  config.TranscriberModel,
		client: &http.Client{Timeout: transcriptionTimeout},
		logger: slog.Default().With("component", "openai-transcriber"),
	}, nil
}

// NewTranscriber creates a new transcriber using the provided configuration.
//
// Returns ai.Transcriber interface to enforce abstraction.
func NewTranscriber(config *ai.Config) (ai.Transcriber, error) {
	return newTranscriber(config)
}

// Transcribe returns the spoken text of the recording.
func (t *Transcriber) Transcribe(ctx context.Context, name string, audio []byte) (string, error) {
	if len(audio) == 0 {
		return "", fmt.Errorf("transcribe: %w", core.ErrEmptyInput)
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	if err := writer.WriteField("model", t.model); err != nil {
		return "", fmt.Errorf("transcribe: %w", err)
	}
	part, err := writer.CreateFormFile("file", name)
	if err != nil {
		return "", fmt.Errorf("transcribe: %w", err)
	}
	if _, err := part.Write(audio); err != nil {
		return "", fmt.Errorf("transcribe: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("transcribe: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.host+"/audio/transcriptions", &body)
	if err != nil {
		return "", fmt.Errorf("transcribe: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if t.token != "" {
		req.Header.Set("Authorization", "Bearer "+t.token)
	}

	t.logger.Debug("transcribing audio", "name", name, "bytes", len(audio))

	resp, err := t.client.Do(req)
	if err != nil {
		t.logger.Error("transcription request failed", "name", name, "err", err)
		return "", fmt.Errorf("transcribe: %w: %w", core.ErrRemoteCapability, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("transcribe: %w: %s: %s", core.ErrRemoteCapability, resp.Status, detail)
	}

	var decoded struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("transcribe: %w: %w", core.ErrRemoteCapability, err)
	}

	return decoded.Text, nil
}
