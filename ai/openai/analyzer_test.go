package openai

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/theMladyPan/butler/core"
	"github.com/tmc/langchaingo/llms"
)

// fakeModel implements llms.Model returning a canned response.
type fakeModel struct {
	response string
	err      error
	calls    int
}

func (f *fakeModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: f.response}},
	}, nil
}

func (f *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	f.calls++
	return f.response, f.err
}

func TestAnalyzeValidResponse(t *testing.T) {
	model := &fakeModel{response: `{"phrases": ["what is butler"], "keypoints": ["butler is a knowledge base"]}`}
	analyzer := newAnalyzerWithClient(model)

	result, err := analyzer.Analyze(context.Background(), "some chunk")
	require.NoError(t, err)
	assert.Equal(t, []string{"what is butler"}, result.Phrases)
	assert.Equal(t, []string{"butler is a knowledge base"}, result.Keypoints)
}

func TestAnalyzeStripsCodeFences(t *testing.T) {
	model := &fakeModel{response: "```json\n{\"phrases\": [\"p\"], \"keypoints\": [\"k\"]}\n```"}
	analyzer := newAnalyzerWithClient(model)

	result, err := analyzer.Analyze(context.Background(), "some chunk")
	require.NoError(t, err)
	assert.Equal(t, []string{"p"}, result.Phrases)
}

func TestAnalyzeEmptyInputSkipsRemoteCall(t *testing.T) {
	model := &fakeModel{response: `{"phrases": [], "keypoints": []}`}
	analyzer := newAnalyzerWithClient(model)

	_, err := analyzer.Analyze(context.Background(), "")
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrEmptyInput)
	assert.Zero(t, model.calls, "empty input must not reach the model")
}

func TestAnalyzeRejectsSchemaViolations(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{"missing keypoints", `{"phrases": ["p"]}`},
		{"extra field", `{"phrases": ["p"], "keypoints": ["k"], "summary": "s"}`},
		{"wrong type", `{"phrases": "not an array", "keypoints": []}`},
		{"not json", `phrases: p`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analyzer := newAnalyzerWithClient(&fakeModel{response: tt.response})

			_, err := analyzer.Analyze(context.Background(), "some chunk")
			require.Error(t, err)
			assert.ErrorIs(t, err, core.ErrSchemaViolation)
		})
	}
}

func TestAnalyzeRemoteFailure(t *testing.T) {
	analyzer := newAnalyzerWithClient(&fakeModel{err: errors.New("connection refused")})

	_, err := analyzer.Analyze(context.Background(), "some chunk")
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrRemoteCapability)
}
