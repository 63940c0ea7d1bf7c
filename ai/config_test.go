package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigAppliesOptions(t *testing.T) {
	cfg := NewConfig(
		WithHost("http://localhost:11434"),
		WithEmbeddingModel("embeddinggemma"),
		WithGeneratorModel("qwen2.5:3b"),
	)

	assert.Equal(t, "http://localhost:11434", cfg.Host)
	assert.Equal(t, "embeddinggemma", cfg.EmbeddingModel)
	assert.Equal(t, "qwen2.5:3b", cfg.GeneratorModel)
	// Untouched fields keep defaults.
	assert.Equal(t, "whisper-1", cfg.TranscriberModel)
}

func TestNormalizeAppendsV1Suffix(t *testing.T) {
	tests := []struct {
		host string
		want string
	}{
		{"http://localhost:11434", "http://localhost:11434/v1"},
		{"http://localhost:11434/", "http://localhost:11434/v1"},
		{"http://localhost:11434/v1", "http://localhost:11434/v1"},
		{"", ""},
	}

	for _, tt := range tests {
		cfg := &Config{Host: tt.host}
		cfg.Normalize()
		assert.Equal(t, tt.want, cfg.Host)
	}
}

func TestValidateRejectsIncompleteConfig(t *testing.T) {
	cfg := NewConfig()
	cfg.EmbeddingModel = ""

	require.Error(t, cfg.Validate())
}

func TestValidateAcceptsDefaults(t *testing.T) {
	require.NoError(t, NewConfig().Validate())
}
