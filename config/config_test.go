package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvRequiresVectorSize(t *testing.T) {
	t.Setenv(EnvVectorSize, "")

	_, err := FromEnv()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrVectorSizeRequired)
}

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv(EnvVectorSize, "768")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, 768, cfg.VectorSize)
	assert.Equal(t, DefaultMaxTextLength, cfg.MaxTextLength)
	assert.Equal(t, DefaultOverlap, cfg.Overlap)
	assert.Equal(t, DefaultCollection, cfg.Collection)
	assert.Equal(t, DefaultIntakeDir, cfg.IntakeDir)
	assert.Equal(t, DefaultArchiveDir, cfg.ArchiveDir)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv(EnvVectorSize, "1536")
	t.Setenv(EnvMaxTextLength, "2048")
	t.Setenv(EnvOverlap, "512")
	t.Setenv(EnvIndexCollection, "knowledge")
	t.Setenv(EnvIndexEndpoint, "http://localhost:6333")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, 1536, cfg.VectorSize)
	assert.Equal(t, 2048, cfg.MaxTextLength)
	assert.Equal(t, 512, cfg.Overlap)
	assert.Equal(t, "knowledge", cfg.Collection)
	assert.Equal(t, "http://localhost:6333", cfg.IndexEndpoint)
}

func TestFromEnvRejectsMalformedInt(t *testing.T) {
	t.Setenv(EnvVectorSize, "many")

	_, err := FromEnv()
	require.Error(t, err)
}
