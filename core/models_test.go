package core

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKnowledgeShardJSONRoundTrip(t *testing.T) {
	shard := KnowledgeShard{
		Information: "The contract was signed on 2024-03-01 in Brno.",
		Analysis: AnalysisResult{
			Phrases:   []string{"when was the contract signed", "where was the contract signed"},
			Keypoints: []string{"signed 2024-03-01", "location Brno"},
		},
		Embedding: []float32{0.25, -0.5, 1, 0},
	}

	data, err := json.Marshal(shard)
	require.NoError(t, err)

	var decoded KnowledgeShard
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, shard, decoded)
}

func TestKnowledgeShardPersistenceFieldNames(t *testing.T) {
	shard := KnowledgeShard{
		Information: "info",
		Analysis:    AnalysisResult{Phrases: []string{"p"}, Keypoints: []string{"k"}},
		Embedding:   []float32{1, 2},
	}

	data, err := json.Marshal(shard)
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Contains(t, raw, "information")
	assert.Contains(t, raw, "analysis")
	assert.Contains(t, raw, "embeddings")
}

func TestSearchTextOrdering(t *testing.T) {
	shard := KnowledgeShard{
		Information: "irrelevant",
		Analysis: AnalysisResult{
			Phrases:   []string{"first phrase", "second phrase"},
			Keypoints: []string{"keypoint one", "keypoint two"},
		},
	}

	// Phrases come before keypoints, newline-joined.
	assert.Equal(t, "first phrase\nsecond phrase\nkeypoint one\nkeypoint two", shard.SearchText())
}

func TestArtifactTypeFromName(t *testing.T) {
	tests := []struct {
		name string
		want ArtifactType
	}{
		{"call.mp3", ArtifactAudio},
		{"MEETING.MP3", ArtifactAudio},
		{"notes.wav", ArtifactAudio},
		{"contract.pdf", ArtifactDocument},
		{"readme.txt", ArtifactText},
		{"no-extension", ArtifactText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ArtifactTypeFromName(tt.name))
		})
	}
}

func TestIDFromContentDeterministic(t *testing.T) {
	a := IDFromContent("some shard text")
	b := IDFromContent("some shard text")
	c := IDFromContent("other shard text")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestShardIDDistinguishesOrdinalsAndArtifacts(t *testing.T) {
	base := ShardID("call.mp3", 0, "same text")

	assert.NotEqual(t, base, ShardID("call.mp3", 1, "same text"))
	assert.NotEqual(t, base, ShardID("other.mp3", 0, "same text"))
	assert.Equal(t, base, ShardID("call.mp3", 0, "same text"))
}
