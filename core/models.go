package core

import "strings"

// ArtifactType tags the kind of raw artifact awaiting ingestion.
type ArtifactType int

const (
	// ArtifactAudio is an audio recording requiring transcription.
	ArtifactAudio ArtifactType = iota + 1
	// ArtifactDocument is a binary document (e.g. PDF) requiring text extraction.
	ArtifactDocument
	// ArtifactText is plain UTF-8 text.
	ArtifactText
)

// String returns a human-readable name for the artifact type.
func (t ArtifactType) String() string {
	switch t {
	case ArtifactAudio:
		return "audio"
	case ArtifactDocument:
		return "document"
	case ArtifactText:
		return "text"
	default:
		return "unknown"
	}
}

// ArtifactTypeFromName derives the artifact type from a file name.
// Names without a recognized extension are treated as plain text, matching
// the intake convention where anything readable as UTF-8 is ingested as-is.
func ArtifactTypeFromName(name string) ArtifactType {
	lower := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lower, ".mp3"), strings.HasSuffix(lower, ".wav"),
		strings.HasSuffix(lower, ".m4a"), strings.HasSuffix(lower, ".ogg"):
		return ArtifactAudio
	case strings.HasSuffix(lower, ".pdf"):
		return ArtifactDocument
	default:
		return ArtifactText
	}
}

// Artifact is a raw uploaded blob consumed exactly once by the ingestion
// pipeline. After processing it is moved to the archive, never left in place;
// the move doubles as the deduplication guard under at-least-once delivery.
type Artifact struct {
	Name string
	Type ArtifactType
	Data []byte
}

// AnalysisResult is the structured extraction for one chunk: ordered
// candidate search phrases and ordered factual keypoints.
type AnalysisResult struct {
	Phrases   []string `json:"phrases"`
	Keypoints []string `json:"keypoints"`
}

// KnowledgeShard is the immutable indexed unit: the verbatim chunk text, its
// analysis, and the embedding of the analysis text. The embedding always has
// the index's configured dimensionality; AssembleShard enforces this.
//
// The JSON field names form the on-disk shard persistence format and must not
// change.
type KnowledgeShard struct {
	Information string         `json:"information"`
	Analysis    AnalysisResult `json:"analysis"`
	Embedding   []float32      `json:"embeddings"`
}

// SearchText returns the text a chunk is discovered by: the phrases followed
// by the keypoints, newline-joined. This is what gets embedded, decoupling
// what is searched on from what is returned.
func (a AnalysisResult) SearchText() string {
	parts := make([]string, 0, len(a.Phrases)+len(a.Keypoints))
	parts = append(parts, a.Phrases...)
	parts = append(parts, a.Keypoints...)
	return strings.Join(parts, "\n")
}

// SearchText returns the text the shard is discovered by.
func (s *KnowledgeShard) SearchText() string {
	return s.Analysis.SearchText()
}

// ScoredMatch is one retrieval hit: the shard payload text and its cosine
// similarity to the query vector. Produced only by the retriever, ordered by
// descending score.
type ScoredMatch struct {
	Information string
	Score       float32
}
