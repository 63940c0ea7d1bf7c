package ingestion

import "errors"

var (
	// ErrBucketRequired is returned when an artifact bucket is not provided.
	ErrBucketRequired = errors.New("artifact bucket required")

	// ErrJournalRequired is returned when a shard journal is not provided.
	ErrJournalRequired = errors.New("shard journal required")

	// ErrIndexerRequired is returned when an indexer is not provided.
	ErrIndexerRequired = errors.New("indexer required")

	// ErrAIProviderRequired is returned when an AI provider is not provided.
	ErrAIProviderRequired = errors.New("AI provider required")
)
