package ingestion

import "errors"

var (
	// ErrConfigRequired is returned when a configuration is not provided.
	ErrConfigRequired = errors.New("config required")

	// ErrStateStoreRequired is returned when a state store is not provided.
	ErrStateStoreRequired = errors.New("state store required")

	// ErrThreadSourceRequired is returned when a thread source is not provided.
	ErrThreadSourceRequired = errors.New("thread source required")

	// ErrEmbedderRequired is returned when an embedder is not provided.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrVectorWriterRequired is returned when a vector writer is not provided.
	ErrVectorWriterRequired = errors.New("vector writer required")

	// ErrNoMatchingThread is returned by InspectLatest when the search
	// yields no candidate thread.
	ErrNoMatchingThread = errors.New("no matching thread")
)
