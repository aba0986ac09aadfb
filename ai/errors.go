package ai

import "errors"

var (
	// ErrEmptyText is returned when embedding is requested for empty text.
	// No network call is attempted.
	ErrEmptyText = errors.New("text is empty")

	// ErrNoEmbedding is returned when the provider responds without a
	// usable vector. Callers skip the thread this run and retry next run.
	ErrNoEmbedding = errors.New("no embedding available")
)
