package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity
// search. Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a fixed-length vector embedding for a single
	// text string. Text beyond the provider's safety limit is truncated
	// before transmission. Empty text is rejected without a network call.
	// Any provider failure surfaces as an error the caller treats as
	// "no embedding available this run".
	EmbedText(ctx context.Context, text string) ([]float32, error)
}
