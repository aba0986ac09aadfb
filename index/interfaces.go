package index

import (
	"context"

	"github.com/poiesic/mailidx/core"
)

// VectorWriter stores (id, vector, metadata) records in the vector index.
// Implementations must be idempotent on record id: upserting the same id
// twice overwrites rather than duplicates.
type VectorWriter interface {
	// Upsert stores one or more records. An empty record set is a
	// pre-flight rejection; no network call is attempted. Service
	// failures return an error the caller treats as soft (skip the
	// thread this run, retry next run).
	Upsert(ctx context.Context, records ...core.VectorRecord) error
}
