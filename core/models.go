// Copyright 2026 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

// PublisherUnknown is the sentinel publisher id used when no thread label
// matches the publisher lookup table.
const PublisherUnknown = "unknown"

// ThreadRecord is the normalized representation of one mail conversation.
// It is derived per run and never persisted independently.
//
// A ThreadRecord is always fully populated: extraction failures leave fields
// at their zero values (empty string, empty slice, zero timestamp) rather
// than absent, so downstream consumers never need nil checks.
type ThreadRecord struct {
	// ThreadID is the opaque stable identifier assigned by the mail store.
	// It keys all downstream operations, including the vector index record.
	ThreadID string

	// Subject comes from the first message in the thread.
	Subject string

	// FullText is the concatenation of every message body in thread order,
	// separated by blank lines and trimmed.
	FullText string

	// Participants holds lowercase normalized addresses gathered from the
	// From/To/Cc/Bcc headers and the sender/recipient fields of every
	// message. Deduplicated, in first-seen order.
	Participants []string

	// LastMessage is the Unix timestamp (seconds) of the most recent
	// message in the thread.
	LastMessage int64

	// PublisherID is the label-resolved publisher identifier, or
	// PublisherUnknown when no label matches.
	PublisherID string

	// Labels are the label names attached to the thread at processing time,
	// in the order the mail store reports them.
	Labels []string
}

// HasParticipant reports whether addr is in the participant set.
// The match is exact against the lowercase-normalized entries.
func (r *ThreadRecord) HasParticipant(addr string) bool {
	for _, p := range r.Participants {
		if p == addr {
			return true
		}
	}
	return false
}

// VectorRecord is one (id, vector, metadata) entry destined for the vector
// index. Metadata values must be JSON-serializable.
type VectorRecord struct {
	ID       string
	Values   []float32
	Metadata map[string]any
}

// RunState is the persisted outcome of the last completed pipeline run.
// Watermark is the lower bound of the next run's search window; it only
// advances when a run reaches its persistence step, so an aborted run never
// skips a time window.
type RunState struct {
	Watermark   int64 // Unix seconds of the last successful run
	Processed   int64
	Errored     int64
	Total       int64
	CompletedAt int64 // Unix seconds when the run finished
}

// RunSummary reports the outcome of a single pipeline invocation.
// Skipped threads (unchanged fingerprint) count as neither success nor error.
type RunSummary struct {
	Processed int
	Errored   int
	Skipped   int
	Total     int
}
