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


package storage

import (
	"context"

	"github.com/poiesic/mailidx/core"
)

// StateStore persists the pipeline's process-wide state: per-thread content
// fingerprints, the run watermark, and configuration values.
//
// Corruption policy: individually corrupt entries are skipped (logged, never
// fatal), so a damaged store degrades to reprocessing rather than aborting.
type StateStore interface {
	// Fingerprints loads the full threadID -> fingerprint map.
	// An empty or corrupt store yields an empty map, never an error
	// other than backend I/O failure.
	Fingerprints(ctx context.Context) (map[string]string, error)

	// PutFingerprints merges the given entries into the stored map.
	// Entries not present in the argument are preserved unchanged; the
	// map only grows or updates, never shrinks.
	PutFingerprints(ctx context.Context, entries map[string]string) error

	// ResetFingerprints removes every stored fingerprint. This is the
	// only sanctioned way the fingerprint map shrinks.
	ResetFingerprints(ctx context.Context) error

	// LastRun loads the persisted state of the last completed run.
	// Returns nil when no run has completed or the record is corrupt.
	LastRun(ctx context.Context) (*core.RunState, error)

	// SaveRunState persists the outcome of a completed run, including the
	// new watermark.
	SaveRunState(ctx context.Context, state *core.RunState) error

	// ConfigValue reads a persisted configuration value, "" when absent.
	ConfigValue(ctx context.Context, key string) (string, error)

	// SetConfigValue writes a persisted configuration value.
	SetConfigValue(ctx context.Context, key, value string) error

	// Close closes the storage backend and releases resources.
	Close() error
}
