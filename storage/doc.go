// Package storage provides the persisted-state abstraction for mailidx.
//
// The StateStore interface covers the three kinds of process-wide state the
// pipeline keeps between runs: the per-thread fingerprint map, the run
// watermark, and configuration values. Constructors in implementation
// packages return the interface to keep callers decoupled from the backend.
//
// The badger subpackage is the production implementation. Tests use its
// in-memory mode.
package storage
