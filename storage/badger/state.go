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


package badger

import (
	"context"
	"log/slog"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/mailidx/core"
	"github.com/poiesic/mailidx/storage"
)

// StateStore implements storage.StateStore for BadgerDB.
//
// Fingerprints are stored one entry per thread id, so merges never rewrite
// untouched entries and a single corrupt value never poisons the map.
type StateStore struct {
	backend *Backend
	logger  *slog.Logger
}

var _ storage.StateStore = (*StateStore)(nil)

// NewStateStore creates a StateStore on the given backend.
//
// Returns storage.StateStore interface to enforce abstraction.
func NewStateStore(backend *Backend) (storage.StateStore, error) {
	return newStateStore(backend)
}

func newStateStore(backend *Backend) (*StateStore, error) {
	if backend == nil {
		return nil, storage.ErrStorageClosed
	}
	return &StateStore{
		backend: backend,
		logger:  slog.Default().With("component", "state-store"),
	}, nil
}

// Fingerprints loads every stored threadID -> fingerprint entry.
func (s *StateStore) Fingerprints(ctx context.Context) (map[string]string, error) {
	fingerprints := map[string]string{}
	prefix := []byte(fingerprintPrefix + ":")

	err := s.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			item := iter.Item()
			threadID := strings.TrimPrefix(string(item.Key()), fingerprintPrefix+":")
			if threadID == "" {
				continue
			}
			err := item.Value(func(val []byte) error {
				fingerprints[threadID] = string(val)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return fingerprints, nil
}

// PutFingerprints merges the given entries. Untouched entries are preserved.
func (s *StateStore) PutFingerprints(ctx context.Context, entries map[string]string) error {
	if len(entries) == 0 {
		return nil
	}
	return s.backend.WithTx(func(tx *badger.Txn) error {
		for threadID, fingerprint := range entries {
			if threadID == "" {
				continue
			}
			if err := tx.Set(makeFingerprintKey(threadID), []byte(fingerprint)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// ResetFingerprints removes every stored fingerprint entry.
func (s *StateStore) ResetFingerprints(ctx context.Context) error {
	prefix := []byte(fingerprintPrefix + ":")

	// Collect first; deleting while iterating invalidates the iterator.
	var keys [][]byte
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			keys = append(keys, iter.Item().KeyCopy(nil))
		}
		return nil
	}, false)
	if err != nil {
		return err
	}

	return s.backend.WithTx(func(tx *badger.Txn) error {
		for _, key := range keys {
			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// LastRun loads the persisted run state. A missing or corrupt record yields
// nil: the pipeline falls back to a zero watermark rather than aborting.
func (s *StateStore) LastRun(ctx context.Context) (*core.RunState, error) {
	var state *core.RunState
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeRunStateKey())
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return nil
			}
			return err
		}
		return item.Value(func(val []byte) error {
			decoded, err := storage.UnmarshalRunState(val)
			if err != nil {
				s.logger.Warn("corrupt run state, treating as absent", "err", err)
				return nil
			}
			state = decoded
			return nil
		})
	}, false)
	return state, err
}

// SaveRunState persists the outcome of a completed run.
func (s *StateStore) SaveRunState(ctx context.Context, state *core.RunState) error {
	if state == nil {
		return storage.ErrSerializationFailed
	}
	return s.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set(makeRunStateKey(), storage.MarshalRunState(state)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// ConfigValue reads a persisted configuration value, "" when absent.
func (s *StateStore) ConfigValue(ctx context.Context, key string) (string, error) {
	var value string
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeConfigKey(key))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return nil
			}
			return err
		}
		return item.Value(func(val []byte) error {
			value = string(val)
			return nil
		})
	}, false)
	return value, err
}

// SetConfigValue writes a persisted configuration value.
func (s *StateStore) SetConfigValue(ctx context.Context, key, value string) error {
	return s.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set(makeConfigKey(key), []byte(value)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// Close closes the underlying backend.
func (s *StateStore) Close() error {
	return s.backend.Close()
}
