package badger

import "github.com/poiesic/mailidx/storage"

// NewMemoryStateStore creates an in-memory state store for testing.
// Caller must close the returned store when done.
func NewMemoryStateStore() (storage.StateStore, error) {
	backend, err := OpenBackend("", true)
	if err != nil {
		return nil, err
	}

	store, err := NewStateStore(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	return store, nil
}
