package badger

import "fmt"

// Key prefixes for different data types
const (
	fingerprintPrefix = "fprint"
	configPrefix      = "cfg"
	runStateKey       = "runstate"
)

// makeFingerprintKey generates a key for a thread's content fingerprint.
func makeFingerprintKey(threadID string) []byte {
	return []byte(fmt.Sprintf("%s:%s", fingerprintPrefix, threadID))
}

// makeConfigKey generates a key for a persisted configuration value.
func makeConfigKey(name string) []byte {
	return []byte(fmt.Sprintf("%s:%s", configPrefix, name))
}

// makeRunStateKey generates the key for the persisted run state record.
func makeRunStateKey() []byte {
	return []byte(runStateKey)
}
