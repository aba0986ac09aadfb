package index

import "errors"

var (
	// ErrHostRequired is returned when no index host is configured.
	ErrHostRequired = errors.New("index host required")

	// ErrCredentialRequired is returned when no API key is configured.
	ErrCredentialRequired = errors.New("index credential required")

	// ErrNoRecords is returned when an upsert is attempted with no records.
	ErrNoRecords = errors.New("no records to upsert")

	// ErrDiscoveryFailed is returned when the controller cannot resolve
	// the index host. Without a destination the run cannot proceed.
	ErrDiscoveryFailed = errors.New("index discovery failed")
)
