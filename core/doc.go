// Package core defines the domain model for the mail indexing pipeline:
// normalized thread records, vector index records, persisted run state, and
// the content fingerprint used for change detection between runs.
package core
