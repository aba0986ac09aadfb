// Package mailstore abstracts the mail search/fetch surface the pipeline
// consumes. The gmail subpackage implements it against the Gmail API; the
// mock subpackage provides a canned in-memory source for tests.
package mailstore
