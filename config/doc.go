// Package config assembles the pipeline's run configuration from the
// persisted key-value store, with environment-variable fallback for
// credentials.
package config
