// Package ingestion orchestrates the incremental indexing pipeline.
//
// A run is one linear pass: validate configuration, load auxiliary state
// (publisher table, fingerprints, watermark), query the mail store for the
// window since the last run, process each candidate thread sequentially, and
// persist the updated fingerprints and watermark. Per-thread failures are
// isolated: they are counted and logged, never abort the run, and leave the
// thread's fingerprint untouched so the next scheduled run retries it.
package ingestion
