// Package extract normalizes raw mail threads into core.ThreadRecord values
// and classifies them against the daily digest predicate.
//
// Extraction is best effort by design: per-message and per-header failures
// are logged and swallowed so partial success is still success, and the
// resulting record is always fully populated with zero-value defaults.
package extract
