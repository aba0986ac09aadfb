// Package ai defines the embedding abstraction used by the ingestion
// pipeline. The openai subpackage implements it against OpenAI-compatible
// embedding APIs; the mock subpackage provides deterministic test doubles.
package ai
