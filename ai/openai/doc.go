// Package openai implements the ai.Embedder interface against
// OpenAI-compatible embedding endpoints.
package openai
