// Package index abstracts the vector index the pipeline writes to. The
// pinecone subpackage implements it against the Pinecone REST API, including
// one-time discovery of the index host from the controller.
package index
