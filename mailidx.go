// Copyright 2026 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package mailidx

import (
	"context"
	"log/slog"

	"github.com/poiesic/mailidx/ai"
	"github.com/poiesic/mailidx/ai/openai"
	"github.com/poiesic/mailidx/config"
	"github.com/poiesic/mailidx/index/pinecone"
	"github.com/poiesic/mailidx/ingestion"
	"github.com/poiesic/mailidx/lookup"
	"github.com/poiesic/mailidx/lookup/sheets"
	"github.com/poiesic/mailidx/mailstore/gmail"
	"github.com/poiesic/mailidx/storage"
	"github.com/poiesic/mailidx/storage/badger"
)

// Indexer owns the local state database and assembles the ingestion
// pipeline from it plus the external service clients.
type Indexer struct {
	store      storage.StateStore
	embedModel string
	logger     *slog.Logger
}

// IndexerOption configures an Indexer.
type IndexerOption func(*Indexer)

// WithEmbeddingModel overrides the default embedding model.
func WithEmbeddingModel(model string) IndexerOption {
	return func(ix *Indexer) {
		ix.embedModel = model
	}
}

func NewIndexer(filePath string, opts ...IndexerOption) (*Indexer, error) {
	// Open backend
	backend, err := badger.OpenBackend(filePath, false)
	if err != nil {
		return nil, err
	}

	// Create state store
	store, err := badger.NewStateStore(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	// The state store owns the backend from here; closing the store
	// closes the backend.
	ix := &Indexer{
		store:  store,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(ix)
	}
	return ix, nil
}

func (ix *Indexer) Close() error {
	if err := ix.store.Close(); err != nil {
		ix.logger.Error("error closing state store", "err", err)
		return err
	}
	return nil
}

func (ix *Indexer) StateStore() storage.StateStore {
	return ix.store
}

// LoadConfig assembles the run configuration from the state store.
func (ix *Indexer) LoadConfig(ctx context.Context) (*config.Config, error) {
	return config.Load(ctx, ix.store)
}

// NewIngestionPipeline wires the Gmail source, the Sheets publisher table,
// the embedding provider, and the vector index into a pipeline. Mandatory
// configuration is validated first; an unresolved index host triggers a
// one-time controller discovery whose result is cached in the state store.
func (ix *Indexer) NewIngestionPipeline(ctx context.Context, credentialsPath, tokenPath string,
	opts ...ingestion.Option) (*ingestion.Pipeline, error) {
	cfg, err := ix.LoadConfig(ctx)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.IndexHost == "" {
		host, err := pinecone.Discover(ctx, cfg.IndexName, cfg.Environment, cfg.PineconeAPIKey)
		if err != nil {
			return nil, err
		}
		cfg.IndexHost = host
		if err := ix.store.SetConfigValue(ctx, config.KeyIndexHost, host); err != nil {
			ix.logger.Warn("unable to cache index host", "err", err)
		}
		ix.logger.Info("resolved index host", "host", host)
	}

	mail, err := gmail.NewClient(ctx, credentialsPath, tokenPath)
	if err != nil {
		return nil, err
	}

	// The publisher table is optional infrastructure; without a configured
	// spreadsheet every thread resolves to the unknown publisher.
	var table lookup.TableReader
	if cfg.SpreadsheetID != "" && cfg.SheetName != "" {
		reader, err := sheets.NewReader(ctx, mail.HTTPClient())
		if err != nil {
			return nil, err
		}
		table = reader
	}

	aiOpts := []ai.ConfigOption{ai.WithAPIKey(cfg.OpenAIAPIKey)}
	if ix.embedModel != "" {
		aiOpts = append(aiOpts, ai.WithModel(ix.embedModel))
	}
	embedder, err := openai.NewEmbedder(ai.NewConfig(aiOpts...))
	if err != nil {
		return nil, err
	}

	writer, err := pinecone.NewClient(cfg.IndexHost, cfg.PineconeAPIKey)
	if err != nil {
		return nil, err
	}

	return ingestion.NewPipeline(cfg, ix.store, mail, table, embedder, writer, opts...)
}
