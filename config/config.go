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


package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/poiesic/mailidx/extract"
	"github.com/poiesic/mailidx/storage"
)

// Persisted configuration keys. Credentials additionally fall back to the
// environment variable of the same name uppercased (OPENAI_API_KEY,
// PINECONE_API_KEY) so secrets can stay out of the store.
const (
	KeyOpenAIAPIKey    = "openai_api_key"
	KeyPineconeAPIKey  = "pinecone_api_key"
	KeyEnvironment     = "pinecone_environment"
	KeyIndexName       = "pinecone_index_name"
	KeyIndexHost       = "pinecone_index_host"
	KeySpreadsheetID   = "publisher_spreadsheet_id"
	KeySheetName       = "publisher_sheet_name"
	KeyInternalDomains = "internal_domains"
	KeyTargetAddress   = "digest_target_address"
	KeySubjectPrefix   = "digest_subject_prefix"
)

// Config is the run configuration assembled from the persisted store.
// Required fields are validated fatally before any state mutation; optional
// fields default silently.
type Config struct {
	OpenAIAPIKey   string // required
	PineconeAPIKey string // required
	Environment    string // required
	IndexName      string // required

	// IndexHost is optional; when empty the pipeline resolves it once via
	// controller discovery and caches it back into the store.
	IndexHost string

	// Publisher lookup table location. Empty means no table: every thread
	// resolves to the unknown publisher.
	SpreadsheetID string
	SheetName     string

	// InternalDomains are excluded from the participant list stored in
	// vector metadata.
	InternalDomains []string

	// Digest predicate, defaulting to the extract package constants.
	TargetAddress string
	SubjectPrefix string
}

// Load assembles a Config from the persisted store, applying environment
// fallbacks for credentials and defaults for the digest predicate.
// Load never fails on missing values; Validate decides what is fatal.
func Load(ctx context.Context, store storage.StateStore) (*Config, error) {
	cfg := &Config{}

	var err error
	read := func(key string) string {
		if err != nil {
			return ""
		}
		var value string
		value, err = store.ConfigValue(ctx, key)
		return value
	}

	cfg.OpenAIAPIKey = read(KeyOpenAIAPIKey)
	cfg.PineconeAPIKey = read(KeyPineconeAPIKey)
	cfg.Environment = read(KeyEnvironment)
	cfg.IndexName = read(KeyIndexName)
	cfg.IndexHost = read(KeyIndexHost)
	cfg.SpreadsheetID = read(KeySpreadsheetID)
	cfg.SheetName = read(KeySheetName)
	cfg.TargetAddress = read(KeyTargetAddress)
	cfg.SubjectPrefix = read(KeySubjectPrefix)
	domains := read(KeyInternalDomains)
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	if cfg.OpenAIAPIKey == "" {
		cfg.OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")
	}
	if cfg.PineconeAPIKey == "" {
		cfg.PineconeAPIKey = os.Getenv("PINECONE_API_KEY")
	}
	if cfg.TargetAddress == "" {
		cfg.TargetAddress = extract.DefaultTargetParticipant
	}
	if cfg.SubjectPrefix == "" {
		cfg.SubjectPrefix = extract.DefaultSubjectPrefix
	}
	cfg.InternalDomains = splitDomains(domains)

	return cfg, nil
}

func splitDomains(raw string) []string {
	if raw == "" {
		return nil
	}
	var domains []string
	for _, domain := range strings.Split(raw, ",") {
		domain = strings.ToLower(strings.TrimSpace(domain))
		if domain != "" {
			domains = append(domains, domain)
		}
	}
	return domains
}

// Validate checks that every mandatory value is present. A failure here
// aborts the run before any state is mutated.
func (c *Config) Validate() error {
	var missing []string
	if c.OpenAIAPIKey == "" {
		missing = append(missing, KeyOpenAIAPIKey)
	}
	if c.PineconeAPIKey == "" {
		missing = append(missing, KeyPineconeAPIKey)
	}
	if c.Environment == "" {
		missing = append(missing, KeyEnvironment)
	}
	if c.IndexName == "" {
		missing = append(missing, KeyIndexName)
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing mandatory configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Complete reports whether every mandatory value is present. This is the
// diagnostic config check; it never errors.
func (c *Config) Complete() bool {
	return c.Validate() == nil
}
